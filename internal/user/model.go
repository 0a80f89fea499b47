package user

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
)

// User is the active canteen account. Immutable after creation; the role is
// informational here (authorization is handled outside this core).
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func New(id, name string, role Role) User {
	return User{ID: id, Name: name, Role: role}
}
