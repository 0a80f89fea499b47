package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
	"github.com/veronosmani/CanteenOrderingSystem/internal/checkout"
	"github.com/veronosmani/CanteenOrderingSystem/internal/menu"
	"github.com/veronosmani/CanteenOrderingSystem/internal/notify"
	"github.com/veronosmani/CanteenOrderingSystem/internal/order"
	"github.com/veronosmani/CanteenOrderingSystem/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

func newTestRouter(t *testing.T) (*gin.Engine, deps) {
	t.Helper()

	menuRepo := menu.NewMemoryRepo()
	seedMenu(context.Background(), menuRepo)

	d := deps{
		menu:   menuRepo,
		orders: order.NewMemoryRepo(),
		cart:   cart.New(),
		user:   user.New("u1", "Alex", user.RoleStudent),
	}
	d.checkout = checkout.NewService(d.menu, d.orders, notify.NewSubject())
	return newRouter(d), d
}

func doJSON(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestListMenuFilters(t *testing.T) {
	r, _ := newTestRouter(t)

	var resp struct {
		Items []menu.Item `json:"items"`
	}

	w := doJSON(r, http.MethodGet, "/menu", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 5 {
		t.Fatalf("unfiltered len=%d, want the 5 seeded items", len(resp.Items))
	}

	w = doJSON(r, http.MethodGet, "/menu?tag=VEGAN&available=true", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 1 || resp.Items[0].ID != "m2" {
		t.Fatalf("vegan+available=%+v, want [m2]", resp.Items)
	}

	w = doJSON(r, http.MethodGet, "/menu?category=Drinks", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 1 || resp.Items[0].ID != "m4" {
		t.Fatalf("drinks=%+v, want [m4]", resp.Items)
	}
}

func TestCreateMenuItem(t *testing.T) {
	r, d := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/menu", `{"name":"Samosa","price":"1.10","category":"Sides","tags":["VEG"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var created menu.Item
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || !created.Available {
		t.Fatalf("created=%+v, want server id and available default true", created)
	}
	if _, err := d.menu.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("created item not persisted: %v", err)
	}

	w = doJSON(r, http.MethodPost, "/menu", `{"name":"Bad","price":"-2.00"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative price: status=%d, want 400", w.Code)
	}
}

func TestToggleAvailability(t *testing.T) {
	r, d := newTestRouter(t)

	w := doJSON(r, http.MethodPut, "/menu/m1/availability", `{"available":false}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	it, _ := d.menu.FindByID(context.Background(), "m1")
	if it.Available {
		t.Fatal("m1 still available after toggle")
	}

	// unknown id is a silent no-op at the repository level
	w = doJSON(r, http.MethodPut, "/menu/ghost/availability", `{"available":true}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("unknown id: status=%d, want 204", w.Code)
	}
}

func TestCartEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/cart/items", `{"menu_item_id":"m1","quantity":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	// same id merges, default quantity is 1
	_ = doJSON(r, http.MethodPost, "/cart/items", `{"menu_item_id":"m1"}`)

	var resp struct {
		Items []cart.Item `json:"items"`
	}
	w = doJSON(r, http.MethodGet, "/cart", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 3 {
		t.Fatalf("cart=%+v, want one m1 line with quantity 3", resp.Items)
	}

	w = doJSON(r, http.MethodDelete, "/cart/items/m1", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 0 {
		t.Fatalf("cart=%+v after remove, want empty", resp.Items)
	}

	w = doJSON(r, http.MethodPost, "/cart/items", `{"quantity":2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing menu_item_id: status=%d, want 400", w.Code)
	}
}

func TestCheckoutFlow(t *testing.T) {
	r, d := newTestRouter(t)

	// m5 is seeded unavailable: it rides along in the cart but prices at zero
	_ = doJSON(r, http.MethodPost, "/cart/items", `{"menu_item_id":"m1","quantity":2}`)
	_ = doJSON(r, http.MethodPost, "/cart/items", `{"menu_item_id":"m5","quantity":1}`)

	w := doJSON(r, http.MethodPost, "/checkout", `{"pricing":"simple"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var o order.Order
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatal(err)
	}
	if o.Status != order.StatusReceived || o.UserID != "u1" {
		t.Fatalf("order=%+v, want RECEIVED for u1", o)
	}
	if !o.Total.Equal(decimal.RequireFromString("7.00")) {
		t.Fatalf("total=%s, want 7.00", o.Total)
	}
	if len(d.cart.Items()) != 0 {
		t.Fatal("cart not cleared after checkout")
	}

	// second checkout with the now-empty cart
	w = doJSON(r, http.MethodPost, "/checkout", `{"pricing":"simple"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty cart: status=%d, want 400", w.Code)
	}
}

func TestCheckoutComboAndPickupTime(t *testing.T) {
	r, _ := newTestRouter(t)

	_ = doJSON(r, http.MethodPost, "/cart/items", `{"menu_item_id":"m1","quantity":4}`)

	w := doJSON(r, http.MethodPost, "/checkout", `{"pricing":"combo","pickup_time":"2026-08-24T12:30:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var o order.Order
	_ = json.Unmarshal(w.Body.Bytes(), &o)
	if !o.Total.Equal(decimal.RequireFromString("12.60")) {
		t.Fatalf("total=%s, want 12.60 after combo discount", o.Total)
	}

	w = doJSON(r, http.MethodPost, "/checkout", `{"pricing":"happy-hour"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown strategy: status=%d, want 400", w.Code)
	}
}

func TestOrderLifecycleEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	_ = doJSON(r, http.MethodPost, "/cart/items", `{"menu_item_id":"m1","quantity":1}`)
	w := doJSON(r, http.MethodPost, "/checkout", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var placed order.Order
	_ = json.Unmarshal(w.Body.Bytes(), &placed)

	w = doJSON(r, http.MethodPost, "/orders/"+placed.ID+"/advance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("advance: status=%d body=%s", w.Code, w.Body.String())
	}
	var advanced order.Order
	_ = json.Unmarshal(w.Body.Bytes(), &advanced)
	if advanced.Status != order.StatusPreparing {
		t.Fatalf("status=%s after advance, want PREPARING", advanced.Status)
	}

	var list struct {
		Orders []order.Order `json:"orders"`
	}
	w = doJSON(r, http.MethodGet, "/orders?status=PREPARING", "")
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Orders) != 1 || list.Orders[0].ID != placed.ID {
		t.Fatalf("PREPARING orders=%+v, want the placed order", list.Orders)
	}

	// direct status write bypasses the state machine
	w = doJSON(r, http.MethodPut, "/orders/"+placed.ID+"/status", `{"status":"PICKED_UP"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("update status: status=%d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodGet, "/orders/"+placed.ID, "")
	var got order.Order
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Status != order.StatusPickedUp {
		t.Fatalf("status=%s, want PICKED_UP", got.Status)
	}

	w = doJSON(r, http.MethodPut, "/orders/"+placed.ID+"/status", `{"status":"wtf"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: status=%d, want 400", w.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/orders/ghost", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestListOrdersUnknownStatus(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/orders?status=pending", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}
