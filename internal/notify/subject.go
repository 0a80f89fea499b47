// Package notify decouples whatever advances an order from the parties that
// care: a status board, a pickup alert, a log. Delivery is synchronous and
// best-effort within the process.
package notify

import (
	"log"
	"sync"

	"github.com/veronosmani/CanteenOrderingSystem/internal/order"
)

// Observer receives order status transitions. Implementations should be
// comparable (pointers work) so Attach can de-duplicate registrations.
type Observer interface {
	OnStatusChanged(orderID string, status order.Status)
}

// Subject fans a status change out to every attached observer, in
// attachment order.
type Subject struct {
	mu        sync.Mutex
	observers []Observer
}

func NewSubject() *Subject { return &Subject{} }

// Attach registers an observer. Attaching the same observer twice keeps a
// single registration.
func (s *Subject) Attach(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cur := range s.observers {
		if cur == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// Detach removes an observer; detaching one that was never attached is a
// no-op.
func (s *Subject) Detach(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.observers {
		if cur == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify synchronously invokes every attached observer. Each call is
// isolated: a panicking observer never blocks delivery to the rest. Missed
// notifications are not retried or persisted.
func (s *Subject) Notify(orderID string, status order.Status) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		deliver(o, orderID, status)
	}
}

func deliver(o Observer, orderID string, status order.Status) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[notify] observer panicked on %s -> %s: %v", orderID, status, p)
		}
	}()
	o.OnStatusChanged(orderID, status)
}

// LogObserver writes every transition to the process log.
type LogObserver struct{}

func (*LogObserver) OnStatusChanged(orderID string, status order.Status) {
	log.Printf("[notify] order=%s status=%s", orderID, status)
}
