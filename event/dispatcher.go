package event

import "github.com/samber/lo"

// Handler receives notifications.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
	once    bool
}

// Dispatcher delivers notifications to subscribed handlers, in subscription
// order. Every emission first consults the gate; a closed gate drops the
// notification without reaching any handler.
//
// A Dispatcher is not safe for concurrent use. Handlers may subscribe,
// unsubscribe and emit from within a delivery.
type Dispatcher struct {
	gate   func() bool
	byType map[Type][]*subscription
	all    []*subscription
	nextID int
}

// NewDispatcher returns a dispatcher guarded by gate. A nil gate is always open.
func NewDispatcher(gate func() bool) *Dispatcher {
	if gate == nil {
		gate = func() bool { return true }
	}
	return &Dispatcher{
		gate:   gate,
		byType: make(map[Type][]*subscription),
	}
}

// On subscribes h to notifications of type t.
func (d *Dispatcher) On(t Type, h Handler) (off func()) {
	return d.add(t, h, false)
}

// Once subscribes h to the next notification of type t only.
func (d *Dispatcher) Once(t Type, h Handler) (off func()) {
	return d.add(t, h, true)
}

// OnAll subscribes h to every notification.
func (d *Dispatcher) OnAll(h Handler) (off func()) {
	d.nextID++
	sub := &subscription{id: d.nextID, handler: h}
	d.all = append(d.all, sub)
	return func() { d.all = remove(d.all, sub.id) }
}

func (d *Dispatcher) add(t Type, h Handler, once bool) func() {
	d.nextID++
	sub := &subscription{id: d.nextID, handler: h, once: once}
	d.byType[t] = append(d.byType[t], sub)
	return func() { d.byType[t] = remove(d.byType[t], sub.id) }
}

// Emit delivers a notification and reports whether the gate let it through.
func (d *Dispatcher) Emit(t Type, data any) bool {
	if !d.gate() {
		return false
	}

	e := Event{Type: t, Data: data}

	subs := append([]*subscription(nil), d.byType[t]...)
	for _, sub := range subs {
		if sub.once {
			d.byType[t] = remove(d.byType[t], sub.id)
		}
		sub.handler(e)
	}

	for _, sub := range append([]*subscription(nil), d.all...) {
		sub.handler(e)
	}

	return true
}

// Clear drops every subscription.
func (d *Dispatcher) Clear() {
	d.byType = make(map[Type][]*subscription)
	d.all = nil
}

// Len returns the number of live subscriptions.
func (d *Dispatcher) Len() int {
	n := len(d.all)
	for _, subs := range d.byType {
		n += len(subs)
	}
	return n
}

func remove(subs []*subscription, id int) []*subscription {
	return lo.Reject(subs, func(s *subscription, _ int) bool {
		return s.id == id
	})
}
