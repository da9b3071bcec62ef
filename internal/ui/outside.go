package ui

import "sync"

// OutsideClicker notifies subscribers about pointer events outside the dropdown subtree.
type OutsideClicker interface {
	OnOutsideClick(fn func()) (cancel func())
}

// ClickBus is an OutsideClicker fed by whatever surface observes pointer events.
type ClickBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewClickBus() *ClickBus {
	return &ClickBus{subs: make(map[int]func())}
}

// OnOutsideClick subscribes fn until cancel is called.
func (b *ClickBus) OnOutsideClick(fn func()) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Pointer reports a pointer event. Events inside the dropdown subtree are ignored.
func (b *ClickBus) Pointer(insideDropdown bool) {
	if insideDropdown {
		return
	}

	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	// subscribers may call back into the bus
	for _, fn := range fns {
		fn()
	}
}

// Subscribers returns the number of live subscriptions.
func (b *ClickBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
