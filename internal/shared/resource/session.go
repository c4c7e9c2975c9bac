package resource

import "sync"

// EditSession tracks the single item being edited, if any.
type EditSession[T Item] struct {
	mu     sync.Mutex
	item   T
	active bool
}

// Begin snapshots item as the one under edit, replacing any previous session.
func (e *EditSession[T]) Begin(item T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.item = item
	e.active = true
}

// Current returns the item under edit.
func (e *EditSession[T]) Current() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.item, e.active
}

// ID returns the identifier under edit, or nil when creating.
func (e *EditSession[T]) ID() *int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return nil
	}
	id := e.item.Key()
	return &id
}

// Clear ends the session after a cancel or a successful save.
func (e *EditSession[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	var zero T
	e.item = zero
	e.active = false
}
