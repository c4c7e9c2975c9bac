package resource

import (
	"context"
	"log/slog"
	"sync"
)

// Confirmer answers a synchronous yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// PendingDelete is a deletion awaiting user confirmation. It resolves once;
// later calls return false without side effects.
type PendingDelete[T Item, P any] struct {
	store  *Store[T, P]
	id     int64
	prompt string

	once     sync.Once
	resolved bool
}

// RequestDelete starts the two-step delete protocol for id.
func (s *Store[T, P]) RequestDelete(id int64) *PendingDelete[T, P] {
	return &PendingDelete[T, P]{store: s, id: id, prompt: s.messages.ConfirmDelete}
}

// ID returns the identifier awaiting deletion.
func (p *PendingDelete[T, P]) ID() int64 { return p.id }

// Prompt returns the confirmation question to show the user.
func (p *PendingDelete[T, P]) Prompt() string { return p.prompt }

// Confirm issues the delete request. It reports whether the item was
// removed; failures are converted to false plus an error message.
func (p *PendingDelete[T, P]) Confirm(ctx context.Context) bool {
	ran := false
	p.once.Do(func() {
		ran = true
		p.resolved = p.store.deleteNow(ctx, p.id)
	})
	if !ran {
		return false
	}
	return p.resolved
}

// Cancel abandons the deletion. It always reports false.
func (p *PendingDelete[T, P]) Cancel() bool {
	p.once.Do(func() {})
	return false
}

// Delete asks c for confirmation and then deletes id. A declined prompt
// returns false without touching the collection or the network.
func (s *Store[T, P]) Delete(ctx context.Context, id int64, c Confirmer) bool {
	pending := s.RequestDelete(id)
	if c == nil || !c.Confirm(pending.Prompt()) {
		return pending.Cancel()
	}
	return pending.Confirm(ctx)
}

func (s *Store[T, P]) deleteNow(ctx context.Context, id int64) bool {
	s.begin()
	defer s.end()

	if err := s.gateway.Delete(ctx, id); err != nil {
		derr := &DeleteError{Resource: s.messages.Resource, ID: id, Err: err}
		s.logError(ctx, "delete failed", derr, slog.Int64("id", id), slog.Int("status", StatusOf(err)))
		s.board.Post(KindError, s.messages.DeleteFailed)
		return false
	}
	s.remove(id)
	s.board.Post(KindSuccess, s.messages.Deleted)
	return true
}
