package resource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Messages is the user-facing text a Store posts for one resource.
type Messages struct {
	Resource      string
	FetchFailed   string
	Created       string
	Updated       string
	SaveFailed    string
	Deleted       string
	DeleteFailed  string
	ConfirmDelete string
}

// DefaultMessages builds the generic English texts for a resource name.
func DefaultMessages(resource string) Messages {
	return Messages{
		Resource:      resource,
		FetchFailed:   fmt.Sprintf("failed to load %s list", resource),
		Created:       fmt.Sprintf("%s created", resource),
		Updated:       fmt.Sprintf("%s updated", resource),
		SaveFailed:    "failed to save",
		Deleted:       fmt.Sprintf("%s deleted", resource),
		DeleteFailed:  "failed to delete",
		ConfirmDelete: fmt.Sprintf("Delete this %s? A deleted %s cannot be restored.", resource, resource),
	}
}

// StructValidator checks a payload before it is sent.
// *validator.Validate satisfies it.
type StructValidator interface {
	Struct(s any) error
}

type options struct {
	board     *Board
	logger    *slog.Logger
	validator StructValidator
}

// Option configures a Store.
type Option func(*options)

// WithBoard shares a status board between stores and forms.
func WithBoard(board *Board) Option {
	return func(o *options) {
		o.board = board
	}
}

// WithLogger sets the logger used for failure details.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithValidator checks payloads at the boundary before Save issues a request.
func WithValidator(v StructValidator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// Store is the single source of truth for one resource's collection.
//
// Operations are not serialized: two overlapping calls both write the
// collection when they resolve and the later one wins.
type Store[T Item, P any] struct {
	gateway   Gateway[T, P]
	messages  Messages
	board     *Board
	logger    *slog.Logger
	validator StructValidator

	mu       sync.RWMutex
	items    []T
	inflight int
}

// NewStore returns an empty store. Call FetchAll to populate it.
func NewStore[T Item, P any](gateway Gateway[T, P], messages Messages, opts ...Option) *Store[T, P] {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.board == nil {
		o.board = NewBoard(DefaultMessageTTL, nil)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store[T, P]{
		gateway:   gateway,
		messages:  messages,
		board:     o.board,
		logger:    o.logger,
		validator: o.validator,
	}
}

// FetchAll replaces the collection with the server's list. On failure the
// collection is left untouched and an error message is posted.
func (s *Store[T, P]) FetchAll(ctx context.Context) error {
	s.begin()
	defer s.end()

	items, err := s.gateway.List(ctx)
	if err != nil {
		ferr := &FetchError{Resource: s.messages.Resource, Err: err}
		s.logError(ctx, "fetch failed", ferr)
		s.board.Post(KindError, s.messages.FetchFailed)
		return ferr
	}
	fresh := dedupe(items)
	s.mu.Lock()
	s.items = fresh
	s.mu.Unlock()
	return nil
}

// Save creates the payload when id is nil and prepends the echoed item,
// otherwise updates the item with that id in place. A rejected request
// returns a *SaveError and leaves the collection unchanged.
func (s *Store[T, P]) Save(ctx context.Context, payload P, id *int64) (T, error) {
	s.begin()
	defer s.end()

	var zero T
	op := "create"
	if id != nil {
		op = "update"
	}
	if s.validator != nil {
		if err := s.validator.Struct(payload); err != nil {
			return zero, s.saveFailed(ctx, OpSave, idOrZero(id), fmt.Errorf("%s payload: %w", op, err))
		}
	}

	var (
		saved T
		err   error
	)
	if id == nil {
		saved, err = s.gateway.Create(ctx, payload)
	} else {
		saved, err = s.gateway.Update(ctx, *id, payload)
	}
	if err != nil {
		return zero, s.saveFailed(ctx, OpSave, idOrZero(id), err)
	}

	if id == nil {
		s.prepend(saved)
		s.board.Post(KindSuccess, s.messages.Created)
	} else {
		s.replace(saved)
		s.board.Post(KindSuccess, s.messages.Updated)
	}
	return saved, nil
}

// Replace runs a single-item mutation and swaps the echoed item into the
// collection by identifier.
func (s *Store[T, P]) Replace(ctx context.Context, id int64, mutate func(context.Context) (T, error), successText, failureText string) (T, error) {
	s.begin()
	defer s.end()

	var zero T
	updated, err := mutate(ctx)
	if err != nil {
		serr := &SaveError{Resource: s.messages.Resource, Op: OpReplace, ID: id, Err: err}
		s.logError(ctx, "mutation failed", serr, slog.Int64("id", id))
		s.board.Post(KindError, failureText)
		return zero, serr
	}
	s.replace(updated)
	s.board.Post(KindSuccess, successText)
	return updated, nil
}

// Items returns a copy of the collection.
func (s *Store[T, P]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// Find looks an item up by identifier.
func (s *Store[T, P]) Find(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Busy reports whether any request is in flight.
func (s *Store[T, P]) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Message returns the active status message.
func (s *Store[T, P]) Message() (Message, bool) {
	return s.board.Current()
}

// Board exposes the status board so forms can post validation failures.
func (s *Store[T, P]) Board() *Board {
	return s.board
}

// Messages returns the text table this store posts.
func (s *Store[T, P]) Messages() Messages {
	return s.messages
}

func (s *Store[T, P]) saveFailed(ctx context.Context, op Op, id int64, err error) error {
	serr := &SaveError{Resource: s.messages.Resource, Op: op, ID: id, Err: err}
	s.logError(ctx, "save failed", serr, slog.Int64("id", id), slog.Int("status", StatusOf(err)))
	s.board.Post(KindError, s.messages.SaveFailed)
	return serr
}

func (s *Store[T, P]) prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, 0, len(s.items)+1)
	next = append(next, item)
	for _, it := range s.items {
		if it.Key() != item.Key() {
			next = append(next, it)
		}
	}
	s.items = next
}

func (s *Store[T, P]) replace(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, len(s.items))
	copy(next, s.items)
	for i, it := range next {
		if it.Key() == item.Key() {
			next[i] = item
		}
	}
	s.items = next
}

func (s *Store[T, P]) remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if it.Key() != id {
			next = append(next, it)
		}
	}
	s.items = next
}

func (s *Store[T, P]) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store[T, P]) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *Store[T, P]) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("resource", s.messages.Resource), slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// dedupe keeps the first item for each identifier.
func dedupe[T Item](items []T) []T {
	seen := make(map[int64]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Key()]; ok {
			continue
		}
		seen[it.Key()] = struct{}{}
		out = append(out, it)
	}
	return out
}

func idOrZero(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
