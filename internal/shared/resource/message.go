package resource

import (
	"sync"
	"time"
)

// DefaultMessageTTL is how long a status message stays visible.
const DefaultMessageTTL = 3 * time.Second

// Kind classifies a status message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Message is transient user-facing feedback.
type Message struct {
	Kind      Kind
	Text      string
	ExpiresAt time.Time
}

// Notifier accepts status messages. Forms report validation failures
// through it before any request is issued.
type Notifier interface {
	Post(kind Kind, text string)
}

// Board holds a single status message. A new post overwrites the previous
// one; nothing is queued.
type Board struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	msg Message
}

// NewBoard returns a board whose messages expire after ttl. A nil clock
// uses time.Now.
func NewBoard(ttl time.Duration, now func() time.Time) *Board {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Board{ttl: ttl, now: now}
}

// Post replaces the active message.
func (b *Board) Post(kind Kind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = Message{Kind: kind, Text: text, ExpiresAt: b.now().Add(b.ttl)}
}

// Current returns the active message if it has not expired.
func (b *Board) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.msg.Text == "" || !b.now().Before(b.msg.ExpiresAt) {
		return Message{}, false
	}
	return b.msg, true
}

// Clear drops the active message.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = Message{}
}

var _ Notifier = (*Board)(nil)
