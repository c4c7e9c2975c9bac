// Package resource holds the per-resource client state shared by the
// product, member and order verticals: the in-memory collection, request
// bookkeeping, the transient status message and the edit session.
package resource

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by gateways for operations a resource does not expose.
var ErrUnsupported = errors.New("operation not supported by resource")

// Item is a record identified by a server-assigned numeric key.
type Item interface {
	Key() int64
}

// Gateway is the remote side of a Store. Implementations return the
// server's echoed item, which the Store treats as authoritative.
type Gateway[T Item, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload P) (T, error)
	Update(ctx context.Context, id int64, payload P) (T, error)
	Delete(ctx context.Context, id int64) error
}
