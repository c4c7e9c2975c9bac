package ports

import (
	"context"
	"errors"

	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

var ErrNotFound = errors.New("order not found")

// Gateway reads, creates and deletes orders. Update is not offered by the
// backend and returns resource.ErrUnsupported.
type Gateway = resource.Gateway[domain.Order, domain.Payload]

// StatusUpdater changes an order's status on the backend.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Order, error)
}

// Backend is everything the order vertical needs from the server.
type Backend interface {
	Gateway
	StatusUpdater
}
