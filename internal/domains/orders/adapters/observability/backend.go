package observability

import (
	"context"

	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/domains/orders/ports"
	resourceobs "github.com/Apurer/coffee-admin/internal/shared/resource/observability"
)

var _ ports.Backend = (*Backend)(nil)

// Backend adds the status change to the generic gateway decorator.
type Backend struct {
	*resourceobs.Gateway[domain.Order, domain.Payload]
	status ports.StatusUpdater
}

func New(inner ports.Backend, opts ...resourceobs.Option) *Backend {
	return &Backend{
		Gateway: resourceobs.New[domain.Order, domain.Payload](inner, "orders", opts...),
		status:  inner,
	}
}

func (b *Backend) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Order, error) {
	return b.Trace(ctx, "UpdateStatus", id, func(ctx context.Context) (domain.Order, error) {
		return b.status.UpdateStatus(ctx, id, status)
	})
}
