package coffee

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/domains/orders/ports"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

const ordersPath = "/api/orders"

var _ ports.Backend = (*OrdersAPI)(nil)

// OrdersAPI implements the order gateway and status updates over JSON.
type OrdersAPI struct {
	c *Client
}

func (a *OrdersAPI) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := a.c.doJSON(ctx, http.MethodGet, ordersPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *OrdersAPI) Create(ctx context.Context, p domain.Payload) (domain.Order, error) {
	var out domain.Order
	if err := a.c.doJSON(ctx, http.MethodPost, ordersPath, nil, p, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

// Update is not offered by the backend.
func (a *OrdersAPI) Update(context.Context, int64, domain.Payload) (domain.Order, error) {
	return domain.Order{}, resource.ErrUnsupported
}

// UpdateStatus issues PATCH /api/orders/{id}/status?status=.
func (a *OrdersAPI) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Order, error) {
	target, err := resourcePath(ordersPath, id, "status")
	if err != nil {
		return domain.Order{}, err
	}
	var out domain.Order
	q := url.Values{"status": []string{string(status)}}
	if err := a.c.doJSON(ctx, http.MethodPatch, target, q, nil, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

func (a *OrdersAPI) Delete(ctx context.Context, id int64) error {
	target, err := resourcePath(ordersPath, id)
	if err != nil {
		return err
	}
	return a.c.doJSON(ctx, http.MethodDelete, target, nil, nil, nil)
}
