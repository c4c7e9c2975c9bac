package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	members "github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/domains/orders/ports"
	products "github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/shared/localtime"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

var _ ports.Backend = (*Gateway)(nil)

// MemberDirectory resolves the ordering member.
type MemberDirectory interface {
	Get(ctx context.Context, id int64) (members.Member, error)
}

// VariantCatalog resolves a variant to its product and option.
type VariantCatalog interface {
	Variant(variantID int64) (products.Product, products.Option, bool)
}

// Gateway is an in-memory order backend. It prices lines from the product
// catalog the way the real backend does.
type Gateway struct {
	mu       sync.RWMutex
	orders   map[int64]domain.Order
	members  MemberDirectory
	variants VariantCatalog
	nextID   int64
	nextItem int64
	now      func() time.Time
}

func NewGateway(m MemberDirectory, v VariantCatalog, now func() time.Time) *Gateway {
	if now == nil {
		now = time.Now
	}
	return &Gateway{orders: map[int64]domain.Order{}, members: m, variants: v, now: now}
}

// List returns orders newest first.
func (g *Gateway) List(_ context.Context) ([]domain.Order, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	list := make([]domain.Order, 0, len(g.orders))
	for _, o := range g.orders {
		list = append(list, clone(o))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderID > list[j].OrderID })
	return list, nil
}

func (g *Gateway) Get(_ context.Context, id int64) (domain.Order, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	o, ok := g.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	return clone(o), nil
}

func (g *Gateway) Create(ctx context.Context, p domain.Payload) (domain.Order, error) {
	if err := p.Validate(); err != nil {
		return domain.Order{}, err
	}
	m, err := g.members.Get(ctx, p.MemberID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %w", domain.ErrMemberRequired, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	o := domain.Order{
		Member: domain.MemberSummary{
			MemberID: m.MemberID,
			Name:     m.Name,
			Email:    m.Email,
			Phone:    m.Phone,
		},
		Status:          domain.StatusPending,
		ShippingAddress: p.ShippingAddress,
	}
	if o.ShippingAddress == "" {
		o.ShippingAddress = m.Address
	}
	for _, line := range p.Items {
		product, opt, ok := g.variants.Variant(line.VariantID)
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: variant %d", domain.ErrVariantUnresolved, line.VariantID)
		}
		g.nextItem++
		unit := product.BasePrice + opt.ExtraPrice
		o.Items = append(o.Items, domain.OrderItem{
			OrderItemID: g.nextItem,
			VariantID:   line.VariantID,
			ProductName: product.ProductName,
			OptionValue: opt.OptionValue,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			Subtotal:    unit * line.Quantity,
		})
		o.TotalAmount += unit * line.Quantity
	}
	g.nextID++
	o.OrderID = g.nextID
	o.StatusDisplayName = o.Status.DisplayName()
	stamp := localtime.Time{Time: g.now().Truncate(time.Second)}
	o.OrderDate = stamp
	o.UpdatedAt = stamp
	g.orders[o.OrderID] = o
	return clone(o), nil
}

// Update is not part of the order API.
func (g *Gateway) Update(context.Context, int64, domain.Payload) (domain.Order, error) {
	return domain.Order{}, resource.ErrUnsupported
}

// UpdateStatus changes only the status fields of the order.
func (g *Gateway) UpdateStatus(_ context.Context, id int64, status domain.Status) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	o.Status = status
	o.StatusDisplayName = status.DisplayName()
	g.orders[id] = o
	return clone(o), nil
}

func (g *Gateway) Delete(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.orders, id)
	return nil
}

// Seed stores o as is. Used to load fixtures.
func (g *Gateway) Seed(o domain.Order) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if o.StatusDisplayName == "" {
		o.StatusDisplayName = o.Status.DisplayName()
	}
	g.orders[o.OrderID] = clone(o)
	if o.OrderID > g.nextID {
		g.nextID = o.OrderID
	}
}

func clone(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}
