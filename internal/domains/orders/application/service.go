package application

import (
	"context"
	"strconv"

	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/domains/orders/ports"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// Store is the order collection.
type Store = resource.Store[domain.Order, domain.Payload]

// Service bundles the order store, the selected order and list settings.
type Service struct {
	store    *Store
	statuses ports.StatusUpdater
	selected resource.EditSession[domain.Order]
	list     listview.Config[domain.Order]
}

// NewService builds the order store over backend.
func NewService(backend ports.Backend, pageSize int, opts ...resource.Option) *Service {
	tabs := []string{listview.TabAll}
	for _, s := range domain.Statuses {
		tabs = append(tabs, string(s))
	}
	return &Service{
		store:    resource.NewStore(backend, resource.DefaultMessages("order"), opts...),
		statuses: backend,
		list: listview.Config[domain.Order]{
			Fields:   SearchFields,
			Status:   func(o domain.Order) string { return string(o.Status) },
			Tabs:     tabs,
			PageSize: pageSize,
		},
	}
}

// SearchFields are the order fields matched by the list search.
func SearchFields(o domain.Order) []string {
	return []string{o.Member.Name, o.Member.Email, o.ShippingAddress, strconv.FormatInt(o.OrderID, 10)}
}

// Store exposes the order collection.
func (s *Service) Store() *Store { return s.store }

// Refresh reloads the order list.
func (s *Service) Refresh(ctx context.Context) error { return s.store.FetchAll(ctx) }

// View renders the collection with status tabs.
func (s *Service) View(q listview.Query) listview.View[domain.Order] {
	return listview.Build(s.store.Items(), q, s.list)
}

// NewForm returns an order form reading members and products from the
// given collections.
func (s *Service) NewForm(m MemberLookup, p ProductLookup) *Form {
	return NewForm(s.store.Board(), m, p, nil)
}

// Submit validates and places the order through the store.
func (s *Service) Submit(ctx context.Context, f *Form) (domain.Order, error) {
	return f.Submit(ctx, s.store)
}

// Select opens the detail of order id.
func (s *Service) Select(id int64) (domain.Order, error) {
	o, ok := s.store.Find(id)
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	s.selected.Begin(o)
	return o, nil
}

// Selected returns the order shown in detail, refreshed from the collection.
func (s *Service) Selected() (domain.Order, bool) {
	o, ok := s.selected.Current()
	if !ok {
		return domain.Order{}, false
	}
	if fresh, found := s.store.Find(o.OrderID); found {
		return fresh, true
	}
	return o, true
}

// CloseDetail leaves the detail view.
func (s *Service) CloseDetail() { s.selected.Clear() }

// UpdateStatus sets the status of order id and swaps the echoed order into
// the collection. No transition rules apply.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (domain.Order, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		s.store.Board().Post(resource.KindError, userText(err))
		return domain.Order{}, mapError(err)
	}
	return s.store.Replace(ctx, id, func(ctx context.Context) (domain.Order, error) {
		return s.statuses.UpdateStatus(ctx, id, st)
	}, "order status updated", "failed to update order status")
}

// Delete removes order id once c confirms.
func (s *Service) Delete(ctx context.Context, id int64, c resource.Confirmer) bool {
	deleted := s.store.Delete(ctx, id, c)
	if o, ok := s.selected.Current(); deleted && ok && o.OrderID == id {
		s.selected.Clear()
	}
	return deleted
}
