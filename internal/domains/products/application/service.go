package application

import (
	"context"
	"strconv"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/domains/products/ports"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// Store is the product collection.
type Store = resource.Store[domain.Product, domain.Payload]

// Service bundles the product store, its edit session and list settings.
type Service struct {
	store   *Store
	session resource.EditSession[domain.Product]
	list    listview.Config[domain.Product]
}

// NewService builds the product vertical on top of gw.
func NewService(gw ports.Gateway, pageSize int, opts ...resource.Option) *Service {
	return &Service{
		store: resource.NewStore(gw, resource.Messages{
			Resource:      "product",
			FetchFailed:   "failed to load products",
			Created:       "product created",
			Updated:       "product updated",
			SaveFailed:    "failed to save",
			Deleted:       "product deleted",
			DeleteFailed:  "failed to delete",
			ConfirmDelete: "Delete this product? A deleted product cannot be restored.",
		}, opts...),
		list: listview.Config[domain.Product]{
			Fields:   SearchFields,
			PageSize: pageSize,
		},
	}
}

// SearchFields are the product fields matched by the list search.
func SearchFields(p domain.Product) []string {
	return []string{p.ProductName, p.Continent, p.Nationality, p.Type, strconv.FormatInt(p.ProductID, 10)}
}

// Store exposes the product collection.
func (s *Service) Store() *Store { return s.store }

// Refresh reloads the product list.
func (s *Service) Refresh(ctx context.Context) error {
	return s.store.FetchAll(ctx)
}

// View renders the current collection for q.
func (s *Service) View(q listview.Query) listview.View[domain.Product] {
	return listview.Build(s.store.Items(), q, s.list)
}

// NewForm returns a form reporting to the store's status board.
func (s *Service) NewForm(opts ...FormOption) *Form {
	opts = append([]FormOption{WithCancel(s.session.Clear)}, opts...)
	return NewForm(s.store.Board(), opts...)
}

// BeginEdit loads product id into f and opens the edit session.
func (s *Service) BeginEdit(f *Form, id int64) error {
	p, ok := s.store.Find(id)
	if !ok {
		return ports.ErrNotFound
	}
	s.session.Begin(p)
	f.Load(&p)
	return nil
}

// Submit saves f and closes the edit session on success.
func (s *Service) Submit(ctx context.Context, f *Form) (domain.Product, error) {
	saved, err := f.Submit(ctx, s.store)
	if err != nil {
		return domain.Product{}, err
	}
	s.session.Clear()
	return saved, nil
}

// Delete removes id once c agrees.
func (s *Service) Delete(ctx context.Context, id int64, c resource.Confirmer) bool {
	return s.store.Delete(ctx, id, c)
}

// Editing returns the product under edit.
func (s *Service) Editing() (domain.Product, bool) {
	return s.session.Current()
}
