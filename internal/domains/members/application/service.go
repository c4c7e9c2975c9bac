package application

import (
	"context"
	"strconv"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/domains/members/ports"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// Store is the member collection.
type Store = resource.Store[domain.Member, domain.Payload]

// Service bundles the member store, its edit session and list settings.
type Service struct {
	store   *Store
	session resource.EditSession[domain.Member]
	list    listview.Config[domain.Member]
}

// NewService builds the member store over gw.
func NewService(gw ports.Gateway, pageSize int, opts ...resource.Option) *Service {
	return &Service{
		store: resource.NewStore(gw, resource.DefaultMessages("member"), opts...),
		list: listview.Config[domain.Member]{
			Fields:   SearchFields,
			PageSize: pageSize,
		},
	}
}

// SearchFields are the member fields matched by the list search.
func SearchFields(m domain.Member) []string {
	return []string{m.Name, m.Email, m.Phone, strconv.FormatInt(m.MemberID, 10)}
}

// Store exposes the member collection.
func (s *Service) Store() *Store { return s.store }

// Refresh reloads the member list.
func (s *Service) Refresh(ctx context.Context) error { return s.store.FetchAll(ctx) }

// View filters and pages the members for the list screen.
func (s *Service) View(q listview.Query) listview.View[domain.Member] {
	return listview.Build(s.store.Items(), q, s.list)
}

// NewForm returns a form reporting to the store's status board.
func (s *Service) NewForm() *Form {
	return NewForm(s.store.Board(), s.session.Clear)
}

// BeginEdit loads member id into f and opens the edit session.
func (s *Service) BeginEdit(f *Form, id int64) error {
	m, ok := s.store.Find(id)
	if !ok {
		return ports.ErrNotFound
	}
	s.session.Begin(m)
	f.Load(&m)
	return nil
}

// Submit validates and saves the form through the store.
func (s *Service) Submit(ctx context.Context, f *Form) (domain.Member, error) {
	saved, err := f.Submit(ctx, s.store)
	if err != nil {
		return domain.Member{}, err
	}
	s.session.Clear()
	return saved, nil
}

// Delete removes member id once c confirms.
func (s *Service) Delete(ctx context.Context, id int64, c resource.Confirmer) bool {
	return s.store.Delete(ctx, id, c)
}

// Editing returns the member being edited, if any.
func (s *Service) Editing() (domain.Member, bool) { return s.session.Current() }
