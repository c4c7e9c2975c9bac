package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/domains/members/ports"
	"github.com/Apurer/coffee-admin/internal/shared/localtime"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway is an in-memory member backend.
type Gateway struct {
	mu        sync.RWMutex
	members   map[int64]domain.Member
	passwords map[int64]string
	nextID    int64
	now       func() time.Time
}

func NewGateway(now func() time.Time) *Gateway {
	if now == nil {
		now = time.Now
	}
	return &Gateway{members: map[int64]domain.Member{}, passwords: map[int64]string{}, now: now}
}

// List returns members newest first.
func (g *Gateway) List(_ context.Context) ([]domain.Member, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	list := make([]domain.Member, 0, len(g.members))
	for _, m := range g.members {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MemberID > list[j].MemberID })
	return list, nil
}

func (g *Gateway) Get(_ context.Context, id int64) (domain.Member, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.members[id]
	if !ok {
		return domain.Member{}, ports.ErrNotFound
	}
	return m, nil
}

func (g *Gateway) Create(_ context.Context, p domain.Payload) (domain.Member, error) {
	if err := p.Validate(true); err != nil {
		return domain.Member{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.emailTaken(p.Email, 0) {
		return domain.Member{}, ports.ErrDuplicateEmail
	}
	g.nextID++
	stamp := localtime.Time{Time: g.now().Truncate(time.Second)}
	m := domain.Member{
		MemberID:  g.nextID,
		Email:     p.Email,
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	g.members[m.MemberID] = m
	g.passwords[m.MemberID] = p.Password
	return m, nil
}

// Update keeps the stored password when p.Password is empty.
func (g *Gateway) Update(_ context.Context, id int64, p domain.Payload) (domain.Member, error) {
	if err := p.Validate(false); err != nil {
		return domain.Member{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.members[id]
	if !ok {
		return domain.Member{}, ports.ErrNotFound
	}
	if g.emailTaken(p.Email, id) {
		return domain.Member{}, ports.ErrDuplicateEmail
	}
	m.Email = p.Email
	m.Name = p.Name
	m.Phone = p.Phone
	m.Address = p.Address
	m.UpdatedAt = localtime.Time{Time: g.now().Truncate(time.Second)}
	g.members[id] = m
	if p.Password != "" {
		g.passwords[id] = p.Password
	}
	return m, nil
}

func (g *Gateway) Delete(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.members[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.members, id)
	delete(g.passwords, id)
	return nil
}

// PasswordMatches reports whether pw is the stored password of id.
func (g *Gateway) PasswordMatches(id int64, pw string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	stored, ok := g.passwords[id]
	return ok && stored == pw
}

func (g *Gateway) emailTaken(email string, except int64) bool {
	for id, m := range g.members {
		if id != except && strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}
