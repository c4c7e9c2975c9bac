package coffee

import (
	"context"
	"net/http"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/domains/members/ports"
)

const membersPath = "/api/members"

var _ ports.Gateway = (*MembersAPI)(nil)

// MembersAPI implements the member gateway over JSON.
type MembersAPI struct {
	c *Client
}

func (a *MembersAPI) List(ctx context.Context) ([]domain.Member, error) {
	var out []domain.Member
	if err := a.c.doJSON(ctx, http.MethodGet, membersPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MembersAPI) Create(ctx context.Context, p domain.Payload) (domain.Member, error) {
	var out domain.Member
	if err := a.c.doJSON(ctx, http.MethodPost, membersPath, nil, p, &out); err != nil {
		return domain.Member{}, err
	}
	return out, nil
}

// Update omits the password field when it is empty.
func (a *MembersAPI) Update(ctx context.Context, id int64, p domain.Payload) (domain.Member, error) {
	target, err := resourcePath(membersPath, id)
	if err != nil {
		return domain.Member{}, err
	}
	var out domain.Member
	if err := a.c.doJSON(ctx, http.MethodPut, target, nil, p, &out); err != nil {
		return domain.Member{}, err
	}
	return out, nil
}

func (a *MembersAPI) Delete(ctx context.Context, id int64) error {
	target, err := resourcePath(membersPath, id)
	if err != nil {
		return err
	}
	return a.c.doJSON(ctx, http.MethodDelete, target, nil, nil, nil)
}
