package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/domains/members/ports"
)

func TestGateway_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	g := NewGateway(func() time.Time { return now })

	m, err := g.Create(ctx, domain.Payload{Email: "a@example.com", Password: "secret", Name: "Ann"})
	require.NoError(t, err)
	require.Equal(t, now, m.CreatedAt.Time)

	now = now.Add(time.Hour)
	updated, err := g.Update(ctx, m.MemberID, domain.Payload{Email: "a@example.com", Name: "Ann Lee"})
	require.NoError(t, err)
	require.Equal(t, "Ann Lee", updated.Name)
	require.Equal(t, now, updated.UpdatedAt.Time)
	require.True(t, g.PasswordMatches(m.MemberID, "secret"))

	_, err = g.Update(ctx, m.MemberID, domain.Payload{Email: "a@example.com", Password: "n3w", Name: "Ann Lee"})
	require.NoError(t, err)
	require.True(t, g.PasswordMatches(m.MemberID, "n3w"))
}

func TestGateway_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(nil)
	_, err := g.Create(ctx, domain.Payload{Email: "a@example.com", Password: "x", Name: "A"})
	require.NoError(t, err)
	_, err = g.Create(ctx, domain.Payload{Email: "A@example.com", Password: "y", Name: "B"})
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestGateway_DeleteUnknown(t *testing.T) {
	require.ErrorIs(t, NewGateway(nil).Delete(context.Background(), 5), ports.ErrNotFound)
}
