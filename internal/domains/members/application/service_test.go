package application

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/coffee-admin/internal/domains/members/adapters/memory"
	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

type countingGateway struct {
	*memory.Gateway
	creates int
}

func (c *countingGateway) Create(ctx context.Context, p domain.Payload) (domain.Member, error) {
	c.creates++
	return c.Gateway.Create(ctx, p)
}

func newService(t *testing.T) (*Service, *countingGateway) {
	t.Helper()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	gw := &countingGateway{Gateway: memory.NewGateway(func() time.Time { return now })}
	board := resource.NewBoard(resource.DefaultMessageTTL, func() time.Time { return now })
	return NewService(gw, listview.DefaultPageSize, resource.WithBoard(board)), gw
}

func TestForm_EmptyEmailMakesNoRequest(t *testing.T) {
	svc, gw := newService(t)
	f := svc.NewForm()
	f.SetPassword("pw")
	f.SetName("Kim")

	_, err := svc.Submit(context.Background(), f)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmailRequired)
	require.Zero(t, gw.creates)

	msg, ok := svc.Store().Message()
	require.True(t, ok)
	require.Equal(t, resource.KindError, msg.Kind)
	require.Equal(t, "enter an email", msg.Text)
}

func TestForm_ValidationOrder(t *testing.T) {
	svc, _ := newService(t)
	f := svc.NewForm()
	f.SetEmail("kim@example.com")
	_, err := f.Payload()
	require.ErrorIs(t, err, domain.ErrPasswordRequired)

	f.SetPassword("pw")
	_, err = f.Payload()
	require.ErrorIs(t, err, domain.ErrNameRequired)

	f.SetEmail("not-an-email")
	_, err = f.Payload()
	require.ErrorIs(t, err, domain.ErrEmailInvalid)
}

func TestService_EditKeepsPasswordBlank(t *testing.T) {
	ctx := context.Background()
	svc, gw := newService(t)

	f := svc.NewForm()
	require.Empty(t, f.PasswordHint())
	f.SetEmail("lee@example.com")
	f.SetPassword("first")
	f.SetName("Lee")
	created, err := svc.Submit(ctx, f)
	require.NoError(t, err)
	require.Equal(t, 1, gw.creates)

	require.NoError(t, svc.BeginEdit(f, created.MemberID))
	require.Empty(t, f.Draft().Password)
	require.Equal(t, PasswordPlaceholder, f.PasswordHint())

	f.SetPhone("010-1234-5678")
	p, err := f.Payload()
	require.NoError(t, err)
	require.Empty(t, p.Password)

	updated, err := svc.Submit(ctx, f)
	require.NoError(t, err)
	require.Equal(t, "010-1234-5678", updated.Phone)
	require.True(t, gw.PasswordMatches(created.MemberID, "first"))

	items := svc.Store().Items()
	require.Len(t, items, 1)
	require.Equal(t, "010-1234-5678", items[0].Phone)

	view := svc.View(listview.Query{Term: "1234", Page: 1})
	require.Equal(t, 1, view.Rows.Total)
}

func TestService_SaveFailureKeepsForm(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	f := svc.NewForm()
	f.SetEmail("dup@example.com")
	f.SetPassword("pw")
	f.SetName("One")
	_, err := svc.Submit(ctx, f)
	require.NoError(t, err)

	f.SetEmail("dup@example.com")
	f.SetPassword("pw")
	f.SetName("Two")
	_, err = svc.Submit(ctx, f)
	var serr *resource.SaveError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "Two", f.Draft().Name)

	msg, _ := svc.Store().Message()
	require.Equal(t, "failed to save", msg.Text)
}

func TestForm_DisplayNameEmailRejectedBeforeRequest(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	gw := &countingGateway{Gateway: memory.NewGateway(func() time.Time { return now })}
	board := resource.NewBoard(resource.DefaultMessageTTL, func() time.Time { return now })
	svc := NewService(gw, listview.DefaultPageSize, resource.WithBoard(board), resource.WithValidator(validator.New()))

	f := svc.NewForm()
	f.SetEmail("Kim <kim@example.com>")
	f.SetPassword("pw")
	f.SetName("Kim")

	_, err := svc.Submit(context.Background(), f)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmailInvalid)
	require.Zero(t, gw.creates)

	msg, ok := svc.Store().Message()
	require.True(t, ok)
	require.Equal(t, resource.KindError, msg.Kind)
	require.NotEqual(t, "failed to save", msg.Text)
}
