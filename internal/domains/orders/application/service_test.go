package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/coffee-admin/internal/domains/orders/adapters/memory"
	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
	"github.com/Apurer/coffee-admin/internal/shared/localtime"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

type countingBackend struct {
	*memory.Gateway
	statusCalls int
	failStatus  error
}

func (c *countingBackend) UpdateStatus(ctx context.Context, id int64, s domain.Status) (domain.Order, error) {
	c.statusCalls++
	if c.failStatus != nil {
		return domain.Order{}, c.failStatus
	}
	return c.Gateway.UpdateStatus(ctx, id, s)
}

func seeded(t *testing.T) (*Service, *countingBackend) {
	t.Helper()
	gw := memory.NewGateway(nil, nil, nil)
	placed := localtime.Time{Time: time.Date(2024, 4, 2, 13, 5, 0, 0, time.UTC)}
	statuses := []domain.Status{domain.StatusPending, domain.StatusPaid, domain.StatusPending}
	for i, st := range statuses {
		gw.Seed(domain.Order{
			OrderID:         int64(5 + i),
			Member:          domain.MemberSummary{MemberID: 1, Name: "Kim", Email: "kim@example.com"},
			Status:          st,
			TotalAmount:     36000,
			ShippingAddress: "Seoul",
			OrderDate:       placed,
			UpdatedAt:       placed,
			Items:           []domain.OrderItem{{OrderItemID: int64(i + 1), VariantID: 1000, ProductName: "A", OptionValue: "200g", Quantity: 2, UnitPrice: 18000, Subtotal: 36000}},
		})
	}
	backend := &countingBackend{Gateway: gw}
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	board := resource.NewBoard(resource.DefaultMessageTTL, func() time.Time { return now })
	svc := NewService(backend, listview.DefaultPageSize, resource.WithBoard(board))
	require.NoError(t, svc.Refresh(context.Background()))
	return svc, backend
}

func TestService_UpdateStatusReplacesOnlyStatus(t *testing.T) {
	svc, _ := seeded(t)
	before, ok := svc.Store().Find(7)
	require.True(t, ok)

	updated, err := svc.UpdateStatus(context.Background(), 7, "SHIPPING")
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipping, updated.Status)

	after, ok := svc.Store().Find(7)
	require.True(t, ok)
	require.Equal(t, domain.StatusShipping, after.Status)
	require.Equal(t, "배송중", after.StatusDisplayName)

	after.Status = before.Status
	after.StatusDisplayName = before.StatusDisplayName
	require.Equal(t, before, after)

	msg, _ := svc.Store().Message()
	require.Equal(t, "order status updated", msg.Text)
}

func TestService_UpdateStatusRejectsUnknownWithoutRequest(t *testing.T) {
	svc, backend := seeded(t)
	_, err := svc.UpdateStatus(context.Background(), 7, "LOST")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	require.Zero(t, backend.statusCalls)
}

func TestService_UpdateStatusFailureKeepsOrder(t *testing.T) {
	svc, backend := seeded(t)
	backend.failStatus = errors.New("503")
	_, err := svc.UpdateStatus(context.Background(), 6, "CANCELLED")
	var serr *resource.SaveError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, resource.OpReplace, serr.Op)

	o, _ := svc.Store().Find(6)
	require.Equal(t, domain.StatusPaid, o.Status)
	msg, _ := svc.Store().Message()
	require.Equal(t, resource.KindError, msg.Kind)
}

func TestService_TabCountsIgnoreSearch(t *testing.T) {
	svc, _ := seeded(t)
	v := svc.View(listview.Query{Term: "nobody", Tab: string(domain.StatusPending), Page: 1})
	require.True(t, v.Rows.Empty())
	require.Equal(t, 3, v.TabCounts[listview.TabAll])
	require.Equal(t, 2, v.TabCounts[string(domain.StatusPending)])
	require.Equal(t, 1, v.TabCounts[string(domain.StatusPaid)])
	require.Equal(t, 0, v.TabCounts[string(domain.StatusShipping)])

	v = svc.View(listview.Query{Tab: string(domain.StatusPending), Page: 1})
	require.Equal(t, 2, v.Rows.Total)
}

func TestService_DetailFollowsCollection(t *testing.T) {
	svc, _ := seeded(t)
	_, err := svc.Select(7)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), 7, "paid")
	require.NoError(t, err)
	o, ok := svc.Selected()
	require.True(t, ok)
	require.Equal(t, domain.StatusPaid, o.Status)

	require.True(t, svc.Delete(context.Background(), 7, resource.AlwaysConfirm))
	_, ok = svc.Selected()
	require.False(t, ok)
}

func TestService_UpdateIsUnsupported(t *testing.T) {
	svc, _ := seeded(t)
	id := int64(5)
	_, err := svc.Store().Save(context.Background(), domain.Payload{}, &id)
	require.ErrorIs(t, err, resource.ErrUnsupported)
}
