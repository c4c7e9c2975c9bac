package resource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type bean struct {
	ID   int64
	Name string
}

func (b bean) Key() int64 { return b.ID }

type beanPayload struct {
	Name string `validate:"required"`
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return "server said no" }
func (e statusErr) StatusCode() int { return e.code }

type fakeGateway struct {
	items   []bean
	nextID  int64
	failAll error
	calls   int
}

func (f *fakeGateway) List(_ context.Context) ([]bean, error) {
	f.calls++
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]bean(nil), f.items...), nil
}

func (f *fakeGateway) Create(_ context.Context, p beanPayload) (bean, error) {
	f.calls++
	if f.failAll != nil {
		return bean{}, f.failAll
	}
	f.nextID++
	b := bean{ID: f.nextID, Name: p.Name}
	f.items = append([]bean{b}, f.items...)
	return b, nil
}

func (f *fakeGateway) Update(_ context.Context, id int64, p beanPayload) (bean, error) {
	f.calls++
	if f.failAll != nil {
		return bean{}, f.failAll
	}
	return bean{ID: id, Name: p.Name + " (server)"}, nil
}

func (f *fakeGateway) Delete(_ context.Context, id int64) error {
	f.calls++
	return f.failAll
}

type requiredName struct{}

func (requiredName) Struct(s any) error {
	if p, ok := s.(beanPayload); ok && p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func seeded(t *testing.T, gw *fakeGateway) *Store[bean, beanPayload] {
	t.Helper()
	store := NewStore[bean, beanPayload](gw, DefaultMessages("bean"))
	require.NoError(t, store.FetchAll(context.Background()))
	return store
}

func TestFetchAll_ReplacesCollection(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "Yirgacheffe"}, {ID: 2, Name: "Huila"}, {ID: 1, Name: "dup"}}}
	store := seeded(t, gw)

	require.Equal(t, []bean{{ID: 1, Name: "Yirgacheffe"}, {ID: 2, Name: "Huila"}}, store.Items())
	require.False(t, store.Busy())
}

func TestFetchAll_FailureKeepsCollection(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "Yirgacheffe"}}}
	store := seeded(t, gw)

	gw.failAll = errors.New("connection refused")
	err := store.FetchAll(context.Background())

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	require.Len(t, store.Items(), 1)
	msg, ok := store.Message()
	require.True(t, ok)
	require.Equal(t, KindError, msg.Kind)
	require.Equal(t, "failed to load bean list", msg.Text)
}

func TestSave_CreatePrependsServerItem(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "Yirgacheffe"}}, nextID: 1}
	store := seeded(t, gw)

	saved, err := store.Save(context.Background(), beanPayload{Name: "Sidamo"}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), saved.ID)

	items := store.Items()
	require.Len(t, items, 2)
	require.Equal(t, saved, items[0])
	msg, _ := store.Message()
	require.Equal(t, Message{Kind: KindSuccess, Text: "bean created", ExpiresAt: msg.ExpiresAt}, msg)
}

func TestSave_UpdateReplacesInPlace(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}}
	store := seeded(t, gw)

	id := int64(2)
	_, err := store.Save(context.Background(), beanPayload{Name: "B"}, &id)
	require.NoError(t, err)

	require.Equal(t, []bean{{ID: 1, Name: "a"}, {ID: 2, Name: "B (server)"}, {ID: 3, Name: "c"}}, store.Items())
}

func TestSave_RejectedReturnsSaveError(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "a"}}}
	store := seeded(t, gw)
	gw.failAll = statusErr{code: 500}

	_, err := store.Save(context.Background(), beanPayload{Name: "x"}, nil)

	var serr *SaveError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 500, StatusOf(err))
	require.Equal(t, []bean{{ID: 1, Name: "a"}}, store.Items())
	require.False(t, store.Busy())
	msg, ok := store.Message()
	require.True(t, ok)
	require.Equal(t, "failed to save", msg.Text)
}

func TestSave_ValidatorBlocksRequest(t *testing.T) {
	gw := &fakeGateway{}
	store := NewStore[bean, beanPayload](gw, DefaultMessages("bean"), WithValidator(requiredName{}))

	_, err := store.Save(context.Background(), beanPayload{}, nil)
	require.Error(t, err)
	require.Zero(t, gw.calls)
}

func TestDelete_DeclinedLeavesCollection(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	store := seeded(t, gw)
	before := store.Items()
	calls := gw.calls

	var asked string
	ok := store.Delete(context.Background(), 1, ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	}))

	require.False(t, ok)
	require.Equal(t, before, store.Items())
	require.Equal(t, calls, gw.calls)
	require.Contains(t, asked, "cannot be restored")
}

func TestDelete_ConfirmedRemovesOnlyThatItem(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}}
	store := seeded(t, gw)

	pending := store.RequestDelete(2)
	require.Equal(t, int64(2), pending.ID())
	require.True(t, pending.Confirm(context.Background()))
	require.False(t, pending.Confirm(context.Background()))

	require.Equal(t, []bean{{ID: 1, Name: "a"}, {ID: 3, Name: "c"}}, store.Items())
}

func TestDelete_FailureReturnsFalse(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "a"}}}
	store := seeded(t, gw)
	gw.failAll = statusErr{code: 404}

	require.False(t, store.Delete(context.Background(), 1, AlwaysConfirm))
	require.Len(t, store.Items(), 1)
	msg, _ := store.Message()
	require.Equal(t, "failed to delete", msg.Text)
}

func TestPendingDelete_CancelBlocksLaterConfirm(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 1, Name: "a"}}}
	store := seeded(t, gw)

	pending := store.RequestDelete(1)
	require.False(t, pending.Cancel())
	require.False(t, pending.Confirm(context.Background()))
	require.Len(t, store.Items(), 1)
}

func TestReplace_SwapsEchoedItem(t *testing.T) {
	gw := &fakeGateway{items: []bean{{ID: 7, Name: "PENDING"}, {ID: 8, Name: "PAID"}}}
	store := seeded(t, gw)

	_, err := store.Replace(context.Background(), 7, func(context.Context) (bean, error) {
		return bean{ID: 7, Name: "SHIPPING"}, nil
	}, "status changed", "failed to change status")
	require.NoError(t, err)

	got, ok := store.Find(7)
	require.True(t, ok)
	require.Equal(t, "SHIPPING", got.Name)
	other, _ := store.Find(8)
	require.Equal(t, "PAID", other.Name)
}

func TestBoard_MessagesExpire(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	board := NewBoard(DefaultMessageTTL, func() time.Time { return now })

	board.Post(KindWarning, "first")
	board.Post(KindError, "second")
	msg, ok := board.Current()
	require.True(t, ok)
	require.Equal(t, "second", msg.Text)

	now = now.Add(3 * time.Second)
	_, ok = board.Current()
	require.False(t, ok)
}

func TestEditSession(t *testing.T) {
	var session EditSession[bean]
	require.Nil(t, session.ID())

	session.Begin(bean{ID: 4, Name: "Kenya AA"})
	require.Equal(t, int64(4), *session.ID())
	item, ok := session.Current()
	require.True(t, ok)
	require.Equal(t, "Kenya AA", item.Name)

	session.Clear()
	_, ok = session.Current()
	require.False(t, ok)
}

// gatedGateway parks List and Update until the test releases them.
type gatedGateway struct {
	fakeGateway
	entered    chan string
	listGate   chan struct{}
	updateGate chan struct{}
	listed     []bean
}

func (g *gatedGateway) List(ctx context.Context) ([]bean, error) {
	g.entered <- "list"
	<-g.listGate
	return append([]bean(nil), g.listed...), nil
}

func (g *gatedGateway) Update(_ context.Context, id int64, p beanPayload) (bean, error) {
	g.entered <- "update"
	<-g.updateGate
	return bean{ID: id, Name: p.Name}, nil
}

func TestStore_OverlappingCallsLastResolutionWins(t *testing.T) {
	ctx := context.Background()
	gw := &gatedGateway{
		entered:    make(chan string, 2),
		listGate:   make(chan struct{}),
		updateGate: make(chan struct{}),
		listed:     []bean{{ID: 1, Name: "from list"}},
	}
	store := NewStore[bean, beanPayload](gw, DefaultMessages("bean"))
	store.prepend(bean{ID: 1, Name: "original"})
	require.False(t, store.Busy())

	fetchDone := make(chan error, 1)
	go func() { fetchDone <- store.FetchAll(ctx) }()
	require.Equal(t, "list", <-gw.entered)

	saveDone := make(chan error, 1)
	go func() {
		id := int64(1)
		_, err := store.Save(ctx, beanPayload{Name: "from save"}, &id)
		saveDone <- err
	}()
	require.Equal(t, "update", <-gw.entered)
	require.True(t, store.Busy())

	close(gw.updateGate)
	require.NoError(t, <-saveDone)
	require.True(t, store.Busy(), "fetch still in flight")
	require.Equal(t, []bean{{ID: 1, Name: "from save"}}, store.Items())

	close(gw.listGate)
	require.NoError(t, <-fetchDone)
	require.False(t, store.Busy())
	require.Equal(t, []bean{{ID: 1, Name: "from list"}}, store.Items())
}
