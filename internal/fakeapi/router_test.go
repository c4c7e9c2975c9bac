package fakeapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/coffee-admin/internal/clients/http/coffee"
	membersdomain "github.com/Apurer/coffee-admin/internal/domains/members/domain"
	ordersdomain "github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	productsdomain "github.com/Apurer/coffee-admin/internal/domains/products/domain"
	apierrors "github.com/Apurer/coffee-admin/internal/shared/errors"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)
}

func newServer(t *testing.T) (*coffee.Client, *Backend) {
	t.Helper()
	backend := NewBackend(nil, fixedClock)
	srv := httptest.NewServer(NewRouter(backend))
	t.Cleanup(srv.Close)
	c, err := coffee.New(srv.URL, coffee.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c, backend
}

func pngUpload(name string) productsdomain.Upload {
	return productsdomain.Upload{
		Filename:    name,
		ContentType: "image/png",
		Open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("png:" + name)), nil
		},
	}
}

func TestProducts_CreateAndServeUploads(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	thumb := pngUpload("thumb.png")
	created, err := c.Products().Create(ctx, productsdomain.Payload{
		ProductName:  "Kenya AA",
		BasePrice:    19000,
		Continent:    "Africa",
		Nationality:  "Kenya",
		Type:         "Washed",
		Thumbnail:    &thumb,
		DetailImages: []productsdomain.Upload{pngUpload("d1.png"), pngUpload("d2.png")},
		Options:      []productsdomain.OptionInput{{OptionValue: "200g", Stock: 10}, {OptionValue: "500g", ExtraPrice: 20000, Stock: 3}},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ProductID)
	require.Len(t, created.Options, 2)
	require.NotNil(t, created.Options[1].VariantID)
	require.Len(t, created.DetailImages, 2)

	rc, err := c.FetchUpload(ctx, created.ThumbnailImg)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	require.Equal(t, "png:thumb.png", string(body))

	list, err := c.Products().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Kenya AA", list[0].ProductName)
}

func TestProducts_RejectsMissingThumbnail(t *testing.T) {
	c, _ := newServer(t)

	_, err := c.Products().Create(context.Background(), productsdomain.Payload{
		ProductName: "Kenya AA",
		BasePrice:   19000,
		Options:     []productsdomain.OptionInput{{OptionValue: "200g"}},
	})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, resource.StatusOf(err))

	var problem apierrors.ProblemDetail
	require.ErrorAs(t, err, &problem)
	require.Equal(t, apierrors.TypeValidation, problem.Type)
}

func TestMembers_DuplicateEmailConflicts(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	_, err := c.Members().Create(ctx, membersdomain.Payload{Email: "kim@example.com", Password: "pw", Name: "Kim"})
	require.NoError(t, err)

	_, err = c.Members().Create(ctx, membersdomain.Payload{Email: "KIM@example.com", Password: "pw", Name: "Other"})
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, resource.StatusOf(err))
}

func TestMembers_UpdateKeepsPassword(t *testing.T) {
	c, backend := newServer(t)
	ctx := context.Background()

	m, err := c.Members().Create(ctx, membersdomain.Payload{Email: "lee@example.com", Password: "secret", Name: "Lee"})
	require.NoError(t, err)
	require.Equal(t, 2024, m.CreatedAt.Year())

	updated, err := c.Members().Update(ctx, m.MemberID, membersdomain.Payload{Email: "lee@example.com", Name: "Lee Junho", Phone: "010-1234-5678"})
	require.NoError(t, err)
	require.Equal(t, "Lee Junho", updated.Name)
	require.True(t, backend.Members.PasswordMatches(m.MemberID, "secret"))
}

func TestOrders_CreatePricesVariantsAndUpdatesStatus(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	member, err := c.Members().Create(ctx, membersdomain.Payload{
		Email: "park@example.com", Password: "pw", Name: "Park", Address: "7 Jungang-ro",
	})
	require.NoError(t, err)
	thumb := pngUpload("t.png")
	product, err := c.Products().Create(ctx, productsdomain.Payload{
		ProductName: "Colombia Huila",
		BasePrice:   15000,
		Thumbnail:   &thumb,
		Options:     []productsdomain.OptionInput{{OptionValue: "200g"}, {OptionValue: "1kg", ExtraPrice: 45000}},
	})
	require.NoError(t, err)

	order, err := c.Orders().Create(ctx, ordersdomain.Payload{
		MemberID: member.MemberID,
		Items: []ordersdomain.LineInput{
			{VariantID: *product.Options[0].VariantID, Quantity: 2},
			{VariantID: *product.Options[1].VariantID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, ordersdomain.StatusPending, order.Status)
	require.Equal(t, 2*15000+60000, order.TotalAmount)
	require.Equal(t, "7 Jungang-ro", order.ShippingAddress)
	require.Equal(t, 3, order.Quantity())

	shipped, err := c.Orders().UpdateStatus(ctx, order.OrderID, ordersdomain.StatusShipping)
	require.NoError(t, err)
	require.Equal(t, ordersdomain.StatusShipping, shipped.Status)
	require.Equal(t, order.TotalAmount, shipped.TotalAmount)
	require.Equal(t, order.Items, shipped.Items)

	require.NoError(t, c.Orders().Delete(ctx, order.OrderID))
	list, err := c.Orders().List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestOrders_UnknownVariantRejected(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	member, err := c.Members().Create(ctx, membersdomain.Payload{Email: "a@example.com", Password: "pw", Name: "A"})
	require.NoError(t, err)

	_, err = c.Orders().Create(ctx, ordersdomain.Payload{
		MemberID: member.MemberID,
		Items:    []ordersdomain.LineInput{{VariantID: 999, Quantity: 1}},
	})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, resource.StatusOf(err))
}

func TestRouter_ProblemResponses(t *testing.T) {
	router := NewRouter(NewBackend(nil, fixedClock))

	cases := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "unknown route", method: http.MethodGet, target: "/api/unknown", status: http.StatusNotFound},
		{name: "bad id", method: http.MethodDelete, target: "/api/members/abc", status: http.StatusBadRequest},
		{name: "missing member", method: http.MethodDelete, target: "/api/members/42", status: http.StatusNotFound},
		{name: "bad status", method: http.MethodPatch, target: "/api/orders/1/status?status=LOST", status: http.StatusBadRequest},
		{name: "missing upload", method: http.MethodGet, target: "/uploads/products/1/none.png", status: http.StatusNotFound},
		{name: "product needs multipart", method: http.MethodPost, target: "/api/products", status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.target, nil)
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Header().Get("Content-Type"), "json")
			var problem apierrors.ProblemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			require.Equal(t, tc.status, problem.Status)
		})
	}
}

func TestRouter_EchoesRequestID(t *testing.T) {
	router := NewRouter(NewBackend(nil, fixedClock))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	req.Header.Set(coffee.HeaderRequestID, "abc-123")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get(coffee.HeaderRequestID))
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestSeedDefault(t *testing.T) {
	backend := NewBackend(nil, fixedClock)
	require.NoError(t, SeedDefault(context.Background(), backend))

	ctx := context.Background()
	products, err := backend.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	members, err := backend.Members.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	orders, err := backend.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 6)

	counts := map[ordersdomain.Status]int{}
	for _, o := range orders {
		counts[o.Status]++
	}
	require.Equal(t, 2, counts[ordersdomain.StatusPending])
	require.Equal(t, 1, counts[ordersdomain.StatusShipping])
}

func TestSeed_RejectsUnknownReferences(t *testing.T) {
	backend := NewBackend(nil, fixedClock)
	err := Seed(context.Background(), backend, []byte("orders:\n  - member: 3\n    lines: []\n"))
	require.Error(t, err)
}
