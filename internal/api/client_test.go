package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
	"github.com/stockroom-erp/stockroom-cli/internal/apitest"
	"github.com/stockroom-erp/stockroom-cli/internal/session"
)

// staticTokens hands out a fixed token, or ErrNoToken when empty.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token(context.Context) (string, error) {
	if s.token == "" {
		return "", session.ErrNoToken
	}
	return s.token, nil
}

func newSet(t *testing.T, srv *apitest.Server, token string) *api.Set {
	t.Helper()
	client := api.NewClient(srv.URL, 5*time.Second, &staticTokens{token: token})
	return api.NewSet(client)
}

func TestLoginThenAuthorizedRequest(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("ops@stockroom.test", "s3cret", session.RoleAdmin)
	srv.SeedProduct(api.Product{Name: "Pallet Jack", SKU: "PJ-100", Price: 450})

	ctx := context.Background()
	set := newSet(t, srv, "")

	token, err := set.Auth.Login(ctx, "ops@stockroom.test", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authed := newSet(t, srv, token)
	products, err := authed.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pallet Jack", products[0].Name)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("ops@stockroom.test", "s3cret", session.RoleAdmin)

	set := newSet(t, srv, "")
	_, err := set.Auth.Login(context.Background(), "ops@stockroom.test", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestStatusMappedToSentinels(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	ctx := context.Background()

	t.Run("missing token is unauthorized", func(t *testing.T) {
		set := newSet(t, srv, "")
		_, err := set.Products.List(ctx)
		require.ErrorIs(t, err, api.ErrUnauthorized)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		set := newSet(t, srv, srv.TokenFor(session.RoleAdmin))
		_, err := set.Products.Get(ctx, "nope")
		require.ErrorIs(t, err, api.ErrNotFound)
	})
}

func TestPayloadValidatedBeforeNetwork(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	set := newSet(t, srv, srv.TokenFor(session.RoleAdmin))

	_, err := set.PurchaseOrders.Create(context.Background(), api.PurchaseOrderCreate{
		SupplierID: "sup-1",
	})
	require.ErrorIs(t, err, api.ErrValidation)

	_, err = set.Users.Create(context.Background(), api.User{FirstName: "No", LastName: "Email"})
	require.ErrorIs(t, err, api.ErrValidation)
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	set := newSet(t, srv, srv.TokenFor(session.RoleWarehouseManager))
	ctx := context.Background()

	created, err := set.PurchaseOrders.Create(ctx, api.PurchaseOrderCreate{
		SupplierID:       "sup-1",
		ExpectedDelivery: time.Now().Add(72 * time.Hour),
		OrderLines: []api.OrderLineCreate{
			{ProductID: "prod-1", Quantity: 4, UnitPrice: 25},
			{ProductID: "prod-2", Quantity: 1, UnitPrice: 99.5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, api.StatusDraft, created.Status)
	assert.NotEmpty(t, created.Reference)
	require.Len(t, created.OrderLines, 2)
	assert.InDelta(t, 199.5, created.Total(), 0.001)

	got, err := set.PurchaseOrders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	notes := "rush order"
	updated, err := set.PurchaseOrders.Update(ctx, created.ID, api.PurchaseOrderUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "rush order", updated.Notes)

	advanced, err := set.PurchaseOrders.SetStatus(ctx, created.ID, api.StatusCreated)
	require.NoError(t, err)
	assert.Equal(t, api.StatusCreated, advanced.Status)

	byStatus, err := set.PurchaseOrders.List(ctx, &api.PurchaseOrderFilter{Status: api.StatusCreated})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)

	empty, err := set.PurchaseOrders.List(ctx, &api.PurchaseOrderFilter{Status: api.StatusReceived})
	require.NoError(t, err)
	assert.Empty(t, empty)

	line, err := set.PurchaseOrders.AddLine(ctx, created.ID, api.OrderLineCreate{
		ProductID: "prod-3", Quantity: 2, UnitPrice: 10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 20, line.Total, 0.001)

	line, err = set.PurchaseOrders.UpdateLine(ctx, created.ID, line.ID, api.OrderLineCreate{
		ProductID: "prod-3", Quantity: 3, UnitPrice: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)

	require.NoError(t, set.PurchaseOrders.RemoveLine(ctx, created.ID, line.ID))

	got, err = set.PurchaseOrders.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.OrderLines, 2)
	assert.InDelta(t, 199.5, got.Total(), 0.001)

	require.NoError(t, set.PurchaseOrders.Delete(ctx, created.ID))
	_, err = set.PurchaseOrders.Get(ctx, created.ID)
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestPurchaseOrderBulkAndStatistics(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	set := newSet(t, srv, srv.TokenFor(session.RoleWarehouseManager))
	ctx := context.Background()

	a := srv.SeedPurchaseOrder(api.PurchaseOrder{Status: api.StatusCreated, TotalAmount: 100})
	b := srv.SeedPurchaseOrder(api.PurchaseOrder{Status: api.StatusCreated, TotalAmount: 50})
	srv.SeedPurchaseOrder(api.PurchaseOrder{Status: api.StatusReceived, TotalAmount: 30})

	updated, err := set.PurchaseOrders.BulkSetStatus(ctx, []string{a.ID, b.ID}, api.StatusApproved)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	for _, po := range updated {
		assert.Equal(t, api.StatusApproved, po.Status)
	}

	stats, err := set.PurchaseOrders.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Approved)
	assert.Equal(t, 1, stats.Received)
	assert.InDelta(t, 180, stats.TotalAmount, 0.001)
}

func TestSupplierToggleStatus(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	set := newSet(t, srv, srv.TokenFor(session.RoleAdmin))
	ctx := context.Background()

	sup := srv.SeedSupplier(api.Supplier{Name: "Acme Logistics", Active: true})

	toggled, err := set.Suppliers.ToggleStatus(ctx, sup.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = set.Suppliers.ToggleStatus(ctx, sup.ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestUsersCRUD(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	set := newSet(t, srv, srv.TokenFor(session.RoleAdmin))
	ctx := context.Background()

	created, err := set.Users.Create(ctx, api.User{
		FirstName: "Nadia",
		LastName:  "Benali",
		Email:     "nadia@stockroom.test",
		Role:      session.RoleClient,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password)

	created.Role = session.RoleWarehouseManager
	updated, err := set.Users.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, session.RoleWarehouseManager, updated.Role)

	require.NoError(t, set.Users.Delete(ctx, created.ID))

	users, err := set.Users.List(ctx)
	require.NoError(t, err)
	for _, u := range users {
		assert.NotEqual(t, created.ID, u.ID)
	}
}

func TestSalesOrderLines(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	set := newSet(t, srv, srv.TokenFor(session.RoleClient))
	ctx := context.Background()

	order, err := set.SalesOrders.Create(ctx, api.SalesOrder{UserID: "u-1", OrderStatus: "CREATED"})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)

	_, err = set.SalesOrders.CreateLine(ctx, api.SalesOrderLine{
		ProductID:    "prod-1",
		SalesOrderID: order.ID,
		Quantity:     2,
		UnitPrice:    12.5,
	})
	require.NoError(t, err)

	srv.FailSaleLine("prod-broken", "out of stock")
	_, err = set.SalesOrders.CreateLine(ctx, api.SalesOrderLine{
		ProductID:    "prod-broken",
		SalesOrderID: order.ID,
		Quantity:     1,
		UnitPrice:    5,
	})
	require.ErrorIs(t, err, api.ErrValidation)

	lines, err := set.SalesOrders.ListLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "prod-1", lines[0].ProductID)
}
