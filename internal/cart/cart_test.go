package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
	"github.com/stockroom-erp/stockroom-cli/internal/statestore"
)

func newCart(t *testing.T) (*Cart, statestore.Store) {
	t.Helper()
	store, err := statestore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	c, err := Load(context.Background(), store)
	require.NoError(t, err)
	return c, store
}

func TestAddIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	c, store := newCart(t)

	product := api.Product{ID: "P1", Name: "Cable", Price: 10}
	require.NoError(t, c.Add(ctx, product))
	require.NoError(t, c.Add(ctx, product))

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, 20.0, c.Total())

	// Cart state survives a reload from the store.
	reloaded, err := Load(ctx, store)
	require.NoError(t, err)
	require.Equal(t, lines, reloaded.Lines())
}

func TestSetQuantityClampsToOne(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, api.Product{ID: "P1", Name: "Cable", Price: 10}))

	require.NoError(t, c.SetQuantity(ctx, "P1", 0))
	require.Equal(t, 1, c.Lines()[0].Quantity)

	require.NoError(t, c.SetQuantity(ctx, "P1", 5))
	require.Equal(t, 5, c.Lines()[0].Quantity)

	require.Error(t, c.SetQuantity(ctx, "missing", 2))
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, api.Product{ID: "P1", Price: 10}))
	require.NoError(t, c.Add(ctx, api.Product{ID: "P2", Price: 5}))

	require.NoError(t, c.Remove(ctx, "P1"))
	require.Len(t, c.Lines(), 1)

	require.NoError(t, c.Clear(ctx))
	require.Empty(t, c.Lines())
}

type fakeLineCreator struct {
	mu      sync.Mutex
	created []api.SalesOrderLine
	failFor map[string]error
}

func (f *fakeLineCreator) CreateLine(ctx context.Context, line api.SalesOrderLine) (api.SalesOrderLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[line.ProductID]; ok {
		return api.SalesOrderLine{}, err
	}
	line.ID = "sol-" + line.ProductID
	f.created = append(f.created, line)
	return line, nil
}

func TestCheckoutAllSucceedClearsCart(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, api.Product{ID: "P1", Name: "Cable", Price: 10}))
	require.NoError(t, c.Add(ctx, api.Product{ID: "P1", Name: "Cable", Price: 10}))

	creator := &fakeLineCreator{}
	result, err := c.Checkout(ctx, creator, "so-1")
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	// Exactly one creation call, quantity 2, unit price 10.
	require.Len(t, creator.created, 1)
	require.Equal(t, 2, creator.created[0].Quantity)
	require.Equal(t, 10.0, creator.created[0].UnitPrice)
	require.Equal(t, "so-1", creator.created[0].SalesOrderID)

	require.Empty(t, c.Lines())
}

func TestCheckoutPartialFailureKeepsFailedLines(t *testing.T) {
	ctx := context.Background()
	c, store := newCart(t)
	require.NoError(t, c.Add(ctx, api.Product{ID: "P1", Price: 10}))
	require.NoError(t, c.Add(ctx, api.Product{ID: "P2", Price: 5}))

	creator := &fakeLineCreator{failFor: map[string]error{"P2": errors.New("stock exhausted")}}
	result, err := c.Checkout(ctx, creator, "so-1")
	require.NoError(t, err)
	require.False(t, result.Succeeded())
	require.Len(t, result.Created, 1)
	require.Len(t, result.Failed, 1)
	require.Equal(t, "P2", result.Failed[0].Line.ProductID)
	require.Equal(t, "stock exhausted", result.Failed[0].Err)

	// Only the failed line remains, and that survives persistence.
	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, "P2", lines[0].ProductID)

	reloaded, err := Load(ctx, store)
	require.NoError(t, err)
	require.Equal(t, lines, reloaded.Lines())
}

func TestCheckoutEmptyCartIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	creator := &fakeLineCreator{}
	result, err := c.Checkout(ctx, creator, "so-1")
	require.NoError(t, err)
	require.True(t, result.Succeeded())
	require.Empty(t, creator.created)
}
