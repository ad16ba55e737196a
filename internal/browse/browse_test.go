package browse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

func products(names ...string) []api.Product {
	out := make([]api.Product, 0, len(names))
	for i, name := range names {
		out = append(out, api.Product{ID: fmt.Sprintf("p%d", i+1), Name: name, SKU: "SKU-" + name, Price: float64(i + 1)})
	}
	return out
}

func TestFilterMatchesCaseInsensitively(t *testing.T) {
	items := products("Laptop Stand", "USB Hub", "Monitor")

	require.Equal(t, items, Filter(items, ""))
	require.Equal(t, items, Filter(items, "  "))

	got := Filter(items, "laptop")
	require.Len(t, got, 1)
	require.Equal(t, "Laptop Stand", got[0].Name)

	got = Filter(items, "USB")
	require.Len(t, got, 1)

	// Matches any declared field, here the SKU.
	got = Filter(items, "sku-monitor")
	require.Len(t, got, 1)
	require.Equal(t, "Monitor", got[0].Name)

	require.Empty(t, Filter(items, "printer"))
}

func TestFilterMatchesNumericProjection(t *testing.T) {
	items := []api.Product{{ID: "p1", Name: "Cable", SKU: "C1", Price: 19.99}}
	require.Len(t, Filter(items, "19.99"), 1)
}

func TestPageSlicing(t *testing.T) {
	items := products("a", "b", "c", "d", "e")

	page := Page(items, 1, 2)
	require.Equal(t, []api.Product{items[0], items[1]}, page)

	page = Page(items, 3, 2)
	require.Equal(t, []api.Product{items[4]}, page)

	require.Nil(t, Page(items, 4, 2))

	p := NewPagination(3, 2, 5)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 5, p.Total)

	// Defaults clamp nonsense input.
	p = NewPagination(0, 0, 25)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.PerPage)
	require.Equal(t, 3, p.TotalPages)
}

func TestListLoadFilterAndPaginate(t *testing.T) {
	ctx := context.Background()
	list := NewList[api.Product](2, func(p api.Product) string { return p.ID })

	fetched := products("Laptop", "Laser Mouse", "Lamp", "Desk")
	require.NoError(t, list.Load(ctx, func(ctx context.Context) ([]api.Product, error) {
		return fetched, nil
	}))

	list.SetQuery("la")
	visible, p := list.Visible()
	require.Len(t, visible, 2)
	require.Equal(t, 3, p.Total)
	require.Equal(t, 2, p.TotalPages)

	list.SetPage(2)
	visible, _ = list.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, "Lamp", visible[0].Name)

	// A new query resets to the first page.
	list.SetQuery("desk")
	visible, p = list.Visible()
	require.Equal(t, 1, p.Page)
	require.Len(t, visible, 1)
}

func TestListLoadFailureSurfacesError(t *testing.T) {
	ctx := context.Background()
	list := NewList[api.Product](10, func(p api.Product) string { return p.ID })

	err := list.Load(ctx, func(ctx context.Context) ([]api.Product, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, "boom", list.Err())
	require.Empty(t, list.Items())
}

func TestListMutationsSpliceAndNotify(t *testing.T) {
	ctx := context.Background()
	list := NewList[api.Product](10, func(p api.Product) string { return p.ID })

	var events [][]api.Product
	list.OnChange(func(items []api.Product) { events = append(events, items) })

	require.NoError(t, list.Load(ctx, func(ctx context.Context) ([]api.Product, error) {
		return products("a", "b"), nil
	}))

	require.NoError(t, list.Create(ctx, func(ctx context.Context) (api.Product, error) {
		return api.Product{ID: "p9", Name: "c"}, nil
	}))
	require.Len(t, list.Items(), 3)

	require.NoError(t, list.Update(ctx, func(ctx context.Context) (api.Product, error) {
		return api.Product{ID: "p9", Name: "c2"}, nil
	}))
	items := list.Items()
	require.Equal(t, "c2", items[2].Name)

	require.NoError(t, list.Remove(ctx, "p1", func(ctx context.Context) error { return nil }))
	require.Len(t, list.Items(), 2)

	// load + create + update + remove all emitted the full collection.
	require.Len(t, events, 4)
	require.Len(t, events[3], 2)
}

func TestListMutationFailureLeavesCollection(t *testing.T) {
	ctx := context.Background()
	list := NewList[api.Product](10, func(p api.Product) string { return p.ID })
	require.NoError(t, list.Load(ctx, func(ctx context.Context) ([]api.Product, error) {
		return products("a"), nil
	}))

	err := list.Remove(ctx, "p1", func(ctx context.Context) error {
		return errors.New("delete rejected")
	})
	require.Error(t, err)
	require.Equal(t, "delete rejected", list.Err())
	require.Len(t, list.Items(), 1)
}
