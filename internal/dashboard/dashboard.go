// Package dashboard aggregates every collection the landing view shows and
// maintains the id-to-name caches the inventory view resolves display names
// from.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
	"github.com/stockroom-erp/stockroom-cli/internal/browse"
)

// InventoryView projects an inventory record onto display names.
type InventoryView struct {
	ID                string
	ProductName       string
	WarehouseName     string
	QtyOnHand         int
	QtyReserved       int
	ReferenceDocument string
}

// Summary carries the headline numbers of the landing view.
type Summary struct {
	Products       int
	Users          int
	Warehouses     int
	Suppliers      int
	SalesOrders    int
	StockValue     float64
	PurchaseOrders api.PurchaseOrderStatistics
}

// Dashboard owns one list view-model per collection. Child views receive the
// lists; their change events keep the derived caches current.
type Dashboard struct {
	logger  *slog.Logger
	clients *api.Set

	Products    *browse.List[api.Product]
	Users       *browse.List[api.User]
	Warehouses  *browse.List[api.Warehouse]
	Suppliers   *browse.List[api.Supplier]
	Inventories *browse.List[api.InventoryRecord]
	SalesOrders *browse.List[api.SalesOrder]

	mu             sync.RWMutex
	productNames   map[string]string
	warehouseNames map[string]string
	poStats        api.PurchaseOrderStatistics
}

// New constructs the dashboard over the client set.
func New(clients *api.Set, perPage int, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dashboard{
		logger:         logger,
		clients:        clients,
		Products:       browse.NewList(perPage, func(p api.Product) string { return p.ID }),
		Users:          browse.NewList(perPage, func(u api.User) string { return u.ID }),
		Warehouses:     browse.NewList(perPage, func(w api.Warehouse) string { return w.ID }),
		Suppliers:      browse.NewList(perPage, func(s api.Supplier) string { return s.ID }),
		Inventories:    browse.NewList(perPage, func(r api.InventoryRecord) string { return r.ID }),
		SalesOrders:    browse.NewList(perPage, func(o api.SalesOrder) string { return o.ID }),
		productNames:   make(map[string]string),
		warehouseNames: make(map[string]string),
	}

	d.Products.OnChange(func(items []api.Product) {
		names := make(map[string]string, len(items))
		for _, p := range items {
			names[p.ID] = p.Name
		}
		d.mu.Lock()
		d.productNames = names
		d.mu.Unlock()
	})
	d.Warehouses.OnChange(func(items []api.Warehouse) {
		names := make(map[string]string, len(items))
		for _, w := range items {
			names[w.ID] = w.Name
		}
		d.mu.Lock()
		d.warehouseNames = names
		d.mu.Unlock()
	})

	return d
}

// Load fetches every collection concurrently and waits for all of them, so
// the inventory projection never runs against half-loaded lookup maps.
func (d *Dashboard) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.Products.Load(ctx, d.clients.Products.List)
	})
	g.Go(func() error {
		return d.Users.Load(ctx, d.clients.Users.List)
	})
	g.Go(func() error {
		return d.Warehouses.Load(ctx, d.clients.Warehouses.List)
	})
	g.Go(func() error {
		return d.Suppliers.Load(ctx, d.clients.Suppliers.List)
	})
	g.Go(func() error {
		return d.Inventories.Load(ctx, d.clients.Inventories.List)
	})
	g.Go(func() error {
		return d.SalesOrders.Load(ctx, d.clients.SalesOrders.List)
	})
	g.Go(func() error {
		stats, err := d.clients.PurchaseOrders.Statistics(ctx)
		if err != nil {
			return err
		}
		d.mu.Lock()
		d.poStats = stats
		d.mu.Unlock()
		return nil
	})

	return g.Wait()
}

// InventoryViews resolves product and warehouse names through the lookup
// caches; unknown ids fall back to the raw id.
func (d *Dashboard) InventoryViews() []InventoryView {
	records := d.Inventories.Items()
	d.mu.RLock()
	defer d.mu.RUnlock()

	views := make([]InventoryView, 0, len(records))
	for _, r := range records {
		productName, ok := d.productNames[r.ProductID]
		if !ok {
			productName = r.ProductID
		}
		warehouseName, ok := d.warehouseNames[r.WarehouseID]
		if !ok {
			warehouseName = r.WarehouseID
		}
		views = append(views, InventoryView{
			ID:                r.ID,
			ProductName:       productName,
			WarehouseName:     warehouseName,
			QtyOnHand:         r.QtyOnHand,
			QtyReserved:       r.QtyReserved,
			ReferenceDocument: r.ReferenceDocument,
		})
	}
	return views
}

// Summarize builds the landing numbers from the loaded collections.
func (d *Dashboard) Summarize() Summary {
	stockValue := 0.0
	for _, p := range d.Products.Items() {
		stockValue += p.Price * float64(p.Stock)
	}
	d.mu.RLock()
	stats := d.poStats
	d.mu.RUnlock()
	return Summary{
		Products:       len(d.Products.Items()),
		Users:          len(d.Users.Items()),
		Warehouses:     len(d.Warehouses.Items()),
		Suppliers:      len(d.Suppliers.Items()),
		SalesOrders:    len(d.SalesOrders.Items()),
		StockValue:     stockValue,
		PurchaseOrders: stats,
	}
}
