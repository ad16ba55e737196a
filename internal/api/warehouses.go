package api

import (
	"context"
	"net/http"
)

// WarehousesClient wraps /api/warehouses.
type WarehousesClient struct {
	c *Client
}

func (w *WarehousesClient) List(ctx context.Context) ([]Warehouse, error) {
	var out []Warehouse
	if err := w.c.do(ctx, http.MethodGet, "/api/warehouses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *WarehousesClient) Create(ctx context.Context, warehouse Warehouse) (Warehouse, error) {
	if err := w.c.checkPayload(warehouse); err != nil {
		return Warehouse{}, err
	}
	var out Warehouse
	if err := w.c.do(ctx, http.MethodPost, "/api/warehouses", nil, warehouse, &out); err != nil {
		return Warehouse{}, err
	}
	return out, nil
}

func (w *WarehousesClient) Update(ctx context.Context, id string, warehouse Warehouse) (Warehouse, error) {
	if err := w.c.checkPayload(warehouse); err != nil {
		return Warehouse{}, err
	}
	var out Warehouse
	if err := w.c.do(ctx, http.MethodPut, "/api/warehouses/"+id, nil, warehouse, &out); err != nil {
		return Warehouse{}, err
	}
	return out, nil
}

func (w *WarehousesClient) Delete(ctx context.Context, id string) error {
	return w.c.do(ctx, http.MethodDelete, "/api/warehouses/"+id, nil, nil, nil)
}
