package api

import (
	"context"
	"net/http"
)

// InventoriesClient wraps /api/inventories.
type InventoriesClient struct {
	c *Client
}

func (i *InventoriesClient) List(ctx context.Context) ([]InventoryRecord, error) {
	var out []InventoryRecord
	if err := i.c.do(ctx, http.MethodGet, "/api/inventories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (i *InventoriesClient) Create(ctx context.Context, record InventoryRecord) (InventoryRecord, error) {
	if err := i.c.checkPayload(record); err != nil {
		return InventoryRecord{}, err
	}
	var out InventoryRecord
	if err := i.c.do(ctx, http.MethodPost, "/api/inventories", nil, record, &out); err != nil {
		return InventoryRecord{}, err
	}
	return out, nil
}

func (i *InventoriesClient) Update(ctx context.Context, id string, record InventoryRecord) (InventoryRecord, error) {
	if err := i.c.checkPayload(record); err != nil {
		return InventoryRecord{}, err
	}
	var out InventoryRecord
	if err := i.c.do(ctx, http.MethodPut, "/api/inventories/"+id, nil, record, &out); err != nil {
		return InventoryRecord{}, err
	}
	return out, nil
}

func (i *InventoriesClient) Delete(ctx context.Context, id string) error {
	return i.c.do(ctx, http.MethodDelete, "/api/inventories/"+id, nil, nil, nil)
}
