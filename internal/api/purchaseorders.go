package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// PurchaseOrdersClient wraps /api/purchase-orders including the status patch,
// bulk status, statistics and nested order-line endpoints.
type PurchaseOrdersClient struct {
	c *Client
}

func (f *PurchaseOrderFilter) query() url.Values {
	if f == nil {
		return nil
	}
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.SupplierID != "" {
		q.Set("supplierId", f.SupplierID)
	}
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.Format(time.RFC3339))
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.Format(time.RFC3339))
	}
	if f.Reference != "" {
		q.Set("reference", f.Reference)
	}
	return q
}

func (p *PurchaseOrdersClient) List(ctx context.Context, filter *PurchaseOrderFilter) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	if err := p.c.do(ctx, http.MethodGet, "/api/purchase-orders", filter.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) Get(ctx context.Context, id string) (PurchaseOrder, error) {
	var out PurchaseOrder
	if err := p.c.do(ctx, http.MethodGet, "/api/purchase-orders/"+id, nil, nil, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) Create(ctx context.Context, draft PurchaseOrderCreate) (PurchaseOrder, error) {
	if err := p.c.checkPayload(draft); err != nil {
		return PurchaseOrder{}, err
	}
	var out PurchaseOrder
	if err := p.c.do(ctx, http.MethodPost, "/api/purchase-orders", nil, draft, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) Update(ctx context.Context, id string, patch PurchaseOrderUpdate) (PurchaseOrder, error) {
	var out PurchaseOrder
	if err := p.c.do(ctx, http.MethodPut, "/api/purchase-orders/"+id, nil, patch, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) Delete(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodDelete, "/api/purchase-orders/"+id, nil, nil, nil)
}

type statusPatch struct {
	Status PurchaseOrderStatus `json:"status"`
}

func (p *PurchaseOrdersClient) SetStatus(ctx context.Context, id string, status PurchaseOrderStatus) (PurchaseOrder, error) {
	var out PurchaseOrder
	if err := p.c.do(ctx, http.MethodPatch, "/api/purchase-orders/"+id+"/status", nil, statusPatch{Status: status}, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

type bulkStatusRequest struct {
	IDs    []string            `json:"ids"`
	Status PurchaseOrderStatus `json:"status"`
}

func (p *PurchaseOrdersClient) BulkSetStatus(ctx context.Context, ids []string, status PurchaseOrderStatus) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	if err := p.c.do(ctx, http.MethodPost, "/api/purchase-orders/bulk/status", nil, bulkStatusRequest{IDs: ids, Status: status}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) Statistics(ctx context.Context) (PurchaseOrderStatistics, error) {
	var out PurchaseOrderStatistics
	if err := p.c.do(ctx, http.MethodGet, "/api/purchase-orders/statistics", nil, nil, &out); err != nil {
		return PurchaseOrderStatistics{}, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) AddLine(ctx context.Context, orderID string, line OrderLineCreate) (OrderLine, error) {
	if err := p.c.checkPayload(line); err != nil {
		return OrderLine{}, err
	}
	var out OrderLine
	if err := p.c.do(ctx, http.MethodPost, "/api/purchase-orders/"+orderID+"/lines", nil, line, &out); err != nil {
		return OrderLine{}, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) UpdateLine(ctx context.Context, orderID, lineID string, line OrderLineCreate) (OrderLine, error) {
	if err := p.c.checkPayload(line); err != nil {
		return OrderLine{}, err
	}
	var out OrderLine
	if err := p.c.do(ctx, http.MethodPut, "/api/purchase-orders/"+orderID+"/lines/"+lineID, nil, line, &out); err != nil {
		return OrderLine{}, err
	}
	return out, nil
}

func (p *PurchaseOrdersClient) RemoveLine(ctx context.Context, orderID, lineID string) error {
	return p.c.do(ctx, http.MethodDelete, "/api/purchase-orders/"+orderID+"/lines/"+lineID, nil, nil, nil)
}
