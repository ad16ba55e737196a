package api

import (
	"context"
	"net/http"
)

// SalesOrdersClient wraps /api/sales-orders and /api/sales-order-lines.
type SalesOrdersClient struct {
	c *Client
}

func (s *SalesOrdersClient) List(ctx context.Context) ([]SalesOrder, error) {
	var out []SalesOrder
	if err := s.c.do(ctx, http.MethodGet, "/api/sales-orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SalesOrdersClient) Create(ctx context.Context, order SalesOrder) (SalesOrder, error) {
	if err := s.c.checkPayload(order); err != nil {
		return SalesOrder{}, err
	}
	var out SalesOrder
	if err := s.c.do(ctx, http.MethodPost, "/api/sales-orders", nil, order, &out); err != nil {
		return SalesOrder{}, err
	}
	return out, nil
}

func (s *SalesOrdersClient) ListLines(ctx context.Context) ([]SalesOrderLine, error) {
	var out []SalesOrderLine
	if err := s.c.do(ctx, http.MethodGet, "/api/sales-order-lines", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLine posts a single order line; checkout issues one call per cart
// line through this method.
func (s *SalesOrdersClient) CreateLine(ctx context.Context, line SalesOrderLine) (SalesOrderLine, error) {
	if err := s.c.checkPayload(line); err != nil {
		return SalesOrderLine{}, err
	}
	var out SalesOrderLine
	if err := s.c.do(ctx, http.MethodPost, "/api/sales-order-lines", nil, line, &out); err != nil {
		return SalesOrderLine{}, err
	}
	return out, nil
}
