package api

import (
	"context"
	"net/http"
)

// SuppliersClient wraps /api/suppliers.
type SuppliersClient struct {
	c *Client
}

func (s *SuppliersClient) List(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	if err := s.c.do(ctx, http.MethodGet, "/api/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SuppliersClient) Get(ctx context.Context, id string) (Supplier, error) {
	var out Supplier
	if err := s.c.do(ctx, http.MethodGet, "/api/suppliers/"+id, nil, nil, &out); err != nil {
		return Supplier{}, err
	}
	return out, nil
}

func (s *SuppliersClient) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	if err := s.c.checkPayload(supplier); err != nil {
		return Supplier{}, err
	}
	var out Supplier
	if err := s.c.do(ctx, http.MethodPost, "/api/suppliers", nil, supplier, &out); err != nil {
		return Supplier{}, err
	}
	return out, nil
}

func (s *SuppliersClient) Update(ctx context.Context, id string, supplier Supplier) (Supplier, error) {
	if err := s.c.checkPayload(supplier); err != nil {
		return Supplier{}, err
	}
	var out Supplier
	if err := s.c.do(ctx, http.MethodPut, "/api/suppliers/"+id, nil, supplier, &out); err != nil {
		return Supplier{}, err
	}
	return out, nil
}

func (s *SuppliersClient) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/suppliers/"+id, nil, nil, nil)
}

type supplierStatusPatch struct {
	Active bool `json:"active"`
}

// ToggleStatus flips the supplier's active flag.
func (s *SuppliersClient) ToggleStatus(ctx context.Context, id string, active bool) (Supplier, error) {
	var out Supplier
	if err := s.c.do(ctx, http.MethodPatch, "/api/suppliers/"+id+"/status", nil, supplierStatusPatch{Active: active}, &out); err != nil {
		return Supplier{}, err
	}
	return out, nil
}
