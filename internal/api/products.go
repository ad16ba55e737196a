package api

import (
	"context"
	"net/http"
)

// ProductsClient wraps /api/products.
type ProductsClient struct {
	c *Client
}

func (p *ProductsClient) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := p.c.do(ctx, http.MethodGet, "/api/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProductsClient) Get(ctx context.Context, id string) (Product, error) {
	var out Product
	if err := p.c.do(ctx, http.MethodGet, "/api/products/"+id, nil, nil, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (p *ProductsClient) Create(ctx context.Context, product Product) (Product, error) {
	if err := p.c.checkPayload(product); err != nil {
		return Product{}, err
	}
	var out Product
	if err := p.c.do(ctx, http.MethodPost, "/api/products", nil, product, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (p *ProductsClient) Update(ctx context.Context, id string, product Product) (Product, error) {
	if err := p.c.checkPayload(product); err != nil {
		return Product{}, err
	}
	var out Product
	if err := p.c.do(ctx, http.MethodPut, "/api/products/"+id, nil, product, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (p *ProductsClient) Delete(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, nil)
}
