// Package api wraps the remote warehouse REST API: one stateless client per
// resource collection, all sharing a base client that attaches the bearer
// token from an injected TokenSource. No retries, no caching, no request
// deduplication; errors are mapped to sentinels and handed to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stockroom-erp/stockroom-cli/internal/session"
)

// Client issues JSON requests against the API origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     session.TokenSource
	validate   *validator.Validate
}

// NewClient constructs the base client.
func NewClient(baseURL string, timeout time.Duration, tokens session.TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		validate:   validator.New(),
	}
}

// Set bundles one wrapper per remote resource collection.
type Set struct {
	Auth           *AuthClient
	Products       *ProductsClient
	Users          *UsersClient
	Warehouses     *WarehousesClient
	Suppliers      *SuppliersClient
	Inventories    *InventoriesClient
	SalesOrders    *SalesOrdersClient
	PurchaseOrders *PurchaseOrdersClient
}

// NewSet builds the full wrapper set over one base client.
func NewSet(c *Client) *Set {
	return &Set{
		Auth:           &AuthClient{c: c},
		Products:       &ProductsClient{c: c},
		Users:          &UsersClient{c: c},
		Warehouses:     &WarehousesClient{c: c},
		Suppliers:      &SuppliersClient{c: c},
		Inventories:    &InventoriesClient{c: c},
		SalesOrders:    &SalesOrdersClient{c: c},
		PurchaseOrders: &PurchaseOrdersClient{c: c},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		switch {
		case err == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case err != nil && !errors.Is(err, session.ErrNoToken):
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return statusError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", method, path, err)
	}
	return nil
}

type problemBody struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func statusError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := ""
	var problem problemBody
	if err := json.Unmarshal(raw, &problem); err == nil {
		switch {
		case problem.Detail != "":
			detail = problem.Detail
		case problem.Message != "":
			detail = problem.Message
		case problem.Title != "":
			detail = problem.Title
		}
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrDuplicate
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = ErrValidation
	default:
		return fmt.Errorf("api: %s %s: status %d: %s", method, path, resp.StatusCode, detail)
	}
	return fmt.Errorf("%w: %s %s: %s", sentinel, method, path, detail)
}

// checkPayload validates an outbound payload before any network call.
func (c *Client) checkPayload(payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
