// Package apitest runs an in-memory warehouse API over httptest for client
// and integration tests. It mirrors the remote API surface: JWT login, bearer
// auth, and the resource collections the client consumes.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

type account struct {
	user         api.User
	passwordHash []byte
}

// Server is the stub API. All fields are guarded by mu; handlers and seed
// helpers may be called from any goroutine.
type Server struct {
	*httptest.Server

	secret []byte

	mu             sync.Mutex
	accounts       map[string]account // keyed by email
	products       map[string]api.Product
	warehouses     map[string]api.Warehouse
	suppliers      map[string]api.Supplier
	inventories    map[string]api.InventoryRecord
	salesOrders    map[string]api.SalesOrder
	salesLines     map[string]api.SalesOrderLine
	purchaseOrders map[string]api.PurchaseOrder
	failSaleLines  map[string]string // productID -> error message
}

// New starts the stub server; Close is registered on the test cleanup by the
// caller via srv.Close.
func New() *Server {
	s := &Server{
		secret:         []byte("apitest-secret"),
		accounts:       make(map[string]account),
		products:       make(map[string]api.Product),
		warehouses:     make(map[string]api.Warehouse),
		suppliers:      make(map[string]api.Supplier),
		inventories:    make(map[string]api.InventoryRecord),
		salesOrders:    make(map[string]api.SalesOrder),
		salesLines:     make(map[string]api.SalesOrderLine),
		purchaseOrders: make(map[string]api.PurchaseOrder),
		failSaleLines:  make(map[string]string),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// SeedUser registers an account and returns it.
func (s *Server) SeedUser(email, password, role string) api.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user := api.User{ID: uuid.NewString(), Email: email, Role: role}
	s.accounts[email] = account{user: user, passwordHash: hash}
	return user
}

// SeedProduct stores a product, minting an id when absent.
func (s *Server) SeedProduct(p api.Product) api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products[p.ID] = p
	return p
}

// SeedWarehouse stores a warehouse.
func (s *Server) SeedWarehouse(w api.Warehouse) api.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	s.warehouses[w.ID] = w
	return w
}

// SeedSupplier stores a supplier.
func (s *Server) SeedSupplier(sup api.Supplier) api.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sup.ID == "" {
		sup.ID = uuid.NewString()
	}
	s.suppliers[sup.ID] = sup
	return sup
}

// SeedInventory stores an inventory record.
func (s *Server) SeedInventory(r api.InventoryRecord) api.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.inventories[r.ID] = r
	return r
}

// SeedSalesOrder stores a sales order header.
func (s *Server) SeedSalesOrder(o api.SalesOrder) api.SalesOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.salesOrders[o.ID] = o
	return o
}

// SeedPurchaseOrder stores a purchase order.
func (s *Server) SeedPurchaseOrder(po api.PurchaseOrder) api.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if po.ID == "" {
		po.ID = uuid.NewString()
	}
	s.purchaseOrders[po.ID] = po
	return po
}

// FailSaleLine makes sales-order-line creation fail for the given product.
func (s *Server) FailSaleLine(productID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaleLines[productID] = message
}

// SaleLines returns the created sales-order lines.
func (s *Server) SaleLines() []api.SalesOrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.SalesOrderLine, 0, len(s.salesLines))
	for _, line := range s.salesLines {
		out = append(out, line)
	}
	return out
}

// TokenFor mints a token the way login does, for tests that skip login.
func (s *Server) TokenFor(role string) string {
	return s.mintToken(api.User{ID: uuid.NewString(), Role: role})
}

func (s *Server) mintToken(user api.User) string {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Post("/", s.createUser)
			r.Get("/{id}", s.getUser)
			r.Put("/{id}", s.updateUser)
			r.Delete("/{id}", s.deleteUser)
		})

		r.Route("/api/products", crudRoutes(s, &s.products, func(p *api.Product, id string) { p.ID = id }))
		r.Route("/api/warehouses", crudRoutes(s, &s.warehouses, func(w *api.Warehouse, id string) { w.ID = id }))
		r.Route("/api/inventories", crudRoutes(s, &s.inventories, func(rec *api.InventoryRecord, id string) { rec.ID = id }))

		r.Route("/api/suppliers", func(r chi.Router) {
			crudRoutes(s, &s.suppliers, func(sup *api.Supplier, id string) { sup.ID = id })(r)
			r.Patch("/{id}/status", s.patchSupplierStatus)
		})

		r.Route("/api/sales-orders", func(r chi.Router) {
			r.Get("/", s.listSalesOrders)
			r.Post("/", s.createSalesOrder)
		})
		r.Route("/api/sales-order-lines", func(r chi.Router) {
			r.Get("/", s.listSaleLines)
			r.Post("/", s.createSaleLine)
		})

		r.Route("/api/purchase-orders", func(r chi.Router) {
			r.Get("/", s.listPurchaseOrders)
			r.Post("/", s.createPurchaseOrder)
			r.Get("/statistics", s.purchaseOrderStatistics)
			r.Post("/bulk/status", s.bulkPatchStatus)
			r.Get("/{id}", s.getPurchaseOrder)
			r.Put("/{id}", s.updatePurchaseOrder)
			r.Delete("/{id}", s.deletePurchaseOrder)
			r.Patch("/{id}/status", s.patchStatus)
			r.Post("/{id}/lines", s.addOrderLine)
			r.Put("/{id}/lines/{lineID}", s.updateOrderLine)
			r.Delete("/{id}/lines/{lineID}", s.removeOrderLine)
		})
	})

	return r
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) { return s.secret, nil }); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[creds.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": s.mintToken(acct.user)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message, "status": status})
}

func decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("bad payload: %v", err))
		return v, false
	}
	return v, true
}

// crudRoutes wires the uniform list/create/update/delete surface shared by
// the simple collections.
func crudRoutes[T any](s *Server, items *map[string]T, setID func(*T, string)) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			s.mu.Lock()
			out := make([]T, 0, len(*items))
			for _, item := range *items {
				out = append(out, item)
			}
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, out)
		})
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			item, ok := decode[T](w, req)
			if !ok {
				return
			}
			id := uuid.NewString()
			setID(&item, id)
			s.mu.Lock()
			(*items)[id] = item
			s.mu.Unlock()
			writeJSON(w, http.StatusCreated, item)
		})
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "id")
			s.mu.Lock()
			item, ok := (*items)[id]
			s.mu.Unlock()
			if !ok {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			writeJSON(w, http.StatusOK, item)
		})
		r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "id")
			item, ok := decode[T](w, req)
			if !ok {
				return
			}
			s.mu.Lock()
			if _, exists := (*items)[id]; !exists {
				s.mu.Unlock()
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			setID(&item, id)
			(*items)[id] = item
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, item)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "id")
			s.mu.Lock()
			delete(*items, id)
			s.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
