package apitest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]api.User, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, acct.user)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	user, ok := decode[api.User](w, r)
	if !ok {
		return
	}
	user.ID = uuid.NewString()
	user.Password = ""
	s.mu.Lock()
	s.accounts[user.Email] = account{user: user}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.ID == id {
			writeJSON(w, http.StatusOK, acct.user)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, ok := decode[api.User](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, acct := range s.accounts {
		if acct.user.ID == id {
			user.ID = id
			user.Password = ""
			delete(s.accounts, email)
			s.accounts[user.Email] = account{user: user, passwordHash: acct.passwordHash}
			writeJSON(w, http.StatusOK, user)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, acct := range s.accounts {
		if acct.user.ID == id {
			delete(s.accounts, email)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) patchSupplierStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	patch, ok := decode[struct {
		Active bool `json:"active"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	supplier, exists := s.suppliers[id]
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	supplier.Active = patch.Active
	s.suppliers[id] = supplier
	writeJSON(w, http.StatusOK, supplier)
}

func (s *Server) listSalesOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]api.SalesOrder, 0, len(s.salesOrders))
	for _, o := range s.salesOrders {
		out = append(out, o)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSalesOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := decode[api.SalesOrder](w, r)
	if !ok {
		return
	}
	order.ID = uuid.NewString()
	s.mu.Lock()
	s.salesOrders[order.ID] = order
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) listSaleLines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.SaleLines())
}

func (s *Server) createSaleLine(w http.ResponseWriter, r *http.Request) {
	line, ok := decode[api.SalesOrderLine](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if message, fail := s.failSaleLines[line.ProductID]; fail {
		writeError(w, http.StatusUnprocessableEntity, message)
		return
	}
	line.ID = uuid.NewString()
	s.salesLines[line.ID] = line
	writeJSON(w, http.StatusCreated, line)
}

func (s *Server) listPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := api.PurchaseOrderStatus(query.Get("status"))
	supplierID := query.Get("supplierId")
	reference := query.Get("reference")

	s.mu.Lock()
	out := make([]api.PurchaseOrder, 0, len(s.purchaseOrders))
	for _, po := range s.purchaseOrders {
		if status != "" && po.Status != status {
			continue
		}
		if supplierID != "" && po.SupplierID != supplierID {
			continue
		}
		if reference != "" && po.Reference != reference {
			continue
		}
		out = append(out, po)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	draft, ok := decode[api.PurchaseOrderCreate](w, r)
	if !ok {
		return
	}
	now := time.Now().UTC()
	po := api.PurchaseOrder{
		ID:               uuid.NewString(),
		Reference:        "PO-" + uuid.NewString()[:8],
		SupplierID:       draft.SupplierID,
		CreatedByUserID:  draft.CreatedByUserID,
		Status:           api.StatusDraft,
		OrderDate:        &now,
		ExpectedDelivery: &draft.ExpectedDelivery,
		CreatedAt:        &now,
	}
	if draft.Status != "" {
		po.Status = draft.Status
	}
	for _, line := range draft.OrderLines {
		po.OrderLines = append(po.OrderLines, api.OrderLine{
			ID:              uuid.NewString(),
			PurchaseOrderID: po.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			Total:           float64(line.Quantity) * line.UnitPrice,
			Status:          api.LineStatusPending,
		})
		po.TotalAmount += float64(line.Quantity) * line.UnitPrice
	}
	po.GrandTotal = po.TotalAmount + po.TotalTax
	s.mu.Lock()
	s.purchaseOrders[po.ID] = po
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, po)
}

func (s *Server) getPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	po, ok := s.purchaseOrders[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, po)
}

func (s *Server) updatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	patch, ok := decode[api.PurchaseOrderUpdate](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	po, exists := s.purchaseOrders[id]
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if patch.ExpectedDelivery != nil {
		po.ExpectedDelivery = patch.ExpectedDelivery
	}
	if patch.ShippingAddress != nil {
		po.ShippingAddress = *patch.ShippingAddress
	}
	if patch.BillingAddress != nil {
		po.BillingAddress = *patch.BillingAddress
	}
	if patch.Notes != nil {
		po.Notes = *patch.Notes
	}
	if patch.Status != nil {
		po.Status = *patch.Status
	}
	now := time.Now().UTC()
	po.UpdatedAt = &now
	s.purchaseOrders[id] = po
	writeJSON(w, http.StatusOK, po)
}

func (s *Server) deletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	delete(s.purchaseOrders, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) patchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	patch, ok := decode[struct {
		Status api.PurchaseOrderStatus `json:"status"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	po, exists := s.purchaseOrders[id]
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	po.Status = patch.Status
	s.purchaseOrders[id] = po
	writeJSON(w, http.StatusOK, po)
}

func (s *Server) bulkPatchStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		IDs    []string                `json:"ids"`
		Status api.PurchaseOrderStatus `json:"status"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.PurchaseOrder, 0, len(req.IDs))
	for _, id := range req.IDs {
		po, exists := s.purchaseOrders[id]
		if !exists {
			writeError(w, http.StatusNotFound, "not found: "+id)
			return
		}
		po.Status = req.Status
		s.purchaseOrders[id] = po
		out = append(out, po)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) purchaseOrderStatistics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := api.PurchaseOrderStatistics{Total: len(s.purchaseOrders)}
	for _, po := range s.purchaseOrders {
		switch po.Status {
		case api.StatusDraft:
			stats.Draft++
		case api.StatusCreated:
			stats.Created++
		case api.StatusApproved:
			stats.Approved++
		case api.StatusReceived:
			stats.Received++
		case api.StatusCancelled:
			stats.Cancelled++
		}
		stats.TotalAmount += po.TotalAmount
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) addOrderLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	line, ok := decode[api.OrderLineCreate](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	po, exists := s.purchaseOrders[id]
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	created := api.OrderLine{
		ID:              uuid.NewString(),
		PurchaseOrderID: id,
		ProductID:       line.ProductID,
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		Total:           float64(line.Quantity) * line.UnitPrice,
		Status:          api.LineStatusPending,
	}
	po.OrderLines = append(po.OrderLines, created)
	po.TotalAmount += created.Total
	po.GrandTotal = po.TotalAmount + po.TotalTax
	s.purchaseOrders[id] = po
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateOrderLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lineID := chi.URLParam(r, "lineID")
	patch, ok := decode[api.OrderLineCreate](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	po, exists := s.purchaseOrders[id]
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	for i, line := range po.OrderLines {
		if line.ID == lineID {
			line.ProductID = patch.ProductID
			line.Quantity = patch.Quantity
			line.UnitPrice = patch.UnitPrice
			line.Total = float64(patch.Quantity) * patch.UnitPrice
			po.OrderLines[i] = line
			s.rebalance(&po)
			s.purchaseOrders[id] = po
			writeJSON(w, http.StatusOK, line)
			return
		}
	}
	writeError(w, http.StatusNotFound, "line not found")
}

func (s *Server) removeOrderLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lineID := chi.URLParam(r, "lineID")
	s.mu.Lock()
	defer s.mu.Unlock()
	po, exists := s.purchaseOrders[id]
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	lines := po.OrderLines[:0]
	for _, line := range po.OrderLines {
		if line.ID != lineID {
			lines = append(lines, line)
		}
	}
	po.OrderLines = lines
	s.rebalance(&po)
	s.purchaseOrders[id] = po
	w.WriteHeader(http.StatusNoContent)
}

// rebalance recomputes header totals from the lines; callers hold mu.
func (s *Server) rebalance(po *api.PurchaseOrder) {
	po.TotalAmount = 0
	for _, line := range po.OrderLines {
		po.TotalAmount += line.Total
	}
	po.GrandTotal = po.TotalAmount + po.TotalTax
}
