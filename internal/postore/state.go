// Package postore is the purchase-order command/state store: a finite set of
// commands feeding API calls, whose outcomes are folded into an in-memory
// collection by a pure reducer. Views read projections of the state and are
// notified on every change.
package postore

import "github.com/stockroom-erp/stockroom-cli/internal/api"

// State is the full purchase-order store state. Busy flags are grouped per
// command family; Err holds the last failure message and is cleared when the
// next command begins.
type State struct {
	Orders   []api.PurchaseOrder
	Selected *api.PurchaseOrder
	Loading  bool
	Creating bool
	Updating bool
	Deleting bool
	Err      string
}

func (s State) clone() State {
	out := s
	out.Orders = append([]api.PurchaseOrder(nil), s.Orders...)
	if s.Selected != nil {
		selected := *s.Selected
		out.Selected = &selected
	}
	return out
}
