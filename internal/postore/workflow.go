package postore

import (
	"errors"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

// ErrTransition occurs when a status change violates the workflow.
var ErrTransition = errors.New("postore: status transition not allowed")

// Forward transitions only; RECEIVED and CANCELLED are terminal.
var transitions = map[api.PurchaseOrderStatus][]api.PurchaseOrderStatus{
	api.StatusDraft:     {api.StatusCreated, api.StatusCancelled},
	api.StatusCreated:   {api.StatusApproved, api.StatusCancelled},
	api.StatusApproved:  {api.StatusReceived, api.StatusCancelled},
	api.StatusReceived:  {},
	api.StatusCancelled: {},
}

// NextAllowed returns the statuses reachable from the given one.
func NextAllowed(status api.PurchaseOrderStatus) []api.PurchaseOrderStatus {
	return append([]api.PurchaseOrderStatus(nil), transitions[status]...)
}

// CanTransition reports whether from -> to is a listed workflow step.
func CanTransition(from, to api.PurchaseOrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
