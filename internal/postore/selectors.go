package postore

import "github.com/stockroom-erp/stockroom-cli/internal/api"

// Read-only projections over the store state, mirroring what the order views
// display.

func ByStatus(state State, status api.PurchaseOrderStatus) []api.PurchaseOrder {
	var out []api.PurchaseOrder
	for _, order := range state.Orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}

func BySupplier(state State, supplierID string) []api.PurchaseOrder {
	var out []api.PurchaseOrder
	for _, order := range state.Orders {
		if order.SupplierID == supplierID {
			out = append(out, order)
		}
	}
	return out
}

// Active returns orders still moving through the workflow.
func Active(state State) []api.PurchaseOrder {
	var out []api.PurchaseOrder
	for _, order := range state.Orders {
		switch order.Status {
		case api.StatusDraft, api.StatusCreated, api.StatusApproved:
			out = append(out, order)
		}
	}
	return out
}

func Completed(state State) []api.PurchaseOrder {
	return ByStatus(state, api.StatusReceived)
}

func Cancelled(state State) []api.PurchaseOrder {
	return ByStatus(state, api.StatusCancelled)
}

// Statistics aggregates per-status counts and the total amount across the
// local collection.
func Statistics(state State) api.PurchaseOrderStatistics {
	stats := api.PurchaseOrderStatistics{Total: len(state.Orders)}
	for _, order := range state.Orders {
		switch order.Status {
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
		stats.TotalAmount += order.TotalAmount
	}
	return stats
}
