package postore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

func order(id string, status api.PurchaseOrderStatus) api.PurchaseOrder {
	return api.PurchaseOrder{ID: id, Status: status, SupplierID: "s1", TotalAmount: 100}
}

func TestReduceBeginClearsError(t *testing.T) {
	state := State{Err: "boom"}
	next := Reduce(state, Begin{Kind: KindLoad})
	require.True(t, next.Loading)
	require.Empty(t, next.Err)
	// prior state untouched
	require.Equal(t, "boom", state.Err)
	require.False(t, state.Loading)
}

func TestReduceLoadedReplacesWholesale(t *testing.T) {
	state := State{Orders: []api.PurchaseOrder{order("old", api.StatusDraft)}, Loading: true}
	orders := []api.PurchaseOrder{order("a", api.StatusDraft), order("b", api.StatusCreated)}

	next := Reduce(state, Loaded{Orders: orders})
	require.False(t, next.Loading)
	require.Equal(t, orders, next.Orders)
}

func TestReduceLoadIdempotent(t *testing.T) {
	orders := []api.PurchaseOrder{order("a", api.StatusDraft), order("b", api.StatusCreated)}
	state := Reduce(State{}, Loaded{Orders: orders})
	repeat := Reduce(Reduce(state, Begin{Kind: KindLoad}), Loaded{Orders: orders})
	require.Equal(t, state.Orders, repeat.Orders)
}

func TestReduceCreateAppends(t *testing.T) {
	state := State{Orders: []api.PurchaseOrder{order("a", api.StatusDraft)}, Creating: true}
	next := Reduce(state, Created{Order: order("b", api.StatusDraft)})
	require.False(t, next.Creating)
	require.Len(t, next.Orders, 2)
	require.Equal(t, "b", next.Orders[1].ID)
}

func TestReduceUpdateReplacesByIDAndSyncsSelection(t *testing.T) {
	selected := order("a", api.StatusDraft)
	state := State{
		Orders:   []api.PurchaseOrder{selected, order("b", api.StatusDraft)},
		Selected: &selected,
		Updating: true,
	}

	updated := order("a", api.StatusCreated)
	next := Reduce(state, Updated{Order: updated})
	require.False(t, next.Updating)
	require.Equal(t, api.StatusCreated, next.Orders[0].Status)
	require.Equal(t, api.StatusDraft, next.Orders[1].Status)
	require.NotNil(t, next.Selected)
	require.Equal(t, api.StatusCreated, next.Selected.Status)
}

func TestReduceDeleteRemovesByIDAndClearsSelection(t *testing.T) {
	selected := order("a", api.StatusDraft)
	state := State{
		Orders:   []api.PurchaseOrder{selected, order("b", api.StatusDraft)},
		Selected: &selected,
		Deleting: true,
	}

	next := Reduce(state, Deleted{ID: "a"})
	require.False(t, next.Deleting)
	require.Len(t, next.Orders, 1)
	require.Equal(t, "b", next.Orders[0].ID)
	require.Nil(t, next.Selected)

	// Deleting an unrelated order leaves the selection alone.
	other := Reduce(state, Deleted{ID: "b"})
	require.NotNil(t, other.Selected)
	require.Equal(t, "a", other.Selected.ID)
}

func TestReduceBulkUpdateMergesMatches(t *testing.T) {
	state := State{Orders: []api.PurchaseOrder{
		order("a", api.StatusCreated),
		order("b", api.StatusCreated),
		order("c", api.StatusDraft),
	}}

	next := Reduce(state, BulkUpdated{Orders: []api.PurchaseOrder{
		order("a", api.StatusApproved),
		order("b", api.StatusApproved),
	}})
	require.Equal(t, api.StatusApproved, next.Orders[0].Status)
	require.Equal(t, api.StatusApproved, next.Orders[1].Status)
	require.Equal(t, api.StatusDraft, next.Orders[2].Status)
}

func TestReduceFailureKeepsCollection(t *testing.T) {
	state := State{Orders: []api.PurchaseOrder{order("a", api.StatusDraft)}, Updating: true}
	next := Reduce(state, Failed{Kind: KindUpdate, Err: "network down"})
	require.False(t, next.Updating)
	require.Equal(t, "network down", next.Err)
	require.Equal(t, state.Orders, next.Orders)
}

func TestReduceClears(t *testing.T) {
	selected := order("a", api.StatusDraft)
	state := State{Orders: []api.PurchaseOrder{selected}, Selected: &selected}

	next := Reduce(state, SelectionCleared{})
	require.Nil(t, next.Selected)
	require.Len(t, next.Orders, 1)

	next = Reduce(state, Cleared{})
	require.Empty(t, next.Orders)
	require.Nil(t, next.Selected)
}

func TestNextAllowedTable(t *testing.T) {
	require.ElementsMatch(t,
		[]api.PurchaseOrderStatus{api.StatusCreated, api.StatusCancelled},
		NextAllowed(api.StatusDraft))
	require.ElementsMatch(t,
		[]api.PurchaseOrderStatus{api.StatusApproved, api.StatusCancelled},
		NextAllowed(api.StatusCreated))
	require.ElementsMatch(t,
		[]api.PurchaseOrderStatus{api.StatusReceived, api.StatusCancelled},
		NextAllowed(api.StatusApproved))
	require.Empty(t, NextAllowed(api.StatusReceived))
	require.Empty(t, NextAllowed(api.StatusCancelled))

	require.True(t, CanTransition(api.StatusDraft, api.StatusCreated))
	require.False(t, CanTransition(api.StatusReceived, api.StatusDraft))
	require.False(t, CanTransition(api.StatusCancelled, api.StatusCreated))
}

func TestSelectors(t *testing.T) {
	state := State{Orders: []api.PurchaseOrder{
		order("a", api.StatusDraft),
		order("b", api.StatusApproved),
		order("c", api.StatusReceived),
		order("d", api.StatusCancelled),
	}}

	require.Len(t, Active(state), 2)
	require.Len(t, Completed(state), 1)
	require.Len(t, Cancelled(state), 1)
	require.Len(t, BySupplier(state, "s1"), 4)
	require.Empty(t, BySupplier(state, "nope"))

	stats := Statistics(state)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.Draft)
	require.Equal(t, 1, stats.Approved)
	require.Equal(t, 1, stats.Received)
	require.Equal(t, 1, stats.Cancelled)
	require.Equal(t, 400.0, stats.TotalAmount)
}
