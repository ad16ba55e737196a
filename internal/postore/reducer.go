package postore

import "github.com/stockroom-erp/stockroom-cli/internal/api"

// Kind groups commands by the busy flag they drive.
type Kind int

const (
	KindLoad Kind = iota
	KindCreate
	KindUpdate
	KindDelete
)

// Event records a command outcome. Begin marks the command in flight; the
// remaining variants fold the API result into the collection.
type Event interface {
	isEvent()
}

type Begin struct {
	Kind Kind
}

type Failed struct {
	Kind Kind
	Err  string
}

type Loaded struct {
	Orders []api.PurchaseOrder
}

type LoadedOne struct {
	Order api.PurchaseOrder
}

type Created struct {
	Order api.PurchaseOrder
}

type Updated struct {
	Order api.PurchaseOrder
}

type Deleted struct {
	ID string
}

type BulkUpdated struct {
	Orders []api.PurchaseOrder
}

type SelectionCleared struct{}

type Cleared struct{}

func (Begin) isEvent()            {}
func (Failed) isEvent()           {}
func (Loaded) isEvent()           {}
func (LoadedOne) isEvent()        {}
func (Created) isEvent()          {}
func (Updated) isEvent()          {}
func (Deleted) isEvent()          {}
func (BulkUpdated) isEvent()      {}
func (SelectionCleared) isEvent() {}
func (Cleared) isEvent()          {}

// Reduce folds one event into the state. Pure: the input state is never
// mutated and the result shares no slices with it.
func Reduce(state State, event Event) State {
	next := state.clone()

	switch ev := event.(type) {
	case Begin:
		next.Err = ""
		setBusy(&next, ev.Kind, true)

	case Failed:
		next.Err = ev.Err
		setBusy(&next, ev.Kind, false)

	case Loaded:
		next.Orders = append([]api.PurchaseOrder(nil), ev.Orders...)
		next.Loading = false

	case LoadedOne:
		order := ev.Order
		next.Selected = &order
		next.Loading = false

	case Created:
		next.Orders = append(next.Orders, ev.Order)
		next.Creating = false

	case Updated:
		replaceByID(&next, ev.Order)
		next.Updating = false

	case Deleted:
		orders := next.Orders[:0]
		for _, order := range next.Orders {
			if order.ID != ev.ID {
				orders = append(orders, order)
			}
		}
		next.Orders = orders
		if next.Selected != nil && next.Selected.ID == ev.ID {
			next.Selected = nil
		}
		next.Deleting = false

	case BulkUpdated:
		byID := make(map[string]api.PurchaseOrder, len(ev.Orders))
		for _, order := range ev.Orders {
			byID[order.ID] = order
		}
		for i, order := range next.Orders {
			if updated, ok := byID[order.ID]; ok {
				next.Orders[i] = updated
			}
		}
		if next.Selected != nil {
			if updated, ok := byID[next.Selected.ID]; ok {
				next.Selected = &updated
			}
		}
		next.Updating = false

	case SelectionCleared:
		next.Selected = nil

	case Cleared:
		next.Orders = nil
		next.Selected = nil
		next.Err = ""
	}

	return next
}

func setBusy(state *State, kind Kind, busy bool) {
	switch kind {
	case KindLoad:
		state.Loading = busy
	case KindCreate:
		state.Creating = busy
	case KindUpdate:
		state.Updating = busy
	case KindDelete:
		state.Deleting = busy
	}
}

func replaceByID(state *State, order api.PurchaseOrder) {
	for i, existing := range state.Orders {
		if existing.ID == order.ID {
			state.Orders[i] = order
		}
	}
	if state.Selected != nil && state.Selected.ID == order.ID {
		state.Selected = &order
	}
}
