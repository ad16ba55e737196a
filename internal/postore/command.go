package postore

import "github.com/stockroom-erp/stockroom-cli/internal/api"

// Command is a named intent dispatched to the store. Exactly one variant per
// operation the purchase-order module supports.
type Command interface {
	isCommand()
}

type LoadAll struct {
	Filter *api.PurchaseOrderFilter
}

type LoadOne struct {
	ID string
}

type Create struct {
	Draft api.PurchaseOrderCreate
}

type Update struct {
	ID    string
	Patch api.PurchaseOrderUpdate
}

type Delete struct {
	ID string
}

type SetStatus struct {
	ID     string
	Status api.PurchaseOrderStatus
}

type BulkSetStatus struct {
	IDs    []string
	Status api.PurchaseOrderStatus
}

type ClearSelected struct{}

type ClearAll struct{}

func (LoadAll) isCommand()       {}
func (LoadOne) isCommand()       {}
func (Create) isCommand()        {}
func (Update) isCommand()        {}
func (Delete) isCommand()        {}
func (SetStatus) isCommand()     {}
func (BulkSetStatus) isCommand() {}
func (ClearSelected) isCommand() {}
func (ClearAll) isCommand()      {}
