package api

import "strconv"

// SearchFields declares, per entity, which string projections the free-text
// list filter matches against.

func (p Product) SearchFields() []string {
	return []string{p.Name, p.Description, p.SKU, p.Status, strconv.FormatFloat(p.Price, 'f', -1, 64)}
}

func (u User) SearchFields() []string {
	return []string{u.FirstName, u.LastName, u.Email, u.Role}
}

func (w Warehouse) SearchFields() []string {
	return []string{w.Name, w.City}
}

func (s Supplier) SearchFields() []string {
	return []string{s.Name, s.ContactInfo}
}

func (r InventoryRecord) SearchFields() []string {
	return []string{r.ReferenceDocument, r.ProductID, r.WarehouseID,
		strconv.Itoa(r.QtyOnHand), strconv.Itoa(r.QtyReserved)}
}

func (o SalesOrder) SearchFields() []string {
	return []string{o.ID, o.UserID, o.OrderStatus}
}

func (po PurchaseOrder) SearchFields() []string {
	return []string{po.Reference, po.SupplierName, po.CreatedByUserName,
		string(po.Status), po.Notes}
}
