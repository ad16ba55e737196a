package api

import "time"

// Product as served by /api/products.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	SKU         string  `json:"sku" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      string  `json:"status,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Stock       int     `json:"stock,omitempty"`
}

// User as served by /users.
type User struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Password  string `json:"password,omitempty"`
}

// Warehouse as served by /api/warehouses.
type Warehouse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
	City string `json:"ville"`
}

// Supplier as served by /api/suppliers.
type Supplier struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required"`
	ContactInfo string     `json:"contactInfo"`
	Active      bool       `json:"active"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// InventoryRecord ties a product and a warehouse to on-hand quantities.
type InventoryRecord struct {
	ID                string `json:"id,omitempty"`
	QtyOnHand         int    `json:"qtyOnHand" validate:"gte=0"`
	QtyReserved       int    `json:"qtyReserved" validate:"gte=0"`
	ReferenceDocument string `json:"referenceDocument"`
	ProductID         string `json:"product_id" validate:"required"`
	WarehouseID       string `json:"warehouse_id" validate:"required"`
}

// SalesOrder header as served by /api/sales-orders.
type SalesOrder struct {
	ID          string `json:"id,omitempty"`
	UserID      string `json:"user_id" validate:"required"`
	OrderStatus string `json:"orderStatus"`
}

// SalesOrderLine as served by /api/sales-order-lines.
type SalesOrderLine struct {
	ID           string  `json:"id,omitempty"`
	ProductID    string  `json:"product_id" validate:"required"`
	SalesOrderID string  `json:"sales_order_id" validate:"required"`
	Quantity     int     `json:"quantity" validate:"gt=0"`
	UnitPrice    float64 `json:"unitPrice" validate:"gte=0"`
}

// PurchaseOrderStatus enumerates the PO lifecycle.
type PurchaseOrderStatus string

const (
	StatusDraft     PurchaseOrderStatus = "DRAFT"
	StatusCreated   PurchaseOrderStatus = "CREATED"
	StatusApproved  PurchaseOrderStatus = "APPROVED"
	StatusReceived  PurchaseOrderStatus = "RECEIVED"
	StatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// OrderLineStatus enumerates per-line receipt states.
type OrderLineStatus string

const (
	LineStatusPending           OrderLineStatus = "PENDING"
	LineStatusPartiallyReceived OrderLineStatus = "PARTIALLY_RECEIVED"
	LineStatusReceived          OrderLineStatus = "RECEIVED"
	LineStatusCancelled         OrderLineStatus = "CANCELLED"
)

// PurchaseOrder as served by /api/purchase-orders.
type PurchaseOrder struct {
	ID                string              `json:"id,omitempty"`
	Reference         string              `json:"reference,omitempty"`
	SupplierID        string              `json:"supplierId,omitempty"`
	SupplierName      string              `json:"supplierName,omitempty"`
	CreatedByUserID   string              `json:"createdByUserId,omitempty"`
	CreatedByUserName string              `json:"createdByUserName,omitempty"`
	ApprovedByUserID  string              `json:"approvedByUserId,omitempty"`
	Status            PurchaseOrderStatus `json:"status"`
	OrderDate         *time.Time          `json:"orderDate,omitempty"`
	ExpectedDelivery  *time.Time          `json:"expectedDelivery,omitempty"`
	ActualDelivery    *time.Time          `json:"actualDelivery,omitempty"`
	ShippingAddress   string              `json:"shippingAddress,omitempty"`
	BillingAddress    string              `json:"billingAddress,omitempty"`
	TotalAmount       float64             `json:"totalAmount,omitempty"`
	TotalTax          float64             `json:"totalTax,omitempty"`
	GrandTotal        float64             `json:"grandTotal,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	OrderLines        []OrderLine         `json:"orderLines,omitempty"`
	CreatedAt         *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time          `json:"updatedAt,omitempty"`
}

// Total returns the server-supplied grand total when present, otherwise the
// sum of line totals.
func (po PurchaseOrder) Total() float64 {
	if po.GrandTotal != 0 {
		return po.GrandTotal
	}
	if po.TotalAmount != 0 {
		return po.TotalAmount
	}
	sum := 0.0
	for _, line := range po.OrderLines {
		sum += line.LineTotal()
	}
	return sum
}

// OrderLine belongs to exactly one purchase order.
type OrderLine struct {
	ID               string          `json:"id,omitempty"`
	PurchaseOrderID  string          `json:"purchaseOrderId,omitempty"`
	ProductID        string          `json:"productId"`
	ProductName      string          `json:"productName,omitempty"`
	Quantity         int             `json:"quantity"`
	UnitPrice        float64         `json:"unitPrice"`
	Total            float64         `json:"total,omitempty"`
	ReceivedQuantity int             `json:"receivedQuantity,omitempty"`
	Status           OrderLineStatus `json:"status,omitempty"`
	CreatedAt        *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}

// LineTotal returns the server total when present, otherwise quantity times
// unit price.
func (l OrderLine) LineTotal() float64 {
	if l.Total != 0 {
		return l.Total
	}
	return float64(l.Quantity) * l.UnitPrice
}

// OrderLineCreate is the payload for a new PO line.
type OrderLineCreate struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

// PurchaseOrderCreate is the POST payload for a new purchase order.
type PurchaseOrderCreate struct {
	SupplierID       string              `json:"supplierId" validate:"required"`
	CreatedByUserID  string              `json:"createdByUserId,omitempty"`
	ExpectedDelivery time.Time           `json:"expectedDelivery"`
	Status           PurchaseOrderStatus `json:"status,omitempty"`
	TotalAmount      float64             `json:"totalAmount,omitempty"`
	OrderLines       []OrderLineCreate   `json:"orderLines" validate:"min=1,dive"`
}

// PurchaseOrderUpdate is the PUT payload; zero fields are left untouched.
type PurchaseOrderUpdate struct {
	ExpectedDelivery *time.Time           `json:"expectedDelivery,omitempty"`
	ShippingAddress  *string              `json:"shippingAddress,omitempty"`
	BillingAddress   *string              `json:"billingAddress,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	Status           *PurchaseOrderStatus `json:"status,omitempty"`
}

// PurchaseOrderFilter narrows the PO listing server-side.
type PurchaseOrderFilter struct {
	Status     PurchaseOrderStatus
	SupplierID string
	StartDate  *time.Time
	EndDate    *time.Time
	Reference  string
}

// PurchaseOrderStatistics as served by /api/purchase-orders/statistics.
type PurchaseOrderStatistics struct {
	Total       int     `json:"total"`
	Draft       int     `json:"draft"`
	Created     int     `json:"created"`
	Approved    int     `json:"approved"`
	Received    int     `json:"received"`
	Cancelled   int     `json:"cancelled"`
	TotalAmount float64 `json:"totalAmount"`
}
