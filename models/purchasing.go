package models

import "time"

const (
	POStatusPending   = "pending"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"

	PayableUnpaid    = "unpaid"
	PayablePartial   = "partial"
	PayablePaid      = "paid"
	PayableCancelled = "cancelled"
)

type PurchaseOrder struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	PONumber     string              `gorm:"size:30;uniqueIndex;not null" json:"po_number"`
	SupplierID   uint                `gorm:"not null;index" json:"supplier_id"`
	Supplier     *Supplier           `json:"supplier,omitempty"`
	OrderDate    string              `gorm:"size:10;not null" json:"order_date"`
	ExpectedDate string              `gorm:"size:10" json:"expected_date,omitempty"`
	Status       string              `gorm:"size:20;not null;index" json:"status"`
	TotalAmount  float64             `gorm:"not null" json:"total_amount"`
	Notes        string              `gorm:"size:255" json:"notes,omitempty"`
	Items        []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	PurchaseOrderID  uint        `gorm:"not null;index" json:"purchase_order_id"`
	IngredientID     uint        `gorm:"not null;index" json:"ingredient_id"`
	Ingredient       *Ingredient `json:"ingredient,omitempty"`
	Quantity         float64     `gorm:"not null" json:"quantity"`
	UnitPrice        float64     `gorm:"not null" json:"unit_price"`
	Total            float64     `gorm:"not null" json:"total"`
	ReceivedQuantity float64     `gorm:"not null" json:"received_quantity"`
}

func (i PurchaseOrderItem) Outstanding() float64 {
	return i.Quantity - i.ReceivedQuantity
}

type AccountPayable struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SupplierID      uint      `gorm:"not null;index" json:"supplier_id"`
	Supplier        *Supplier `json:"supplier,omitempty"`
	PurchaseOrderID *uint     `gorm:"index" json:"purchase_order_id,omitempty"`
	InvoiceNumber   string    `gorm:"size:50" json:"invoice_number"`
	Amount          float64   `gorm:"not null" json:"amount"`
	PaidAmount      float64   `gorm:"not null" json:"paid_amount"`
	DueDate         string    `gorm:"size:10;not null;index" json:"due_date"`
	Status          string    `gorm:"size:20;not null;index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p AccountPayable) Balance() float64 {
	return p.Amount - p.PaidAmount
}

type SupplierPayment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SupplierID    uint      `gorm:"not null;index" json:"supplier_id"`
	PayableID     *uint     `gorm:"index" json:"payable_id,omitempty"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentDate   string    `gorm:"size:10;not null" json:"payment_date"`
	PaymentMethod string    `gorm:"size:20" json:"payment_method"`
	Reference     string    `gorm:"size:100" json:"reference,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
