package models

import "time"

const (
	OrderStatusCompleted = "completed"

	PlateSingle = "single"
	PlateFull   = "full"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TableNumber   *string     `gorm:"size:20" json:"table_number,omitempty"`
	OrderDate     time.Time   `gorm:"not null" json:"order_date"`
	BusinessDate  string      `gorm:"size:10;not null;index" json:"business_date"`
	Subtotal      float64     `gorm:"not null" json:"subtotal"`
	ServiceCharge float64     `gorm:"not null" json:"service_charge"`
	TaxAmount     float64     `gorm:"not null" json:"tax_amount"`
	Discount      float64     `gorm:"not null" json:"discount"`
	Total         float64     `gorm:"not null" json:"total"`
	PaymentMethod string      `gorm:"size:20" json:"payment_method,omitempty"`
	Status        string      `gorm:"size:20;not null" json:"status"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableLabel is the table identifier or "Takeaway".
func (o Order) TableLabel() string {
	if o.TableNumber == nil || *o.TableNumber == "" {
		return "Takeaway"
	}
	return *o.TableNumber
}

type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	MenuItemID uint    `gorm:"not null;index" json:"menu_item_id"`
	ItemName   string  `gorm:"size:150;not null" json:"item_name"`
	PlateType  string  `gorm:"size:10;not null" json:"plate_type"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Price      float64 `gorm:"not null" json:"price"`
	Total      float64 `gorm:"not null" json:"total"`
}
