package models

import "time"

const (
	FoodTypeVeg    = "veg"
	FoodTypeNonVeg = "non-veg"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null;index" json:"name"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	FoodType    string    `gorm:"size:10;not null" json:"food_type"`
	PriceSingle float64   `gorm:"not null" json:"price_single"`
	PriceFull   *float64  `json:"price_full,omitempty"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Available reports whether the item can be sold at all.
func (m MenuItem) Available() bool {
	return m.IsAvailable && m.PriceSingle > 0
}

// HasFull reports whether a full plate is on offer.
func (m MenuItem) HasFull() bool {
	return m.PriceFull != nil && *m.PriceFull > 0
}
