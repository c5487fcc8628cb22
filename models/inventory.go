package models

import "time"

const (
	StockIn  = "in"
	StockOut = "out"
)

var IngredientUnits = []string{"kg", "grams", "liters", "pieces", "packets"}

type Ingredient struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Unit         string    `gorm:"size:20;not null" json:"unit"`
	CurrentStock float64   `gorm:"not null" json:"current_stock"`
	MinStock     float64   `gorm:"not null" json:"min_stock"`
	CostPerUnit  float64   `gorm:"not null" json:"cost_per_unit"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i Ingredient) IsLow() bool {
	return i.CurrentStock <= i.MinStock
}

// MenuIngredient is one recipe line: how much of an ingredient one unit of a menu item uses.
type MenuIngredient struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	MenuItemID       uint        `gorm:"not null;uniqueIndex:idx_recipe_line" json:"menu_item_id"`
	IngredientID     uint        `gorm:"not null;uniqueIndex:idx_recipe_line" json:"ingredient_id"`
	Ingredient       *Ingredient `json:"ingredient,omitempty"`
	QuantityRequired float64     `gorm:"not null" json:"quantity_required"`
}

// StockTransaction rows are append-only.
type StockTransaction struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	IngredientID uint        `gorm:"not null;index" json:"ingredient_id"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
	Type         string      `gorm:"size:3;not null" json:"type"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Reason       string      `gorm:"size:255" json:"reason"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}

type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Contact   string    `gorm:"size:100" json:"contact,omitempty"`
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	Email     string    `gorm:"size:100" json:"email,omitempty"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
