package dtos

type IngredientInput struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Unit         string  `json:"unit" binding:"required,oneof=kg grams liters pieces packets"`
	CurrentStock float64 `json:"current_stock" binding:"gte=0"`
	MinStock     float64 `json:"min_stock" binding:"gte=0"`
	CostPerUnit  float64 `json:"cost_per_unit" binding:"gte=0"`
}

type StockAdjustInput struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Reason   string  `json:"reason" binding:"max=255"`
}

type RecipeLineInput struct {
	IngredientID     uint    `json:"ingredient_id" binding:"required"`
	QuantityRequired float64 `json:"quantity_required" binding:"required,gt=0"`
}

type RecipeInput struct {
	Lines []RecipeLineInput `json:"lines" binding:"dive"`
}

type SupplierInput struct {
	Name    string `json:"name" binding:"required,max=150"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}
