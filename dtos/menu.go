package dtos

type MenuItemInput struct {
	Name        string   `json:"name" binding:"required,max=150"`
	Category    string   `json:"category" binding:"required"`
	FoodType    string   `json:"food_type" binding:"required,oneof=veg non-veg"`
	PriceSingle float64  `json:"price_single" binding:"gte=0"`
	PriceFull   *float64 `json:"price_full" binding:"omitempty,gte=0"`
	IsAvailable *bool    `json:"is_available"`
}

type CategoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

type AvailabilityInput struct {
	Available *bool `json:"available" binding:"required"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
