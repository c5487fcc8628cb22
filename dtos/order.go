package dtos

type CartAddInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Plate      string `json:"plate" binding:"omitempty,oneof=single full"`
}

type CheckoutInput struct {
	Table       string `json:"table"`
	PaymentMode string `json:"payment_mode" binding:"required"`
}

type PreviewInput struct {
	Table string `json:"table"`
}

type OrderFilter struct {
	From  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

type DateRange struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}
