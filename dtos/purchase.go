package dtos

type PurchaseOrderItemInput struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
}

type PurchaseOrderInput struct {
	SupplierID   uint                     `json:"supplier_id" binding:"required"`
	ExpectedDate string                   `json:"expected_date" binding:"omitempty,datetime=2006-01-02"`
	Notes        string                   `json:"notes" binding:"max=255"`
	Items        []PurchaseOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type ReceiveLineInput struct {
	ItemID   uint    `json:"item_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

type ReceiveInput struct {
	Lines []ReceiveLineInput `json:"lines" binding:"dive"`
}

type SupplierPaymentInput struct {
	PayableID     *uint   `json:"payable_id"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
	Reference     string  `json:"reference"`
	Date          string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type PayablesSummary struct {
	Unpaid      int     `json:"unpaid"`
	Partial     int     `json:"partial"`
	Overdue     int     `json:"overdue"`
	Outstanding float64 `json:"outstanding"`
	OverdueDue  float64 `json:"overdue_amount"`
}

type SupplierBalance struct {
	SupplierID  uint    `json:"supplier_id"`
	Invoiced    float64 `json:"invoiced"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

type SupplierPurchase struct {
	SupplierID uint    `json:"supplier_id"`
	Name       string  `json:"name"`
	Orders     int     `json:"orders"`
	Total      float64 `json:"total"`
}

type PurchaseSummary struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Orders     int                `json:"orders"`
	Total      float64            `json:"total"`
	BySupplier []SupplierPurchase `json:"by_supplier"`
}
