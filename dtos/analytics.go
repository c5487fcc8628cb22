package dtos

type TodaySummary struct {
	Date            string             `json:"date"`
	Orders          int                `json:"orders"`
	Revenue         float64            `json:"revenue"`
	AverageOrder    float64            `json:"average_order"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
}

type PopularItem struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type CategoryPerformance struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type HourlySales struct {
	Hour    int     `json:"hour"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type Dashboard struct {
	Today       TodaySummary  `json:"today"`
	LowStock    int           `json:"low_stock"`
	TopItems    []PopularItem `json:"top_items"`
	PendingPOs  int           `json:"pending_purchase_orders"`
	CashBalance float64       `json:"cash_balance"`
}

type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	EntityID *uint  `json:"entity_id,omitempty"`
}

type AutomationReport struct {
	RanAt          string   `json:"ran_at"`
	Alerts         []Alert  `json:"alerts"`
	PurchaseOrders []string `json:"purchase_orders,omitempty"`
}
