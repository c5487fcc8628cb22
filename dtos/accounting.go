package dtos

type ExpenseInput struct {
	Date          string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category      string  `json:"category" binding:"required,max=100"`
	Description   string  `json:"description" binding:"max=255"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

type DailySales struct {
	Date          string  `json:"date"`
	Orders        int     `json:"orders"`
	Subtotal      float64 `json:"subtotal"`
	ServiceCharge float64 `json:"service_charge"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	ItemsSold     int     `json:"items_sold"`
}

type SalesReport struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Days   []DailySales `json:"days"`
	Orders int          `json:"orders"`
	Total  float64      `json:"total"`
}

type ProfitLoss struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Revenue     float64 `json:"revenue"`
	COGS        float64 `json:"cogs"`
	GrossProfit float64 `json:"gross_profit"`
	Expenses    float64 `json:"expenses"`
	NetProfit   float64 `json:"net_profit"`
}

type ValuationLine struct {
	IngredientID uint    `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Stock        float64 `json:"stock"`
	CostPerUnit  float64 `json:"cost_per_unit"`
	Value        float64 `json:"value"`
}

type InventoryValuation struct {
	Lines []ValuationLine `json:"lines"`
	Total float64         `json:"total"`
}

type BalanceSheet struct {
	Cash             float64 `json:"cash"`
	Inventory        float64 `json:"inventory"`
	TotalAssets      float64 `json:"total_assets"`
	AccountsPayable  float64 `json:"accounts_payable"`
	SalariesPending  float64 `json:"salaries_pending"`
	TotalLiabilities float64 `json:"total_liabilities"`
	Equity           float64 `json:"equity"`
}

type TaxSummary struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	TaxableSales float64 `json:"taxable_sales"`
	TaxCollected float64 `json:"tax_collected"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
}
