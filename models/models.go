package models

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&Category{}, &MenuItem{},
		&Order{}, &OrderItem{},
		&Ingredient{}, &MenuIngredient{}, &StockTransaction{}, &Supplier{},
		&Account{}, &LedgerTransaction{}, &Expense{},
		&PurchaseOrder{}, &PurchaseOrderItem{}, &AccountPayable{}, &SupplierPayment{},
		&Staff{}, &Attendance{}, &LeaveRequest{}, &SalaryPayment{},
		&User{}, &AuditLog{},
		&RestaurantSettings{}, &TelegramSettings{}, &PrinterSettings{},
	}
}
