package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/models"
	"resto-pos/utils"
)

type AccountingService interface {
	AddExpense(ctx context.Context, input dtos.ExpenseInput, userID *uint) (*models.Expense, error)
	ListExpenses(ctx context.Context, r dtos.DateRange) ([]models.Expense, error)
	ExpenseSummary(ctx context.Context, r dtos.DateRange) ([]dtos.CategoryTotal, error)

	DailySales(ctx context.Context, date string) (dtos.DailySales, error)
	SalesReport(ctx context.Context, r dtos.DateRange) (dtos.SalesReport, error)
	PaymentBreakdown(ctx context.Context, r dtos.DateRange) (map[string]float64, error)
	ProfitLoss(ctx context.Context, r dtos.DateRange) (dtos.ProfitLoss, error)
	InventoryValuation(ctx context.Context) (dtos.InventoryValuation, error)
	BalanceSheet(ctx context.Context) (dtos.BalanceSheet, error)
	TaxSummary(ctx context.Context, r dtos.DateRange) (dtos.TaxSummary, error)
}

type accountingService struct {
	db *gorm.DB
}

func NewAccountingService(db *gorm.DB) AccountingService {
	return &accountingService{db: db}
}

// monthToDate fills a missing range with the first of this month to today.
func monthToDate(r dtos.DateRange) (string, string, error) {
	now := time.Now()
	from, to := r.From, r.To
	if from == "" {
		from = utils.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local))
	}
	if to == "" {
		to = utils.FormatDate(now)
	}
	if _, err := utils.ParseDate(from); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := utils.ParseDate(to); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if from > to {
		return "", "", fmt.Errorf("%w: from is after to", ErrInvalidInput)
	}
	return from, to, nil
}

// addExpense inserts an expense row inside tx.
func addExpense(tx *gorm.DB, e *models.Expense) error {
	if e.Date == "" {
		e.Date = utils.FormatDate(time.Now())
	}
	if e.PaymentMethod == "" {
		e.PaymentMethod = "Cash"
	}
	return tx.Create(e).Error
}

func (s *accountingService) AddExpense(ctx context.Context, input dtos.ExpenseInput, userID *uint) (*models.Expense, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	e := models.Expense{
		Date:          input.Date,
		Category:      strings.TrimSpace(input.Category),
		Description:   input.Description,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := addExpense(tx, &e); err != nil {
			return err
		}
		return recordAudit(tx, userID, "expense.create", "expense", uintPtr(e.ID), input)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *accountingService) ListExpenses(ctx context.Context, r dtos.DateRange) ([]models.Expense, error) {
	q := s.db.WithContext(ctx).Order("date DESC, id DESC")
	if r.From != "" && r.To != "" {
		q = q.Where("date BETWEEN ? AND ?", r.From, r.To)
	}
	var list []models.Expense
	err := q.Find(&list).Error
	return list, err
}

func (s *accountingService) ExpenseSummary(ctx context.Context, r dtos.DateRange) ([]dtos.CategoryTotal, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{}).
		Select("category, COUNT(*) AS count, SUM(amount) AS total").
		Group("category").Order("total DESC")
	if r.From != "" && r.To != "" {
		q = q.Where("date BETWEEN ? AND ?", r.From, r.To)
	}
	var rows []dtos.CategoryTotal
	err := q.Scan(&rows).Error
	return rows, err
}

func (s *accountingService) completedOrders(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted)
}

func (s *accountingService) DailySales(ctx context.Context, date string) (dtos.DailySales, error) {
	if date == "" {
		date = utils.FormatDate(time.Now())
	}
	report, err := s.SalesReport(ctx, dtos.DateRange{From: date, To: date})
	if err != nil {
		return dtos.DailySales{}, err
	}
	if len(report.Days) == 0 {
		return dtos.DailySales{Date: date}, nil
	}
	return report.Days[0], nil
}

// SalesReport groups completed orders by business date.
func (s *accountingService) SalesReport(ctx context.Context, r dtos.DateRange) (dtos.SalesReport, error) {
	from, to, err := monthToDate(r)
	if err != nil {
		return dtos.SalesReport{}, err
	}
	report := dtos.SalesReport{From: from, To: to}

	var days []dtos.DailySales
	err = s.completedOrders(ctx).
		Select(`business_date AS date, COUNT(*) AS orders, SUM(subtotal) AS subtotal,
			SUM(service_charge) AS service_charge, SUM(tax_amount) AS tax, SUM(total) AS total`).
		Where("business_date BETWEEN ? AND ?", from, to).
		Group("business_date").Order("business_date").
		Scan(&days).Error
	if err != nil {
		return report, err
	}

	type itemCount struct {
		Date  string
		Items int
	}
	var counts []itemCount
	err = s.db.WithContext(ctx).Table("order_items").
		Select("orders.business_date AS date, SUM(order_items.quantity) AS items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ? AND orders.business_date BETWEEN ? AND ?", models.OrderStatusCompleted, from, to).
		Group("orders.business_date").
		Scan(&counts).Error
	if err != nil {
		return report, err
	}
	items := make(map[string]int, len(counts))
	for _, c := range counts {
		items[c.Date] = c.Items
	}

	for i := range days {
		days[i].ItemsSold = items[days[i].Date]
		report.Orders += days[i].Orders
		report.Total += days[i].Total
	}
	report.Total = utils.Round2(report.Total)
	report.Days = days
	return report, nil
}

func (s *accountingService) PaymentBreakdown(ctx context.Context, r dtos.DateRange) (map[string]float64, error) {
	from, to, err := monthToDate(r)
	if err != nil {
		return nil, err
	}
	return paymentBreakdown(s.completedOrders(ctx).Where("business_date BETWEEN ? AND ?", from, to))
}

func paymentBreakdown(q *gorm.DB) (map[string]float64, error) {
	type row struct {
		PaymentMethod string
		Total         float64
	}
	var rows []row
	if err := q.Select("payment_method, SUM(total) AS total").Group("payment_method").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[string]float64{"Cash": 0, "Card": 0, "UPI": 0}
	for _, r := range rows {
		method := r.PaymentMethod
		if method == "" {
			method = "Unpaid"
		}
		out[method] += r.Total
	}
	return out, nil
}

func sumFloat(q *gorm.DB, expr string) (float64, error) {
	var total float64
	err := q.Select("COALESCE(SUM(" + expr + "), 0)").Scan(&total).Error
	return total, err
}

// cogs prices every sold unit at its recipe's current ingredient cost.
func (s *accountingService) cogs(ctx context.Context, from, to string) (float64, error) {
	q := s.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_ingredients ON menu_ingredients.menu_item_id = order_items.menu_item_id").
		Joins("JOIN ingredients ON ingredients.id = menu_ingredients.ingredient_id").
		Where("orders.status = ? AND orders.business_date BETWEEN ? AND ?", models.OrderStatusCompleted, from, to)
	return sumFloat(q, "order_items.quantity * menu_ingredients.quantity_required * ingredients.cost_per_unit")
}

func (s *accountingService) ProfitLoss(ctx context.Context, r dtos.DateRange) (dtos.ProfitLoss, error) {
	from, to, err := monthToDate(r)
	if err != nil {
		return dtos.ProfitLoss{}, err
	}
	pl := dtos.ProfitLoss{From: from, To: to}

	if pl.Revenue, err = sumFloat(s.completedOrders(ctx).Where("business_date BETWEEN ? AND ?", from, to), "total"); err != nil {
		return pl, err
	}
	if pl.COGS, err = s.cogs(ctx, from, to); err != nil {
		return pl, err
	}
	if pl.Expenses, err = sumFloat(s.db.WithContext(ctx).Model(&models.Expense{}).Where("date BETWEEN ? AND ?", from, to), "amount"); err != nil {
		return pl, err
	}
	pl.COGS = utils.Round2(pl.COGS)
	pl.GrossProfit = utils.Round2(pl.Revenue - pl.COGS)
	pl.NetProfit = utils.Round2(pl.GrossProfit - pl.Expenses)
	return pl, nil
}

func (s *accountingService) InventoryValuation(ctx context.Context) (dtos.InventoryValuation, error) {
	var ings []models.Ingredient
	if err := s.db.WithContext(ctx).Order("name").Find(&ings).Error; err != nil {
		return dtos.InventoryValuation{}, err
	}
	var v dtos.InventoryValuation
	for _, ing := range ings {
		line := dtos.ValuationLine{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			Stock:        ing.CurrentStock,
			CostPerUnit:  ing.CostPerUnit,
			Value:        utils.Round2(ing.CurrentStock * ing.CostPerUnit),
		}
		v.Lines = append(v.Lines, line)
		v.Total += line.Value
	}
	v.Total = utils.Round2(v.Total)
	return v, nil
}

// BalanceSheet values assets at account balances plus stock on hand;
// liabilities are open payables and unpaid salaries.
func (s *accountingService) BalanceSheet(ctx context.Context) (dtos.BalanceSheet, error) {
	var bs dtos.BalanceSheet
	var err error
	db := s.db.WithContext(ctx)

	if bs.Cash, err = sumFloat(db.Model(&models.Account{}), "balance"); err != nil {
		return bs, err
	}
	if bs.Inventory, err = sumFloat(db.Model(&models.Ingredient{}), "current_stock * cost_per_unit"); err != nil {
		return bs, err
	}
	if bs.AccountsPayable, err = sumFloat(db.Model(&models.AccountPayable{}).
		Where("status IN ?", []string{models.PayableUnpaid, models.PayablePartial}), "amount - paid_amount"); err != nil {
		return bs, err
	}
	if bs.SalariesPending, err = sumFloat(db.Model(&models.SalaryPayment{}).
		Where("status = ?", models.SalaryPending), "total_salary"); err != nil {
		return bs, err
	}
	bs.Inventory = utils.Round2(bs.Inventory)
	bs.TotalAssets = utils.Round2(bs.Cash + bs.Inventory)
	bs.TotalLiabilities = utils.Round2(bs.AccountsPayable + bs.SalariesPending)
	bs.Equity = utils.Round2(bs.TotalAssets - bs.TotalLiabilities)
	return bs, nil
}

func (s *accountingService) TaxSummary(ctx context.Context, r dtos.DateRange) (dtos.TaxSummary, error) {
	from, to, err := monthToDate(r)
	if err != nil {
		return dtos.TaxSummary{}, err
	}
	ts := dtos.TaxSummary{From: from, To: to}
	q := func() *gorm.DB {
		return s.completedOrders(ctx).Where("business_date BETWEEN ? AND ? AND tax_amount > 0", from, to)
	}
	if ts.TaxableSales, err = sumFloat(q(), "subtotal"); err != nil {
		return ts, err
	}
	if ts.TaxCollected, err = sumFloat(q(), "tax_amount"); err != nil {
		return ts, err
	}
	ts.CGST = utils.Round2(ts.TaxCollected / 2)
	ts.SGST = utils.Round2(ts.TaxCollected - ts.CGST)
	return ts, nil
}
