package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/logger"
	"resto-pos/models"
	"resto-pos/utils"
)

const (
	lowCashThreshold      = 10000.0
	highExpenseThreshold  = 50000.0
	highExpenseWindowDays = 7
	slowMovingDays        = 30
	discrepancyTolerance  = 1.0
	autoPOLeadDays        = 3
	maxAbsences           = 3
	maxLateDays           = 5

	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

type AutomationService interface {
	Alerts(ctx context.Context) ([]dtos.Alert, error)
	// AutoPurchaseOrder raises a purchase order for one ingredient. Quantity 0
	// orders twice the minimum stock.
	AutoPurchaseOrder(ctx context.Context, ingredientID uint, quantity float64, userID *uint) (*models.PurchaseOrder, error)
	// RunDaily collects alerts and, only when createOrders is set, raises
	// purchase orders for every low-stock ingredient.
	RunDaily(ctx context.Context, createOrders bool, userID *uint) (dtos.AutomationReport, error)
}

type automationService struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewAutomationService(db *gorm.DB, log *logger.Logger) AutomationService {
	return &automationService{db: db, log: log.WithComponent("automation"), now: time.Now}
}

func (s *automationService) Alerts(ctx context.Context) ([]dtos.Alert, error) {
	checks := []func(context.Context) ([]dtos.Alert, error){
		s.lowStock,
		s.discrepancies,
		s.lowCash,
		s.highExpenses,
		s.attendanceIssues,
		s.slowMoving,
	}
	var alerts []dtos.Alert
	for _, check := range checks {
		found, err := check(ctx)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, found...)
	}
	return alerts, nil
}

func (s *automationService) lowStockIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	err := s.db.WithContext(ctx).Where("current_stock <= min_stock AND min_stock > 0").Order("name").Find(&list).Error
	return list, err
}

func (s *automationService) lowStock(ctx context.Context) ([]dtos.Alert, error) {
	list, err := s.lowStockIngredients(ctx)
	if err != nil {
		return nil, err
	}
	var alerts []dtos.Alert
	for _, ing := range list {
		alerts = append(alerts, dtos.Alert{
			Type:     "low_stock",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%s: %.2f %s left (minimum %.2f)", ing.Name, ing.CurrentStock, ing.Unit, ing.MinStock),
			EntityID: uintPtr(ing.ID),
		})
	}
	return alerts, nil
}

// discrepancies compares each stock level with the sum of its movements.
func (s *automationService) discrepancies(ctx context.Context) ([]dtos.Alert, error) {
	type row struct {
		ID           uint
		Name         string
		CurrentStock float64
		Calculated   float64
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("ingredients").
		Select(`ingredients.id, ingredients.name, ingredients.current_stock,
			COALESCE(SUM(CASE WHEN stock_transactions.type = ? THEN stock_transactions.quantity
				ELSE -stock_transactions.quantity END), 0) AS calculated`, models.StockIn).
		Joins("LEFT JOIN stock_transactions ON stock_transactions.ingredient_id = ingredients.id").
		Group("ingredients.id, ingredients.name, ingredients.current_stock").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	var alerts []dtos.Alert
	for _, r := range rows {
		diff := r.CurrentStock - r.Calculated
		if math.Abs(diff) <= discrepancyTolerance {
			continue
		}
		alerts = append(alerts, dtos.Alert{
			Type:     "inventory_discrepancy",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%s: stock discrepancy of %.2f", r.Name, diff),
			EntityID: uintPtr(r.ID),
		})
	}
	return alerts, nil
}

func (s *automationService) lowCash(ctx context.Context) ([]dtos.Alert, error) {
	var acc models.Account
	res := s.db.WithContext(ctx).Where("type = ?", models.AccountCash).Order("id").Limit(1).Find(&acc)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || acc.Balance >= lowCashThreshold {
		return nil, nil
	}
	return []dtos.Alert{{
		Type:     "low_cash",
		Severity: SeverityHigh,
		Message:  "Low cash balance: INR " + utils.FormatAmount(acc.Balance),
		EntityID: uintPtr(acc.ID),
	}}, nil
}

func (s *automationService) highExpenses(ctx context.Context) ([]dtos.Alert, error) {
	since := utils.FormatDate(s.now().AddDate(0, 0, -highExpenseWindowDays))
	total, err := sumFloat(s.db.WithContext(ctx).Model(&models.Expense{}).Where("date >= ?", since), "amount")
	if err != nil {
		return nil, err
	}
	if total <= highExpenseThreshold {
		return nil, nil
	}
	return []dtos.Alert{{
		Type:     "high_expenses",
		Severity: SeverityMedium,
		Message:  fmt.Sprintf("High expenses in last %d days: INR %s", highExpenseWindowDays, utils.FormatAmount(total)),
	}}, nil
}

func (s *automationService) attendanceIssues(ctx context.Context) ([]dtos.Alert, error) {
	now := s.now()
	first, _ := utils.MonthRange(now.Year(), int(now.Month()))
	type row struct {
		ID     uint
		Name   string
		Role   string
		Absent int
		Late   int
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("staff").
		Select(`staff.id, staff.name, staff.role,
			SUM(CASE WHEN attendance.status = ? THEN 1 ELSE 0 END) AS absent,
			SUM(CASE WHEN attendance.status = ? THEN 1 ELSE 0 END) AS late`,
			models.AttendanceAbsent, models.AttendanceLate).
		Joins("JOIN attendance ON attendance.staff_id = staff.id").
		Where("staff.status = ? AND attendance.date >= ?", models.StaffActive, first).
		Group("staff.id, staff.name, staff.role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	var alerts []dtos.Alert
	for _, r := range rows {
		if r.Absent <= maxAbsences && r.Late <= maxLateDays {
			continue
		}
		alerts = append(alerts, dtos.Alert{
			Type:     "attendance_issue",
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%s (%s): %d absences, %d late days", r.Name, r.Role, r.Absent, r.Late),
			EntityID: uintPtr(r.ID),
		})
	}
	return alerts, nil
}

func (s *automationService) slowMoving(ctx context.Context) ([]dtos.Alert, error) {
	since := utils.FormatDate(s.now().AddDate(0, 0, -slowMovingDays))
	sold := s.db.WithContext(ctx).Table("order_items").
		Select("order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.business_date >= ?", since)

	var names []string
	err := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("is_available = ? AND id NOT IN (?)", true, sold).
		Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	shown := names
	if len(shown) > 5 {
		shown = shown[:5]
	}
	return []dtos.Alert{{
		Type:     "slow_moving",
		Severity: SeverityLow,
		Message:  fmt.Sprintf("Slow moving items (no orders in %d days): %s", slowMovingDays, strings.Join(shown, ", ")),
	}}, nil
}

func (s *automationService) AutoPurchaseOrder(ctx context.Context, ingredientID uint, quantity float64, userID *uint) (*models.PurchaseOrder, error) {
	var po *models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		po, err = s.autoPurchaseOrder(tx, ingredientID, quantity)
		if err != nil {
			return err
		}
		return recordAudit(tx, userID, "purchase_order.auto", "purchase_order", uintPtr(po.ID),
			map[string]any{"ingredient_id": ingredientID, "quantity": po.Items[0].Quantity})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("auto purchase order created", "po_number", po.PONumber, "ingredient_id", ingredientID)
	return po, nil
}

// autoPurchaseOrder picks the supplier used most for the ingredient (falling
// back to the first supplier) and prices the line at the historical average.
func (s *automationService) autoPurchaseOrder(tx *gorm.DB, ingredientID uint, quantity float64) (*models.PurchaseOrder, error) {
	var ing models.Ingredient
	if err := tx.First(&ing, ingredientID).Error; err != nil {
		return nil, notFound(err)
	}
	if quantity <= 0 {
		quantity = ing.MinStock * 2
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %s has no minimum stock to reorder against", ErrInvalidInput, ing.Name)
	}

	type usage struct {
		SupplierID uint
		Orders     int
	}
	var top []usage
	err := tx.Table("purchase_orders").
		Select("purchase_orders.supplier_id, COUNT(*) AS orders").
		Joins("JOIN purchase_order_items ON purchase_order_items.purchase_order_id = purchase_orders.id").
		Where("purchase_order_items.ingredient_id = ?", ingredientID).
		Group("purchase_orders.supplier_id").
		Order("orders DESC").Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	var supplierID uint
	if len(top) > 0 {
		supplierID = top[0].SupplierID
	} else {
		var first models.Supplier
		res := tx.Order("id").Limit(1).Find(&first)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: no suppliers available", ErrConflict)
		}
		supplierID = first.ID
	}

	price, err := averagePrice(tx, ingredientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return createPurchaseOrder(tx, now, dtos.PurchaseOrderInput{
		SupplierID:   supplierID,
		ExpectedDate: utils.FormatDate(now.AddDate(0, 0, autoPOLeadDays)),
		Notes:        "Auto-generated for low stock: " + ing.Name,
		Items:        []dtos.PurchaseOrderItemInput{{IngredientID: ingredientID, Quantity: quantity, UnitPrice: price}},
	})
}

func averagePrice(tx *gorm.DB, ingredientID uint) (float64, error) {
	var avg float64
	err := tx.Model(&models.PurchaseOrderItem{}).
		Where("ingredient_id = ?", ingredientID).
		Select("COALESCE(AVG(unit_price), 0)").
		Scan(&avg).Error
	return avg, err
}

func (s *automationService) RunDaily(ctx context.Context, createOrders bool, userID *uint) (dtos.AutomationReport, error) {
	report := dtos.AutomationReport{RanAt: s.now().Format(time.RFC3339)}

	if createOrders {
		low, err := s.lowStockIngredients(ctx)
		if err != nil {
			return report, err
		}
		for _, ing := range low {
			po, err := s.AutoPurchaseOrder(ctx, ing.ID, 0, userID)
			if err != nil {
				s.log.Warn("auto purchase order skipped", "ingredient_id", ing.ID, "error", err)
				continue
			}
			report.PurchaseOrders = append(report.PurchaseOrders, po.PONumber)
		}
	}

	alerts, err := s.Alerts(ctx)
	if err != nil {
		return report, err
	}
	report.Alerts = alerts
	s.log.Info("daily automation finished", "alerts", len(alerts), "purchase_orders", len(report.PurchaseOrders))
	return report, nil
}
