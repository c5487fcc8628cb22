package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/models"
	"resto-pos/utils"
)

const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

type AnalyticsService interface {
	TodaySummary(ctx context.Context) (dtos.TodaySummary, error)
	PopularItems(ctx context.Context, period string, limit int) ([]dtos.PopularItem, error)
	CategoryPerformance(ctx context.Context, r dtos.DateRange) ([]dtos.CategoryPerformance, error)
	HourlySales(ctx context.Context, date string) ([]dtos.HourlySales, error)
	Dashboard(ctx context.Context) (dtos.Dashboard, error)
}

type analyticsService struct {
	db        *gorm.DB
	startHour int
	now       func() time.Time
}

func NewAnalyticsService(db *gorm.DB, businessDayStartHour int) AnalyticsService {
	return &analyticsService{db: db, startHour: businessDayStartHour, now: time.Now}
}

func (s *analyticsService) today() string {
	return utils.BusinessDate(s.now(), s.startHour)
}

// periodRange maps a named period onto business dates. PeriodAll has no bounds.
func (s *analyticsService) periodRange(period string) (string, string, error) {
	today := s.today()
	t, _ := utils.ParseDate(today)
	switch period {
	case "", PeriodToday:
		return today, today, nil
	case PeriodWeek:
		return utils.FormatDate(t.AddDate(0, 0, -7)), today, nil
	case PeriodMonth:
		return utils.FormatDate(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)), today, nil
	case PeriodAll:
		return "", "", nil
	default:
		return "", "", fmt.Errorf("%w: period must be today, week, month or all", ErrInvalidInput)
	}
}

func (s *analyticsService) TodaySummary(ctx context.Context) (dtos.TodaySummary, error) {
	sum := dtos.TodaySummary{Date: s.today()}
	orders := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Order{}).
			Where("status = ? AND business_date = ?", models.OrderStatusCompleted, sum.Date)
	}

	var count int64
	if err := orders().Count(&count).Error; err != nil {
		return sum, err
	}
	sum.Orders = int(count)
	revenue, err := sumFloat(orders(), "total")
	if err != nil {
		return sum, err
	}
	sum.Revenue = revenue
	if sum.Orders > 0 {
		sum.AverageOrder = sum.Revenue / float64(sum.Orders)
	}
	if sum.ByPaymentMethod, err = paymentBreakdown(orders()); err != nil {
		return sum, err
	}
	return sum, nil
}

func (s *analyticsService) PopularItems(ctx context.Context, period string, limit int) ([]dtos.PopularItem, error) {
	from, to, err := s.periodRange(period)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	q := s.db.WithContext(ctx).Table("order_items").
		Select(`order_items.menu_item_id, MAX(order_items.item_name) AS name,
			SUM(order_items.quantity) AS quantity, SUM(order_items.total) AS revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderStatusCompleted).
		Group("order_items.menu_item_id").
		Order("quantity DESC, revenue DESC").
		Limit(limit)
	if from != "" {
		q = q.Where("orders.business_date BETWEEN ? AND ?", from, to)
	}
	var items []dtos.PopularItem
	err = q.Scan(&items).Error
	return items, err
}

func (s *analyticsService) CategoryPerformance(ctx context.Context, r dtos.DateRange) ([]dtos.CategoryPerformance, error) {
	from, to, err := monthToDate(r)
	if err != nil {
		return nil, err
	}
	var rows []dtos.CategoryPerformance
	err = s.db.WithContext(ctx).Table("order_items").
		Select("menu_items.category, SUM(order_items.quantity) AS quantity, SUM(order_items.total) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.status = ? AND orders.business_date BETWEEN ? AND ?", models.OrderStatusCompleted, from, to).
		Group("menu_items.category").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

// HourlySales buckets one business date by wall-clock hour of the order.
func (s *analyticsService) HourlySales(ctx context.Context, date string) ([]dtos.HourlySales, error) {
	if date == "" {
		date = s.today()
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).Select("order_date", "total").
		Where("status = ? AND business_date = ?", models.OrderStatusCompleted, date).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	var buckets [24]dtos.HourlySales
	for _, o := range orders {
		b := &buckets[o.OrderDate.Hour()]
		b.Orders++
		b.Revenue += o.Total
	}
	var out []dtos.HourlySales
	for h, b := range buckets {
		if b.Orders == 0 {
			continue
		}
		b.Hour = h
		out = append(out, b)
	}
	return out, nil
}

func (s *analyticsService) Dashboard(ctx context.Context) (dtos.Dashboard, error) {
	var d dtos.Dashboard
	var err error
	if d.Today, err = s.TodaySummary(ctx); err != nil {
		return d, err
	}
	if d.TopItems, err = s.PopularItems(ctx, PeriodToday, 5); err != nil {
		return d, err
	}

	db := s.db.WithContext(ctx)
	var low, pending int64
	if err := db.Model(&models.Ingredient{}).Where("current_stock <= min_stock").Count(&low).Error; err != nil {
		return d, err
	}
	if err := db.Model(&models.PurchaseOrder{}).Where("status = ?", models.POStatusPending).Count(&pending).Error; err != nil {
		return d, err
	}
	d.LowStock = int(low)
	d.PendingPOs = int(pending)

	var acc models.Account
	if err := db.Where("id = ?", models.DefaultAccountID).Limit(1).Find(&acc).Error; err != nil {
		return d, err
	}
	d.CashBalance = acc.Balance
	return d, nil
}
