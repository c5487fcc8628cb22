package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"resto-pos/models"
	"resto-pos/telegram"
	"resto-pos/utils"
)

const recentBills = 5

// ReportService answers the read-only bot commands.
type ReportService struct {
	db        *gorm.DB
	menu      MenuService
	startHour int
	now       func() time.Time
}

var _ telegram.Reports = (*ReportService)(nil)

func NewReportService(db *gorm.DB, menu MenuService, businessDayStartHour int) *ReportService {
	return &ReportService{db: db, menu: menu, startHour: businessDayStartHour, now: time.Now}
}

func (s *ReportService) completed(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted)
}

func (s *ReportService) countAndSum(q func() *gorm.DB) (int, float64, error) {
	var n int64
	if err := q().Count(&n).Error; err != nil {
		return 0, 0, err
	}
	total, err := sumFloat(q(), "total")
	return int(n), total, err
}

func summarize(o models.Order) telegram.BillSummary {
	table := ""
	if o.TableNumber != nil {
		table = *o.TableNumber
	}
	return telegram.BillSummary{ID: o.ID, Table: table, Date: o.OrderDate, Total: o.Total}
}

func (s *ReportService) TodaySales(ctx context.Context) (telegram.DaySales, error) {
	today := utils.BusinessDate(s.now(), s.startHour)
	day := telegram.DaySales{Date: today}
	q := func() *gorm.DB { return s.completed(ctx).Where("business_date = ?", today) }

	var err error
	if day.Orders, day.Sales, err = s.countAndSum(q); err != nil {
		return day, err
	}
	day.Recent, err = s.bills(q(), recentBills)
	return day, err
}

func (s *ReportService) SalesSince(ctx context.Context, days int) (telegram.PeriodSales, error) {
	if days < 1 {
		days = 1
	}
	now := s.now()
	today := utils.BusinessDate(now, s.startHour)
	t, _ := utils.ParseDate(today)
	since := utils.FormatDate(t.AddDate(0, 0, -(days - 1)))

	p := telegram.PeriodSales{Days: days}
	var err error
	if p.TodayOrders, p.TodaySales, err = s.countAndSum(func() *gorm.DB {
		return s.completed(ctx).Where("business_date = ?", today)
	}); err != nil {
		return p, err
	}
	p.Orders, p.Sales, err = s.countAndSum(func() *gorm.DB {
		return s.completed(ctx).Where("business_date BETWEEN ? AND ?", since, today)
	})
	return p, err
}

func (s *ReportService) bills(q *gorm.DB, limit int) ([]telegram.BillSummary, error) {
	var orders []models.Order
	if err := q.Order("id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	out := make([]telegram.BillSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, summarize(o))
	}
	return out, nil
}

func (s *ReportService) TodayBills(ctx context.Context, limit int) ([]telegram.BillSummary, error) {
	today := utils.BusinessDate(s.now(), s.startHour)
	return s.bills(s.completed(ctx).Where("business_date = ?", today), limit)
}

func (s *ReportService) Bill(ctx context.Context, id uint) (*telegram.BillDetail, error) {
	var o models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := &telegram.BillDetail{
		BillSummary:   summarize(o),
		Subtotal:      o.Subtotal,
		ServiceCharge: o.ServiceCharge,
		Tax:           o.TaxAmount,
		Discount:      o.Discount,
	}
	for _, it := range o.Items {
		d.Items = append(d.Items, telegram.BillItem{Quantity: it.Quantity, Name: it.ItemName, Total: it.Total})
	}
	return d, nil
}

func (s *ReportService) MenuSummary(ctx context.Context) (telegram.MenuSummary, error) {
	counts, total, err := s.menu.Summary(ctx)
	if err != nil {
		return telegram.MenuSummary{}, err
	}
	ms := telegram.MenuSummary{Total: total}
	for _, c := range counts {
		ms.Categories = append(ms.Categories, telegram.CategoryCount{Category: c.Category, Count: c.Count})
	}
	return ms, nil
}
