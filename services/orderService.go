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

// TaxRate is the flat GST applied to the subtotal when tax is enabled.
const TaxRate = 0.05

type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	ServiceCharge float64 `json:"service_charge"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

// ComputeTotals keeps values unrounded; rounding happens at display.
func ComputeTotals(lines []CartLine, taxEnabled bool, serviceRate float64) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal += l.Price
	}
	if serviceRate > 0 {
		t.ServiceCharge = t.Subtotal * serviceRate / 100
	}
	if taxEnabled {
		t.Tax = t.Subtotal * TaxRate
	}
	t.Total = t.Subtotal + t.ServiceCharge + t.Tax
	return t
}

type OrderService interface {
	// Settle persists the order and its lines in one transaction.
	Settle(ctx context.Context, lines []CartLine, table string) (*models.Order, error)
	SettlePaid(ctx context.Context, lines []CartLine, table, paymentMethod string) (*models.Order, error)
	Totals(ctx context.Context, lines []CartLine) (Totals, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context, filter dtos.OrderFilter) ([]models.Order, error)
}

type orderService struct {
	db        *gorm.DB
	settings  SettingsService
	startHour int
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, settings SettingsService, businessDayStartHour int) OrderService {
	return &orderService{db: db, settings: settings, startHour: businessDayStartHour, now: time.Now}
}

func (s *orderService) Totals(ctx context.Context, lines []CartLine) (Totals, error) {
	rs, err := s.settings.Restaurant(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("load restaurant settings: %w", err)
	}
	return ComputeTotals(lines, rs.TaxEnabled, rs.ServiceChargeRate), nil
}

func (s *orderService) Settle(ctx context.Context, lines []CartLine, table string) (*models.Order, error) {
	return s.SettlePaid(ctx, lines, table, "")
}

func (s *orderService) SettlePaid(ctx context.Context, lines []CartLine, table, paymentMethod string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	totals, err := s.Totals(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := models.Order{
		OrderDate:     now,
		BusinessDate:  utils.BusinessDate(now, s.startHour),
		Subtotal:      totals.Subtotal,
		ServiceCharge: totals.ServiceCharge,
		TaxAmount:     totals.Tax,
		Total:         totals.Total,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusCompleted,
	}
	if t := strings.TrimSpace(table); t != "" {
		order.TableNumber = &t
	}
	for _, l := range lines {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: l.MenuItemID,
			ItemName:   l.Name,
			PlateType:  l.Plate,
			Quantity:   1,
			Price:      l.Price,
			Total:      l.Price,
		})
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return &order, nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *orderService) List(ctx context.Context, filter dtos.OrderFilter) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Preload("Items").Order("id DESC")
	if filter.From != "" {
		q = q.Where("business_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("business_date <= ?", filter.To)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var orders []models.Order
	err := q.Limit(limit).Find(&orders).Error
	return orders, err
}
