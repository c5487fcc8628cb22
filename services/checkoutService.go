package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resto-pos/logger"
	"resto-pos/models"
	"resto-pos/printer"
	"resto-pos/telegram"
)

//go:generate mockgen -destination=mocks/ports_mock.go -package=mocks resto-pos/services OrderNotifier,ReceiptPrinter

type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, notice telegram.OrderNotice) error
	NotifyPayment(ctx context.Context, notice telegram.OrderNotice) error
}

type ReceiptPrinter interface {
	PrintReceipt(ctx context.Context, printerName string, r printer.Receipt) error
}

const (
	StepLedger        = "ledger"
	StepStock         = "stock"
	StepNotifyOrder   = "notify_new_order"
	StepNotifyPayment = "notify_payment"
	StepPrint         = "print_receipt"
)

type StepOutcome struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type CheckoutRequest struct {
	Lines       []CartLine
	Table       string
	PaymentMode string
}

type CheckoutResult struct {
	Order    *models.Order  `json:"order"`
	Steps    []StepOutcome  `json:"steps"`
	Stock    StockDeduction `json:"stock"`
	Warnings []string       `json:"warnings,omitempty"`
}

type Preview struct {
	Totals  Totals `json:"totals"`
	Receipt string `json:"receipt"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	Preview(ctx context.Context, lines []CartLine, table string) (*Preview, error)
	Reprint(ctx context.Context, orderID uint) error
}

type checkoutService struct {
	orders    OrderService
	ledger    LedgerService
	inventory InventoryService
	settings  SettingsService
	notifier  OrderNotifier
	printer   ReceiptPrinter
	log       *logger.Logger
}

func NewCheckoutService(orders OrderService, ledger LedgerService, inventory InventoryService,
	settings SettingsService, notifier OrderNotifier, printer ReceiptPrinter, log *logger.Logger) CheckoutService {
	return &checkoutService{
		orders:    orders,
		ledger:    ledger,
		inventory: inventory,
		settings:  settings,
		notifier:  notifier,
		printer:   printer,
		log:       log.WithComponent("checkout"),
	}
}

var paymentModes = map[string]string{"cash": "Cash", "card": "Card", "upi": "UPI"}

func NormalizePaymentMode(mode string) (string, error) {
	if m, ok := paymentModes[strings.ToLower(strings.TrimSpace(mode))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: payment mode must be Cash, Card or UPI", ErrInvalidInput)
}

type pipelineStep struct {
	name string
	run  func(ctx context.Context) StepOutcome
}

// Checkout settles the cart, then runs every side effect in order. Once the
// order is saved it stays saved: a failed step is reported, never compensated,
// and later steps still run. Stock shortfalls never block the sale.
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	mode, err := NormalizePaymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.SettlePaid(ctx, req.Lines, req.Table, mode)
	if err != nil {
		return nil, err
	}

	// the order is committed; side effects run to completion regardless of the caller
	ctx = context.WithoutCancel(ctx)
	result := &CheckoutResult{Order: order}
	notice := noticeFor(order, req.Lines, mode)

	steps := []pipelineStep{
		{StepLedger, func(ctx context.Context) StepOutcome {
			r := s.ledger.RecordOrderTransaction(ctx, order.ID, order.Total, mode)
			return StepOutcome{Name: StepLedger, OK: r.OK, Reason: r.Reason}
		}},
		{StepStock, func(ctx context.Context) StepOutcome {
			result.Stock = s.inventory.DeductForOrder(ctx, order.ID, soldItems(req.Lines))
			out := StepOutcome{Name: StepStock, OK: result.Stock.OK, Reason: result.Stock.Reason}
			if n := result.Stock.Count(DeductionInsufficient); n > 0 && out.OK {
				out.Reason = fmt.Sprintf("%d ingredient(s) had insufficient stock", n)
			}
			return out
		}},
		{StepNotifyOrder, func(ctx context.Context) StepOutcome {
			return notifyOutcome(StepNotifyOrder, s.notifier.NotifyNewOrder(ctx, notice))
		}},
		{StepNotifyPayment, func(ctx context.Context) StepOutcome {
			return notifyOutcome(StepNotifyPayment, s.notifier.NotifyPayment(ctx, notice))
		}},
		{StepPrint, func(ctx context.Context) StepOutcome {
			return s.print(ctx, order, true)
		}},
	}

	for _, step := range steps {
		out := step.run(ctx)
		result.Steps = append(result.Steps, out)
		if !out.OK && !out.Skipped {
			s.log.Warn("checkout step failed", "order_id", order.ID, "step", out.Name, "reason", out.Reason)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", out.Name, out.Reason))
		} else if out.Reason != "" && !out.Skipped {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", out.Name, out.Reason))
		}
	}

	s.log.Info("order settled", "order_id", order.ID, "total", order.Total, "payment_mode", mode,
		"items", len(order.Items), "warnings", len(result.Warnings))
	return result, nil
}

func notifyOutcome(name string, err error) StepOutcome {
	switch {
	case err == nil:
		return StepOutcome{Name: name, OK: true}
	case errors.Is(err, telegram.ErrDisabled):
		return StepOutcome{Name: name, Skipped: true, Reason: "notifications disabled"}
	default:
		return StepOutcome{Name: name, Reason: err.Error()}
	}
}

func (s *checkoutService) print(ctx context.Context, order *models.Order, auto bool) StepOutcome {
	ps, err := s.settings.Printer(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return StepOutcome{Name: StepPrint, Reason: err.Error()}
	}
	printerName := ""
	if ps != nil {
		if auto && !ps.AutoPrint {
			return StepOutcome{Name: StepPrint, Skipped: true, Reason: "auto print disabled"}
		}
		printerName = ps.PrinterName
	}

	receipt, err := s.receiptFor(ctx, order)
	if err != nil {
		return StepOutcome{Name: StepPrint, Reason: err.Error()}
	}
	if err := s.printer.PrintReceipt(ctx, printerName, receipt); err != nil {
		return StepOutcome{Name: StepPrint, Reason: err.Error()}
	}
	return StepOutcome{Name: StepPrint, OK: true}
}

func (s *checkoutService) restaurantName(ctx context.Context) (string, error) {
	rs, err := s.settings.Restaurant(ctx)
	if err != nil {
		return "", fmt.Errorf("load restaurant settings: %w", err)
	}
	return rs.Name, nil
}

func (s *checkoutService) receiptFor(ctx context.Context, order *models.Order) (printer.Receipt, error) {
	name, err := s.restaurantName(ctx)
	if err != nil {
		return printer.Receipt{}, err
	}
	r := printer.Receipt{
		RestaurantName: name,
		InvoiceNo:      order.ID,
		Date:           order.OrderDate,
		Subtotal:       order.Subtotal,
		ServiceCharge:  order.ServiceCharge,
		Tax:            order.TaxAmount,
		Total:          order.Total,
	}
	if order.TableNumber != nil {
		r.Table = *order.TableNumber
	}
	for _, item := range order.Items {
		r.Items = append(r.Items, printer.Line{Name: item.ItemName, Plate: item.PlateType, Amount: item.Total})
	}
	return r, nil
}

// Preview renders the bill for the current cart without saving anything.
func (s *checkoutService) Preview(ctx context.Context, lines []CartLine, table string) (*Preview, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	totals, err := s.orders.Totals(ctx, lines)
	if err != nil {
		return nil, err
	}
	name, err := s.restaurantName(ctx)
	if err != nil {
		return nil, err
	}
	r := printer.Receipt{
		RestaurantName: name,
		Table:          strings.TrimSpace(table),
		Subtotal:       totals.Subtotal,
		ServiceCharge:  totals.ServiceCharge,
		Tax:            totals.Tax,
		Total:          totals.Total,
	}
	for _, l := range lines {
		r.Items = append(r.Items, printer.Line{Name: l.Name, Plate: l.Plate, Amount: l.Price})
	}
	return &Preview{Totals: totals, Receipt: r.Text()}, nil
}

// Reprint prints a stored order regardless of the auto print flag.
func (s *checkoutService) Reprint(ctx context.Context, orderID uint) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	out := s.print(ctx, order, false)
	if !out.OK {
		return errors.New(out.Reason)
	}
	return nil
}

func soldItems(lines []CartLine) []SoldItem {
	items := make([]SoldItem, len(lines))
	for i, l := range lines {
		items[i] = SoldItem{MenuItemID: l.MenuItemID, Quantity: 1}
	}
	return items
}

func noticeFor(order *models.Order, lines []CartLine, mode string) telegram.OrderNotice {
	n := telegram.OrderNotice{
		OrderID:     order.ID,
		Total:       order.Total,
		PaymentMode: mode,
		At:          order.OrderDate,
	}
	if order.TableNumber != nil {
		n.Table = *order.TableNumber
	}
	for _, l := range lines {
		n.Items = append(n.Items, telegram.NoticeItem{Name: l.Name, Plate: l.Plate, Quantity: 1, Price: l.Price})
	}
	return n
}
