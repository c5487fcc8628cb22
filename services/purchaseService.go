package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/logger"
	"resto-pos/models"
	"resto-pos/utils"
)

// Net30 is the default payment term for payables without an expected date.
const Net30 = 30 * 24 * time.Hour

type PurchaseService interface {
	Create(ctx context.Context, input dtos.PurchaseOrderInput, userID *uint) (*models.PurchaseOrder, error)
	Receive(ctx context.Context, id uint, input dtos.ReceiveInput, userID *uint) (*models.PurchaseOrder, error)
	Cancel(ctx context.Context, id uint, userID *uint) (*models.PurchaseOrder, error)
	List(ctx context.Context, status string) ([]models.PurchaseOrder, error)
	Get(ctx context.Context, id uint) (*models.PurchaseOrder, error)

	Payables(ctx context.Context, status string) ([]models.AccountPayable, error)
	PayablesSummary(ctx context.Context) (dtos.PayablesSummary, error)
	Outstanding(ctx context.Context) (float64, error)
	Overdue(ctx context.Context) ([]models.AccountPayable, error)
	RecordPayment(ctx context.Context, supplierID uint, input dtos.SupplierPaymentInput, userID *uint) (*models.SupplierPayment, error)
	SupplierPayments(ctx context.Context, supplierID uint) ([]models.SupplierPayment, error)
	SupplierBalance(ctx context.Context, supplierID uint) (dtos.SupplierBalance, error)
	Summary(ctx context.Context, r dtos.DateRange) (dtos.PurchaseSummary, error)
}

type purchaseService struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewPurchaseService(db *gorm.DB, log *logger.Logger) PurchaseService {
	return &purchaseService{db: db, log: log.WithComponent("purchasing"), now: time.Now}
}

// nextPONumber numbers orders per day as PO-YYYYMMDD-nnn.
func nextPONumber(tx *gorm.DB, day time.Time) (string, error) {
	prefix := "PO-" + day.Format("20060102") + "-"
	var count int64
	if err := tx.Model(&models.PurchaseOrder{}).Where("po_number LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

// createPurchaseOrder writes the order, its lines and the matching payable inside tx.
func createPurchaseOrder(tx *gorm.DB, now time.Time, input dtos.PurchaseOrderInput) (*models.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase order needs at least one item", ErrInvalidInput)
	}
	var supplier models.Supplier
	if err := tx.First(&supplier, input.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown supplier %d", ErrInvalidInput, input.SupplierID)
		}
		return nil, err
	}
	if input.ExpectedDate != "" {
		if _, err := utils.ParseDate(input.ExpectedDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	number, err := nextPONumber(tx, now)
	if err != nil {
		return nil, err
	}
	po := models.PurchaseOrder{
		PONumber:     number,
		SupplierID:   supplier.ID,
		OrderDate:    utils.FormatDate(now),
		ExpectedDate: input.ExpectedDate,
		Status:       models.POStatusPending,
		Notes:        input.Notes,
	}
	for _, it := range input.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: quantity must be positive and price not negative", ErrInvalidInput)
		}
		var ing models.Ingredient
		if err := tx.First(&ing, it.IngredientID).Error; err != nil {
			return nil, fmt.Errorf("%w: unknown ingredient %d", ErrInvalidInput, it.IngredientID)
		}
		line := models.PurchaseOrderItem{
			IngredientID: it.IngredientID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Total:        it.Quantity * it.UnitPrice,
		}
		po.TotalAmount += line.Total
		po.Items = append(po.Items, line)
	}
	if err := tx.Create(&po).Error; err != nil {
		return nil, err
	}

	due := po.ExpectedDate
	if due == "" {
		due = utils.FormatDate(now.Add(Net30))
	}
	payable := models.AccountPayable{
		SupplierID:      po.SupplierID,
		PurchaseOrderID: &po.ID,
		InvoiceNumber:   po.PONumber,
		Amount:          po.TotalAmount,
		DueDate:         due,
		Status:          models.PayableUnpaid,
	}
	if err := tx.Create(&payable).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (s *purchaseService) Create(ctx context.Context, input dtos.PurchaseOrderInput, userID *uint) (*models.PurchaseOrder, error) {
	var po *models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if po, err = createPurchaseOrder(tx, s.now(), input); err != nil {
			return err
		}
		return recordAudit(tx, userID, "purchase_order.create", "purchase_order", uintPtr(po.ID), input)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("purchase order created", "po_number", po.PONumber, "total", po.TotalAmount)
	return s.Get(ctx, po.ID)
}

// Receive books delivered quantities into stock. An empty input receives
// everything still outstanding.
func (s *purchaseService) Receive(ctx context.Context, id uint, input dtos.ReceiveInput, userID *uint) (*models.PurchaseOrder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.Preload("Items").First(&po, id).Error; err != nil {
			return notFound(err)
		}
		if po.Status != models.POStatusPending {
			return fmt.Errorf("%w: purchase order is %s", ErrConflict, po.Status)
		}

		lines := input.Lines
		if len(lines) == 0 {
			for _, it := range po.Items {
				if it.Outstanding() > 0 {
					lines = append(lines, dtos.ReceiveLineInput{ItemID: it.ID, Quantity: it.Outstanding()})
				}
			}
		}

		items := make(map[uint]*models.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			items[po.Items[i].ID] = &po.Items[i]
		}
		reason := fmt.Sprintf("PO #%d", po.ID)
		for _, l := range lines {
			it, ok := items[l.ItemID]
			if !ok {
				return fmt.Errorf("%w: item %d is not on this order", ErrInvalidInput, l.ItemID)
			}
			if l.Quantity <= 0 || l.Quantity > it.Outstanding()+1e-9 {
				return fmt.Errorf("%w: item %d has %.2f outstanding", ErrInvalidInput, l.ItemID, it.Outstanding())
			}
			it.ReceivedQuantity += l.Quantity
			if err := tx.Model(it).Update("received_quantity", it.ReceivedQuantity).Error; err != nil {
				return err
			}
			if _, err := addStock(tx, it.IngredientID, l.Quantity, reason); err != nil {
				return err
			}
		}

		complete := true
		for _, it := range po.Items {
			if it.Outstanding() > 1e-9 {
				complete = false
			}
		}
		if complete {
			if err := tx.Model(&po).Update("status", models.POStatusReceived).Error; err != nil {
				return err
			}
		}
		return recordAudit(tx, userID, "purchase_order.receive", "purchase_order", uintPtr(po.ID), lines)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel closes a pending order and its open payable.
func (s *purchaseService) Cancel(ctx context.Context, id uint, userID *uint) (*models.PurchaseOrder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, id).Error; err != nil {
			return notFound(err)
		}
		if po.Status != models.POStatusPending {
			return fmt.Errorf("%w: purchase order is %s", ErrConflict, po.Status)
		}
		if err := tx.Model(&po).Update("status", models.POStatusCancelled).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AccountPayable{}).
			Where("purchase_order_id = ? AND status IN ?", po.ID, []string{models.PayableUnpaid, models.PayablePartial}).
			Update("status", models.PayableCancelled).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "purchase_order.cancel", "purchase_order", uintPtr(po.ID), nil)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *purchaseService) List(ctx context.Context, status string) ([]models.PurchaseOrder, error) {
	q := s.db.WithContext(ctx).Preload("Supplier").Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.PurchaseOrder
	err := q.Find(&list).Error
	return list, err
}

func (s *purchaseService) Get(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := s.db.WithContext(ctx).Preload("Supplier").Preload("Items.Ingredient").First(&po, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &po, nil
}

func (s *purchaseService) Payables(ctx context.Context, status string) ([]models.AccountPayable, error) {
	q := s.db.WithContext(ctx).Preload("Supplier").Order("due_date, id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.AccountPayable
	err := q.Find(&list).Error
	return list, err
}

func (s *purchaseService) openPayables(ctx context.Context) ([]models.AccountPayable, error) {
	var list []models.AccountPayable
	err := s.db.WithContext(ctx).Preload("Supplier").
		Where("status IN ?", []string{models.PayableUnpaid, models.PayablePartial}).
		Order("due_date, id").Find(&list).Error
	return list, err
}

func (s *purchaseService) PayablesSummary(ctx context.Context) (dtos.PayablesSummary, error) {
	open, err := s.openPayables(ctx)
	if err != nil {
		return dtos.PayablesSummary{}, err
	}
	today := utils.FormatDate(s.now())
	var sum dtos.PayablesSummary
	for _, p := range open {
		if p.Status == models.PayablePartial {
			sum.Partial++
		} else {
			sum.Unpaid++
		}
		sum.Outstanding += p.Balance()
		if p.DueDate < today {
			sum.Overdue++
			sum.OverdueDue += p.Balance()
		}
	}
	return sum, nil
}

func (s *purchaseService) Outstanding(ctx context.Context) (float64, error) {
	sum, err := s.PayablesSummary(ctx)
	return sum.Outstanding, err
}

func (s *purchaseService) Overdue(ctx context.Context) ([]models.AccountPayable, error) {
	var list []models.AccountPayable
	err := s.db.WithContext(ctx).Preload("Supplier").
		Where("status IN ? AND due_date < ?", []string{models.PayableUnpaid, models.PayablePartial}, utils.FormatDate(s.now())).
		Order("due_date").Find(&list).Error
	return list, err
}

// RecordPayment pays a supplier. With a payable id the invoice balance is
// reduced; every payment is booked as an expense and a debit on the cash account.
func (s *purchaseService) RecordPayment(ctx context.Context, supplierID uint, input dtos.SupplierPaymentInput, userID *uint) (*models.SupplierPayment, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	date := input.Date
	if date == "" {
		date = utils.FormatDate(s.now())
	}
	method := input.PaymentMethod
	if method == "" {
		method = "Cash"
	}

	payment := models.SupplierPayment{
		SupplierID:    supplierID,
		PayableID:     input.PayableID,
		Amount:        input.Amount,
		PaymentDate:   date,
		PaymentMethod: method,
		Reference:     input.Reference,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, supplierID).Error; err != nil {
			return notFound(err)
		}

		if input.PayableID != nil {
			var ap models.AccountPayable
			if err := tx.First(&ap, *input.PayableID).Error; err != nil {
				return notFound(err)
			}
			if ap.SupplierID != supplierID {
				return fmt.Errorf("%w: payable %d belongs to another supplier", ErrInvalidInput, ap.ID)
			}
			if ap.Status == models.PayablePaid || ap.Status == models.PayableCancelled {
				return fmt.Errorf("%w: payable is %s", ErrConflict, ap.Status)
			}
			if input.Amount > ap.Balance()+1e-9 {
				return fmt.Errorf("%w: payment exceeds balance %.2f", ErrInvalidInput, ap.Balance())
			}
			ap.PaidAmount += input.Amount
			ap.Status = models.PayablePartial
			if ap.Balance() <= 1e-9 {
				ap.Status = models.PayablePaid
			}
			if err := tx.Model(&ap).Updates(map[string]any{"paid_amount": ap.PaidAmount, "status": ap.Status}).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		desc := fmt.Sprintf("Payment to supplier #%d", supplierID)
		if err := addExpense(tx, &models.Expense{
			Date:          date,
			Category:      "Supplier Payment",
			Description:   desc,
			Amount:        input.Amount,
			PaymentMethod: method,
			Reference:     input.Reference,
		}); err != nil {
			return err
		}
		if err := postDebit(tx, input.Amount, desc, method); err != nil {
			return err
		}
		return recordAudit(tx, userID, "supplier.payment", "supplier", uintPtr(supplierID), input)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *purchaseService) SupplierPayments(ctx context.Context, supplierID uint) ([]models.SupplierPayment, error) {
	var list []models.SupplierPayment
	err := s.db.WithContext(ctx).Where("supplier_id = ?", supplierID).Order("id DESC").Find(&list).Error
	return list, err
}

func (s *purchaseService) SupplierBalance(ctx context.Context, supplierID uint) (dtos.SupplierBalance, error) {
	var bal dtos.SupplierBalance
	q := s.db.WithContext(ctx).Model(&models.AccountPayable{}).
		Where("supplier_id = ? AND status <> ?", supplierID, models.PayableCancelled)
	if err := q.Select("COALESCE(SUM(amount), 0) AS invoiced, COALESCE(SUM(paid_amount), 0) AS paid").
		Scan(&bal).Error; err != nil {
		return bal, err
	}
	bal.SupplierID = supplierID
	bal.Outstanding = bal.Invoiced - bal.Paid
	return bal, nil
}

func (s *purchaseService) Summary(ctx context.Context, r dtos.DateRange) (dtos.PurchaseSummary, error) {
	from, to, err := monthToDate(r)
	if err != nil {
		return dtos.PurchaseSummary{}, err
	}
	sum := dtos.PurchaseSummary{From: from, To: to}
	err = s.db.WithContext(ctx).Table("purchase_orders").
		Select("purchase_orders.supplier_id, suppliers.name, COUNT(*) AS orders, SUM(purchase_orders.total_amount) AS total").
		Joins("JOIN suppliers ON suppliers.id = purchase_orders.supplier_id").
		Where("purchase_orders.status <> ? AND purchase_orders.order_date BETWEEN ? AND ?", models.POStatusCancelled, from, to).
		Group("purchase_orders.supplier_id, suppliers.name").
		Order("total DESC").
		Scan(&sum.BySupplier).Error
	if err != nil {
		return sum, err
	}
	for _, b := range sum.BySupplier {
		sum.Orders += b.Orders
		sum.Total += b.Total
	}
	return sum, nil
}
