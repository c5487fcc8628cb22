package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resto-pos/logger"
	"resto-pos/models"
)

// LedgerResult reports a posting without raising; callers check OK.
type LedgerResult struct {
	OK            bool   `json:"ok"`
	TransactionID uint   `json:"transaction_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type LedgerService interface {
	RecordOrderTransaction(ctx context.Context, orderID uint, amount float64, paymentMode string) LedgerResult
	Accounts(ctx context.Context) ([]models.Account, error)
	Account(ctx context.Context, id uint) (*models.Account, error)
	RecentTransactions(ctx context.Context, limit int) ([]models.LedgerTransaction, error)
}

type ledgerService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLedgerService(db *gorm.DB, log *logger.Logger) LedgerService {
	return &ledgerService{db: db, log: log.WithComponent("ledger")}
}

// RecordOrderTransaction credits the default account for every payment mode.
func (s *ledgerService) RecordOrderTransaction(ctx context.Context, orderID uint, amount float64, paymentMode string) LedgerResult {
	entry := models.LedgerTransaction{
		Date:          time.Now(),
		AccountID:     models.DefaultAccountID,
		Type:          models.EntryCredit,
		Amount:        amount,
		Description:   fmt.Sprintf("Order #%d", orderID),
		OrderID:       &orderID,
		PaymentMethod: paymentMode,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return post(tx, &entry)
	})
	if err != nil {
		s.log.Error("ledger posting failed", "order_id", orderID, "error", err)
		return LedgerResult{OK: false, Reason: err.Error()}
	}
	return LedgerResult{OK: true, TransactionID: entry.ID}
}

// post appends entry and moves the account balance inside tx.
func post(tx *gorm.DB, entry *models.LedgerTransaction) error {
	delta := entry.Amount
	if entry.Type == models.EntryDebit {
		delta = -delta
	}
	res := tx.Model(&models.Account{}).Where("id = ?", entry.AccountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", ErrNotFound, entry.AccountID)
	}
	return tx.Create(entry).Error
}

// postDebit pays money out of the default account inside tx.
func postDebit(tx *gorm.DB, amount float64, description, method string) error {
	return post(tx, &models.LedgerTransaction{
		Date:          time.Now(),
		AccountID:     models.DefaultAccountID,
		Type:          models.EntryDebit,
		Amount:        amount,
		Description:   description,
		PaymentMethod: method,
	})
}

func (s *ledgerService) Accounts(ctx context.Context) ([]models.Account, error) {
	var list []models.Account
	err := s.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (s *ledgerService) Account(ctx context.Context, id uint) (*models.Account, error) {
	var acc models.Account
	if err := s.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (s *ledgerService) RecentTransactions(ctx context.Context, limit int) ([]models.LedgerTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []models.LedgerTransaction
	err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&list).Error
	return list, err
}
