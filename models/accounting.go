package models

import "time"

const (
	DefaultAccountID = 1

	AccountCash   = "cash"
	AccountBank   = "bank"
	AccountCredit = "credit"

	EntryDebit  = "debit"
	EntryCredit = "credit"
)

type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Balance   float64   `gorm:"not null" json:"balance"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type LedgerTransaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"not null" json:"date"`
	AccountID     uint      `gorm:"not null;index" json:"account_id"`
	Type          string    `gorm:"size:10;not null" json:"type"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Description   string    `gorm:"size:255" json:"description"`
	OrderID       *uint     `gorm:"index" json:"order_id,omitempty"`
	PaymentMethod string    `gorm:"size:20" json:"payment_method,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Expense struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          string    `gorm:"size:10;not null;index" json:"date"`
	Category      string    `gorm:"size:100;not null;index" json:"category"`
	Description   string    `gorm:"size:255" json:"description"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"size:20" json:"payment_method,omitempty"`
	Reference     string    `gorm:"size:100" json:"reference,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
