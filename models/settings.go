package models

import "time"

// Settings tables hold a single row with ID 1.
const SettingsRowID = 1

type RestaurantSettings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:150;not null" json:"name"`
	Address           string    `gorm:"size:255" json:"address,omitempty"`
	Phone             string    `gorm:"size:30" json:"phone,omitempty"`
	Currency          string    `gorm:"size:10;not null" json:"currency"`
	TaxEnabled        bool      `gorm:"not null" json:"tax_enabled"`
	ServiceChargeRate float64   `gorm:"not null" json:"service_charge_rate"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type TelegramSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BotToken  string    `gorm:"size:100" json:"-"`
	ChatID    string    `gorm:"size:50" json:"chat_id"`
	Enabled   bool      `gorm:"not null" json:"enabled"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type PrinterSettings struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PrinterName string    `gorm:"size:100;not null" json:"printer_name"`
	AutoPrint   bool      `gorm:"not null" json:"auto_print"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
