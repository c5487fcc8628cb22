package services

import (
	"context"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/models"
	"resto-pos/telegram"
)

type SettingsService interface {
	Restaurant(ctx context.Context) (*models.RestaurantSettings, error)
	UpdateRestaurant(ctx context.Context, input dtos.RestaurantSettingsInput, userID *uint) (*models.RestaurantSettings, error)
	Telegram(ctx context.Context) (*models.TelegramSettings, error)
	UpdateTelegram(ctx context.Context, input dtos.TelegramSettingsInput, userID *uint) (*models.TelegramSettings, error)
	TelegramCredentials(ctx context.Context) (telegram.Credentials, error)
	Printer(ctx context.Context) (*models.PrinterSettings, error)
	UpdatePrinter(ctx context.Context, input dtos.PrinterSettingsInput, userID *uint) (*models.PrinterSettings, error)
}

type settingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) SettingsService {
	return &settingsService{db: db}
}

func (s *settingsService) Restaurant(ctx context.Context) (*models.RestaurantSettings, error) {
	var rs models.RestaurantSettings
	if err := s.db.WithContext(ctx).First(&rs, models.SettingsRowID).Error; err != nil {
		return nil, notFound(err)
	}
	return &rs, nil
}

func (s *settingsService) UpdateRestaurant(ctx context.Context, input dtos.RestaurantSettingsInput, userID *uint) (*models.RestaurantSettings, error) {
	rs := models.RestaurantSettings{
		ID:                models.SettingsRowID,
		Name:              input.Name,
		Address:           input.Address,
		Phone:             input.Phone,
		Currency:          input.Currency,
		TaxEnabled:        *input.TaxEnabled,
		ServiceChargeRate: *input.ServiceChargeRate,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rs).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "settings.update", "restaurant_settings", uintPtr(rs.ID), input)
	})
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (s *settingsService) Telegram(ctx context.Context) (*models.TelegramSettings, error) {
	var ts models.TelegramSettings
	if err := s.db.WithContext(ctx).First(&ts, models.SettingsRowID).Error; err != nil {
		return nil, notFound(err)
	}
	return &ts, nil
}

// UpdateTelegram keeps the stored token when the input leaves it blank.
func (s *settingsService) UpdateTelegram(ctx context.Context, input dtos.TelegramSettingsInput, userID *uint) (*models.TelegramSettings, error) {
	var ts models.TelegramSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.TelegramSettings{ID: models.SettingsRowID}).FirstOrInit(&ts).Error; err != nil {
			return err
		}
		if input.BotToken != "" {
			ts.BotToken = input.BotToken
		}
		ts.ChatID = input.ChatID
		ts.Enabled = *input.Enabled
		if err := tx.Save(&ts).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "settings.update", "telegram_settings", uintPtr(ts.ID),
			map[string]any{"chat_id": ts.ChatID, "enabled": ts.Enabled, "token_changed": input.BotToken != ""})
	})
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// TelegramCredentials reports disabled credentials when no row exists.
func (s *settingsService) TelegramCredentials(ctx context.Context) (telegram.Credentials, error) {
	ts, err := s.Telegram(ctx)
	if err == ErrNotFound {
		return telegram.Credentials{}, nil
	}
	if err != nil {
		return telegram.Credentials{}, err
	}
	return telegram.Credentials{BotToken: ts.BotToken, ChatID: ts.ChatID, Enabled: ts.Enabled}, nil
}

func (s *settingsService) Printer(ctx context.Context) (*models.PrinterSettings, error) {
	var ps models.PrinterSettings
	if err := s.db.WithContext(ctx).First(&ps, models.SettingsRowID).Error; err != nil {
		return nil, notFound(err)
	}
	return &ps, nil
}

func (s *settingsService) UpdatePrinter(ctx context.Context, input dtos.PrinterSettingsInput, userID *uint) (*models.PrinterSettings, error) {
	ps := models.PrinterSettings{ID: models.SettingsRowID, PrinterName: input.PrinterName, AutoPrint: *input.AutoPrint}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&ps).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "settings.update", "printer_settings", uintPtr(ps.ID), input)
	})
	if err != nil {
		return nil, err
	}
	return &ps, nil
}
