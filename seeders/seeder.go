package seeders

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resto-pos/models"
)

// Options carries the environment values used for first-start rows.
type Options struct {
	AdminUsername    string
	AdminPassword    string
	PrinterName      string
	TelegramBotToken string
	TelegramChatID   string
	TelegramEnabled  bool
	SkipMenu         bool
}

var DefaultCategories = []string{
	"CHINESE VEGETARIAN",
	"CHINESE NON-VEGETARIAN",
	"INDIAN VEGETARIAN",
	"INDIAN NON-VEGETARIAN",
	"THALIS",
}

func ptrFloat(f float64) *float64 {
	return &f
}

var defaultMenu = []models.MenuItem{
	{Name: "Clear Soup", PriceSingle: 50, PriceFull: ptrFloat(90), Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Manchow Soup", PriceSingle: 50, PriceFull: ptrFloat(90), Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Veg Crispy", PriceSingle: 90, PriceFull: ptrFloat(150), Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Paneer Manchurian", PriceSingle: 120, PriceFull: ptrFloat(250), Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Veg Fried Rice", PriceSingle: 80, PriceFull: ptrFloat(140), Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Chicken Clear Soup", PriceSingle: 70, PriceFull: ptrFloat(140), Category: "CHINESE NON-VEGETARIAN", FoodType: models.FoodTypeNonVeg},
	{Name: "Chicken Lollipop", PriceSingle: 110, PriceFull: ptrFloat(190), Category: "CHINESE NON-VEGETARIAN", FoodType: models.FoodTypeNonVeg},
	{Name: "Egg Chilli", PriceSingle: 70, PriceFull: ptrFloat(150), Category: "CHINESE NON-VEGETARIAN", FoodType: models.FoodTypeNonVeg},
	{Name: "Aloo Tikki (North Style)", PriceSingle: 30, Category: "INDIAN VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Pani Puri", PriceSingle: 25, Category: "INDIAN VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Idli", PriceSingle: 0, Category: "INDIAN VEGETARIAN", FoodType: models.FoodTypeVeg},
	{Name: "Butter Chicken", PriceSingle: 180, PriceFull: ptrFloat(320), Category: "INDIAN NON-VEGETARIAN", FoodType: models.FoodTypeNonVeg},
	{Name: "Veg Thali", PriceSingle: 150, Category: "THALIS", FoodType: models.FoodTypeVeg},
}

// Seed inserts the rows the terminal needs on first start. Existing rows are left alone.
func Seed(db *gorm.DB, opts Options) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range DefaultCategories {
			if err := tx.Where(models.Category{Name: name}).FirstOrCreate(&models.Category{Name: name}).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		}

		account := models.Account{ID: models.DefaultAccountID, Name: "Cash Account", Type: models.AccountCash}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error; err != nil {
			return fmt.Errorf("seed account: %w", err)
		}

		restaurant := models.RestaurantSettings{ID: models.SettingsRowID, Name: "HUNGER Family Restaurant", Currency: "₹"}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&restaurant).Error; err != nil {
			return fmt.Errorf("seed restaurant settings: %w", err)
		}

		tg := models.TelegramSettings{
			ID:       models.SettingsRowID,
			BotToken: opts.TelegramBotToken,
			ChatID:   opts.TelegramChatID,
			Enabled:  opts.TelegramEnabled,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tg).Error; err != nil {
			return fmt.Errorf("seed telegram settings: %w", err)
		}

		printerName := opts.PrinterName
		if printerName == "" {
			printerName = "POS-58"
		}
		ps := models.PrinterSettings{ID: models.SettingsRowID, PrinterName: printerName, AutoPrint: true}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ps).Error; err != nil {
			return fmt.Errorf("seed printer settings: %w", err)
		}

		if opts.AdminUsername != "" {
			var count int64
			if err := tx.Model(&models.User{}).Where("username = ?", opts.AdminUsername).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("hash admin password: %w", err)
				}
				admin := models.User{Username: opts.AdminUsername, Password: string(hash), Role: models.RoleAdmin, Active: true}
				if err := tx.Create(&admin).Error; err != nil {
					return fmt.Errorf("seed admin: %w", err)
				}
			}
		}

		if opts.SkipMenu {
			return nil
		}
		var menuCount int64
		if err := tx.Model(&models.MenuItem{}).Count(&menuCount).Error; err != nil {
			return err
		}
		if menuCount > 0 {
			return nil
		}
		for _, item := range defaultMenu {
			item.IsAvailable = item.PriceSingle > 0
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("seed menu item %s: %w", item.Name, err)
			}
		}
		return nil
	})
}
