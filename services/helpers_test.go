package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resto-pos/models"
	"resto-pos/testutil"
)

func newDB(t *testing.T) *gorm.DB {
	return testutil.NewSeededDB(t)
}

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func createMenuItem(t *testing.T, db *gorm.DB, name string, single float64, full *float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Category:    "CHINESE VEGETARIAN",
		FoodType:    models.FoodTypeVeg,
		PriceSingle: single,
		PriceFull:   full,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func createIngredient(t *testing.T, db *gorm.DB, name string, stock, min, cost float64) models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, Unit: "kg", CurrentStock: stock, MinStock: min, CostPerUnit: cost}
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

func addRecipeLine(t *testing.T, db *gorm.DB, menuItemID, ingredientID uint, qty float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.MenuIngredient{
		MenuItemID: menuItemID, IngredientID: ingredientID, QuantityRequired: qty,
	}).Error)
}

func setRestaurant(t *testing.T, db *gorm.DB, taxEnabled bool, serviceRate float64) {
	t.Helper()
	require.NoError(t, db.Model(&models.RestaurantSettings{}).Where("id = ?", models.SettingsRowID).
		Updates(map[string]any{"tax_enabled": taxEnabled, "service_charge_rate": serviceRate}).Error)
}

func cartOf(prices ...float64) []CartLine {
	lines := make([]CartLine, len(prices))
	for i, p := range prices {
		lines[i] = CartLine{MenuItemID: uint(i + 1), Name: "Item", Price: p, Plate: models.PlateSingle}
	}
	return lines
}

type soldLine struct {
	item  models.MenuItem
	qty   int
	total float64
}

// createOrder inserts a completed order directly. Subtotal is the sum of line totals.
func createOrder(t *testing.T, db *gorm.DB, at time.Time, businessDate, method string, tax float64, lines ...soldLine) models.Order {
	t.Helper()
	o := models.Order{
		OrderDate:     at,
		BusinessDate:  businessDate,
		PaymentMethod: method,
		Status:        models.OrderStatusCompleted,
		TaxAmount:     tax,
	}
	for _, l := range lines {
		o.Subtotal += l.total
		o.Items = append(o.Items, models.OrderItem{
			MenuItemID: l.item.ID,
			ItemName:   l.item.Name,
			PlateType:  models.PlateSingle,
			Quantity:   l.qty,
			Price:      l.total / float64(l.qty),
			Total:      l.total,
		})
	}
	o.Total = o.Subtotal + tax
	require.NoError(t, db.Create(&o).Error)
	return o
}

func cashBalance(t *testing.T, db *gorm.DB) float64 {
	t.Helper()
	var acc models.Account
	require.NoError(t, db.First(&acc, models.DefaultAccountID).Error)
	return acc.Balance
}

func fixedClock(year int, month time.Month, day, hour, min int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, hour, min, 0, 0, time.UTC) }
}
