package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/dtos"
	"resto-pos/models"
)

func TestAnalytics_TodayAndPopular(t *testing.T) {
	db := newDB(t)
	svc := NewAnalyticsService(db, 4).(*analyticsService)
	// 02:00 on the 11th still trades as the 10th
	svc.now = fixedClock(2026, time.March, 11, 2, 0)
	ctx := context.Background()

	noodles := createMenuItem(t, db, "Hakka Noodles", 120, nil)
	rice := createMenuItem(t, db, "Fried Rice", 110, nil)

	createOrder(t, db, time.Date(2026, 3, 10, 13, 15, 0, 0, time.UTC), "2026-03-10", "Cash", 0,
		soldLine{noodles, 2, 240}, soldLine{rice, 1, 110})
	createOrder(t, db, time.Date(2026, 3, 10, 13, 45, 0, 0, time.UTC), "2026-03-10", "UPI", 0,
		soldLine{noodles, 1, 120})
	createOrder(t, db, time.Date(2026, 3, 10, 20, 5, 0, 0, time.UTC), "2026-03-10", "Card", 0,
		soldLine{rice, 1, 110})
	createOrder(t, db, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), "2026-03-01", "Cash", 0,
		soldLine{rice, 5, 550})

	today, err := svc.TodaySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", today.Date)
	assert.Equal(t, 3, today.Orders)
	assert.InDelta(t, 580.0, today.Revenue, 1e-9)
	assert.InDelta(t, 580.0/3, today.AverageOrder, 1e-9)
	assert.InDelta(t, 120.0, today.ByPaymentMethod["UPI"], 1e-9)

	popular, err := svc.PopularItems(ctx, PeriodToday, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "Hakka Noodles", popular[0].Name)
	assert.Equal(t, 3, popular[0].Quantity)

	month, err := svc.PopularItems(ctx, PeriodMonth, 1)
	require.NoError(t, err)
	require.Len(t, month, 1)
	assert.Equal(t, "Fried Rice", month[0].Name)
	assert.Equal(t, 7, month[0].Quantity)

	_, err = svc.PopularItems(ctx, "fortnight", 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	hourly, err := svc.HourlySales(ctx, "")
	require.NoError(t, err)
	require.Len(t, hourly, 2)
	assert.Equal(t, 13, hourly[0].Hour)
	assert.Equal(t, 2, hourly[0].Orders)
	assert.Equal(t, 20, hourly[1].Hour)

	cats, err := svc.CategoryPerformance(ctx, dtos.DateRange{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "CHINESE VEGETARIAN", cats[0].Category)
	assert.Equal(t, 10, cats[0].Quantity)
}

func TestAnalytics_Dashboard(t *testing.T) {
	db := newDB(t)
	svc := NewAnalyticsService(db, 4).(*analyticsService)
	svc.now = fixedClock(2026, time.March, 10, 12, 0)

	createIngredient(t, db, "Paneer", 1, 2, 300)
	createIngredient(t, db, "Rice", 20, 2, 60)
	supplier := models.Supplier{Name: "Fresh Farms"}
	require.NoError(t, db.Create(&supplier).Error)
	require.NoError(t, db.Create(&models.PurchaseOrder{
		PONumber: "PO-20260310-001", SupplierID: supplier.ID, OrderDate: "2026-03-10", Status: models.POStatusPending,
	}).Error)
	require.NoError(t, db.Model(&models.Account{}).Where("id = ?", models.DefaultAccountID).Update("balance", 750).Error)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.LowStock)
	assert.Equal(t, 1, d.PendingPOs)
	assert.InDelta(t, 750.0, d.CashBalance, 1e-9)
	assert.Zero(t, d.Today.Orders)
	assert.Empty(t, d.TopItems)
}
