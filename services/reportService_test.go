package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/models"
)

func TestReports_TodayAndPeriod(t *testing.T) {
	db := newDB(t)
	svc := NewReportService(db, NewMenuService(db), 4)
	svc.now = fixedClock(2026, time.March, 10, 21, 0)
	ctx := context.Background()

	item := createMenuItem(t, db, "Veg Momos", 80, nil)
	table := "7"
	o := createOrder(t, db, time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC), "2026-03-10", "Cash", 4, soldLine{item, 1, 80})
	require.NoError(t, db.Model(&o).Update("table_number", table).Error)
	createOrder(t, db, time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), "2026-03-10", "UPI", 0, soldLine{item, 2, 160})
	createOrder(t, db, time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC), "2026-03-05", "UPI", 0, soldLine{item, 1, 80})
	createOrder(t, db, time.Date(2026, 2, 1, 20, 0, 0, 0, time.UTC), "2026-02-01", "UPI", 0, soldLine{item, 1, 80})

	day, err := svc.TodaySales(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", day.Date)
	assert.Equal(t, 2, day.Orders)
	assert.InDelta(t, 244.0, day.Sales, 1e-9)
	require.Len(t, day.Recent, 2)
	assert.Equal(t, "", day.Recent[0].Table)
	assert.Equal(t, "7", day.Recent[1].Table)

	period, err := svc.SalesSince(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, period.Days)
	assert.Equal(t, 2, period.TodayOrders)
	assert.Equal(t, 3, period.Orders)
	assert.InDelta(t, 324.0, period.Sales, 1e-9)

	bills, err := svc.TodayBills(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.InDelta(t, 160.0, bills[0].Total, 1e-9)
}

func TestReports_BillAndMenu(t *testing.T) {
	db := newDB(t)
	svc := NewReportService(db, NewMenuService(db), 4)
	ctx := context.Background()

	item := createMenuItem(t, db, "Veg Momos", 80, nil)
	full := createMenuItem(t, db, "Chilli Paneer", 160, floatPtr(280))
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", full.ID).Update("category", "STARTERS").Error)
	o := createOrder(t, db, time.Now(), "2026-03-10", "Cash", 5, soldLine{item, 1, 80}, soldLine{full, 1, 20})

	bill, err := svc.Bill(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.Len(t, bill.Items, 2)
	assert.InDelta(t, 100.0, bill.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, bill.Tax, 1e-9)
	assert.InDelta(t, 105.0, bill.Total, 1e-9)

	missing, err := svc.Bill(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	menu, err := svc.MenuSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, menu.Total)
	assert.Len(t, menu.Categories, 2)
}
