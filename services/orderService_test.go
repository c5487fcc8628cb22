package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/dtos"
	"resto-pos/models"
)

func TestComputeTotals_TaxOnly(t *testing.T) {
	got := ComputeTotals(cartOf(50, 190, 25), true, 0)
	assert.InDelta(t, 265.00, got.Subtotal, 1e-9)
	assert.InDelta(t, 13.25, got.Tax, 1e-9)
	assert.Zero(t, got.ServiceCharge)
	assert.InDelta(t, 278.25, got.Total, 1e-9)
}

func TestComputeTotals_ServiceOnly(t *testing.T) {
	got := ComputeTotals(cartOf(50, 190, 25), false, 10)
	assert.InDelta(t, 265.00, got.Subtotal, 1e-9)
	assert.InDelta(t, 26.50, got.ServiceCharge, 1e-9)
	assert.Zero(t, got.Tax)
	assert.InDelta(t, 291.50, got.Total, 1e-9)
}

func TestComputeTotals_TotalIsSumOfParts(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		prices := make([]float64, 1+r.Intn(8))
		for j := range prices {
			prices[j] = float64(r.Intn(40000)) / 100
		}
		tax := r.Intn(2) == 1
		rate := float64(r.Intn(3) * 5)

		got := ComputeTotals(cartOf(prices...), tax, rate)
		assert.Equal(t, got.Subtotal+got.ServiceCharge+got.Tax, got.Total)
		if !tax {
			assert.Zero(t, got.Tax)
		}
		if rate == 0 {
			assert.Zero(t, got.ServiceCharge)
		}
	}
}

func TestComputeTotals_NegativeRateIsOff(t *testing.T) {
	got := ComputeTotals(cartOf(100), false, -5)
	assert.Zero(t, got.ServiceCharge)
	assert.Equal(t, 100.0, got.Total)
}

func TestSettle_PersistsOrderAndLines(t *testing.T) {
	db := newDB(t)
	setRestaurant(t, db, true, 0)
	svc := NewOrderService(db, NewSettingsService(db), 4)

	lines := []CartLine{
		{MenuItemID: 1, Name: "Clear Soup", Price: 50, Plate: "single"},
		{MenuItemID: 2, Name: "Chicken Lollipop", Price: 190, Plate: "full"},
		{MenuItemID: 1, Name: "Clear Soup", Price: 50, Plate: "single"},
	}
	order, err := svc.Settle(context.Background(), lines, " 7 ")
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(3), items)

	stored, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", *stored.TableNumber)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
	assert.InDelta(t, 290, stored.Subtotal, 1e-9)
	assert.InDelta(t, 14.5, stored.TaxAmount, 1e-9)
	assert.InDelta(t, 304.5, stored.Total, 1e-9)
	assert.Zero(t, stored.Discount)
	for _, it := range stored.Items {
		assert.Equal(t, 1, it.Quantity)
		assert.Equal(t, it.Price, it.Total)
	}
}

func TestSettle_EmptyCartWritesNothing(t *testing.T) {
	db := newDB(t)
	svc := NewOrderService(db, NewSettingsService(db), 4)

	_, err := svc.Settle(context.Background(), nil, "1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestSettle_TakeawayAndBusinessDate(t *testing.T) {
	db := newDB(t)
	svc := NewOrderService(db, NewSettingsService(db), 4).(*orderService)
	svc.now = func() time.Time { return time.Date(2026, 5, 10, 2, 30, 0, 0, time.Local) }

	order, err := svc.Settle(context.Background(), cartOf(80), "")
	require.NoError(t, err)
	assert.Nil(t, order.TableNumber)
	assert.Equal(t, "Takeaway", order.TableLabel())
	assert.Equal(t, "2026-05-09", order.BusinessDate)

	svc.now = func() time.Time { return time.Date(2026, 5, 10, 4, 0, 0, 0, time.Local) }
	order, err = svc.Settle(context.Background(), cartOf(80), "")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-10", order.BusinessDate)

	list, err := svc.List(context.Background(), dtos.OrderFilter{From: "2026-05-10", To: "2026-05-10"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)
}

func TestOrderGet_NotFound(t *testing.T) {
	db := newDB(t)
	_, err := NewOrderService(db, NewSettingsService(db), 4).Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
