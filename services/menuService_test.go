package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/dtos"
	"resto-pos/models"
)

func TestMenu_CreateAndSearch(t *testing.T) {
	db := newDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()
	admin := uintPtr(1)

	item, err := svc.Create(ctx, dtos.MenuItemInput{
		Name: "Paneer Manchurian", Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg,
		PriceSingle: 120, PriceFull: floatPtr(250),
	}, admin)
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)

	idli, err := svc.Create(ctx, dtos.MenuItemInput{
		Name: "Idli", Category: "INDIAN VEGETARIAN", FoodType: models.FoodTypeVeg,
	}, admin)
	require.NoError(t, err)
	assert.False(t, idli.IsAvailable, "zero-priced items start unavailable")

	_, err = svc.Create(ctx, dtos.MenuItemInput{Name: "Sushi", Category: "JAPANESE", FoodType: models.FoodTypeVeg, PriceSingle: 10}, admin)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(ctx, dtos.MenuItemInput{Name: "X", Category: "THALIS", FoodType: "vegan", PriceSingle: 10}, admin)
	assert.ErrorIs(t, err, ErrInvalidInput)

	found, err := svc.Search(ctx, "paneer MAN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, item.ID, found[0].ID)

	found, err = svc.Search(ctx, "paneer rice")
	require.NoError(t, err)
	assert.Empty(t, found)

	list, err := svc.ListByCategory(ctx, "INDIAN VEGETARIAN")
	require.NoError(t, err)
	require.Len(t, list, 1)

	var audits int64
	db.Model(&models.AuditLog{}).Where("action = ?", "menu.create").Count(&audits)
	assert.Equal(t, int64(2), audits)
}

func TestMenu_UpdateAndAvailability(t *testing.T) {
	db := newDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()
	item := createMenuItem(t, db, "Veg Crispy", 90, nil)

	updated, err := svc.Update(ctx, item.ID, dtos.MenuItemInput{
		Name: "Veg Crispy", Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg,
		PriceSingle: 95, PriceFull: floatPtr(160),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 95.0, updated.PriceSingle)
	assert.True(t, updated.HasFull())

	off, err := svc.SetAvailability(ctx, item.ID, false, nil)
	require.NoError(t, err)
	assert.False(t, off.IsAvailable)

	got, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	_, err = svc.SetAvailability(ctx, 999, true, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMenu_CategoriesAndSummary(t *testing.T) {
	db := newDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, " desserts ")
	require.NoError(t, err)
	assert.Equal(t, "DESSERTS", cat.Name)
	_, err = svc.CreateCategory(ctx, "Desserts")
	assert.ErrorIs(t, err, ErrConflict)

	createMenuItem(t, db, "Veg Crispy", 90, nil)
	createMenuItem(t, db, "Clear Soup", 50, nil)

	counts, total, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, counts, 1)
	assert.Equal(t, "CHINESE VEGETARIAN", counts[0].Category)
}
