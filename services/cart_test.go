package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/models"
)

func menuItem(id uint, name string, single float64, full *float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, PriceSingle: single, PriceFull: full, IsAvailable: true}
}

func TestCart_AddPicksPlatePrice(t *testing.T) {
	var c Cart
	soup := menuItem(1, "Clear Soup", 50, floatPtr(90))

	line, err := c.Add(soup, "")
	require.NoError(t, err)
	assert.Equal(t, models.PlateSingle, line.Plate)
	assert.Equal(t, 50.0, line.Price)

	line, err = c.Add(soup, "FULL")
	require.NoError(t, err)
	assert.Equal(t, models.PlateFull, line.Plate)
	assert.Equal(t, 90.0, line.Price)

	_, err = c.Add(soup, "half")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, c.Lines(), 2)
	assert.Equal(t, 140.0, c.Subtotal())
}

func TestCart_RejectsUnavailable(t *testing.T) {
	var c Cart

	_, err := c.Add(menuItem(1, "Idli", 0, nil), models.PlateSingle)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	off := menuItem(2, "Veg Thali", 150, nil)
	off.IsAvailable = false
	_, err = c.Add(off, models.PlateSingle)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	_, err = c.Add(menuItem(3, "Pani Puri", 25, nil), models.PlateFull)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	assert.Empty(t, c.Lines())
}

func TestCart_DuplicatesStaySeparate(t *testing.T) {
	var c Cart
	item := menuItem(1, "Momos", 70, nil)
	for i := 0; i < 3; i++ {
		_, err := c.Add(item, models.PlateSingle)
		require.NoError(t, err)
	}
	assert.Len(t, c.Lines(), 3)

	require.NoError(t, c.Remove(1))
	assert.Len(t, c.Lines(), 2)
	assert.ErrorIs(t, c.Remove(5), ErrInvalidInput)

	lines := c.Lines()
	lines[0].Price = 1
	assert.Equal(t, 70.0, c.Lines()[0].Price)

	c.Clear()
	assert.Empty(t, c.Lines())
}

func TestCartStore_PerUser(t *testing.T) {
	store := NewCartStore()
	item := menuItem(1, "Momos", 70, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(user uint) {
			defer wg.Done()
			_, _ = store.Add(user, item, models.PlateSingle)
		}(uint(i%2 + 1))
	}
	wg.Wait()

	assert.Len(t, store.Lines(1), 10)
	assert.Len(t, store.Lines(2), 10)

	store.Clear(1)
	assert.Empty(t, store.Lines(1))
	assert.Len(t, store.Lines(2), 10)
}

func TestCartStore_TakeThenRestore(t *testing.T) {
	store := NewCartStore()
	soup := menuItem(1, "Clear Soup", 50, nil)
	momos := menuItem(2, "Momos", 70, nil)
	_, err := store.Add(1, soup, models.PlateSingle)
	require.NoError(t, err)

	taken := store.Take(1)
	require.Len(t, taken, 1)
	assert.Empty(t, store.Lines(1))

	_, err = store.Add(1, momos, models.PlateSingle)
	require.NoError(t, err)
	assert.Len(t, store.Lines(1), 1)

	store.Restore(1, taken)
	lines := store.Lines(1)
	require.Len(t, lines, 2)
	assert.Equal(t, "Clear Soup", lines[0].Name)
	assert.Equal(t, "Momos", lines[1].Name)

	store.Restore(1, nil)
	assert.Len(t, store.Lines(1), 2)
}
