package controllers_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resto-pos/controllers"
	"resto-pos/logger"
	"resto-pos/models"
	"resto-pos/printer"
	"resto-pos/routes"
	"resto-pos/services"
	"resto-pos/telegram"
	"resto-pos/testutil"
	"resto-pos/utils"
)

type fakePrinter struct {
	err     error
	printed int
}

func (p *fakePrinter) PrintReceipt(_ context.Context, _ string, _ printer.Receipt) error {
	p.printed++
	return p.err
}

type fakeTester struct{ err error }

func (f *fakeTester) SendTest(context.Context) error { return f.err }

type fakeBot struct {
	running  bool
	startErr error
}

func (b *fakeBot) Start(context.Context) error {
	if b.startErr != nil {
		return b.startErr
	}
	b.running = true
	return nil
}

func (b *fakeBot) Stop()         { b.running = false }
func (b *fakeBot) Running() bool { return b.running }

type testApp struct {
	r       *gin.Engine
	db      *gorm.DB
	printer *fakePrinter
	tester  *fakeTester
	bot     *fakeBot
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("controller-secret", time.Hour)

	db := testutil.NewSeededDB(t)
	log := logger.Discard()
	app := &testApp{db: db, printer: &fakePrinter{}, tester: &fakeTester{}, bot: &fakeBot{}}

	settings := services.NewSettingsService(db)
	menu := services.NewMenuService(db)
	orders := services.NewOrderService(db, settings, 4)
	ledger := services.NewLedgerService(db, log)
	inventory := services.NewInventoryService(db, log)
	// telegram is disabled in the seeded settings, so the client is never dialled
	notifier := telegram.NewNotifier(telegram.NewClient("http://127.0.0.1:1", time.Second), settings, log)
	checkout := services.NewCheckoutService(orders, ledger, inventory, settings, notifier, app.printer, log)
	backups := services.NewBackupService(db, filepath.Join(t.TempDir(), "backups"), "sqlite", "pos.db", log)

	listPrinters := func(context.Context) ([]string, error) { return []string{"POS-58"}, nil }

	app.r = gin.New()
	routes.RegisterRoutes(app.r, routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(db), services.NewAuditService(db)),
		Menu:       controllers.NewMenuController(menu),
		Cart:       controllers.NewCartController(services.NewCartStore(), menu, checkout),
		Orders:     controllers.NewOrderController(orders, checkout),
		Inventory:  controllers.NewInventoryController(inventory),
		Purchases:  controllers.NewPurchaseController(services.NewPurchaseService(db, log)),
		Accounting: controllers.NewAccountingController(ledger, services.NewAccountingService(db)),
		Staff:      controllers.NewStaffController(services.NewStaffService(db)),
		Analytics:  controllers.NewAnalyticsController(services.NewAnalyticsService(db, 4), services.NewAutomationService(db, log)),
		Settings:   controllers.NewSettingsController(settings, app.tester, app.bot, listPrinters),
		Backups:    controllers.NewBackupController(backups, 30),
	})
	return app
}

func token(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(userID, role)
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testApp) menuItem(t *testing.T, name string, single float64, full *float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Category: "CHINESE VEGETARIAN", FoodType: models.FoodTypeVeg,
		PriceSingle: single, PriceFull: full, IsAvailable: true}
	require.NoError(t, a.db.Create(&item).Error)
	return item
}

func TestLogin(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodPost, "/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid username or password", decode[gin.H](t, w)["error"])

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[gin.H](t, w)
	assert.Equal(t, "admin", resp["role"])

	w = app.do(t, http.MethodGet, "/api/me", resp["token"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", decode[gin.H](t, w)["role"])
}

func TestRoleGates(t *testing.T) {
	app := newApp(t)
	cashier := token(t, 2, "cashier")

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, "/api/menu/items", "", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/menu/items", cashier, nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/api/users", cashier, nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/api/inventory/ingredients", cashier, nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPost, "/api/backups", cashier, nil).Code)

	admin := token(t, 1, "admin")
	w := app.do(t, http.MethodPost, "/api/users", admin, gin.H{"username": "ravi", "password": "secret1", "role": "cashier"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(t, http.MethodPost, "/api/users", admin, gin.H{"username": "ravi", "password": "secret1", "role": "cashier"})
	assert.Equal(t, http.StatusConflict, w.Code)

	users := decode[[]gin.H](t, app.do(t, http.MethodGet, "/api/users", admin, nil))
	assert.Len(t, users, 2)
	logs := decode[[]gin.H](t, app.do(t, http.MethodGet, "/api/audit-logs", admin, nil))
	assert.NotEmpty(t, logs)
}

func TestMenuRoutes(t *testing.T) {
	app := newApp(t)
	admin := token(t, 1, "admin")

	w := app.do(t, http.MethodPost, "/api/menu/items", admin, gin.H{
		"name": "Veg Momos", "category": "CHINESE VEGETARIAN", "food_type": "veg", "price_single": 80,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	item := decode[models.MenuItem](t, w)

	w = app.do(t, http.MethodPost, "/api/menu/items", admin, gin.H{
		"name": "Momos", "category": "CHINESE VEGETARIAN", "food_type": "vegan", "price_single": 80,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = app.do(t, http.MethodPost, "/api/menu/items", admin, gin.H{
		"name": "Momos", "category": "DESSERTS", "food_type": "veg", "price_single": 80,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list := decode[[]models.MenuItem](t, app.do(t, http.MethodGet, "/api/menu/items?category=CHINESE%20VEGETARIAN", admin, nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Veg Momos", list[0].Name)

	found := decode[[]models.MenuItem](t, app.do(t, http.MethodGet, "/api/menu/items?q=momo", admin, nil))
	assert.Len(t, found, 1)

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/menu/items/abc", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/menu/items/999", admin, nil).Code)

	w = app.do(t, http.MethodPatch, "/api/menu/items/1/availability", admin, gin.H{"available": false})
	require.Equal(t, http.StatusOK, w.Code)

	cashier := token(t, 2, "cashier")
	w = app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": item.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/menu/categories", admin, gin.H{"name": "thalis"})
	assert.Equal(t, http.StatusConflict, w.Code)

	summary := decode[gin.H](t, app.do(t, http.MethodGet, "/api/menu/summary", cashier, nil))
	assert.EqualValues(t, 1, summary["total"])
}

func TestCartCheckout(t *testing.T) {
	app := newApp(t)
	cashier := token(t, 2, "cashier")
	momos := app.menuItem(t, "Veg Momos", 80, nil)
	full := 280.0
	paneer := app.menuItem(t, "Chilli Paneer", 160, &full)

	w := app.do(t, http.MethodPost, "/api/cart/checkout", cashier, gin.H{"payment_mode": "cash"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cart is empty", decode[gin.H](t, w)["error"])

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": momos.ID}).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": paneer.ID, "plate": "full"}).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": momos.ID}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": momos.ID, "plate": "full"}).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": 999}).Code)

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodDelete, "/api/cart/items/9", cashier, nil).Code)
	require.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, "/api/cart/items/2", cashier, nil).Code)

	cart := decode[gin.H](t, app.do(t, http.MethodGet, "/api/cart", cashier, nil))
	assert.InDelta(t, 360.0, cart["subtotal"], 1e-9)

	// another terminal user sees an empty cart
	other := decode[gin.H](t, app.do(t, http.MethodGet, "/api/cart", token(t, 3, "cashier"), nil))
	assert.InDelta(t, 0.0, other["subtotal"], 1e-9)

	w = app.do(t, http.MethodPost, "/api/cart/preview", cashier, gin.H{"table": "4"})
	require.Equal(t, http.StatusOK, w.Code)
	preview := decode[services.Preview](t, w)
	assert.InDelta(t, 360.0, preview.Totals.Total, 1e-9)
	assert.Contains(t, preview.Receipt, "HUNGER FAMILY RESTAURANT")

	w = app.do(t, http.MethodPost, "/api/cart/checkout", cashier, gin.H{"payment_mode": "bitcoin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// a rejected checkout leaves the cart as it was
	cart = decode[gin.H](t, app.do(t, http.MethodGet, "/api/cart", cashier, nil))
	assert.Len(t, cart["lines"], 2)
	assert.InDelta(t, 360.0, cart["subtotal"], 1e-9)

	w = app.do(t, http.MethodPost, "/api/cart/checkout", cashier, gin.H{"payment_mode": "upi", "table": "4"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	result := decode[services.CheckoutResult](t, w)
	require.NotNil(t, result.Order)
	assert.InDelta(t, 360.0, result.Order.Total, 1e-9)
	assert.Equal(t, "UPI", result.Order.PaymentMethod)
	assert.Equal(t, 1, app.printer.printed)

	cart = decode[gin.H](t, app.do(t, http.MethodGet, "/api/cart", cashier, nil))
	assert.Empty(t, cart["lines"])

	orders := decode[[]models.Order](t, app.do(t, http.MethodGet, "/api/orders", cashier, nil))
	require.Len(t, orders, 1)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/orders?from=03-10-2026", cashier, nil).Code)

	order := decode[models.Order](t, app.do(t, http.MethodGet, "/api/orders/1", cashier, nil))
	assert.Len(t, order.Items, 2)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/orders/42", cashier, nil).Code)

	require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/orders/1/reprint", cashier, nil).Code)
	assert.Equal(t, 2, app.printer.printed)

	app.printer.err = errors.New("printer offline")
	assert.Equal(t, http.StatusBadGateway, app.do(t, http.MethodPost, "/api/orders/1/reprint", cashier, nil).Code)
}

func TestCheckout_PrinterFailureIsAWarning(t *testing.T) {
	app := newApp(t)
	cashier := token(t, 2, "cashier")
	momos := app.menuItem(t, "Veg Momos", 80, nil)
	app.printer.err = errors.New("printer offline")

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/cart/items", cashier, gin.H{"menu_item_id": momos.ID}).Code)
	w := app.do(t, http.MethodPost, "/api/cart/checkout", cashier, gin.H{"payment_mode": "Cash"})
	require.Equal(t, http.StatusCreated, w.Code)

	result := decode[services.CheckoutResult](t, w)
	assert.Contains(t, result.Warnings, "print_receipt: printer offline")

	var count int64
	app.db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)

	accounts := decode[[]models.Account](t, app.do(t, http.MethodGet, "/api/accounting/accounts", token(t, 1, "admin"), nil))
	require.Len(t, accounts, 1)
	assert.InDelta(t, 80.0, accounts[0].Balance, 1e-9)
}

func TestInventoryAndPurchasing(t *testing.T) {
	app := newApp(t)
	manager := token(t, 1, "manager")

	w := app.do(t, http.MethodPost, "/api/inventory/ingredients", manager, gin.H{
		"name": "Paneer", "unit": "kg", "current_stock": 1, "min_stock": 5, "cost_per_unit": 300,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	paneer := decode[models.Ingredient](t, w)

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/inventory/ingredients", manager, gin.H{
		"name": "Salt", "unit": "spoons",
	}).Code)

	low := decode[[]models.Ingredient](t, app.do(t, http.MethodGet, "/api/inventory/ingredients?low=true", manager, nil))
	assert.Len(t, low, 1)

	w = app.do(t, http.MethodPost, "/api/inventory/ingredients/1/remove-stock", manager, gin.H{"quantity": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/suppliers", manager, gin.H{"name": "Fresh Farms"})
	require.Equal(t, http.StatusCreated, w.Code)
	supplier := decode[models.Supplier](t, w)

	w = app.do(t, http.MethodPost, "/api/purchase-orders", manager, gin.H{
		"supplier_id": supplier.ID,
		"items":       []gin.H{{"ingredient_id": paneer.ID, "quantity": 4, "unit_price": 250}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	po := decode[models.PurchaseOrder](t, w)
	assert.Contains(t, po.PONumber, "PO-")
	assert.InDelta(t, 1000.0, po.TotalAmount, 1e-9)

	w = app.do(t, http.MethodPost, "/api/purchase-orders/1/receive", manager, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.POStatusReceived, decode[models.PurchaseOrder](t, w).Status)
	assert.Equal(t, http.StatusConflict, app.do(t, http.MethodPost, "/api/purchase-orders/1/cancel", manager, nil).Code)

	ing := decode[models.Ingredient](t, app.do(t, http.MethodGet, "/api/inventory/ingredients/1", manager, nil))
	assert.InDelta(t, 5.0, ing.CurrentStock, 1e-9)

	history := decode[[]models.StockTransaction](t, app.do(t, http.MethodGet, "/api/inventory/transactions?ingredient_id=1", manager, nil))
	assert.Len(t, history, 2)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/inventory/transactions?ingredient_id=x", manager, nil).Code)

	summary := decode[gin.H](t, app.do(t, http.MethodGet, "/api/payables/summary", manager, nil))
	assert.InDelta(t, 1000.0, summary["outstanding"], 1e-9)

	w = app.do(t, http.MethodPost, "/api/suppliers/1/payments", manager, gin.H{"amount": 400, "payable_id": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	balance := decode[gin.H](t, app.do(t, http.MethodGet, "/api/suppliers/1/balance", manager, nil))
	assert.InDelta(t, 600.0, balance["outstanding"], 1e-9)
}

func TestStaffRoutes(t *testing.T) {
	app := newApp(t)
	manager := token(t, 1, "manager")

	w := app.do(t, http.MethodPost, "/api/staff", manager, gin.H{"name": "Ravi", "role": "Chef", "basic_salary": 30000})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/staff", manager, gin.H{"name": "Anu", "role": "Juggler"}).Code)

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/staff/1/check-in", manager, nil).Code)
	assert.Equal(t, http.StatusConflict, app.do(t, http.MethodPost, "/api/staff/1/check-in", manager, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/api/staff/9/check-in", manager, nil).Code)

	w = app.do(t, http.MethodPost, "/api/staff/1/attendance", manager, gin.H{"date": "2026-03-02", "status": "absent"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/staff/payroll", manager, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/staff/payroll?month=3&year=2026", manager, nil).Code)

	w = app.do(t, http.MethodPost, "/api/staff/1/leave", manager, gin.H{"start_date": "2026-03-15", "end_date": "2026-03-16", "leave_type": "sick"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(t, http.MethodPost, "/api/staff/leave/1/decision", manager, gin.H{"approve": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.LeaveApproved, decode[models.LeaveRequest](t, w).Status)
}

func TestSettingsRoutes(t *testing.T) {
	app := newApp(t)
	admin := token(t, 1, "admin")
	cashier := token(t, 2, "cashier")

	rs := decode[models.RestaurantSettings](t, app.do(t, http.MethodGet, "/api/settings/restaurant", cashier, nil))
	assert.Equal(t, "HUNGER Family Restaurant", rs.Name)

	body := gin.H{"name": "Hunger", "currency": "₹", "tax_enabled": true, "service_charge_rate": 10}
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPut, "/api/settings/restaurant", cashier, body).Code)
	w := app.do(t, http.MethodPut, "/api/settings/restaurant", admin, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.RestaurantSettings](t, w).TaxEnabled)

	app.tester.err = telegram.ErrDisabled
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/settings/telegram/test", admin, nil).Code)
	app.tester.err = errors.New("telegram returned status 401")
	assert.Equal(t, http.StatusBadGateway, app.do(t, http.MethodPost, "/api/settings/telegram/test", admin, nil).Code)
	app.tester.err = nil
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/settings/telegram/test", admin, nil).Code)

	app.bot.startErr = telegram.ErrDisabled
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/settings/telegram/bot/start", admin, nil).Code)
	app.bot.startErr = nil
	require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/settings/telegram/bot/start", admin, nil).Code)
	tg := decode[gin.H](t, app.do(t, http.MethodGet, "/api/settings/telegram", admin, nil))
	assert.Equal(t, true, tg["bot_running"])
	require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/settings/telegram/bot/stop", admin, nil).Code)
	assert.False(t, app.bot.running)

	printers := decode[[]string](t, app.do(t, http.MethodGet, "/api/settings/printers", cashier, nil))
	assert.Equal(t, []string{"POS-58"}, printers)

	w = app.do(t, http.MethodPut, "/api/settings/printer", admin, gin.H{"printer_name": "Kitchen", "auto_print": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchen", decode[models.PrinterSettings](t, w).PrinterName)
}

func TestBackupAndExportRoutes(t *testing.T) {
	app := newApp(t)
	admin := token(t, 1, "admin")

	w := app.do(t, http.MethodPost, "/api/backups", admin, gin.H{"description": "before stocktake"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	info := decode[services.BackupInfo](t, w)

	list := decode[gin.H](t, app.do(t, http.MethodGet, "/api/backups", admin, nil))
	assert.Len(t, list["backups"], 1)

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/backups/notes.db/restore", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, "/api/backups/backup_20200101_000000.db", admin, nil).Code)
	require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/backups/"+info.Filename+"/restore", admin, nil).Code)

	w = app.do(t, http.MethodGet, "/api/export/orders?from=2026-03-01&to=2026-03-31", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders_export_")
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/export/menu", admin, nil).Code)
}

func TestDashboardRoutes(t *testing.T) {
	app := newApp(t)
	cashier := token(t, 2, "cashier")
	manager := token(t, 1, "manager")

	d := decode[gin.H](t, app.do(t, http.MethodGet, "/api/dashboard", cashier, nil))
	assert.Contains(t, d, "today")
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/dashboard/popular?period=fortnight", cashier, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/dashboard/hourly", cashier, nil).Code)

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/api/automation/alerts", cashier, nil).Code)
	alerts := decode[[]gin.H](t, app.do(t, http.MethodGet, "/api/automation/alerts", manager, nil))
	// the seeded cash account starts empty
	assert.NotEmpty(t, alerts)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/api/inventory/ingredients/9/auto-order", manager, nil).Code)
}
