package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/controllers"
	"resto-pos/middlewares"
)

type Controllers struct {
	Auth       *controllers.AuthController
	Menu       *controllers.MenuController
	Cart       *controllers.CartController
	Orders     *controllers.OrderController
	Inventory  *controllers.InventoryController
	Purchases  *controllers.PurchaseController
	Accounting *controllers.AccountingController
	Staff      *controllers.StaffController
	Analytics  *controllers.AnalyticsController
	Settings   *controllers.SettingsController
	Backups    *controllers.BackupController
}

func RegisterRoutes(r *gin.Engine, h Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", h.Auth.Login)

	managers := middlewares.RoleMiddleware("admin", "manager")
	adminOnly := middlewares.RoleMiddleware("admin")

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/me", h.Auth.Me)

	// Users & audit (admin only)
	users := api.Group("/users", adminOnly)
	{
		users.GET("", h.Auth.GetUsers)
		users.POST("", h.Auth.CreateUser)
	}
	api.GET("/audit-logs", adminOnly, h.Auth.GetAuditLogs)

	// Menu
	menu := api.Group("/menu")
	{
		menu.GET("/categories", h.Menu.GetCategories)
		menu.POST("/categories", managers, h.Menu.CreateCategory)
		menu.GET("/summary", h.Menu.GetSummary)
		menu.GET("/items", h.Menu.GetItems)
		menu.GET("/items/:id", h.Menu.GetItemByID)
		menu.POST("/items", managers, h.Menu.CreateItem)
		menu.PUT("/items/:id", managers, h.Menu.UpdateItem)
		menu.PATCH("/items/:id/availability", managers, h.Menu.SetAvailability)
		menu.GET("/items/:id/recipe", h.Inventory.GetRecipe)
		menu.PUT("/items/:id/recipe", managers, h.Inventory.SetRecipe)
	}

	// Cart & checkout
	cart := api.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("/items", h.Cart.AddItem)
		cart.DELETE("/items/:index", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/preview", h.Cart.Preview)
		cart.POST("/checkout", h.Cart.Checkout)
	}

	// Orders
	orders := api.Group("/orders")
	{
		orders.GET("", h.Orders.GetOrders)
		orders.GET("/:id", h.Orders.GetOrderByID)
		orders.POST("/:id/reprint", h.Orders.Reprint)
	}

	// Inventory & suppliers
	inventory := api.Group("/inventory", managers)
	{
		inventory.GET("/ingredients", h.Inventory.GetIngredients)
		inventory.POST("/ingredients", h.Inventory.CreateIngredient)
		inventory.GET("/ingredients/:id", h.Inventory.GetIngredientByID)
		inventory.PUT("/ingredients/:id", h.Inventory.UpdateIngredient)
		inventory.POST("/ingredients/:id/add-stock", h.Inventory.AddStock)
		inventory.POST("/ingredients/:id/remove-stock", h.Inventory.RemoveStock)
		inventory.POST("/ingredients/:id/auto-order", h.Analytics.CreateAutoPurchaseOrder)
		inventory.GET("/transactions", h.Inventory.GetHistory)
	}

	suppliers := api.Group("/suppliers", managers)
	{
		suppliers.GET("", h.Inventory.GetSuppliers)
		suppliers.POST("", h.Inventory.CreateSupplier)
		suppliers.GET("/:id/balance", h.Purchases.GetSupplierBalance)
		suppliers.GET("/:id/payments", h.Purchases.GetSupplierPayments)
		suppliers.POST("/:id/payments", h.Purchases.RecordSupplierPayment)
	}

	// Purchasing
	purchases := api.Group("/purchase-orders", managers)
	{
		purchases.GET("", h.Purchases.GetPurchaseOrders)
		purchases.POST("", h.Purchases.CreatePurchaseOrder)
		purchases.GET("/summary", h.Purchases.GetPurchaseSummary)
		purchases.GET("/:id", h.Purchases.GetPurchaseOrderByID)
		purchases.POST("/:id/receive", h.Purchases.ReceivePurchaseOrder)
		purchases.POST("/:id/cancel", h.Purchases.CancelPurchaseOrder)
	}
	payables := api.Group("/payables", managers)
	{
		payables.GET("", h.Purchases.GetPayables)
		payables.GET("/summary", h.Purchases.GetPayablesSummary)
	}

	// Accounting
	accounting := api.Group("/accounting", managers)
	{
		accounting.GET("/accounts", h.Accounting.GetAccounts)
		accounting.GET("/accounts/:id", h.Accounting.GetAccountByID)
		accounting.GET("/ledger", h.Accounting.GetLedger)
		accounting.GET("/expenses", h.Accounting.GetExpenses)
		accounting.POST("/expenses", h.Accounting.CreateExpense)
		accounting.GET("/expenses/summary", h.Accounting.GetExpenseSummary)
		accounting.GET("/reports/daily", h.Accounting.GetDailySales)
		accounting.GET("/reports/sales", h.Accounting.GetSalesReport)
		accounting.GET("/reports/payments", h.Accounting.GetPaymentBreakdown)
		accounting.GET("/reports/profit-loss", h.Accounting.GetProfitLoss)
		accounting.GET("/reports/inventory-valuation", h.Accounting.GetInventoryValuation)
		accounting.GET("/reports/balance-sheet", h.Accounting.GetBalanceSheet)
		accounting.GET("/reports/tax", h.Accounting.GetTaxSummary)
	}

	// Staff, attendance & payroll
	staff := api.Group("/staff", managers)
	{
		staff.GET("", h.Staff.GetStaff)
		staff.POST("", h.Staff.CreateStaff)
		staff.GET("/leave", h.Staff.GetLeaveRequests)
		staff.POST("/leave/:id/decision", h.Staff.DecideLeave)
		staff.GET("/salaries/pending", h.Staff.GetPendingSalaries)
		staff.GET("/payroll", h.Staff.GetPayroll)
		staff.GET("/:id", h.Staff.GetStaffByID)
		staff.PUT("/:id", h.Staff.UpdateStaff)
		staff.POST("/:id/check-in", h.Staff.CheckIn)
		staff.POST("/:id/check-out", h.Staff.CheckOut)
		staff.GET("/:id/attendance", h.Staff.GetAttendance)
		staff.POST("/:id/attendance", h.Staff.CreateAttendance)
		staff.GET("/:id/attendance/summary", h.Staff.GetAttendanceSummary)
		staff.POST("/:id/leave", h.Staff.ApplyLeave)
		staff.GET("/:id/salary/calculate", h.Staff.CalculateSalary)
		staff.POST("/:id/salary", h.Staff.GenerateSalary)
		staff.POST("/:id/salary/pay", h.Staff.PaySalary)
		staff.GET("/:id/salary", h.Staff.GetSalaryHistory)
	}

	// Dashboard & automation
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("", h.Analytics.GetDashboard)
		dashboard.GET("/today", h.Analytics.GetToday)
		dashboard.GET("/popular", h.Analytics.GetPopularItems)
		dashboard.GET("/categories", h.Analytics.GetCategoryPerformance)
		dashboard.GET("/hourly", h.Analytics.GetHourlySales)
	}
	automation := api.Group("/automation", managers)
	{
		automation.GET("/alerts", h.Analytics.GetAlerts)
		automation.POST("/run", h.Analytics.RunDaily)
	}

	// Settings (admin only for writes)
	settings := api.Group("/settings")
	{
		settings.GET("/restaurant", h.Settings.GetRestaurant)
		settings.PUT("/restaurant", adminOnly, h.Settings.UpdateRestaurant)
		settings.GET("/telegram", adminOnly, h.Settings.GetTelegram)
		settings.PUT("/telegram", adminOnly, h.Settings.UpdateTelegram)
		settings.POST("/telegram/test", adminOnly, h.Settings.TestTelegram)
		settings.POST("/telegram/bot/start", adminOnly, h.Settings.StartBot)
		settings.POST("/telegram/bot/stop", adminOnly, h.Settings.StopBot)
		settings.GET("/printer", h.Settings.GetPrinter)
		settings.PUT("/printer", adminOnly, h.Settings.UpdatePrinter)
		settings.GET("/printers", h.Settings.GetPrinters)
	}

	// Backups & exports (admin only)
	backups := api.Group("/backups", adminOnly)
	{
		backups.GET("", h.Backups.GetBackups)
		backups.POST("", h.Backups.CreateBackup)
		backups.POST("/cleanup", h.Backups.CleanupBackups)
		backups.POST("/:name/restore", h.Backups.RestoreBackup)
		backups.DELETE("/:name", h.Backups.DeleteBackup)
	}
	api.GET("/export/:kind", managers, h.Backups.Export)
}
