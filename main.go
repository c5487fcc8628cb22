package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"resto-pos/config"
	"resto-pos/controllers"
	"resto-pos/logger"
	"resto-pos/printer"
	"resto-pos/routes"
	"resto-pos/seeders"
	"resto-pos/services"
	"resto-pos/telegram"
	"resto-pos/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	appLog := logger.New(logger.Config{
		Level:        logger.LogLevel(cfg.LogLevel),
		Format:       cfg.LogFormat,
		Output:       cfg.LogOutput,
		EnableCaller: true,
		Environment:  cfg.Env,
	})
	defer appLog.Close()

	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	// connect db
	if err := config.ConnectDatabase(cfg); err != nil {
		appLog.Fatal("database connection failed", "error", err)
	}
	db := config.DB

	// seed data
	if err := seeders.Seed(db, seeders.Options{
		AdminUsername:    cfg.AdminUsername,
		AdminPassword:    cfg.AdminPassword,
		PrinterName:      cfg.PrinterName,
		TelegramBotToken: cfg.TelegramBotToken,
		TelegramChatID:   cfg.TelegramChatID,
		TelegramEnabled:  cfg.TelegramEnabled,
	}); err != nil {
		appLog.Fatal("seeding failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h, bot, backups := wire(ctx, db, cfg, appLog)

	if info, err := backups.AutoBackup(ctx); err != nil {
		appLog.Warn("automatic backup skipped", "error", err)
	} else if info != nil {
		appLog.Info("automatic backup created", "file", info.Filename)
	}

	if cfg.TelegramPolling {
		if err := bot.Start(ctx); err != nil {
			appLog.Warn("telegram bot not started", "error", err)
		}
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(appLog.GinMiddleware(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	}))

	// routes
	routes.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLog.Info("server listening", "port", cfg.Port, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	bot.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("graceful shutdown failed", "error", err)
	}
}

// wire builds every service and controller over db.
func wire(ctx context.Context, db *gorm.DB, cfg *config.AppConfig, appLog *logger.Logger) (routes.Controllers, *telegram.Bot, services.BackupService) {
	settings := services.NewSettingsService(db)
	menu := services.NewMenuService(db)
	orders := services.NewOrderService(db, settings, cfg.BusinessDayStartHour)
	ledger := services.NewLedgerService(db, appLog)
	inventory := services.NewInventoryService(db, appLog)

	notifier := telegram.NewNotifier(telegram.NewClient(cfg.TelegramAPIURL, 5*time.Second), settings, appLog)
	spooler := printer.NewSpooler(cfg.PrintCommand, cfg.PrinterName)
	checkout := services.NewCheckoutService(orders, ledger, inventory, settings, notifier, spooler, appLog)

	restaurantName := "Restaurant"
	if rs, err := settings.Restaurant(ctx); err == nil {
		restaurantName = rs.Name
	}
	reports := services.NewReportService(db, menu, cfg.BusinessDayStartHour)
	bot := telegram.NewBot(telegram.NewClient(cfg.TelegramAPIURL, 10*time.Second), settings, reports, restaurantName, appLog)

	backups := services.NewBackupService(db, cfg.BackupDir, cfg.DBDriver, cfg.DBDSN, appLog)

	h := routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(db), services.NewAuditService(db)),
		Menu:       controllers.NewMenuController(menu),
		Cart:       controllers.NewCartController(services.NewCartStore(), menu, checkout),
		Orders:     controllers.NewOrderController(orders, checkout),
		Inventory:  controllers.NewInventoryController(inventory),
		Purchases:  controllers.NewPurchaseController(services.NewPurchaseService(db, appLog)),
		Accounting: controllers.NewAccountingController(ledger, services.NewAccountingService(db)),
		Staff:      controllers.NewStaffController(services.NewStaffService(db)),
		Analytics: controllers.NewAnalyticsController(
			services.NewAnalyticsService(db, cfg.BusinessDayStartHour),
			services.NewAutomationService(db, appLog),
		),
		Settings: controllers.NewSettingsController(settings, notifier, bot, printer.ListPrinters),
		Backups:  controllers.NewBackupController(backups, cfg.BackupKeepDays),
	}
	return h, bot, backups
}
