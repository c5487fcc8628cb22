package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type AppConfig struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"omitempty,oneof=debug release test"`

	DBDriver string `validate:"required,oneof=sqlite mysql"`
	DBDSN    string `validate:"required"`

	JWTSecret   string        `validate:"required,min=8"`
	JWTTTL      time.Duration `validate:"gt=0"`
	CORSOrigins []string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
	LogOutput string
	Env       string

	BusinessDayStartHour int `validate:"gte=0,lte=23"`

	TelegramBotToken string
	TelegramChatID   string
	TelegramEnabled  bool
	TelegramAPIURL   string `validate:"required,url"`
	TelegramPolling  bool

	PrinterName  string `validate:"required"`
	PrintCommand string `validate:"required"`

	BackupDir      string `validate:"required"`
	BackupKeepDays int    `validate:"gte=1"`

	AdminUsername string `validate:"required"`
	AdminPassword string `validate:"required,min=6"`
}

// GetEnv returns the variable or def when it is unset or blank.
func GetEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return v
	}
	return def
}

// Load reads the process environment and validates the result.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:    GetEnv("PORT", "8080"),
		GinMode: GetEnv("GIN_MODE", ""),

		DBDriver: strings.ToLower(GetEnv("DB_DRIVER", "sqlite")),
		DBDSN:    GetEnv("DB_DSN", "restaurant_billing.db"),

		JWTSecret: GetEnv("JWT_SECRET", "change-me-please"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "json"),
		LogOutput: GetEnv("LOG_OUTPUT", "stdout"),
		Env:       GetEnv("APP_ENV", "development"),

		BusinessDayStartHour: getInt("BUSINESS_DAY_START_HOUR", 4),

		TelegramBotToken: GetEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   GetEnv("TELEGRAM_CHAT_ID", ""),
		TelegramEnabled:  getBool("TELEGRAM_ENABLED", false),
		TelegramAPIURL:   GetEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramPolling:  getBool("TELEGRAM_POLLING", false),

		PrinterName:  GetEnv("PRINTER_NAME", "POS-58"),
		PrintCommand: GetEnv("PRINT_COMMAND", "lp"),

		BackupDir:      GetEnv("BACKUP_DIR", "backups"),
		BackupKeepDays: getInt("BACKUP_KEEP_DAYS", 30),

		AdminUsername: GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: GetEnv("ADMIN_PASSWORD", "admin123"),
	}

	for _, origin := range strings.Split(GetEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
