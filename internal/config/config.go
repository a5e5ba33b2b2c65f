package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Environment   string
	StoreDriver   string
	DBDSN         string
	SQLitePath    string
	MigrationsDir string
	TelegramToken string
	Owner         string
	AppID         string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Environment:   os.Getenv("ENV"),
		StoreDriver:   os.Getenv("STORE_DRIVER"),
		DBDSN:         os.Getenv("DB_DSN"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Owner:         os.Getenv("LEDGER_OWNER"),
		AppID:         os.Getenv("LEDGER_APP_ID"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverPostgres
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "tutor_ledger.db"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.AppID == "" {
		cfg.AppID = "default-teaching-app"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля для выбранного хранилища
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required but not set")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required but not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, DriverPostgres, DriverSQLite)
	}
	return nil
}

// RequireTelegram проверяет токен бота; нужен только команде bot
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}
