package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Драйверы хранилища
const (
	StorageDriverPebble   = "pebble"
	StorageDriverPostgres = "postgres"
)

// Реализации детектора конфликтов
const (
	DetectorSweep    = "sweep"
	DetectorPairwise = "pairwise"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig логирование. Пустой File означает stdout
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver string       `toml:"driver"` // pebble | postgres
	Pebble PebbleConfig `toml:"pebble"`
}

// PebbleConfig локальная база
type PebbleConfig struct {
	Dir string `toml:"dir"`
}

// DatabaseConfig подключение к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// BusinessConfig бизнес-параметры
type BusinessConfig struct {
	Timezone              string `toml:"timezone"`
	DefaultTaxPercent     string `toml:"default_tax_percent"` // строкой, например "10" или "12.5"
	AgendaLookaroundHours int    `toml:"agenda_lookaround_hours"`
	ConflictDetector      string `toml:"conflict_detector"` // sweep | pairwise

	location   *time.Location
	defaultTax money.Percent
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Location часовой пояс бизнеса
func (c BusinessConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// DefaultTax налог, который записывается при первом запуске
func (c BusinessConfig) DefaultTax() money.Percent {
	return c.defaultTax
}

// AgendaLookaround длина периода агенды по умолчанию
func (c BusinessConfig) AgendaLookaround() time.Duration {
	return time.Duration(c.AgendaLookaroundHours) * time.Hour
}

// Load читает config.toml, затем .env рядом с ним и переменные окружения.
// Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "transfer_service",
		},
		Storage: StorageConfig{
			Driver: StorageDriverPebble,
			Pebble: PebbleConfig{Dir: "data/pebble"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Business: BusinessConfig{
			Timezone:              "UTC",
			DefaultTaxPercent:     "0",
			AgendaLookaroundHours: 24,
			ConflictDetector:      DetectorSweep,
		},
	}
}

// applyEnv секреты и выбор хранилища из окружения
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("STORAGE_DRIVER"); ok && v != "" {
		c.Storage.Driver = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		c.Logs.Level = v
	}
}

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageDriverPebble:
		if c.Storage.Pebble.Dir == "" {
			return errors.New("config: storage.pebble.dir is required")
		}
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("config: database.host and database.dbname are required")
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}

	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return fmt.Errorf("config: invalid business.timezone %q: %w", c.Business.Timezone, err)
	}
	c.Business.location = loc

	tax, err := money.ParsePercent(c.Business.DefaultTaxPercent)
	if err != nil {
		return fmt.Errorf("config: invalid business.default_tax_percent: %w", err)
	}
	if tax < 0 || tax > money.PercentFromInt(100) {
		return fmt.Errorf("config: business.default_tax_percent must be within 0..100, got %s", tax)
	}
	c.Business.defaultTax = tax

	if c.Business.AgendaLookaroundHours <= 0 {
		return fmt.Errorf("config: business.agenda_lookaround_hours must be positive")
	}

	switch c.Business.ConflictDetector {
	case DetectorSweep, DetectorPairwise:
	default:
		return fmt.Errorf("config: unknown business.conflict_detector %q", c.Business.ConflictDetector)
	}

	return nil
}
