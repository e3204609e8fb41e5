package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLiteFile = "bookings.db"
	defaultDataDir    = "/tmp"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Database  DatabaseConfig  `toml:"database"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	SMS       SMSConfig       `toml:"sms"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DatabaseConfig параметры хранилища
// Driver = "sqlite" использует локальный файл Path (по умолчанию $DATA_DIR/bookings.db),
// Driver = "postgres" использует Host/Port/User/Password/DBName
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Path            string `toml:"path"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig данные бизнеса, попадающие в страницы и SMS
type BusinessConfig struct {
	Title string `toml:"title"`
}

// SMSConfig параметры отправки SMS через Twilio
// Если AccountSID, AuthToken или FromNumber не заданы, SMS считается не настроенным
type SMSConfig struct {
	AccountSID  string `toml:"account_sid"`
	AuthToken   string `toml:"auth_token"`
	FromNumber  string `toml:"from_number"`
	CountryCode string `toml:"country_code"` // для номеров без '+'
	Timeout     int    `toml:"timeout"`
}

// RateLimitConfig ограничение частоты публичных POST запросов (на IP клиента)
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

// Load читает TOML файл, затем необязательный .env рядом с ним и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	cfg.applyEnv(os.Getenv)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        5000,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Business: BusinessConfig{
			Title: "Coastal Gloss",
		},
		SMS: SMSConfig{
			CountryCode: "1",
			Timeout:     10,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			Burst:             5,
		},
	}
}

// applyEnv переопределяет секреты и пути из окружения
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("TWILIO_ACCOUNT_SID"); v != "" {
		c.SMS.AccountSID = v
	}
	if v := getenv("TWILIO_AUTH_TOKEN"); v != "" {
		c.SMS.AuthToken = v
	}
	if v := getenv("TWILIO_FROM_NUMBER"); v != "" {
		c.SMS.FromNumber = v
	}
	if v := getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		dataDir := getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = defaultDataDir
		}
		c.Database.Path = filepath.Join(dataDir, defaultSQLiteFile)
	}
}

func (c *Config) applyDefaults() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Business.Title == "" {
		c.Business.Title = "Coastal Gloss"
	}
	if c.SMS.Timeout <= 0 {
		c.SMS.Timeout = 10
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch strings.ToLower(c.Logs.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown logs.level %q", ErrInvalidConfig, c.Logs.Level)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_minute and burst", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	}

	// _txlock=immediate: транзакция сразу берет блокировку на запись,
	// поэтому проверка доступности и вставка не пересекаются с другими писателями
	params := url.Values{}
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "foreign_keys(ON)")
	params.Set("_txlock", "immediate")
	return fmt.Sprintf("file:%s?%s", d.Path, params.Encode())
}

// SQLDriverName имя драйвера database/sql
func (d DatabaseConfig) SQLDriverName() string {
	return d.Driver
}

// IsConfigured true, если заданы все параметры Twilio
func (s SMSConfig) IsConfigured() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.FromNumber != ""
}
