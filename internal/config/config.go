package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения с путем к конфигу
const EnvConfigPath = "CONFIG_PATH"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Cache      CacheConfig      `toml:"cache"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Sweep      SweepConfig      `toml:"sweep"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig параметры движка поиска слотов
type SchedulingConfig struct {
	DefaultTimezone      string `toml:"default_timezone"`
	SlotIntervalMinutes  int    `toml:"slot_interval_minutes"`
	SearchHorizonWeeks   int    `toml:"search_horizon_weeks"`
	NextTimesDaysAhead   int    `toml:"next_times_days_ahead"`
	SerializationRetries int    `toml:"serialization_retries"`
}

// Location загружает часовой пояс по умолчанию
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.DefaultTimezone)
}

type CacheConfig struct {
	BusinessHoursTTL  int `toml:"business_hours_ttl"`
	BusinessHoursSize int `toml:"business_hours_size"`
}

type CalendarConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
	Timeout    int    `toml:"timeout"`
}

type SweepConfig struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"`
	Timeout int    `toml:"timeout"`
}

// Load читает TOML-файл. Путь из CONFIG_PATH имеет приоритет.
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

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
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		Scheduling: SchedulingConfig{
			DefaultTimezone:      "America/Sao_Paulo",
			SlotIntervalMinutes:  60,
			SearchHorizonWeeks:   4,
			NextTimesDaysAhead:   5,
			SerializationRetries: 3,
		},
		Cache: CacheConfig{
			BusinessHoursTTL:  300,
			BusinessHoursSize: 1024,
		},
		Calendar: CalendarConfig{Timeout: 5},
		Sweep:    SweepConfig{Spec: "0 2 * * *", Timeout: 60},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.default_timezone=%q: %v", ErrInvalidConfig, c.Scheduling.DefaultTimezone, err)
	}
	if c.Scheduling.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("%w: scheduling.slot_interval_minutes must be positive", ErrInvalidConfig)
	}
	if c.Scheduling.SearchHorizonWeeks <= 0 || c.Scheduling.NextTimesDaysAhead <= 0 {
		return fmt.Errorf("%w: scheduling search horizon must be positive", ErrInvalidConfig)
	}
	if c.Calendar.Enabled && c.Calendar.WebhookURL == "" {
		return fmt.Errorf("%w: calendar.webhook_url is required when calendar is enabled", ErrInvalidConfig)
	}
	return nil
}
