package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	CentralServer CentralServerConfig `toml:"central_server"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Reservations  ReservationsConfig  `toml:"reservations"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CentralServerConfig OCPP backend
type CentralServerConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // секунды
}

// KafkaConfig публикация событий резервирований
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// ReservationsConfig параметры сессий формы резервирования
type ReservationsConfig struct {
	ExpiryDelay      Duration `toml:"expiry_delay"`
	SessionTTL       Duration `toml:"session_ttl"`
	EvictionInterval Duration `toml:"eviction_interval"`
}

// Duration time.Duration, читаемая из строки вида "30m"
type Duration struct {
	time.Duration
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
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
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservationservice",
		},
		CentralServer: CentralServerConfig{
			Timeout: 10,
		},
		Kafka: KafkaConfig{
			Topic: "reservation-events",
		},
		Reservations: ReservationsConfig{
			ExpiryDelay:      Duration{time.Hour},
			SessionTTL:       Duration{30 * time.Minute},
			EvictionInterval: Duration{time.Minute},
		},
	}
}

// applyEnv переопределяет параметры БД из окружения (docker-compose)
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.Database.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("CENTRAL_SERVER_TOKEN"); v != "" {
		cfg.CentralServer.Token = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database host and dbname are required")
	}
	if c.CentralServer.URL == "" {
		return fmt.Errorf("central_server.url is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers are required when kafka is enabled")
	}
	if c.Reservations.SessionTTL.Duration <= 0 || c.Reservations.EvictionInterval.Duration <= 0 {
		return fmt.Errorf("reservations.session_ttl and eviction_interval must be positive")
	}
	return nil
}
