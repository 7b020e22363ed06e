package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Pagination PaginationConfig `yaml:"pagination"`
	Workers    WorkersConfig    `yaml:"workers"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "memory". The memory store keeps nothing
	// across restarts and is meant for local runs.
	Driver   string         `yaml:"driver"`
	Migrate  bool           `yaml:"migrate"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  int           `yaml:"connect_retries"`
	RetryInterval   time.Duration `yaml:"retry_interval"`
}

type RedisConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Address      string        `yaml:"address"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ScheduleTTL  time.Duration `yaml:"schedule_ttl"`
	AuditStream  string        `yaml:"audit_stream"`
	AuditMaxLen  int64         `yaml:"audit_max_len"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type WorkersConfig struct {
	// CompletionInterval > 0 enables marking finished stays COMPLETED.
	CompletionInterval time.Duration `yaml:"completion_interval"`
}

func Default() Config {
	return Config{
		App: AppConfig{Name: "gercamp", Environment: "development"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Migrate: true,
			Postgres: PostgresConfig{
				Host:            "localhost",
				Port:            5432,
				User:            "postgres",
				DBName:          "gercamp",
				SSLMode:         "disable",
				MaxOpenConns:    25,
				MaxIdleConns:    25,
				ConnMaxLifetime: 5 * time.Minute,
				ConnectRetries:  10,
				RetryInterval:   2 * time.Second,
			},
		},
		Redis: RedisConfig{
			Enabled:      true,
			Address:      "localhost:6379",
			PoolSize:     10,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			ScheduleTTL:  10 * time.Minute,
			AuditStream:  "audit:events",
			AuditMaxLen:  100000,
		},
		Auth:       AuthConfig{Issuer: "gercamp"},
		Logging:    LoggingConfig{Level: "info", Format: "json"},
		Monitoring: MonitoringConfig{PrometheusEnabled: true},
		Pagination: PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100},
	}
}

// Load reads an optional .env file, then the YAML file at path with ${VAR}
// references expanded, on top of Default(). A missing YAML file is not an
// error; the defaults and environment are used instead.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Pagination.DefaultPageSize <= 0 || c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("invalid pagination sizes: default %d, max %d",
			c.Pagination.DefaultPageSize, c.Pagination.MaxPageSize)
	}
	return nil
}
