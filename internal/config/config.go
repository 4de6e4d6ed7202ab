package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultDBPath           = "houou.db"
	defaultMinFetchInterval = 20 * time.Minute
	defaultHTTPTimeout      = 5 * time.Second
	defaultBaseURL          = "https://tenhou.net"
)

type Config struct {
	Env              string        `mapstructure:"app_env"`
	DBPath           string        `mapstructure:"db_path"`
	MinFetchInterval time.Duration `mapstructure:"min_fetch_interval"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	RequestDelay     time.Duration `mapstructure:"request_delay"`
	UserAgent        string        `mapstructure:"user_agent"` // пустой: User-Agent клиента по умолчанию
	BaseURL          string        `mapstructure:"base_url"`
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения.
// envPath пустой: ищется .env в текущей директории.
func Load(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("MIN_FETCH_INTERVAL", defaultMinFetchInterval)
	v.SetDefault("HTTP_TIMEOUT", defaultHTTPTimeout)
	v.SetDefault("REQUEST_DELAY", time.Duration(0))
	v.SetDefault("BASE_URL", defaultBaseURL)

	config := &Config{
		Env:              v.GetString("APP_ENV"),
		DBPath:           v.GetString("DB_PATH"),
		MinFetchInterval: v.GetDuration("MIN_FETCH_INTERVAL"),
		HTTPTimeout:      v.GetDuration("HTTP_TIMEOUT"),
		RequestDelay:     v.GetDuration("REQUEST_DELAY"),
		UserAgent:        v.GetString("USER_AGENT"),
		BaseURL:          v.GetString("BASE_URL"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("app_env must be one of %s, %s, %s: %q", EnvLocal, EnvDev, EnvProd, c.Env)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	if c.MinFetchInterval < 0 {
		return fmt.Errorf("min_fetch_interval cannot be negative")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request_delay cannot be negative")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
