package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string         `env:"TELEGRAM_TOKEN,required,notEmpty"`
	BotDebug      bool           `env:"BOT_DEBUG" envDefault:"false"`
	LogLevel      string         `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string         `env:"LOG_FORMAT" envDefault:"json"`
	AdminIDs      []int64        `env:"ADMIN_IDS" envSeparator:","`
	Redis         RedisConfig    `envPrefix:"REDIS_"`
	Database      DatabaseConfig `envPrefix:"DB_"`
	Limits        LimitsConfig   `envPrefix:"RATE_LIMIT_"`
	Metrics       MetricsConfig  `envPrefix:"METRICS_"`
}

type RedisConfig struct {
	Addr       string        `env:"ADDR,required"`
	Password   string        `env:"PASSWORD"`
	DB         int           `env:"DB" envDefault:"0"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2m"`
}

// LimitsConfig caps how often one chat may trigger a recalculation.
type LimitsConfig struct {
	Updates int64         `env:"UPDATES" envDefault:"30"`
	Window  time.Duration `env:"WINDOW" envDefault:"10s"`
}

type MetricsConfig struct {
	Addr string `env:"ADDR"`
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Limits.Updates <= 0 {
		return errors.New("RATE_LIMIT_UPDATES must be positive")
	}
	if c.Limits.Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Redis.SessionTTL <= 0 {
		return errors.New("REDIS_SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
