// Package config holds the typed application configuration decoded by viper
// and turns the configured searches into immutable search definitions.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

// Defaults.
const (
	DefaultMaxPages         = 20
	DefaultScheduleInterval = 2 * time.Hour
	DefaultServerAddress    = ":3000"
	DefaultNotifyChannel    = "superPriceAds"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultRenderTimeout    = 60 * time.Second
	DefaultBreakerThreshold = 3
	DefaultBreakerCooldown  = 5 * time.Minute
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	DefaultAcceptLanguage = "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7"
)

// Config is the full application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   logger.Config  `mapstructure:"logger"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Server   ServerConfig   `mapstructure:"server"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Searches []SearchConfig `mapstructure:"searches"`
}

// AppConfig identifies the running process.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL returns the connection URL used by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// RedisConfig configures the notification publisher.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ScraperConfig configures fetching and the pass runner.
type ScraperConfig struct {
	MaxPages       int           `mapstructure:"max_pages"`
	Concurrency    int           `mapstructure:"concurrency"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RenderTimeout  time.Duration `mapstructure:"render_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	AcceptLanguage string        `mapstructure:"accept_language"`
	// RateLimit is the minimum delay between two outgoing page requests.
	RateLimit  time.Duration `mapstructure:"rate_limit"`
	MaxRetries int           `mapstructure:"max_retries"`
	Browser    BrowserConfig `mapstructure:"browser"`
}

// BrowserConfig configures the headless browser fallback.
type BrowserConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Headless       bool          `mapstructure:"headless"`
	ExecPath       string        `mapstructure:"exec_path"`
	ScrollInterval time.Duration `mapstructure:"scroll_interval"`
	MaxScrolls     int           `mapstructure:"max_scrolls"`
	// BreakerThreshold consecutive launch failures suspend the browser for
	// BreakerCooldown.
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"`
}

// ScheduleConfig configures the periodic pass.
type ScheduleConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	RunOnStart bool          `mapstructure:"run_on_start"`
}

// SearchConfig is a raw search entry as written in config.yaml.
type SearchConfig struct {
	Query               string  `mapstructure:"query"`
	MaxPrice            float64 `mapstructure:"max_price"`
	SuperPriceThreshold float64 `mapstructure:"super_price_threshold"`
	BaseURL             string  `mapstructure:"base_url"`
	Pattern             string  `mapstructure:"pattern"`
	Category            string  `mapstructure:"category"`
	MaxPages            int     `mapstructure:"max_pages"`
}

// Load decodes the configuration held by v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg, err := Decode(v)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes the configuration and applies defaults without validating
// it. Commands that never scrape, such as migrate, use it.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Scraper.MaxPages <= 0 {
		c.Scraper.MaxPages = DefaultMaxPages
	}
	if c.Scraper.Concurrency <= 0 {
		c.Scraper.Concurrency = 1
	}
	if c.Scraper.RequestTimeout <= 0 {
		c.Scraper.RequestTimeout = DefaultRequestTimeout
	}
	if c.Scraper.RenderTimeout <= 0 {
		c.Scraper.RenderTimeout = DefaultRenderTimeout
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = DefaultUserAgent
	}
	if c.Scraper.AcceptLanguage == "" {
		c.Scraper.AcceptLanguage = DefaultAcceptLanguage
	}
	if c.Scraper.Browser.BreakerThreshold <= 0 {
		c.Scraper.Browser.BreakerThreshold = DefaultBreakerThreshold
	}
	if c.Scraper.Browser.BreakerCooldown <= 0 {
		c.Scraper.Browser.BreakerCooldown = DefaultBreakerCooldown
	}
	if c.Schedule.Interval <= 0 {
		c.Schedule.Interval = DefaultScheduleInterval
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
	if c.Redis.Channel == "" {
		c.Redis.Channel = DefaultNotifyChannel
	}
}

// ErrNoSearches is returned when no search is configured.
var ErrNoSearches = errors.New("no searches configured")

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Searches) == 0 {
		return ErrNoSearches
	}
	if c.Scraper.MaxRetries < 0 {
		return fmt.Errorf("scraper.max_retries must not be negative, got %d", c.Scraper.MaxRetries)
	}
	for i, s := range c.Searches {
		if err := s.validate(); err != nil {
			return fmt.Errorf("searches[%d]: %w", i, err)
		}
	}
	return nil
}

func (s SearchConfig) validate() error {
	switch {
	case s.Query == "":
		return errors.New("query is required")
	case s.BaseURL == "":
		return errors.New("base_url is required")
	case s.Pattern == "":
		return errors.New("pattern is required")
	case s.MaxPrice <= 0:
		return errors.New("max_price must be positive")
	case s.SuperPriceThreshold < 0:
		return errors.New("super_price_threshold must not be negative")
	case s.MaxPages < 0:
		return errors.New("max_pages must not be negative")
	}
	return nil
}
