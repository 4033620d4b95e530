// Package cmd implements the olx-scraper command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdhttpd "github.com/FelipeCostaAraujo/olx-webscraping/cmd/httpd"
	cmdmigrate "github.com/FelipeCostaAraujo/olx-webscraping/cmd/migrate"
	cmdscheduler "github.com/FelipeCostaAraujo/olx-webscraping/cmd/scheduler"
	cmdscrape "github.com/FelipeCostaAraujo/olx-webscraping/cmd/scrape"
	cmdsearches "github.com/FelipeCostaAraujo/olx-webscraping/cmd/searches"
	cmdtrends "github.com/FelipeCostaAraujo/olx-webscraping/cmd/trends"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
)

const envPrefix = "OLX"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string
	// logLevel overrides logger.level when set.
	logLevel string
	// Debug enables debug logging and gin debug mode.
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "olx-scraper",
		Short: "Scrapes OLX listings and tracks their prices",
		Long: `olx-scraper walks the configured OLX searches, stores matching ads,
keeps their price history and publishes alerts for deals.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	_ = godotenv.Load()

	// Flags are parsed early so --config and --debug apply to initConfig.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(cmdscrape.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
	rootCmd.AddCommand(cmdhttpd.Command())
	rootCmd.AddCommand(cmdtrends.Command())
	rootCmd.AddCommand(cmdsearches.Command())
	rootCmd.AddCommand(cmdmigrate.Command())
}

// initConfig reads the config file and environment.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupLogging()
	return nil
}

// bindEnvVars maps conventional variable names onto config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":   {"APP_ENV"},
		"app.debug":         {"APP_DEBUG"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.format":     {"LOG_FORMAT"},
		"database.host":     {"POSTGRES_HOST"},
		"database.port":     {"POSTGRES_PORT"},
		"database.user":     {"POSTGRES_USER"},
		"database.password": {"POSTGRES_PASSWORD"},
		"database.dbname":   {"POSTGRES_DB"},
		"redis.address":     {"REDIS_ADDR"},
		"redis.password":    {"REDIS_PASSWORD"},
		"server.address":    {"HTTP_ADDR"},
	}
	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// setupLogging applies --debug, --log-level and development mode.
func setupLogging() {
	debug := Debug || viper.GetBool("app.debug")
	if viper.GetString("app.environment") == "development" {
		viper.Set("logger.development", true)
		viper.Set("logger.format", "console")
	}
	if debug {
		viper.Set("logger.level", "debug")
		viper.Set("app.debug", true)
	}
	if logLevel != "" {
		viper.Set("logger.level", logLevel)
	}
	Debug = debug
}

func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "olx-scraper",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"format":       "json",
		"development":  false,
		"output_paths": []string{"stdout"},
	})

	viper.SetDefault("database", map[string]any{
		"host":              "127.0.0.1",
		"port":              5432,
		"user":              "postgres",
		"password":          "postgres",
		"dbname":            "olx",
		"sslmode":           "disable",
		"max_open_conns":    25,
		"max_idle_conns":    5,
		"conn_max_lifetime": "5m",
	})

	viper.SetDefault("redis", map[string]any{
		"enabled": false,
		"address": "127.0.0.1:6379",
		"db":      0,
		"channel": config.DefaultNotifyChannel,
	})

	viper.SetDefault("server", map[string]any{
		"address":       config.DefaultServerAddress,
		"read_timeout":  "15s",
		"write_timeout": "30s",
	})

	viper.SetDefault("scraper", map[string]any{
		"max_pages":       config.DefaultMaxPages,
		"concurrency":     2,
		"request_timeout": config.DefaultRequestTimeout.String(),
		"render_timeout":  config.DefaultRenderTimeout.String(),
		"rate_limit":      "1s",
		"max_retries":     2,
		"browser": map[string]any{
			"enabled":           true,
			"headless":          true,
			"scroll_interval":   "500ms",
			"max_scrolls":       40,
			"breaker_threshold": config.DefaultBreakerThreshold,
			"breaker_cooldown":  config.DefaultBreakerCooldown.String(),
		},
	})

	viper.SetDefault("schedule", map[string]any{
		"interval":     config.DefaultScheduleInterval.String(),
		"run_on_start": true,
	})
}
