// Package common provides shared wiring for the olx-scraper commands.
package common

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

// CommandDeps holds the dependencies every command starts from.
type CommandDeps struct {
	Logger logger.Logger
	Config *config.Config
}

// NewCommandDeps loads the configuration and builds the logger. Commands that
// never scrape pass requireSearches=false to skip search validation.
func NewCommandDeps(requireSearches bool) (CommandDeps, error) {
	load := config.Load
	if !requireSearches {
		load = config.Decode
	}
	cfg, err := load(viper.GetViper())
	if err != nil {
		return CommandDeps{}, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.With(logger.String("service", cfg.App.Name))

	return CommandDeps{Logger: log, Config: cfg}, nil
}
