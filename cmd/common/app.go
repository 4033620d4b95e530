package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/classifier"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/fetcher"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/notify"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/parser"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/reconciler"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/scraper"
)

// App is the fully wired pipeline. The process entry point owns it and
// releases it with Close.
type App struct {
	Deps          CommandDeps
	DB            *sqlx.DB
	Ads           *database.AdRepository
	Notifications *database.NotificationRepository
	Dispatcher    *notify.Dispatcher
	Runner        *scraper.Runner
	Searches      []domain.SearchDefinition
	Metrics       *metrics.Metrics

	redis *redis.Client
}

// NewApp connects to the store and the notification channel and builds the
// scrape pipeline.
func NewApp(ctx context.Context, deps CommandDeps) (*App, error) {
	cfg := deps.Config
	log := deps.Logger

	searches, err := cfg.SearchDefinitions()
	if err != nil {
		return nil, fmt.Errorf("failed to compile searches: %w", err)
	}

	db, err := database.NewPostgresConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app := &App{
		Deps:          deps,
		DB:            db,
		Ads:           database.NewAdRepository(db),
		Notifications: database.NewNotificationRepository(db),
		Searches:      searches,
		Metrics:       metrics.New(),
	}

	var publisher notify.Publisher
	if cfg.Redis.Enabled {
		client, redisErr := notify.NewRedisClient(ctx, cfg.Redis)
		if redisErr != nil {
			_ = db.Close()
			return nil, redisErr
		}
		app.redis = client
		publisher = notify.NewRedisPublisher(client, cfg.Redis.Channel)
	} else {
		log.Warn("Redis disabled, notifications are only recorded")
	}

	app.Dispatcher = notify.NewDispatcher(app.Notifications, publisher, log, app.Metrics)
	app.Runner = scraper.NewRunner(
		newFetcher(cfg.Scraper, log, app.Metrics),
		parser.New(log),
		reconciler.New(app.Ads, classifier.New(), app.Dispatcher, log, app.Metrics),
		cfg.Scraper.Concurrency,
		log,
		app.Metrics,
	)
	return app, nil
}

func newFetcher(cfg config.ScraperConfig, log logger.Logger, m *metrics.Metrics) *fetcher.Fetcher {
	httpPath := fetcher.NewHTTPFetcher(cfg.UserAgent, cfg.AcceptLanguage, cfg.RequestTimeout)

	var browser fetcher.Renderer
	if cfg.Browser.Enabled {
		browser = fetcher.NewBrowserRenderer(fetcher.BrowserConfig{
			Headless:       cfg.Browser.Headless,
			ExecPath:       cfg.Browser.ExecPath,
			UserAgent:      cfg.UserAgent,
			Timeout:        cfg.RenderTimeout,
			ScrollInterval: cfg.Browser.ScrollInterval,
			MaxScrolls:     cfg.Browser.MaxScrolls,
		})
	}

	return fetcher.New(fetcher.Config{
		RateLimit:        cfg.RateLimit,
		Retry:            fetcher.RetryPolicy{MaxAttempts: cfg.MaxRetries + 1},
		WaitSelectors:    parser.CardSelectors(),
		BreakerThreshold: cfg.Browser.BreakerThreshold,
		BreakerCooldown:  cfg.Browser.BreakerCooldown,
	}, httpPath, browser, log, m)
}

// RunPass runs every search once.
func (a *App) RunPass(ctx context.Context) scraper.Summary {
	return a.Runner.RunAll(ctx, a.Searches)
}

// Close releases the store and redis connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.DB.Close())
	_ = a.Deps.Logger.Sync()
	return errors.Join(errs...)
}
