// Package scraper drives the page loop of every configured search.
package scraper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/reconciler"
)

//go:generate mockgen -destination=../testutils/mocks/scraper/mocks.go -package=scraper . PageFetcher,ListingParser,AdReconciler

// PageFetcher returns the HTML of one result page.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string, category domain.Category) ([]byte, error)
}

// ListingParser extracts candidate ads from a result page.
type ListingParser interface {
	Parse(html []byte, search domain.SearchDefinition) ([]domain.CandidateAd, error)
}

// AdReconciler applies one candidate to the store.
type AdReconciler interface {
	Reconcile(ctx context.Context, c domain.CandidateAd) (reconciler.Outcome, error)
}

// Summary counts what a run did.
type Summary struct {
	RunID       string        `json:"runId"`
	Searches    int           `json:"searches"`
	Pages       int           `json:"pages"`
	PagesFailed int           `json:"pagesFailed"`
	Candidates  int           `json:"candidates"`
	Created     int           `json:"created"`
	Updated     int           `json:"updated"`
	Unchanged   int           `json:"unchanged"`
	Ignored     int           `json:"ignored"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration"`
}

func (s *Summary) add(o Summary) {
	s.Searches += o.Searches
	s.Pages += o.Pages
	s.PagesFailed += o.PagesFailed
	s.Candidates += o.Candidates
	s.Created += o.Created
	s.Updated += o.Updated
	s.Unchanged += o.Unchanged
	s.Ignored += o.Ignored
	s.Failed += o.Failed
}

func (s *Summary) count(outcome reconciler.Outcome) {
	switch outcome {
	case reconciler.OutcomeCreated:
		s.Created++
	case reconciler.OutcomeUpdated:
		s.Updated++
	case reconciler.OutcomeUnchanged:
		s.Unchanged++
	case reconciler.OutcomeIgnored:
		s.Ignored++
	}
}

// Runner executes scrape passes.
type Runner struct {
	fetcher     PageFetcher
	parser      ListingParser
	reconciler  AdReconciler
	concurrency int
	log         logger.Logger
	metrics     *metrics.Metrics
}

// NewRunner creates a Runner. concurrency bounds how many searches run at
// once; values below 1 mean one at a time.
func NewRunner(
	fetcher PageFetcher,
	parser ListingParser,
	rec AdReconciler,
	concurrency int,
	log logger.Logger,
	m *metrics.Metrics,
) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		fetcher:     fetcher,
		parser:      parser,
		reconciler:  rec,
		concurrency: concurrency,
		log:         log,
		metrics:     m,
	}
}

// RunAll runs every search once. Failures are logged and counted; a pass
// always covers all searches.
func (r *Runner) RunAll(ctx context.Context, searches []domain.SearchDefinition) Summary {
	start := time.Now()
	runID := uuid.NewString()
	log := r.log.With(logger.String("run_id", runID))
	log.Info("Starting scrape pass", logger.Int("searches", len(searches)))

	var (
		mu    sync.Mutex
		total = Summary{RunID: runID}
	)

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for _, search := range searches {
		g.Go(func() error {
			s := r.runSearch(ctx, search, log)
			mu.Lock()
			total.add(s)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	total.Duration = time.Since(start)
	r.metrics.ObservePass(total.Duration)
	log.Info("Scrape pass finished",
		logger.Int("pages", total.Pages),
		logger.Int("pages_failed", total.PagesFailed),
		logger.Int("created", total.Created),
		logger.Int("updated", total.Updated),
		logger.Int("failed", total.Failed),
		logger.Duration("duration", total.Duration),
	)
	return total
}

// RunSearch walks pages 1..MaxPages of one search. Every page is attempted;
// a failed page is skipped.
func (r *Runner) RunSearch(ctx context.Context, search domain.SearchDefinition) Summary {
	return r.runSearch(ctx, search, r.log)
}

func (r *Runner) runSearch(ctx context.Context, search domain.SearchDefinition, parent logger.Logger) Summary {
	log := parent.With(
		logger.String("search", search.Query),
		logger.String("category", search.Category.String()),
	)
	summary := Summary{Searches: 1}

	for page := 1; page <= search.MaxPages; page++ {
		pageURL := PageURL(search.BaseURL, page)
		summary.Pages++

		html, err := r.fetcher.Fetch(ctx, pageURL, search.Category)
		if err != nil {
			summary.PagesFailed++
			log.Warn("Skipping page", logger.Int("page", page), logger.String("url", pageURL), logger.Error(err))
			continue
		}

		candidates, err := r.parser.Parse(html, search)
		if err != nil {
			summary.PagesFailed++
			log.Warn("Skipping unparsable page", logger.Int("page", page), logger.Error(err))
			continue
		}
		summary.Candidates += len(candidates)
		log.Debug("Parsed page", logger.Int("page", page), logger.Int("candidates", len(candidates)))

		for _, c := range candidates {
			outcome, recErr := r.reconciler.Reconcile(ctx, c)
			if recErr != nil {
				summary.Failed++
				log.Error("Failed to reconcile ad", logger.String("title", c.Title), logger.Error(recErr))
				continue
			}
			summary.count(outcome)
		}
	}

	log.Info("Search finished",
		logger.Int("pages", summary.Pages),
		logger.Int("pages_failed", summary.PagesFailed),
		logger.Int("candidates", summary.Candidates),
	)
	return summary
}
