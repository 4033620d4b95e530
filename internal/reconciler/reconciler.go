// Package reconciler merges freshly parsed ads into the store, keeping price
// history and raising deal notifications.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
)

// Outcome is what Reconcile did with a candidate.
type Outcome string

// Reconcile outcomes.
const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeIgnored means the ad was blacklisted and left untouched.
	OutcomeIgnored Outcome = "ignored"
)

const (
	// maxAttempts bounds the lookup/write cycle when concurrent passes race on
	// the same ad.
	maxAttempts  = 3
	priceEpsilon = 0.005
)

// ErrTooManyConflicts is returned when every attempt lost a race.
var ErrTooManyConflicts = errors.New("ad kept changing concurrently")

//go:generate mockgen -destination=../testutils/mocks/reconciler/mocks.go -package=reconciler . Store,Classifier,Notifier

// Store is the persistence the reconciler needs.
type Store interface {
	FindByKey(ctx context.Context, key domain.AdKey) (*domain.StoredAd, error)
	Create(ctx context.Context, ad *domain.StoredAd) (bool, error)
	AppendPrice(ctx context.Context, id int64, expected float64, candidate domain.CandidateAd, at time.Time) error
}

// Classifier labels an ad title.
type Classifier interface {
	Classify(text string) domain.Classification
}

// Notifier receives deal events. Implementations must not block on or
// surface delivery failures.
type Notifier interface {
	NewDeal(ctx context.Context, ad *domain.StoredAd)
	PriceDrop(ctx context.Context, ad *domain.StoredAd, previous float64)
}

// Reconciler applies candidates to the store.
type Reconciler struct {
	store      Store
	classifier Classifier
	notifier   Notifier
	now        func() time.Time
	log        logger.Logger
	metrics    *metrics.Metrics
}

// New creates a Reconciler.
func New(store Store, classifier Classifier, notifier Notifier, log logger.Logger, m *metrics.Metrics) *Reconciler {
	return &Reconciler{
		store:      store,
		classifier: classifier,
		notifier:   notifier,
		now:        time.Now,
		log:        log,
		metrics:    m,
	}
}

// WithClock overrides the time source.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Reconcile creates, updates or skips the stored ad identified by c.Key().
// Notifications are only sent once the write has been committed.
func (r *Reconciler) Reconcile(ctx context.Context, c domain.CandidateAd) (Outcome, error) {
	outcome, err := r.reconcile(ctx, c)
	if err != nil {
		r.metrics.AdReconciled("error")
		return "", err
	}
	r.metrics.AdReconciled(string(outcome))
	return outcome, nil
}

func (r *Reconciler) reconcile(ctx context.Context, c domain.CandidateAd) (Outcome, error) {
	log := r.log.With(logger.String("title", c.Title), logger.String("search", c.SearchQuery))

	for range maxAttempts {
		existing, err := r.store.FindByKey(ctx, c.Key())
		if errors.Is(err, database.ErrAdNotFound) {
			ad, created, createErr := r.create(ctx, c)
			if createErr != nil {
				return "", createErr
			}
			if !created {
				continue
			}
			log.Info("New ad stored", logger.Int64("ad_id", ad.ID), logger.Float64("price", ad.Price))
			if c.SuperPrice && c.Category.NotifiesDeals() {
				r.notifier.NewDeal(ctx, ad)
			}
			return OutcomeCreated, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to look up ad: %w", err)
		}

		if existing.Blacklisted {
			return OutcomeIgnored, nil
		}
		if samePrice(existing.Price, c.Price) {
			return OutcomeUnchanged, nil
		}

		previous := existing.Price
		at := r.now()
		err = r.store.AppendPrice(ctx, existing.ID, previous, c, at)
		if errors.Is(err, database.ErrPriceConflict) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to record price change: %w", err)
		}

		updated := applyCandidate(existing, c, at)
		log.Info("Ad price changed",
			logger.Int64("ad_id", updated.ID),
			logger.Float64("previous_price", previous),
			logger.Float64("price", c.Price),
		)
		if c.SuperPrice && c.Category.NotifiesDeals() && c.Price < previous {
			r.notifier.PriceDrop(ctx, updated, previous)
		}
		return OutcomeUpdated, nil
	}

	return "", ErrTooManyConflicts
}

func (r *Reconciler) create(ctx context.Context, c domain.CandidateAd) (*domain.StoredAd, bool, error) {
	ad := domain.NewStoredAd(c, r.classifier.Classify(c.Title), r.now())
	created, err := r.store.Create(ctx, ad)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create ad: %w", err)
	}
	return ad, created, nil
}

func applyCandidate(existing *domain.StoredAd, c domain.CandidateAd, at time.Time) *domain.StoredAd {
	updated := *existing
	updated.Price = c.Price
	updated.SuperPrice = c.SuperPrice
	updated.URL = c.URL
	updated.ImageURL = c.ImageURL
	updated.Location = c.Location
	updated.PublishedAt = c.PublishedAt
	if c.Kilometers != nil {
		updated.Kilometers = c.Kilometers
	}
	updated.UpdatedAt = at
	updated.PriceHistory = append(append([]domain.PricePoint(nil), existing.PriceHistory...),
		domain.PricePoint{Price: c.Price, RecordedAt: at})
	return &updated
}

func samePrice(a, b float64) bool {
	return math.Abs(a-b) < priceEpsilon
}
