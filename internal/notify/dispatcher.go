// Package notify persists deal notifications and pushes them to subscribers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
)

const defaultStepTimeout = 10 * time.Second

// Dispatch step outcomes, used as metric labels.
const (
	outcomeStored    = "stored"
	outcomePublished = "published"
	outcomeFailed    = "failed"
)

// Recorder persists notifications.
type Recorder interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// Publisher pushes notifications to subscribers.
type Publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// Dispatcher records a notification and then publishes it. Pipeline
// notifications are fire-and-forget: failures are logged and counted only.
type Dispatcher struct {
	recorder  Recorder
	publisher Publisher
	timeout   time.Duration
	now       func() time.Time
	log       logger.Logger
	metrics   *metrics.Metrics
}

// NewDispatcher creates a Dispatcher. publisher may be nil, in which case
// notifications are only recorded.
func NewDispatcher(recorder Recorder, publisher Publisher, log logger.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		recorder:  recorder,
		publisher: publisher,
		timeout:   defaultStepTimeout,
		now:       time.Now,
		log:       log,
		metrics:   m,
	}
}

// NewDeal announces a newly stored super-price ad.
func (d *Dispatcher) NewDeal(ctx context.Context, ad *domain.StoredAd) {
	n := d.fromAd(domain.NotificationNewDeal, ad)
	_ = d.dispatch(ctx, &n)
}

// PriceDrop announces that a super-price ad got cheaper than previous.
func (d *Dispatcher) PriceDrop(ctx context.Context, ad *domain.StoredAd, previous float64) {
	n := d.fromAd(domain.NotificationPriceDrop, ad)
	n.PreviousPrice = &previous
	_ = d.dispatch(ctx, &n)
}

// TestRequest is a manually triggered notification.
type TestRequest struct {
	AdID  int64
	Title string
	Price float64
	URL   string
}

// Test sends a manual notification and reports every step that failed.
func (d *Dispatcher) Test(ctx context.Context, req TestRequest) (domain.Notification, error) {
	n := domain.Notification{
		AdID:      req.AdID,
		Kind:      domain.NotificationTest,
		Title:     req.Title,
		Price:     req.Price,
		URL:       req.URL,
		CreatedAt: d.now(),
	}
	err := d.dispatch(ctx, &n)
	return n, err
}

func (d *Dispatcher) fromAd(kind domain.NotificationKind, ad *domain.StoredAd) domain.Notification {
	return domain.Notification{
		AdID:      ad.ID,
		Kind:      kind,
		Title:     ad.Title,
		Price:     ad.Price,
		URL:       ad.URL,
		ImageURL:  ad.ImageURL,
		CreatedAt: d.now(),
	}
}

// dispatch runs both steps even if recording fails; the joined error is
// returned for callers that care.
func (d *Dispatcher) dispatch(ctx context.Context, n *domain.Notification) error {
	log := d.log.With(
		logger.String("kind", string(n.Kind)),
		logger.Int64("ad_id", n.AdID),
		logger.String("title", n.Title),
		logger.Float64("price", n.Price),
	)

	var errs []error

	recordCtx, cancel := context.WithTimeout(ctx, d.timeout)
	err := d.recorder.Create(recordCtx, n)
	cancel()
	if err != nil {
		d.metrics.NotificationSent(string(n.Kind), outcomeFailed)
		log.Error("Failed to record notification", logger.Error(err))
		errs = append(errs, fmt.Errorf("record: %w", err))
	} else {
		d.metrics.NotificationSent(string(n.Kind), outcomeStored)
	}

	if d.publisher != nil {
		pubCtx, pubCancel := context.WithTimeout(ctx, d.timeout)
		err = d.publisher.Publish(pubCtx, *n)
		pubCancel()
		if err != nil {
			d.metrics.NotificationSent(string(n.Kind), outcomeFailed)
			log.Error("Failed to publish notification", logger.Error(err))
			errs = append(errs, fmt.Errorf("publish: %w", err))
		} else {
			d.metrics.NotificationSent(string(n.Kind), outcomePublished)
		}
	}

	if len(errs) == 0 {
		log.Info("Notification sent")
	}
	return errors.Join(errs...)
}
