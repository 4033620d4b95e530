// Package scheduler re-runs the scrape pass at a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

// ErrInvalidInterval is returned for a non-positive interval.
var ErrInvalidInterval = errors.New("schedule interval must be positive")

// Pass runs one full scrape pass.
type Pass func(ctx context.Context)

// Scheduler triggers passes from cron and on demand. Passes may overlap.
type Scheduler struct {
	cron       *cron.Cron
	pass       Pass
	interval   time.Duration
	runOnStart bool
	log        logger.Logger

	// ctx outlives Stop so in-flight passes run to completion.
	ctx context.Context
	wg  sync.WaitGroup
}

// New creates a Scheduler.
func New(pass Pass, interval time.Duration, runOnStart bool, log logger.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		pass:       pass,
		interval:   interval,
		runOnStart: runOnStart,
		log:        log,
		ctx:        context.Background(),
	}, nil
}

// Start registers the periodic pass and starts cron.
func (s *Scheduler) Start() error {
	spec := "@every " + s.interval.String()
	if _, err := s.cron.AddFunc(spec, func() { s.run("cron") }); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cron.Start()
	s.log.Info("Scheduler started", logger.String("schedule", spec))

	if s.runOnStart {
		s.Trigger()
	}
	return nil
}

// Trigger starts a pass in the background.
func (s *Scheduler) Trigger() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run("manual")
	}()
}

// Stop stops cron and waits for running passes.
func (s *Scheduler) Stop() {
	s.log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) run(trigger string) {
	start := time.Now()
	s.log.Info("Pass triggered", logger.String("trigger", trigger))
	s.pass(s.ctx)
	s.log.Info("Pass completed", logger.String("trigger", trigger), logger.Duration("duration", time.Since(start)))
}
