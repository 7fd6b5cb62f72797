// Package jobs runs the service's periodic background work.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// ErrBusy is returned when an import run is already in progress
var ErrBusy = errors.New("feed import already running")

// FeedImporter imports one channel feed
type FeedImporter interface {
	Import(ctx context.Context, feedURL string) (int, error)
}

// FeedScheduler imports a fixed list of feeds on a cron schedule
type FeedScheduler struct {
	importer FeedImporter
	urls     []string
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
}

// NewFeedScheduler creates a scheduler for urls
func NewFeedScheduler(importer FeedImporter, urls []string) *FeedScheduler {
	return &FeedScheduler{
		importer: importer,
		urls:     urls,
		cron:     cron.New(),
	}
}

// Start registers the import on schedule (standard cron or @descriptors)
// and starts the cron runner
func (s *FeedScheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron triggered: importing channel feeds")
		if _, err := s.RunOnce(context.Background()); err != nil {
			log.Printf("Cron feed import: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	log.Printf("Feed import scheduled (%s) for %d feeds", schedule, len(s.urls))
	return nil
}

// RunOnce imports every feed and returns the number of listings written.
// A failing feed is logged and does not stop the others.
func (s *FeedScheduler) RunOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return 0, ErrBusy
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	total, failed := 0, 0
	for _, url := range s.urls {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		n, err := s.importer.Import(ctx, url)
		if err != nil {
			log.Printf("Warning: feed %s: %v", url, err)
			failed++
			continue
		}
		total += n
	}

	if failed > 0 && failed == len(s.urls) {
		return total, fmt.Errorf("all %d feeds failed", failed)
	}
	return total, nil
}

// Stop halts the cron runner and waits for a running import to finish or
// for ctx to be done
func (s *FeedScheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("feed import still running: %w", ctx.Err())
	}
}
