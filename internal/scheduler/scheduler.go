// Package scheduler periodically refreshes the stored series for the
// configured locations.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tdhoang/weather-insight/internal/weather"
)

const refreshTimeout = 60 * time.Second

// Scheduler runs the periodic refresh job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	locations []weather.Location
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler for the given locations and interval.
func New(locations []weather.Location, interval time.Duration, service *weather.Service, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the scheduler. The first
// run fires immediately so the store is warm before the first request.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("scheduler: no locations configured, nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).StartImmediately().Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refreshAll() {
	s.logger.Info("scheduler: refreshing locations", "count", len(s.locations))

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			if err := s.service.Refresh(ctx, loc); err != nil {
				s.logger.Error("scheduler: refresh failed", "location", loc.Key(), "error", err)
			}
		}()
	}
	wg.Wait()

	s.logger.Info("scheduler: refresh cycle complete")
}
