// Package reminder runs the background loop that fires automatic reminders.
//
// The Scheduler wakes on a robfig/cron Schedule (every 30 seconds by
// default), asks its Scanner to fire whatever is due, and goes back to
// sleep. A failing or panicking cycle is logged and counted; the loop keeps
// going until its context is cancelled or Stop is called.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/services"
)

// DefaultInterval is the wake period when no schedule is configured.
const DefaultInterval = 30 * time.Second

var (
	scanCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_scan_cycles_total",
			Help: "Automatic reminder scan cycles, by outcome (ok, error, panic).",
		},
		[]string{"outcome"},
	)

	scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_scan_duration_seconds",
			Help:    "Duration of automatic reminder scan cycles in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	scanRowFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_scan_row_failures_total",
			Help: "Rows rolled back during automatic reminder scans.",
		},
	)
)

func init() {
	prometheus.MustRegister(scanCycles, scanDuration, scanRowFailures)
}

// Scanner fires the automatic reminders due at now.
type Scanner interface {
	ScanAndFireAutoReminders(ctx context.Context, now time.Time) (services.ScanResult, error)
}

// WaitFunc blocks for d or until ctx is done. It returns false when the
// loop should exit.
type WaitFunc func(ctx context.Context, d time.Duration) bool

// Scheduler periodically invokes a Scanner.
type Scheduler struct {
	scanner  Scanner
	clock    clock.Clock
	schedule cron.Schedule
	wait     WaitFunc
	logger   zerolog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source passed to the scanner.
func WithClock(c clock.Clock) Option { return func(s *Scheduler) { s.clock = c } }

// WithSchedule sets the wake schedule.
func WithSchedule(sch cron.Schedule) Option { return func(s *Scheduler) { s.schedule = sch } }

// WithWait replaces the sleeping function; tests use it to run a bounded
// number of cycles without real delays.
func WithWait(w WaitFunc) Option { return func(s *Scheduler) { s.wait = w } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Scheduler) { s.logger = l } }

// New returns a Scheduler for scanner. Defaults: local clock, every 30s,
// real sleeping, global logger.
func New(scanner Scanner, opts ...Option) *Scheduler {
	s := &Scheduler{
		scanner:  scanner,
		clock:    clock.Local{Loc: time.Local},
		schedule: cron.Every(DefaultInterval),
		wait:     sleep,
		logger:   log.Logger,
		stop:     make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With().Str("component", "reminder_scheduler").Logger()
	return s
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Start runs the loop in a new goroutine. Calling it again, or after
// Stop, has no effect.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	done := make(chan struct{})
	s.done = done
	go func() {
		defer close(done)
		s.Run(context.Background())
	}()
}

// Stop signals the loop to exit and waits for the current cycle to end.
// It is safe to call more than once, before Start, and concurrently with
// Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stop)
	}
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Run scans, waits for the next scheduled wake, and repeats until ctx is
// done or Stop is called.
func (s *Scheduler) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.logger.Info().Msg("reminder scheduler started")
	defer s.logger.Info().Msg("reminder scheduler stopped")

	for {
		if ctx.Err() != nil {
			return
		}
		s.RunOnce(ctx)

		now := s.clock.Now()
		d := s.schedule.Next(now).Sub(now)
		if d < 0 {
			d = 0
		}
		if !s.wait(ctx, d) {
			return
		}
	}
}

// RunOnce performs a single scan at the clock's current time. Errors and
// panics are logged and counted, never returned.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		if r := recover(); r != nil {
			outcome = "panic"
			s.logger.Error().Str("panic", fmt.Sprint(r)).Msg("reminder scan panicked")
		}
		scanCycles.WithLabelValues(outcome).Inc()
		scanDuration.Observe(time.Since(start).Seconds())
	}()

	res, err := s.scanner.ScanAndFireAutoReminders(ctx, s.clock.Now())
	if res.Failed > 0 {
		scanRowFailures.Add(float64(res.Failed))
	}
	if err != nil {
		outcome = "error"
		s.logger.Error().Err(err).Msg("reminder scan failed")
		return
	}
	if res.Due > 0 {
		s.logger.Info().
			Int("due", res.Due).
			Int("fired", res.Fired).
			Int("failed", res.Failed).
			Msg("reminder scan")
	}
}
