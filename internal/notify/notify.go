// Package notify delivers human-readable notifications about reclamations.
//
// A Notifier is a best-effort sink: delivery failures never roll back the
// state change that triggered them. Callers wrap their sink in Safe, which
// logs and counts failures (and recovers panics) instead of returning them.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Notifier sends a titled message to the notification channel.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, title, message string) error

// Notify calls f.
func (f Func) Notify(ctx context.Context, title, message string) error { return f(ctx, title, message) }

var (
	sent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notifications handed to the notifier, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(sent)
}

// Noop discards every notification.
type Noop struct{}

// Notify does nothing.
func (Noop) Notify(context.Context, string, string) error { return nil }

// Log writes each notification as a structured zerolog event. It is the
// default sink and never fails.
type Log struct {
	Logger *zerolog.Logger // nil means the global logger
}

// Notify emits an info event whose message is the notification body,
// with the title and a kind=notification marker as fields.
func (l Log) Notify(ctx context.Context, title, message string) error {
	lg := l.Logger
	if lg == nil {
		lg = &log.Logger
	}
	lg.Info().
		Str("kind", "notification").
		Str("title", title).
		Msg(message)
	return nil
}

// Multi fans a notification out to every sink and joins their errors.
type Multi []Notifier

// Notify calls each sink in order, even after a failure.
func (m Multi) Notify(ctx context.Context, title, message string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Safe wraps a Notifier so that errors and panics are logged and counted
// but never returned.
type Safe struct {
	Next Notifier
}

// Notify delivers through Next and always returns nil.
func (s Safe) Notify(ctx context.Context, title, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
		if err != nil {
			sent.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("title", title).Msg("notification delivery failed")
		} else {
			sent.WithLabelValues("ok").Inc()
		}
		err = nil
	}()
	if s.Next == nil {
		return nil
	}
	return s.Next.Notify(ctx, title, message)
}
