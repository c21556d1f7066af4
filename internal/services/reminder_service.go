// Package services – ReminderService
//
// This file implements the reminder policy shared by the manual "relancer"
// action and the background automatic scan:
//
//   - A reminder may fire only while the reclamation is not TRAITEE and no
//     cooldown is active (reminder_disabled_until NULL or <= now).
//   - A manual reminder starts a cooldown and arms one automatic reminder
//     AutoDelay later.
//   - The automatic scan fires each armed, due reminder once, then starts a
//     cooldown. reminder_auto_at is left as is; reminder_auto_sent_at alone
//     marks the cycle as spent until the next manual reminder re-arms it.
//
// Races between the scan and manual requests are settled by guarded
// single-row UPDATEs that repeat the eligibility predicate. Notifications
// go out after commit and only for rows this call actually claimed.
package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/notify"
)

const (
	// DefaultCooldown is the window after any reminder during which manual
	// reminders are refused.
	DefaultCooldown = 30 * time.Minute
	// DefaultAutoDelay is how long after a manual reminder the automatic one
	// becomes due.
	DefaultAutoDelay = time.Hour

	titleManualReminder = "Rappel reclamation"
	titleAutoReminder   = "Rappel automatique"
)

var remindersFired = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reclamation_reminders_total",
		Help: "Reminders committed, by kind (MANUAL, AUTO).",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(remindersFired)
}

// ReminderService applies the reminder policy.
type ReminderService struct {
	DB        *gorm.DB
	Repo      ReclamationRepo
	Clock     clock.Clock
	Notifier  notify.Notifier
	Cooldown  time.Duration
	AutoDelay time.Duration
}

// NewReminderService wires a ReminderService with the default cooldown and
// auto delay. A nil notifier discards notifications.
func NewReminderService(db *gorm.DB, r ReclamationRepo, clk clock.Clock, n notify.Notifier) *ReminderService {
	if n == nil {
		n = notify.Noop{}
	}
	return &ReminderService{
		DB:        db,
		Repo:      r,
		Clock:     clk,
		Notifier:  notify.Safe{Next: n},
		Cooldown:  DefaultCooldown,
		AutoDelay: DefaultAutoDelay,
	}
}

// ReminderAvailability is the outcome of the shared policy for one row.
type ReminderAvailability struct {
	Available        bool
	Resolved         bool
	RemainingMinutes int // > 0 only while a cooldown is active
}

// Availability evaluates the reminder policy for r at now.
func Availability(r *domain.Reclamation, now time.Time) ReminderAvailability {
	if r.Statut == domain.StatusResolved {
		return ReminderAvailability{Resolved: true}
	}
	if r.ReminderDisabledUntil != nil && r.ReminderDisabledUntil.After(now) {
		return ReminderAvailability{RemainingMinutes: remainingMinutes(*r.ReminderDisabledUntil, now)}
	}
	return ReminderAvailability{Available: true}
}

// remainingMinutes rounds the time left up to whole minutes, never below 1.
func remainingMinutes(until, now time.Time) int {
	m := int(math.Ceil(until.Sub(now).Seconds() / 60))
	if m < 1 {
		m = 1
	}
	return m
}

// availabilityErr maps a refusal to ErrAlreadyResolved or *CooldownError.
func availabilityErr(a ReminderAvailability) error {
	switch {
	case a.Resolved:
		return ErrAlreadyResolved
	case !a.Available:
		return &CooldownError{RemainingMinutes: a.RemainingMinutes}
	}
	return nil
}

func reminderMessage(dossier string) string {
	return fmt.Sprintf("La reclamation %s n'a pas encore ete traitee.", dossier)
}

func reminderTracer() trace.Tracer { return otel.Tracer("services/ReminderService") }

// RequestManualReminder sends a reminder for reclamation id on behalf of
// actor, starts the cooldown, and arms the automatic reminder.
//
// Errors: ErrNotFound, ErrForbidden (agent on another agent's dossier),
// ErrAlreadyResolved, or *CooldownError (errors.Is ErrCooldown).
func (s *ReminderService) RequestManualReminder(ctx context.Context, id uint, actor Actor) (*domain.Reclamation, error) {
	ctx, span := reminderTracer().Start(ctx, "RequestManualReminder",
		trace.WithAttributes(
			attribute.Int64("reclamation.id", int64(id)),
			attribute.Int64("actor.id", int64(actor.ID)),
		),
	)
	defer span.End()

	now := s.Clock.Now()
	disabledUntil := now.Add(s.Cooldown)
	autoAt := now.Add(s.AutoDelay)

	var r *domain.Reclamation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.Repo.GetReclamation(ctx, tx, id)
		if err != nil {
			return translateNotFound(err)
		}
		if !actor.CanAccess(cur) {
			return ErrForbidden
		}
		if err := availabilityErr(Availability(cur, now)); err != nil {
			return err
		}

		ok, err := s.Repo.ClaimManualReminder(ctx, tx, id, now, map[string]any{
			"reminder_requested_at":   now,
			"reminder_disabled_until": disabledUntil,
			"reminder_auto_at":        autoAt,
			"reminder_auto_sent_at":   nil,
			"reminder_last_sent_at":   now,
		})
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race; report what the winner left behind.
			again, err := s.Repo.GetReclamation(ctx, tx, id)
			if err != nil {
				return translateNotFound(err)
			}
			if err := availabilityErr(Availability(again, now)); err != nil {
				return err
			}
			return fmt.Errorf("manual reminder for %d: guarded update matched no row", id)
		}

		uid := actor.ID
		if err := s.Repo.InsertReminderLog(ctx, tx, &domain.ReminderLog{
			ReclamationID: id,
			Kind:          domain.ReminderManual,
			UserID:        &uid,
			SentAt:        now,
			Details: datatypes.JSONMap{
				"dossier": cur.NumeroDossier,
				"title":   titleManualReminder,
				"message": reminderMessage(cur.NumeroDossier),
			},
		}); err != nil {
			return err
		}

		cur.ReminderRequestedAt = &now
		cur.ReminderDisabledUntil = &disabledUntil
		cur.ReminderAutoAt = &autoAt
		cur.ReminderAutoSentAt = nil
		cur.ReminderLastSentAt = &now
		r = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	remindersFired.WithLabelValues(string(domain.ReminderManual)).Inc()
	_ = s.Notifier.Notify(ctx, titleManualReminder, reminderMessage(r.NumeroDossier))
	return r, nil
}

// ScanResult summarizes one automatic scan.
type ScanResult struct {
	Due    int // rows selected as due
	Fired  int // rows claimed and notified
	Failed int // rows whose update failed and was rolled back
}

// ScanAndFireAutoReminders fires every automatic reminder due at now.
//
// All claims happen in one transaction; each row runs under its own
// savepoint so a failing row is rolled back, logged, and skipped without
// affecting the others. The returned error is non-nil only when the scan
// as a whole could not run or commit.
func (s *ReminderService) ScanAndFireAutoReminders(ctx context.Context, now time.Time) (ScanResult, error) {
	ctx, span := reminderTracer().Start(ctx, "ScanAndFireAutoReminders")
	defer span.End()

	var (
		res   ScanResult
		fired []domain.Reclamation
	)
	disabledUntil := now.Add(s.Cooldown)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		due, err := s.Repo.ListDueAutoReminders(ctx, tx, now)
		if err != nil {
			return err
		}
		res.Due = len(due)

		for _, r := range due {
			sp := fmt.Sprintf("auto_reminder_%d", r.ID)
			if err := tx.SavePoint(sp).Error; err != nil {
				return err
			}
			ok, err := s.claimAuto(ctx, tx, r, now, disabledUntil)
			if err != nil {
				if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
					return rbErr
				}
				res.Failed++
				log.Error().Err(err).
					Str("component", "reminder").
					Uint("reclamation_id", r.ID).
					Msg("auto reminder failed")
				continue
			}
			if ok {
				fired = append(fired, r)
			}
		}
		return nil
	})
	span.SetAttributes(
		attribute.Int("reminders.due", res.Due),
		attribute.Int("reminders.failed", res.Failed),
	)
	if err != nil {
		return res, err
	}

	res.Fired = len(fired)
	for _, r := range fired {
		remindersFired.WithLabelValues(string(domain.ReminderAuto)).Inc()
		_ = s.Notifier.Notify(ctx, titleAutoReminder, reminderMessage(r.NumeroDossier))
	}
	return res, nil
}

// claimAuto marks one row as auto-reminded and appends its audit log.
func (s *ReminderService) claimAuto(ctx context.Context, tx *gorm.DB, r domain.Reclamation, now, disabledUntil time.Time) (bool, error) {
	ok, err := s.Repo.ClaimAutoReminder(ctx, tx, r.ID, now, map[string]any{
		"reminder_auto_sent_at":   now,
		"reminder_last_sent_at":   now,
		"reminder_disabled_until": disabledUntil,
	})
	if err != nil || !ok {
		return false, err
	}
	err = s.Repo.InsertReminderLog(ctx, tx, &domain.ReminderLog{
		ReclamationID: r.ID,
		Kind:          domain.ReminderAuto,
		SentAt:        now,
		Details: datatypes.JSONMap{
			"dossier": r.NumeroDossier,
			"title":   titleAutoReminder,
			"message": reminderMessage(r.NumeroDossier),
		},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
