// Package services – ReclamationService
//
// This file implements ReclamationService, which owns the lifecycle of a
// reclamation: creation with its dossier number, status transitions with
// the append-only history, archiving, and the dashboard reads.
//
// Every write runs in one short transaction that reads the current row,
// validates, updates, and appends history. Notifications are sent only
// after commit through a notify.Safe wrapper, so a failing sink can never
// undo or fail a committed change.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// carry the reclamation id and actor where applicable.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/notify"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
)

const (
	titleStatusChanged = "Statut de reclamation mis a jour"

	obsCreation    = "Creation"
	obsArchive     = "Archivage"
	obsRestoration = "Restauration"
)

// ReclamationService coordinates the reclamation state machine.
type ReclamationService struct {
	DB       *gorm.DB
	Repo     ReclamationRepo
	Clock    clock.Clock
	Notifier notify.Notifier
}

// NewReclamationService wires a ReclamationService. A nil notifier
// discards notifications.
func NewReclamationService(db *gorm.DB, r ReclamationRepo, clk clock.Clock, n notify.Notifier) *ReclamationService {
	if n == nil {
		n = notify.Noop{}
	}
	return &ReclamationService{
		DB:       db,
		Repo:     r,
		Clock:    clk,
		Notifier: notify.Safe{Next: n},
	}
}

// ReclamationView is a reclamation plus its reminder availability at read
// time.
type ReclamationView struct {
	domain.Reclamation
	ReminderDisabled     bool `json:"reminder_disabled"`
	ReminderRemainingMin *int `json:"reminder_remaining_min"`
}

// ListFilter is the dashboard query. Owner is forced for agents.
type ListFilter struct {
	Statut   domain.Status
	BureauID *uint
	TypeID   *uint
	Search   string
	Archived bool
	Page     int
	PageSize int
}

func tracer() trace.Tracer { return otel.Tracer("services/ReclamationService") }

func translateNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ApplyStatusTransition moves reclamation id to newStatus on behalf of
// actor, records the history entry, and notifies after commit. Moving to
// TRAITEE also clears the automatic reminder bookkeeping.
func (s *ReclamationService) ApplyStatusTransition(ctx context.Context, id uint, newStatus domain.Status, observation string, actor Actor) (*domain.Reclamation, error) {
	ctx, span := tracer().Start(ctx, "ApplyStatusTransition",
		trace.WithAttributes(
			attribute.Int64("reclamation.id", int64(id)),
			attribute.String("status.new", string(newStatus)),
			attribute.Int64("actor.id", int64(actor.ID)),
		),
	)
	defer span.End()

	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	observation = strings.TrimSpace(observation)
	now := s.Clock.Now()

	var updated *domain.Reclamation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.Repo.GetReclamation(ctx, tx, id)
		if err != nil {
			return translateNotFound(err)
		}
		prior := cur.Statut

		fields := map[string]any{
			"statut":      newStatus,
			"observation": observation,
			"updated_at":  now,
		}
		if newStatus == domain.StatusResolved {
			fields["reminder_auto_at"] = nil
			fields["reminder_auto_sent_at"] = nil
			fields["reminder_disabled_until"] = nil
		}
		if err := s.Repo.UpdateReclamationFields(ctx, tx, id, fields); err != nil {
			return translateNotFound(err)
		}
		if err := s.Repo.InsertHistory(ctx, tx, &domain.StatusHistory{
			ReclamationID: id,
			AncienStatut:  &prior,
			NouveauStatut: newStatus,
			Observation:   observation,
			UserID:        actor.ID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		cur.Statut = newStatus
		cur.Observation = observation
		cur.UpdatedAt = &now
		if newStatus == domain.StatusResolved {
			cur.ReminderAutoAt = nil
			cur.ReminderAutoSentAt = nil
			cur.ReminderDisabledUntil = nil
		}
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.Notifier.Notify(ctx, titleStatusChanged, s.statusMessage(ctx, updated))
	return updated, nil
}

// statusMessage renders "<requester>: <dossier> -> <status>"; the requester
// prefix is dropped when the owner cannot be resolved.
func (s *ReclamationService) statusMessage(ctx context.Context, r *domain.Reclamation) string {
	dossier := r.NumeroDossier
	if dossier == "" {
		dossier = fmt.Sprintf("ID %d", r.ID)
	}
	msg := fmt.Sprintf("%s -> %s", dossier, r.Statut)
	if u, err := s.Repo.GetUser(ctx, s.DB, r.UserID); err == nil {
		if name := u.DisplayName(); name != "" {
			msg = name + ": " + msg
		}
	}
	return msg
}

// Archive flags a TRAITEE reclamation as archived.
func (s *ReclamationService) Archive(ctx context.Context, id uint, actor Actor) error {
	ctx, span := tracer().Start(ctx, "Archive",
		trace.WithAttributes(attribute.Int64("reclamation.id", int64(id))),
	)
	defer span.End()

	return s.setArchived(ctx, id, actor, true)
}

// Unarchive restores an archived reclamation to the active dashboard.
func (s *ReclamationService) Unarchive(ctx context.Context, id uint, actor Actor) error {
	ctx, span := tracer().Start(ctx, "Unarchive",
		trace.WithAttributes(attribute.Int64("reclamation.id", int64(id))),
	)
	defer span.End()

	return s.setArchived(ctx, id, actor, false)
}

func (s *ReclamationService) setArchived(ctx context.Context, id uint, actor Actor, archive bool) error {
	now := s.Clock.Now()
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.Repo.GetReclamation(ctx, tx, id)
		if err != nil {
			return translateNotFound(err)
		}

		h := &domain.StatusHistory{ReclamationID: id, UserID: actor.ID, CreatedAt: now}
		if archive {
			if cur.Statut != domain.StatusResolved {
				return ErrInvalidState
			}
			from := domain.StatusResolved
			h.AncienStatut, h.NouveauStatut, h.Observation = &from, domain.StatusArchived, obsArchive
		} else {
			if !cur.Archived {
				return ErrInvalidState
			}
			from := domain.StatusArchived
			h.AncienStatut, h.NouveauStatut, h.Observation = &from, domain.StatusRestored, obsRestoration
		}

		if err := s.Repo.UpdateReclamationFields(ctx, tx, id, map[string]any{
			"archived":   archive,
			"updated_at": now,
		}); err != nil {
			return translateNotFound(err)
		}
		return s.Repo.InsertHistory(ctx, tx, h)
	})
}

// Create validates in, inserts a new EN_ATTENTE reclamation owned by actor,
// assigns its dossier number, and writes the creation history entry, all
// in one transaction. The type code comes from the stored type and the
// bureau from the actor's user row.
func (s *ReclamationService) Create(ctx context.Context, in CreateInput, actor Actor) (*domain.Reclamation, error) {
	ctx, span := tracer().Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("actor.id", int64(actor.ID))),
	)
	defer span.End()

	unknownType := false
	if in.TypeID != 0 {
		t, err := s.Repo.GetReclamationType(ctx, s.DB, in.TypeID)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			unknownType = true
		case err != nil:
			return nil, err
		default:
			in.typeCode = t.Code
		}
	}
	if err := validateCreate(&in, unknownType); err != nil {
		return nil, err
	}

	var bureauID *uint
	u, err := s.Repo.GetUser(ctx, s.DB, actor.ID)
	switch {
	case err == nil:
		bureauID = u.BureauID
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}
	now := s.Clock.Now()

	r := &domain.Reclamation{
		BureauID:       bureauID,
		UserID:         actor.ID,
		TypeID:         in.TypeID,
		NumeroCompte:   in.NumeroCompte,
		NomClient:      in.NomClient,
		AncienneValeur: in.AncienneValeur,
		NouvelleValeur: in.NouvelleValeur,
		Motif:          in.Motif,
		Statut:         domain.StatusPending,
		CreatedAt:      now,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateReclamation(ctx, tx, r); err != nil {
			return err
		}
		return s.Repo.InsertHistory(ctx, tx, &domain.StatusHistory{
			ReclamationID: r.ID,
			NouveauStatut: domain.StatusPending,
			Observation:   obsCreation,
			UserID:        actor.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns reclamation id with its reminder availability at now.
func (s *ReclamationService) Get(ctx context.Context, id uint) (*ReclamationView, error) {
	ctx, span := tracer().Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("reclamation.id", int64(id))),
	)
	defer span.End()

	r, err := s.Repo.GetReclamation(ctx, s.DB, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	a := Availability(r, s.Clock.Now())
	v := &ReclamationView{Reclamation: *r, ReminderDisabled: !a.Available}
	if !a.Available && r.Statut != domain.StatusResolved {
		m := a.RemainingMinutes
		v.ReminderRemainingMin = &m
	}
	return v, nil
}

// History returns the status history of reclamation id, newest first.
func (s *ReclamationService) History(ctx context.Context, id uint) ([]domain.StatusHistory, error) {
	ctx, span := tracer().Start(ctx, "History",
		trace.WithAttributes(attribute.Int64("reclamation.id", int64(id))),
	)
	defer span.End()

	return s.Repo.ListHistory(ctx, s.DB, id)
}

// Reminders returns the reminders fired for reclamation id, oldest first.
func (s *ReclamationService) Reminders(ctx context.Context, id uint) ([]domain.ReminderLog, error) {
	ctx, span := tracer().Start(ctx, "Reminders",
		trace.WithAttributes(attribute.Int64("reclamation.id", int64(id))),
	)
	defer span.End()

	return s.Repo.ListReminderLogs(ctx, s.DB, id)
}

// List returns one dashboard page and the total match count. Agents only
// ever see their own reclamations.
func (s *ReclamationService) List(ctx context.Context, f ListFilter, actor Actor) ([]domain.Reclamation, int64, error) {
	ctx, span := tracer().Start(ctx, "List",
		trace.WithAttributes(
			attribute.Int("page", f.Page),
			attribute.Int("page_size", f.PageSize),
			attribute.Bool("archived", f.Archived),
		),
	)
	defer span.End()

	if f.Statut != "" && !f.Statut.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}

	rf := repo.ListFilter{
		Statut:   f.Statut,
		BureauID: f.BureauID,
		TypeID:   f.TypeID,
		Search:   foldSearch(f.Search),
		Archived: f.Archived,
		Offset:   (f.Page - 1) * f.PageSize,
		Limit:    f.PageSize,
	}
	if actor.IsAgent() {
		id := actor.ID
		rf.OwnerID = &id
	}

	total, err := s.Repo.CountReclamations(ctx, s.DB, rf)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Reclamation{}, 0, nil
	}
	items, err := s.Repo.ListReclamations(ctx, s.DB, rf)
	return items, total, err
}

// foldSearch trims and case-folds a free-text search term. A Caser holds
// state, so each call builds its own.
func foldSearch(q string) string {
	return cases.Fold().String(strings.TrimSpace(q))
}

// UpdatesSince returns status changes after since on reclamations owned by
// ownerID, oldest first.
func (s *ReclamationService) UpdatesSince(ctx context.Context, ownerID uint, since time.Time) ([]repo.HistoryUpdate, error) {
	ctx, span := tracer().Start(ctx, "UpdatesSince",
		trace.WithAttributes(attribute.Int64("owner.id", int64(ownerID))),
	)
	defer span.End()

	out, err := s.Repo.ListUpdatesSince(ctx, s.DB, ownerID, since)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []repo.HistoryUpdate{}
	}
	return out, nil
}

// PendingCount returns the number of non-archived EN_ATTENTE reclamations.
func (s *ReclamationService) PendingCount(ctx context.Context) (int64, error) {
	ctx, span := tracer().Start(ctx, "PendingCount")
	defer span.End()

	return s.Repo.CountPending(ctx, s.DB)
}

// StatusCounts returns the number of reclamations per workflow status among
// archived or live rows. Agents only count their own. Every status is
// present.
func (s *ReclamationService) StatusCounts(ctx context.Context, archived bool, actor Actor) (map[domain.Status]int64, error) {
	ctx, span := tracer().Start(ctx, "StatusCounts",
		trace.WithAttributes(
			attribute.Bool("archived", archived),
			attribute.Bool("scoped", actor.IsAgent()),
		),
	)
	defer span.End()

	var owner *uint
	if actor.IsAgent() {
		id := actor.ID
		owner = &id
	}
	return s.Repo.CountByStatus(ctx, s.DB, archived, owner)
}

// Now exposes the service clock so handlers report a consistent server time.
func (s *ReclamationService) Now() time.Time { return s.Clock.Now() }
