// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Reclamation model.
//
// All functions are context-aware and accept a *gorm.DB handle, so they can
// run inside a caller's transaction. They follow the "thin repository"
// approach: persistence and query composition only, business rules live in
// the services package.
//
// Error semantics:
//   - When a reclamation is not found, functions return ErrNotFound.
//   - Guarded updates (Claim*) report whether their row matched instead of
//     failing, so callers can tell a lost race from a missing row.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListFilter narrows ListReclamations. Zero values mean "no constraint",
// except Archived which always applies.
type ListFilter struct {
	OwnerID  *uint
	Statut   domain.Status
	BureauID *uint
	TypeID   *uint
	Search   string // already case-folded; matched with LIKE against dossier, compte, client
	Archived bool
	Offset   int
	Limit    int
}

// DossierNumber renders REC-YYYYMMDD-NNNNN from the creation date and id.
func DossierNumber(created time.Time, id uint) string {
	return fmt.Sprintf("REC-%s-%05d", created.Format("20060102"), id)
}

// CreateReclamation inserts r and then stamps its dossier number, which
// depends on the store-assigned id. Call it inside a transaction.
func CreateReclamation(ctx context.Context, db *gorm.DB, r *domain.Reclamation) error {
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return err
	}
	r.NumeroDossier = DossierNumber(r.CreatedAt, r.ID)
	return db.WithContext(ctx).
		Model(&domain.Reclamation{}).
		Where("id = ?", r.ID).
		Update("numero_dossier", r.NumeroDossier).Error
}

// GetReclamation fetches a reclamation by id, or ErrNotFound.
func GetReclamation(ctx context.Context, db *gorm.DB, id uint) (*domain.Reclamation, error) {
	var r domain.Reclamation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReclamationFields applies fields to the row with id. Map keys are
// column names; nil values write NULL. Returns ErrNotFound when no row
// matched.
func UpdateReclamationFields(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Reclamation{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimManualReminder writes fields only if the reclamation is still
// eligible for a manual reminder at now: not TRAITEE and no active
// cooldown. The predicate and the write are one statement, so two
// concurrent requests cannot both succeed.
func ClaimManualReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Reclamation{}).
		Where("id = ?", id).
		Where("statut <> ?", domain.StatusResolved).
		Where("(reminder_disabled_until IS NULL OR reminder_disabled_until <= ?)", now).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// dueAutoReminders scopes a query to rows whose automatic reminder is due
// at now and not yet sent for the current cycle.
func dueAutoReminders(q *gorm.DB, now time.Time) *gorm.DB {
	return q.
		Where("archived = ?", false).
		Where("statut <> ?", domain.StatusResolved).
		Where("reminder_auto_at IS NOT NULL").
		Where("reminder_auto_at <= ?", now).
		Where("reminder_auto_sent_at IS NULL")
}

// ListDueAutoReminders returns reclamations whose automatic reminder is due
// at now, oldest deadline first.
func ListDueAutoReminders(ctx context.Context, db *gorm.DB, now time.Time) ([]domain.Reclamation, error) {
	var out []domain.Reclamation
	err := dueAutoReminders(db.WithContext(ctx), now).
		Order("reminder_auto_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ClaimAutoReminder writes fields only if row id is still due under the
// same predicate ListDueAutoReminders used. A false result means a
// concurrent writer (manual reminder, resolution, archive) got there first.
func ClaimAutoReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error) {
	res := dueAutoReminders(db.WithContext(ctx).Model(&domain.Reclamation{}).Where("id = ?", id), now).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func applyListFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	if f.OwnerID != nil {
		q = q.Where("user_id = ?", *f.OwnerID)
	}
	if f.Statut != "" {
		q = q.Where("statut = ?", f.Statut)
	}
	if f.BureauID != nil {
		q = q.Where("bureau_id = ?", *f.BureauID)
	}
	if f.TypeID != nil {
		q = q.Where("type_id = ?", *f.TypeID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("(LOWER(numero_dossier) LIKE ? OR LOWER(numero_compte) LIKE ? OR LOWER(nom_client) LIKE ?)", like, like, like)
	}
	return q.Where("archived = ?", f.Archived)
}

// CountReclamations returns how many rows match f (offset/limit ignored).
func CountReclamations(ctx context.Context, db *gorm.DB, f ListFilter) (int64, error) {
	var total int64
	err := applyListFilter(db.WithContext(ctx).Model(&domain.Reclamation{}), f).Count(&total).Error
	return total, err
}

// ListReclamations returns a page of rows matching f, newest first.
func ListReclamations(ctx context.Context, db *gorm.DB, f ListFilter) ([]domain.Reclamation, error) {
	var out []domain.Reclamation
	q := applyListFilter(db.WithContext(ctx), f).Order("created_at DESC, id DESC")
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Find(&out).Error
	return out, err
}
