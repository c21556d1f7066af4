package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
)

// ReclamationRepo is the persistence contract the reclamation and reminder
// services need. Every method takes the handle to run on, so services can
// pass a transaction.
type ReclamationRepo interface {
	CreateReclamation(ctx context.Context, db *gorm.DB, r *domain.Reclamation) error
	GetReclamation(ctx context.Context, db *gorm.DB, id uint) (*domain.Reclamation, error)
	UpdateReclamationFields(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) error
	CountReclamations(ctx context.Context, db *gorm.DB, f repo.ListFilter) (int64, error)
	ListReclamations(ctx context.Context, db *gorm.DB, f repo.ListFilter) ([]domain.Reclamation, error)
	CountPending(ctx context.Context, db *gorm.DB) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, archived bool, ownerID *uint) (map[domain.Status]int64, error)

	InsertHistory(ctx context.Context, db *gorm.DB, h *domain.StatusHistory) error
	ListHistory(ctx context.Context, db *gorm.DB, reclamationID uint) ([]domain.StatusHistory, error)
	ListUpdatesSince(ctx context.Context, db *gorm.DB, ownerID uint, since time.Time) ([]repo.HistoryUpdate, error)

	// ClaimManualReminder and ClaimAutoReminder are guarded single-row
	// updates; false means the row no longer satisfied the guard.
	ClaimManualReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error)
	ListDueAutoReminders(ctx context.Context, db *gorm.DB, now time.Time) ([]domain.Reclamation, error)
	ClaimAutoReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error)
	InsertReminderLog(ctx context.Context, db *gorm.DB, l *domain.ReminderLog) error
	ListReminderLogs(ctx context.Context, db *gorm.DB, reclamationID uint) ([]domain.ReminderLog, error)

	GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error)
	GetReclamationType(ctx context.Context, db *gorm.DB, id uint) (*domain.ReclamationType, error)
}

// GormRepo implements ReclamationRepo with the package-level functions of
// internal/repo.
type GormRepo struct{}

var _ ReclamationRepo = GormRepo{}

func (GormRepo) CreateReclamation(ctx context.Context, db *gorm.DB, r *domain.Reclamation) error {
	return repo.CreateReclamation(ctx, db, r)
}
func (GormRepo) GetReclamation(ctx context.Context, db *gorm.DB, id uint) (*domain.Reclamation, error) {
	return repo.GetReclamation(ctx, db, id)
}
func (GormRepo) UpdateReclamationFields(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) error {
	return repo.UpdateReclamationFields(ctx, db, id, fields)
}
func (GormRepo) CountReclamations(ctx context.Context, db *gorm.DB, f repo.ListFilter) (int64, error) {
	return repo.CountReclamations(ctx, db, f)
}
func (GormRepo) ListReclamations(ctx context.Context, db *gorm.DB, f repo.ListFilter) ([]domain.Reclamation, error) {
	return repo.ListReclamations(ctx, db, f)
}
func (GormRepo) CountPending(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountPending(ctx, db)
}
func (GormRepo) CountByStatus(ctx context.Context, db *gorm.DB, archived bool, ownerID *uint) (map[domain.Status]int64, error) {
	return repo.CountByStatus(ctx, db, archived, ownerID)
}
func (GormRepo) InsertHistory(ctx context.Context, db *gorm.DB, h *domain.StatusHistory) error {
	return repo.InsertHistory(ctx, db, h)
}
func (GormRepo) ListHistory(ctx context.Context, db *gorm.DB, reclamationID uint) ([]domain.StatusHistory, error) {
	return repo.ListHistory(ctx, db, reclamationID)
}
func (GormRepo) ListUpdatesSince(ctx context.Context, db *gorm.DB, ownerID uint, since time.Time) ([]repo.HistoryUpdate, error) {
	return repo.ListUpdatesSince(ctx, db, ownerID, since)
}
func (GormRepo) ClaimManualReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error) {
	return repo.ClaimManualReminder(ctx, db, id, now, fields)
}
func (GormRepo) ListDueAutoReminders(ctx context.Context, db *gorm.DB, now time.Time) ([]domain.Reclamation, error) {
	return repo.ListDueAutoReminders(ctx, db, now)
}
func (GormRepo) ClaimAutoReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error) {
	return repo.ClaimAutoReminder(ctx, db, id, now, fields)
}
func (GormRepo) InsertReminderLog(ctx context.Context, db *gorm.DB, l *domain.ReminderLog) error {
	return repo.InsertReminderLog(ctx, db, l)
}
func (GormRepo) ListReminderLogs(ctx context.Context, db *gorm.DB, reclamationID uint) ([]domain.ReminderLog, error) {
	return repo.ListReminderLogs(ctx, db, reclamationID)
}
func (GormRepo) GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}
func (GormRepo) GetReclamationType(ctx context.Context, db *gorm.DB, id uint) (*domain.ReclamationType, error) {
	return repo.GetReclamationType(ctx, db, id)
}
