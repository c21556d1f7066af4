// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the append-only status history log.
// There is deliberately no update or delete function for history rows.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

// HistoryUpdate is a history row joined with its reclamation's dossier
// number, as returned to polling agents.
type HistoryUpdate struct {
	ReclamationID uint          `json:"reclamation_id"`
	NouveauStatut domain.Status `json:"nouveau_statut"`
	CreatedAt     time.Time     `json:"created_at"`
	NumeroDossier string        `json:"numero_dossier"`
}

// InsertHistory appends h.
func InsertHistory(ctx context.Context, db *gorm.DB, h *domain.StatusHistory) error {
	return db.WithContext(ctx).Create(h).Error
}

// ListHistory returns the history of one reclamation, newest first.
func ListHistory(ctx context.Context, db *gorm.DB, reclamationID uint) ([]domain.StatusHistory, error) {
	var out []domain.StatusHistory
	err := db.WithContext(ctx).
		Where("reclamation_id = ?", reclamationID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListUpdatesSince returns history rows written strictly after since for
// reclamations owned by ownerID, oldest first.
func ListUpdatesSince(ctx context.Context, db *gorm.DB, ownerID uint, since time.Time) ([]HistoryUpdate, error) {
	var out []HistoryUpdate
	err := db.WithContext(ctx).
		Table(domain.StatusHistory{}.TableName()+" AS h").
		Select("h.reclamation_id, h.nouveau_statut, h.created_at, r.numero_dossier").
		Joins("JOIN "+domain.Reclamation{}.TableName()+" AS r ON r.id = h.reclamation_id").
		Where("r.user_id = ?", ownerID).
		Where("h.created_at > ?", since).
		Order("h.created_at ASC, h.id ASC").
		Scan(&out).Error
	return out, err
}
