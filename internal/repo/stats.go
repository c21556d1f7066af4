// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used by the
// supervisor dashboard badges.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

// CountByStatus returns the number of reclamations per status among rows
// with the given archived flag, restricted to ownerID when it is non-nil.
// Statuses with no rows are present with 0.
func CountByStatus(ctx context.Context, db *gorm.DB, archived bool, ownerID *uint) (map[domain.Status]int64, error) {
	var rows []struct {
		Statut domain.Status
		N      int64
	}
	q := db.WithContext(ctx).
		Model(&domain.Reclamation{}).
		Select("statut, COUNT(*) AS n").
		Where("archived = ?", archived)
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	err := q.Group("statut").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Status]int64, len(domain.Statuses))
	for _, s := range domain.Statuses {
		out[s] = 0
	}
	for _, r := range rows {
		out[r.Statut] = r.N
	}
	return out, nil
}

// CountPending returns the number of non-archived EN_ATTENTE reclamations.
func CountPending(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Reclamation{}).
		Where("statut = ? AND archived = ?", domain.StatusPending, false).
		Count(&n).Error
	return n, err
}
