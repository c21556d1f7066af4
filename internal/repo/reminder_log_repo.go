// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the reminder audit log.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

// InsertReminderLog appends l.
func InsertReminderLog(ctx context.Context, db *gorm.DB, l *domain.ReminderLog) error {
	return db.WithContext(ctx).Create(l).Error
}

// ListReminderLogs returns the reminders fired for a reclamation, oldest first.
func ListReminderLogs(ctx context.Context, db *gorm.DB, reclamationID uint) ([]domain.ReminderLog, error) {
	var out []domain.ReminderLog
	err := db.WithContext(ctx).
		Where("reclamation_id = ?", reclamationID).
		Order("sent_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
