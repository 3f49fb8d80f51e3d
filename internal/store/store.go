// Package store holds the GORM-backed implementations of the collaborator
// interfaces the verification service consumes.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// FetchProfiles returns a fresh snapshot; nothing is cached across calls.
func (s *Store) FetchProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// BulkSetVerified marks all ids verified in a single update.
func (s *Store) BulkSetVerified(ctx context.Context, ids []uuid.UUID, verifiedBy string, verifiedAt time.Time) error {
	verified := true
	return s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"verified":    &verified,
			"verified_at": verifiedAt,
			"verified_by": verifiedBy,
		}).Error
}

// RecordAudit is fire-and-forget: a failed insert is logged, never surfaced.
func (s *Store) RecordAudit(ctx context.Context, actor, action, detail string) {
	entry := models.AuditLog{Actor: actor, Action: action, Detail: detail}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}
