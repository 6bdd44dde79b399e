// Package dedupstore implements the notification deduplication store on
// Postgres. The throttle window is claimed with a single conflict-aware
// insert, so concurrent claimants resolve at the database rather than in
// application code.
package dedupstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DedupKeyDTO represents one claimed deduplication window.
type DedupKeyDTO struct {
	Key       string    `gorm:"primaryKey"`
	ExpiresAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "dedup_keys".
func (DedupKeyDTO) TableName() string {
	return "dedup_keys"
}

// GormDedupStore implements ports.DedupStore using GORM.
type GormDedupStore struct {
	db *gorm.DB
}

// NewGormDedupStore creates a new Postgres-backed deduplication store.
func NewGormDedupStore(db *gorm.DB) *GormDedupStore {
	return &GormDedupStore{db: db}
}

// SetIfAbsent claims the key for the given duration. The insert carries ON
// CONFLICT DO NOTHING, so of two concurrent claimants exactly one sees an
// affected row. A key whose previous window has expired can be reclaimed; the
// expiry check rides in the update's WHERE clause, keeping that path atomic
// too.
func (s *GormDedupStore) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	dto := DedupKeyDTO{
		Key:       key,
		ExpiresAt: now.Add(ttl),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// The key exists. Reclaim it only if its window has lapsed.
	reclaim := s.db.WithContext(ctx).
		Model(&DedupKeyDTO{}).
		Where("key = ? AND expires_at <= ?", key, now).
		Update("expires_at", dto.ExpiresAt)
	if reclaim.Error != nil {
		return false, reclaim.Error
	}

	return reclaim.RowsAffected > 0, nil
}

// PurgeExpired removes lapsed keys. Claim correctness never depends on it;
// it only keeps the table from growing without bound.
func (s *GormDedupStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&DedupKeyDTO{})
	return result.RowsAffected, result.Error
}
