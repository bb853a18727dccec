package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"librarium/internal/entities"
)

// RevocationStore tracks tokens revoked before their natural expiry.
// Revoked rows become irrelevant once the token itself expires, so a
// scheduled purge keeps the table small.
type RevocationStore struct {
	db       *gorm.DB
	timeFunc func() time.Time
}

// NewRevocationStore creates a revocation store backed by the given database.
func NewRevocationStore(db *gorm.DB) *RevocationStore {
	return &RevocationStore{db: db, timeFunc: time.Now}
}

// Revoke records the token's JTI until its expiry. Revoking an already
// revoked token is a no-op.
func (s *RevocationStore) Revoke(claims *Claims) error {
	row := &entities.RevokedToken{
		JTI:       claims.JTI,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
		RevokedAt: s.timeFunc(),
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

// IsRevoked reports whether the JTI has been revoked.
func (s *RevocationStore) IsRevoked(jti string) (bool, error) {
	var row entities.RevokedToken
	err := s.db.Where("jti = ?", jti).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PurgeExpired removes revocation rows for tokens that have expired anyway.
func (s *RevocationStore) PurgeExpired() (int64, error) {
	result := s.db.Where("expires_at < ?", s.timeFunc()).Delete(&entities.RevokedToken{})
	return result.RowsAffected, result.Error
}

// StartPurgeSchedule runs PurgeExpired on the given cron schedule. The
// returned cron must be stopped during shutdown.
func (s *RevocationStore) StartPurgeSchedule(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		purged, err := s.PurgeExpired()
		if err != nil {
			log.Printf("Failed to purge expired revoked tokens: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d expired revoked tokens", purged)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
