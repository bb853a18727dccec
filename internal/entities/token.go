package entities

import "time"

// RevokedToken records a token revoked before its natural expiry (logout).
// Rows are kept until ExpiresAt, after which a scheduled purge removes them.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64" json:"jti"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}
