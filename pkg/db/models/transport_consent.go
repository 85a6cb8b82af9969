package models

import (
	"time"

	"github.com/google/uuid"
)

// TransportConsent is a standing guardian authorization on file for a player.
// The authorization gate checks it on every mutating carpool action.
type TransportConsent struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PlayerID   uuid.UUID  `gorm:"column:player_id;type:uuid;not null;index"`
	GuardianID uuid.UUID  `gorm:"column:guardian_id;type:uuid;not null"`
	GrantedAt  time.Time  `gorm:"column:granted_at;not null"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
