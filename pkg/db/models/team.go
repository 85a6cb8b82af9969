package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a club team that owns events and rosters.
type Team struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Season    *string    `gorm:"column:season"`
	CoachID   *uuid.UUID `gorm:"column:coach_id;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
