package models

import (
	"time"

	"github.com/google/uuid"
)

// ClubEvent represents a scheduled team activity (match, practice, tournament)
// that transport requests attach to.
type ClubEvent struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TeamID    uuid.UUID  `gorm:"column:team_id;type:uuid;not null;index"`
	Title     string     `gorm:"column:title;not null"`
	Location  string     `gorm:"column:location;not null"`
	StartsAt  time.Time  `gorm:"column:starts_at;not null"`
	EndsAt    *time.Time `gorm:"column:ends_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
