package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// TransportRequest records a ride need for one player to one event. Status is
// derived from the proposal and signature rows and rewritten on every
// transition; it is never authoritative on its own.
type TransportRequest struct {
	ID              uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID         uuid.UUID                    `gorm:"column:event_id;type:uuid;not null;index"`
	RequesterUserID uuid.UUID                    `gorm:"column:requester_user_id;type:uuid;not null;index"`
	PlayerID        uuid.UUID                    `gorm:"column:player_id;type:uuid;not null"`
	PickupAddress   string                       `gorm:"column:pickup_address;not null"`
	PickupTime      time.Time                    `gorm:"column:pickup_time;not null"`
	Note            *string                      `gorm:"column:note"`
	Status          enums.TransportRequestStatus `gorm:"column:status;type:transport_request_status;not null;default:'pending'"`
	Proposals       []TransportProposal          `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}
