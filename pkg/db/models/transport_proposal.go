package models

import (
	"time"

	"github.com/google/uuid"
)

// TransportProposal is a candidate pickup offer made by a driver against a
// request. At most one proposal per request carries accepted = true; the
// accept operation flips siblings to false in the same statement.
type TransportProposal struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID     uuid.UUID           `gorm:"column:request_id;type:uuid;not null;index"`
	DriverUserID  uuid.UUID           `gorm:"column:driver_user_id;type:uuid;not null"`
	PickupAddress string              `gorm:"column:pickup_address;not null"`
	PickupTime    time.Time           `gorm:"column:pickup_time;not null"`
	Seats         int                 `gorm:"column:seats;not null;default:1"`
	Note          *string             `gorm:"column:note"`
	Accepted      bool                `gorm:"column:accepted;not null;default:false"`
	Signature     *TransportSignature `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
