package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// TransportSignature consolidates both counter-signatures for an accepted
// proposal into one row keyed by proposal id. A role column is nullable until
// that party signs; the last signer for a role wins.
type TransportSignature struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProposalID        uuid.UUID             `gorm:"column:proposal_id;type:uuid;not null;uniqueIndex"`
	RequesterSignerID *uuid.UUID            `gorm:"column:requester_signer_id;type:uuid"`
	RequesterSignedAt *time.Time            `gorm:"column:requester_signed_at"`
	DriverSignerID    *uuid.UUID            `gorm:"column:driver_signer_id;type:uuid"`
	DriverSignedAt    *time.Time            `gorm:"column:driver_signed_at"`
	Status            enums.SignatureStatus `gorm:"column:status;type:signature_status;not null;default:'partially_signed'"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// IsFullySigned reports whether both signature roles are present.
func (s *TransportSignature) IsFullySigned() bool {
	return s != nil && s.RequesterSignerID != nil && s.DriverSignerID != nil
}

// SignerFor returns the current signer recorded for the given role, if any.
func (s *TransportSignature) SignerFor(role enums.SignerRole) *uuid.UUID {
	if s == nil {
		return nil
	}
	if role == enums.SignerRoleRequester {
		return s.RequesterSignerID
	}
	return s.DriverSignerID
}
