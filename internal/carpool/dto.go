package carpool

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// CreateRequestInput captures a new transport need for one player and event.
type CreateRequestInput struct {
	EventID         uuid.UUID
	RequesterUserID uuid.UUID
	PlayerID        uuid.UUID
	PickupAddress   string
	PickupTime      time.Time
	Note            *string
	ActorRole       string
}

// ProposeInput captures a driver's pickup offer. Empty pickup fields default
// to what the requester asked for.
type ProposeInput struct {
	RequestID     uuid.UUID
	DriverUserID  uuid.UUID
	PickupAddress string
	PickupTime    time.Time
	Seats         int
	Note          *string
	ActorRole     string
}

// UpdateProposalInput carries partial edits to an unaccepted proposal.
type UpdateProposalInput struct {
	RequestID     uuid.UUID
	ProposalID    uuid.UUID
	ActorUserID   uuid.UUID
	ActorRole     string
	PickupAddress *string
	PickupTime    *time.Time
	Seats         *int
	Note          *string
}

// DeleteProposalInput identifies the proposal to withdraw and who asks.
type DeleteProposalInput struct {
	RequestID   uuid.UUID
	ProposalID  uuid.UUID
	ActorUserID uuid.UUID
	ActorRole   string
}

// AcceptProposalInput identifies the proposal the requester (or coach) accepts.
type AcceptProposalInput struct {
	RequestID   uuid.UUID
	ProposalID  uuid.UUID
	ActorUserID uuid.UUID
	ActorRole   string
}

// SignInput records one party's counter-signature on the accepted proposal.
type SignInput struct {
	RequestID    uuid.UUID
	ProposalID   uuid.UUID
	Role         enums.SignerRole
	SignerUserID uuid.UUID
	ActorRole    string
}

// RequestDetail is the read model: the request with its proposals and the
// accepted proposal's consolidated signature record, if any.
type RequestDetail struct {
	Request   models.TransportRequest    `json:"request"`
	Proposals []models.TransportProposal `json:"proposals"`
	Signature *models.TransportSignature `json:"signature,omitempty"`
}
