package payloads

import (
	"time"

	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	"github.com/google/uuid"
)

// RequestCreatedEvent signals a new transport need was posted.
type RequestCreatedEvent struct {
	RequestID       uuid.UUID `json:"request_id"`
	EventID         uuid.UUID `json:"event_id"`
	RequesterUserID uuid.UUID `json:"requester_user_id"`
	PlayerID        uuid.UUID `json:"player_id"`
	PickupAddress   string    `json:"pickup_address"`
	PickupTime      time.Time `json:"pickup_time"`
}

// ProposalChangedEvent covers proposal create/update/withdraw transitions.
type ProposalChangedEvent struct {
	RequestID       uuid.UUID                    `json:"request_id"`
	ProposalID      uuid.UUID                    `json:"proposal_id"`
	DriverUserID    uuid.UUID                    `json:"driver_user_id"`
	RequesterUserID uuid.UUID                    `json:"requester_user_id"`
	RequestStatus   enums.TransportRequestStatus `json:"request_status"`
}

// ProposalAcceptedEvent is emitted when a proposal wins the request.
type ProposalAcceptedEvent struct {
	RequestID          uuid.UUID  `json:"request_id"`
	ProposalID         uuid.UUID  `json:"proposal_id"`
	DriverUserID       uuid.UUID  `json:"driver_user_id"`
	RequesterUserID    uuid.UUID  `json:"requester_user_id"`
	SupersededProposal *uuid.UUID `json:"superseded_proposal,omitempty"`
}

// SignatureRecordedEvent is emitted on every recorded counter-signature,
// including the one that completes the pair.
type SignatureRecordedEvent struct {
	RequestID       uuid.UUID                    `json:"request_id"`
	ProposalID      uuid.UUID                    `json:"proposal_id"`
	Role            enums.SignerRole             `json:"role"`
	SignerUserID    uuid.UUID                    `json:"signer_user_id"`
	RequesterUserID uuid.UUID                    `json:"requester_user_id"`
	DriverUserID    uuid.UUID                    `json:"driver_user_id"`
	RequestStatus   enums.TransportRequestStatus `json:"request_status"`
	FullySigned     bool                         `json:"fully_signed"`
}
