package enums

import "fmt"

// TransportRequestStatus maps to the transport_request_status enum in Postgres.
// The stored value is always the result of re-deriving the state machine from
// the request's proposal and signature rows.
type TransportRequestStatus string

const (
	TransportRequestStatusPending      TransportRequestStatus = "pending"
	TransportRequestStatusProposalMade TransportRequestStatus = "proposal_made"
	TransportRequestStatusAccepted     TransportRequestStatus = "accepted"
	TransportRequestStatusSigned       TransportRequestStatus = "signed"
)

var validTransportRequestStatuses = []TransportRequestStatus{
	TransportRequestStatusPending,
	TransportRequestStatusProposalMade,
	TransportRequestStatusAccepted,
	TransportRequestStatusSigned,
}

// IsValid checks whether the given status matches the canonical enum.
func (s TransportRequestStatus) IsValid() bool {
	for _, candidate := range validTransportRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTransportRequestStatus converts raw strings into TransportRequestStatus.
func ParseTransportRequestStatus(value string) (TransportRequestStatus, error) {
	for _, candidate := range validTransportRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transport request status %q", value)
}
