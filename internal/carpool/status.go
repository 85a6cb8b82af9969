package carpool

import (
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// DeriveStatus recomputes a request's status from its proposal and signature
// rows. The stored status column is only ever written with this function's
// result, never trusted, so a partial failure cannot strand a request in a
// state its rows no longer support.
//
// signature is the consolidated record of the currently accepted proposal, or
// nil when no proposal is accepted or nothing is signed yet.
func DeriveStatus(proposals []models.TransportProposal, signature *models.TransportSignature) enums.TransportRequestStatus {
	accepted := AcceptedProposal(proposals)
	if accepted == nil {
		if len(proposals) == 0 {
			return enums.TransportRequestStatusPending
		}
		return enums.TransportRequestStatusProposalMade
	}

	if signature != nil && signature.ProposalID == accepted.ID && signature.IsFullySigned() {
		return enums.TransportRequestStatusSigned
	}
	return enums.TransportRequestStatusAccepted
}

// AcceptedProposal returns the proposal carrying the accepted flag, or nil.
func AcceptedProposal(proposals []models.TransportProposal) *models.TransportProposal {
	for i := range proposals {
		if proposals[i].Accepted {
			return &proposals[i]
		}
	}
	return nil
}
