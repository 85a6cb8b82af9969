package carpool

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

func TestDeriveStatus(t *testing.T) {
	acceptedID := uuid.New()
	otherID := uuid.New()
	signer := uuid.New()
	now := time.Now()

	cases := []struct {
		name      string
		proposals []models.TransportProposal
		signature *models.TransportSignature
		want      enums.TransportRequestStatus
	}{
		{
			name: "no proposals",
			want: enums.TransportRequestStatusPending,
		},
		{
			name: "unaccepted proposals only",
			proposals: []models.TransportProposal{
				{ID: otherID}, {ID: uuid.New()},
			},
			want: enums.TransportRequestStatusProposalMade,
		},
		{
			name: "accepted without signature record",
			proposals: []models.TransportProposal{
				{ID: acceptedID, Accepted: true}, {ID: otherID},
			},
			want: enums.TransportRequestStatusAccepted,
		},
		{
			name: "accepted with one role signed",
			proposals: []models.TransportProposal{
				{ID: acceptedID, Accepted: true},
			},
			signature: &models.TransportSignature{
				ProposalID:        acceptedID,
				RequesterSignerID: &signer,
				RequesterSignedAt: &now,
			},
			want: enums.TransportRequestStatusAccepted,
		},
		{
			name: "accepted with both roles signed",
			proposals: []models.TransportProposal{
				{ID: acceptedID, Accepted: true}, {ID: otherID},
			},
			signature: &models.TransportSignature{
				ProposalID:        acceptedID,
				RequesterSignerID: &signer,
				DriverSignerID:    &signer,
			},
			want: enums.TransportRequestStatusSigned,
		},
		{
			name: "full signature on a superseded proposal does not count",
			proposals: []models.TransportProposal{
				{ID: acceptedID, Accepted: true}, {ID: otherID},
			},
			signature: &models.TransportSignature{
				ProposalID:        otherID,
				RequesterSignerID: &signer,
				DriverSignerID:    &signer,
			},
			want: enums.TransportRequestStatusAccepted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.proposals, tc.signature))
		})
	}
}

func TestAcceptedProposal(t *testing.T) {
	winner := uuid.New()
	proposals := []models.TransportProposal{
		{ID: uuid.New()},
		{ID: winner, Accepted: true},
		{ID: uuid.New()},
	}

	found := AcceptedProposal(proposals)
	assert.NotNil(t, found)
	assert.Equal(t, winner, found.ID)

	assert.Nil(t, AcceptedProposal(nil))
	assert.Nil(t, AcceptedProposal([]models.TransportProposal{{ID: uuid.New()}}))
}
