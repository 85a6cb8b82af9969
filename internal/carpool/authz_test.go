package carpool

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

type fakeRoster struct {
	consent    map[uuid.UUID]bool
	coaches    map[uuid.UUID]uuid.UUID
	consentErr error
	coachErr   error
}

func (f *fakeRoster) HasTransportConsent(ctx context.Context, playerID uuid.UUID) (bool, error) {
	if f.consentErr != nil {
		return false, f.consentErr
	}
	return f.consent[playerID], nil
}

func (f *fakeRoster) TeamCoach(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	if f.coachErr != nil {
		return uuid.Nil, f.coachErr
	}
	return f.coaches[eventID], nil
}

func TestGate_ConsentAllowsProposeAndSign(t *testing.T) {
	player := uuid.New()
	request := &models.TransportRequest{
		ID:              uuid.New(),
		EventID:         uuid.New(),
		RequesterUserID: uuid.New(),
		PlayerID:        player,
	}
	gate, err := NewGate(&fakeRoster{consent: map[uuid.UUID]bool{player: true}})
	require.NoError(t, err)

	for _, action := range []enums.CarpoolAction{enums.CarpoolActionPropose, enums.CarpoolActionSign} {
		allowed, err := gate.CanActOnRequest(context.Background(), uuid.New(), request, action)
		require.NoError(t, err)
		assert.True(t, allowed, "action %s", action)
	}
}

func TestGate_NoConsentNoCoachDenies(t *testing.T) {
	request := &models.TransportRequest{
		ID:              uuid.New(),
		EventID:         uuid.New(),
		RequesterUserID: uuid.New(),
		PlayerID:        uuid.New(),
	}
	gate, err := NewGate(&fakeRoster{})
	require.NoError(t, err)

	allowed, err := gate.CanActOnRequest(context.Background(), uuid.New(), request, enums.CarpoolActionPropose)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestGate_CoachOverride(t *testing.T) {
	coach := uuid.New()
	eventID := uuid.New()
	request := &models.TransportRequest{
		ID:              uuid.New(),
		EventID:         eventID,
		RequesterUserID: uuid.New(),
		PlayerID:        uuid.New(),
	}
	gate, err := NewGate(&fakeRoster{coaches: map[uuid.UUID]uuid.UUID{eventID: coach}})
	require.NoError(t, err)

	for _, action := range []enums.CarpoolAction{enums.CarpoolActionPropose, enums.CarpoolActionAccept, enums.CarpoolActionSign} {
		allowed, err := gate.CanActOnRequest(context.Background(), coach, request, action)
		require.NoError(t, err)
		assert.True(t, allowed, "action %s", action)
	}
}

func TestGate_AcceptRequiresRequesterOrCoach(t *testing.T) {
	player := uuid.New()
	requester := uuid.New()
	request := &models.TransportRequest{
		ID:              uuid.New(),
		EventID:         uuid.New(),
		RequesterUserID: requester,
		PlayerID:        player,
	}
	// Consent on file would allow propose/sign, but not accept.
	gate, err := NewGate(&fakeRoster{consent: map[uuid.UUID]bool{player: true}})
	require.NoError(t, err)

	allowed, err := gate.CanActOnRequest(context.Background(), requester, request, enums.CarpoolActionAccept)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = gate.CanActOnRequest(context.Background(), uuid.New(), request, enums.CarpoolActionAccept)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestGate_InvalidAction(t *testing.T) {
	gate, err := NewGate(&fakeRoster{})
	require.NoError(t, err)

	_, err = gate.CanActOnRequest(context.Background(), uuid.New(), &models.TransportRequest{ID: uuid.New()}, enums.CarpoolAction("drive"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGate_RosterFailureSurfacesDependencyError(t *testing.T) {
	gate, err := NewGate(&fakeRoster{consentErr: errors.New("roster down")})
	require.NoError(t, err)

	request := &models.TransportRequest{ID: uuid.New(), PlayerID: uuid.New(), RequesterUserID: uuid.New()}
	_, err = gate.CanActOnRequest(context.Background(), uuid.New(), request, enums.CarpoolActionSign)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
