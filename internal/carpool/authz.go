package carpool

import (
	"context"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

// RosterDirectory is the external roster surface the gate consults. Consent
// and coaching facts are owned there; the gate never caches them.
type RosterDirectory interface {
	HasTransportConsent(ctx context.Context, playerID uuid.UUID) (bool, error)
	TeamCoach(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error)
}

// Gate decides whether a user may run a carpool mutation against a request.
type Gate interface {
	CanActOnRequest(ctx context.Context, userID uuid.UUID, request *models.TransportRequest, action enums.CarpoolAction) (bool, error)
}

type gate struct {
	roster RosterDirectory
}

// NewGate wires the authorization gate to the roster collaborator.
func NewGate(roster RosterDirectory) (Gate, error) {
	if roster == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "roster directory required")
	}
	return &gate{roster: roster}, nil
}

// CanActOnRequest allows propose and sign when a standing transport consent
// exists for the request's player, or when the acting user coaches the team
// that owns the request's event. Accept is stricter: only the requester, or
// the coach as an override. Both facts are re-read on every call so a revoked
// consent takes effect immediately.
func (g *gate) CanActOnRequest(ctx context.Context, userID uuid.UUID, request *models.TransportRequest, action enums.CarpoolAction) (bool, error) {
	if userID == uuid.Nil || request == nil {
		return false, nil
	}
	if !action.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "unknown carpool action")
	}

	if action == enums.CarpoolActionAccept {
		if userID == request.RequesterUserID {
			return true, nil
		}
		return g.isEventCoach(ctx, userID, request.EventID)
	}

	consent, err := g.roster.HasTransportConsent(ctx, request.PlayerID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check transport consent")
	}
	if consent {
		return true, nil
	}
	return g.isEventCoach(ctx, userID, request.EventID)
}

func (g *gate) isEventCoach(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	coachID, err := g.roster.TeamCoach(ctx, eventID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve team coach")
	}
	return coachID != uuid.Nil && coachID == userID, nil
}
