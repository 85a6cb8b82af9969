package roster

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

// Service answers consent and coaching questions for the carpool gate. Facts
// are read fresh on every call; nothing is cached.
type Service interface {
	HasTransportConsent(ctx context.Context, playerID uuid.UUID) (bool, error)
	TeamCoach(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error)
}

type service struct {
	repo Repository
}

// NewService wires roster dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "roster repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) HasTransportConsent(ctx context.Context, playerID uuid.UUID) (bool, error) {
	if playerID == uuid.Nil {
		return false, nil
	}
	count, err := s.repo.CountActiveConsents(ctx, playerID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count transport consents")
	}
	return count > 0, nil
}

func (s *service) TeamCoach(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	if eventID == uuid.Nil {
		return uuid.Nil, nil
	}
	coachID, err := s.repo.FindEventCoach(ctx, eventID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve event coach")
	}
	return coachID, nil
}
