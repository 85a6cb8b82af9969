package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

// Service is the event collaborator surface consumed by the carpool workflow.
type Service interface {
	FindEvent(ctx context.Context, eventID uuid.UUID) (*models.ClubEvent, error)
}

type service struct {
	repo Repository
}

// NewService wires events dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "events repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) FindEvent(ctx context.Context, eventID uuid.UUID) (*models.ClubEvent, error) {
	return s.repo.Find(ctx, eventID)
}
