package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
)

// Repository exposes the read-only roster facts the carpool workflow needs.
type Repository interface {
	CountActiveConsents(ctx context.Context, playerID uuid.UUID) (int64, error)
	FindEventCoach(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a roster repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) CountActiveConsents(ctx context.Context, playerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TransportConsent{}).
		Where("player_id = ? AND revoked_at IS NULL", playerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindEventCoach resolves the coach of the team owning the event. Returns
// uuid.Nil when the event exists but the team has no coach assigned.
func (r *repositoryImpl) FindEventCoach(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		CoachID *uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Table("club_events").
		Select("teams.coach_id AS coach_id").
		Joins("JOIN teams ON teams.id = club_events.team_id").
		Where("club_events.id = ?", eventID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	if row.CoachID == nil {
		return uuid.Nil, nil
	}
	return *row.CoachID, nil
}
