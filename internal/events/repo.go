package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
)

// Repository exposes read access to club events.
type Repository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.ClubEvent, error)
	ListUpcomingByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]models.ClubEvent, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an events repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Find(ctx context.Context, id uuid.UUID) (*models.ClubEvent, error) {
	var event models.ClubEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repositoryImpl) ListUpcomingByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]models.ClubEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ClubEvent
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND starts_at >= CURRENT_TIMESTAMP", teamID).
		Order("starts_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
