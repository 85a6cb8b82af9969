package carpool

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// RequestRepository exposes persistence helpers for transport requests.
type RequestRepository interface {
	WithTx(tx *gorm.DB) RequestRepository
	Create(ctx context.Context, request *models.TransportRequest) error
	Find(ctx context.Context, id uuid.UUID) (*models.TransportRequest, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.TransportRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TransportRequestStatus) error
}

type requestRepositoryImpl struct {
	db *gorm.DB
}

// NewRequestRepository returns a request repository bound to the provided database.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepositoryImpl{db: db}
}

func (r *requestRepositoryImpl) WithTx(tx *gorm.DB) RequestRepository {
	if tx == nil {
		return r
	}
	return &requestRepositoryImpl{db: tx}
}

func (r *requestRepositoryImpl) Create(ctx context.Context, request *models.TransportRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepositoryImpl) Find(ctx context.Context, id uuid.UUID) (*models.TransportRequest, error) {
	var request models.TransportRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepositoryImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.TransportRequest, error) {
	var requests []models.TransportRequest
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TransportRequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.TransportRequest{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}
