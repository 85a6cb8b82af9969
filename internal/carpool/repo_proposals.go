package carpool

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
)

// ProposalRepository exposes persistence helpers for transport proposals.
type ProposalRepository interface {
	WithTx(tx *gorm.DB) ProposalRepository
	Create(ctx context.Context, proposal *models.TransportProposal) error
	Find(ctx context.Context, id uuid.UUID) (*models.TransportProposal, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]models.TransportProposal, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkAccepted(ctx context.Context, requestID, proposalID uuid.UUID) (int64, error)
}

type proposalRepositoryImpl struct {
	db *gorm.DB
}

// NewProposalRepository returns a proposal repository bound to the provided database.
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepositoryImpl{db: db}
}

func (r *proposalRepositoryImpl) WithTx(tx *gorm.DB) ProposalRepository {
	if tx == nil {
		return r
	}
	return &proposalRepositoryImpl{db: tx}
}

func (r *proposalRepositoryImpl) Create(ctx context.Context, proposal *models.TransportProposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepositoryImpl) Find(ctx context.Context, id uuid.UUID) (*models.TransportProposal, error) {
	var proposal models.TransportProposal
	if err := r.db.WithContext(ctx).First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepositoryImpl) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]models.TransportProposal, error) {
	var proposals []models.TransportProposal
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("accepted DESC, created_at ASC, id ASC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *proposalRepositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.TransportProposal{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *proposalRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TransportProposal{}, "id = ?", id).Error
}

// MarkAccepted moves the accepted flag to the target proposal. Siblings are
// cleared before the winner is set: the partial unique index on (request_id)
// WHERE accepted is checked per row, so flagging the winner while a sibling
// still holds the flag would abort the re-acceptance. Callers run this inside
// a transaction, which keeps the two statements atomic for readers.
func (r *proposalRepositoryImpl) MarkAccepted(ctx context.Context, requestID, proposalID uuid.UUID) (int64, error) {
	cleared := r.db.WithContext(ctx).Exec(`
		UPDATE transport_proposals
		SET accepted = FALSE,
			updated_at = CURRENT_TIMESTAMP
		WHERE request_id = ? AND id <> ? AND accepted
	`, requestID, proposalID)
	if cleared.Error != nil {
		return 0, cleared.Error
	}
	marked := r.db.WithContext(ctx).Exec(`
		UPDATE transport_proposals
		SET accepted = TRUE,
			updated_at = CURRENT_TIMESTAMP
		WHERE request_id = ? AND id = ?
	`, requestID, proposalID)
	if marked.Error != nil {
		return 0, marked.Error
	}
	return cleared.RowsAffected + marked.RowsAffected, nil
}
