package carpool

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// SignatureRepository exposes persistence helpers for the consolidated
// counter-signature rows.
type SignatureRepository interface {
	WithTx(tx *gorm.DB) SignatureRepository
	FindByProposal(ctx context.Context, proposalID uuid.UUID) (*models.TransportSignature, error)
	Upsert(ctx context.Context, params UpsertSignatureParams) error
	UpdateStatus(ctx context.Context, proposalID uuid.UUID, status enums.SignatureStatus) error
	DeleteByProposal(ctx context.Context, proposalID uuid.UUID) error
}

// UpsertSignatureParams carries one party's signature for an accepted proposal.
type UpsertSignatureParams struct {
	ProposalID uuid.UUID
	Role       enums.SignerRole
	SignerID   uuid.UUID
	SignedAt   time.Time
}

type signatureRepositoryImpl struct {
	db *gorm.DB
}

// NewSignatureRepository returns a signature repository bound to the provided database.
func NewSignatureRepository(db *gorm.DB) SignatureRepository {
	return &signatureRepositoryImpl{db: db}
}

func (r *signatureRepositoryImpl) WithTx(tx *gorm.DB) SignatureRepository {
	if tx == nil {
		return r
	}
	return &signatureRepositoryImpl{db: tx}
}

func (r *signatureRepositoryImpl) FindByProposal(ctx context.Context, proposalID uuid.UUID) (*models.TransportSignature, error) {
	var signature models.TransportSignature
	if err := r.db.WithContext(ctx).First(&signature, "proposal_id = ?", proposalID).Error; err != nil {
		return nil, err
	}
	return &signature, nil
}

// Upsert writes one role's signer columns keyed by proposal id. The row is
// created on the first signature and updated in place afterwards; the last
// signer for a role wins. One statement, so concurrent signers for the same
// role cannot produce two rows.
func (r *signatureRepositoryImpl) Upsert(ctx context.Context, params UpsertSignatureParams) error {
	signerColumn := "driver_signer_id"
	signedAtColumn := "driver_signed_at"
	if params.Role == enums.SignerRoleRequester {
		signerColumn = "requester_signer_id"
		signedAtColumn = "requester_signed_at"
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO transport_signatures (proposal_id, `+signerColumn+`, `+signedAtColumn+`, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (proposal_id) DO UPDATE SET
			`+signerColumn+` = EXCLUDED.`+signerColumn+`,
			`+signedAtColumn+` = EXCLUDED.`+signedAtColumn+`,
			updated_at = CURRENT_TIMESTAMP
	`, params.ProposalID, params.SignerID, params.SignedAt, enums.SignatureStatusPartiallySigned).Error
}

func (r *signatureRepositoryImpl) UpdateStatus(ctx context.Context, proposalID uuid.UUID, status enums.SignatureStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.TransportSignature{}).
		Where("proposal_id = ?", proposalID).
		UpdateColumn("status", status).Error
}

func (r *signatureRepositoryImpl) DeleteByProposal(ctx context.Context, proposalID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TransportSignature{}, "proposal_id = ?", proposalID).Error
}
