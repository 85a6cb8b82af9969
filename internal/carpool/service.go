package carpool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/outbox"
	"github.com/clubmate-app/clubmate-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// EventDirectory resolves club events the workflow attaches to.
type EventDirectory interface {
	FindEvent(ctx context.Context, eventID uuid.UUID) (*models.ClubEvent, error)
}

// Service orchestrates the transport-coordination workflow: requests,
// proposals, acceptance and counter-signatures. Every mutation runs inside one
// transaction and finishes by rewriting the request status with DeriveStatus.
type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.TransportRequest, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (*RequestDetail, error)
	ListRequestsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.TransportRequest, error)
	Propose(ctx context.Context, input ProposeInput) (*models.TransportProposal, error)
	UpdateProposal(ctx context.Context, input UpdateProposalInput) (*models.TransportProposal, error)
	DeleteProposal(ctx context.Context, input DeleteProposalInput) error
	AcceptProposal(ctx context.Context, input AcceptProposalInput) (*RequestDetail, error)
	Sign(ctx context.Context, input SignInput) (*RequestDetail, error)
}

type service struct {
	requests   RequestRepository
	proposals  ProposalRepository
	signatures SignatureRepository
	tx         txRunner
	gate       Gate
	events     EventDirectory
	outbox     outboxPublisher
	now        func() time.Time
}

// NewService wires the transport coordinator with its stores and collaborators.
func NewService(
	requests RequestRepository,
	proposals ProposalRepository,
	signatures SignatureRepository,
	tx txRunner,
	gate Gate,
	events EventDirectory,
	publisher outboxPublisher,
) (Service, error) {
	if requests == nil {
		return nil, fmt.Errorf("request repository required")
	}
	if proposals == nil {
		return nil, fmt.Errorf("proposal repository required")
	}
	if signatures == nil {
		return nil, fmt.Errorf("signature repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if gate == nil {
		return nil, fmt.Errorf("authorization gate required")
	}
	if events == nil {
		return nil, fmt.Errorf("event directory required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		requests:   requests,
		proposals:  proposals,
		signatures: signatures,
		tx:         tx,
		gate:       gate,
		events:     events,
		outbox:     publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.TransportRequest, error) {
	if input.EventID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	if input.RequesterUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.PlayerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player id required")
	}
	if strings.TrimSpace(input.PickupAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup address required")
	}
	if input.PickupTime.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup time required")
	}

	event, err := s.events.FindEvent(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	request := &models.TransportRequest{
		EventID:         event.ID,
		RequesterUserID: input.RequesterUserID,
		PlayerID:        input.PlayerID,
		PickupAddress:   strings.TrimSpace(input.PickupAddress),
		PickupTime:      input.PickupTime,
		Note:            input.Note,
		Status:          enums.TransportRequestStatusPending,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.requests.WithTx(tx).Create(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transport request")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventTransportRequestCreated,
			AggregateType: enums.AggregateTransportRequest,
			AggregateID:   request.ID,
			Version:       1,
			Actor:         buildActor(input.RequesterUserID, input.ActorRole),
			Data: payloads.RequestCreatedEvent{
				RequestID:       request.ID,
				EventID:         request.EventID,
				RequesterUserID: request.RequesterUserID,
				PlayerID:        request.PlayerID,
				PickupAddress:   request.PickupAddress,
				PickupTime:      request.PickupTime,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *service) GetRequest(ctx context.Context, requestID uuid.UUID) (*RequestDetail, error) {
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}

	request, err := s.requests.Find(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transport request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transport request")
	}

	proposals, signature, err := s.loadRows(ctx, s.proposals, s.signatures, requestID)
	if err != nil {
		return nil, err
	}

	// Reads report the derived status too, so a stale stored value can never
	// reach a caller.
	request.Status = DeriveStatus(proposals, signature)

	return &RequestDetail{
		Request:   *request,
		Proposals: proposals,
		Signature: signature,
	}, nil
}

func (s *service) ListRequestsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.TransportRequest, error) {
	if eventID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	requests, err := s.requests.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transport requests")
	}
	return requests, nil
}

func (s *service) Propose(ctx context.Context, input ProposeInput) (*models.TransportProposal, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.DriverUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Seats < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seats must not be negative")
	}

	var proposal *models.TransportProposal
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		proposals := s.proposals.WithTx(tx)
		signatures := s.signatures.WithTx(tx)

		request, err := s.loadRequest(ctx, requests, input.RequestID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, input.DriverUserID, request, enums.CarpoolActionPropose); err != nil {
			return err
		}

		seats := input.Seats
		if seats == 0 {
			seats = 1
		}
		pickupAddress := strings.TrimSpace(input.PickupAddress)
		if pickupAddress == "" {
			pickupAddress = request.PickupAddress
		}
		pickupTime := input.PickupTime
		if pickupTime.IsZero() {
			pickupTime = request.PickupTime
		}

		proposal = &models.TransportProposal{
			RequestID:     request.ID,
			DriverUserID:  input.DriverUserID,
			PickupAddress: pickupAddress,
			PickupTime:    pickupTime,
			Seats:         seats,
			Note:          input.Note,
		}
		if err := proposals.Create(ctx, proposal); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transport proposal")
		}

		status, err := s.rederiveStatus(ctx, requests, proposals, signatures, request.ID)
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventTransportProposalCreated,
			AggregateType: enums.AggregateTransportProposal,
			AggregateID:   proposal.ID,
			Version:       1,
			Actor:         buildActor(input.DriverUserID, input.ActorRole),
			Data: payloads.ProposalChangedEvent{
				RequestID:       request.ID,
				ProposalID:      proposal.ID,
				DriverUserID:    proposal.DriverUserID,
				RequesterUserID: request.RequesterUserID,
				RequestStatus:   status,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *service) UpdateProposal(ctx context.Context, input UpdateProposalInput) (*models.TransportProposal, error) {
	if input.ProposalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.TransportProposal
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		proposals := s.proposals.WithTx(tx)

		proposal, request, err := s.loadProposalWithRequest(ctx, requests, proposals, input.RequestID, input.ProposalID)
		if err != nil {
			return err
		}
		if proposal.DriverUserID != input.ActorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "proposal does not belong to user")
		}
		if proposal.Accepted {
			return pkgerrors.New(pkgerrors.CodeImmutable, "accepted proposal can no longer be edited")
		}

		updates := map[string]any{}
		if input.PickupAddress != nil {
			address := strings.TrimSpace(*input.PickupAddress)
			if address == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "pickup address must not be empty")
			}
			updates["pickup_address"] = address
		}
		if input.PickupTime != nil {
			updates["pickup_time"] = *input.PickupTime
		}
		if input.Seats != nil {
			if *input.Seats <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "seats must be positive")
			}
			updates["seats"] = *input.Seats
		}
		if input.Note != nil {
			updates["note"] = *input.Note
		}
		if len(updates) == 0 {
			updated = proposal
			return nil
		}

		if err := proposals.Update(ctx, proposal.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transport proposal")
		}
		updated, err = proposals.Find(ctx, proposal.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload transport proposal")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventTransportProposalUpdated,
			AggregateType: enums.AggregateTransportProposal,
			AggregateID:   proposal.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.ProposalChangedEvent{
				RequestID:       request.ID,
				ProposalID:      proposal.ID,
				DriverUserID:    proposal.DriverUserID,
				RequesterUserID: request.RequesterUserID,
				RequestStatus:   request.Status,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteProposal(ctx context.Context, input DeleteProposalInput) error {
	if input.ProposalID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "proposal id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		proposals := s.proposals.WithTx(tx)
		signatures := s.signatures.WithTx(tx)

		proposal, request, err := s.loadProposalWithRequest(ctx, requests, proposals, input.RequestID, input.ProposalID)
		if err != nil {
			return err
		}
		if proposal.DriverUserID != input.ActorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "proposal does not belong to user")
		}
		if proposal.Accepted {
			return pkgerrors.New(pkgerrors.CodeImmutable, "accepted proposal can no longer be withdrawn")
		}

		if err := signatures.DeleteByProposal(ctx, proposal.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete proposal signatures")
		}
		if err := proposals.Delete(ctx, proposal.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transport proposal")
		}

		status, err := s.rederiveStatus(ctx, requests, proposals, signatures, request.ID)
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventTransportProposalDeleted,
			AggregateType: enums.AggregateTransportProposal,
			AggregateID:   proposal.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.ProposalChangedEvent{
				RequestID:       request.ID,
				ProposalID:      proposal.ID,
				DriverUserID:    proposal.DriverUserID,
				RequesterUserID: request.RequesterUserID,
				RequestStatus:   status,
			},
		})
	})
}

func (s *service) AcceptProposal(ctx context.Context, input AcceptProposalInput) (*RequestDetail, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.ProposalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var detail *RequestDetail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		proposals := s.proposals.WithTx(tx)
		signatures := s.signatures.WithTx(tx)

		proposal, request, err := s.loadProposalWithRequest(ctx, requests, proposals, input.RequestID, input.ProposalID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, input.ActorUserID, request, enums.CarpoolActionAccept); err != nil {
			return err
		}

		before, err := proposals.ListByRequest(ctx, request.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transport proposals")
		}
		var superseded *uuid.UUID
		if prior := AcceptedProposal(before); prior != nil && prior.ID != proposal.ID {
			id := prior.ID
			superseded = &id
		}

		// Clears any previously accepted sibling before flagging the target;
		// the surrounding transaction keeps at-most-one-accepted under racing
		// accepts.
		if _, err := proposals.MarkAccepted(ctx, request.ID, proposal.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark proposal accepted")
		}

		if _, err := s.rederiveStatus(ctx, requests, proposals, signatures, request.ID); err != nil {
			return err
		}

		detail, err = s.buildDetail(ctx, requests, proposals, signatures, request.ID)
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventTransportAccepted,
			AggregateType: enums.AggregateTransportRequest,
			AggregateID:   request.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.ProposalAcceptedEvent{
				RequestID:          request.ID,
				ProposalID:         proposal.ID,
				DriverUserID:       proposal.DriverUserID,
				RequesterUserID:    request.RequesterUserID,
				SupersededProposal: superseded,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *service) Sign(ctx context.Context, input SignInput) (*RequestDetail, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.ProposalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal id required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signer role must be requester or driver")
	}
	if input.SignerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var detail *RequestDetail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		proposals := s.proposals.WithTx(tx)
		signatures := s.signatures.WithTx(tx)

		proposal, request, err := s.loadProposalWithRequest(ctx, requests, proposals, input.RequestID, input.ProposalID)
		if err != nil {
			return err
		}
		if !proposal.Accepted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only the accepted proposal can be signed")
		}
		if err := s.signAuthorize(ctx, input, request, proposal); err != nil {
			return err
		}

		existing, err := signatures.FindByProposal(ctx, proposal.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load signature record")
		}
		if signer := existing.SignerFor(input.Role); signer != nil && *signer == input.SignerUserID {
			// Same signer, same role: idempotent no-op.
			detail, err = s.buildDetail(ctx, requests, proposals, signatures, request.ID)
			return err
		}

		if err := signatures.Upsert(ctx, UpsertSignatureParams{
			ProposalID: proposal.ID,
			Role:       input.Role,
			SignerID:   input.SignerUserID,
			SignedAt:   s.now(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record signature")
		}

		signature, err := signatures.FindByProposal(ctx, proposal.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload signature record")
		}
		if signature.IsFullySigned() && signature.Status != enums.SignatureStatusSigned {
			if err := signatures.UpdateStatus(ctx, proposal.ID, enums.SignatureStatusSigned); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update signature status")
			}
			signature.Status = enums.SignatureStatusSigned
		}

		status, err := s.rederiveStatus(ctx, requests, proposals, signatures, request.ID)
		if err != nil {
			return err
		}

		detail, err = s.buildDetail(ctx, requests, proposals, signatures, request.ID)
		if err != nil {
			return err
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventTransportSigned,
			AggregateType: enums.AggregateTransportRequest,
			AggregateID:   request.ID,
			Version:       1,
			Actor:         buildActor(input.SignerUserID, input.ActorRole),
			Data: payloads.SignatureRecordedEvent{
				RequestID:       request.ID,
				ProposalID:      proposal.ID,
				Role:            input.Role,
				SignerUserID:    input.SignerUserID,
				RequesterUserID: request.RequesterUserID,
				DriverUserID:    proposal.DriverUserID,
				RequestStatus:   status,
				FullySigned:     signature.IsFullySigned(),
			},
		}
		if signature.IsFullySigned() {
			event.EventType = enums.EventTransportFullySigned
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// signAuthorize lets the natural party sign its own side directly; anyone else
// goes through the gate (consent-on-file or coach override).
func (s *service) signAuthorize(ctx context.Context, input SignInput, request *models.TransportRequest, proposal *models.TransportProposal) error {
	if input.Role == enums.SignerRoleRequester && input.SignerUserID == request.RequesterUserID {
		return nil
	}
	if input.Role == enums.SignerRoleDriver && input.SignerUserID == proposal.DriverUserID {
		return nil
	}
	return s.authorize(ctx, input.SignerUserID, request, enums.CarpoolActionSign)
}

func (s *service) authorize(ctx context.Context, userID uuid.UUID, request *models.TransportRequest, action enums.CarpoolAction) error {
	allowed, err := s.gate.CanActOnRequest(ctx, userID, request, action)
	if err != nil {
		return err
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeForbidden, "user may not act on this transport request")
	}
	return nil
}

func (s *service) loadRequest(ctx context.Context, requests RequestRepository, requestID uuid.UUID) (*models.TransportRequest, error) {
	request, err := requests.Find(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transport request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transport request")
	}
	return request, nil
}

func (s *service) loadProposalWithRequest(ctx context.Context, requests RequestRepository, proposals ProposalRepository, requestID, proposalID uuid.UUID) (*models.TransportProposal, *models.TransportRequest, error) {
	proposal, err := proposals.Find(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "transport proposal not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transport proposal")
	}
	if requestID != uuid.Nil && proposal.RequestID != requestID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal does not belong to request")
	}
	request, err := s.loadRequest(ctx, requests, proposal.RequestID)
	if err != nil {
		return nil, nil, err
	}
	return proposal, request, nil
}

// rederiveStatus recomputes the request status from current rows and persists
// it. Called at the end of every mutation, inside its transaction.
func (s *service) rederiveStatus(ctx context.Context, requests RequestRepository, proposals ProposalRepository, signatures SignatureRepository, requestID uuid.UUID) (enums.TransportRequestStatus, error) {
	rows, signature, err := s.loadRows(ctx, proposals, signatures, requestID)
	if err != nil {
		return "", err
	}
	status := DeriveStatus(rows, signature)
	if err := requests.UpdateStatus(ctx, requestID, status); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist derived status")
	}
	return status, nil
}

func (s *service) loadRows(ctx context.Context, proposals ProposalRepository, signatures SignatureRepository, requestID uuid.UUID) ([]models.TransportProposal, *models.TransportSignature, error) {
	rows, err := proposals.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transport proposals")
	}

	var signature *models.TransportSignature
	if accepted := AcceptedProposal(rows); accepted != nil {
		signature, err = signatures.FindByProposal(ctx, accepted.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load signature record")
			}
			signature = nil
		}
	}
	return rows, signature, nil
}

func (s *service) buildDetail(ctx context.Context, requests RequestRepository, proposals ProposalRepository, signatures SignatureRepository, requestID uuid.UUID) (*RequestDetail, error) {
	request, err := s.loadRequest(ctx, requests, requestID)
	if err != nil {
		return nil, err
	}
	rows, signature, err := s.loadRows(ctx, proposals, signatures, requestID)
	if err != nil {
		return nil, err
	}
	request.Status = DeriveStatus(rows, signature)
	return &RequestDetail{
		Request:   *request,
		Proposals: rows,
		Signature: signature,
	}, nil
}

func buildActor(userID uuid.UUID, role string) *outbox.ActorRef {
	return &outbox.ActorRef{
		UserID: userID,
		Role:   role,
	}
}
