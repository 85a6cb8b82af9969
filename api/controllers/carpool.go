package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/api/middleware"
	"github.com/clubmate-app/clubmate-backend/api/responses"
	"github.com/clubmate-app/clubmate-backend/api/validators"
	"github.com/clubmate-app/clubmate-backend/internal/carpool"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
)

type createTransportRequestBody struct {
	EventID       uuid.UUID `json:"event_id" validate:"required"`
	PlayerID      uuid.UUID `json:"player_id" validate:"required"`
	PickupAddress string    `json:"pickup_address" validate:"required,max=500"`
	PickupTime    time.Time `json:"pickup_time" validate:"required"`
	Note          *string   `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type proposeTransportBody struct {
	PickupAddress string     `json:"pickup_address,omitempty" validate:"omitempty,max=500"`
	PickupTime    *time.Time `json:"pickup_time,omitempty"`
	Seats         int        `json:"seats,omitempty" validate:"omitempty,min=1,max=8"`
	Note          *string    `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type updateTransportProposalBody struct {
	PickupAddress *string    `json:"pickup_address,omitempty" validate:"omitempty,max=500"`
	PickupTime    *time.Time `json:"pickup_time,omitempty"`
	Seats         *int       `json:"seats,omitempty" validate:"omitempty,min=1,max=8"`
	Note          *string    `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type signTransportBody struct {
	ProposalID uuid.UUID `json:"proposal_id" validate:"required"`
	Role       string    `json:"role" validate:"required,oneof=requester driver"`
}

func actorFromContext(r *http.Request) (uuid.UUID, string, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, middleware.RoleFromContext(r.Context()), nil
}

func parsePathID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}

// CreateTransportRequest posts a new pickup need for a player and event.
func CreateTransportRequest(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createTransportRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.CreateRequest(r.Context(), carpool.CreateRequestInput{
			EventID:         body.EventID,
			RequesterUserID: actorID,
			PlayerID:        body.PlayerID,
			PickupAddress:   validators.SanitizeString(body.PickupAddress, 500),
			PickupTime:      body.PickupTime,
			Note:            body.Note,
			ActorRole:       role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// GetTransportRequest returns a request with its proposals and signature state.
func GetTransportRequest(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		requestID, err := parsePathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetRequest(r.Context(), requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ListTransportRequests returns the transport requests attached to one club event.
func ListTransportRequests(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		eventID, err := uuid.Parse(r.URL.Query().Get("eventId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "eventId query parameter required"))
			return
		}

		rows, err := svc.ListRequestsByEvent(r.Context(), eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ProposeTransport records a driver's pickup offer on a request.
func ProposeTransport(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := parsePathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body proposeTransportBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := carpool.ProposeInput{
			RequestID:     requestID,
			DriverUserID:  actorID,
			PickupAddress: validators.SanitizeString(body.PickupAddress, 500),
			Seats:         body.Seats,
			Note:          body.Note,
			ActorRole:     role,
		}
		if body.PickupTime != nil {
			input.PickupTime = *body.PickupTime
		}

		proposal, err := svc.Propose(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, proposal)
	}
}

// UpdateTransportProposal edits a not-yet-accepted proposal.
func UpdateTransportProposal(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := parsePathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		proposalID, err := parsePathID(r, "proposalID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateTransportProposalBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		proposal, err := svc.UpdateProposal(r.Context(), carpool.UpdateProposalInput{
			RequestID:     requestID,
			ProposalID:    proposalID,
			ActorUserID:   actorID,
			ActorRole:     role,
			PickupAddress: body.PickupAddress,
			PickupTime:    body.PickupTime,
			Seats:         body.Seats,
			Note:          body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, proposal)
	}
}

// DeleteTransportProposal withdraws a not-yet-accepted proposal.
func DeleteTransportProposal(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := parsePathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		proposalID, err := parsePathID(r, "proposalID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProposal(r.Context(), carpool.DeleteProposalInput{
			RequestID:   requestID,
			ProposalID:  proposalID,
			ActorUserID: actorID,
			ActorRole:   role,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AcceptTransportProposal marks one proposal as the winner for its request.
func AcceptTransportProposal(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := parsePathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		proposalID, err := parsePathID(r, "proposalID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.AcceptProposal(r.Context(), carpool.AcceptProposalInput{
			RequestID:   requestID,
			ProposalID:  proposalID,
			ActorUserID: actorID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// SignTransport records the caller's counter-signature on the accepted proposal.
func SignTransport(svc carpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carpool service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := parsePathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body signTransportBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		signerRole, err := enums.ParseSignerRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid signer role"))
			return
		}

		detail, err := svc.Sign(r.Context(), carpool.SignInput{
			RequestID:    requestID,
			ProposalID:   body.ProposalID,
			Role:         signerRole,
			SignerUserID: actorID,
			ActorRole:    role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
