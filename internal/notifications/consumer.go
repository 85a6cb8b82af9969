package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/outbox"
	"github.com/clubmate-app/clubmate-backend/pkg/outbox/idempotency"
	"github.com/clubmate-app/clubmate-backend/pkg/outbox/payloads"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

const carpoolNotificationConsumer = "carpool-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Consumer watches carpool domain events and materializes in-app notifications
// for the counterparty. The workflow itself never notifies anyone.
type Consumer struct {
	repo         repository
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds a carpool notification consumer.
func NewConsumer(repo repository, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := enums.OutboxEventType(msg.Attributes["event_type"])
	fields := map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	}
	logCtx := c.logg.WithFields(ctx, fields)

	if !eventType.IsValid() {
		c.logg.Info(logCtx, "skipping unknown event type")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, carpoolNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	if err := c.handleEvent(ctx, eventType, envelope.Data, logCtx); err != nil {
		c.logg.Error(logCtx, "notification handling failed", err)
		_ = c.idempotency.Delete(ctx, carpoolNotificationConsumer, eventID)
		return processResult{nack: true}
	}

	return processResult{ack: true}
}

func (c *Consumer) handleEvent(ctx context.Context, eventType enums.OutboxEventType, data json.RawMessage, logCtx context.Context) error {
	switch eventType {
	case enums.EventTransportProposalCreated, enums.EventTransportProposalUpdated, enums.EventTransportProposalDeleted:
		var payload payloads.ProposalChangedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifyProposalChanged(ctx, eventType, payload, logCtx)
	case enums.EventTransportAccepted:
		var payload payloads.ProposalAcceptedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifyAccepted(ctx, payload, logCtx)
	case enums.EventTransportSigned, enums.EventTransportFullySigned:
		var payload payloads.SignatureRecordedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifySigned(ctx, payload, logCtx)
	default:
		c.logg.Info(logCtx, "event type not handled")
		return nil
	}
}

func (c *Consumer) notifyProposalChanged(ctx context.Context, eventType enums.OutboxEventType, payload payloads.ProposalChangedEvent, logCtx context.Context) error {
	if payload.RequesterUserID == uuid.Nil {
		return fmt.Errorf("requester user id missing")
	}
	title := "New pickup offer"
	message := "A driver offered a pickup for your transport request."
	switch eventType {
	case enums.EventTransportProposalUpdated:
		title = "Pickup offer updated"
		message = "A driver changed their pickup offer on your transport request."
	case enums.EventTransportProposalDeleted:
		title = "Pickup offer withdrawn"
		message = "A driver withdrew their pickup offer from your transport request."
	}
	notification := &models.Notification{
		UserID:  payload.RequesterUserID,
		Type:    enums.NotificationTypeCarpoolUpdate,
		Title:   title,
		Message: message,
		Link:    requestLink(payload.RequestID),
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return err
	}
	c.logg.Info(logCtx, "requester notified of proposal change")
	return nil
}

func (c *Consumer) notifyAccepted(ctx context.Context, payload payloads.ProposalAcceptedEvent, logCtx context.Context) error {
	if payload.DriverUserID == uuid.Nil {
		return fmt.Errorf("driver user id missing")
	}
	notification := &models.Notification{
		UserID:  payload.DriverUserID,
		Type:    enums.NotificationTypeCarpoolUpdate,
		Title:   "Pickup offer accepted",
		Message: "Your pickup offer was accepted. Counter-sign to confirm the ride.",
		Link:    requestLink(payload.RequestID),
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return err
	}
	c.logg.Info(logCtx, "driver notified of acceptance")
	return nil
}

func (c *Consumer) notifySigned(ctx context.Context, payload payloads.SignatureRecordedEvent, logCtx context.Context) error {
	title := "Transport request signed"
	message := "The other party signed the accepted pickup. Your signature is still needed."
	recipients := []uuid.UUID{payload.RequesterUserID}
	if payload.Role == enums.SignerRoleRequester {
		recipients = []uuid.UUID{payload.DriverUserID}
	}
	if payload.FullySigned {
		// Both parties get the confirmation once the second signature lands.
		title = "Ride confirmed"
		message = "Both parties signed. The ride arrangement is now binding."
		recipients = []uuid.UUID{payload.RequesterUserID, payload.DriverUserID}
	}

	var errs []error
	notified := 0
	for _, userID := range recipients {
		if userID == uuid.Nil {
			errs = append(errs, fmt.Errorf("recipient user id missing"))
			continue
		}
		notification := &models.Notification{
			UserID:  userID,
			Type:    enums.NotificationTypeCarpoolUpdate,
			Title:   title,
			Message: message,
			Link:    requestLink(payload.RequestID),
		}
		if err := c.repo.Create(ctx, notification); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", userID, err))
			continue
		}
		notified++
	}
	if notified > 0 {
		c.logg.Info(c.logg.WithField(logCtx, "notified", notified), "signature notifications created")
	}
	return multierr.Combine(errs...)
}

func requestLink(requestID uuid.UUID) *string {
	link := fmt.Sprintf("/carpool/requests/%s", requestID)
	return &link
}
