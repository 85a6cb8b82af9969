package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/outbox/payloads"
)

type fakeNotificationRepo struct {
	created []*models.Notification
	err     error
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, notification)
	return nil
}

func consumerForTest(t *testing.T, repo repository) *Consumer {
	t.Helper()
	return &Consumer{
		repo: repo,
		logg: logger.New(logger.Options{ServiceName: "consumer-test"}),
	}
}

func marshalPayload(t *testing.T, payload any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestHandleEventProposalCreatedNotifiesRequester(t *testing.T) {
	repo := &fakeNotificationRepo{}
	consumer := consumerForTest(t, repo)

	requester := uuid.New()
	requestID := uuid.New()
	data := marshalPayload(t, payloads.ProposalChangedEvent{
		RequestID:       requestID,
		ProposalID:      uuid.New(),
		DriverUserID:    uuid.New(),
		RequesterUserID: requester,
	})

	if err := consumer.handleEvent(context.Background(), enums.EventTransportProposalCreated, data, context.Background()); err != nil {
		t.Fatalf("handleEvent() error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	got := repo.created[0]
	if got.UserID != requester {
		t.Fatalf("expected requester %s notified, got %s", requester, got.UserID)
	}
	if got.Type != enums.NotificationTypeCarpoolUpdate {
		t.Fatalf("unexpected type %s", got.Type)
	}
	if got.Link == nil || *got.Link != "/carpool/requests/"+requestID.String() {
		t.Fatalf("unexpected link %v", got.Link)
	}
}

func TestHandleEventProposalChangedRequiresRequester(t *testing.T) {
	repo := &fakeNotificationRepo{}
	consumer := consumerForTest(t, repo)

	data := marshalPayload(t, payloads.ProposalChangedEvent{
		RequestID:    uuid.New(),
		ProposalID:   uuid.New(),
		DriverUserID: uuid.New(),
	})

	if err := consumer.handleEvent(context.Background(), enums.EventTransportProposalUpdated, data, context.Background()); err == nil {
		t.Fatal("expected error for missing requester")
	}
	if len(repo.created) != 0 {
		t.Fatalf("no notification expected, got %d", len(repo.created))
	}
}

func TestHandleEventAcceptedNotifiesDriver(t *testing.T) {
	repo := &fakeNotificationRepo{}
	consumer := consumerForTest(t, repo)

	driver := uuid.New()
	data := marshalPayload(t, payloads.ProposalAcceptedEvent{
		RequestID:       uuid.New(),
		ProposalID:      uuid.New(),
		DriverUserID:    driver,
		RequesterUserID: uuid.New(),
	})

	if err := consumer.handleEvent(context.Background(), enums.EventTransportAccepted, data, context.Background()); err != nil {
		t.Fatalf("handleEvent() error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	if repo.created[0].UserID != driver {
		t.Fatalf("expected driver notified, got %s", repo.created[0].UserID)
	}
}

func TestHandleEventPartialSignatureNotifiesCounterparty(t *testing.T) {
	repo := &fakeNotificationRepo{}
	consumer := consumerForTest(t, repo)

	requester := uuid.New()
	driver := uuid.New()
	data := marshalPayload(t, payloads.SignatureRecordedEvent{
		RequestID:       uuid.New(),
		ProposalID:      uuid.New(),
		Role:            enums.SignerRoleRequester,
		SignerUserID:    requester,
		RequesterUserID: requester,
		DriverUserID:    driver,
		FullySigned:     false,
	})

	if err := consumer.handleEvent(context.Background(), enums.EventTransportSigned, data, context.Background()); err != nil {
		t.Fatalf("handleEvent() error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	if repo.created[0].UserID != driver {
		t.Fatalf("requester signed, so driver should be notified; got %s", repo.created[0].UserID)
	}
}

func TestHandleEventFullySignedNotifiesBothParties(t *testing.T) {
	repo := &fakeNotificationRepo{}
	consumer := consumerForTest(t, repo)

	requester := uuid.New()
	driver := uuid.New()
	data := marshalPayload(t, payloads.SignatureRecordedEvent{
		RequestID:       uuid.New(),
		ProposalID:      uuid.New(),
		Role:            enums.SignerRoleDriver,
		SignerUserID:    driver,
		RequesterUserID: requester,
		DriverUserID:    driver,
		FullySigned:     true,
	})

	if err := consumer.handleEvent(context.Background(), enums.EventTransportFullySigned, data, context.Background()); err != nil {
		t.Fatalf("handleEvent() error: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected both parties notified, got %d", len(repo.created))
	}
	recipients := map[uuid.UUID]bool{}
	for _, n := range repo.created {
		recipients[n.UserID] = true
		if n.Title != "Ride confirmed" {
			t.Fatalf("unexpected title %s", n.Title)
		}
	}
	if !recipients[requester] || !recipients[driver] {
		t.Fatal("expected requester and driver among recipients")
	}
}

func TestHandleEventSignedPropagatesRepoError(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("insert failed")}
	consumer := consumerForTest(t, repo)

	data := marshalPayload(t, payloads.SignatureRecordedEvent{
		RequestID:       uuid.New(),
		ProposalID:      uuid.New(),
		Role:            enums.SignerRoleDriver,
		RequesterUserID: uuid.New(),
		DriverUserID:    uuid.New(),
	})

	if err := consumer.handleEvent(context.Background(), enums.EventTransportSigned, data, context.Background()); err == nil {
		t.Fatal("expected repo error to surface")
	}
}

func TestHandleEventIgnoresUnhandledType(t *testing.T) {
	repo := &fakeNotificationRepo{}
	consumer := consumerForTest(t, repo)

	if err := consumer.handleEvent(context.Background(), enums.EventTransportRequestCreated, marshalPayload(t, map[string]any{}), context.Background()); err != nil {
		t.Fatalf("handleEvent() error: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no notification expected, got %d", len(repo.created))
	}
}
