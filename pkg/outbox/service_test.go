package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	outboxEvents := `
CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`
	require.NoError(t, db.Exec(outboxEvents).Error)
	return db
}

func newOutboxService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	return NewService(NewRepository(db), logger.New(logger.Options{ServiceName: "outbox-test"}))
}

func TestEmitWrapsPayloadInEnvelope(t *testing.T) {
	db := setupOutboxTestDB(t)
	svc := newOutboxService(t, db)

	aggregateID := uuid.New()
	actor := &ActorRef{UserID: uuid.New(), Role: "guardian"}
	event := DomainEvent{
		EventType:     enums.EventTransportAccepted,
		AggregateType: enums.AggregateTransportRequest,
		AggregateID:   aggregateID,
		Actor:         actor,
		Data:          map[string]string{"proposal_id": uuid.NewString()},
		Version:       1,
	}

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, event)
	}))

	var row models.OutboxEvent
	require.NoError(t, db.Where("aggregate_id = ?", aggregateID).First(&row).Error)
	assert.Equal(t, enums.EventTransportAccepted, row.EventType)
	assert.Equal(t, enums.AggregateTransportRequest, row.AggregateType)
	assert.Nil(t, row.PublishedAt)

	var envelope PayloadEnvelope
	require.NoError(t, json.Unmarshal(row.Payload, &envelope))
	assert.Equal(t, 1, envelope.Version)
	assert.NotEmpty(t, envelope.EventID)
	assert.False(t, envelope.OccurredAt.IsZero())
	require.NotNil(t, envelope.Actor)
	assert.Equal(t, actor.UserID, envelope.Actor.UserID)
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := newOutboxService(t, setupOutboxTestDB(t))
	err := svc.Emit(context.Background(), nil, DomainEvent{})
	require.Error(t, err)
}

func TestEmitIfNotExistsDeduplicatesPerAggregate(t *testing.T) {
	db := setupOutboxTestDB(t)
	svc := newOutboxService(t, db)

	aggregateID := uuid.New()
	event := DomainEvent{
		EventType:     enums.EventTransportFullySigned,
		AggregateType: enums.AggregateTransportRequest,
		AggregateID:   aggregateID,
		Data:          map[string]string{},
		Version:       1,
		OccurredAt:    time.Now(),
	}

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := svc.EmitIfNotExists(context.Background(), tx, event); err != nil {
			return err
		}
		return svc.EmitIfNotExists(context.Background(), tx, event)
	}))

	var count int64
	require.NoError(t, db.Model(&models.OutboxEvent{}).
		Where("event_type = ? AND aggregate_id = ?", enums.EventTransportFullySigned, aggregateID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMarkPublishedTxStampsRow(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	eventID := uuid.New()
	row := models.OutboxEvent{
		ID:            eventID,
		EventType:     enums.EventTransportSigned,
		AggregateType: enums.AggregateTransportRequest,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{"version":1,"data":{}}`),
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Insert(tx, row)
	}))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.MarkPublishedTx(tx, eventID)
	}))

	var updated models.OutboxEvent
	require.NoError(t, db.Where("id = ?", eventID).First(&updated).Error)
	assert.NotNil(t, updated.PublishedAt)
}
