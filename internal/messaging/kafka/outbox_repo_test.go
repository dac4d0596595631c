package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-leaveledger/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOutboxRepoTest(t *testing.T) (kafka.OutboxRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return kafka.NewOutboxRepository(gormDB), mock
}

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     "req-123",
		AggregateType: "leave_request",
		AggregateID:   uuid.New().String(),
		EventType:     "leave.request.approved",
		Topic:         "leave.request.approved",
		Payload:       []byte(`{"request_id":"abc"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := setupOutboxRepoTest(t)
		event := pendingEvent()

		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, event)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative missing topic never reaches the database", func(t *testing.T) {
		repo, mock := setupOutboxRepoTest(t)
		event := pendingEvent()
		event.Topic = ""

		err := repo.Create(ctx, event)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative empty payload rejected", func(t *testing.T) {
		repo, mock := setupOutboxRepoTest(t)
		event := pendingEvent()
		event.Payload = nil

		err := repo.Create(ctx, event)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("returns due rows oldest first", func(t *testing.T) {
		repo, mock := setupOutboxRepoTest(t)
		id := uuid.New().String()
		aggregateID := uuid.New().String()
		retryAt := time.Now().UTC()

		rows := sqlmock.NewRows([]string{
			"id", "aggregate_type", "aggregate_id", "event_type",
			"topic", "payload", "status", "retry_count", "coalesce",
		}).AddRow(
			id, "leave_request", aggregateID, "leave.request.approved",
			"leave.request.approved", []byte(`{}`), kafka.OutboxStatusPending, 0, retryAt,
		)

		mock.ExpectQuery("SELECT(.|\n)+FROM outbox_events").
			WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
			WillReturnRows(rows)

		events, err := repo.ListPending(ctx, 50)

		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, id, events[0].ID)
		assert.Equal(t, "leave.request.approved", events[0].Topic)
		assert.Equal(t, 0, events[0].RetryCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty backlog", func(t *testing.T) {
		repo, mock := setupOutboxRepoTest(t)

		mock.ExpectQuery("SELECT(.|\n)+FROM outbox_events").
			WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "aggregate_type", "aggregate_id", "event_type",
				"topic", "payload", "status", "retry_count", "coalesce",
			}))

		events, err := repo.ListPending(ctx, 10)

		assert.NoError(t, err)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOutboxRepoTest(t)
	id := uuid.New().String()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(kafka.OutboxStatusSent, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSent(ctx, id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOutboxRepoTest(t)
	id := uuid.New().String()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(kafka.OutboxStatusFailed, "broker unreachable", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(ctx, id, "broker unreachable")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, kafka.ValidateOutboxEvent(pendingEvent()))

	noID := pendingEvent()
	noID.ID = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noID))

	badStatus := pendingEvent()
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}
