package events

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type recordingMetrics struct {
	events []string
	errs   []error
}

func (m *recordingMetrics) RecordEventPublished(event string, err error) {
	m.events = append(m.events, event)
	m.errs = append(m.errs, err)
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:                42,
		ChargingStationID: "cs-1",
		ConnectorID:       2,
		IDTag:             "t1",
		UserID:            "u1",
		ExpiryDate:        time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
		Status:            domain.ReservationStatusInProgress,
		Type:              domain.ReservationTypeReserveNow,
	}
}

func TestProducer_Publish(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	metrics := &recordingMetrics{}
	producer := newProducer(mockProducer, "", metrics, &recordingLogger{})

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicReservationEvents, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "42", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var event ReservationEvent
		require.NoError(t, json.Unmarshal(value, &event))
		assert.Equal(t, EventTypeReservationCreated, event.EventType)
		assert.Equal(t, "cs-1", event.ChargingStationID)
		assert.NotEmpty(t, event.EventID)
		return nil
	})

	err := producer.Publish(EventTypeReservationCreated, testReservation())

	require.NoError(t, err)
	assert.Equal(t, []string{EventTypeReservationCreated}, metrics.events)
	assert.NoError(t, metrics.errs[0])
	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	metrics := &recordingMetrics{}
	logger := &recordingLogger{}
	producer := newProducer(mockProducer, "custom-topic", metrics, logger)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.Publish(EventTypeReservationCancelled, testReservation())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Error(t, metrics.errs[0])
	if assert.Len(t, logger.errors, 1) {
		assert.Contains(t, logger.errors[0], "key=42")
		assert.Contains(t, logger.errors[0], "topic=custom-topic")
	}
	require.NoError(t, mockProducer.Close())
}

func TestNewReservationEvent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	event := NewReservationEvent(EventTypeReservationDeleted, &domain.Reservation{ID: 7}, "evt-1", now)

	assert.Equal(t, "evt-1", event.EventID)
	assert.Equal(t, int64(7), event.ReservationID)
	assert.Nil(t, event.ExpiryDate)
	assert.Equal(t, time.UTC, event.Timestamp.Location())
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(EventTypeReservationCreated, testReservation()))
	assert.NoError(t, p.Close())
}
