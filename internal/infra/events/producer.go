package events

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// MetricsRecorder интерфейс для метрик публикации
type MetricsRecorder interface {
	RecordEventPublished(event string, err error)
}

// Logger интерфейс логгера producer'а
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer публикует события резервирований в Kafka
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	metrics  MetricsRecorder
	logger   Logger
}

// NewProducer создает Kafka producer
func NewProducer(brokers []string, topic string, metrics MetricsRecorder, logger Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return newProducer(producer, topic, metrics, logger), nil
}

func newProducer(producer sarama.SyncProducer, topic string, metrics MetricsRecorder, logger Logger) *Producer {
	if topic == "" {
		topic = TopicReservationEvents
	}
	return &Producer{
		producer: producer,
		topic:    topic,
		metrics:  metrics,
		logger:   logger,
	}
}

// Publish публикует событие по резервированию. Ключ сообщения = ID резервирования.
func (p *Producer) Publish(eventType string, r *domain.Reservation) error {
	event := NewReservationEvent(eventType, r, uuid.NewString(), time.Now())

	err := p.send(strconv.FormatInt(r.ID, 10), event)
	if p.metrics != nil {
		p.metrics.RecordEventPublished(eventType, err)
	}
	return err
}

func (p *Producer) send(key string, event ReservationEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(eventData),
		Timestamp: event.Timestamp,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Error("Events: failed to send %s for key=%s to topic=%s: %v", event.EventType, key, p.topic, err)
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Debug("Events: %s for key=%s sent to topic=%s, partition=%d offset=%d",
		event.EventType, key, p.topic, partition, offset)

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	p.logger.Info("Events: closing producer for topic=%s", p.topic)
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

// NopPublisher публикатор для запуска без Kafka
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(string, *domain.Reservation) error {
	return nil
}

// Close ничего не делает
func (NopPublisher) Close() error {
	return nil
}
