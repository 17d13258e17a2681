package events

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Топики и типы событий резервирований
const (
	TopicReservationEvents = "reservation-events"

	EventTypeReservationCreated   = "reservation.created"
	EventTypeReservationUpdated   = "reservation.updated"
	EventTypeReservationCancelled = "reservation.cancelled"
	EventTypeReservationDeleted   = "reservation.deleted"
)

// ReservationEvent событие жизненного цикла резервирования
type ReservationEvent struct {
	EventID           string                   `json:"event_id"`
	EventType         string                   `json:"event_type"`
	ReservationID     int64                    `json:"reservation_id"`
	ChargingStationID string                   `json:"charging_station_id"`
	ConnectorID       int                      `json:"connector_id"`
	UserID            string                   `json:"user_id,omitempty"`
	IDTag             string                   `json:"id_tag,omitempty"`
	Status            domain.ReservationStatus `json:"status,omitempty"`
	Type              domain.ReservationType   `json:"type,omitempty"`
	ExpiryDate        *time.Time               `json:"expiry_date,omitempty"`
	Timestamp         time.Time                `json:"timestamp"`
}

// NewReservationEvent создает событие по резервированию
func NewReservationEvent(eventType string, r *domain.Reservation, eventID string, now time.Time) ReservationEvent {
	event := ReservationEvent{
		EventID:           eventID,
		EventType:         eventType,
		ReservationID:     r.ID,
		ChargingStationID: r.ChargingStationID,
		ConnectorID:       r.ConnectorID,
		UserID:            r.UserID,
		IDTag:             r.IDTag,
		Status:            r.Status,
		Type:              r.Type,
		Timestamp:         now.UTC(),
	}
	if !r.ExpiryDate.IsZero() {
		expiry := r.ExpiryDate.UTC()
		event.ExpiryDate = &expiry
	}
	return event
}
