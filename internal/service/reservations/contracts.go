package reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/centralserver"
)

// ReservationRepository интерфейс репозитория резервирований
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ReservationFilter, paging domain.Paging, sorting domain.Sorting) (*domain.ReservationPage, error)
}

// CentralServerClient интерфейс клиента центрального сервера
type CentralServerClient interface {
	FetchUserSessionContext(ctx context.Context, userID, stationID string, connectorID int) (*domain.EligibilityFacts, error)
	GetChargingStation(ctx context.Context, stationID string) (*domain.ChargingStation, error)
	ReserveNow(ctx context.Context, stationID string, args centralserver.ReserveNowArgs) (*centralserver.CommandResponse, error)
	CancelReservation(ctx context.Context, stationID string, reservationID int64) (*centralserver.CommandResponse, error)
	GetReservationsAuthorizations(ctx context.Context, userID string) (domain.ReservationsAuthorizations, error)
}

// ActionGate интерфейс вычисления разрешённых действий
type ActionGate interface {
	RowActions(reservation *domain.Reservation, connectorStatus domain.ConnectorStatus) domain.ActionSet
	ToolbarActions(auth domain.ReservationsAuthorizations) domain.ActionSet
	CheckCancelReservation(station *domain.ChargingStation, connector *domain.Connector) error
}

// EventPublisher интерфейс публикации событий резервирований
type EventPublisher interface {
	Publish(eventType string, r *domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
