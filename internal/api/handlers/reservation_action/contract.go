package reservation_action

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type ReservationService interface {
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	Authorizations(ctx context.Context, userID string) (domain.ReservationsAuthorizations, error)
	GetChargingStation(ctx context.Context, stationID string) (*domain.ChargingStation, error)
}

type ActionGate interface {
	Authorize(
		action domain.Action,
		reservation *domain.Reservation,
		connectorStatus domain.ConnectorStatus,
		auth domain.ReservationsAuthorizations,
	) error
}

type SessionManager interface {
	Open(ctx context.Context, req *reservation_session.OpenRequest) (reservation_session.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
