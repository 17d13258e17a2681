package check_reserve_now

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type StationProvider interface {
	GetChargingStation(ctx context.Context, stationID string) (*domain.ChargingStation, error)
}

type ReserveNowGate interface {
	CheckReserveNow(station *domain.ChargingStation, connector *domain.Connector) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
