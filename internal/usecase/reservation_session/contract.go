package reservation_session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/resolve_eligibility"
)

// EligibilityResolver интерфейс резолвера контекста сессии пользователя
type EligibilityResolver interface {
	Execute(ctx context.Context, req *resolve_eligibility.Request) (*domain.EligibilityFacts, error)
}

// ReservationGateway интерфейс backend'а резервирований
type ReservationGateway interface {
	CreateOrReserve(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
}

// ChargingStationProvider источник состояния зарядных станций
type ChargingStationProvider interface {
	GetChargingStation(ctx context.Context, id string) (*domain.ChargingStation, error)
}

// ReserveNowGate проверка возможности reserve-now на коннекторе
type ReserveNowGate interface {
	CheckReserveNow(station *domain.ChargingStation, connector *domain.Connector) error
}

// MetricsRecorder интерфейс для метрик переходов сессии
type MetricsRecorder interface {
	RecordSessionTransition(state string)
	RecordVerdict(reason string)
}

// SessionGauge приёмник количества открытых сессий
type SessionGauge interface {
	SetActiveSessions(n int)
}

// IDGenerator генератор идентификаторов
type IDGenerator interface {
	NewSessionID() string
	NewReservationID() int64
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator генерирует идентификаторы на основе UUID
type UUIDGenerator struct{}

// NewSessionID возвращает новый идентификатор сессии
func (UUIDGenerator) NewSessionID() string {
	return uuid.NewString()
}

// NewReservationID возвращает предварительный ID резервирования, который оператор может изменить
func (UUIDGenerator) NewReservationID() int64 {
	return int64(uuid.New().ID())
}
