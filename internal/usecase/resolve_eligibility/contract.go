package resolve_eligibility

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SessionContextClient источник контекста сессии пользователя (ReservationGateway)
type SessionContextClient interface {
	FetchUserSessionContext(ctx context.Context, userID, chargingStationID string, connectorID int) (*domain.EligibilityFacts, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
