package open_session

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type SessionManager interface {
	Open(ctx context.Context, req *reservation_session.OpenRequest) (reservation_session.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
