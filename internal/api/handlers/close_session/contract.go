package close_session

import (
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type SessionManager interface {
	Cancel(id string) (reservation_session.Snapshot, error)
	Close(id string) (reservation_session.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
