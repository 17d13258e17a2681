package assign_tag

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type SessionManager interface {
	AssignTag(id string, tag domain.Tag) (reservation_session.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
