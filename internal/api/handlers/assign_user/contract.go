package assign_user

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type SessionManager interface {
	AssignUser(ctx context.Context, id string, user domain.User) (reservation_session.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
