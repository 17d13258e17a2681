package session_view

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/permissions"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

const (
	msgSessionNotFound      = "сессия не найдена"
	msgSessionClosed        = "сессия уже закрыта"
	msgReadOnly             = "резервирование открыто только для просмотра"
	msgSubmitInProgress     = "резервирование отправляется, дождитесь ответа"
	msgInvalidTransition    = "операция недоступна в текущем состоянии формы"
	msgStaleResponse        = "запрос устарел, форма уже изменена"
	msgInvalidInput         = "некорректные входные данные"
	msgStationNotFound      = "зарядная станция не найдена"
	msgConnectorNotFound    = "коннектор не найден"
	msgReservationNotFound  = "резервирование не найдено"
	msgStationInactive      = "зарядная станция неактивна"
	msgConnectorUnavailable = "коннектор недоступен для резервирования"
	msgTransactionRunning   = "на коннекторе идёт зарядная сессия"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondError отвечает на ошибку операции над сессией формы
func RespondError(w http.ResponseWriter, logger Logger, route string, err error) {
	switch {
	case errors.Is(err, reservation_session.ErrSessionNotFound):
		logger.Warn("%s - Session not found: %v", route, err)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, reservation_session.ErrSessionClosed):
		logger.Warn("%s - Session closed: %v", route, err)
		handlers.RespondConflict(w, msgSessionClosed)

	case errors.Is(err, reservation_session.ErrReadOnly):
		logger.Warn("%s - Session is read-only: %v", route, err)
		handlers.RespondForbidden(w, msgReadOnly)

	case errors.Is(err, reservation_session.ErrSubmitInProgress):
		logger.Warn("%s - Submit in progress: %v", route, err)
		handlers.RespondConflict(w, msgSubmitInProgress)

	case errors.Is(err, reservation_session.ErrInvalidTransition):
		logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, reservation_session.ErrStaleResponse):
		logger.Warn("%s - Stale response: %v", route, err)
		handlers.RespondConflict(w, msgStaleResponse)

	case errors.Is(err, reservation_session.ErrInvalidInput):
		logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, domain.ErrChargingStationNotFound):
		logger.Warn("%s - Charging station not found: %v", route, err)
		handlers.RespondNotFound(w, msgStationNotFound)

	case errors.Is(err, reservation_session.ErrConnectorNotFound):
		logger.Warn("%s - Connector not found: %v", route, err)
		handlers.RespondNotFound(w, msgConnectorNotFound)

	case errors.Is(err, domain.ErrReservationNotFound):
		logger.Warn("%s - Reservation not found: %v", route, err)
		handlers.RespondNotFound(w, msgReservationNotFound)

	case errors.Is(err, permissions.ErrStationInactive):
		logger.Warn("%s - Station inactive: %v", route, err)
		handlers.RespondConflict(w, msgStationInactive)

	case errors.Is(err, permissions.ErrConnectorNotAvailable):
		logger.Warn("%s - Connector not available: %v", route, err)
		handlers.RespondConflict(w, msgConnectorUnavailable)

	case errors.Is(err, permissions.ErrTransactionInProgress):
		logger.Warn("%s - Transaction in progress: %v", route, err)
		handlers.RespondConflict(w, msgTransactionRunning)

	default:
		logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
