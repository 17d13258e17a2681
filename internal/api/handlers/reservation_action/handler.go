package reservation_action

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/permissions"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

const (
	route = "POST /reservations/{id}/actions/{action}"

	msgInvalidReservationID = "некорректный ID резервирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgUnknownAction        = "неизвестное действие"
	msgNotApplicable        = "действие недоступно для резервирования"
	msgForbidden            = "действие запрещено"
	msgNotFound             = "резервирование не найдено"
	msgCannotCancel         = "резервирование не может быть отменено"
	msgRejected             = "станция отклонила отмену резервирования"
)

type Handler struct {
	service ReservationService
	gate    ActionGate
	manager SessionManager
	logger  Logger
}

func NewHandler(service ReservationService, gate ActionGate, manager SessionManager, logger Logger) *Handler {
	return &Handler{
		service: service,
		gate:    gate,
		manager: manager,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/actions/{action}
// view/edit открывают сессию формы, cancel и delete выполняются сразу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("%s - Invalid reservation ID: %s", route, vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	action, err := domain.ParseAction(vars["action"])
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	ctx := r.Context()
	reservation, err := h.service.Get(ctx, reservationID)
	if err != nil {
		h.respondError(w, reservationID, action, err)
		return
	}

	auth, err := h.service.Authorizations(ctx, userID)
	if err != nil {
		h.respondError(w, reservationID, action, err)
		return
	}

	if err := h.gate.Authorize(action, reservation, h.connectorStatus(ctx, reservation), auth); err != nil {
		h.respondError(w, reservationID, action, err)
		return
	}

	var (
		status int
		body   interface{}
	)
	openSession := func(readOnly bool) func() error {
		return func() error {
			snap, err := h.manager.Open(ctx, &reservation_session.OpenRequest{
				ReservationID: &reservationID,
				ReadOnly:      readOnly,
			})
			if err != nil {
				return err
			}
			status, body = http.StatusCreated, session_view.FromSnapshot(snap)
			return nil
		}
	}

	err = permissions.Dispatch(action, permissions.Handlers{
		View: openSession(true),
		Edit: openSession(false),
		Cancel: func() error {
			cancelled, err := h.service.Cancel(ctx, reservationID)
			if err != nil {
				return err
			}
			status, body = http.StatusOK, session_view.FromReservation(cancelled)
			return nil
		},
		Delete: func() error {
			if err := h.service.Delete(ctx, reservationID); err != nil {
				return err
			}
			status = http.StatusNoContent
			return nil
		},
	})
	if err != nil {
		h.respondError(w, reservationID, action, err)
		return
	}

	h.logger.Info("%s - Action performed: reservation_id=%d, action=%s, user_id=%s",
		route, reservationID, action, userID)
	handlers.RespondJSON(w, status, body)
}

// connectorStatus статус коннектора резервирования; пустой, если станция недоступна
func (h *Handler) connectorStatus(ctx context.Context, reservation *domain.Reservation) domain.ConnectorStatus {
	station, err := h.service.GetChargingStation(ctx, reservation.ChargingStationID)
	if err != nil {
		h.logger.Warn("%s - Failed to get station=%s: %v", route, reservation.ChargingStationID, err)
		return ""
	}
	connector, ok := station.Connector(reservation.ConnectorID)
	if !ok {
		return ""
	}
	return connector.Status
}

func (h *Handler) respondError(w http.ResponseWriter, reservationID int64, action domain.Action, err error) {
	switch {
	case errors.Is(err, domain.ErrReservationNotFound):
		h.logger.Warn("%s - Reservation not found: reservation_id=%d", route, reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, permissions.ErrActionNotPermitted):
		h.logger.Warn("%s - Action not permitted: reservation_id=%d, action=%s", route, reservationID, action)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, permissions.ErrActionNotApplicable):
		h.logger.Warn("%s - Action not applicable: reservation_id=%d, action=%s", route, reservationID, action)
		handlers.RespondBadRequest(w, msgNotApplicable)

	case errors.Is(err, domain.ErrUnknownAction):
		handlers.RespondBadRequest(w, msgUnknownAction)

	case errors.Is(err, reservations.ErrCannotCancel):
		h.logger.Warn("%s - Cannot cancel: reservation_id=%d", route, reservationID)
		handlers.RespondConflict(w, msgCannotCancel)

	case errors.Is(err, domain.ErrReservationRejected):
		h.logger.Warn("%s - Cancel rejected by station: reservation_id=%d", route, reservationID)
		handlers.RespondConflict(w, msgRejected)

	default:
		session_view.RespondError(w, h.logger, route, err)
	}
}
