package submit_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

const route = "POST /reservation-sessions/{id}/submit"

type Handler struct {
	manager SessionManager
	logger  Logger
}

func NewHandler(manager SessionManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservation-sessions/{sessionId}/submit
// Отказ станции и сетевая ошибка возвращаются в снимке (failure), сессия остаётся открытой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snap, err := h.manager.Submit(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, reservation_session.ErrNotValid) {
			h.logger.Warn("%s - Draft is not valid: session_id=%s, reason=%s",
				route, sessionID, snap.Verdict.Reason)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, session_view.FromSnapshot(snap))
			return
		}
		session_view.RespondError(w, h.logger, route, err)
		return
	}

	if snap.Outcome == reservation_session.OutcomeSaved {
		h.logger.Info("%s - Reservation saved: session_id=%s, reservation_id=%d",
			route, sessionID, snap.Draft.ReservationID)
	} else {
		h.logger.Warn("%s - Reservation not saved: session_id=%s, failure=%s",
			route, sessionID, snap.Failure)
	}
	handlers.RespondJSON(w, http.StatusOK, session_view.FromSnapshot(snap))
}
