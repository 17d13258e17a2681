package close_session

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

const (
	route = "DELETE /reservation-sessions/{id}"

	msgInvalidForce = "некорректное значение параметра force"
)

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

// Handle DELETE /api/v1/reservation-sessions/{sessionId}
// Query params: force (опционально) - закрыть диалог даже во время отправки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	force := false
	if forceStr := r.URL.Query().Get("force"); forceStr != "" {
		var err error
		force, err = strconv.ParseBool(forceStr)
		if err != nil {
			h.logger.Warn("%s - Invalid force value: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidForce)
			return
		}
	}

	var (
		snap reservation_session.Snapshot
		err  error
	)
	if force {
		snap, err = h.manager.Close(sessionID)
	} else {
		snap, err = h.manager.Cancel(sessionID)
	}
	if err != nil {
		session_view.RespondError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Session closed: session_id=%s, force=%t", route, sessionID, force)
	handlers.RespondJSON(w, http.StatusOK, session_view.FromSnapshot(snap))
}
