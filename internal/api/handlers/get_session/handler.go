package get_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
)

const route = "GET /reservation-sessions/{id}"

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

// Handle GET /api/v1/reservation-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snap, err := h.manager.Snapshot(sessionID)
	if err != nil {
		session_view.RespondError(w, h.logger, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session_view.FromSnapshot(snap))
}
