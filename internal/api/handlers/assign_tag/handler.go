package assign_tag

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
)

const (
	route = "PUT /reservation-sessions/{id}/tag"

	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/reservation-sessions/{sessionId}/tag
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req AssignTagRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	snap, err := h.manager.AssignTag(sessionID, req.ToDomain())
	if err != nil {
		session_view.RespondError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Tag assigned: session_id=%s, tag_id=%s, valid=%t",
		route, sessionID, req.ID, snap.Verdict.Valid)
	handlers.RespondJSON(w, http.StatusOK, session_view.FromSnapshot(snap))
}
