package assign_user

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
)

const (
	route = "PUT /reservation-sessions/{id}/user"

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

// Handle PUT /api/v1/reservation-sessions/{sessionId}/user
// Смена пользователя сбрасывает бейдж и запускает новый запрос контекста сессии пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req AssignUserRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	snap, err := h.manager.AssignUser(r.Context(), sessionID, req.ToDomain())
	if err != nil {
		session_view.RespondError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - User assigned: session_id=%s, user_id=%s, valid=%t",
		route, sessionID, req.ID, snap.Verdict.Valid)
	handlers.RespondJSON(w, http.StatusOK, session_view.FromSnapshot(snap))
}
