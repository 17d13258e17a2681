package open_session

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
)

const (
	route = "POST /reservation-sessions"

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

// Handle POST /api/v1/reservation-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	operatorID, _ := middleware.GetUserID(r.Context())

	snap, err := h.manager.Open(r.Context(), req.ToOpenRequest(operatorID))
	if err != nil {
		session_view.RespondError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Session opened: session_id=%s, station=%s, connector=%d, operator=%s",
		route, snap.ID, req.ChargingStationID, req.ConnectorID, operatorID)
	handlers.RespondJSON(w, http.StatusCreated, session_view.FromSnapshot(snap))
}
