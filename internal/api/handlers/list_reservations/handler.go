package list_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: chargingStationId, connectorId, userId, status, type, expiryFrom, expiryTo,
// limit, skip, sort (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: user_id=%s, count=%d",
		userID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
