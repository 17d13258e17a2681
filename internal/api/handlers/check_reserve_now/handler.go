package check_reserve_now

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidConnectorID = "некорректный ID коннектора"
	msgStationNotFound    = "зарядная станция не найдена"
	msgConnectorNotFound  = "коннектор не найден"
)

type Handler struct {
	stations StationProvider
	gate     ReserveNowGate
	logger   Logger
}

func NewHandler(stations StationProvider, gate ReserveNowGate, logger Logger) *Handler {
	return &Handler{
		stations: stations,
		gate:     gate,
		logger:   logger,
	}
}

// Handle GET /api/v1/charging-stations/{stationId}/connectors/{connectorId}/reserve-now
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID := vars["stationId"]

	connectorID, err := strconv.Atoi(vars["connectorId"])
	if err != nil || connectorID <= 0 {
		h.logger.Warn("GET /charging-stations/{id}/connectors/{id}/reserve-now - Invalid connector ID: %s",
			vars["connectorId"])
		handlers.RespondBadRequest(w, msgInvalidConnectorID)
		return
	}

	station, err := h.stations.GetChargingStation(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, domain.ErrChargingStationNotFound) {
			h.logger.Warn("GET /charging-stations/{id}/connectors/{id}/reserve-now - Station not found: station=%s",
				stationID)
			handlers.RespondNotFound(w, msgStationNotFound)
			return
		}
		h.logger.Error("GET /charging-stations/{id}/connectors/{id}/reserve-now - Failed to get station=%s: %v",
			stationID, err)
		handlers.RespondInternalError(w)
		return
	}

	connector, ok := station.Connector(connectorID)
	if !ok {
		handlers.RespondNotFound(w, msgConnectorNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromGateError(h.gate.CheckReserveNow(station, connector)))
}
