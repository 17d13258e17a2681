package check_reserve_now

import (
	"errors"

	"github.com/m04kA/SMC-ReservationService/internal/service/permissions"
)

// ReserveNowResponse HTTP response model
type ReserveNowResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

// FromGateError конвертирует решение гейта в HTTP модель
func FromGateError(err error) *ReserveNowResponse {
	switch {
	case err == nil:
		return &ReserveNowResponse{Available: true}
	case errors.Is(err, permissions.ErrStationInactive):
		return &ReserveNowResponse{Reason: "station_inactive", Message: "зарядная станция неактивна"}
	case errors.Is(err, permissions.ErrTransactionInProgress):
		return &ReserveNowResponse{Reason: "transaction_in_progress", Message: "на коннекторе идёт зарядная сессия"}
	default:
		return &ReserveNowResponse{Reason: "connector_not_available", Message: "коннектор недоступен для резервирования"}
	}
}
