package open_session

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

// UserRequest предвыбранный пользователь
type UserRequest struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"firstName"`
	Name      string `json:"name"`
}

// OpenSessionRequest HTTP request model
type OpenSessionRequest struct {
	ChargingStationID string       `json:"chargingStationId" validate:"required_without=ReservationID"`
	ConnectorID       int          `json:"connectorId" validate:"required_without=ReservationID,gte=0"`
	ReservationID     *int64       `json:"reservationId,omitempty" validate:"omitempty,gt=0"`
	ReadOnly          bool         `json:"readOnly,omitempty"`
	User              *UserRequest `json:"user,omitempty"`
	AssignSelf        bool         `json:"assignSelf,omitempty"` // предвыбрать текущего оператора
}

// ToOpenRequest конвертирует HTTP request в модель use case
func (r *OpenSessionRequest) ToOpenRequest(operatorID string) *reservation_session.OpenRequest {
	req := &reservation_session.OpenRequest{
		ChargingStationID: r.ChargingStationID,
		ConnectorID:       r.ConnectorID,
		ReservationID:     r.ReservationID,
		ReadOnly:          r.ReadOnly,
	}
	if r.ReservationID != nil {
		return req
	}

	switch {
	case r.User != nil:
		req.User = &domain.User{
			ID:        r.User.ID,
			FirstName: r.User.FirstName,
			Name:      r.User.Name,
		}
	case r.AssignSelf && operatorID != "":
		req.User = &domain.User{ID: operatorID}
	}

	return req
}
