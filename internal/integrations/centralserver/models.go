package centralserver

import "time"

// OCPP статусы ответа станции на команду
const (
	CommandStatusAccepted = "Accepted"
	CommandStatusRejected = "Rejected"
)

// Tag модель бейджа
type Tag struct {
	ID       string `json:"id"`
	VisualID string `json:"visualID"`
	UserID   string `json:"userID"`
	Active   bool   `json:"active"`
}

// UserSessionContext контекст сессии пользователя на коннекторе
type UserSessionContext struct {
	Tag        *Tag     `json:"tag,omitempty"`
	ErrorCodes []string `json:"errorCodes"`
}

// Connector модель коннектора
type Connector struct {
	ConnectorID          int    `json:"connectorId"`
	Status               string `json:"status"`
	CurrentTransactionID int64  `json:"currentTransactionID"`
}

// ChargingStation модель зарядной станции
type ChargingStation struct {
	ID         string      `json:"id"`
	Inactive   bool        `json:"inactive"`
	Connectors []Connector `json:"connectors"`
}

// ReserveNowArgs аргументы OCPP команды ReserveNow
type ReserveNowArgs struct {
	ConnectorID   int       `json:"connectorId"`
	ExpiryDate    time.Time `json:"expiryDate"`
	IDTag         string    `json:"idTag"`
	ParentIDTag   *string   `json:"parentIdTag,omitempty"`
	ReservationID int64     `json:"reservationId"`
}

// CancelReservationArgs аргументы OCPP команды CancelReservation
type CancelReservationArgs struct {
	ReservationID int64 `json:"reservationId"`
}

type commandRequest struct {
	Args interface{} `json:"args"`
}

// CommandResponse ответ станции на команду
type CommandResponse struct {
	Status string `json:"status"`
}

// IsAccepted returns true if the station accepted the command
func (r *CommandResponse) IsAccepted() bool {
	return r.Status == CommandStatusAccepted
}

// ReservationsAuthorizations права пользователя на список резервирований.
// Отсутствующий флаг означает true.
type ReservationsAuthorizations struct {
	CanListSites     *bool `json:"canListSites,omitempty"`
	CanListSiteAreas *bool `json:"canListSiteAreas,omitempty"`
	CanListCompanies *bool `json:"canListCompanies,omitempty"`
	CanListUsers     *bool `json:"canListUsers,omitempty"`
	CanListTags      *bool `json:"canListTags,omitempty"`
	CanExport        *bool `json:"canExport,omitempty"`
	CanCreate        *bool `json:"canCreate,omitempty"`
	CanDelete        *bool `json:"canDelete,omitempty"`
	CanUpdate        *bool `json:"canUpdate,omitempty"`
}

// ErrorResponse модель ошибки от центрального сервера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
