package session_view

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

// Сообщения оператору по причинам вердикта
var reasonMessages = map[validate_reservation.Reason]string{
	validate_reservation.ReasonNoPaymentMethod:         "у пользователя не настроен способ оплаты",
	validate_reservation.ReasonGeneralEligibilityError: "пользователь не может начать зарядную сессию",
	validate_reservation.ReasonMissingTag:              "не выбран бейдж",
	validate_reservation.ReasonInactiveTag:             "выбранный бейдж неактивен",
	validate_reservation.ReasonAmbiguousType:           "тип резервирования не соответствует датам",
	validate_reservation.ReasonInvalidExpiry:           "срок действия должен быть в будущем",
	validate_reservation.ReasonInvalidDateRange:        "некорректный интервал дат",
}

var failureMessages = map[reservation_session.FailureKind]string{
	reservation_session.FailureResolutionFailed: "не удалось получить данные пользователя",
	reservation_session.FailureSubmitRejected:   "резервирование отклонено",
	reservation_session.FailureTransport:        "не удалось связаться с сервером",
}

// Draft HTTP модель черновика
type Draft struct {
	ChargingStationID string     `json:"chargingStationId"`
	ConnectorID       int        `json:"connectorId"`
	ReservationID     int64      `json:"reservationId"`
	UserID            string     `json:"userId,omitempty"`
	UserFullName      string     `json:"userFullName,omitempty"`
	TagID             string     `json:"tagId,omitempty"`
	TagVisualID       string     `json:"tagVisualId,omitempty"`
	ParentTagID       *string    `json:"parentTagId,omitempty"`
	Type              string     `json:"type"`
	ExpiryDate        time.Time  `json:"expiryDate"`
	FromDate          *time.Time `json:"fromDate,omitempty"`
	ToDate            *time.Time `json:"toDate,omitempty"`
	Existing          bool       `json:"existing"`
}

// Verdict HTTP модель результата валидации
type Verdict struct {
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Failure HTTP модель ошибки последнего обращения к backend'у
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Reservation HTTP модель сохранённого резервирования
type Reservation struct {
	ID                int64      `json:"id"`
	ChargingStationID string     `json:"chargingStationId"`
	ConnectorID       int        `json:"connectorId"`
	UserID            string     `json:"userId,omitempty"`
	IDTag             string     `json:"idTag"`
	ParentIDTag       *string    `json:"parentIdTag,omitempty"`
	ExpiryDate        time.Time  `json:"expiryDate"`
	FromDate          *time.Time `json:"fromDate,omitempty"`
	ToDate            *time.Time `json:"toDate,omitempty"`
	Status            string     `json:"status"`
	Type              string     `json:"type,omitempty"`
	CanUpdate         bool       `json:"canUpdate"`
	CanCancel         bool       `json:"canCancel"`
	CanDelete         bool       `json:"canDelete"`
}

// SessionResponse HTTP модель снимка сессии формы
type SessionResponse struct {
	ID          string       `json:"id"`
	State       string       `json:"state"`
	Outcome     string       `json:"outcome,omitempty"`
	ReadOnly    bool         `json:"readOnly"`
	CanSubmit   bool         `json:"canSubmit"`
	Draft       Draft        `json:"draft"`
	ActiveTagID string       `json:"activeTagId,omitempty"`
	Verdict     Verdict      `json:"verdict"`
	Failure     *Failure     `json:"failure,omitempty"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// FromSnapshot конвертирует снимок сессии в HTTP модель
func FromSnapshot(snap reservation_session.Snapshot) *SessionResponse {
	resp := &SessionResponse{
		ID:        snap.ID,
		State:     snap.State.String(),
		Outcome:   snap.Outcome.String(),
		ReadOnly:  snap.ReadOnly,
		CanSubmit: snap.CanSubmit(),
		Draft: Draft{
			ChargingStationID: snap.Draft.ChargingStationID,
			ConnectorID:       snap.Draft.ConnectorID,
			ReservationID:     snap.Draft.ReservationID,
			UserID:            snap.Draft.UserID,
			UserFullName:      snap.Draft.UserFullName,
			TagID:             snap.Draft.TagID,
			TagVisualID:       snap.Draft.TagVisualID,
			ParentTagID:       snap.Draft.ParentTagID,
			Type:              string(snap.Draft.EffectiveType()),
			ExpiryDate:        snap.Draft.ExpiryDate,
			FromDate:          snap.Draft.FromDate,
			ToDate:            snap.Draft.ToDate,
			Existing:          snap.Draft.IsExisting(),
		},
		Verdict: Verdict{
			Valid:    snap.Verdict.Valid,
			Reason:   string(snap.Verdict.Reason),
			Category: string(snap.Verdict.Reason.Category()),
			Message:  reasonMessages[snap.Verdict.Reason],
		},
	}

	if snap.Facts != nil && snap.Facts.ActiveTag != nil {
		resp.ActiveTagID = snap.Facts.ActiveTag.ID
	}

	if snap.Failure != reservation_session.FailureNone {
		resp.Failure = &Failure{
			Kind:    string(snap.Failure),
			Message: failureMessages[snap.Failure],
			Details: snap.Message,
		}
	}

	if snap.Reservation != nil {
		resp.Reservation = FromReservation(snap.Reservation)
	}

	return resp
}

// FromReservation конвертирует доменное резервирование в HTTP модель
func FromReservation(r *domain.Reservation) *Reservation {
	return &Reservation{
		ID:                r.ID,
		ChargingStationID: r.ChargingStationID,
		ConnectorID:       r.ConnectorID,
		UserID:            r.UserID,
		IDTag:             r.IDTag,
		ParentIDTag:       r.ParentIDTag,
		ExpiryDate:        r.ExpiryDate,
		FromDate:          r.FromDate,
		ToDate:            r.ToDate,
		Status:            string(r.Status),
		Type:              string(r.Type),
		CanUpdate:         r.CanUpdate,
		CanCancel:         r.CanCancel,
		CanDelete:         r.CanDelete,
	}
}
