package reservation_session

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

// State состояние сессии формы
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSubmitting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Outcome итог закрытой сессии
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSaved
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeCancelled:
		return "cancelled"
	}
	return ""
}

// FailureKind тип ошибки, которую нужно показать оператору
type FailureKind string

const (
	FailureNone             FailureKind = ""
	FailureResolutionFailed FailureKind = "resolution_failed"
	FailureSubmitRejected   FailureKind = "submit_rejected"
	FailureTransport        FailureKind = "transport_failure"
)

// Snapshot неизменяемая копия состояния сессии
type Snapshot struct {
	ID          string
	State       State
	Outcome     Outcome
	ReadOnly    bool
	Draft       domain.Draft
	Facts       *domain.EligibilityFacts
	Verdict     validate_reservation.Verdict
	Failure     FailureKind
	Message     string
	Request     *domain.ReservationRequest // итоговый payload для Closed(Saved)
	Reservation *domain.Reservation        // подтверждение backend'а для Closed(Saved)
}

// CanSubmit returns true if submit is currently permitted
func (s Snapshot) CanSubmit() bool {
	return s.State == StateReady && s.Verdict.Valid && !s.ReadOnly
}

// OpenRequest параметры открытия сессии
type OpenRequest struct {
	ChargingStationID string
	ConnectorID       int
	User              *domain.User // предвыбранный пользователь (например, сам оператор)
	ReservationID     *int64       // редактирование/просмотр существующего резервирования
	ReadOnly          bool
}
