package domain

import "time"

// ReservationStatus статус резервирования, которым владеет backend
type ReservationStatus string

const (
	ReservationStatusScheduled  ReservationStatus = "scheduled"
	ReservationStatusInProgress ReservationStatus = "in_progress"
	ReservationStatusDone       ReservationStatus = "done"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusInactive   ReservationStatus = "inactive"
	ReservationStatusExpired    ReservationStatus = "expired"
)

// IsValid проверяет, что статус входит в известный набор
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusScheduled,
		ReservationStatusInProgress,
		ReservationStatusDone,
		ReservationStatusCancelled,
		ReservationStatusInactive,
		ReservationStatusExpired:
		return true
	}
	return false
}

// IsActive returns true if the reservation still holds the connector
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusScheduled || s == ReservationStatusInProgress
}

// IsTerminal returns true if the reservation can no longer change its state
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusDone || s == ReservationStatusCancelled || s == ReservationStatusExpired
}

// ReservationType тип резервирования
type ReservationType string

const (
	ReservationTypeReserveNow ReservationType = "reserve_now"
	ReservationTypePlanned    ReservationType = "planned_reservation"
)

// IsValid проверяет, что тип входит в известный набор
func (t ReservationType) IsValid() bool {
	return t == ReservationTypeReserveNow || t == ReservationTypePlanned
}

// Reservation подтверждённое backend'ом резервирование коннектора
type Reservation struct {
	ID                int64
	ChargingStationID string
	ConnectorID       int
	ExpiryDate        time.Time
	FromDate          *time.Time // только для planned_reservation
	ToDate            *time.Time // только для planned_reservation
	IDTag             string
	ParentIDTag       *string
	UserID            string
	Status            ReservationStatus
	Type              ReservationType // пустая строка, если тип не известен

	// Авторизация на уровне строки, приходит от backend'а
	CanUpdate bool
	CanCancel bool
	CanDelete bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPlanned returns true if the reservation has an explicit time window
func (r *Reservation) IsPlanned() bool {
	return r.FromDate != nil
}

// Clone возвращает независимую копию резервирования
func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	c.FromDate = copyTime(r.FromDate)
	c.ToDate = copyTime(r.ToDate)
	c.ParentIDTag = copyString(r.ParentIDTag)
	return &c
}

// ReservationRequest итоговый payload, который отправляется в ReservationGateway
type ReservationRequest struct {
	ID                int64
	ChargingStationID string
	ConnectorID       int
	UserID            string
	IDTag             string
	ParentIDTag       *string
	ExpiryDate        time.Time
	FromDate          *time.Time
	ToDate            *time.Time
	Type              ReservationType
	Update            bool // true, если редактируется существующее резервирование
}

// Clone возвращает копию запроса без общих указателей
func (r ReservationRequest) Clone() ReservationRequest {
	r.ParentIDTag = copyString(r.ParentIDTag)
	r.FromDate = copyTime(r.FromDate)
	r.ToDate = copyTime(r.ToDate)
	return r
}

// ReservationFilter фильтр списка резервирований
type ReservationFilter struct {
	ChargingStationID *string
	ConnectorID       *int
	UserID            *string
	Statuses          []ReservationStatus
	Types             []ReservationType
	ExpiryFrom        *time.Time // expiry_date >= ExpiryFrom
	ExpiryTo          *time.Time // expiry_date <= ExpiryTo
}

// Paging параметры постраничной выборки
type Paging struct {
	Limit int
	Skip  int
}

// Sorting параметры сортировки
type Sorting struct {
	Field      string
	Descending bool
}

// ReservationPage страница результатов
type ReservationPage struct {
	Count  int
	Result []*Reservation
}
