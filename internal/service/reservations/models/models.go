package models

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// ReservationRow строка списка с разрешёнными действиями
type ReservationRow struct {
	Reservation *domain.Reservation
	Actions     domain.ActionSet
}

// ReservationList страница списка резервирований
type ReservationList struct {
	Count          int
	Rows           []ReservationRow
	Toolbar        domain.ActionSet
	Authorizations domain.ReservationsAuthorizations
}

// ListRequest параметры списка резервирований
type ListRequest struct {
	UserID  string
	Filter  domain.ReservationFilter
	Paging  domain.Paging
	Sorting domain.Sorting
}
