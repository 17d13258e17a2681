package domain

import "errors"

var (
	// ErrReservationRejected backend (или станция) отказал в резервировании/отмене
	ErrReservationRejected = errors.New("reservation rejected by backend")

	// ErrReservationNotFound резервирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrChargingStationNotFound зарядная станция не найдена
	ErrChargingStationNotFound = errors.New("charging station not found")
)
