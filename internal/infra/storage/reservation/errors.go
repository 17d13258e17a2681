package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrAlreadyExists возвращается, когда резервирование с таким ID уже существует
	ErrAlreadyExists = errors.New("reservation.repository: reservation already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
