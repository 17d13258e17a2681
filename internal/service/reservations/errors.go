package reservations

import "errors"

var (
	// ErrCannotUpdate возвращается, когда резервирование нельзя изменить в текущем статусе
	ErrCannotUpdate = errors.New("reservation cannot be updated")

	// ErrCannotCancel возвращается, когда резервирование нельзя отменить
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
