package centralserver

import "errors"

var (
	// ErrNotFound возвращается, когда запрошенный объект не найден на центральном сервере
	ErrNotFound = errors.New("centralserver client: not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("centralserver client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервера
	ErrInvalidResponse = errors.New("centralserver client: invalid response")
)
