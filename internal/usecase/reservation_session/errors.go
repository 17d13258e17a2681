package reservation_session

import "errors"

var (
	// ErrSessionNotFound сессия не найдена или уже вытеснена
	ErrSessionNotFound = errors.New("reservation_session: session not found")

	// ErrSessionClosed сессия уже закрыта
	ErrSessionClosed = errors.New("reservation_session: session is closed")

	// ErrReadOnly сессия открыта только для просмотра
	ErrReadOnly = errors.New("reservation_session: session is read-only")

	// ErrSubmitInProgress операция недоступна во время отправки
	ErrSubmitInProgress = errors.New("reservation_session: submit in progress")

	// ErrInvalidTransition переход недопустим из текущего состояния
	ErrInvalidTransition = errors.New("reservation_session: invalid state transition")

	// ErrNotValid черновик не прошёл валидацию
	ErrNotValid = errors.New("reservation_session: draft is not valid")

	// ErrStaleResponse ответ пришёл для устаревшего запроса и отброшен
	ErrStaleResponse = errors.New("reservation_session: stale response discarded")

	// ErrConnectorNotFound коннектор не найден на станции
	ErrConnectorNotFound = errors.New("reservation_session: connector not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservation_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("reservation_session: internal error")
)
