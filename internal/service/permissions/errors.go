package permissions

import "errors"

var (
	// ErrStationInactive зарядная станция неактивна
	ErrStationInactive = errors.New("permissions: charging station is inactive")

	// ErrConnectorNotAvailable коннектор недоступен или уже зарезервирован
	ErrConnectorNotAvailable = errors.New("permissions: connector is not available")

	// ErrTransactionInProgress на коннекторе идёт транзакция
	ErrTransactionInProgress = errors.New("permissions: transaction in progress on connector")

	// ErrActionNotApplicable действие не относится к строке резервирования
	ErrActionNotApplicable = errors.New("permissions: action is not applicable to a reservation row")

	// ErrActionNotPermitted действие не разрешено для резервирования
	ErrActionNotPermitted = errors.New("permissions: action is not permitted")
)
