package permissions

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Gate вычисляет действия, доступные оператору. Чистые функции над снимками
// резервирования, коннектора и прав; состояние не хранится.
type Gate struct {
	logger Logger
}

// NewGate создает новый экземпляр Gate
func NewGate(logger Logger) *Gate {
	return &Gate{logger: logger}
}

// RowActions действия над строкой резервирования.
// Edit и View взаимоисключающие: View только если редактирование запрещено.
func (g *Gate) RowActions(reservation *domain.Reservation, connectorStatus domain.ConnectorStatus) domain.ActionSet {
	var set domain.ActionSet
	if reservation == nil {
		return set
	}

	if reservation.CanUpdate {
		set = set.With(domain.ActionEdit)
	} else {
		set = set.With(domain.ActionView)
	}
	if reservation.CanCancel && connectorStatus != domain.ConnectorStatusUnavailable {
		set = set.With(domain.ActionCancel)
	}
	if reservation.CanDelete {
		set = set.With(domain.ActionDelete)
	}
	return set
}

// ToolbarActions действия над списком резервирований
func (g *Gate) ToolbarActions(auth domain.ReservationsAuthorizations) domain.ActionSet {
	var set domain.ActionSet
	if auth.CanCreate {
		set = set.With(domain.ActionCreate)
	}
	if auth.CanExport {
		set = set.With(domain.ActionExport)
	}
	return set
}

// PermittedActions объединение действий строки и списка
func (g *Gate) PermittedActions(
	reservation *domain.Reservation,
	connectorStatus domain.ConnectorStatus,
	auth domain.ReservationsAuthorizations,
) domain.ActionSet {
	return g.RowActions(reservation, connectorStatus) | g.ToolbarActions(auth)
}

// CheckReserveNow проверяет, можно ли зарезервировать коннектор прямо сейчас
func (g *Gate) CheckReserveNow(station *domain.ChargingStation, connector *domain.Connector) error {
	switch {
	case station == nil || connector == nil:
		return ErrConnectorNotAvailable
	case station.Inactive:
		return ErrStationInactive
	case connector.Status == domain.ConnectorStatusUnavailable,
		connector.Status == domain.ConnectorStatusReserved:
		return ErrConnectorNotAvailable
	case connector.HasActiveTransaction():
		return ErrTransactionInProgress
	}
	return nil
}

// CheckCancelReservation проверяет, можно ли отменить резервирование на коннекторе со страницы станции
func (g *Gate) CheckCancelReservation(station *domain.ChargingStation, connector *domain.Connector) error {
	switch {
	case station == nil || connector == nil:
		return ErrConnectorNotAvailable
	case station.Inactive:
		return ErrStationInactive
	case connector.Status == domain.ConnectorStatusUnavailable:
		return ErrConnectorNotAvailable
	}
	return nil
}

// Authorize проверяет, что действие разрешено для строки
func (g *Gate) Authorize(
	action domain.Action,
	reservation *domain.Reservation,
	connectorStatus domain.ConnectorStatus,
	auth domain.ReservationsAuthorizations,
) error {
	if !action.IsValid() {
		return domain.ErrUnknownAction
	}
	if !g.PermittedActions(reservation, connectorStatus, auth).Has(action) {
		g.logger.Warn("Gate: action=%s not permitted for reservation", action)
		return ErrActionNotPermitted
	}
	return nil
}
