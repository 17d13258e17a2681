package domain

// ConnectorStatus статус коннектора по OCPP 1.6
type ConnectorStatus string

const (
	ConnectorStatusAvailable     ConnectorStatus = "Available"
	ConnectorStatusPreparing     ConnectorStatus = "Preparing"
	ConnectorStatusCharging      ConnectorStatus = "Charging"
	ConnectorStatusOccupied      ConnectorStatus = "Occupied"
	ConnectorStatusSuspendedEVSE ConnectorStatus = "SuspendedEVSE"
	ConnectorStatusSuspendedEV   ConnectorStatus = "SuspendedEV"
	ConnectorStatusFinishing     ConnectorStatus = "Finishing"
	ConnectorStatusReserved      ConnectorStatus = "Reserved"
	ConnectorStatusUnavailable   ConnectorStatus = "Unavailable"
	ConnectorStatusFaulted       ConnectorStatus = "Faulted"
)

// Connector физический разъём зарядной станции
type Connector struct {
	ConnectorID          int
	Status               ConnectorStatus
	CurrentTransactionID int64 // 0 = транзакции нет
}

// HasActiveTransaction returns true if a charging session is running on the connector
func (c *Connector) HasActiveTransaction() bool {
	return c.CurrentTransactionID != 0
}

// ChargingStation зарядная станция
type ChargingStation struct {
	ID         string
	Inactive   bool
	Connectors []Connector
}

// Connector ищет коннектор по его ID
func (cs *ChargingStation) Connector(connectorID int) (*Connector, bool) {
	for i := range cs.Connectors {
		if cs.Connectors[i].ConnectorID == connectorID {
			return &cs.Connectors[i], true
		}
	}
	return nil, false
}
