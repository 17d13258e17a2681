package resolve_eligibility

// Request параметры запроса контекста сессии
type Request struct {
	UserID            string
	ChargingStationID string
	ConnectorID       int
}
