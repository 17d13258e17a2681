package domain

import "time"

// Значения по умолчанию
const (
	DefaultExpiryDelay = time.Hour        // срок действия reserve-now по умолчанию
	DefaultSessionTTL  = 30 * time.Minute // время жизни неактивной сессии формы
	DefaultListLimit   = 50
	MaxListLimit       = 500
)

// DateTimeFormat формат дат в API
const DateTimeFormat = time.RFC3339
