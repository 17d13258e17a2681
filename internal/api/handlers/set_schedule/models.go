package set_schedule

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SetScheduleRequest HTTP request model.
// Тип может быть пустым: тогда он выводится из наличия fromDate.
type SetScheduleRequest struct {
	Type       string     `json:"type" validate:"omitempty,oneof=reserve_now planned_reservation"`
	ExpiryDate time.Time  `json:"expiryDate" validate:"required"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
	ToDate     *time.Time `json:"toDate,omitempty"`
}

// ToDomain конвертирует HTTP request в доменную модель
func (r *SetScheduleRequest) ToDomain() domain.Schedule {
	return domain.Schedule{
		Type:       domain.ReservationType(r.Type),
		ExpiryDate: r.ExpiryDate,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
	}
}
