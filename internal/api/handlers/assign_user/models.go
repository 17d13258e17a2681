package assign_user

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// AssignUserRequest HTTP request model
type AssignUserRequest struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"firstName"`
	Name      string `json:"name"`
}

// ToDomain конвертирует HTTP request в доменного пользователя
func (r *AssignUserRequest) ToDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		Name:      r.Name,
	}
}
