package assign_tag

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// AssignTagRequest HTTP request model
type AssignTagRequest struct {
	ID       string `json:"id" validate:"required"`
	VisualID string `json:"visualId"`
	UserID   string `json:"userId"`
	Active   bool   `json:"active"`
}

// ToDomain конвертирует HTTP request в доменный бейдж
func (r *AssignTagRequest) ToDomain() domain.Tag {
	return domain.Tag{
		ID:       r.ID,
		VisualID: r.VisualID,
		UserID:   r.UserID,
		Active:   r.Active,
	}
}
