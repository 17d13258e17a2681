package permissions

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Handlers обработчики действий над строкой резервирования
type Handlers struct {
	View   func() error
	Edit   func() error
	Cancel func() error
	Delete func() error
}

// Dispatch вызывает обработчик выбранного действия.
// Create и Export относятся к списку, а не к строке.
func Dispatch(action domain.Action, h Handlers) error {
	var fn func() error

	switch action {
	case domain.ActionView:
		fn = h.View
	case domain.ActionEdit:
		fn = h.Edit
	case domain.ActionCancel:
		fn = h.Cancel
	case domain.ActionDelete:
		fn = h.Delete
	case domain.ActionCreate, domain.ActionExport:
		return fmt.Errorf("%w: %s", ErrActionNotApplicable, action)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownAction, action)
	}

	if fn == nil {
		return fmt.Errorf("%w: no handler for %s", ErrActionNotApplicable, action)
	}
	return fn()
}
