package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeAndValidate декодирует тело запроса и проверяет теги `validate`
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return Validate(v)
}

// Validate проверяет структуру по тегам `validate`
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}
