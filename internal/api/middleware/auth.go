package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	// UserIDHeader заголовок с ID пользователя, выставляется API gateway
	UserIDHeader = "X-User-ID"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
)

// Auth требует заголовок X-User-ID и кладёт ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.ContextWithOperator(r.Context(), userID)))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	return domain.OperatorFromContext(ctx)
}
