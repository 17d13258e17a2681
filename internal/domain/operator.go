package domain

import "context"

type operatorKey struct{}

// ContextWithOperator кладёт ID оператора (пользователя API) в контекст
func ContextWithOperator(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, operatorKey{}, userID)
}

// OperatorFromContext возвращает ID оператора из контекста
func OperatorFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(operatorKey{}).(string)
	return userID, ok && userID != ""
}
