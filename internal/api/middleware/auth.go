package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers"
)

const msgMissingUserID = "заголовок X-User-ID обязателен"

type userIDCtxKey struct{}

// UserID достает ID пользователя из контекста запроса.
// Возвращает 0, если middleware не отработал.
func UserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDCtxKey{}).(int64); ok {
		return id
	}
	return 0
}

// Auth проверяет наличие валидного заголовка X-User-ID
// и кладет ID пользователя в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDCtxKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
