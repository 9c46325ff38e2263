package middleware

import (
	"context"
	"net/http"

	"github.com/maynagashev/vocabvault/internal/session"
	"go.uber.org/zap"
)

// Тип для ключа контекста.
type contextKey string

// Ключ для хранения ID пользователя в контексте.
const UserIDKey contextKey = "userID"

// LoginPath - страница, на которую перенаправляется неаутентифицированный пользователь.
const LoginPath = "/login"

// RequireUser пропускает запрос дальше, только если в сессии есть пользователь.
// Иначе перенаправляет на страницу входа. Должен стоять после session.Manager.Middleware.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := session.UserID(r.Context())
		if !ok {
			zap.S().Debugf("[AuthMiddleware] Нет пользователя в сессии для %s %s", r.Method, r.URL.Path)
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext извлекает UserID из контекста запроса.
// Возвращает ID пользователя и true, если ID найден, иначе 0 и false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
