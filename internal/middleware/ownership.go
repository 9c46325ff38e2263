package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"go.uber.org/zap"
)

// ResourceIDKey - ключ контекста для ID ресурса, прошедшего проверку владения.
const ResourceIDKey contextKey = "resourceID"

// GenericErrorMessage показывается пользователю при непредвиденной ошибке.
const GenericErrorMessage = "Something went wrong. Try again."

// Flasher добавляет одноразовое сообщение в сессию.
type Flasher interface {
	AddFlash(ctx context.Context, message string)
}

// Guard - настройки проверки владения для одного типа ресурса.
type Guard struct {
	Kind models.ResourceKind
	// NotFoundMessage показывается, если ресурс отсутствует или принадлежит другому пользователю.
	NotFoundMessage string
	// Redirect возвращает адрес перенаправления при отказе.
	Redirect func(r *http.Request) string
}

// RequireOwnership проверяет, что ресурс из URL-параметра {id} принадлежит пользователю сессии.
// Отсутствующий и чужой ресурс неразличимы. Должен стоять после RequireUser.
func RequireOwnership(
	checker repository.OwnershipChecker,
	flasher Flasher,
	guard Guard,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reject := func(message string) {
				flasher.AddFlash(ctx, message)
				http.Redirect(w, r, guard.Redirect(r), http.StatusFound)
			}

			userID, ok := GetUserIDFromContext(ctx)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			resourceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil || resourceID <= 0 {
				reject(guard.NotFoundMessage)
				return
			}

			owns, err := checker.Owns(ctx, userID, guard.Kind, resourceID)
			if err != nil {
				zap.S().Errorf("[OwnershipMiddleware] Ошибка проверки владения %s %d: %v", guard.Kind, resourceID, err)
				reject(GenericErrorMessage)
				return
			}
			if !owns {
				zap.S().Infof("[OwnershipMiddleware] Пользователь %d не владеет %s %d", userID, guard.Kind, resourceID)
				reject(guard.NotFoundMessage)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ResourceIDKey, resourceID)))
		})
	}
}

// GetResourceIDFromContext извлекает ID ресурса, проверенного RequireOwnership.
func GetResourceIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ResourceIDKey).(int64)
	return id, ok
}

// RedirectTo возвращает Redirect на фиксированный адрес.
func RedirectTo(path string) func(*http.Request) string {
	return func(*http.Request) string { return path }
}

// RedirectBack возвращает Redirect на страницу, с которой пришел запрос, или на fallback.
func RedirectBack(fallback string) func(*http.Request) string {
	return func(r *http.Request) string { return SafeReferer(r, fallback) }
}
