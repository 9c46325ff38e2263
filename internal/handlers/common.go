package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/models"
	"go.uber.org/zap"
)

// Sessions определяет операции с сессией, нужные обработчикам.
type Sessions interface {
	Login(ctx context.Context, w http.ResponseWriter, userID int64) error
	Clear(ctx context.Context)
	AddFlash(ctx context.Context, message string)
	PopFlashes(ctx context.Context) []string
}

// validationMessage возвращает текст ошибки формы для пользователя.
func validationMessage(err error) (string, bool) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message, true
	}
	return "", false
}

// resourceID возвращает ID ресурса, проверенный RequireOwnership, или разбирает {id} из URL.
func resourceID(r *http.Request) (int64, bool) {
	if id, ok := middleware.GetResourceIDFromContext(r.Context()); ok {
		return id, true
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// redirectWithFlash добавляет сообщение и перенаправляет на target.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions Sessions, target, message string) {
	sessions.AddFlash(r.Context(), message)
	http.Redirect(w, r, target, http.StatusFound)
}

// renderPage отрисовывает страницу; при ошибке шаблона отвечает 500.
func renderPage(w http.ResponseWriter, renderer Renderer, page string, data PageData) {
	if err := renderer.Render(w, page, data); err != nil {
		zap.S().Errorf("[Handlers] Ошибка отрисовки страницы %s: %v", page, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
