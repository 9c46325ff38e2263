package handlers

import (
	"errors"
	"net/http"

	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/services"
	"go.uber.org/zap"
)

// Сообщения страниц входа и регистрации.
const (
	msgUsernameTaken      = "Username already taken."
	msgInvalidCredentials = "Invalid username or password."
	msgPasswordTooLong    = "Password is too long (max 72 bytes)."
)

// AuthHandler обрабатывает регистрацию, вход и выход.
type AuthHandler struct {
	service  services.AuthService
	sessions Sessions
	renderer Renderer
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s services.AuthService, sessions Sessions, renderer Renderer) *AuthHandler {
	return &AuthHandler{service: s, sessions: sessions, renderer: renderer}
}

// RegisterPage показывает форму регистрации.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.renderer, PageRegister, PageData{Flashes: h.sessions.PopFlashes(r.Context())})
}

// Register обрабатывает форму регистрации. После успеха пользователь отправляется на вход.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form models.RegisterForm
	if err := decodeForm(r, &form); err != nil {
		msg, ok := validationMessage(err)
		if !ok {
			zap.S().Errorf("[AuthHandler] Ошибка разбора формы регистрации: %v", err)
			msg = middleware.GenericErrorMessage
		}
		redirectWithFlash(w, r, h.sessions, "/register", msg)
		return
	}

	if _, err := h.service.Register(r.Context(), form.Username, form.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			redirectWithFlash(w, r, h.sessions, "/register", msgUsernameTaken)
			return
		case errors.Is(err, services.ErrPasswordTooLong):
			redirectWithFlash(w, r, h.sessions, "/register", msgPasswordTooLong)
			return
		}
		zap.S().Errorf("[AuthHandler] Ошибка регистрации '%s': %v", form.Username, err)
		redirectWithFlash(w, r, h.sessions, "/register", middleware.GenericErrorMessage)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginPage показывает форму входа. Открытие страницы входа завершает текущую сессию,
// но накопленные сообщения показываются.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	flashes := h.sessions.PopFlashes(r.Context())
	h.sessions.Clear(r.Context())
	renderPage(w, h.renderer, PageLogin, PageData{Flashes: flashes})
}

// Login проверяет учетные данные и привязывает пользователя к новой сессии.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(r.Context())

	var form models.LoginForm
	if err := decodeForm(r, &form); err != nil {
		msg, ok := validationMessage(err)
		if !ok {
			zap.S().Errorf("[AuthHandler] Ошибка разбора формы входа: %v", err)
			msg = middleware.GenericErrorMessage
		}
		redirectWithFlash(w, r, h.sessions, "/login", msg)
		return
	}

	userID, err := h.service.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			redirectWithFlash(w, r, h.sessions, "/login", msgInvalidCredentials)
			return
		}
		zap.S().Errorf("[AuthHandler] Ошибка входа '%s': %v", form.Username, err)
		redirectWithFlash(w, r, h.sessions, "/login", middleware.GenericErrorMessage)
		return
	}

	if err = h.sessions.Login(r.Context(), w, userID); err != nil {
		zap.S().Errorf("[AuthHandler] Ошибка сохранения сессии пользователя %d: %v", userID, err)
		redirectWithFlash(w, r, h.sessions, "/login", middleware.GenericErrorMessage)
		return
	}

	zap.S().Infof("[AuthHandler] Пользователь %d вошел в систему", userID)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout очищает сессию.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(r.Context())
	http.Redirect(w, r, "/login", http.StatusFound)
}
