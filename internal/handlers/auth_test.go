package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/maynagashev/vocabvault/internal/handlers"
	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/mocks"
	"github.com/maynagashev/vocabvault/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewAuthHandler(t *testing.T) {
	h := handlers.NewAuthHandler(new(mocks.AuthService), &fakeSessions{}, &fakeRenderer{})
	assert.NotNil(t, h)
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name             string
		form             url.Values
		setup            func(s *mocks.AuthService)
		expectedLocation string
		expectedFlashes  []string
	}{
		{
			name: "Успешная регистрация",
			form: url.Values{"username": {"alice"}, "password": {"pw1234"}, "confirmation": {"pw1234"}},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1234").Return(int64(1), nil).Once()
			},
			expectedLocation: "/login",
		},
		{
			name:             "Не все поля заполнены",
			form:             url.Values{"username": {"alice"}, "password": {"pw1234"}},
			setup:            func(*mocks.AuthService) {},
			expectedLocation: "/register",
			expectedFlashes:  []string{"All fields are required"},
		},
		{
			name:             "Пароли не совпадают",
			form:             url.Values{"username": {"alice"}, "password": {"pw1234"}, "confirmation": {"pw9999"}},
			setup:            func(*mocks.AuthService) {},
			expectedLocation: "/register",
			expectedFlashes:  []string{"Passwords don't match."},
		},
		{
			name: "Пароль длиннее 72 байт",
			form: url.Values{
				"username":     {"alice"},
				"password":     {strings.Repeat("p", 73)},
				"confirmation": {strings.Repeat("p", 73)},
			},
			setup:            func(*mocks.AuthService) {},
			expectedLocation: "/register",
			expectedFlashes:  []string{"Password is too long (max 72 bytes)."},
		},
		{
			name: "Сервис отклонил длинный пароль",
			form: url.Values{"username": {"alice"}, "password": {"pw1234"}, "confirmation": {"pw1234"}},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1234").Return(int64(0), services.ErrPasswordTooLong).Once()
			},
			expectedLocation: "/register",
			expectedFlashes:  []string{"Password is too long (max 72 bytes)."},
		},
		{
			name: "Имя занято",
			form: url.Values{"username": {"alice"}, "password": {"pw1234"}, "confirmation": {"pw1234"}},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1234").Return(int64(0), services.ErrUsernameTaken).Once()
			},
			expectedLocation: "/register",
			expectedFlashes:  []string{"Username already taken."},
		},
		{
			name: "Внутренняя ошибка",
			form: url.Values{"username": {"alice"}, "password": {"pw1234"}, "confirmation": {"pw1234"}},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1234").Return(int64(0), errors.New("db down")).Once()
			},
			expectedLocation: "/register",
			expectedFlashes:  []string{middleware.GenericErrorMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.AuthService)
			tt.setup(service)
			sessions := &fakeSessions{}
			h := handlers.NewAuthHandler(service, sessions, &fakeRenderer{})

			rr := httptest.NewRecorder()
			h.Register(rr, postForm("/register", tt.form))

			assert.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			assert.Equal(t, tt.expectedFlashes, sessions.flashes)
			service.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name             string
		form             url.Values
		setup            func(s *mocks.AuthService)
		loginErr         error
		expectedLocation string
		expectedFlashes  []string
		expectedUserID   int64
	}{
		{
			name: "Успешный вход",
			form: url.Values{"username": {"alice"}, "password": {"pw1234"}},
			setup: func(s *mocks.AuthService) {
				s.On("Authenticate", mock.Anything, "alice", "pw1234").Return(int64(5), nil).Once()
			},
			expectedLocation: "/",
			expectedUserID:   5,
		},
		{
			name:             "Пустой пароль",
			form:             url.Values{"username": {"alice"}},
			setup:            func(*mocks.AuthService) {},
			expectedLocation: "/login",
			expectedFlashes:  []string{"Please fill out both fields."},
		},
		{
			name: "Неверные учетные данные",
			form: url.Values{"username": {"alice"}, "password": {"wrong"}},
			setup: func(s *mocks.AuthService) {
				s.On("Authenticate", mock.Anything, "alice", "wrong").Return(int64(0), services.ErrInvalidCredentials).Once()
			},
			expectedLocation: "/login",
			expectedFlashes:  []string{"Invalid username or password."},
		},
		{
			name: "Ошибка сохранения сессии",
			form: url.Values{"username": {"alice"}, "password": {"pw1234"}},
			setup: func(s *mocks.AuthService) {
				s.On("Authenticate", mock.Anything, "alice", "pw1234").Return(int64(5), nil).Once()
			},
			loginErr:         errors.New("redis down"),
			expectedLocation: "/login",
			expectedFlashes:  []string{middleware.GenericErrorMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.AuthService)
			tt.setup(service)
			sessions := &fakeSessions{userID: 99, loginErr: tt.loginErr}
			h := handlers.NewAuthHandler(service, sessions, &fakeRenderer{})

			rr := httptest.NewRecorder()
			h.Login(rr, postForm("/login", tt.form))

			assert.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			assert.Equal(t, tt.expectedFlashes, sessions.flashes)
			assert.Equal(t, 1, sessions.cleared, "вход всегда начинается с очистки сессии")
			assert.Equal(t, tt.expectedUserID, sessions.userID)
			service.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LoginPage_ShowsFlashesAndClears(t *testing.T) {
	sessions := &fakeSessions{userID: 3, flashes: []string{"Invalid username or password."}}
	renderer := &fakeRenderer{}
	h := handlers.NewAuthHandler(new(mocks.AuthService), sessions, renderer)

	rr := httptest.NewRecorder()
	h.LoginPage(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, handlers.PageLogin, renderer.page)
	assert.Equal(t, []string{"Invalid username or password."}, renderer.data.Flashes)
	assert.Equal(t, 1, sessions.cleared)
	assert.Zero(t, sessions.userID)
}

func TestAuthHandler_RegisterPage(t *testing.T) {
	renderer := &fakeRenderer{}
	h := handlers.NewAuthHandler(new(mocks.AuthService), &fakeSessions{}, renderer)

	rr := httptest.NewRecorder()
	h.RegisterPage(rr, httptest.NewRequest(http.MethodGet, "/register", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, handlers.PageRegister, renderer.page)
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := &fakeSessions{userID: 3}
	h := handlers.NewAuthHandler(new(mocks.AuthService), sessions, &fakeRenderer{})

	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.Equal(t, 1, sessions.cleared)
	assert.Zero(t, sessions.userID)
}
