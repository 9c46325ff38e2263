package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/mocks"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type recordingFlasher struct {
	messages []string
}

func (f *recordingFlasher) AddFlash(_ context.Context, message string) {
	f.messages = append(f.messages, message)
}

func TestRequireOwnership(t *testing.T) {
	tests := []struct {
		name             string
		path             string
		referer          string
		withUser         bool
		setup            func(checker *mocks.OwnershipChecker)
		expectedCode     int
		expectedLocation string
		expectedFlashes  []string
		expectedID       int64
	}{
		{
			name:     "Владелец проходит",
			path:     "/delete-word/9",
			withUser: true,
			setup: func(checker *mocks.OwnershipChecker) {
				checker.On("Owns", mock.Anything, int64(1), models.ResourceWord, int64(9)).Return(true, nil).Once()
			},
			expectedCode: http.StatusNoContent,
			expectedID:   9,
		},
		{
			name:     "Чужое слово - назад по Referer",
			path:     "/delete-word/9",
			referer:  "http://example.com/folder/3",
			withUser: true,
			setup: func(checker *mocks.OwnershipChecker) {
				checker.On("Owns", mock.Anything, int64(1), models.ResourceWord, int64(9)).Return(false, nil).Once()
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/folder/3",
			expectedFlashes:  []string{"Word not found or unauthorized."},
		},
		{
			name:     "Ошибка проверки",
			path:     "/delete-word/9",
			withUser: true,
			setup: func(checker *mocks.OwnershipChecker) {
				checker.On("Owns", mock.Anything, int64(1), models.ResourceWord, int64(9)).
					Return(false, errors.New("db down")).Once()
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/",
			expectedFlashes:  []string{middleware.GenericErrorMessage},
		},
		{
			name:             "Слишком большой ID",
			path:             "/delete-word/99999999999999999999",
			withUser:         true,
			setup:            func(*mocks.OwnershipChecker) {},
			expectedCode:     http.StatusFound,
			expectedLocation: "/",
			expectedFlashes:  []string{"Word not found or unauthorized."},
		},
		{
			name:             "Без пользователя",
			path:             "/delete-word/9",
			setup:            func(*mocks.OwnershipChecker) {},
			expectedCode:     http.StatusFound,
			expectedLocation: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(mocks.OwnershipChecker)
			tt.setup(checker)
			flasher := &recordingFlasher{}

			var gotID int64
			r := chi.NewRouter()
			r.With(middleware.RequireOwnership(checker, flasher, middleware.Guard{
				Kind:            models.ResourceWord,
				NotFoundMessage: "Word not found or unauthorized.",
				Redirect:        middleware.RedirectBack("/"),
			})).Post("/delete-word/{id}", func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = middleware.GetResourceIDFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, int64(1)))
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			assert.Equal(t, tt.expectedFlashes, flasher.messages)
			assert.Equal(t, tt.expectedID, gotID)
			checker.AssertExpectations(t)
		})
	}
}

func TestSafeReferer(t *testing.T) {
	tests := []struct {
		name     string
		referer  string
		expected string
	}{
		{name: "Пустой", referer: "", expected: "/"},
		{name: "Тот же хост", referer: "http://example.com/folder/3", expected: "/folder/3"},
		{name: "С параметрами", referer: "https://example.com/folder/3?x=1", expected: "/folder/3?x=1"},
		{name: "Относительный путь", referer: "/folder/5", expected: "/folder/5"},
		{name: "Чужой хост", referer: "http://evil.com/folder/3", expected: "/"},
		{name: "Протокол-относительный", referer: "//evil.com/x", expected: "/"},
		{name: "Двойной слеш в пути", referer: "http://example.com//evil.com", expected: "/"},
		{name: "Неподдерживаемая схема", referer: "javascript:alert(1)", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com/delete-word/1", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.expected, middleware.SafeReferer(req, "/"))
		})
	}
}
