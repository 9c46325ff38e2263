package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/vocabvault/internal/handlers"
	"github.com/maynagashev/vocabvault/internal/middleware"
)

// fakeSessions запоминает операции с сессией.
type fakeSessions struct {
	flashes  []string
	cleared  int
	userID   int64
	loginErr error
}

func (s *fakeSessions) Login(_ context.Context, _ http.ResponseWriter, userID int64) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.userID = userID
	return nil
}

func (s *fakeSessions) Clear(context.Context) {
	s.cleared++
	s.userID = 0
	s.flashes = nil
}

func (s *fakeSessions) AddFlash(_ context.Context, message string) {
	s.flashes = append(s.flashes, message)
}

func (s *fakeSessions) PopFlashes(context.Context) []string {
	flashes := s.flashes
	s.flashes = nil
	return flashes
}

// fakeRenderer запоминает последнюю отрисованную страницу.
type fakeRenderer struct {
	page  string
	data  handlers.PageData
	calls int
	err   error
}

func (r *fakeRenderer) Render(w http.ResponseWriter, page string, data handlers.PageData) error {
	if r.err != nil {
		return r.err
	}
	r.page = page
	r.data = data
	r.calls++
	w.WriteHeader(http.StatusOK)
	return nil
}

// postForm создает POST-запрос с телом application/x-www-form-urlencoded.
func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// withUser кладет ID пользователя в контекст, как это делает middleware.RequireUser.
func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

// serve выполняет запрос через chi-роутер, чтобы были доступны URL-параметры.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
