package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maynagashev/vocabvault/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// do выполняет запрос через middleware менеджера и возвращает ответ.
func do(t *testing.T, m *session.Manager, cookie *http.Cookie, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	m.Middleware(h).ServeHTTP(rr, req)
	return rr
}

// sessionCookie возвращает последнюю выданную cookie сессии: при входе она перевыпускается.
func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	var found *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			found = c
		}
	}
	return found
}

func TestManager_Flashes(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), testSecret, time.Hour, false)

	rr := do(t, m, nil, func(_ http.ResponseWriter, r *http.Request) {
		m.AddFlash(r.Context(), "Folder 'Verbs' created!")
	})
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie, "новая сессия должна выдать cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	var flashes []string
	rr = do(t, m, cookie, func(_ http.ResponseWriter, r *http.Request) {
		flashes = m.PopFlashes(r.Context())
	})
	assert.Equal(t, []string{"Folder 'Verbs' created!"}, flashes)
	assert.Nil(t, sessionCookie(rr), "существующая сессия не перевыпускает cookie")

	do(t, m, cookie, func(_ http.ResponseWriter, r *http.Request) {
		flashes = m.PopFlashes(r.Context())
	})
	assert.Empty(t, flashes, "сообщения показываются один раз")
}

func TestManager_LoginAndClear(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), testSecret, time.Hour, true)

	first := sessionCookie(do(t, m, nil, func(_ http.ResponseWriter, r *http.Request) {
		_, ok := session.UserID(r.Context())
		assert.False(t, ok)
	}))
	require.NotNil(t, first)
	assert.True(t, first.Secure)

	rr := do(t, m, first, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.Login(r.Context(), w, 42))
	})
	loggedIn := sessionCookie(rr)
	require.NotNil(t, loggedIn)
	assert.NotEqual(t, first.Value, loggedIn.Value, "при входе идентификатор сессии меняется")

	do(t, m, loggedIn, func(_ http.ResponseWriter, r *http.Request) {
		userID, ok := session.UserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(42), userID)
		m.Clear(r.Context())
	})

	do(t, m, loggedIn, func(_ http.ResponseWriter, r *http.Request) {
		_, ok := session.UserID(r.Context())
		assert.False(t, ok, "после очистки пользователь не определен")
	})
}

func TestManager_RejectsForgedCookie(t *testing.T) {
	store := session.NewMemoryStore()
	m := session.NewManager(store, testSecret, time.Hour, false)

	rr := do(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.Login(r.Context(), w, 7))
	})
	valid := sessionCookie(rr)
	require.NotNil(t, valid)

	other := session.NewManager(store, "another-secret", time.Hour, false)
	tests := []struct {
		name    string
		manager *session.Manager
		value   string
	}{
		{name: "Подпись другим ключом", manager: other, value: valid.Value},
		{name: "Без подписи", manager: m, value: "some-id"},
		{name: "Подмененная подпись", manager: m, value: valid.Value[:len(valid.Value)-2] + "xx"},
		{name: "Пустое значение", manager: m, value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookie := &http.Cookie{Name: session.CookieName, Value: tt.value}
			rr = do(t, tt.manager, cookie, func(_ http.ResponseWriter, r *http.Request) {
				_, ok := session.UserID(r.Context())
				assert.False(t, ok)
			})
			assert.NotNil(t, sessionCookie(rr), "вместо поддельной выдается новая сессия")
		})
	}
}

func TestManager_WithoutMiddleware(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), testSecret, 0, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	m.AddFlash(req.Context(), "lost")
	assert.Nil(t, m.PopFlashes(req.Context()))
	require.Error(t, m.Login(req.Context(), httptest.NewRecorder(), 1))
	_, ok := session.UserID(req.Context())
	assert.False(t, ok)
}
