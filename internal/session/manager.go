package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName - имя cookie с идентификатором сессии.
const CookieName = "vocabvault_session"

// DefaultTTL - время жизни сессии в хранилище по умолчанию.
const DefaultTTL = 24 * time.Hour

type contextKey struct{}

// Session - сессия текущего запроса.
type Session struct {
	id   string
	data Data
}

// Manager выдает и проверяет cookie сессии и сохраняет изменения в Store.
// Каждое изменение сессии сразу записывается в хранилище.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	newID  func() string
}

// NewManager создает менеджер сессий. secret подписывает идентификатор сессии в cookie.
func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		newID:  uuid.NewString,
	}
}

// Middleware загружает сессию по cookie и кладет ее в контекст запроса.
// Отсутствующая, поддельная или истекшая сессия заменяется новой пустой.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		if sess == nil {
			sess = &Session{id: m.newID()}
			m.setCookie(w, sess.id)
		}
		ctx := context.WithValue(r.Context(), contextKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	id, ok := m.verify(cookie.Value)
	if !ok {
		zap.S().Infof("[Session] Отклонена cookie с неверной подписью")
		return nil
	}

	data, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zap.S().Errorf("[Session] Ошибка загрузки сессии: %v", err)
		}
		return nil
	}
	return &Session{id: id, data: *data}
}

// Login привязывает пользователя к сессии. Идентификатор сессии при этом меняется,
// старая запись удаляется.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, userID int64) error {
	sess, ok := fromContext(ctx)
	if !ok {
		return errNoSession
	}

	oldID := sess.id
	sess.id = m.newID()
	sess.data.UserID = userID
	if err := m.store.Save(ctx, sess.id, &sess.data, m.ttl); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, oldID); err != nil {
		zap.S().Errorf("[Session] Ошибка удаления старой сессии: %v", err)
	}
	m.setCookie(w, sess.id)
	return nil
}

// Clear очищает сессию: пользователь и все flash-сообщения удаляются.
func (m *Manager) Clear(ctx context.Context) {
	sess, ok := fromContext(ctx)
	if !ok {
		return
	}
	sess.data = Data{}
	if err := m.store.Delete(ctx, sess.id); err != nil {
		zap.S().Errorf("[Session] Ошибка очистки сессии: %v", err)
	}
}

// AddFlash добавляет сообщение, которое будет показано на следующей странице.
func (m *Manager) AddFlash(ctx context.Context, message string) {
	sess, ok := fromContext(ctx)
	if !ok {
		zap.S().Errorf("[Session] Flash-сообщение потеряно, сессии нет в контексте: %s", message)
		return
	}
	sess.data.Flashes = append(sess.data.Flashes, message)
	m.save(ctx, sess)
}

// PopFlashes возвращает накопленные сообщения и удаляет их из сессии.
func (m *Manager) PopFlashes(ctx context.Context) []string {
	sess, ok := fromContext(ctx)
	if !ok || len(sess.data.Flashes) == 0 {
		return nil
	}
	flashes := sess.data.Flashes
	sess.data.Flashes = nil
	m.save(ctx, sess)
	return flashes
}

func (m *Manager) save(ctx context.Context, sess *Session) {
	if sess.data.UserID == 0 && len(sess.data.Flashes) == 0 {
		if err := m.store.Delete(ctx, sess.id); err != nil {
			zap.S().Errorf("[Session] Ошибка удаления пустой сессии: %v", err)
		}
		return
	}
	if err := m.store.Save(ctx, sess.id, &sess.data, m.ttl); err != nil {
		zap.S().Errorf("[Session] Ошибка сохранения сессии: %v", err)
	}
}

// UserID возвращает ID пользователя текущей сессии.
func UserID(ctx context.Context) (int64, bool) {
	sess, ok := fromContext(ctx)
	if !ok || sess.data.UserID == 0 {
		return 0, false
	}
	return sess.data.UserID, true
}

func fromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok && sess != nil
}

// Значение cookie: {id}.{base64url(hmac-sha256(id))}.
func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(value string) (string, bool) {
	id, _, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(m.sign(id)), []byte(value)) {
		return "", false
	}
	return id, true
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(id),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

var errNoSession = errors.New("сессия не загружена в контекст запроса")
