// Package session хранит серверные сессии пользователей: ID пользователя и одноразовые flash-сообщения.
// Клиент получает только подписанный идентификатор сессии в cookie.
package session

import (
	"context"
	"errors"
	"time"
)

// Data - содержимое сессии.
type Data struct {
	UserID  int64    `json:"user_id,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
}

// Store определяет хранилище сессий.
type Store interface {
	// Load возвращает данные сессии или ErrNotFound.
	Load(ctx context.Context, id string) (*Data, error)
	// Save сохраняет данные сессии на время ttl.
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	// Delete удаляет сессию. Удаление несуществующей сессии не ошибка.
	Delete(ctx context.Context, id string) error
}

// ErrNotFound - сессия не найдена или истекла.
var ErrNotFound = errors.New("сессия не найдена")
