package session

import (
	"context"
	"sync"
	"time"
)

// Не чаще этого интервала Save удаляет истекшие сессии.
const memorySweepInterval = time.Minute

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore хранит сессии в памяти процесса. Используется, когда Redis не настроен.
type MemoryStore struct {
	mu       sync.Mutex
	sessions  map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore создает пустое хранилище сессий в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Load возвращает копию данных сессии. Истекшая сессия удаляется.
func (s *MemoryStore) Load(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}

	data := Data{
		UserID:  entry.data.UserID,
		Flashes: append([]string(nil), entry.data.Flashes...),
	}
	return &data, nil
}

// Save сохраняет копию данных сессии и попутно удаляет истекшие.
func (s *MemoryStore) Save(_ context.Context, id string, data *Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= memorySweepInterval {
		s.sweep(now)
	}

	s.sessions[id] = memoryEntry{
		data: Data{
			UserID:  data.UserID,
			Flashes: append([]string(nil), data.Flashes...),
		},
		expiresAt: now.Add(ttl),
	}
	return nil
}

// sweep удаляет истекшие сессии. Вызывается под s.mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

// Len возвращает число хранимых сессий, включая еще не удаленные истекшие.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Delete удаляет сессию.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
