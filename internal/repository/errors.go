package repository

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Коды ошибок нарушения уникальности.
const (
	pgUniqueViolationCode = "23505"
)

// isUniqueViolation распознает нарушение UNIQUE-ограничения в PostgreSQL и SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// Кастомные ошибки репозитория.
var (
	ErrUserNotFound   = errors.New("пользователь не найден")
	ErrUsernameTaken  = errors.New("имя пользователя уже занято")
	ErrFolderNotFound = errors.New("папка не найдена")
	ErrWordNotFound   = errors.New("слово не найдено")
)
