package models

import "time"

// User представляет зарегистрированного пользователя.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password" json:"-"` // Хеш пароля никогда не отдаем наружу
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
