package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/vocabvault/internal/models"
)

// OwnershipChecker отвечает на единственный вопрос авторизации:
// принадлежит ли ресурс данного типа данному пользователю.
type OwnershipChecker interface {
	Owns(ctx context.Context, userID int64, kind models.ResourceKind, id int64) (bool, error)
}

// Запросы проверки владения для каждого типа ресурса.
var ownershipQueries = map[models.ResourceKind]string{
	models.ResourceFolder: `SELECT COUNT(1) FROM folders WHERE id = ? AND user_id = ?`,
	models.ResourceWord:   `SELECT COUNT(1) FROM saved_words WHERE id = ? AND user_id = ?`,
}

type sqlOwnershipChecker struct {
	db *sqlx.DB
}

// NewOwnershipChecker создает проверку владения поверх БД.
func NewOwnershipChecker(db *sqlx.DB) OwnershipChecker {
	return &sqlOwnershipChecker{db: db}
}

// Owns возвращает true, если ресурс kind с указанным id принадлежит пользователю.
func (c *sqlOwnershipChecker) Owns(ctx context.Context, userID int64, kind models.ResourceKind, id int64) (bool, error) {
	query, ok := ownershipQueries[kind]
	if !ok {
		return false, fmt.Errorf("неизвестный тип ресурса: %q", kind)
	}

	var count int64
	if err := c.db.GetContext(ctx, &count, c.db.Rebind(query), id, userID); err != nil {
		return false, fmt.Errorf("ошибка проверки владения ресурсом %s %d: %w", kind, id, err)
	}
	return count > 0, nil
}
