package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/vocabvault/internal/models"
	"go.uber.org/zap"
)

// UserRepository определяет методы для работы с данными пользователей в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// sqlUserRepository реализует UserRepository поверх sqlx (SQLite или PostgreSQL).
type sqlUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

// CreateUser создает нового пользователя в базе данных.
// Возвращает ID созданного пользователя или ошибку.
func (r *sqlUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := r.db.Rebind(`INSERT INTO users (username, password) VALUES (?, ?) RETURNING id`)
	var userID int64

	err := r.db.QueryRowxContext(ctx, query, user.Username, user.PasswordHash).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			zap.S().Infof("[UserRepo] Ошибка создания пользователя: имя пользователя '%s' уже занято", user.Username)
			return 0, ErrUsernameTaken
		}
		zap.S().Errorf("[UserRepo] Непредвиденная ошибка при создании пользователя '%s': %v", user.Username, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}

	zap.S().Infof("[UserRepo] Пользователь '%s' успешно создан с ID %d", user.Username, userID)
	return userID, nil
}

// GetUserByUsername находит пользователя по его имени.
// Возвращает пользователя или ErrUserNotFound.
func (r *sqlUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`SELECT id, username, password, created_at FROM users WHERE username = ?`)
	var user models.User

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			zap.S().Infof("[UserRepo] Пользователь с именем '%s' не найден", username)
			return nil, ErrUserNotFound
		}
		zap.S().Errorf("[UserRepo] Ошибка при поиске пользователя '%s': %v", username, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}
