package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService определяет интерфейс хранилища учетных данных.
type AuthService interface {
	// Register создает пользователя и возвращает его ID.
	Register(ctx context.Context, username, password string) (int64, error)
	// Authenticate проверяет пароль и возвращает ID пользователя.
	Authenticate(ctx context.Context, username, password string) (int64, error)
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo repository.UserRepository
	hashCost int
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo, hashCost: bcrypt.DefaultCost}
}

// Register регистрирует нового пользователя. Пароль хранится только в виде bcrypt-хеша.
func (s *authService) Register(ctx context.Context, username, password string) (int64, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		zap.S().Infof("[AuthService] Слишком длинный пароль при регистрации '%s'", username)
		return 0, ErrPasswordTooLong
	}
	if err != nil {
		zap.S().Errorf("[AuthService] Ошибка хеширования пароля для '%s': %v", username, err)
		return 0, fmt.Errorf("внутренняя ошибка сервера при хешировании пароля: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			zap.S().Infof("[AuthService] Попытка регистрации с занятым именем: %s", username)
			return 0, ErrUsernameTaken
		}
		zap.S().Errorf("[AuthService] Непредвиденная ошибка репозитория при регистрации '%s': %v", username, err)
		return 0, fmt.Errorf("внутренняя ошибка сервера при создании пользователя: %w", err)
	}

	zap.S().Infof("[AuthService] Пользователь '%s' успешно зарегистрирован", username)
	return userID, nil
}

// Authenticate проверяет имя и пароль пользователя.
// Несуществующий пользователь и неверный пароль неразличимы для вызывающего.
func (s *authService) Authenticate(ctx context.Context, username, password string) (int64, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			zap.S().Infof("[AuthService] Попытка входа несуществующего пользователя: %s", username)
			return 0, ErrInvalidCredentials
		}
		zap.S().Errorf("[AuthService] Ошибка репозитория при поиске '%s': %v", username, err)
		return 0, fmt.Errorf("внутренняя ошибка сервера при поиске пользователя: %w", err)
	}

	// CompareHashAndPassword сравнивает за постоянное время
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		zap.S().Infof("[AuthService] Неверный пароль для пользователя: %s", username)
		return 0, ErrInvalidCredentials
	}

	zap.S().Infof("[AuthService] Пользователь '%s' успешно аутентифицирован", username)
	return user.ID, nil
}
