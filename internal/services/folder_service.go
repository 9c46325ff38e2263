package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"go.uber.org/zap"
)

// FolderService определяет операции над папками пользователя.
type FolderService interface {
	CreateFolder(ctx context.Context, userID int64, name string) (int64, error)
	ListFolders(ctx context.Context, userID int64) ([]models.FolderSummary, error)
	GetFolder(ctx context.Context, userID, folderID int64) (*models.Folder, error)
	RenameFolder(ctx context.Context, userID, folderID int64, name string) error
	DeleteFolder(ctx context.Context, userID, folderID int64) error
}

var _ FolderService = (*folderService)(nil)

type folderService struct {
	folderRepo repository.FolderRepository
}

// NewFolderService создает новый экземпляр сервиса папок.
func NewFolderService(folderRepo repository.FolderRepository) FolderService {
	return &folderService{folderRepo: folderRepo}
}

// CreateFolder создает папку.
func (s *folderService) CreateFolder(ctx context.Context, userID int64, name string) (int64, error) {
	folderID, err := s.folderRepo.CreateFolder(ctx, userID, name)
	if err != nil {
		return 0, fmt.Errorf("внутренняя ошибка сервера при создании папки: %w", err)
	}
	return folderID, nil
}

// ListFolders возвращает папки пользователя со счетчиками слов.
func (s *folderService) ListFolders(ctx context.Context, userID int64) ([]models.FolderSummary, error) {
	folders, err := s.folderRepo.ListFolders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("внутренняя ошибка сервера при получении папок: %w", err)
	}
	return folders, nil
}

// GetFolder возвращает папку пользователя или ErrFolderNotFound.
func (s *folderService) GetFolder(ctx context.Context, userID, folderID int64) (*models.Folder, error) {
	folder, err := s.folderRepo.GetFolder(ctx, userID, folderID)
	if err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("внутренняя ошибка сервера при получении папки: %w", err)
	}
	return folder, nil
}

// RenameFolder переименовывает папку; для чужой папки это no-op.
func (s *folderService) RenameFolder(ctx context.Context, userID, folderID int64, name string) error {
	if err := s.folderRepo.RenameFolder(ctx, userID, folderID, name); err != nil {
		return fmt.Errorf("внутренняя ошибка сервера при переименовании папки: %w", err)
	}
	zap.S().Infof("[FolderService] Папка %d пользователя %d переименована в '%s'", folderID, userID, name)
	return nil
}

// DeleteFolder удаляет папку вместе со словами.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	if err := s.folderRepo.DeleteFolder(ctx, userID, folderID); err != nil {
		return fmt.Errorf("внутренняя ошибка сервера при удалении папки: %w", err)
	}
	return nil
}
