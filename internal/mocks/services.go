package mocks

import (
	"context"

	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/services"
	"github.com/stretchr/testify/mock"
)

// AuthService - мок services.AuthService.
type AuthService struct {
	mock.Mock
}

var _ services.AuthService = (*AuthService)(nil)

func (m *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, username, password string) (int64, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(int64), args.Error(1)
}

// FolderService - мок services.FolderService.
type FolderService struct {
	mock.Mock
}

var _ services.FolderService = (*FolderService)(nil)

func (m *FolderService) CreateFolder(ctx context.Context, userID int64, name string) (int64, error) {
	args := m.Called(ctx, userID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FolderService) ListFolders(ctx context.Context, userID int64) ([]models.FolderSummary, error) {
	args := m.Called(ctx, userID)
	folders, _ := args.Get(0).([]models.FolderSummary)
	return folders, args.Error(1)
}

func (m *FolderService) GetFolder(ctx context.Context, userID, folderID int64) (*models.Folder, error) {
	args := m.Called(ctx, userID, folderID)
	folder, _ := args.Get(0).(*models.Folder)
	return folder, args.Error(1)
}

func (m *FolderService) RenameFolder(ctx context.Context, userID, folderID int64, name string) error {
	return m.Called(ctx, userID, folderID, name).Error(0)
}

func (m *FolderService) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	return m.Called(ctx, userID, folderID).Error(0)
}

// WordService - мок services.WordService.
type WordService struct {
	mock.Mock
}

var _ services.WordService = (*WordService)(nil)

func (m *WordService) SaveWord(ctx context.Context, userID, folderID int64, word, rawDefinitions string) (int64, error) {
	args := m.Called(ctx, userID, folderID, word, rawDefinitions)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WordService) ListWords(ctx context.Context, userID, folderID int64) ([]models.SavedWord, error) {
	args := m.Called(ctx, userID, folderID)
	words, _ := args.Get(0).([]models.SavedWord)
	return words, args.Error(1)
}

func (m *WordService) DeleteWord(ctx context.Context, userID, wordID int64) (*models.SavedWord, error) {
	args := m.Called(ctx, userID, wordID)
	word, _ := args.Get(0).(*models.SavedWord)
	return word, args.Error(1)
}

// ExportService - мок services.ExportService.
type ExportService struct {
	mock.Mock
}

var _ services.ExportService = (*ExportService)(nil)

func (m *ExportService) ExportFolder(ctx context.Context, userID, folderID int64) (string, error) {
	args := m.Called(ctx, userID, folderID)
	return args.String(0), args.Error(1)
}
