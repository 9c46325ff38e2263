// Package mocks содержит моки интерфейсов на основе testify/mock.
package mocks

import (
	"context"

	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"github.com/stretchr/testify/mock"
)

// UserRepository - мок repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// FolderRepository - мок repository.FolderRepository.
type FolderRepository struct {
	mock.Mock
}

var _ repository.FolderRepository = (*FolderRepository)(nil)

func (m *FolderRepository) CreateFolder(ctx context.Context, userID int64, name string) (int64, error) {
	args := m.Called(ctx, userID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FolderRepository) ListFolders(ctx context.Context, userID int64) ([]models.FolderSummary, error) {
	args := m.Called(ctx, userID)
	folders, _ := args.Get(0).([]models.FolderSummary)
	return folders, args.Error(1)
}

func (m *FolderRepository) GetFolder(ctx context.Context, userID, folderID int64) (*models.Folder, error) {
	args := m.Called(ctx, userID, folderID)
	folder, _ := args.Get(0).(*models.Folder)
	return folder, args.Error(1)
}

func (m *FolderRepository) RenameFolder(ctx context.Context, userID, folderID int64, name string) error {
	return m.Called(ctx, userID, folderID, name).Error(0)
}

func (m *FolderRepository) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	return m.Called(ctx, userID, folderID).Error(0)
}

// WordRepository - мок repository.WordRepository.
type WordRepository struct {
	mock.Mock
}

var _ repository.WordRepository = (*WordRepository)(nil)

func (m *WordRepository) CreateWord(ctx context.Context, word *models.SavedWord) (int64, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WordRepository) ListWordsByFolder(ctx context.Context, userID, folderID int64) ([]models.SavedWord, error) {
	args := m.Called(ctx, userID, folderID)
	words, _ := args.Get(0).([]models.SavedWord)
	return words, args.Error(1)
}

func (m *WordRepository) GetWord(ctx context.Context, userID, wordID int64) (*models.SavedWord, error) {
	args := m.Called(ctx, userID, wordID)
	word, _ := args.Get(0).(*models.SavedWord)
	return word, args.Error(1)
}

func (m *WordRepository) DeleteWord(ctx context.Context, userID, wordID int64) error {
	return m.Called(ctx, userID, wordID).Error(0)
}

// OwnershipChecker - мок repository.OwnershipChecker.
type OwnershipChecker struct {
	mock.Mock
}

var _ repository.OwnershipChecker = (*OwnershipChecker)(nil)

func (m *OwnershipChecker) Owns(ctx context.Context, userID int64, kind models.ResourceKind, id int64) (bool, error) {
	args := m.Called(ctx, userID, kind, id)
	return args.Bool(0), args.Error(1)
}
