package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"go.uber.org/zap"
)

// WordService определяет операции над сохраненными словами.
type WordService interface {
	// SaveWord проверяет и канонизирует определения, затем сохраняет слово в папку пользователя.
	SaveWord(ctx context.Context, userID, folderID int64, word, rawDefinitions string) (int64, error)
	ListWords(ctx context.Context, userID, folderID int64) ([]models.SavedWord, error)
	// DeleteWord удаляет слово и возвращает его (для сообщения пользователю).
	DeleteWord(ctx context.Context, userID, wordID int64) (*models.SavedWord, error)
}

var _ WordService = (*wordService)(nil)

type wordService struct {
	folderRepo repository.FolderRepository
	wordRepo   repository.WordRepository
}

// NewWordService создает новый экземпляр сервиса слов.
func NewWordService(folderRepo repository.FolderRepository, wordRepo repository.WordRepository) WordService {
	return &wordService{folderRepo: folderRepo, wordRepo: wordRepo}
}

// SaveWord сохраняет слово. Некорректные определения возвращаются как models.ErrInvalidDefinitions,
// чужая или несуществующая папка - как ErrFolderNotFound.
func (s *wordService) SaveWord(
	ctx context.Context,
	userID, folderID int64,
	word, rawDefinitions string,
) (int64, error) {
	defs, err := models.ParseDefinitions(rawDefinitions)
	if err != nil {
		zap.S().Infof("[WordService] Некорректные определения для слова '%s': %v", word, err)
		return 0, err
	}

	if _, err = s.folderRepo.GetFolder(ctx, userID, folderID); err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			zap.S().Infof("[WordService] Пользователь %d пытается сохранить слово в чужую папку %d", userID, folderID)
			return 0, ErrFolderNotFound
		}
		return 0, fmt.Errorf("внутренняя ошибка сервера при проверке папки: %w", err)
	}

	wordID, err := s.wordRepo.CreateWord(ctx, &models.SavedWord{
		UserID:      userID,
		FolderID:    folderID,
		Word:        word,
		Definitions: defs,
	})
	if err != nil {
		return 0, fmt.Errorf("внутренняя ошибка сервера при сохранении слова: %w", err)
	}
	return wordID, nil
}

// ListWords возвращает слова папки пользователя.
func (s *wordService) ListWords(ctx context.Context, userID, folderID int64) ([]models.SavedWord, error) {
	words, err := s.wordRepo.ListWordsByFolder(ctx, userID, folderID)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDefinitions) {
			zap.S().Errorf("[WordService] В папке %d испорченные определения: %v", folderID, err)
			return nil, err
		}
		return nil, fmt.Errorf("внутренняя ошибка сервера при получении слов: %w", err)
	}
	return words, nil
}

// DeleteWord проверяет владение и удаляет слово.
// Отсутствующее и чужое слово неразличимы: в обоих случаях ErrWordNotFound.
func (s *wordService) DeleteWord(ctx context.Context, userID, wordID int64) (*models.SavedWord, error) {
	word, err := s.wordRepo.GetWord(ctx, userID, wordID)
	if err != nil {
		if errors.Is(err, repository.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("внутренняя ошибка сервера при поиске слова: %w", err)
	}

	if err = s.wordRepo.DeleteWord(ctx, userID, wordID); err != nil {
		if errors.Is(err, repository.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("внутренняя ошибка сервера при удалении слова: %w", err)
	}
	return word, nil
}
