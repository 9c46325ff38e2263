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

// WordRepository определяет методы для работы с сохраненными словами.
type WordRepository interface {
	CreateWord(ctx context.Context, word *models.SavedWord) (int64, error)
	ListWordsByFolder(ctx context.Context, userID, folderID int64) ([]models.SavedWord, error)
	GetWord(ctx context.Context, userID, wordID int64) (*models.SavedWord, error)
	DeleteWord(ctx context.Context, userID, wordID int64) error
}

type sqlWordRepository struct {
	db *sqlx.DB
}

// NewWordRepository создает новый экземпляр репозитория слов.
func NewWordRepository(db *sqlx.DB) WordRepository {
	return &sqlWordRepository{db: db}
}

// CreateWord сохраняет слово. Определения записываются в каноничном JSON (см. models.Definitions.Value).
func (r *sqlWordRepository) CreateWord(ctx context.Context, word *models.SavedWord) (int64, error) {
	query := r.db.Rebind(`INSERT INTO saved_words (user_id, folder_id, word, definitions)
	          VALUES (?, ?, ?, ?) RETURNING id`)
	var wordID int64

	err := r.db.QueryRowxContext(ctx, query, word.UserID, word.FolderID, word.Word, word.Definitions).Scan(&wordID)
	if err != nil {
		zap.S().Errorf("[WordRepo] Ошибка при сохранении слова '%s' в папку %d: %v", word.Word, word.FolderID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на сохранение слова: %w", err)
	}

	zap.S().Infof("[WordRepo] Слово '%s' (ID: %d) сохранено в папку %d", word.Word, wordID, word.FolderID)
	return wordID, nil
}

// ListWordsByFolder возвращает слова папки пользователя, сначала новые.
func (r *sqlWordRepository) ListWordsByFolder(
	ctx context.Context,
	userID,
	folderID int64,
) ([]models.SavedWord, error) {
	query := r.db.Rebind(`SELECT id, user_id, folder_id, word, definitions, created_at
	          FROM saved_words
	          WHERE folder_id = ? AND user_id = ?
	          ORDER BY created_at DESC, id DESC`)

	words := make([]models.SavedWord, 0)
	if err := r.db.SelectContext(ctx, &words, query, folderID, userID); err != nil {
		zap.S().Errorf("[WordRepo] Ошибка при получении слов папки %d: %v", folderID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение слов папки: %w", err)
	}

	return words, nil
}

// GetWord возвращает слово, если оно принадлежит пользователю, иначе ErrWordNotFound.
func (r *sqlWordRepository) GetWord(ctx context.Context, userID, wordID int64) (*models.SavedWord, error) {
	query := r.db.Rebind(`SELECT id, user_id, folder_id, word, definitions, created_at
	          FROM saved_words WHERE id = ? AND user_id = ?`)
	var word models.SavedWord

	err := r.db.GetContext(ctx, &word, query, wordID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			zap.S().Infof("[WordRepo] Слово %d не найдено у пользователя %d", wordID, userID)
			return nil, ErrWordNotFound
		}
		zap.S().Errorf("[WordRepo] Ошибка при получении слова %d: %v", wordID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение слова: %w", err)
	}

	return &word, nil
}

// DeleteWord удаляет слово пользователя. Если удалять нечего, возвращает ErrWordNotFound.
func (r *sqlWordRepository) DeleteWord(ctx context.Context, userID, wordID int64) error {
	query := r.db.Rebind(`DELETE FROM saved_words WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, wordID, userID)
	if err != nil {
		zap.S().Errorf("[WordRepo] Ошибка при удалении слова %d: %v", wordID, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление слова: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества удаленных строк: %w", err)
	}
	if affected == 0 {
		return ErrWordNotFound
	}

	zap.S().Infof("[WordRepo] Слово %d пользователя %d удалено", wordID, userID)
	return nil
}
