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

// FolderRepository определяет методы для работы с папками пользователя.
// Все запросы ограничены владельцем (user_id): чужая папка для репозитория не существует.
type FolderRepository interface {
	CreateFolder(ctx context.Context, userID int64, name string) (int64, error)
	ListFolders(ctx context.Context, userID int64) ([]models.FolderSummary, error)
	GetFolder(ctx context.Context, userID, folderID int64) (*models.Folder, error)
	RenameFolder(ctx context.Context, userID, folderID int64, name string) error
	DeleteFolder(ctx context.Context, userID, folderID int64) error
}

type sqlFolderRepository struct {
	db *sqlx.DB
}

// NewFolderRepository создает новый экземпляр репозитория папок.
func NewFolderRepository(db *sqlx.DB) FolderRepository {
	return &sqlFolderRepository{db: db}
}

// CreateFolder создает папку и возвращает ее ID.
func (r *sqlFolderRepository) CreateFolder(ctx context.Context, userID int64, name string) (int64, error) {
	query := r.db.Rebind(`INSERT INTO folders (user_id, name) VALUES (?, ?) RETURNING id`)
	var folderID int64

	if err := r.db.QueryRowxContext(ctx, query, userID, name).Scan(&folderID); err != nil {
		zap.S().Errorf("[FolderRepo] Ошибка при создании папки '%s' для пользователя %d: %v", name, userID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание папки: %w", err)
	}

	zap.S().Infof("[FolderRepo] Папка '%s' (ID: %d) создана для пользователя %d", name, folderID, userID)
	return folderID, nil
}

// ListFolders возвращает папки пользователя вместе с количеством слов, сначала новые.
// LEFT JOIN нужен, чтобы пустые папки попадали в список с нулевым счетчиком.
func (r *sqlFolderRepository) ListFolders(ctx context.Context, userID int64) ([]models.FolderSummary, error) {
	query := r.db.Rebind(`SELECT f.id, f.user_id, f.name, f.created_at, COUNT(w.id) AS word_count
	          FROM folders f
	          LEFT JOIN saved_words w ON w.folder_id = f.id AND w.user_id = f.user_id
	          WHERE f.user_id = ?
	          GROUP BY f.id, f.user_id, f.name, f.created_at
	          ORDER BY f.created_at DESC, f.id DESC`)

	folders := make([]models.FolderSummary, 0)
	if err := r.db.SelectContext(ctx, &folders, query, userID); err != nil {
		zap.S().Errorf("[FolderRepo] Ошибка при получении списка папок пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списка папок: %w", err)
	}

	return folders, nil
}

// GetFolder возвращает папку, если она принадлежит пользователю, иначе ErrFolderNotFound.
func (r *sqlFolderRepository) GetFolder(ctx context.Context, userID, folderID int64) (*models.Folder, error) {
	query := r.db.Rebind(`SELECT id, user_id, name, created_at FROM folders WHERE id = ? AND user_id = ?`)
	var folder models.Folder

	err := r.db.GetContext(ctx, &folder, query, folderID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			zap.S().Infof("[FolderRepo] Папка %d не найдена у пользователя %d", folderID, userID)
			return nil, ErrFolderNotFound
		}
		zap.S().Errorf("[FolderRepo] Ошибка при получении папки %d: %v", folderID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение папки: %w", err)
	}

	return &folder, nil
}

// RenameFolder переименовывает папку. Если папка не принадлежит пользователю, ничего не происходит.
func (r *sqlFolderRepository) RenameFolder(ctx context.Context, userID, folderID int64, name string) error {
	query := r.db.Rebind(`UPDATE folders SET name = ? WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, name, folderID, userID)
	if err != nil {
		zap.S().Errorf("[FolderRepo] Ошибка при переименовании папки %d: %v", folderID, err)
		return fmt.Errorf("ошибка выполнения запроса на переименование папки: %w", err)
	}

	if affected, affErr := res.RowsAffected(); affErr == nil && affected == 0 {
		zap.S().Infof("[FolderRepo] Переименование папки %d пользователем %d ни на что не повлияло", folderID, userID)
	}
	return nil
}

// DeleteFolder удаляет сначала слова папки, затем саму папку.
// Это два отдельных запроса без транзакции: падение между ними оставит пустую папку.
func (r *sqlFolderRepository) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	wordsQuery := r.db.Rebind(`DELETE FROM saved_words WHERE folder_id = ? AND user_id = ?`)
	if _, err := r.db.ExecContext(ctx, wordsQuery, folderID, userID); err != nil {
		zap.S().Errorf("[FolderRepo] Ошибка при удалении слов папки %d: %v", folderID, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление слов папки: %w", err)
	}

	folderQuery := r.db.Rebind(`DELETE FROM folders WHERE id = ? AND user_id = ?`)
	if _, err := r.db.ExecContext(ctx, folderQuery, folderID, userID); err != nil {
		zap.S().Errorf("[FolderRepo] Ошибка при удалении папки %d: %v", folderID, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление папки: %w", err)
	}

	zap.S().Infof("[FolderRepo] Папка %d пользователя %d удалена вместе со словами", folderID, userID)
	return nil
}
