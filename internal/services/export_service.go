package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/storage"
	"go.uber.org/zap"
)

// ExportService выгружает папку со словами в объектное хранилище.
type ExportService interface {
	// ExportFolder возвращает ключ созданного объекта.
	ExportFolder(ctx context.Context, userID, folderID int64) (string, error)
}

var _ ExportService = (*exportService)(nil)

type exportService struct {
	folders FolderService
	words   WordService
	storage storage.FileStorage
	now     func() time.Time
	newID   func() string
}

// NewExportService создает сервис экспорта.
func NewExportService(folders FolderService, words WordService, fileStorage storage.FileStorage) ExportService {
	return &exportService{
		folders: folders,
		words:   words,
		storage: fileStorage,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// ExportFolder сериализует папку и ее слова в JSON и загружает документ в хранилище.
func (s *exportService) ExportFolder(ctx context.Context, userID, folderID int64) (string, error) {
	folder, err := s.folders.GetFolder(ctx, userID, folderID)
	if err != nil {
		return "", err
	}

	words, err := s.words.ListWords(ctx, userID, folderID)
	if err != nil {
		return "", err
	}

	doc := models.FolderExport{
		Folder:     *folder,
		ExportedAt: s.now().UTC(),
		Words:      words,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации экспорта папки: %w", err)
	}

	key := fmt.Sprintf("exports/%d/%d-%s.json", userID, folderID, s.newID())
	if err = s.storage.UploadFile(ctx, key, bytes.NewReader(payload), int64(len(payload)), "application/json"); err != nil {
		return "", fmt.Errorf("ошибка выгрузки экспорта папки: %w", err)
	}

	zap.S().Infof("[ExportService] Папка %d пользователя %d выгружена в '%s'", folderID, userID, key)
	return key, nil
}
