package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/services"
	"go.uber.org/zap"
)

const msgExportFailed = "Export failed. Try again."

// ExportHandler выгружает папку в объектное хранилище.
type ExportHandler struct {
	exports  services.ExportService
	sessions Sessions
}

// NewExportHandler создает новый экземпляр ExportHandler.
func NewExportHandler(exports services.ExportService, sessions Sessions) *ExportHandler {
	return &ExportHandler{exports: exports, sessions: sessions}
}

// Export выгружает папку и возвращает пользователя на ее страницу.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	folderID, ok := resourceID(r)
	if !ok {
		redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
		return
	}

	back := fmt.Sprintf("/folder/%d", folderID)
	key, err := h.exports.ExportFolder(r.Context(), userID, folderID)
	if err != nil {
		if errors.Is(err, services.ErrFolderNotFound) {
			redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
			return
		}
		zap.S().Errorf("[ExportHandler] Ошибка экспорта папки %d: %v", folderID, err)
		redirectWithFlash(w, r, h.sessions, back, msgExportFailed)
		return
	}

	redirectWithFlash(w, r, h.sessions, back, fmt.Sprintf("Folder exported to %s.", key))
}
