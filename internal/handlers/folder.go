package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/services"
	"go.uber.org/zap"
)

// Сообщения операций с папками.
const (
	msgFolderNotFound = "Folder not found."
	msgFolderRenamed  = "Folder renamed."
	msgFolderDeleted  = "Folder and its contents deleted."
)

// FolderHandler обрабатывает главную страницу и операции с папками.
type FolderHandler struct {
	folders   services.FolderService
	words     services.WordService
	sessions  Sessions
	renderer  Renderer
	canExport bool
}

// NewFolderHandler создает новый экземпляр FolderHandler.
// canExport показывает кнопку экспорта, если настроено объектное хранилище.
func NewFolderHandler(
	folders services.FolderService,
	words services.WordService,
	sessions Sessions,
	renderer Renderer,
	canExport bool,
) *FolderHandler {
	return &FolderHandler{
		folders:   folders,
		words:     words,
		sessions:  sessions,
		renderer:  renderer,
		canExport: canExport,
	}
}

// Index показывает список папок. POST подставляет присланное слово в поле поиска.
func (h *FolderHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var form models.IndexForm
	if err := decodeForm(r, &form); err != nil {
		zap.S().Infof("[FolderHandler] Ошибка разбора формы главной страницы: %v", err)
	}

	folders, err := h.folders.ListFolders(r.Context(), userID)
	if err != nil {
		zap.S().Errorf("[FolderHandler] Ошибка получения папок пользователя %d: %v", userID, err)
		h.sessions.AddFlash(r.Context(), middleware.GenericErrorMessage)
	}

	renderPage(w, h.renderer, PageIndex, PageData{
		Flashes:  h.sessions.PopFlashes(r.Context()),
		LoggedIn: true,
		Word:     form.Word,
		Folders:  folders,
	})
}

// Add создает папку.
func (h *FolderHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var form models.AddFolderForm
	if err := decodeForm(r, &form); err != nil {
		msg, ok := validationMessage(err)
		if !ok {
			zap.S().Errorf("[FolderHandler] Ошибка разбора формы папки: %v", err)
			msg = middleware.GenericErrorMessage
		}
		redirectWithFlash(w, r, h.sessions, "/", msg)
		return
	}

	if _, err := h.folders.CreateFolder(r.Context(), userID, form.Name); err != nil {
		zap.S().Errorf("[FolderHandler] Ошибка создания папки пользователем %d: %v", userID, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	redirectWithFlash(w, r, h.sessions, "/", fmt.Sprintf("Folder '%s' created!", form.Name))
}

// View показывает слова папки.
func (h *FolderHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	folderID, ok := resourceID(r)
	if !ok {
		redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
		return
	}

	folder, err := h.folders.GetFolder(r.Context(), userID, folderID)
	if err != nil {
		if errors.Is(err, services.ErrFolderNotFound) {
			redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
			return
		}
		zap.S().Errorf("[FolderHandler] Ошибка получения папки %d: %v", folderID, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	words, err := h.words.ListWords(r.Context(), userID, folderID)
	if err != nil {
		zap.S().Errorf("[FolderHandler] Ошибка получения слов папки %d: %v", folderID, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	renderPage(w, h.renderer, PageFolder, PageData{
		Flashes:   h.sessions.PopFlashes(r.Context()),
		LoggedIn:  true,
		Folder:    folder,
		Words:     words,
		CanExport: h.canExport,
	})
}

// Rename переименовывает папку. Пустое имя молча игнорируется.
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	folderID, ok := resourceID(r)
	if !ok {
		redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
		return
	}

	var form models.RenameFolderForm
	if err := decodeForm(r, &form); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.folders.RenameFolder(r.Context(), userID, folderID, form.NewName); err != nil {
		zap.S().Errorf("[FolderHandler] Ошибка переименования папки %d: %v", folderID, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	redirectWithFlash(w, r, h.sessions, "/", msgFolderRenamed)
}

// Delete удаляет папку вместе со словами.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	folderID, ok := resourceID(r)
	if !ok {
		redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
		return
	}

	if err := h.folders.DeleteFolder(r.Context(), userID, folderID); err != nil {
		zap.S().Errorf("[FolderHandler] Ошибка удаления папки %d: %v", folderID, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	redirectWithFlash(w, r, h.sessions, "/", msgFolderDeleted)
}
