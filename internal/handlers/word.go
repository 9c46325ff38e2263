package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maynagashev/vocabvault/internal/dictionary"
	"github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/services"
	"go.uber.org/zap"
)

// Сообщения поиска и сохранения слов.
const (
	msgWordNotFound          = "Word not found."
	msgNoRelevantExamples    = "No definitions with relevant examples found."
	msgDictionaryUnavailable = "Dictionary service is unavailable. Try again later."
	msgCouldNotSave          = "Could not save word. Try again."
	msgSavedWordNotFound     = "Word not found or unauthorized."
)

// WordHandler обрабатывает поиск, сохранение и удаление слов.
type WordHandler struct {
	dict     dictionary.Client
	folders  services.FolderService
	words    services.WordService
	sessions Sessions
	renderer Renderer
}

// NewWordHandler создает новый экземпляр WordHandler.
func NewWordHandler(
	dict dictionary.Client,
	folders services.FolderService,
	words services.WordService,
	sessions Sessions,
	renderer Renderer,
) *WordHandler {
	return &WordHandler{
		dict:     dict,
		folders:  folders,
		words:    words,
		sessions: sessions,
		renderer: renderer,
	}
}

// Search ищет определения слова и показывает их вместе со списком папок для сохранения.
func (h *WordHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var form models.SearchForm
	if err := decodeForm(r, &form); err != nil {
		msg, ok := validationMessage(err)
		if !ok {
			msg = middleware.GenericErrorMessage
		}
		redirectWithFlash(w, r, h.sessions, "/", msg)
		return
	}

	defs, err := h.dict.Lookup(r.Context(), form.Word)
	if err != nil {
		switch {
		case errors.Is(err, dictionary.ErrWordNotFound):
			redirectWithFlash(w, r, h.sessions, "/", msgWordNotFound)
		case errors.Is(err, dictionary.ErrNoRelevantExamples):
			redirectWithFlash(w, r, h.sessions, "/", msgNoRelevantExamples)
		default:
			zap.S().Errorf("[WordHandler] Ошибка обращения к словарю для '%s': %v", form.Word, err)
			redirectWithFlash(w, r, h.sessions, "/", msgDictionaryUnavailable)
		}
		return
	}

	canonical, err := defs.Canonical()
	if err != nil {
		zap.S().Errorf("[WordHandler] Ошибка сериализации определений '%s': %v", form.Word, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	folders, err := h.folders.ListFolders(r.Context(), userID)
	if err != nil {
		zap.S().Errorf("[WordHandler] Ошибка получения папок пользователя %d: %v", userID, err)
		redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		return
	}

	renderPage(w, h.renderer, PageIndex, PageData{
		Flashes:  h.sessions.PopFlashes(r.Context()),
		LoggedIn: true,
		Folders:  folders,
		Result: &SearchResult{
			Word:            form.Word,
			Meanings:        defs,
			DefinitionsJSON: canonical,
		},
	})
}

// Save сохраняет найденное слово в папку пользователя.
func (h *WordHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var form models.SaveWordForm
	if err := decodeForm(r, &form); err != nil {
		msg, ok := validationMessage(err)
		if !ok {
			msg = middleware.GenericErrorMessage
		}
		redirectWithFlash(w, r, h.sessions, "/", msg)
		return
	}

	_, err := h.words.SaveWord(r.Context(), userID, form.FolderID, form.Word, form.Definitions)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidDefinitions):
			redirectWithFlash(w, r, h.sessions, "/", msgCouldNotSave)
		case errors.Is(err, services.ErrFolderNotFound):
			redirectWithFlash(w, r, h.sessions, "/", msgFolderNotFound)
		default:
			zap.S().Errorf("[WordHandler] Ошибка сохранения слова '%s': %v", form.Word, err)
			redirectWithFlash(w, r, h.sessions, "/", middleware.GenericErrorMessage)
		}
		return
	}

	redirectWithFlash(w, r, h.sessions, "/", fmt.Sprintf(`"%s" saved successfully!`, form.Word))
}

// Delete удаляет слово и возвращает пользователя на предыдущую страницу.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	back := middleware.SafeReferer(r, "/")

	wordID, ok := resourceID(r)
	if !ok {
		redirectWithFlash(w, r, h.sessions, back, msgSavedWordNotFound)
		return
	}

	word, err := h.words.DeleteWord(r.Context(), userID, wordID)
	if err != nil {
		if errors.Is(err, services.ErrWordNotFound) {
			redirectWithFlash(w, r, h.sessions, back, msgSavedWordNotFound)
			return
		}
		zap.S().Errorf("[WordHandler] Ошибка удаления слова %d: %v", wordID, err)
		redirectWithFlash(w, r, h.sessions, back, middleware.GenericErrorMessage)
		return
	}

	redirectWithFlash(w, r, h.sessions, back, fmt.Sprintf(`"%s" deleted.`, word.Word))
}
