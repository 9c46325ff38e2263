package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/maynagashev/vocabvault/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена страниц.
const (
	PageRegister = "register"
	PageLogin    = "login"
	PageIndex    = "index"
	PageFolder   = "folder"
)

// SearchResult - найденные определения слова.
type SearchResult struct {
	Word     string
	Meanings models.Definitions
	// DefinitionsJSON - каноничный JSON определений для скрытого поля формы сохранения.
	DefinitionsJSON string
}

// PageData - данные для шаблонов страниц.
type PageData struct {
	Flashes  []string
	LoggedIn bool
	Word     string
	Folders  []models.FolderSummary
	Result   *SearchResult
	Folder   *models.Folder
	Words    []models.SavedWord
	// CanExport включает кнопку экспорта папки.
	CanExport bool
}

// Renderer отрисовывает HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, page string, data PageData) error
}

// TemplateRenderer отрисовывает встроенные в бинарник шаблоны html/template.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer разбирает шаблоны всех страниц.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{PageRegister, PageLogin, PageIndex, PageFolder} {
		tmpl, err := template.New(page).ParseFS(templatesFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора шаблона %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &TemplateRenderer{pages: pages}, nil
}

// Render выполняет шаблон в буфер, чтобы ошибка шаблона не оставила полуотрисованную страницу.
func (t *TemplateRenderer) Render(w http.ResponseWriter, page string, data PageData) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("неизвестная страница: %s", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("ошибка отрисовки страницы %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
