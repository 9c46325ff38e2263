// Package dictionary реализует клиент внешнего сервиса определений слов (dictionaryapi.dev).
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maynagashev/vocabvault/internal/models"
	"go.uber.org/zap"
)

// DefaultBaseURL - адрес публичного сервиса определений.
const DefaultBaseURL = "https://api.dictionaryapi.dev"

// MaxResponseBytes - предел размера ответа сервиса определений.
const MaxResponseBytes = 2 << 20

// Client определяет интерфейс поиска определений.
type Client interface {
	// Lookup возвращает определения слова, пример употребления которых содержит само слово.
	Lookup(ctx context.Context, word string) (models.Definitions, error)
}

// httpClient реализует Client поверх HTTP.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient создает клиент сервиса определений.
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Формат ответа сервиса: массив статей, в каждой - значения по частям речи.
type entry struct {
	Meanings []meaning `json:"meanings"`
}

type meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []definition `json:"definitions"`
}

type definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Lookup запрашивает статьи для слова и оставляет только определения с подходящим примером.
func (c *httpClient) Lookup(ctx context.Context, word string) (models.Definitions, error) {
	lookupURL, err := url.JoinPath(c.baseURL, "api/v2/entries/en", url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования URL для поиска слова: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к словарю: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.S().Errorf("[Dictionary] Ошибка запроса слова '%s': %v", word, err)
		return nil, fmt.Errorf("ошибка выполнения запроса к словарю: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.S().Infof("[Dictionary] Слово '%s' не найдено, статус %d", word, resp.StatusCode)
		return nil, ErrWordNotFound
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа словаря: %w", err)
	}
	if len(body) > MaxResponseBytes {
		zap.S().Errorf("[Dictionary] Ответ для слова '%s' больше %d байт", word, MaxResponseBytes)
		return nil, ErrResponseTooLarge
	}

	var entries []entry
	if err = json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("ошибка декодирования ответа словаря: %w", err)
	}

	defs := filterByExample(entries, word)
	if len(defs) == 0 {
		return nil, ErrNoRelevantExamples
	}
	return defs, nil
}

// filterByExample сохраняет порядок статья -> значение -> определение.
func filterByExample(entries []entry, word string) models.Definitions {
	needle := strings.ToLower(word)
	defs := make(models.Definitions, 0)
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				if d.Example == "" || !strings.Contains(strings.ToLower(d.Example), needle) {
					continue
				}
				defs = append(defs, models.Definition{
					PartOfSpeech: m.PartOfSpeech,
					Definition:   d.Definition,
					Example:      d.Example,
				})
			}
		}
	}
	return defs
}

// Ошибки поиска.
var (
	ErrWordNotFound       = errors.New("слово не найдено в словаре")
	ErrNoRelevantExamples = errors.New("нет определений с подходящими примерами")
	ErrResponseTooLarge   = errors.New("слишком большой ответ словаря")
)
