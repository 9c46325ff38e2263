package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Definition - одно значение слова вместе с примером употребления.
// Именно в таком виде определения хранятся в колонке saved_words.definitions.
type Definition struct {
	PartOfSpeech string `json:"part_of_speech"`
	Definition   string `json:"definition"`
	Example      string `json:"example"`
}

// Definitions - список определений сохраненного слова.
// Реализует sql.Scanner и driver.Valuer, поэтому в БД всегда попадает каноничный JSON.
type Definitions []Definition

// SavedWord представляет слово, сохраненное пользователем в папку.
type SavedWord struct {
	ID          int64       `db:"id" json:"id"`
	UserID      int64       `db:"user_id" json:"user_id"`
	FolderID    int64       `db:"folder_id" json:"folder_id"`
	Word        string      `db:"word" json:"word"`
	Definitions Definitions `db:"definitions" json:"definitions"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// ParseDefinitions разбирает присланный клиентом JSON со списком определений.
// Допускается только массив объектов {part_of_speech, definition, example} хотя бы из одного элемента.
func ParseDefinitions(raw string) (Definitions, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: ожидается JSON-массив", ErrInvalidDefinitions)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	defs := Definitions{}
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinitions, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: лишние данные после массива", ErrInvalidDefinitions)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: пустой список", ErrInvalidDefinitions)
	}
	for i, d := range defs {
		if d.Definition == "" {
			return nil, fmt.Errorf("%w: пустое определение в элементе %d", ErrInvalidDefinitions, i)
		}
	}
	return defs, nil
}

// Canonical возвращает каноничное JSON-представление списка.
func (d Definitions) Canonical() (string, error) {
	if d == nil {
		d = Definitions{}
	}
	b, err := json.Marshal([]Definition(d))
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации определений: %w", err)
	}
	return string(b), nil
}

// Value реализует driver.Valuer.
func (d Definitions) Value() (driver.Value, error) {
	return d.Canonical()
}

// Scan реализует sql.Scanner. Испорченный JSON в БД возвращается как ErrInvalidDefinitions.
func (d *Definitions) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		return fmt.Errorf("%w: NULL вместо списка", ErrInvalidDefinitions)
	default:
		return fmt.Errorf("%w: неподдерживаемый тип %T", ErrInvalidDefinitions, src)
	}

	parsed := Definitions{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinitions, err)
	}
	*d = parsed
	return nil
}

// ErrInvalidDefinitions означает, что список определений не соответствует ожидаемой схеме.
var ErrInvalidDefinitions = errors.New("некорректный список определений")
