package models

import "strings"

// Формы запросов. Каждая форма разбирается один раз на границе обработчика
// (тэг `form` задает имя поля) и проверяется методом Validate.

// ValidationError описывает ошибку заполнения формы.
// Message показывается пользователю как есть.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MaxPasswordBytes - предел длины пароля: bcrypt не принимает более длинные.
const MaxPasswordBytes = 72

// RegisterForm - форма регистрации.
type RegisterForm struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

// Validate проверяет заполненность полей и совпадение паролей.
func (f *RegisterForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	switch {
	case f.Username == "":
		return invalid("username", "All fields are required")
	case f.Password == "":
		return invalid("password", "All fields are required")
	case f.Confirmation == "":
		return invalid("confirmation", "All fields are required")
	case len(f.Password) > MaxPasswordBytes:
		return invalid("password", "Password is too long (max 72 bytes).")
	case f.Password != f.Confirmation:
		return invalid("confirmation", "Passwords don't match.")
	}
	return nil
}

// LoginForm - форма входа.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Validate проверяет, что оба поля заполнены.
func (f *LoginForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		return invalid("username", "Please fill out both fields.")
	}
	if f.Password == "" {
		return invalid("password", "Please fill out both fields.")
	}
	return nil
}

// IndexForm - необязательное слово, которое главная страница подставляет в поле поиска.
type IndexForm struct {
	Word string `form:"word"`
}

// Validate для главной страницы ничего не требует.
func (f *IndexForm) Validate() error {
	f.Word = strings.TrimSpace(f.Word)
	return nil
}

// SearchForm - форма поиска слова.
type SearchForm struct {
	Word string `form:"word"`
}

// Validate проверяет, что слово указано.
func (f *SearchForm) Validate() error {
	f.Word = strings.TrimSpace(f.Word)
	if f.Word == "" {
		return invalid("word", "Please enter a word.")
	}
	return nil
}

// AddFolderForm - форма создания папки.
type AddFolderForm struct {
	Name string `form:"folder_name"`
}

// Validate проверяет имя папки.
func (f *AddFolderForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return invalid("folder_name", "Folder name required.")
	}
	return nil
}

// RenameFolderForm - форма переименования папки.
type RenameFolderForm struct {
	NewName string `form:"new_name"`
}

// Validate проверяет новое имя папки.
func (f *RenameFolderForm) Validate() error {
	f.NewName = strings.TrimSpace(f.NewName)
	if f.NewName == "" {
		return invalid("new_name", "Folder name required.")
	}
	return nil
}

// SaveWordForm - форма сохранения найденного слова в папку.
// Definitions - JSON-массив определений, который страница поиска кладет в скрытое поле.
type SaveWordForm struct {
	Word        string `form:"word"`
	FolderID    int64  `form:"folder_id"`
	Definitions string `form:"definitions"`
}

// Validate проверяет наличие всех полей. Схема определений проверяется сервисом при сохранении.
func (f *SaveWordForm) Validate() error {
	f.Word = strings.TrimSpace(f.Word)
	switch {
	case f.Word == "":
		return invalid("word", "Missing data.")
	case f.FolderID <= 0:
		return invalid("folder_id", "Missing data.")
	case strings.TrimSpace(f.Definitions) == "":
		return invalid("definitions", "Missing data.")
	}
	return nil
}
