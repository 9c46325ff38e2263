package services

import "errors"

// Кастомные ошибки сервисов.
var (
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrUsernameTaken      = errors.New("имя пользователя уже занято")
	ErrPasswordTooLong    = errors.New("пароль длиннее 72 байт")
	ErrFolderNotFound     = errors.New("папка не найдена")
	ErrWordNotFound       = errors.New("слово не найдено или нет доступа")
)
