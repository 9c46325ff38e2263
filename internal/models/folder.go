package models

import "time"

// Folder представляет именованную папку пользователя со словами.
type Folder struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FolderSummary - папка вместе с количеством сохраненных в ней слов.
type FolderSummary struct {
	Folder
	WordCount int64 `db:"word_count" json:"word_count"`
}

// FolderExport - документ, который выгружается в объектное хранилище при экспорте папки.
type FolderExport struct {
	Folder     Folder      `json:"folder"`
	ExportedAt time.Time   `json:"exported_at"`
	Words      []SavedWord `json:"words"`
}

// ResourceKind - тип ресурса, принадлежность которого пользователю проверяется перед изменением.
type ResourceKind string

const (
	ResourceFolder ResourceKind = "folder"
	ResourceWord   ResourceKind = "word"
)
