// Package migrations содержит SQL-миграции схемы для goose, по каталогу на каждый диалект.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
