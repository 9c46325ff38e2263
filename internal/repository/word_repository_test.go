package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wordColumns = []string{"id", "user_id", "folder_id", "word", "definitions", "created_at"}

func TestCreateWord(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO saved_words (user_id, folder_id, word, definitions) VALUES (?, ?, ?, ?) RETURNING id`)
	word := &models.SavedWord{
		UserID:   7,
		FolderID: 3,
		Word:     "run",
		Definitions: models.Definitions{
			{PartOfSpeech: "verb", Definition: "To move swiftly.", Example: "I run daily."},
		},
	}
	canonical := `[{"part_of_speech":"verb","definition":"To move swiftly.","example":"I run daily."}]`

	t.Run("Определения пишутся каноничным JSON", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs(int64(7), int64(3), "run", canonical).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		id, err := repository.NewWordRepository(db).CreateWord(context.Background(), word)
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("boom"))

		id, err := repository.NewWordRepository(db).CreateWord(context.Background(), word)
		require.Error(t, err)
		assert.Zero(t, id)
	})
}

func TestListWordsByFolder(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, user_id, folder_id, word, definitions, created_at FROM saved_words ` +
		`WHERE folder_id = ? AND user_id = ? ORDER BY created_at DESC, id DESC`)
	now := time.Now()

	t.Run("Определения десериализуются", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows(wordColumns).
			AddRow(int64(2), int64(7), int64(3), "walk", `[{"part_of_speech":"verb","definition":"d2","example":"walk on"}]`, now).
			AddRow(int64(1), int64(7), int64(3), "run", `[{"part_of_speech":"verb","definition":"d1","example":"run!"}]`, now)
		mock.ExpectQuery(query).WithArgs(int64(3), int64(7)).WillReturnRows(rows)

		words, err := repository.NewWordRepository(db).ListWordsByFolder(context.Background(), 7, 3)
		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "walk", words[0].Word)
		assert.Equal(t, models.Definitions{{PartOfSpeech: "verb", Definition: "d1", Example: "run!"}}, words[1].Definitions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Испорченные определения в БД", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows(wordColumns).AddRow(int64(1), int64(7), int64(3), "run", `{not json`, now)
		mock.ExpectQuery(query).WithArgs(int64(3), int64(7)).WillReturnRows(rows)

		words, err := repository.NewWordRepository(db).ListWordsByFolder(context.Background(), 7, 3)
		require.ErrorIs(t, err, models.ErrInvalidDefinitions)
		assert.Nil(t, words)
	})

	t.Run("Пустая папка", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs(int64(3), int64(7)).WillReturnRows(sqlmock.NewRows(wordColumns))

		words, err := repository.NewWordRepository(db).ListWordsByFolder(context.Background(), 7, 3)
		require.NoError(t, err)
		assert.Empty(t, words)
	})
}

func TestGetWord(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, user_id, folder_id, word, definitions, created_at FROM saved_words WHERE id = ? AND user_id = ?`)
	now := time.Now()

	t.Run("Свое слово", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs(int64(5), int64(7)).WillReturnRows(sqlmock.NewRows(wordColumns).
			AddRow(int64(5), int64(7), int64(3), "run", `[{"part_of_speech":"verb","definition":"d","example":"run"}]`, now))

		word, err := repository.NewWordRepository(db).GetWord(context.Background(), 7, 5)
		require.NoError(t, err)
		assert.Equal(t, "run", word.Word)
		assert.Equal(t, int64(3), word.FolderID)
	})

	t.Run("Чужое или отсутствующее слово", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs(int64(5), int64(8)).WillReturnError(sql.ErrNoRows)

		word, err := repository.NewWordRepository(db).GetWord(context.Background(), 8, 5)
		require.ErrorIs(t, err, repository.ErrWordNotFound)
		assert.Nil(t, word)
	})
}

func TestDeleteWord(t *testing.T) {
	query := regexp.QuoteMeta(`DELETE FROM saved_words WHERE id = ? AND user_id = ?`)

	t.Run("Удалено", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).WithArgs(int64(5), int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repository.NewWordRepository(db).DeleteWord(context.Background(), 7, 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нечего удалять", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).WithArgs(int64(5), int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repository.NewWordRepository(db).DeleteWord(context.Background(), 8, 5)
		require.ErrorIs(t, err, repository.ErrWordNotFound)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).WillReturnError(errors.New("boom"))

		err := repository.NewWordRepository(db).DeleteWord(context.Background(), 7, 5)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrWordNotFound)
	})
}

func TestOwnershipChecker(t *testing.T) {
	folderQuery := regexp.QuoteMeta(`SELECT COUNT(1) FROM folders WHERE id = ? AND user_id = ?`)
	wordQuery := regexp.QuoteMeta(`SELECT COUNT(1) FROM saved_words WHERE id = ? AND user_id = ?`)

	tests := []struct {
		name     string
		kind     models.ResourceKind
		query    string
		count    int64
		expected bool
	}{
		{name: "Своя папка", kind: models.ResourceFolder, query: folderQuery, count: 1, expected: true},
		{name: "Чужая папка", kind: models.ResourceFolder, query: folderQuery, count: 0, expected: false},
		{name: "Свое слово", kind: models.ResourceWord, query: wordQuery, count: 1, expected: true},
		{name: "Чужое слово", kind: models.ResourceWord, query: wordQuery, count: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(tt.query).WithArgs(int64(9), int64(7)).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			owns, err := repository.NewOwnershipChecker(db).Owns(context.Background(), 7, tt.kind, 9)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, owns)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("Неизвестный тип ресурса", func(t *testing.T) {
		db, _ := newMockDB(t)
		owns, err := repository.NewOwnershipChecker(db).Owns(context.Background(), 7, "tag", 9)
		require.Error(t, err)
		assert.False(t, owns)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(folderQuery).WillReturnError(errors.New("boom"))

		owns, err := repository.NewOwnershipChecker(db).Owns(context.Background(), 7, models.ResourceFolder, 9)
		require.Error(t, err)
		assert.False(t, owns)
	})
}
