package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Драйвер PostgreSQL, импортируем для регистрации
	"github.com/maynagashev/vocabvault/internal/repository/migrations"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Драйвер SQLite (без cgo), импортируем для регистрации
)

// Поддерживаемые драйверы БД.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	maxOpenConns    = 25              // Максимальное количество открытых соединений
	maxIdleConns    = 25              // Максимальное количество простаивающих соединений
	connMaxLifetime = 5 * time.Minute // Максимальное время жизни соединения
	connMaxIdleTime = 5 * time.Minute // Максимальное время простоя соединения
)

// NewDB создает и возвращает подключение к БД указанного драйвера.
func NewDB(driver, dsn string) (*sqlx.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("ошибка подключения к БД: неподдерживаемый драйвер %q", driver)
	}
	zap.S().Infof("Подключение к БД (%s)...", driver)

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite не любит конкурентных писателей, держим одно соединение
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxIdleConns)
		db.SetConnMaxLifetime(connMaxLifetime)
		db.SetConnMaxIdleTime(connMaxIdleTime)
	}

	zap.S().Infof("Подключение к БД (%s) успешно установлено.", driver)
	return db, nil
}

// gooseDialects сопоставляет драйверы с диалектами goose и каталогами миграций.
var gooseDialects = map[string]struct {
	dialect string
	dir     string
}{
	DriverSQLite:   {dialect: "sqlite3", dir: "sqlite"},
	DriverPostgres: {dialect: "postgres", dir: "postgres"},
}

// RunMigrations применяет встроенные миграции к БД.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	d, ok := gooseDialects[db.DriverName()]
	if !ok {
		return fmt.Errorf("миграции не поддерживаются для драйвера %q", db.DriverName())
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("ошибка выбора диалекта миграций: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, d.dir); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	zap.S().Infof("Миграции БД (%s) применены.", d.dialect)
	return nil
}
