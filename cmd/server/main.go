package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/maynagashev/vocabvault/internal/dictionary"
	"github.com/maynagashev/vocabvault/internal/handlers"
	"github.com/maynagashev/vocabvault/internal/logger"
	appmiddleware "github.com/maynagashev/vocabvault/internal/middleware"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/maynagashev/vocabvault/internal/repository"
	"github.com/maynagashev/vocabvault/internal/services"
	"github.com/maynagashev/vocabvault/internal/session"
	"github.com/maynagashev/vocabvault/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 15 * time.Second
)

// Подменяются в тестах.
var (
	newDB          = repository.NewDB
	newRedisClient = session.NewRedisClient
	newMinioClient = func(ctx context.Context, cfg storage.MinioConfig) (storage.FileStorage, error) {
		return storage.NewMinioClient(ctx, cfg)
	}
)

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db            *sqlx.DB
	redis         *redis.Client
	sessions      *session.Manager
	ownership     repository.OwnershipChecker
	authHandler   *handlers.AuthHandler
	folderHandler *handlers.FolderHandler
	wordHandler   *handlers.WordHandler
	exportHandler *handlers.ExportHandler // nil, если MinIO не настроен
}

// Close освобождает соединения с БД и Redis.
func (d *dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			zap.S().Errorf("Ошибка закрытия соединения с Redis: %v", err)
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			zap.S().Errorf("Ошибка закрытия соединения с БД: %v", err)
		}
	}
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	// .env необязателен: переменные могут быть заданы окружением
	_ = godotenv.Load()

	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}

	syncLogger, err := logger.Setup(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("ошибка настройки логирования: %w", err)
	}
	defer syncLogger()

	zap.S().Info("Запуск сервера VocabVault...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer deps.Close()

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      setupRouter(deps),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			zap.S().Infof("Запуск HTTPS-сервера на %s (сертификат: %s)", server.Addr, cfg.CertFile)
			serveErr <- server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
			return
		}
		zap.S().Infof("Запуск HTTP-сервера на %s", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
		zap.S().Info("Получен сигнал остановки, завершаем обработку запросов...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	zap.S().Info("Сервер остановлен")
	return nil
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies(ctx context.Context, cfg *config) (*dependencies, error) {
	deps := &dependencies{}
	var err error

	// 1. БД и миграции
	deps.db, err = newDB(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	if err = repository.RunMigrations(ctx, deps.db); err != nil {
		deps.Close()
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}
	zap.S().Infof("Соединение с БД (%s) установлено, миграции применены", cfg.DBDriver)

	// 2. Хранилище сессий
	var store session.Store
	if cfg.RedisAddr != "" {
		deps.redis, err = newRedisClient(ctx, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("ошибка инициализации хранилища сессий: %w", err)
		}
		store = session.NewRedisStore(deps.redis)
	} else {
		zap.S().Info("REDIS_ADDR не задан, сессии хранятся в памяти процесса")
		store = session.NewMemoryStore()
	}
	deps.sessions = session.NewManager(store, cfg.SecretKey, cfg.SessionTTL, cfg.TLSEnabled())

	// 3. Репозитории
	userRepo := repository.NewUserRepository(deps.db)
	folderRepo := repository.NewFolderRepository(deps.db)
	wordRepo := repository.NewWordRepository(deps.db)
	deps.ownership = repository.NewOwnershipChecker(deps.db)

	// 4. Сервисы
	authService := services.NewAuthService(userRepo)
	folderService := services.NewFolderService(folderRepo)
	wordService := services.NewWordService(folderRepo, wordRepo)
	dict := dictionary.NewHTTPClient(cfg.DictionaryURL, cfg.DictionaryTimeout)

	// 5. Экспорт в MinIO (необязательно)
	if cfg.MinioEndpoint != "" {
		fileStorage, minioErr := newMinioClient(ctx, storage.MinioConfig{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioUser,
			SecretAccessKey: cfg.MinioPassword,
			UseSSL:          cfg.MinioUseSSL,
			BucketName:      cfg.MinioBucket,
			Region:          cfg.MinioRegion,
		})
		if minioErr != nil {
			deps.Close()
			return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", minioErr)
		}
		exportService := services.NewExportService(folderService, wordService, fileStorage)
		deps.exportHandler = handlers.NewExportHandler(exportService, deps.sessions)
	}

	// 6. Обработчики
	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("ошибка загрузки шаблонов: %w", err)
	}
	deps.authHandler = handlers.NewAuthHandler(authService, deps.sessions, renderer)
	deps.folderHandler = handlers.NewFolderHandler(
		folderService, wordService, deps.sessions, renderer, deps.exportHandler != nil)
	deps.wordHandler = handlers.NewWordHandler(dict, folderService, wordService, deps.sessions, renderer)

	return deps, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(deps *dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	folderGuard := appmiddleware.RequireOwnership(deps.ownership, deps.sessions, appmiddleware.Guard{
		Kind:            models.ResourceFolder,
		NotFoundMessage: "Folder not found.",
		Redirect:        appmiddleware.RedirectTo("/"),
	})
	wordGuard := appmiddleware.RequireOwnership(deps.ownership, deps.sessions, appmiddleware.Guard{
		Kind:            models.ResourceWord,
		NotFoundMessage: "Word not found or unauthorized.",
		Redirect:        appmiddleware.RedirectBack("/"),
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.sessions.Middleware)

		// Публичные маршруты
		r.Get("/register", deps.authHandler.RegisterPage)
		r.Post("/register", deps.authHandler.Register)
		r.Get("/login", deps.authHandler.LoginPage)
		r.Post("/login", deps.authHandler.Login)

		// Маршруты, требующие входа
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireUser)

			r.Get("/logout", deps.authHandler.Logout)
			r.Get("/", deps.folderHandler.Index)
			r.Post("/", deps.folderHandler.Index)
			r.Post("/search", deps.wordHandler.Search)
			r.Post("/add-folder", deps.folderHandler.Add)
			r.Post("/save", deps.wordHandler.Save)

			r.With(folderGuard).Get("/folder/{id:[0-9]+}", deps.folderHandler.View)
			r.With(folderGuard).Post("/rename-folder/{id:[0-9]+}", deps.folderHandler.Rename)
			r.With(folderGuard).Post("/delete-folder/{id:[0-9]+}", deps.folderHandler.Delete)
			r.With(wordGuard).Post("/delete-word/{id:[0-9]+}", deps.wordHandler.Delete)

			if deps.exportHandler != nil {
				r.With(folderGuard).Post("/folder/{id:[0-9]+}/export", deps.exportHandler.Export)
			}
		})
	})
	return r
}
