package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/maynagashev/vocabvault/internal/dictionary"
	"github.com/maynagashev/vocabvault/internal/repository"
	"github.com/maynagashev/vocabvault/internal/session"
)

const (
	defaultServerPort        = "5000"
	defaultDatabaseDSN       = "vocabvault.db"
	defaultDictionaryTimeout = 10 * time.Second
	defaultMinioBucket       = "vocabvault-exports"
	defaultLogLevel          = "info"

	// Переменные окружения.
	envServerHost        = "SERVER_HOST"
	envServerPort        = "SERVER_PORT"
	envSecretKey         = "SECRET_KEY" //nolint:gosec // Имя переменной окружения, а не секрет
	envDBDriver          = "DB_DRIVER"
	envDatabaseDSN       = "DATABASE_DSN"
	envDictionaryURL     = "DICTIONARY_URL"
	envDictionaryTimeout = "DICTIONARY_TIMEOUT"
	envRedisAddr         = "REDIS_ADDR"
	envRedisPassword     = "REDIS_PASSWORD" //nolint:gosec // Имя переменной окружения
	envRedisDB           = "REDIS_DB"
	envSessionTTL        = "SESSION_TTL"
	envTLSCertFile       = "TLS_CERT_FILE"
	envTLSKeyFile        = "TLS_KEY_FILE"
	envMinioEndpoint     = "MINIO_ENDPOINT"
	envMinioUser         = "MINIO_USER"
	envMinioPassword     = "MINIO_PASSWORD" //nolint:gosec // Имя переменной окружения
	envMinioBucket       = "MINIO_BUCKET"
	envMinioUseSSL       = "MINIO_USE_SSL"
	envMinioRegion       = "MINIO_REGION"
	envLogLevel          = "LOG_LEVEL"
	envLogFile           = "LOG_FILE"
	envDebug             = "DEBUG"
)

// config хранит конфигурацию сервера.
type config struct {
	Host      string
	Port      string
	SecretKey string

	DBDriver    string
	DatabaseDSN string

	DictionaryURL     string
	DictionaryTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	CertFile string
	KeyFile  string

	MinioEndpoint string
	MinioUser     string
	MinioPassword string
	MinioBucket   string
	MinioUseSSL   bool
	MinioRegion   string

	LogLevel string
	LogFile  string
	Debug    bool
}

// TLSEnabled сообщает, нужно ли запускать HTTPS.
func (c *config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// rawFlags - строковые значения флагов до применения окружения и разбора.
type rawFlags struct {
	dictionaryTimeout string
	redisDB           string
	sessionTTL        string
	debug             string
	minioUseSSL       string
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
// Приоритет: флаг, затем переменная окружения, затем значение по умолчанию.
func parseFlags() (*config, error) {
	cfg := &config{}
	raw := &rawFlags{}

	flag.StringVar(&cfg.Host, "host", "", fmt.Sprintf("Адрес для прослушивания (env: %s)", envServerHost))
	flag.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Порт HTTP-сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	flag.StringVar(&cfg.SecretKey, "secret-key", "",
		fmt.Sprintf("Ключ подписи cookie сессии, обязателен (env: %s)", envSecretKey))
	flag.StringVar(&cfg.DBDriver, "db-driver", "",
		fmt.Sprintf("Драйвер БД: sqlite или postgres (env: %s, default: %s)", envDBDriver, repository.DriverSQLite))
	flag.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("Строка подключения к БД (env: %s, default: %s)", envDatabaseDSN, defaultDatabaseDSN))
	flag.StringVar(&cfg.DictionaryURL, "dictionary-url", "",
		fmt.Sprintf("Адрес сервиса определений (env: %s, default: %s)", envDictionaryURL, dictionary.DefaultBaseURL))
	flag.StringVar(&raw.dictionaryTimeout, "dictionary-timeout", "",
		fmt.Sprintf("Таймаут запроса к словарю (env: %s, default: %s)", envDictionaryTimeout, defaultDictionaryTimeout))
	flag.StringVar(&cfg.RedisAddr, "redis-addr", "",
		fmt.Sprintf("Адрес Redis для сессий; пусто - сессии в памяти (env: %s)", envRedisAddr))
	flag.StringVar(&cfg.RedisPassword, "redis-password", "", fmt.Sprintf("Пароль Redis (env: %s)", envRedisPassword))
	flag.StringVar(&raw.redisDB, "redis-db", "", fmt.Sprintf("Номер БД Redis (env: %s, default: 0)", envRedisDB))
	flag.StringVar(&raw.sessionTTL, "session-ttl", "",
		fmt.Sprintf("Время жизни сессии (env: %s, default: %s)", envSessionTTL, session.DefaultTTL))
	flag.StringVar(&cfg.CertFile, "cert-file", "", fmt.Sprintf("Путь к файлу TLS-сертификата (env: %s)", envTLSCertFile))
	flag.StringVar(&cfg.KeyFile, "key-file", "", fmt.Sprintf("Путь к файлу TLS-ключа (env: %s)", envTLSKeyFile))
	flag.StringVar(&cfg.MinioEndpoint, "minio-endpoint", "",
		fmt.Sprintf("Адрес MinIO для экспорта папок; пусто - экспорт выключен (env: %s)", envMinioEndpoint))
	flag.StringVar(&cfg.MinioUser, "minio-user", "", fmt.Sprintf("Логин MinIO (env: %s)", envMinioUser))
	flag.StringVar(&cfg.MinioPassword, "minio-password", "", fmt.Sprintf("Пароль MinIO (env: %s)", envMinioPassword))
	flag.StringVar(&cfg.MinioBucket, "minio-bucket", "",
		fmt.Sprintf("Бакет для экспортов (env: %s, default: %s)", envMinioBucket, defaultMinioBucket))
	flag.StringVar(&raw.minioUseSSL, "minio-use-ssl", "",
		fmt.Sprintf("Подключаться к MinIO по HTTPS (env: %s, default: false)", envMinioUseSSL))
	flag.StringVar(&cfg.MinioRegion, "minio-region", "", fmt.Sprintf("Регион бакета (env: %s)", envMinioRegion))
	flag.StringVar(&cfg.LogLevel, "log-level", "",
		fmt.Sprintf("Уровень логирования (env: %s, default: %s)", envLogLevel, defaultLogLevel))
	flag.StringVar(&cfg.LogFile, "log-file", "", fmt.Sprintf("Файл логов с ротацией (env: %s)", envLogFile))
	flag.StringVar(&raw.debug, "debug", "", fmt.Sprintf("Режим отладки (env: %s)", envDebug))

	flag.Parse()

	applyEnv(&cfg.Host, envServerHost, "")
	applyEnv(&cfg.Port, envServerPort, defaultServerPort)
	applyEnv(&cfg.SecretKey, envSecretKey, "")
	applyEnv(&cfg.DBDriver, envDBDriver, repository.DriverSQLite)
	applyEnv(&cfg.DatabaseDSN, envDatabaseDSN, defaultDatabaseDSN)
	applyEnv(&cfg.DictionaryURL, envDictionaryURL, dictionary.DefaultBaseURL)
	applyEnv(&raw.dictionaryTimeout, envDictionaryTimeout, defaultDictionaryTimeout.String())
	applyEnv(&cfg.RedisAddr, envRedisAddr, "")
	applyEnv(&cfg.RedisPassword, envRedisPassword, "")
	applyEnv(&raw.redisDB, envRedisDB, "0")
	applyEnv(&raw.sessionTTL, envSessionTTL, session.DefaultTTL.String())
	applyEnv(&cfg.CertFile, envTLSCertFile, "")
	applyEnv(&cfg.KeyFile, envTLSKeyFile, "")
	applyEnv(&cfg.MinioEndpoint, envMinioEndpoint, "")
	applyEnv(&cfg.MinioUser, envMinioUser, "")
	applyEnv(&cfg.MinioPassword, envMinioPassword, "")
	applyEnv(&cfg.MinioBucket, envMinioBucket, defaultMinioBucket)
	applyEnv(&raw.minioUseSSL, envMinioUseSSL, "false")
	applyEnv(&cfg.MinioRegion, envMinioRegion, "")
	applyEnv(&cfg.LogLevel, envLogLevel, defaultLogLevel)
	applyEnv(&cfg.LogFile, envLogFile, "")
	applyEnv(&raw.debug, envDebug, "false")

	if err := raw.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv подставляет значение переменной окружения, если флаг не задан, иначе fallback.
func applyEnv(dst *string, key, fallback string) {
	if *dst != "" {
		return
	}
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
		return
	}
	*dst = fallback
}

// apply разбирает нестроковые параметры.
func (raw *rawFlags) apply(cfg *config) error {
	var err error
	if cfg.DictionaryTimeout, err = time.ParseDuration(raw.dictionaryTimeout); err != nil {
		return fmt.Errorf("некорректный таймаут словаря %q: %w", raw.dictionaryTimeout, err)
	}
	if cfg.RedisDB, err = strconv.Atoi(raw.redisDB); err != nil {
		return fmt.Errorf("некорректный номер БД Redis %q: %w", raw.redisDB, err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(raw.sessionTTL); err != nil {
		return fmt.Errorf("некорректное время жизни сессии %q: %w", raw.sessionTTL, err)
	}
	if cfg.Debug, err = strconv.ParseBool(raw.debug); err != nil {
		return fmt.Errorf("некорректное значение режима отладки %q: %w", raw.debug, err)
	}
	if cfg.MinioUseSSL, err = strconv.ParseBool(raw.minioUseSSL); err != nil {
		return fmt.Errorf("некорректное значение %s %q: %w", envMinioUseSSL, raw.minioUseSSL, err)
	}
	return nil
}

// validate проверяет обязательные и взаимосвязанные параметры.
func (c *config) validate() error {
	if c.SecretKey == "" {
		return errors.New("не указан ключ подписи сессий (--secret-key или " + envSecretKey + ")")
	}
	if c.DBDriver != repository.DriverSQLite && c.DBDriver != repository.DriverPostgres {
		return fmt.Errorf("неподдерживаемый драйвер БД %q (--db-driver или %s)", c.DBDriver, envDBDriver)
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("для HTTPS нужны и сертификат, и ключ (" + envTLSCertFile + ", " + envTLSKeyFile + ")")
	}
	if c.DictionaryTimeout <= 0 {
		return errors.New("таймаут словаря должен быть положительным")
	}
	if c.SessionTTL <= 0 {
		return errors.New("время жизни сессии должно быть положительным")
	}
	return nil
}
