// Package logger настраивает глобальный zap-логгер сервера.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Параметры ротации файла логов.
const (
	maxSizeMB  = 100
	maxBackups = 7
	maxAgeDays = 30
)

// Config содержит настройки логирования.
type Config struct {
	// Level - минимальный уровень: debug, info, warn, error.
	Level string
	// File - путь к файлу логов с ротацией; пусто - только stdout.
	File string
	// Debug включает уровень debug независимо от Level.
	Debug bool
}

// New создает логгер по конфигурации.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", cfg.Level, err)
		}
	}
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "level",
		TimeKey:       "ts",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	writers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("ошибка создания каталога логов: %w", err)
		}
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// Setup создает логгер, делает его глобальным (zap.S()) и перенаправляет в него стандартный log.
// Возвращает функцию, которую нужно вызвать при завершении.
func Setup(cfg Config) (func(), error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}

	restoreGlobals := zap.ReplaceGlobals(l)
	restoreStdLog := zap.RedirectStdLog(l)

	return func() {
		_ = l.Sync()
		restoreStdLog()
		restoreGlobals()
	}, nil
}
