// Package logger provides the structured, levelled logger used across the
// back-office, built on zap.
//
// The key extension over a plain *zap.Logger is WithCtx: the Logger
// middleware stores a child logger tagged with the request ID in the request
// context, so every log line from a handler is automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("banner stored", zap.Uint("banner_id", id))
//	// → {"level":"info","msg":"banner stored","request_id":"…","banner_id":3}
package logger

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vitrine/backoffice/config"
)

var (
	// L is the process-wide base logger.
	L *zap.Logger

	mu      sync.Mutex
	closers []func()
)

func init() {
	L = New(config.AppEnv(), config.LogFile())
	zap.ReplaceGlobals(L)
}

// New builds a logger for env. Production environments get JSON at info
// level; everything else gets the console encoder at debug level. When
// file is non-empty a rotating file sink is teed in.
func New(env, file string) *zap.Logger {
	var (
		encCfg zapcore.EncoderConfig
		enc    zapcore.Encoder
		level  zapcore.Level
	)

	switch env {
	case "production", "prod":
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
		level = zapcore.InfoLevel
	default:
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
	}

	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Attach tees an extra core into the base logger. close is run by Close.
func Attach(core zapcore.Core, close func()) {
	mu.Lock()
	defer mu.Unlock()

	L = zap.New(zapcore.NewTee(L.Core(), core), zap.AddCaller())
	zap.ReplaceGlobals(L)
	if close != nil {
		closers = append(closers, close)
	}
}

// Close flushes the base logger and shuts down attached sinks.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	_ = L.Sync()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil
}

// ctxKey is the unexported key used to store a per-request *zap.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, fields ...zap.Field) { L.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L.Error(msg, fields...) }
