package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the logging facade injected into usecases and handlers.
type ZapLogger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	Sync() error
}

type ZapLoggerConfig struct {
	IsDevelopment     bool
	Encoding          string // "json" or "console"
	Level             string // debug, info, warn, error
	DisableCaller     bool
	DisableStacktrace bool
}

type zapLogger struct {
	*zap.Logger
}

func NewZapLogger(cfg *ZapLoggerConfig) ZapLogger {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.IsDevelopment {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	zc.DisableCaller = cfg.DisableCaller
	zc.DisableStacktrace = cfg.DisableStacktrace

	l, err := zc.Build()
	if err != nil {
		// Config is static; a build failure here is a programming error.
		panic(err)
	}
	return &zapLogger{l}
}

// NewNop returns a logger that discards everything. Test use.
func NewNop() ZapLogger {
	return &zapLogger{zap.NewNop()}
}
