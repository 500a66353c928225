package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init builds the process logger. Production environments get JSON output
// at info level; everything else gets console output with debug enabled.
func Init(environment string) {
	level := zapcore.DebugLevel
	encoding := "console"
	if environment == "production" {
		level = zapcore.InfoLevel
		encoding = "json"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "msg",
			LevelKey:     "level",
			EncodeLevel:  zapcore.LowercaseLevelEncoder,
			TimeKey:      "time",
			EncodeTime:   zapcore.RFC3339TimeEncoder,
			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	sugar = l.Sugar()
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Debug logs with alternating key-value pairs.
func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	get().Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
