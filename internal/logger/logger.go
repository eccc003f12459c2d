package logger

import (
	"github.com/meki101/mekitech.co.ke/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init runs so packages
// can log from tests without setup.
var Log = zap.NewNop()

// Init replaces Log using the log section of the config. Unknown levels fall
// back to info; format is "json" (default) or "console".
func Init(cfg config.LogConfig) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoding := "json"
	if cfg.Format == "console" {
		encoding = "console"
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(lvl),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encCfg,
		InitialFields:    map[string]any{"app": "mekitech"},
	}.Build()
	if err != nil {
		panic(err)
	}
	Log = l
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = Log.Sync()
}
