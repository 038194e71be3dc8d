package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used across the service.
// - package-level Debugf/Infof/Warnf/Errorf and Init(level)
// - backed by zap; L() exposes the structured logger for fields

var (
	mu    sync.RWMutex
	atom  = zap.NewAtomicLevel()
	base  = newLogger(atom)
	sugar = base.Sugar()
)

func newLogger(lvl zap.AtomicLevel) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), lvl)
	return zap.New(core)
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	s := strings.ToLower(strings.TrimSpace(l))
	switch s {
	case "debug":
		atom.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		atom.SetLevel(zapcore.WarnLevel)
	case "error":
		atom.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		atom.SetLevel(zapcore.FatalLevel)
	default:
		atom.SetLevel(zapcore.InfoLevel)
	}
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func s() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// replaceCore swaps the output core and returns a func restoring the previous logger.
func replaceCore(core zapcore.Core) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := base
	base = zap.New(core)
	sugar = base.Sugar()
	return func() {
		mu.Lock()
		defer mu.Unlock()
		base = prev
		sugar = prev.Sugar()
	}
}

func Debugf(format string, v ...interface{}) { s().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { s().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { s().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { s().Errorf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	s().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// LevelString returns the current level as text.
func LevelString() string {
	return atom.Level().String()
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}
