// Package logging provides config-driven categorized logging for oxidekit-core.
// Each core component gets its own named category; output is JSON-structured
// when Configure is called with JSONFormat, otherwise a plain zap console
// encoder is used.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies which component emitted a log entry.
type Category string

const (
	CategoryVersion     Category = "version"
	CategoryCapability  Category = "capability"
	CategoryGovernance  Category = "governance"
	CategoryInheritance Category = "inheritance"
	CategoryTextEdit    Category = "textedit"
	CategoryDevtools    Category = "devtools"
	CategoryHotReload   Category = "hotreload"
	CategoryAttestation Category = "attestation"
	CategoryCLI         Category = "cli"
)

// Config controls the process-wide logging sink.
type Config struct {
	Level      string `yaml:"level"`       // debug|info|warn|error
	JSONFormat bool   `yaml:"json_format"` // structured JSON instead of console text
}

var (
	mu       sync.RWMutex
	base     *zap.Logger
	loggers  = make(map[Category]*zap.SugaredLogger)
	level    = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfgDone  bool
	jsonMode bool
)

// Configure rewires the process-wide logger from a loaded Config. Safe to
// call more than once (e.g. after a config reload); existing *zap.SugaredLogger
// handles returned by Get remain valid since they wrap the shared core.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}
	jsonMode = cfg.JSONFormat

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if jsonMode {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	base = zap.New(core)
	loggers = make(map[Category]*zap.SugaredLogger)
	cfgDone = true
}

// Get returns (creating if necessary) the logger for category.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if !cfgDone {
		mu.RUnlock()
		Configure(Config{Level: "info"})
		mu.RLock()
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.Sugar().With("category", string(category))
	loggers[category] = l
	return l
}

// Sync flushes all buffered log entries; call during graceful shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if base != nil {
		_ = base.Sync()
	}
}
