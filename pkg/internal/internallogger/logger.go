package internallogger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter wraps a zap logger behind the types.Logger interface so
// pipeline components stay decoupled from the logging backend.
type ZapLoggerAdapter struct {
	logger       *zap.Logger
	level        zapcore.Level
	callerDepth  int
	mu           sync.Mutex
	sinks        map[string]zapcore.Core
	combinedCore zapcore.Core
}

// NewLogger initializes a new ZapLoggerAdapter with configurable options.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	config := zap.NewProductionConfig()
	var level zapcore.Level
	var callerDepth int = 3 // Default caller depth

	for _, option := range options {
		option(&config, &level, &callerDepth)
	}

	// Ensure at least one core is created to prevent nil logger
	defaultCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))
	cores := []zapcore.Core{defaultCore}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(callerDepth))

	return &ZapLoggerAdapter{
		logger:       logger,
		level:        level,
		callerDepth:  callerDepth,
		sinks:        make(map[string]zapcore.Core),
		combinedCore: zapcore.NewTee(cores...),
	}
}
