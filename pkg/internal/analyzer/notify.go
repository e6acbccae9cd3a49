package analyzer

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// ConnectLogger attaches loggers to the analyzer.
func (a *Analyzer) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	a.loggersMu.Lock()
	a.loggers = append(a.loggers, loggers...)
	a.loggersMu.Unlock()
}

// NotifyLoggers emits a log event to all configured loggers.
func (a *Analyzer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := a.snapshotLoggers()
	if len(loggers) == 0 {
		return
	}

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (a *Analyzer) snapshotLoggers() []types.Logger {
	a.loggersMu.Lock()
	defer a.loggersMu.Unlock()
	if len(a.loggers) == 0 {
		return nil
	}

	loggers := make([]types.Logger, len(a.loggers))
	copy(loggers, a.loggers)
	return loggers
}
