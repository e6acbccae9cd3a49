package spectral

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// ConnectLogger attaches loggers to the frequency analyzer.
func (fa *FrequencyAnalyzer) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	fa.loggersMu.Lock()
	fa.loggers = append(fa.loggers, loggers...)
	fa.loggersMu.Unlock()
}

// NotifyLoggers emits a log event to all configured loggers.
func (fa *FrequencyAnalyzer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := fa.snapshotLoggers()
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

func (fa *FrequencyAnalyzer) snapshotLoggers() []types.Logger {
	fa.loggersMu.Lock()
	defer fa.loggersMu.Unlock()
	if len(fa.loggers) == 0 {
		return nil
	}

	loggers := make([]types.Logger, len(fa.loggers))
	copy(loggers, fa.loggers)
	return loggers
}
