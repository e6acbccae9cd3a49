package bandpass

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// ConnectLogger attaches loggers to the filter engine.
func (fe *FilterEngine) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	fe.loggersMu.Lock()
	fe.loggers = append(fe.loggers, loggers...)
	fe.loggersMu.Unlock()
}

// NotifyLoggers emits a log event to all configured loggers.
func (fe *FilterEngine) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := fe.snapshotLoggers()
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

func (fe *FilterEngine) snapshotLoggers() []types.Logger {
	fe.loggersMu.Lock()
	defer fe.loggersMu.Unlock()
	if len(fe.loggers) == 0 {
		return nil
	}

	loggers := make([]types.Logger, len(fe.loggers))
	copy(loggers, fe.loggers)
	return loggers
}
