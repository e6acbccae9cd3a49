package beatdetect

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// ConnectLogger attaches loggers to the peak detector.
func (pd *PeakDetector) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	pd.loggersMu.Lock()
	pd.loggers = append(pd.loggers, loggers...)
	pd.loggersMu.Unlock()
}

// NotifyLoggers emits a log event to all configured loggers.
func (pd *PeakDetector) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := pd.snapshotLoggers()
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

func (pd *PeakDetector) snapshotLoggers() []types.Logger {
	pd.loggersMu.Lock()
	defer pd.loggersMu.Unlock()
	if len(pd.loggers) == 0 {
		return nil
	}

	loggers := make([]types.Logger, len(pd.loggers))
	copy(loggers, pd.loggers)
	return loggers
}
