package vitals

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// ConnectLogger attaches loggers to the vitals calculator.
func (vc *VitalsCalculator) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	vc.loggersMu.Lock()
	vc.loggers = append(vc.loggers, loggers...)
	vc.loggersMu.Unlock()
}

// NotifyLoggers emits a log event to all configured loggers.
func (vc *VitalsCalculator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := vc.snapshotLoggers()
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

func (vc *VitalsCalculator) snapshotLoggers() []types.Logger {
	vc.loggersMu.Lock()
	defer vc.loggersMu.Unlock()
	if len(vc.loggers) == 0 {
		return nil
	}

	loggers := make([]types.Logger, len(vc.loggers))
	copy(loggers, vc.loggers)
	return loggers
}
