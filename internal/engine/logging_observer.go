package engine

import "log/slog"

// LoggingObserver logs all events at debug level using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer writing to the given logger (slog.Default when nil)
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Debug("lifecycle",
		"event", event.Type,
		"run_id", event.RunID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
