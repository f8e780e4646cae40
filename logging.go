package healthkit

import "time"

// Operation names reported to OperationLogger.
const (
	OpFetch                     = "fetch"
	OpCheckAuthorization        = "authorization.check"
	OpRequestAuthorization      = "authorization.request"
	OpAuthorizationStatus       = "authorization.status"
	OpEnableBackgroundDelivery  = "background_delivery.enable"
	OpDisableBackgroundDelivery = "background_delivery.disable"
	OpEmitActivity              = "activity.emit"
)

// OperationEvent describes one completed operation.
type OperationEvent struct {
	Operation   string
	Identifiers []string
	Samples     int
	Duration    time.Duration
	Message     string
	Skipped     bool // returned without calling the platform
	Err         error
}

// OperationLogger records operation events.
type OperationLogger interface {
	LogOperation(OperationEvent)
}

// OperationLoggerFunc adapts a function to OperationLogger.
type OperationLoggerFunc func(OperationEvent)

// LogOperation implements OperationLogger.
func (f OperationLoggerFunc) LogOperation(event OperationEvent) {
	if f != nil {
		f(event)
	}
}

type noopOperationLogger struct{}

func (noopOperationLogger) LogOperation(OperationEvent) {}

type multiOperationLogger []OperationLogger

func (m multiOperationLogger) LogOperation(event OperationEvent) {
	for _, logger := range m {
		logger.LogOperation(event)
	}
}

// MultiOperationLogger fans events out to every non-nil logger.
func MultiOperationLogger(loggers ...OperationLogger) OperationLogger {
	out := make(multiOperationLogger, 0, len(loggers))
	for _, logger := range loggers {
		if logger != nil {
			out = append(out, logger)
		}
	}
	switch len(out) {
	case 0:
		return noopOperationLogger{}
	case 1:
		return out[0]
	default:
		return out
	}
}
