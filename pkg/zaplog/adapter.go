// Package zaplog adapts zap to healthkit.OperationLogger so the library stays
// logger-agnostic.
package zaplog

import (
	"errors"

	healthkit "github.com/goliatone/go-healthkit"
	"go.uber.org/zap"
)

// Adapter writes operation events to a zap SugaredLogger.
type Adapter struct {
	logger *zap.SugaredLogger
}

// New creates an OperationLogger from a zap SugaredLogger. A nil logger yields
// a no-op zap logger.
func New(logger *zap.SugaredLogger) *Adapter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Adapter{logger: logger}
}

// LogOperation implements healthkit.OperationLogger. Failures log at error
// level, caller mistakes and partial conversions at warn, short-circuits at
// info and everything else at debug.
func (a *Adapter) LogOperation(event healthkit.OperationEvent) {
	fields := []interface{}{
		"operation", event.Operation,
		"identifiers", event.Identifiers,
		"duration", event.Duration,
	}
	if event.Samples > 0 {
		fields = append(fields, "samples", event.Samples)
	}
	switch {
	case event.Err != nil:
		fields = append(fields, "error", event.Err)
		if warnOnly(event.Err) {
			a.logger.Warnw(message(event, "healthkit operation rejected"), fields...)
			return
		}
		a.logger.Errorw(message(event, "healthkit operation failed"), fields...)
	case event.Skipped:
		a.logger.Infow(message(event, "healthkit operation skipped"), fields...)
	default:
		a.logger.Debugw(message(event, "healthkit operation"), fields...)
	}
}

func message(event healthkit.OperationEvent, fallback string) string {
	if event.Message != "" {
		return event.Message
	}
	return fallback
}

func warnOnly(err error) bool {
	var conversion *healthkit.ConversionError
	return errors.As(err, &conversion) ||
		errors.Is(err, healthkit.ErrInvalidTimeWindow) ||
		errors.Is(err, healthkit.ErrUnknownUnit) ||
		errors.Is(err, healthkit.ErrRequestDenied)
}
