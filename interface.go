package linelog

import (
	"log"

	"go.uber.org/zap"
)

// Sink receives the errors a Logger swallows. LogError is called while the
// Logger is locked, so it must not write to the same Logger, or a deadlock
// will occur. If it needs to, do that in a go routine.
type Sink interface {
	LogError(err error)
}

// SinkFunc allows using a plain function as a Sink.
type SinkFunc func(err error)

// LogError satisfies the Sink interface.
func (f SinkFunc) LogError(err error) {
	f(err)
}

// ZapSink returns a Sink that writes each error to a zap logger at warn level.
func ZapSink(logger *zap.Logger) Sink {
	return SinkFunc(func(err error) {
		logger.Warn("linelog operation failed", zap.Error(err))
	})
}

// Discard is a Sink that drops every error. LastError still works.
var Discard Sink = SinkFunc(func(error) {}) //nolint:gochecknoglobals

// stdSink writes errors with the standard library logger. This is the default.
func stdSink() Sink {
	return SinkFunc(func(err error) {
		log.Printf("[linelog] %v", err)
	})
}

// Our interface must satify a Sink.
var _ Sink = SinkFunc(nil)
