// Package klog backs actor.Logger with a zap.SugaredLogger, and adds a
// debug-only dump of the actor's internal state using go-spew — never on
// the hot path at info level or above.
package klog

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/streamkit/kconsumer/pkg/actor"
)

// Logger wraps a *zap.SugaredLogger behind actor.Logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New wraps z behind actor.Logger.
func New(z *zap.SugaredLogger) *Logger {
	return &Logger{sugar: z}
}

// NewProduction builds a production zap logger (JSON encoding, info level
// and above) and wraps it.
func NewProduction() (*Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(z.Sugar()), nil
}

// NewDevelopment builds a development zap logger (console encoding, debug
// level and above, caller/stacktrace annotations) and wraps it.
func NewDevelopment() (*Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return New(z.Sugar()), nil
}

func (l *Logger) Debugw(msg string, keyvals ...interface{}) { l.sugar.Debugw(msg, keyvals...) }
func (l *Logger) Infow(msg string, keyvals ...interface{})  { l.sugar.Infow(msg, keyvals...) }
func (l *Logger) Warnw(msg string, keyvals ...interface{})  { l.sugar.Warnw(msg, keyvals...) }
func (l *Logger) Errorw(msg string, keyvals ...interface{}) { l.sugar.Errorw(msg, keyvals...) }

var _ actor.Logger = (*Logger)(nil)

// DumpState renders v (a debug snapshot handed in by the caller; the actor
// passes its full *state after every dispatch) as a multi-line
// go-spew dump and logs it at debug level under msg. Kept separate from
// the four Logger methods since a spew dump is comparatively expensive to
// produce and must never run unless debug logging is actually enabled.
func (l *Logger) DumpState(msg string, v interface{}) {
	if !l.sugar.Desugar().Core().Enabled(zapcore.DebugLevel) {
		return
	}
	l.sugar.Debugw(msg, "dump", spew.Sdump(v))
}
