package actor

// Logger is the observability surface the actor writes one entry to per
// state-modifying transition. It is a small interface rather than a direct
// zap dependency so that pkg/actor stays decoupled from the logging
// backend; pkg/klog supplies the zap-backed implementation used in
// production and in cmd/kconsumerctl.
type Logger interface {
	Debugw(msg string, keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
}

// StateDumper is an optional capability a Logger may implement to render a
// full *state snapshot (pkg/klog's implementation uses go-spew). The actor
// type-asserts for it rather than requiring every Logger to implement it,
// so a minimal test Logger can still satisfy the Logger interface alone.
type StateDumper interface {
	DumpState(msg string, v interface{})
}

func (a *Actor) dumpState(msg string) {
	if d, ok := a.log.(StateDumper); ok {
		d.DumpState(msg, a.cell.get())
	}
}

// noopLogger discards everything. Used when Config.Logger is nil so
// handlers never need a nil check.
type noopLogger struct{}

func (noopLogger) Debugw(string, ...interface{}) {}
func (noopLogger) Infow(string, ...interface{})  {}
func (noopLogger) Warnw(string, ...interface{})  {}
func (noopLogger) Errorw(string, ...interface{}) {}
