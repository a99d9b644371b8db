package cookbook

import "github.com/charmbracelet/log"

// Diagnostics receives non-fatal warnings and fatal reports from a loader.
// Fatal only records the condition; the caller still gets the error.
type Diagnostics interface {
	Warn(msg string, keyvals ...any)
	Fatal(msg string, keyvals ...any)
}

type logDiagnostics struct {
	logger *log.Logger
}

// NewLogDiagnostics adapts a charmbracelet logger to Diagnostics.
func NewLogDiagnostics(logger *log.Logger) Diagnostics {
	return &logDiagnostics{logger: logger}
}

func (d *logDiagnostics) Warn(msg string, keyvals ...any) {
	d.logger.Warn(msg, keyvals...)
}

// Fatal logs at fatal level without exiting the process.
func (d *logDiagnostics) Fatal(msg string, keyvals ...any) {
	d.logger.Log(log.FatalLevel, msg, keyvals...)
}

type discard struct{}

func (discard) Warn(string, ...any)  {}
func (discard) Fatal(string, ...any) {}

// Discard drops every diagnostic.
var Discard Diagnostics = discard{}
