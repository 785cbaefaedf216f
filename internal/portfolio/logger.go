package portfolio

// Logger receives simulation diagnostics. Implementations must be safe to
// call with printf-style arguments.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// runLogger prefixes every line with the run identifier.
type runLogger struct {
	id     string
	logger Logger
}

func (l runLogger) Debugf(format string, args ...any) {
	l.logger.Debugf("run %s: "+format, append([]any{l.id}, args...)...)
}

func (l runLogger) Infof(format string, args ...any) {
	l.logger.Infof("run %s: "+format, append([]any{l.id}, args...)...)
}

func (l runLogger) Warnf(format string, args ...any) {
	l.logger.Warnf("run %s: "+format, append([]any{l.id}, args...)...)
}

func (l runLogger) Errorf(format string, args ...any) {
	l.logger.Errorf("run %s: "+format, append([]any{l.id}, args...)...)
}
