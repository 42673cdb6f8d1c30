package srec

// Logger is an optional logging interface that can be provided to the parser
// and the binary writer. *slog.Logger satisfies it.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...any) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...any)  { log.Println(msg, kv) }
//	func (l *StdLogger) Warn(msg string, kv ...any)  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...any) { log.Println(msg, kv) }
//
//	fw, err := srec.Parse("firmware.s19", srec.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning with optional key-value pairs
	Warn(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...any)
}

func (c *Config) logDebug(msg string, keysAndValues ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keysAndValues...)
	}
}

func (c *Config) logWarn(msg string, keysAndValues ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, keysAndValues...)
	}
}
