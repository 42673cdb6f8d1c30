package srec

// Config holds the parser configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// VerifyChecksums rejects any record whose byte count or checksum is
	// invalid while parsing. Default is false: parsing checks structure only
	// and Validate reports bad records afterwards.
	VerifyChecksums bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring Parse and ParseReader.
type Option func(*Config)

// WithLogger sets a logger for parsing and binary export.
//
// Example:
//
//	f, err := srec.Parse("firmware.s19", srec.WithLogger(slog.Default()))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithVerifyChecksums enables or disables count and checksum verification
// while parsing. Default is false.
//
// Example:
//
//	f, err := srec.Parse("firmware.s19", srec.WithVerifyChecksums(true))
func WithVerifyChecksums(verify bool) Option {
	return func(c *Config) {
		c.VerifyChecksums = verify
	}
}
