package flash

// Config holds the driver configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// CriticalSection brackets every flash-mutating sequence. The
	// caller supplies the platform's exclusive-access primitive
	// (disable interrupts, park the second core, gate DMA); the
	// default runs the body directly.
	CriticalSection func(body func())

	// LoaderRestore re-enters XIP through a fresh copy of the
	// second-stage boot loader instead of the ROM's default restorer.
	LoaderRestore bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		CriticalSection: func(body func()) { body() },
	}
}

// Option is a functional option for configuring the Driver.
type Option func(*Config)

// WithLogger sets a logger for driver operations.
//
// Example:
//
//	drv := flash.New(device, flash.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCriticalSection sets the exclusive-access bracket applied around
// every mutating operation.
//
// Example:
//
//	drv := flash.New(device, flash.WithCriticalSection(platform.InterruptFree))
func WithCriticalSection(cs func(body func())) Option {
	return func(c *Config) {
		if cs != nil {
			c.CriticalSection = cs
		}
	}
}

// WithLoaderRestore selects XIP restore through a captured boot-loader
// copy. Default is false (ROM restorer).
//
// Example:
//
//	drv := flash.New(device, flash.WithLoaderRestore(true))
func WithLoaderRestore(use bool) Option {
	return func(c *Config) {
		c.LoaderRestore = use
	}
}
