package steelcat

type factoryOptions struct {
	logger   *Logger
	registry *Registry
}

// Option configures factory construction.
type Option func(*factoryOptions)

// WithLogger configures the factory's logger.
//
// If nil is passed, a noop logger is used.
func WithLogger(logger *Logger) Option {
	return func(o *factoryOptions) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithRegistry supplies a pre-populated registry instead of an empty one.
// Regions typically register their section constructors up front and hand
// the registry to the factory.
func WithRegistry(registry *Registry) Option {
	return func(o *factoryOptions) {
		if registry == nil {
			registry = NewRegistry()
		}
		o.registry = registry
	}
}
