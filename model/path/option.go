package path

// DefaultGate is assigned to tokens without a gate suffix
const DefaultGate = "main"

// GateSeparator introduces the gate suffix of a token, e.g. "load#retry"
const GateSeparator = "#"

type options struct {
	separator   string
	defaultGate string
}

// Option customises path parsing
type Option func(o *options)

// WithSeparator sets the token separator
func WithSeparator(separator string) Option {
	return func(o *options) {
		if separator != "" {
			o.separator = separator
		}
	}
}

// WithDefaultGate sets the gate used for tokens without an explicit gate
func WithDefaultGate(gate string) Option {
	return func(o *options) {
		if gate != "" {
			o.defaultGate = gate
		}
	}
}

func newOptions(opts []Option) *options {
	ret := &options{separator: DefaultSeparator, defaultGate: DefaultGate}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
