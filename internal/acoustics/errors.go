package acoustics

import "errors"

// Domain errors for simulation configuration. All of them are detected
// before any simulation work begins; none are retryable.
var (
	// ErrInvalidAbsorption indicates an absorption coefficient outside [0,1]
	// or a band with the wrong number of wall coefficients.
	ErrInvalidAbsorption = errors.New("acoustics: invalid absorption coefficient")

	// ErrEmptyConfiguration indicates a config with no sources or no receivers.
	ErrEmptyConfiguration = errors.New("acoustics: no sources or receivers configured")

	// ErrOutOfBounds indicates a source or receiver outside the room extents.
	ErrOutOfBounds = errors.New("acoustics: position outside room extents")

	// ErrInvalidOptions indicates engine options with non-positive sample
	// rate, buffer length, or speed of sound.
	ErrInvalidOptions = errors.New("acoustics: invalid engine options")

	// ErrNegativeOrder indicates a negative maximum reflection order.
	ErrNegativeOrder = errors.New("acoustics: max order must be non-negative")
)

// ConfigError wraps a validation failure with the field that caused it.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Wrapped.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
