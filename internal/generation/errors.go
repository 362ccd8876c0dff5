package generation

import "errors"

// Common errors returned by the generation package. The worker maps these
// onto task failure categories, so a polling client sees the category as
// data rather than an exception.
var (
	// ErrUpstream is returned when the language model service fails or
	// responds with a protocol-level error.
	ErrUpstream = errors.New("upstream generation service error")

	// ErrTimeout is returned when a generation call exceeds its deadline.
	ErrTimeout = errors.New("generation timed out")

	// ErrMalformedResponse is returned when the model response cannot be
	// parsed or is missing required fields.
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrContentBlocked is returned when the model blocks the content due
	// to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
