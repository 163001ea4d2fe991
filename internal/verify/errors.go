package verify

import "errors"

// Domain errors for verification clients.
var (
	// ErrEmptyInstructions reports a client constructed without system
	// instructions. It is fatal at startup, never retried.
	ErrEmptyInstructions = errors.New("verification instructions are empty")

	// ErrInvalidVerdict reports structured output that parsed but carried an
	// unrecognized colour status. It is retryable alongside parse failures.
	ErrInvalidVerdict = errors.New("invalid verdict from model")
)
