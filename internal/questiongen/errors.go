package questiongen

import "errors"

// Batch-level failures wrapped by GenerationError.
var (
	ErrEmptyBatch     = errors.New("AI returned no questions.")
	ErrMalformedBatch = errors.New("AI returned malformed questions.")
)

// GenerationFailedMessage is shown to the user for every generation failure.
const GenerationFailedMessage = "Failed to generate quiz questions. Please check your API key and try again."

// GenerationError reports that no usable batch could be produced. The
// underlying cause is kept for logs; Error returns the user-facing message.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return GenerationFailedMessage }

func (e *GenerationError) Unwrap() error { return e.Err }
