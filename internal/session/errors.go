package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/az104/internal/questiongen"
)

// Conditions surfaced by the Controller. Each one leaves the controller on a
// safe display state with Message set.
var (
	ErrDailyAlreadyCompleted = errors.New("You've already completed the daily challenge for today. Come back tomorrow!")
	ErrGenerationFailed      = errors.New("generation failed")
	ErrNoUser                = errors.New("no user signed in")
	ErrInvalidRequest        = errors.New("invalid quiz request")
	ErrStaleAttempt          = errors.New("attempt is no longer current")
)

// userMessage extracts the text shown to the user for a generation failure.
func userMessage(err error) string {
	var gerr *questiongen.GenerationError
	if errors.As(err, &gerr) {
		return gerr.Error()
	}
	return questiongen.GenerationFailedMessage
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
