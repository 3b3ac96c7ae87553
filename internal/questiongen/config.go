package questiongen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every question of a batch. A question
	// failing any of them is dropped.
	Validators []Validator

	// MaxTokens is the token budget for one batch response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Timeout bounds one batch request including provider retries.
	Timeout time.Duration

	// MaxAvoid caps how many recent question texts go into the prompt.
	MaxAvoid int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		MaxTokens:   16384,
		Temperature: 0.8,
		Timeout:     60 * time.Second,
		MaxAvoid:    30,
	}
}
