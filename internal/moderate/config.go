package moderate

import "time"

// Config holds classification settings for a run.
type Config struct {
	// MaxTokens caps the classifier response size.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for the classifier. 0 keeps verdicts deterministic.
	Temperature float64 `yaml:"temperature"`

	// Workers bounds concurrent classification calls. 1 reproduces the
	// strictly sequential model; higher values parallelize while output
	// order still matches input order.
	Workers int `yaml:"workers"`

	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig configures the bounded fixed-delay retry policy.
// The budget is fixed and global per comment: no backoff, no adaptation.
type RetryConfig struct {
	// MaxAttempts is the total attempt budget per comment.
	MaxAttempts int `yaml:"max_attempts"`

	// Delay is the fixed pause between attempts.
	Delay time.Duration `yaml:"delay"`
}

// DefaultConfig returns the defaults the analyzer originally ran with:
// three attempts, five seconds between them, sequential processing.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0,
		Workers:     1,
		Retry: RetryConfig{
			MaxAttempts: 3,
			Delay:       5 * time.Second,
		},
	}
}
