package practicesession

// SessionConfig holds optional constraints for a quiz session.
type SessionConfig struct {
	MaxQuestions   *int // nil = all questions from the bank
	ShuffleOptions bool // false = keep the bank's option order
}

// DefaultConfig returns a config with no limit and shuffled options.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		MaxQuestions:   nil,
		ShuffleOptions: true,
	}
}

// WithMaxQuestions returns a copy of c limited to n questions. n <= 0 clears
// the limit.
func (c SessionConfig) WithMaxQuestions(n int) SessionConfig {
	if n <= 0 {
		c.MaxQuestions = nil
		return c
	}
	c.MaxQuestions = &n
	return c
}
