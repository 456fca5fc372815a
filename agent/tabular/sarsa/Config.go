package sarsa

import (
	"fmt"
)

// UpdateRule selects how the value of the next state is estimated in
// the temporal-difference target.
type UpdateRule int

const (
	// SampleNext bootstraps from the value of a fresh action sampled
	// from the current policy in the next state. The sampled action is
	// the action actually taken on the following step, which makes the
	// update on-policy Sarsa.
	SampleNext UpdateRule = iota

	// MaxNext bootstraps from the maximum action value in the next
	// state. This is the Q-learning style target; it appeared in one
	// experiment variant under the Sarsa name and is kept selectable
	// for comparison.
	MaxNext
)

func (u UpdateRule) String() string {
	switch u {
	case SampleNext:
		return "SampleNext"
	case MaxNext:
		return "MaxNext"
	default:
		return fmt.Sprintf("UpdateRule(%d)", int(u))
	}
}

// StepSize is a step-size schedule: it maps a 1-based episode index to
// the step size α used for every update within that episode.
type StepSize func(episode int) float64

// Harmonic returns the episode-indexed harmonic schedule α = 1/episode.
// The schedule starts at 1 for the first episode and shrinks
// monotonically. Indexing by episode rather than by per-state visit
// count is preserved from the original experiments.
func Harmonic() StepSize {
	return func(episode int) float64 {
		return 1.0 / float64(episode)
	}
}

// Constant returns a schedule that holds α fixed across all episodes
func Constant(alpha float64) StepSize {
	return func(int) float64 {
		return alpha
	}
}

// Config represents a configuration for the Sarsa agent
type Config struct {
	Epsilon  float64 // Exploration rate of the behaviour policy
	Discount float64 // Discount factor γ
	Rule     UpdateRule
	StepSize StepSize
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", c.Discount)
	}
	if c.Rule != SampleNext && c.Rule != MaxNext {
		return fmt.Errorf("no such update rule %v", c.Rule)
	}
	if c.StepSize == nil {
		return fmt.Errorf("no step-size schedule set")
	}
	return nil
}
