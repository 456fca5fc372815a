package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/gotabular/agent/tabular"
	"sfneuman.com/gotabular/discretize"
)

// Snapshot is a frozen epsilon-soft policy derived from a ValueTable.
// The snapshot holds its own copy of the per-state action
// probabilities, so later training updates to the table do not leak
// into the snapshot. Keys never visited during training fall back to a
// uniform distribution over actions.
//
// A Snapshot never mutates the table it was derived from.
type Snapshot struct {
	probs      map[discretize.Key][]float64
	uniform    []float64
	numActions int
	source     rand.Source
}

// NewSnapshot derives a Snapshot from the current contents of a value
// table. The epsilon argument sets the exploration rate of the derived
// distributions; with epsilon 0 the snapshot selects greedy actions
// deterministically. The seed drives all of the snapshot's action
// sampling.
func NewSnapshot(table *tabular.ValueTable, epsilon float64,
	seed uint64) (*Snapshot, error) {
	numActions := table.NumActions()

	probs := make(map[discretize.Key][]float64, table.Len())
	var derr error
	table.Each(func(key discretize.Key, values []float64) {
		p, err := Distribution(values, epsilon)
		if err != nil && derr == nil {
			derr = fmt.Errorf("snapshot: %v", err)
		}
		probs[key] = p
	})
	if derr != nil {
		return nil, derr
	}

	uniform := make([]float64, numActions)
	for i := range uniform {
		uniform[i] = 1.0 / float64(numActions)
	}

	return &Snapshot{
		probs:      probs,
		uniform:    uniform,
		numActions: numActions,
		source:     rand.NewSource(seed),
	}, nil
}

// NumActions returns the number of actions the snapshot selects from
func (s *Snapshot) NumActions() int {
	return s.numActions
}

// Len returns the number of states the snapshot holds derived
// distributions for
func (s *Snapshot) Len() int {
	return len(s.probs)
}

// Probabilities returns the action-selection distribution for a state
// key, or the uniform fallback if the key was never visited during
// training. The returned slice must not be modified.
func (s *Snapshot) Probabilities(key discretize.Key) []float64 {
	if probs, ok := s.probs[key]; ok {
		return probs
	}
	return s.uniform
}

// SelectAction samples an action for the state denoted by key from the
// snapshot's distribution for that state
func (s *Snapshot) SelectAction(key discretize.Key) int {
	dist := distuv.NewCategorical(s.Probabilities(key), s.source)
	return int(dist.Rand())
}
