// Package policy implements epsilon-soft policies over tabular action
// values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/gotabular/utils/floatutils"
)

// Distribution derives an epsilon-soft action-selection distribution
// from a vector of action values. The greedy action receives
// probability 1 - epsilon + epsilon/A and every other action receives
// epsilon/A, so the result sums to 1 and every entry is at least
// epsilon/A.
//
// Ties between maximal action values are broken towards the lowest
// index. With only a handful of actions this makes fresh (all-zero)
// value vectors deterministically favour action 0, which can bias
// early training towards one action.
//
// An empty action-value vector is a configuration error.
func Distribution(actionValues []float64, epsilon float64) ([]float64, error) {
	numActions := len(actionValues)
	if numActions == 0 {
		return nil, fmt.Errorf("distribution: empty action-value vector")
	}

	greedyAction := floatutils.ArgMax(actionValues)

	probs := make([]float64, numActions)
	epsProb := epsilon / float64(numActions)
	for i := range probs {
		probs[i] = epsProb
	}
	probs[greedyAction] += 1.0 - epsilon

	return probs, nil
}

// EGreedy samples actions from the epsilon-soft distribution derived
// from action-value vectors. All randomness comes from the source the
// EGreedy was constructed with, so a fixed seed yields a reproducible
// action sequence.
type EGreedy struct {
	epsilon float64
	source  rand.Source
}

// NewEGreedy constructs a new EGreedy sampler, where epsilon is the
// total probability mass spread uniformly over all actions
func NewEGreedy(epsilon float64, seed uint64) *EGreedy {
	return &EGreedy{epsilon: epsilon, source: rand.NewSource(seed)}
}

// Epsilon returns the exploration rate of the sampler
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// Sample derives the epsilon-soft distribution over actionValues and
// samples a single action from it
func (p *EGreedy) Sample(actionValues []float64) (int, error) {
	probs, err := Distribution(actionValues, p.epsilon)
	if err != nil {
		return 0, err
	}

	dist := distuv.NewCategorical(probs, p.source)
	return int(dist.Rand()), nil
}
