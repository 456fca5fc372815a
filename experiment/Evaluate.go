package experiment

import (
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gotabular/agent/tabular/policy"
	"sfneuman.com/gotabular/discretize"
	env "sfneuman.com/gotabular/environment"
)

// Evaluate runs a frozen policy snapshot over a number of held-out
// episodes and returns the total reward accumulated in each episode.
// States are discretized with the same BinTable used during training;
// states never visited during training fall back to the snapshot's
// uniform distribution.
//
// Evaluate never mutates the value table the snapshot was derived
// from. Calling it again draws a fresh, independent sample of episode
// returns.
func Evaluate(e env.Environment, snapshot *policy.Snapshot,
	bins *discretize.BinTable, episodes int) []float64 {
	returns := make([]float64, 0, episodes)

	for ep := 0; ep < episodes; ep++ {
		step := e.Reset()
		key := bins.Discretize(step.Observation)

		total := 0.0
		for !step.Last() {
			action := snapshot.SelectAction(key)
			step, _ = e.Step(mat.NewVecDense(1, []float64{float64(action)}))

			total += step.Reward
			key = bins.Discretize(step.Observation)
		}

		returns = append(returns, total)
	}

	return returns
}
