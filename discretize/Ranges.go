package discretize

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	env "sfneuman.com/gotabular/environment"
)

// ObserveRanges runs episodes of uniformly random actions in an
// environment and records the minimum and maximum value seen along
// each observation dimension. The returned vectors bound the empirical
// range of the state space and are intended as input to NewBinTable:
// even on dimensions whose declared bounds are effectively unbounded,
// the states actually visited occupy a much narrower range.
func ObserveRanges(e env.Environment, episodes int,
	seed uint64) (min, max *mat.VecDense, err error) {
	if episodes <= 0 {
		return nil, nil, fmt.Errorf("observeranges: episodes must be "+
			"positive, got %d", episodes)
	}

	actionSpec := e.ActionSpec()
	if actionSpec.Cardinality != env.Discrete {
		return nil, nil, fmt.Errorf("observeranges: environment must have " +
			"discrete actions")
	}
	numActions := int(actionSpec.UpperBound.AtVec(0)) + 1

	rng := rand.New(rand.NewSource(seed))

	mins := make([]float64, NumDims)
	maxs := make([]float64, NumDims)
	for d := range mins {
		mins[d] = math.Inf(1)
		maxs[d] = math.Inf(-1)
	}

	record := func(obs mat.Vector) {
		for d := 0; d < NumDims; d++ {
			v := obs.AtVec(d)
			if v < mins[d] {
				mins[d] = v
			}
			if v > maxs[d] {
				maxs[d] = v
			}
		}
	}

	for ep := 0; ep < episodes; ep++ {
		step := e.Reset()
		record(step.Observation)

		for !step.Last() {
			action := mat.NewVecDense(1,
				[]float64{float64(rng.Intn(numActions))})
			step, _ = e.Step(action)
			record(step.Observation)
		}
	}

	return mat.NewVecDense(NumDims, mins), mat.NewVecDense(NumDims, maxs), nil
}
