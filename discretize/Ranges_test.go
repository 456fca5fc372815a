package discretize

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
	env "sfneuman.com/gotabular/environment"
	"sfneuman.com/gotabular/environment/classiccontrol/cartpole"
)

func rangeEnv(t *testing.T) env.Environment {
	t.Helper()

	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	starter := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds,
		bounds}, 192382)
	task := cartpole.NewBalance(starter, 200, cartpole.FailAngle)
	c, _ := cartpole.New(task, 0.9)
	return c
}

func TestObserveRangesValidation(t *testing.T) {
	c := rangeEnv(t)

	if _, _, err := ObserveRanges(c, 0, 1); err == nil {
		t.Error("expected error for non-positive episode count")
	}
}

func TestObserveRangesBoundsVisitedStates(t *testing.T) {
	c := rangeEnv(t)

	min, max, err := ObserveRanges(c, 20, 192382)
	if err != nil {
		t.Fatalf("could not observe ranges: %v", err)
	}

	for d := 0; d < NumDims; d++ {
		if min.AtVec(d) >= max.AtVec(d) {
			t.Errorf("dimension %d: empty range [%v, %v]", d, min.AtVec(d),
				max.AtVec(d))
		}
	}

	// The empirical range of visited states is much narrower than the
	// declared position bound
	if min.AtVec(0) < -cartpole.PositionBounds ||
		max.AtVec(0) > cartpole.PositionBounds {
		t.Error("observed positions left the declared bounds")
	}
}

func TestObserveRangesDeterministicWithSeed(t *testing.T) {
	min1, max1, err := ObserveRanges(rangeEnv(t), 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	min2, max2, err := ObserveRanges(rangeEnv(t), 10, 7)
	if err != nil {
		t.Fatal(err)
	}

	for d := 0; d < NumDims; d++ {
		if min1.AtVec(d) != min2.AtVec(d) || max1.AtVec(d) != max2.AtVec(d) {
			t.Errorf("dimension %d: same seed produced different ranges", d)
		}
	}
}
