package cartpole

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	env "sfneuman.com/gotabular/environment"
	ts "sfneuman.com/gotabular/timestep"
)

func testEnv(t *testing.T, episodeSteps int) *Cartpole {
	t.Helper()

	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	starter := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds,
		bounds}, 192382)
	task := NewBalance(starter, episodeSteps, FailAngle)

	c, firstStep := New(task, 0.9)
	if !firstStep.First() {
		t.Fatal("environment should start with a first timestep")
	}
	return c
}

func TestStepAppliesForce(t *testing.T) {
	c := testEnv(t, 500)

	// One push dominates the small random starting speed, so the sign
	// of the cart's speed follows the direction of the applied force
	c.Reset()
	step, _ := c.Step(mat.NewVecDense(1, []float64{1}))
	if step.Observation.AtVec(1) <= 0 {
		t.Error("pushing right should accelerate the cart rightwards")
	}

	c.Reset()
	step, _ = c.Step(mat.NewVecDense(1, []float64{0}))
	if step.Observation.AtVec(1) >= 0 {
		t.Error("pushing left should accelerate the cart leftwards")
	}
}

func TestIllegalActionPanics(t *testing.T) {
	c := testEnv(t, 500)
	c.Reset()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for illegal action")
		}
	}()
	c.Step(mat.NewVecDense(1, []float64{2}))
}

func TestEpisodeEndsAtFailAngleOrStepLimit(t *testing.T) {
	c := testEnv(t, 300)

	// Constantly pushing one way topples the pole eventually
	step := c.Reset()
	for !step.Last() {
		step, _ = c.Step(mat.NewVecDense(1, []float64{1}))
	}

	switch step.End() {
	case ts.TerminalStateReached:
		if math.Abs(step.Observation.AtVec(2)) < FailAngle &&
			math.Abs(step.Observation.AtVec(0)) < TrackLimit {
			t.Error("terminal state reached while still within limits")
		}
		if step.Reward != -1.0 {
			t.Errorf("failure should be rewarded with -1, got %v",
				step.Reward)
		}
	case ts.Timeout:
		if step.Number != 300 {
			t.Errorf("timeout at step %d, want 300", step.Number)
		}
	default:
		t.Error("last step should record why the episode ended")
	}
}

func TestRewardIsPlusOneWhileBalanced(t *testing.T) {
	c := testEnv(t, 500)
	c.Reset()

	step, done := c.Step(mat.NewVecDense(1, []float64{1}))
	if !done && step.Reward != 1.0 {
		t.Errorf("balanced step should be rewarded with +1, got %v",
			step.Reward)
	}
}

func TestSpecs(t *testing.T) {
	c := testEnv(t, 500)

	actionSpec := c.ActionSpec()
	if actionSpec.Cardinality != env.Discrete {
		t.Error("actions should be discrete")
	}
	if actionSpec.LowerBound.AtVec(0) != 0 ||
		actionSpec.UpperBound.AtVec(0) != 1 {
		t.Error("actions should be enumerated as {0, 1}")
	}

	obsSpec := c.ObservationSpec()
	if obsSpec.Shape.Len() != ObservationDims {
		t.Errorf("expected %d observation dimensions, got %d",
			ObservationDims, obsSpec.Shape.Len())
	}
}
