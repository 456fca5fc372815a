// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gotabular/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when environmental episodes end. If an episode should
// end at the argument TimeStep, an Ender modifies the TimeStep so that
// its StepType field is timestep.Last and its EndType records why the
// episode ended.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
	AtGoal(state mat.Matrix) bool
	Min() float64 // Minimum possible reward
	Max() float64 // Maximum possible reward
	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a Task to
// complete
type Environment interface {
	Task
	Reset() timestep.TimeStep // Resets between episodes
	Step(action *mat.VecDense) (timestep.TimeStep, bool)
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
