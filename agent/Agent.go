// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gotabular/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which updates value estimates,
// and a Policy which chooses actions in each state. The Policy chooses
// which actions are taken, and the Learner uses these actions to
// update the value estimates that the Policy selects actions from.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how value
// estimates are updated.
type Learner interface {
	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep)

	// Observe records that an action led to some timestep
	Observe(action mat.Vector, nextStep timestep.TimeStep)

	// Step performs a single update to the learner
	Step()

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should reference the same value estimates so that
// any changes the Learner makes are reflected in the actions the
// Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
