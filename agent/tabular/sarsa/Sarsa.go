// Package sarsa implements tabular on-policy Sarsa over discretized
// state observations
package sarsa

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gotabular/agent/tabular"
	"sfneuman.com/gotabular/agent/tabular/policy"
	"sfneuman.com/gotabular/discretize"
	env "sfneuman.com/gotabular/environment"
	ts "sfneuman.com/gotabular/timestep"
	"sfneuman.com/gotabular/utils/floatutils"
)

// Sarsa implements tabular epsilon-soft Sarsa. Continuous observations
// are discretized through a BinTable into keys of an action-value
// table, actions are sampled from the epsilon-soft policy derived from
// the table, and each transition updates the table with the
// temporal-difference rule
//
//	Q[S][A] ← Q[S][A] + α·(R + γ·target − Q[S][A])
//
// where target is either the value of the sampled next action
// (SampleNext) or the maximum next-state value (MaxNext), depending on
// the configured update rule.
//
// The Sarsa agent exclusively owns and mutates its ValueTable during
// training. Actions selected by this agent are always enumerated as
// (0, 1, 2, ... N) where N is the maximum possible action.
type Sarsa struct {
	table     *tabular.ValueTable
	bins      *discretize.BinTable
	behaviour *policy.EGreedy
	config    Config

	episode int // 1-based episode index for the step-size schedule

	step     ts.TimeStep
	nextStep ts.TimeStep
	key      discretize.Key
	nextKey  discretize.Key
	action   int

	// Action pre-sampled for the next state by the SampleNext rule.
	// SelectAction must return it so the bootstrapped action is the
	// action actually taken; -1 when no action is pending.
	pending int
}

// New creates a new Sarsa agent acting in the argument environment.
// The environment must have 1-dimensional discrete actions enumerated
// from 0. The BinTable maps the environment's continuous observations
// to the keys of the agent's action-value table.
func New(e env.Environment, bins *discretize.BinTable, config Config,
	seed uint64) (*Sarsa, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("sarsa: invalid config: %v", err)
	}

	actionSpec := e.ActionSpec()
	if actionSpec.Cardinality != env.Discrete {
		return nil, fmt.Errorf("sarsa: cannot use non-discrete actions")
	}
	if actionSpec.LowerBound.Len() > 1 {
		return nil, fmt.Errorf("sarsa: actions must be 1-dimensional")
	}
	if actionSpec.LowerBound.AtVec(0) != 0.0 {
		return nil, fmt.Errorf("sarsa: actions must be enumerated " +
			"starting from 0")
	}
	numActions := int(actionSpec.UpperBound.AtVec(0)) + 1

	table, err := tabular.NewValueTable(numActions)
	if err != nil {
		return nil, fmt.Errorf("sarsa: %v", err)
	}

	behaviour := policy.NewEGreedy(config.Epsilon, seed)

	return &Sarsa{
		table:     table,
		bins:      bins,
		behaviour: behaviour,
		config:    config,
		episode:   1,
		pending:   -1,
	}, nil
}

// Table returns the agent's action-value table. The table should only
// be read once training concludes; deriving a policy.Snapshot from it
// gives a read-only view for evaluation.
func (s *Sarsa) Table() *tabular.ValueTable {
	return s.table
}

// Episode returns the 1-based index of the current episode
func (s *Sarsa) Episode() int {
	return s.episode
}

// ObserveFirst observes and records the first episodic timestep
func (s *Sarsa) ObserveFirst(t ts.TimeStep) {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	s.step = ts.TimeStep{}
	s.nextStep = t
	s.nextKey = s.bins.Discretize(t.Observation)
	s.pending = -1
}

// SelectAction samples an action for the argument timestep from the
// behaviour policy. If the learner pre-sampled the next action while
// constructing its update target, that action is returned so that the
// bootstrapped estimate matches the action actually taken.
func (s *Sarsa) SelectAction(t ts.TimeStep) *mat.VecDense {
	if s.pending >= 0 {
		action := s.pending
		s.pending = -1
		return mat.NewVecDense(1, []float64{float64(action)})
	}

	key := s.bins.Discretize(t.Observation)
	action, err := s.behaviour.Sample(s.table.Get(key))
	if err != nil {
		panic(fmt.Sprintf("selectaction: %v", err))
	}
	return mat.NewVecDense(1, []float64{float64(action)})
}

// Observe observes and records any timestep other than the first
// timestep
func (s *Sarsa) Observe(action mat.Vector, nextStep ts.TimeStep) {
	if action.Len() != 1 {
		fmt.Fprintf(os.Stderr, "Warning: value-based methods should not "+
			"have multi-dimensional actions (action dim = %d)\n", action.Len())
	}
	s.step = s.nextStep
	s.key = s.nextKey
	s.action = int(action.AtVec(0))
	s.nextStep = nextStep
	s.nextKey = s.bins.Discretize(nextStep.Observation)
}

// Step updates the agent's action-value table for the transition most
// recently recorded by Observe
func (s *Sarsa) Step() {
	alpha := s.config.StepSize(s.episode)

	nextValues := s.table.Get(s.nextKey)

	var nextEstimate float64
	switch s.config.Rule {
	case SampleNext:
		nextAction, err := s.behaviour.Sample(nextValues)
		if err != nil {
			panic(fmt.Sprintf("step: %v", err))
		}
		s.pending = nextAction
		nextEstimate = nextValues[nextAction]
	case MaxNext:
		nextEstimate, _ = floatutils.MaxSlice(nextValues)
	}

	target := s.nextStep.Reward + s.config.Discount*nextEstimate

	current := s.table.Get(s.key)[s.action]
	s.table.Update(s.key, s.action, current+alpha*(target-current))
}

// EndEpisode advances the step-size schedule at the end of an episode
func (s *Sarsa) EndEpisode() {
	s.episode++
	s.pending = -1
}
