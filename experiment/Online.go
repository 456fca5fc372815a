package experiment

import (
	"github.com/sirupsen/logrus"

	"sfneuman.com/gotabular/agent"
	env "sfneuman.com/gotabular/environment"
	"sfneuman.com/gotabular/experiment/trackers"
	ts "sfneuman.com/gotabular/timestep"
)

// How often episode progress is logged
const logEvery int = 1000

// Online is an Experiment that trains an agent online for a fixed
// number of episodes. No offline evaluation is performed; evaluation
// against a policy snapshot is a separate, read-only pass (see
// Evaluate).
type Online struct {
	environment env.Environment
	agent       agent.Agent
	episodes    int
	completed   int
	log         logrus.FieldLogger
	trackers    []trackers.Tracker
}

// NewOnline creates and returns a new online experiment which trains
// the argument agent on the argument environment for a set number of
// episodes. The trackers determine what data generated during the
// experiment is saved.
func NewOnline(e env.Environment, a agent.Agent, episodes int,
	log logrus.FieldLogger, t ...trackers.Tracker) *Online {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Online{
		environment: e,
		agent:       a,
		episodes:    episodes,
		log:         log,
		trackers:    t,
	}
}

// Register registers a Tracker with the Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment: the environment
// is reset, actions are selected by the agent and applied to the
// environment, and the agent updates its value estimates after every
// transition until the environment signals episode termination.
func (o *Online) RunEpisode() {
	step := o.environment.Reset()
	o.agent.ObserveFirst(step)
	o.track(step)

	for !step.Last() {
		// Select action, step in environment
		action := o.agent.SelectAction(step)
		step, _ = o.environment.Step(action)

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		o.agent.Observe(action, step)
		o.agent.Step()
	}

	o.agent.EndEpisode()
	o.completed++
}

// Run runs the entire experiment for the configured number of episodes
func (o *Online) Run() {
	for o.completed < o.episodes {
		o.RunEpisode()

		if o.completed%logEvery == 0 {
			o.log.WithFields(logrus.Fields{
				"episode":  o.completed,
				"episodes": o.episodes,
			}).Info("training progress")
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, tracker := range o.trackers {
		if err := tracker.Save(); err != nil {
			return err
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
