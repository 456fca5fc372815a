// Package experiment implements functionality for running an experiment
package experiment

import (
	ts "sfneuman.com/gotabular/timestep"
	"sfneuman.com/gotabular/experiment/trackers"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps, caching the data of each
// TimeStep in RAM to be later saved to disk with the Save() function,
// which is usually called after an experiment has been run. The Run()
// method runs all episodes until the configured episode limit is
// reached. The RunEpisode() function runs a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments
// send each TimeStep to their Trackers using the Tracker's Track()
// method; the Tracker then determines which data from the TimeStep it
// caches and saves. New Trackers can be registered with an Experiment
// through the constructor or through an Experiment's Register()
// function.
type Experiment interface {
	Run()
	RunEpisode()

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save() error

	// Register adds a new Tracker to the (possibly already running)
	// experiment. Useful to track data only after a specified event.
	Register(t trackers.Tracker)
}
