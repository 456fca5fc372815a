package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/spatial/r1"

	"sfneuman.com/gotabular/agent/tabular/sarsa"
	"sfneuman.com/gotabular/config"
	"sfneuman.com/gotabular/discretize"
	env "sfneuman.com/gotabular/environment"
	"sfneuman.com/gotabular/environment/classiccontrol/cartpole"
	"sfneuman.com/gotabular/experiment"
	"sfneuman.com/gotabular/experiment/trackers"
)

// Half-width of the uniform interval start states are drawn from
const startStateBound float64 = 0.05

func newTrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a tabular Sarsa agent on cartpole",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return train(run)
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

// addRunFlags registers the flags shared by train and eval. Flag names
// match the configuration keys so that viper can overlay them onto the
// config file.
func addRunFlags(flags *pflag.FlagSet) {
	flags.Uint64("seed", 192382, "seed for all random sources")
	flags.Float64("epsilon", 0.1, "exploration rate")
	flags.Float64("discount", 0.9, "discount factor")
	flags.Int("episodes", 10000, "number of episodes")
	flags.Int("num-bins", 10, "bins per observation dimension")
	flags.Float64("margin-low", 1.0, "multiplier on observed minimums")
	flags.Float64("margin-high", 1.0, "multiplier on observed maximums")
	flags.Int("range-episodes", 100,
		"random episodes used to observe state ranges")
	flags.String("step-size", config.HarmonicStepSize,
		"step-size schedule (harmonic|constant)")
	flags.Float64("alpha", 0.99, "step size for the constant schedule")
	flags.String("update-rule", config.SampleNextRule,
		"next-state value estimate (sample|max)")
	flags.Int("episode-steps", 500, "step limit per episode")
	flags.String("table-path", "table.bin", "action-value table file")
	flags.String("returns-path", "returns.bin", "episodic returns file")
}

// newEnvironment constructs the cartpole balancing environment for a
// run configuration
func newEnvironment(run *config.Run) env.Environment {
	bounds := r1.Interval{Min: -startStateBound, Max: startStateBound}
	starter := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds,
		bounds}, run.Seed)

	task := cartpole.NewBalance(starter, run.EpisodeSteps, cartpole.FailAngle)
	c, _ := cartpole.New(task, run.Discount)
	return c
}

// buildBins observes empirical state ranges under a random policy and
// constructs the bin table from them. The same seed reproduces the
// same bins, so evaluation runs can rebuild the table the agent was
// trained with.
func buildBins(run *config.Run, e env.Environment) (*discretize.BinTable,
	error) {
	min, max, err := discretize.ObserveRanges(e, run.RangeEpisodes, run.Seed)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"min": fmt.Sprintf("%.4v", min.RawVector().Data),
		"max": fmt.Sprintf("%.4v", max.RawVector().Data),
	}).Debug("observed state ranges")

	return discretize.NewBinTable(min, max, run.NumBins, run.MarginLow,
		run.MarginHigh)
}

func train(run *config.Run) error {
	environment := newEnvironment(run)

	bins, err := buildBins(run, environment)
	if err != nil {
		return err
	}

	schedule, err := run.Schedule()
	if err != nil {
		return err
	}
	rule, err := run.UpdateRule()
	if err != nil {
		return err
	}

	agent, err := sarsa.New(environment, bins, sarsa.Config{
		Epsilon:  run.Epsilon,
		Discount: run.Discount,
		Rule:     rule,
		StepSize: schedule,
	}, run.Seed)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"episodes":  run.Episodes,
		"epsilon":   run.Epsilon,
		"discount":  run.Discount,
		"bins":      run.NumBins,
		"rule":      rule,
		"step-size": run.StepSize,
	}).Info("starting training")

	returns := trackers.NewReturn(run.ReturnsPath)
	lengths := trackers.NewEpisodeLength(run.ReturnsPath + ".lengths")

	exp := experiment.NewOnline(environment, agent, run.Episodes, log,
		returns, lengths)
	exp.Run()

	if err := exp.Save(); err != nil {
		return err
	}
	if err := agent.Table().Save(run.TablePath); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"states": agent.Table().Len(),
		"table":  run.TablePath,
	}).Info("training complete")
	return nil
}
