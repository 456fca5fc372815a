package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"sfneuman.com/gotabular/agent/tabular"
	"sfneuman.com/gotabular/agent/tabular/policy"
	"sfneuman.com/gotabular/config"
	"sfneuman.com/gotabular/experiment"
)

func newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a trained action-value table on cartpole",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			episodes, err := cmd.Flags().GetInt("eval-episodes")
			if err != nil {
				return err
			}
			return eval(run, episodes)
		},
	}
	addRunFlags(cmd.Flags())
	cmd.Flags().Int("eval-episodes", 100, "held-out evaluation episodes")
	return cmd
}

func eval(run *config.Run, episodes int) error {
	environment := newEnvironment(run)

	// The same seed reconstructs the bins the table was trained with
	bins, err := buildBins(run, environment)
	if err != nil {
		return err
	}

	table, err := tabular.Load(run.TablePath)
	if err != nil {
		return err
	}

	snapshot, err := policy.NewSnapshot(table, run.Epsilon, run.Seed)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"table":    run.TablePath,
		"states":   table.Len(),
		"episodes": episodes,
	}).Info("starting evaluation")

	returns := experiment.Evaluate(environment, snapshot, bins, episodes)

	mean, std := stat.MeanStdDev(returns, nil)
	log.WithFields(logrus.Fields{
		"episodes":    len(returns),
		"mean-return": mean,
		"std-return":  std,
	}).Info("evaluation complete")
	return nil
}
