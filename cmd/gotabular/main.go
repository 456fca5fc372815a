// gotabular trains and evaluates tabular Sarsa agents on the cartpole
// balancing task.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log     = logrus.New()
	cfgFile string
)

func main() {
	root := &cobra.Command{
		Use:   "gotabular",
		Short: "Tabular epsilon-soft Sarsa on the cartpole balancing task",
		Long: "gotabular discretizes the continuous cartpole state space " +
			"into a bounded set of buckets and learns an action-value " +
			"table for it with an epsilon-soft Sarsa variant. Training " +
			"produces a persisted action-value table; evaluation derives " +
			"a frozen policy from a persisted table and measures its " +
			"episodic returns.",
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"run configuration file (YAML)")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")

	root.AddCommand(newTrainCommand())
	root.AddCommand(newEvalCommand())

	cobra.OnInitialize(func() {
		if debug, _ := root.PersistentFlags().GetBool("debug"); debug {
			log.SetLevel(logrus.DebugLevel)
		}
	})

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
