// Package config loads run configurations for training and evaluating
// tabular agents
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sfneuman.com/gotabular/agent/tabular/sarsa"
)

// Step-size schedule selectors recognized in run configurations
const (
	HarmonicStepSize string = "harmonic"
	ConstantStepSize string = "constant"
)

// Update rule selectors recognized in run configurations
const (
	SampleNextRule string = "sample"
	MaxNextRule    string = "max"
)

// Run holds every externally supplied parameter of a training or
// evaluation run. Values come from a config file, command line flags,
// or the defaults below, in increasing order of precedence of the
// overriding source.
type Run struct {
	Seed     uint64  `mapstructure:"seed"`
	Epsilon  float64 `mapstructure:"epsilon"`
	Discount float64 `mapstructure:"discount"`
	Episodes int     `mapstructure:"episodes"`

	// Discretization
	NumBins       int     `mapstructure:"num-bins"`
	MarginLow     float64 `mapstructure:"margin-low"`
	MarginHigh    float64 `mapstructure:"margin-high"`
	RangeEpisodes int     `mapstructure:"range-episodes"`

	// Trainer
	StepSize string  `mapstructure:"step-size"`
	Alpha    float64 `mapstructure:"alpha"` // constant schedule only
	Rule     string  `mapstructure:"update-rule"`

	// Environment
	EpisodeSteps int `mapstructure:"episode-steps"`

	// Artifacts
	TablePath   string `mapstructure:"table-path"`
	ReturnsPath string `mapstructure:"returns-path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 192382)
	v.SetDefault("epsilon", 0.1)
	v.SetDefault("discount", 0.9)
	v.SetDefault("episodes", 10000)
	v.SetDefault("num-bins", 10)
	v.SetDefault("margin-low", 1.0)
	v.SetDefault("margin-high", 1.0)
	v.SetDefault("range-episodes", 100)
	v.SetDefault("step-size", HarmonicStepSize)
	v.SetDefault("alpha", 0.99)
	v.SetDefault("update-rule", SampleNextRule)
	v.SetDefault("episode-steps", 500)
	v.SetDefault("table-path", "table.bin")
	v.SetDefault("returns-path", "returns.bin")
}

// Load reads a Run configuration. The cfgFile argument names an
// optional YAML config file; flags, when non-nil, override values read
// from the file.
func Load(cfgFile string, flags *pflag.FlagSet) (*Run, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: could not read %v: %v",
				cfgFile, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: could not bind flags: %v", err)
		}
	}

	run := &Run{}
	if err := v.Unmarshal(run); err != nil {
		return nil, fmt.Errorf("config: could not unmarshal run: %v", err)
	}

	if err := run.Validate(); err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	return run, nil
}

// Validate reports configuration errors before any training step runs
func (r *Run) Validate() error {
	if r.Episodes < 0 {
		return fmt.Errorf("episodes cannot be negative, got %d", r.Episodes)
	}
	if r.NumBins <= 0 {
		return fmt.Errorf("num-bins must be positive, got %d", r.NumBins)
	}
	if r.RangeEpisodes <= 0 {
		return fmt.Errorf("range-episodes must be positive, got %d",
			r.RangeEpisodes)
	}
	if r.EpisodeSteps <= 0 {
		return fmt.Errorf("episode-steps must be positive, got %d",
			r.EpisodeSteps)
	}
	if _, err := r.Schedule(); err != nil {
		return err
	}
	if _, err := r.UpdateRule(); err != nil {
		return err
	}
	return nil
}

// Schedule returns the step-size schedule named by the configuration
func (r *Run) Schedule() (sarsa.StepSize, error) {
	switch strings.ToLower(r.StepSize) {
	case HarmonicStepSize:
		return sarsa.Harmonic(), nil
	case ConstantStepSize:
		return sarsa.Constant(r.Alpha), nil
	default:
		return nil, fmt.Errorf("no such step-size schedule %q", r.StepSize)
	}
}

// UpdateRule returns the Sarsa update rule named by the configuration
func (r *Run) UpdateRule() (sarsa.UpdateRule, error) {
	switch strings.ToLower(r.Rule) {
	case SampleNextRule:
		return sarsa.SampleNext, nil
	case MaxNextRule:
		return sarsa.MaxNext, nil
	default:
		return 0, fmt.Errorf("no such update rule %q", r.Rule)
	}
}
