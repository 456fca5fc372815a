package sarsa

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gotabular/discretize"
	env "sfneuman.com/gotabular/environment"
	ts "sfneuman.com/gotabular/timestep"
)

// chainEnv is a deterministic 3-state chain for testing the update
// rule: state 0 -> state 1 -> state 2 (terminal). Both actions cause
// the same transition. The transition into the terminal state is
// rewarded with 1, all others with 0, so the analytic action values
// under any policy are Q(1, a) = 1 and Q(0, a) = γ.
type chainEnv struct {
	state    int
	lastStep ts.TimeStep
}

const chainTerminal int = 2

func (c *chainEnv) observation() mat.Vector {
	s := float64(c.state)
	return mat.NewVecDense(4, []float64{s, s, s, s})
}

func (c *chainEnv) Start() mat.Vector {
	return mat.NewVecDense(4, nil)
}

func (c *chainEnv) End(t *ts.TimeStep) bool {
	if int(t.Observation.AtVec(0)) == chainTerminal {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}
	return false
}

func (c *chainEnv) GetReward(_, _, nextState mat.Vector) float64 {
	if int(nextState.AtVec(0)) == chainTerminal {
		return 1.0
	}
	return 0.0
}

func (c *chainEnv) AtGoal(state mat.Matrix) bool {
	return int(state.At(0, 0)) == chainTerminal
}

func (c *chainEnv) Min() float64 { return 0.0 }
func (c *chainEnv) Max() float64 { return 1.0 }

func (c *chainEnv) Reset() ts.TimeStep {
	c.state = 0
	c.lastStep = ts.New(ts.First, 0, 1, c.observation(), 0)
	return c.lastStep
}

func (c *chainEnv) Step(a *mat.VecDense) (ts.TimeStep, bool) {
	c.state++
	reward := c.GetReward(c.lastStep.Observation, a, c.observation())

	nextStep := ts.New(ts.Mid, reward, 1, c.observation(),
		c.lastStep.Number+1)
	c.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last()
}

func (c *chainEnv) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{1})
	return env.NewSpec(shape, env.Action, lower, upper, env.Discrete)
}

func (c *chainEnv) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(4, nil)
	lower := mat.NewVecDense(4, nil)
	upper := mat.NewVecDense(4, []float64{2, 2, 2, 2})
	return env.NewSpec(shape, env.Observation, lower, upper, env.Continuous)
}

func (c *chainEnv) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{1})
	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

func (c *chainEnv) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{1})
	return env.NewSpec(shape, env.Reward, lower, upper, env.Continuous)
}

func chainBins(t *testing.T) *discretize.BinTable {
	t.Helper()

	min := mat.NewVecDense(4, nil)
	max := mat.NewVecDense(4, []float64{2, 2, 2, 2})
	bins, err := discretize.NewBinTable(min, max, 3, 1.0, 1.0)
	if err != nil {
		t.Fatalf("could not construct bin table: %v", err)
	}
	return bins
}

func chainKey(s int) discretize.Key {
	return discretize.Key{s, s, s, s}
}

// runEpisodes drives the agent through full episodes the same way the
// experiment package does
func runEpisodes(e env.Environment, agent *Sarsa, episodes int) {
	for ep := 0; ep < episodes; ep++ {
		step := e.Reset()
		agent.ObserveFirst(step)

		for !step.Last() {
			action := agent.SelectAction(step)
			step, _ = e.Step(action)
			agent.Observe(action, step)
			agent.Step()
		}
		agent.EndEpisode()
	}
}

func TestConfigValidation(t *testing.T) {
	valid := Config{Epsilon: 0.1, Discount: 0.9, Rule: SampleNext,
		StepSize: Harmonic()}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	invalid := []Config{
		{Epsilon: -0.1, Discount: 0.9, Rule: SampleNext, StepSize: Harmonic()},
		{Epsilon: 1.5, Discount: 0.9, Rule: SampleNext, StepSize: Harmonic()},
		{Epsilon: 0.1, Discount: -1, Rule: SampleNext, StepSize: Harmonic()},
		{Epsilon: 0.1, Discount: 0.9, Rule: UpdateRule(7),
			StepSize: Harmonic()},
		{Epsilon: 0.1, Discount: 0.9, Rule: SampleNext, StepSize: nil},
	}
	for i, c := range invalid {
		if err := c.Validate(); err == nil {
			t.Errorf("invalid config %d accepted", i)
		}
	}
}

func TestStepSizeSchedules(t *testing.T) {
	h := Harmonic()
	if h(1) != 1.0 {
		t.Errorf("harmonic schedule should start at 1, got %v", h(1))
	}
	if h(4) != 0.25 {
		t.Errorf("expected 1/4, got %v", h(4))
	}
	if h(2) <= h(3) {
		t.Error("harmonic schedule should shrink monotonically")
	}

	c := Constant(0.99)
	if c(1) != 0.99 || c(100000) != 0.99 {
		t.Error("constant schedule should not change across episodes")
	}
}

func TestEpisodeAdvancesSchedule(t *testing.T) {
	agent, err := New(&chainEnv{}, chainBins(t), Config{
		Epsilon:  0.1,
		Discount: 0.9,
		Rule:     SampleNext,
		StepSize: Harmonic(),
	}, 7)
	if err != nil {
		t.Fatal(err)
	}

	if agent.Episode() != 1 {
		t.Fatalf("expected episode index to start at 1, got %d",
			agent.Episode())
	}

	runEpisodes(&chainEnv{}, agent, 3)
	if agent.Episode() != 4 {
		t.Errorf("expected episode index 4 after 3 episodes, got %d",
			agent.Episode())
	}
}

func TestSampleNextPreSamplesTakenAction(t *testing.T) {
	e := &chainEnv{}
	agent, err := New(e, chainBins(t), Config{
		Epsilon:  0.5,
		Discount: 0.9,
		Rule:     SampleNext,
		StepSize: Constant(0.1),
	}, 7)
	if err != nil {
		t.Fatal(err)
	}

	step := e.Reset()
	agent.ObserveFirst(step)

	action := agent.SelectAction(step)
	step, _ = e.Step(action)
	agent.Observe(action, step)
	agent.Step()

	// The update bootstrapped from a freshly sampled next action; that
	// exact action must be the one the agent takes next
	if agent.pending < 0 {
		t.Fatal("SampleNext should pre-sample the next action")
	}
	want := agent.pending
	got := agent.SelectAction(step)
	if int(got.AtVec(0)) != want {
		t.Errorf("expected pre-sampled action %d to be taken, got %v", want,
			got.AtVec(0))
	}
	if agent.pending != -1 {
		t.Error("taking the pre-sampled action should clear it")
	}
}

func TestMaxNextDoesNotPreSample(t *testing.T) {
	e := &chainEnv{}
	agent, err := New(e, chainBins(t), Config{
		Epsilon:  0.5,
		Discount: 0.9,
		Rule:     MaxNext,
		StepSize: Constant(0.1),
	}, 7)
	if err != nil {
		t.Fatal(err)
	}

	step := e.Reset()
	agent.ObserveFirst(step)

	action := agent.SelectAction(step)
	step, _ = e.Step(action)
	agent.Observe(action, step)
	agent.Step()

	if agent.pending != -1 {
		t.Error("MaxNext should not pre-sample the next action")
	}
}

func TestSarsaConvergesOnChain(t *testing.T) {
	for _, rule := range []UpdateRule{SampleNext, MaxNext} {
		discount := 0.9

		e := &chainEnv{}
		agent, err := New(e, chainBins(t), Config{
			Epsilon:  0.1,
			Discount: discount,
			Rule:     rule,
			StepSize: Constant(0.1),
		}, 42)
		if err != nil {
			t.Fatal(err)
		}

		runEpisodes(e, agent, 4000)

		table := agent.Table()
		tolerance := 0.05

		// Transitions out of state 1 are rewarded with 1 and the
		// terminal state's values stay zero, so Q(1, a) = 1
		for a, got := range table.Get(chainKey(1)) {
			if math.Abs(got-1.0) > tolerance {
				t.Errorf("rule %v: Q(1, %d) = %v, want 1.0", rule, a, got)
			}
		}

		// Both of state 1's action values converge to 1, so state 0
		// bootstraps to γ under either update rule
		for a, got := range table.Get(chainKey(0)) {
			if math.Abs(got-discount) > tolerance {
				t.Errorf("rule %v: Q(0, %d) = %v, want %v", rule, a, got,
					discount)
			}
		}
	}
}
