package driver

import (
	"context"
	"testing"
	"time"

	"github.com/specc-lang/specc/internal/options"
	"github.com/specc-lang/specc/runtime/state"
)

// bitModel builds a one-boolean-variable toggling model: the start
// state sets the bit to 0, and the single rule flips it. Reachable
// states: {0, 1} — it toggles forever without ever repeating a new
// state, so the seen set's idempotence check is what makes the
// explore loop terminate.
func bitModel(invariantFails bool) Model {
	handle := func(s *state.State) state.Handle {
		return state.Handle{Base: s, Offset: 0, Width: 2}
	}

	start := func() []RuleResult {
		s := state.New(2)
		if err := handle(s).Write(0, 0, 1); err != nil {
			return []RuleResult{{Outcome: state.Fail(err)}}
		}
		return []RuleResult{{State: s, Outcome: state.OK}}
	}

	toggle := func(s *state.State) []RuleResult {
		v, err := handle(s).Read(0)
		if err != nil {
			return []RuleResult{{Outcome: state.Fail(err)}}
		}
		next := s.Clone()
		if err := handle(next).Write(1-v, 0, 1); err != nil {
			return []RuleResult{{Outcome: state.Fail(err)}}
		}
		return []RuleResult{{State: next, Outcome: state.OK}}
	}

	invariant := func(s *state.State) (bool, error) {
		if !invariantFails {
			return true, nil
		}
		v, err := handle(s).Read(0)
		if err != nil {
			return true, nil
		}
		return v == 0, nil
	}

	return Model{
		Name:        "toggle",
		Starts:      []StartFunc{start},
		Rules:       []RuleFunc{toggle},
		RuleNames:   []string{"toggle"},
		Invariants:  []PropertyFunc{invariant},
		Canonicalize: func(*state.State) {},
	}
}

type collectingReporter struct {
	errors    []*CheckerError
	summaries int
}

func (r *collectingReporter) Summary(statesExplored, rulesFired, errorCount int) { r.summaries++ }
func (r *collectingReporter) Error(err *CheckerError, cx Counterexample, trace string) {
	r.errors = append(r.errors, err)
}
func (r *collectingReporter) Progress(statesExplored, queued int) {}

func runWithTimeout(t *testing.T, model Model, opts options.Options, reporter Reporter) *Stats {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stats, err := Run(ctx, model, opts, reporter)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return stats
}

func TestRun_ExploresBothStates(t *testing.T) {
	opts := options.Default()
	opts.Threads = 2
	opts.SetCapacity = 16
	opts.MaxErrors = 100

	reporter := &collectingReporter{}
	stats := runWithTimeout(t, bitModel(false), opts, reporter)

	if stats.StatesExplored != 2 {
		t.Errorf("StatesExplored = %d, want 2", stats.StatesExplored)
	}
	if stats.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", stats.ErrorCount)
	}
	if reporter.summaries != 1 {
		t.Errorf("Summary called %d times, want 1", reporter.summaries)
	}
}

func TestRun_ReportsInvariantViolation(t *testing.T) {
	opts := options.Default()
	opts.Threads = 1
	opts.SetCapacity = 16
	opts.MaxErrors = 100

	reporter := &collectingReporter{}
	stats := runWithTimeout(t, bitModel(true), opts, reporter)

	if stats.ErrorCount == 0 {
		t.Fatalf("ErrorCount = 0, want at least 1")
	}
	if len(reporter.errors) == 0 {
		t.Fatalf("no errors reported")
	}
	if reporter.errors[0].Kind != KindFailedInvariant {
		t.Errorf("Kind = %v, want KindFailedInvariant", reporter.errors[0].Kind)
	}
}

func TestRun_MaxErrorsStopsExploration(t *testing.T) {
	opts := options.Default()
	opts.Threads = 4
	opts.SetCapacity = 16
	opts.MaxErrors = 1

	reporter := &collectingReporter{}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Run(ctx, bitModel(true), opts, reporter)
	if err == nil {
		t.Fatalf("Run returned nil error, want errMaxErrorsReached")
	}
}
