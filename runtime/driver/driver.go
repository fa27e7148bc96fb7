package driver

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/specc-lang/specc/internal/options"
	"github.com/specc-lang/specc/runtime/liveness"
	"github.com/specc-lang/specc/runtime/queue"
	"github.com/specc-lang/specc/runtime/rendezvous"
	"github.com/specc-lang/specc/runtime/set"
	"github.com/specc-lang/specc/runtime/state"
)

// warmupThreshold is §4.13's ">20 states" trigger for spawning the
// remaining worker threads.
const warmupThreshold = 20

// Stats summarizes one Run.
type Stats struct {
	StatesExplored int
	RulesFired     int
	ErrorCount     int
	CoverHits      []bool
	LivenessViolated uint64
}

// Run drives the full explore loop (§4.13): single-threaded
// initialization, warmup-then-spawn, the per-thread exploration step,
// MAX_ERRORS-triggered cooperative shutdown, and the final liveness
// fixpoint pass. The generated checker's main function builds model
// and calls this directly.
func Run(ctx context.Context, model Model, opts options.Options, reporter Reporter) (*Stats, error) {
	seen := set.New(opts.SetCapacity, opts.SetExpandThreshold)
	queues := queue.NewSet(opts.Threads)

	var statesExplored, rulesFired, errCount, queuedCount atomic.Int64
	coverHits := make([]bool, len(model.Covers))
	coverFlagsView := coverFlags(coverHits)

	var allStates allSeenStates

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go progressTicker(ctx, reporter, &statesExplored, &queuedCount)

	// Initialization: single-threaded (§4.13 "Initialization").
	for _, start := range model.Starts {
		for _, res := range start() {
			if res.Outcome.Failed() {
				errCount.Add(1)
				reporter.Error(&CheckerError{Kind: kindOf(res.Outcome.Err), Message: res.Outcome.Err.Error()}, Counterexample{}, "")
				continue
			}
			s := res.State
			s.RuleID = -1
			model.Canonicalize(s)
			if !checkAssumptions(model, s) {
				continue
			}
			if failErr := checkInvariants(model, s); failErr != nil {
				errCount.Add(1)
				reportError(reporter, failErr, s, opts)
				continue
			}
			if seen.Insert(s) {
				statesExplored.Add(1)
				allStates.add(s)
				applyCoversAndLiveness(model, s, coverFlagsView)
				queues.Queues[0].Enqueue(queues.Hazards, 0, s)
				queuedCount.Add(1)
			}
		}
	}

	// Warmup: thread 0 proceeds alone until the queue has more than
	// warmupThreshold states queued or runs empty, then every other
	// worker is released (§4.13 "Warmup → Run").
	warmupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for queues.Queues[0].Len() <= warmupThreshold && queues.Queues[0].Len() > 0 && ctx.Err() == nil {
			<-ticker.C
		}
		close(warmupDone)
	}()

	// termination is the opt-out rendezvous (§4.13, §9): a worker that
	// finds every queue empty parks here instead of exiting outright.
	// Global quiescence is exactly the moment all opts.Threads workers
	// are parked simultaneously — any thread still holding work has not
	// arrived yet, so the barrier can only complete once there is truly
	// nothing left to process. A MaxErrors-triggered shutdown cancels
	// gctx, and the watcher goroutine below force-releases any worker
	// already parked so it can observe ctx.Err() and return.
	termination := rendezvous.NewBarrier(opts.Threads)

	g, gctx := errgroup.WithContext(ctx)
	go func() {
		<-gctx.Done()
		termination.Cancel()
	}()
	for t := 0; t < opts.Threads; t++ {
		t := t
		g.Go(func() error {
			if t != 0 {
				select {
				case <-warmupDone:
				case <-gctx.Done():
					return nil
				}
			}
			return explorationWorker(gctx, t, model, opts, queues, seen, &allStates,
				&statesExplored, &rulesFired, &errCount, &queuedCount, coverFlagsView, reporter, termination)
		})
	}
	runErr := g.Wait()

	liveness.FinalFixpoint(allStates.snapshot(), fireAll(model), lookupTwin(seen))

	stats := &Stats{
		StatesExplored: int(statesExplored.Load()),
		RulesFired:     int(rulesFired.Load()),
		ErrorCount:     int(errCount.Load()),
		CoverHits:      coverHits,
	}
	reporter.Summary(stats.StatesExplored, stats.RulesFired, stats.ErrorCount)
	return stats, runErr
}

func explorationWorker(
	ctx context.Context,
	self int,
	model Model,
	opts options.Options,
	queues *queue.Set,
	seen *set.Set,
	allStates *allSeenStates,
	statesExplored, rulesFired, errCount, queuedCount *atomic.Int64,
	coverHits coverFlags,
	reporter Reporter,
	termination *rendezvous.Barrier,
) error {
	preferred := self
	for {
		if ctx.Err() != nil {
			return nil
		}
		if int(errCount.Load()) >= opts.MaxErrors {
			return errMaxErrorsReached
		}
		s, ok := queues.DequeueRoundRobin(self, preferred)
		if !ok {
			termination.Wait(nil)
			return nil
		}
		queuedCount.Add(-1)

		anyEnabled := false
		anyProgress := false

		for ruleID, rule := range model.Rules {
			for _, res := range rule(s) {
				if res.Outcome.Abandoned {
					continue
				}
				anyEnabled = true
				rulesFired.Add(1)
				if res.Outcome.Failed() {
					errCount.Add(1)
					reportError(reporter, &CheckerError{Kind: kindOf(res.Outcome.Err), Message: res.Outcome.Err.Error()}, s, opts)
					continue
				}
				successor := res.State
				successor.RuleID = ruleID
				successor.Depth = s.Depth + 1

				if !successor.Equal(s) {
					anyProgress = true
				}

				model.Canonicalize(successor)

				if !checkAssumptions(model, successor) {
					continue
				}
				if failErr := checkInvariants(model, successor); failErr != nil {
					errCount.Add(1)
					reportError(reporter, failErr, successor, opts)
					continue
				}
				if !seen.Insert(successor) {
					continue
				}
				statesExplored.Add(1)
				allStates.add(successor)
				applyCoversAndLiveness(model, successor, coverHits)

				if opts.Bound == 0 || successor.Depth < opts.Bound {
					queues.Queues[self].Enqueue(queues.Hazards, self, successor)
					queuedCount.Add(1)
				}
			}
		}

		if deadlocked(opts.DeadlockDetection, anyEnabled, anyProgress) {
			errCount.Add(1)
			reportError(reporter, &CheckerError{Kind: KindDeadlock, Message: "no enabled rule (or stuttering only)"}, s, opts)
		}
	}
}

func deadlocked(mode options.DeadlockDetection, anyEnabled, anyProgress bool) bool {
	switch mode {
	case options.DeadlockStuck:
		return !anyEnabled
	case options.DeadlockStuttering:
		return !anyEnabled || !anyProgress
	default:
		return false
	}
}

func checkAssumptions(model Model, s *state.State) bool {
	for _, a := range model.Assumptions {
		ok, _ := a(s)
		if !ok {
			return false
		}
	}
	return true
}

func checkInvariants(model Model, s *state.State) *CheckerError {
	for i, inv := range model.Invariants {
		ok, err := inv(s)
		if !ok {
			msg := "invariant failed"
			if err != nil {
				msg = err.Error()
			}
			return &CheckerError{Kind: KindFailedInvariant, Message: msg, Name: nameAt(model.RuleNames, i)}
		}
	}
	return nil
}

func applyCoversAndLiveness(model Model, s *state.State, coverHits coverFlags) {
	for i, cov := range model.Covers {
		ok, _ := cov(s)
		if ok {
			coverHits.set(i)
		}
	}
	for i, live := range model.Liveness {
		ok, _ := live(s)
		if ok {
			s.SetLiveness(1 << uint(i))
		}
	}
	liveness.PropagateToPredecessors(s)
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}

func reportError(reporter Reporter, cerr *CheckerError, s *state.State, opts options.Options) {
	cx := Reconstruct(s)
	reporter.Error(cerr, cx, "")
}
