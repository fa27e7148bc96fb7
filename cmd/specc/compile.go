package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/specc-lang/specc/internal/diag"
	"github.com/specc-lang/specc/internal/options"
	"github.com/specc-lang/specc/pkg/ast"
	"github.com/specc-lang/specc/pkg/codegen"
	"github.com/specc-lang/specc/pkg/layout"
	"github.com/specc-lang/specc/pkg/parser"
	"github.com/specc-lang/specc/pkg/resolve"
	"github.com/specc-lang/specc/pkg/smt"
	"github.com/specc-lang/specc/pkg/token"
	"github.com/specc-lang/specc/pkg/validate"
)

// compileFlags mirrors the §6 compile-time CLI directly into an
// internal/options.Options value; cobra binds each field below, then
// runCompile copies the custom enum values across since pflag needs
// addressable storage of the enum's own type, not Options'.
var (
	outputFile          string
	flagThreads         int
	flagSetCapacity     int
	flagSetExpand       int
	flagColor           options.Color
	flagTrace           options.TraceFlags
	flagDeadlock        options.DeadlockDetection
	flagSymmetry        options.SymmetryReduction
	flagSandbox         bool
	flagMaxErrors       int
	flagCounterexample  options.CounterexampleTrace
	flagBound           int
	flagPackState       bool
	flagDebug           bool
	flagSMTSolverPath   string
	flagSMTBudget       int
	flagSMTConcurrency  int
	flagSMTTimeout      time.Duration
)

func init() {
	rootCmd.Use = "specc [options] input-file"
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCompile(args)
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputFile, "output", "o", "", "Generated Go source output file (required)")
	flags.IntVar(&flagThreads, "threads", runtime.NumCPU(), "Worker goroutines the generated checker starts")
	flags.IntVar(&flagSetCapacity, "set-capacity", 1<<16, "Initial visited-state set capacity")
	flags.IntVar(&flagSetExpand, "set-expand-threshold", 65, "Load factor percent (1..100) that triggers a set resize")
	flags.Var(&flagColor, "color", "Colorize output: on|off|auto")
	flags.Var(options.TraceValue(&flagTrace), "trace", "Trace category to enable (repeatable): handle_reads|handle_writes|queue|set|symmetry_reduction|memory_usage|all")
	flags.Var(&flagDeadlock, "deadlock-detection", "Deadlock detection mode: off|stuck|stuttering")
	flags.Var(&flagSymmetry, "symmetry-reduction", "Symmetry reduction mode: off|heuristic|exhaustive")
	flags.BoolVar(&flagSandbox, "sandbox", false, "Generated checker drops OS capabilities at start")
	flags.IntVar(&flagMaxErrors, "max-errors", 1, "Stop after this many distinct errors")
	flags.Var(&flagCounterexample, "counterexample-trace", "Counterexample trace detail: off|diff|full")
	flags.IntVar(&flagBound, "bound", 0, "Maximum rule-firing depth (0 = unbounded)")
	flags.BoolVar(&flagPackState, "pack-state", false, "Pack state vectors to their minimum bit width")
	flags.BoolVar(&flagDebug, "debug", false, "Enable debug-level diagnostics")
	flags.StringVar(&flagSMTSolverPath, "smt-solver-path", "", "SMT-LIB2 solver binary used to simplify the model before codegen (off when empty)")
	flags.IntVar(&flagSMTBudget, "smt-budget", 10000, "Maximum check-sat queries the SMT simplifier may issue")
	flags.IntVar(&flagSMTConcurrency, "smt-concurrency", runtime.NumCPU(), "Maximum concurrent solver subprocesses")
	flags.DurationVar(&flagSMTTimeout, "smt-timeout", 10*time.Second, "Per-query solver subprocess timeout")
}

// runCompile drives the full compile pipeline: lex/parse, resolve,
// validate, lay out state, optionally simplify via an SMT solver, and
// emit the generated checker's Go source to opts.OutputFile. It
// returns the first error encountered, matching §7's "surface the
// first error and stop" compiler policy.
func runCompile(args []string) error {
	inputFile := args[0]

	opts := options.Default()
	opts.InputFile = inputFile
	opts.OutputFile = outputFile
	opts.Threads = flagThreads
	opts.SetCapacity = flagSetCapacity
	opts.SetExpandThreshold = flagSetExpand
	opts.Color = flagColor
	opts.Trace = flagTrace
	opts.DeadlockDetection = flagDeadlock
	opts.SymmetryReduction = flagSymmetry
	opts.Sandbox = flagSandbox
	opts.MaxErrors = flagMaxErrors
	opts.CounterexampleTrace = flagCounterexample
	opts.Bound = flagBound
	opts.PackState = flagPackState
	opts.Debug = flagDebug
	opts.Quiet = quiet
	opts.Verbose = verbose
	opts.SMTSolverPath = flagSMTSolverPath
	opts.SMTBudget = flagSMTBudget

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	log := diag.NewLogger(flagDebug, verbose, quiet)

	src, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}

	log.WithField("file", inputFile).Info("parsing")
	file := &token.File{Name: inputFile}
	model, _, err := parser.Parse(file, string(src))
	if err != nil {
		return err
	}

	log.Info("resolving declarations")
	if err := resolve.Resolve(model); err != nil {
		return err
	}

	log.Info("validating model")
	vresult, err := validate.Validate(model)
	if err != nil {
		return err
	}
	if len(vresult.NonSimpleComparisons) > 0 {
		log.WithField("count", len(vresult.NonSimpleComparisons)).Debug("non-scalar comparisons will be emitted field-by-field")
	}

	log.Info("laying out state vector")
	if _, err := layout.Layout(model); err != nil {
		return err
	}

	ast.Reindex(model)

	if opts.SMTSolverPath != "" {
		log.WithField("solver", opts.SMTSolverPath).Info("simplifying with SMT solver")
		smtOpts := smt.Options{
			SolverPath:  opts.SMTSolverPath,
			QueryBudget: opts.SMTBudget,
			Timeout:     flagSMTTimeout,
			Concurrency: flagSMTConcurrency,
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stats, err := smt.Simplify(ctx, model, smtOpts)
		if err != nil {
			return fmt.Errorf("smt simplification: %w", err)
		}
		log.WithFields(logrus.Fields{
			"substitutions":   stats.Substitutions,
			"queries":         stats.QueriesIssued,
			"budget_exceeded": stats.BudgetExceeded,
		}).Debug("smt simplification complete")
		// Substitution splices fresh nodes into the tree; codegen's
		// name generation needs every node carrying a current, unique
		// ID again.
		ast.Reindex(model)
	}

	log.WithField("output", outputFile).Info("generating checker")
	out, err := codegen.Generate(model, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}

	log.WithField("output", outputFile).Info("checker generated")
	return nil
}
