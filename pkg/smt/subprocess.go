package smt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// verdict is the leading response line a solver prints for a
// check-sat query.
type verdict int

const (
	unknownVerdict verdict = iota
	sat
	unsat
	inconclusive // spawn failure, I/O error, or an unparseable/"unknown" response
)

// runQuery spawns a fresh solver process per query (one-shot mode, no
// server/session reuse) and pipes script to its stdin. The call is
// synchronous: exec.CommandContext kills the process once ctx (narrowed
// by timeout when it is positive) is done, and cmd.Run returns only
// after both stdout EOF and process exit, so no select-multiplexed
// pipes or SIGCHLD self-pipe are needed.
func runQuery(ctx context.Context, solverPath string, script string, timeout time.Duration) verdict {
	qctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(qctx, solverPath, "-in")
	cmd.Stdin = strings.NewReader(script)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return inconclusive
	}
	return parseVerdict(stdout.String())
}

func parseVerdict(output string) verdict {
	first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	switch strings.TrimSpace(first) {
	case "sat":
		return sat
	case "unsat":
		return unsat
	default:
		return inconclusive
	}
}

// buildQuery wraps prelude with an assertion of candidate and a
// check-sat, the shape both the "always true" and "always false"
// queries share.
func buildQuery(prelude, candidate string) string {
	return fmt.Sprintf("%s\n(assert %s)\n(check-sat)\n", prelude, candidate)
}
