package driver

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/specc-lang/specc/internal/options"
	"github.com/specc-lang/specc/runtime/state"
)

// Counterexample is the reversed predecessor chain from an initial
// state to an error state (§4.13 "walk the previous chain to the
// root... reverse the list").
type Counterexample struct {
	States []*state.State
}

// Reconstruct walks s's Previous chain to the root and reverses it.
func Reconstruct(s *state.State) Counterexample {
	var chain []*state.State
	for cur := s; cur != nil; cur = cur.Previous {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return Counterexample{States: chain}
}

// Print renders the counterexample to w's textual form according to
// mode: full prints every state's complete printed form, diff prints
// only a line-oriented diff from the previous printed state (computed
// with go-difflib, grounded in §1 AMBIENT STACK's "counterexample-
// trace diff mode").
func (c Counterexample) Print(printState func(*state.State) string, ruleName func(ruleID, binding int) string, mode options.CounterexampleTrace) string {
	if mode == options.TraceOff {
		return ""
	}
	var b strings.Builder
	var prevText string
	for i, s := range c.States {
		if i == 0 {
			fmt.Fprintf(&b, "Startstate\n")
		} else {
			fmt.Fprintf(&b, "%s\n", ruleName(s.RuleID, s.Binding))
		}
		text := printState(s)
		if mode == options.TraceDiff && i > 0 {
			diff := difflib.UnifiedDiff{
				A:        difflib.SplitLines(prevText),
				B:        difflib.SplitLines(text),
				FromFile: fmt.Sprintf("state %d", i-1),
				ToFile:   fmt.Sprintf("state %d", i),
				Context:  0,
			}
			out, _ := difflib.GetUnifiedDiffString(diff)
			b.WriteString(out)
		} else {
			b.WriteString(text)
		}
		b.WriteString("\n")
		prevText = text
	}
	return b.String()
}
