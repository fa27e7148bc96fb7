package driver

import (
	"encoding/xml"
	"fmt"
	"io"
	"sync"
)

// Reporter renders exploration results to the runtime's output
// streams (§6 "Writes a human-readable or XML-structured report to
// stdout; error traces to stderr"). printLock guards both streams
// process-wide (§5 "stdout/stderr are guarded by a process-wide
// printing lock"), matching hivectl's printInfo/printError helpers
// adapted to a concurrent emitted program.
type Reporter interface {
	Summary(statesExplored, rulesFired int, errorCount int)
	Error(err *CheckerError, cx Counterexample, trace string)
	Progress(statesExplored, queued int)
}

var printLock sync.Mutex

// TextReporter is the default human-readable reporter.
type TextReporter struct {
	Out, Err io.Writer
}

func (r *TextReporter) Summary(states, rules, errs int) {
	printLock.Lock()
	defer printLock.Unlock()
	fmt.Fprintf(r.Out, "%d states explored, %d rules fired, %d error(s)\n", states, rules, errs)
}

func (r *TextReporter) Error(err *CheckerError, cx Counterexample, trace string) {
	printLock.Lock()
	defer printLock.Unlock()
	fmt.Fprintf(r.Err, "Error: %s\n", err.Error())
	if trace != "" {
		fmt.Fprintln(r.Err, trace)
	}
}

func (r *TextReporter) Progress(states, queued int) {
	printLock.Lock()
	defer printLock.Unlock()
	fmt.Fprintf(r.Out, "%d states explored, %d queued\n", states, queued)
}

// xmlReport is the top-level element an XMLReporter accumulates into
// and marshals once at the end (§4 SUPPLEMENTED FEATURES: "XML
// machine-readable error wrapping").
type xmlReport struct {
	XMLName xml.Name   `xml:"results"`
	Errors  []xmlError `xml:"error"`
}

type xmlError struct {
	IncludesTrace bool   `xml:"includes_trace,attr"`
	Message       string `xml:"message"`
	Trace         string `xml:"trace,omitempty"`
}

// XMLReporter accumulates errors and writes one <results> document at
// Summary time, matching rumur's ast-dump/src/XMLPrinter.cc-style
// batch-at-the-end XML emission (original_source/).
type XMLReporter struct {
	Out    io.Writer
	report xmlReport
}

func (r *XMLReporter) Error(err *CheckerError, cx Counterexample, trace string) {
	printLock.Lock()
	defer printLock.Unlock()
	r.report.Errors = append(r.report.Errors, xmlError{
		IncludesTrace: trace != "",
		Message:       err.Error(),
		Trace:         trace,
	})
}

func (r *XMLReporter) Summary(states, rules, errs int) {
	printLock.Lock()
	defer printLock.Unlock()
	enc := xml.NewEncoder(r.Out)
	enc.Indent("", "  ")
	_ = enc.Encode(r.report)
}

func (r *XMLReporter) Progress(states, queued int) {}
