// Package driver implements §4.13's explore loop: initialization,
// warmup-then-run worker spawn, the per-thread exploration step,
// deadlock detection, counterexample reconstruction, and the dual
// text/XML reporters §7 names. The generated checker's main function
// (emitted by pkg/codegen) builds a Model value wiring its own
// start/rule/property functions and calls Run.
package driver
