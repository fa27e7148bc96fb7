// Package codegen lowers a resolved, validated, laid-out *ast.Model
// into a self-contained Go source file: a small `package main` that
// declares the model's option-derived constants, one function per
// flattened rule/property/start-state, a runtime/symmetry.Plan literal
// per scalarset type, and a main that builds a runtime/driver.Model
// from them and calls runtime/driver.Run.
//
// This mirrors how rumur's emitted C relies on a fixed header.c
// runtime library instead of inlining every primitive: the emitted
// file here stays small because handle arithmetic, the exploration
// queue, the seen-state set, symmetry reduction and liveness
// propagation all already live in runtime/*. Codegen's job reduces to
// two things: computing static layout-derived values (bit offsets,
// widths, Plan literals) once at compile time, and emitting Go
// closures that drive those runtime primitives.
//
// Values are represented uniformly as Go int64 in emitted code,
// including booleans (the built-in two-member enum ast.BooleanType
// already encodes as 0/1): comparison and logical operators produce
// 0/1, and every if/while condition tests "!= 0". Locals are
// restricted to scalar (Range/Enum/Scalarset) type — composite-typed
// function parameters and quantifier bindings never arise in the
// source language's practice and are rejected here with a plain
// error rather than silently mishandled. Procedures and functions are
// pass-by-value only: the parser already discards the `var` by-ref
// marker on a parameter list without tracking it per parameter, so
// there is no by-reference information left by the time codegen runs.
package codegen
