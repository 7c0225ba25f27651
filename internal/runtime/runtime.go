// Package runtime implements the tree-walking Runner of spec.md §4.7:
// a parallel node tree produced by the Linker, each node implementing
// some subset of resolve/evaluate/execute/modify.
//
// Grounded on the teacher's internal/interp/interpreter.go (Eval
// dispatch, control-flow signal propagation, Environment-backed
// scoping), adapted to spec.md's Outcome-returning Execute contract and
// egg's symtab/value/types packages.
package runtime

import (
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// Node is the base interface every runtime node implements.
type Node interface {
	Location() diag.Location
}

// Evaluator is implemented by expression nodes.
type Evaluator interface {
	Node
	Evaluate(r *Runner) (value.Value, error)
}

// Executor is implemented by statement nodes.
type Executor interface {
	Node
	Execute(r *Runner) (Outcome, error)
}

// Modifier is implemented by target nodes (assign/mutate/nudge).
type Modifier interface {
	Node
	Modify(r *Runner, op string, lazy func() (value.Value, error)) (value.Value, error)
}

// Resolvable is implemented by nodes whose static Type was computed at
// link time and is available for inspection (spec.md §4.7's `resolve`).
type Resolvable interface {
	ResolvedType() types.Type
}

// Flow classifies an Outcome's control-flow effect (spec.md §4.7).
type Flow int

const (
	Through Flow = iota
	Break
	Continue
	Return
)

// Outcome is the (flow, value) pair every Execute returns.
type Outcome struct {
	Flow  Flow
	Value value.Value
}

var throughOutcome = Outcome{Flow: Through, Value: value.Void}

// RuntimeError is a raised runtime-origin error: spec.md §4.7 attaches
// the first node location that observes it ("first setter wins").
type RuntimeError struct {
	Exception *value.RuntimeException
	Location  diag.Location
	located   bool
}

func (e *RuntimeError) Error() string { return e.Exception.Error() }

// NewRuntimeError wraps a message into a catchable RuntimeError.
func NewRuntimeError(message string) *RuntimeError {
	return &RuntimeError{Exception: value.NewRuntimeException(message, string(diag.OriginRuntime))}
}

// WithLocation attaches loc if this error has not yet been located
// (first setter wins, spec.md §7).
func (e *RuntimeError) WithLocation(loc diag.Location) *RuntimeError {
	if e.located {
		return e
	}
	e.located = true
	e.Location = loc
	return e
}

// Runner executes a linked Program's node tree. One Runner instance is
// created per Program.Run call (spec.md §3: "the runtime owns one live
// Runner instance per run").
type Runner struct {
	Table  *symtab.Table
	Logger diag.Logger
	Source string
	caught value.Value
}

// NewRunner builds a Runner over a pre-seeded symbol table (builtins
// already registered by the caller).
func NewRunner(table *symtab.Table, logger diag.Logger, source string) *Runner {
	return &Runner{Table: table, Logger: logger, Source: source, caught: value.Void}
}

// Caught returns the exception value bound by the innermost enclosing
// try/catch, or Void outside a catch handler.
func (r *Runner) Caught() value.Value { return r.caught }

func (r *Runner) setCaught(v value.Value) (restore func()) {
	prev := r.caught
	r.caught = v
	return func() { r.caught = prev }
}

// Log forwards a message to the configured Logger, a no-op if none is
// set.
func (r *Runner) Log(m diag.Message) {
	if r.Logger != nil {
		r.Logger.Log(m)
	}
}
