package repl

import "context"

// Outcome is the result of a form evaluation: exactly one of a value or
// an error. Construct with ValueOutcome or ErrorOutcome; the zero value
// is malformed and deliver panics on it.
type Outcome struct {
	value Form
	err   error
	kind  outcomeKind
}

type outcomeKind uint8

const (
	outcomeNone outcomeKind = iota
	outcomeValue
	outcomeError
)

func ValueOutcome(v Form) Outcome {
	return Outcome{value: v, kind: outcomeValue}
}

func ErrorOutcome(err error) Outcome {
	return Outcome{err: err, kind: outcomeError}
}

func (o Outcome) Value() (Form, bool) {
	return o.value, o.kind == outcomeValue
}

func (o Outcome) Err() (error, bool) {
	return o.err, o.kind == outcomeError
}

// EvalReport is the result of a full evaluate-and-print call, including
// the namespace the backend considers active afterwards.
type EvalReport struct {
	Value     Form
	Err       error
	Namespace Symbol
}

// DiagEnv is the analyzer environment a diagnostic was raised in.
type DiagEnv struct {
	Namespace Symbol
	Line      int
	Column    int
}

// DiagnosticHandler receives compiler diagnostics raised during a
// backend call. Diagnostics always precede the call's result callback;
// the backend must not emit one afterwards.
type DiagnosticHandler func(category string, env DiagEnv, extra map[string]any)

// VarInfo is the documentation metadata of a var known to the backend.
type VarInfo struct {
	Name      Symbol
	Namespace Symbol
	Doc       string
	Arglists  []string
	Macro     bool
}

// LoadFn supplies source text for a namespace the backend is loading.
type LoadFn func(name Symbol, macros bool, cb func(source string, ok bool))

// EvalFn executes a unit of compiled output.
type EvalFn func(compiled string) (any, error)

// StackCarrier is implemented by values and errors that carry a stack
// trace renderable by the pst directive.
type StackCarrier interface {
	StackTrace() string
}

// Backend is the opaque compiler handle. It reports results through
// callbacks; exactly one callback invocation occurs per call, and the
// caller logically suspends until it fires. The session never copies or
// owns the backend.
type Backend interface {
	// Evaluate compiles and runs a single form.
	Evaluate(ctx context.Context, form Form, opts EvalOptions, cb func(Outcome))

	// EvaluateText compiles and runs raw input text through the full
	// evaluate-and-print pipeline. source names the input for error
	// positions.
	EvaluateText(ctx context.Context, text, source string, opts EvalOptions, cb func(EvalReport))

	// SetDiagnosticHandler installs the handler invoked for compiler
	// diagnostics. A nil handler uninstalls it.
	SetDiagnosticHandler(h DiagnosticHandler)

	// Namespaces lists the namespaces currently known to the backend.
	Namespaces() []Symbol

	// Loaded-module cache, consulted by require reload handling.
	LoadedModules() []Symbol
	ClearLoaded()
	EvictLoaded(name Symbol)

	// Var looks up documentation metadata for a var in a namespace.
	Var(ns, name Symbol) (VarInfo, bool)
}
