package repl

import (
	"fmt"
	"sort"
	"strings"
)

// WarningFormatter derives a human-readable message from a diagnostic,
// or "" when the diagnostic has no message worth reporting.
type WarningFormatter func(category string, extra map[string]any) string

// EvalOptions is the configuration snapshot for one backend call. It is
// built fresh per call by layering package defaults, session defaults
// and per-call options, and is not mutated afterwards.
type EvalOptions struct {
	Namespace     Symbol
	Context       string
	Verbose       bool
	SourceMap     bool
	DefEmitsVar   bool
	SuppressPrint bool

	Warnings      map[string]bool
	FormatWarning WarningFormatter

	Load LoadFn
	Eval EvalFn
}

type EvalOption func(*EvalOptions)

func WithNamespace(ns Symbol) EvalOption {
	return func(o *EvalOptions) { o.Namespace = ns }
}

func WithContext(c string) EvalOption {
	return func(o *EvalOptions) { o.Context = c }
}

func WithVerbose(v bool) EvalOption {
	return func(o *EvalOptions) { o.Verbose = v }
}

func WithSourceMap(v bool) EvalOption {
	return func(o *EvalOptions) { o.SourceMap = v }
}

func WithDefEmitsVar(v bool) EvalOption {
	return func(o *EvalOptions) { o.DefEmitsVar = v }
}

func WithSuppressPrint(v bool) EvalOption {
	return func(o *EvalOptions) { o.SuppressPrint = v }
}

func WithWarnings(categories ...string) EvalOption {
	return func(o *EvalOptions) {
		o.Warnings = make(map[string]bool, len(categories))
		for _, c := range categories {
			o.Warnings[c] = true
		}
	}
}

func WithWarningFormatter(f WarningFormatter) EvalOption {
	return func(o *EvalOptions) { o.FormatWarning = f }
}

func WithLoadFn(f LoadFn) EvalOption {
	return func(o *EvalOptions) { o.Load = f }
}

func WithEvalFn(f EvalFn) EvalOption {
	return func(o *EvalOptions) { o.Eval = f }
}

func defaultWarningSet() map[string]bool {
	cats := []string{
		"undeclared-var",
		"undeclared-ns",
		"undeclared-ns-form",
		"redef",
		"dynamic",
		"fn-var",
		"fn-arity",
		"fn-deprecated",
		"invalid-arithmetic",
		"invoke-ctor",
		"single-segment-namespace",
	}
	m := make(map[string]bool, len(cats))
	for _, c := range cats {
		m[c] = true
	}
	return m
}

func defaultWarningFormat(category string, extra map[string]any) string {
	if msg, ok := extra["message"].(string); ok && msg != "" {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(strings.ReplaceAll(category, "-", " "))

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, extra[k])
	}
	return sb.String()
}

func defaultOptions() EvalOptions {
	return EvalOptions{
		Context:       "expr",
		DefEmitsVar:   true,
		Warnings:      defaultWarningSet(),
		FormatWarning: defaultWarningFormat,
	}
}
