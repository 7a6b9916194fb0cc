package main

import (
	"context"

	"replsession.dev/repl"
	"replsession.dev/repl/reader"
)

// demoBackend is a stand-in compiler for trying the shell out: forms
// self-evaluate, namespace declarations register namespaces, and a few
// core vars carry documentation. A real session would be constructed
// over an actual compiler handle.
type demoBackend struct {
	rd     *reader.Reader
	active repl.Symbol
	nss    map[repl.Symbol]bool
	loaded map[repl.Symbol]bool
	vars   map[repl.Symbol]map[repl.Symbol]repl.VarInfo
	diag   repl.DiagnosticHandler
}

func newDemoBackend() *demoBackend {
	core := repl.Symbol("lang.core")
	return &demoBackend{
		rd:     reader.New(),
		active: "user",
		nss:    map[repl.Symbol]bool{"user": true, core: true},
		loaded: map[repl.Symbol]bool{core: true},
		vars: map[repl.Symbol]map[repl.Symbol]repl.VarInfo{
			core: {
				"map": {
					Name:      "lang.core/map",
					Namespace: core,
					Doc:       "Returns a lazy sequence of applying f to each item of coll.",
					Arglists:  []string{"[f coll]"},
				},
				"when": {
					Name:      "lang.core/when",
					Namespace: core,
					Doc:       "Evaluates test. If logical true, evaluates body in a do.",
					Arglists:  []string{"[test & body]"},
					Macro:     true,
				},
			},
		},
	}
}

func (b *demoBackend) Evaluate(ctx context.Context, form repl.Form, opts repl.EvalOptions, cb func(repl.Outcome)) {
	cb(repl.ValueOutcome(b.eval(form)))
}

func (b *demoBackend) eval(form repl.Form) repl.Form {
	if l, ok := form.(*repl.List); ok {
		if head, ok := l.First().(repl.Symbol); ok {
			switch head {
			case "quote":
				if len(l.Items) == 2 {
					return l.Items[1]
				}
			case "ns":
				if len(l.Items) >= 2 {
					if name, ok := l.Items[1].(repl.Symbol); ok {
						b.nss[name] = true
						b.active = name
					}
				}
				return nil
			}
		}
	}
	return form
}

func (b *demoBackend) EvaluateText(ctx context.Context, text, source string, opts repl.EvalOptions, cb func(repl.EvalReport)) {
	form, err := b.rd.Parse(text)
	if err != nil {
		cb(repl.EvalReport{Err: err, Namespace: b.active})
		return
	}
	cb(repl.EvalReport{Value: b.eval(form), Namespace: b.active})
}

func (b *demoBackend) SetDiagnosticHandler(h repl.DiagnosticHandler) {
	b.diag = h
}

func (b *demoBackend) Namespaces() []repl.Symbol {
	nss := make([]repl.Symbol, 0, len(b.nss))
	for ns := range b.nss {
		nss = append(nss, ns)
	}
	return nss
}

func (b *demoBackend) LoadedModules() []repl.Symbol {
	mods := make([]repl.Symbol, 0, len(b.loaded))
	for m := range b.loaded {
		mods = append(mods, m)
	}
	return mods
}

func (b *demoBackend) ClearLoaded() {
	b.loaded = make(map[repl.Symbol]bool)
}

func (b *demoBackend) EvictLoaded(name repl.Symbol) {
	delete(b.loaded, name)
}

func (b *demoBackend) Var(ns, name repl.Symbol) (repl.VarInfo, bool) {
	if q := name.Qualifier(); q != "" {
		ns = repl.Symbol(q)
		name = repl.Symbol(name.Name())
	}
	info, ok := b.vars[ns][name]
	return info, ok
}
