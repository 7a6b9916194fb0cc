package repl

import (
	"github.com/lmika/gopkgs/fp/slices"
)

// scratchNS is the namespace synthesized require forms target when a
// namespace would otherwise require itself. It is never adopted as the
// session namespace.
const scratchNS = Symbol("repl.scratch")

// headerMeta marks a synthesized form as a mergeable namespace header at
// the start of the input stream.
func headerMeta() *FormMeta {
	return &FormMeta{Merge: true, Line: 1, Column: 1}
}

// nsDecl builds a minimal (ns <name>) declaration.
func nsDecl(name Symbol) *List {
	return &List{Items: []Form{Symbol("ns"), name}, Meta: headerMeta()}
}

// canonicalSpec turns a bare symbol spec into a one-element vector.
// Vector specs pass through.
func canonicalSpec(f Form) Form {
	if sym, ok := f.(Symbol); ok {
		return Vector{sym}
	}
	return f
}

// specName is the namespace a spec refers to: the first element of a
// vector spec, or the spec itself when scalar.
func specName(f Form) (Symbol, bool) {
	switch v := f.(type) {
	case Symbol:
		return v, true
	case Vector:
		if len(v) > 0 {
			if sym, ok := v[0].(Symbol); ok {
				return sym, true
			}
		}
	}
	return "", false
}

func hasKeyword(opts []Keyword, want Keyword) bool {
	for _, k := range opts {
		if k == want {
			return true
		}
	}
	return false
}

// synthesizeRequire builds the synthetic namespace declaration for a
// require-like directive: (ns <target> (:require <spec>...)). Reload
// options are applied to the backend's loaded-module cache and stripped
// from the emitted clause. When a spec references the current namespace
// the form targets the scratch namespace instead, so that a namespace
// never requires itself; restoring the session namespace afterwards is
// the caller's success hook.
func (s *Session) synthesizeRequire(kind Keyword, specs []Form, kwopts []Keyword) (form *List, target Symbol) {
	specs = slices.Map(specs, canonicalSpec)

	switch {
	case hasKeyword(kwopts, "reload-all"):
		s.backend.ClearLoaded()
	case hasKeyword(kwopts, "reload"):
		for _, spec := range specs {
			if name, ok := specName(spec); ok {
				s.backend.EvictLoaded(name)
			}
		}
	}
	kwopts = slices.Filter(kwopts, func(k Keyword) bool {
		return k != "reload" && k != "reload-all"
	})

	target = s.ns
	for _, spec := range specs {
		if name, ok := specName(spec); ok && name == s.ns {
			target = scratchNS
			break
		}
	}

	return nsClause(target, kind, specs, kwopts), target
}

// synthesizeImport builds (ns <target> (:import <spec>...)), passing
// import specs through unchanged. Imports have no reload or
// self-reference semantics.
func (s *Session) synthesizeImport(specs []Form) *List {
	return nsClause(s.ns, "import", specs, nil)
}

func nsClause(target Symbol, kind Keyword, specs []Form, kwopts []Keyword) *List {
	items := make([]Form, 0, len(specs)+len(kwopts)+1)
	items = append(items, Form(kind))
	items = append(items, specs...)
	for _, k := range kwopts {
		items = append(items, k)
	}

	return &List{
		Items: []Form{Symbol("ns"), target, &List{Items: items}},
		Meta:  headerMeta(),
	}
}
