package repl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"replsession.dev/repl"
	"replsession.dev/repl/reader"
)

type diagEvent struct {
	category string
	env      repl.DiagEnv
	extra    map[string]any
}

// fakeBackend is a scripted compiler: forms self-evaluate, quote
// unwraps, ns declarations succeed with nil. Diagnostics queued with
// emit fire at the start of the next call, before its callback, which
// matches the ordering contract of a real backend.
type fakeBackend struct {
	rd *reader.Reader

	evalFn func(form repl.Form) repl.Outcome
	textFn func(text string) repl.EvalReport

	nss        []repl.Symbol
	loaded     map[repl.Symbol]bool
	clearedAll bool
	evicted    []repl.Symbol
	vars       map[string]repl.VarInfo

	handler repl.DiagnosticHandler
	forms   []repl.Form
	pending []diagEvent
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rd:     reader.New(),
		loaded: make(map[repl.Symbol]bool),
		vars:   make(map[string]repl.VarInfo),
	}
}

func (b *fakeBackend) emit(category string, extra map[string]any) {
	b.pending = append(b.pending, diagEvent{category: category, extra: extra})
}

func (b *fakeBackend) emitIn(category string, env repl.DiagEnv, extra map[string]any) {
	b.pending = append(b.pending, diagEvent{category: category, env: env, extra: extra})
}

func (b *fakeBackend) firePending() {
	for _, d := range b.pending {
		if b.handler != nil {
			b.handler(d.category, d.env, d.extra)
		}
	}
	b.pending = nil
}

func (b *fakeBackend) defaultEval(form repl.Form) repl.Form {
	if l, ok := form.(*repl.List); ok {
		if head, ok := l.First().(repl.Symbol); ok {
			switch head {
			case "quote":
				if len(l.Items) == 2 {
					return l.Items[1]
				}
			case "ns":
				return nil
			}
		}
	}
	return form
}

func (b *fakeBackend) Evaluate(ctx context.Context, form repl.Form, opts repl.EvalOptions, cb func(repl.Outcome)) {
	b.forms = append(b.forms, form)
	b.firePending()

	if b.evalFn != nil {
		cb(b.evalFn(form))
		return
	}
	cb(repl.ValueOutcome(b.defaultEval(form)))
}

func (b *fakeBackend) EvaluateText(ctx context.Context, text, source string, opts repl.EvalOptions, cb func(repl.EvalReport)) {
	b.firePending()

	if b.textFn != nil {
		cb(b.textFn(text))
		return
	}

	form, err := b.rd.Parse(text)
	if err != nil {
		cb(repl.EvalReport{Err: err, Namespace: "user"})
		return
	}

	ns := repl.Symbol("user")
	if l, ok := form.(*repl.List); ok {
		if head, headOK := l.First().(repl.Symbol); headOK && head == "ns" && len(l.Items) >= 2 {
			if name, nameOK := l.Items[1].(repl.Symbol); nameOK {
				ns = name
			}
		}
	}
	cb(repl.EvalReport{Value: b.defaultEval(form), Namespace: ns})
}

func (b *fakeBackend) SetDiagnosticHandler(h repl.DiagnosticHandler) {
	b.handler = h
}

func (b *fakeBackend) Namespaces() []repl.Symbol {
	return b.nss
}

func (b *fakeBackend) LoadedModules() []repl.Symbol {
	mods := make([]repl.Symbol, 0, len(b.loaded))
	for m := range b.loaded {
		mods = append(mods, m)
	}
	return mods
}

func (b *fakeBackend) ClearLoaded() {
	b.clearedAll = true
	b.loaded = make(map[repl.Symbol]bool)
}

func (b *fakeBackend) EvictLoaded(name repl.Symbol) {
	b.evicted = append(b.evicted, name)
	delete(b.loaded, name)
}

func (b *fakeBackend) Var(ns, name repl.Symbol) (repl.VarInfo, bool) {
	if q := name.Qualifier(); q != "" {
		ns = repl.Symbol(q)
		name = repl.Symbol(name.Name())
	}
	info, ok := b.vars[string(ns)+"/"+string(name)]
	return info, ok
}

// lastForm is the most recent form submitted through Evaluate.
func (b *fakeBackend) lastForm() repl.Form {
	if len(b.forms) == 0 {
		return nil
	}
	return b.forms[len(b.forms)-1]
}

func newTestSession(be *fakeBackend, opts ...repl.SessionOption) *repl.Session {
	return repl.New(be, reader.New(), opts...)
}

// evalOnce drives one evaluation and asserts the continuation fired
// exactly once.
func evalOnce(t *testing.T, s *repl.Session, input string) (bool, any) {
	t.Helper()

	var (
		ok      bool
		payload any
		fired   int
	)
	s.Evaluate(context.Background(), input, func(o bool, p any) {
		fired++
		ok, payload = o, p
	})

	assert.Equal(t, 1, fired, "continuation must fire exactly once")
	return ok, payload
}
