package repl

import (
	"context"
	"fmt"
	"strings"
)

var directiveKinds = map[Symbol]bool{
	"in-ns":          true,
	"require":        true,
	"require-macros": true,
	"import":         true,
	"doc":            true,
	"pst":            true,
	"source":         true,
	"load-file":      true,
}

// asDirective recognizes a session-control directive: a list form whose
// head is one of the directive symbols.
func asDirective(f Form) (Symbol, []Form, bool) {
	l, ok := f.(*List)
	if !ok {
		return "", nil, false
	}
	sym, ok := l.First().(Symbol)
	if !ok || !directiveKinds[sym] {
		return "", nil, false
	}
	return sym, l.Items[1:], true
}

func (s *Session) runDirective(ctx context.Context, name Symbol, args []Form, opts EvalOptions, cont Continuation) {
	d := delivery{sess: s, opts: opts, cont: cont}

	switch name {
	case "in-ns":
		s.inNS(ctx, args, opts, cont)
	case "require", "import":
		s.requireLike(ctx, name, args, opts, cont)
	case "require-macros", "source", "load-file":
		d.resolve(ErrorOutcome(&UnsupportedError{Directive: name}))
	case "doc":
		s.docLookup(args, opts, cont)
	case "pst":
		s.printStackTrace(ctx, args, opts, cont)
	default:
		d.resolve(ErrorOutcome(&UnsupportedError{Directive: name}))
	}
}

// inNS switches the current namespace. The argument is evaluated first;
// a namespace already known to the backend is switched to directly,
// otherwise a minimal (ns <sym>) declaration is submitted and the
// switch happens only once the backend confirms it.
func (s *Session) inNS(ctx context.Context, args []Form, opts EvalOptions, cont Continuation) {
	d := delivery{sess: s, opts: opts, cont: cont}

	if len(args) != 1 {
		d.resolve(ErrorOutcome(&ArgumentError{Directive: "in-ns", Reason: "argument must be a symbol"}))
		return
	}

	s.backend.Evaluate(ctx, args[0], opts, func(out Outcome) {
		if _, isErr := out.Err(); isErr {
			d.resolve(out)
			return
		}

		v, _ := out.Value()
		sym, ok := v.(Symbol)
		if !ok {
			d.resolve(ErrorOutcome(&ArgumentError{Directive: "in-ns", Reason: "argument must be a symbol"}))
			return
		}

		sw := d
		sw.onSuccess = func() { s.ns = sym }

		if s.knownNamespace(sym) {
			sw.resolve(ValueOutcome(nil))
			return
		}

		s.backend.Evaluate(ctx, nsDecl(sym), opts, func(declOut Outcome) {
			sw.resolve(declOut)
		})
	})
}

// requireLike handles require and import by synthesizing a namespace
// declaration and submitting it to the backend. When the synthesizer
// routed through the scratch namespace, the success hook restores the
// original one.
func (s *Session) requireLike(ctx context.Context, name Symbol, args []Form, opts EvalOptions, cont Continuation) {
	d := delivery{sess: s, opts: opts, cont: cont}

	specs, kwopts, err := splitSpecs(name, args)
	if err != nil {
		d.resolve(ErrorOutcome(err))
		return
	}

	var form *List
	target := s.ns
	if name == "import" {
		form = s.synthesizeImport(specs)
	} else {
		form, target = s.synthesizeRequire(Keyword(name), specs, kwopts)
	}

	if target == scratchNS {
		original := s.ns
		d.onSuccess = func() { s.ns = original }
	}

	callOpts := opts
	callOpts.Namespace = target
	s.backend.Evaluate(ctx, form, callOpts, d.resolve)
}

// splitSpecs validates require/import arguments: quoted forms become
// specs, bare keywords are passed through as options, anything else is
// an argument error.
func splitSpecs(name Symbol, args []Form) (specs []Form, kwopts []Keyword, err error) {
	if len(args) == 0 {
		return nil, nil, &ArgumentError{Directive: name, Reason: "argument must be a symbol"}
	}

	for _, arg := range args {
		if kw, ok := arg.(Keyword); ok {
			kwopts = append(kwopts, kw)
			continue
		}
		inner, ok := unquote(arg)
		if !ok {
			return nil, nil, &ArgumentError{Directive: name, Reason: "argument must be a symbol"}
		}
		specs = append(specs, inner)
	}
	return specs, kwopts, nil
}

// docLookup always succeeds; an unresolvable symbol yields empty
// documentation. The payload is delivered unrendered.
func (s *Session) docLookup(args []Form, opts EvalOptions, cont Continuation) {
	d := delivery{sess: s, opts: opts, cont: cont}
	d.opts.SuppressPrint = true

	var text string
	if len(args) == 1 {
		if sym, ok := args[0].(Symbol); ok {
			text = s.lookupDoc(sym)
		}
	}

	d.resolve(ValueOutcome(Text(text)))
}

func (s *Session) lookupDoc(sym Symbol) string {
	if e, ok := specialDocs[sym]; ok {
		return formatDoc(string(sym), e.forms, e.doc, "Special Form")
	}
	if e, ok := directiveDocs[sym]; ok {
		return formatDoc(string(sym), e.forms, e.doc, "REPL Special")
	}

	info, ok := s.backend.Var(s.ns, sym)
	if !ok {
		info, ok = s.backend.Var(s.coreNS, sym)
	}
	if !ok {
		return ""
	}

	display := string(info.Name)
	if q := sym.Qualifier(); q != "" && Symbol(q) == info.Namespace {
		display = sym.Name()
	}

	kind := ""
	if info.Macro {
		kind = "Macro"
	}
	return formatDoc(display, info.Arglists, info.Doc, kind)
}

func formatDoc(name string, arglists []string, doc, kind string) string {
	var sb strings.Builder
	sb.WriteString("-------------------------\n")
	sb.WriteString(name)
	sb.WriteByte('\n')
	if len(arglists) > 0 {
		sb.WriteString("(" + strings.Join(arglists, " ") + ")\n")
	}
	if kind != "" {
		sb.WriteString(kind + "\n")
	}
	if doc != "" {
		sb.WriteString("  " + doc + "\n")
	}
	return sb.String()
}

// printStackTrace renders the stack trace carried by an error value.
// With no argument it falls back to the session's last error; with
// neither, it succeeds with no output.
func (s *Session) printStackTrace(ctx context.Context, args []Form, opts EvalOptions, cont Continuation) {
	d := delivery{sess: s, opts: opts, cont: cont}
	d.opts.SuppressPrint = true

	if len(args) == 0 {
		if s.lastErr == nil {
			d.resolve(ValueOutcome(nil))
			return
		}
		d.resolve(ValueOutcome(stackText(s.lastErr)))
		return
	}

	s.backend.Evaluate(ctx, args[0], opts, func(out Outcome) {
		v, ok := out.Value()
		if !ok {
			d.resolve(out)
			return
		}
		d.resolve(ValueOutcome(stackText(v)))
	})
}

func stackText(v any) Form {
	if sc, ok := v.(StackCarrier); ok {
		return Text(sc.StackTrace())
	}
	switch t := v.(type) {
	case Form:
		return t
	case error:
		return Text(t.Error())
	}
	return Text(fmt.Sprint(v))
}

type docEntry struct {
	forms []string
	doc   string
}

var specialDocs = map[Symbol]docEntry{
	"def":   {forms: []string{"(def symbol doc-string? init?)"}, doc: "Creates and interns a global var with the name of symbol in the current namespace."},
	"if":    {forms: []string{"(if test then else?)"}, doc: "Evaluates test. If logical true, evaluates and yields then, otherwise else."},
	"do":    {forms: []string{"(do exprs*)"}, doc: "Evaluates the expressions in order and returns the value of the last."},
	"let":   {forms: []string{"(let [bindings*] exprs*)"}, doc: "Evaluates the exprs in a lexical context with the given bindings."},
	"quote": {forms: []string{"(quote form)"}, doc: "Yields the unevaluated form."},
	"var":   {forms: []string{"(var symbol)"}, doc: "Yields the var named by symbol rather than its value."},
	"fn":    {forms: []string{"(fn name? [params*] exprs*)"}, doc: "Defines a function."},
	"loop":  {forms: []string{"(loop [bindings*] exprs*)"}, doc: "Like let, but acts as a recur target."},
	"recur": {forms: []string{"(recur exprs*)"}, doc: "Rebinds the recur target's bindings and jumps back to it."},
	"throw": {forms: []string{"(throw expr)"}, doc: "Evaluates expr and throws it."},
	"try":   {forms: []string{"(try expr* catch-clause* finally-clause?)"}, doc: "Evaluates exprs and catches thrown values."},
	"ns":    {forms: []string{"(ns name refs*)"}, doc: "Declares a namespace and makes it current."},
	"set!":  {forms: []string{"(set! var-symbol expr)"}, doc: "Assigns expr to the var named by var-symbol."},
}

var directiveDocs = map[Symbol]docEntry{
	"in-ns":     {forms: []string{"(in-ns ns-symbol)"}, doc: "Switches the session to the namespace named by ns-symbol, creating it if needed."},
	"require":   {forms: []string{"(require '[ns-symbol :as alias] & options)"}, doc: "Loads the named namespaces. Options: :reload, :reload-all, :verbose."},
	"import":    {forms: []string{"(import '(package Class...))"}, doc: "Makes the named classes available in the current namespace."},
	"doc":       {forms: []string{"(doc symbol)"}, doc: "Prints documentation for the var or special form named by symbol."},
	"pst":       {forms: []string{"(pst expr?)"}, doc: "Prints the stack trace of the given error, or of the most recent one."},
	"source":    {forms: []string{"(source symbol)"}, doc: "Prints the source of the var named by symbol."},
	"load-file": {forms: []string{"(load-file path)"}, doc: "Loads and evaluates the file at path."},
}
