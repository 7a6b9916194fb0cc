package repl

import (
	"context"
	"fmt"
)

// Evaluate processes one input form: a session-control directive is
// dispatched directly, anything else is submitted as raw text to the
// backend's evaluate-and-print entry point. The continuation fires
// exactly once; no result is returned synchronously. The caller must
// not issue another Evaluate until the continuation has fired.
func (s *Session) Evaluate(ctx context.Context, input string, cont Continuation, opts ...EvalOption) {
	eo := s.callOptions(opts)
	d := delivery{sess: s, opts: eo, cont: cont}

	form, err := s.parseInput(input)
	if err != nil {
		d.resolve(ErrorOutcome(&ParseError{Err: err}))
		return
	}

	if eo.Verbose {
		s.logger.Info("evaluate", "ns", s.ns, "input", input)
	}

	s.captureWarnings(eo)

	if name, args, ok := asDirective(form); ok {
		if eo.Verbose {
			s.logger.Info("directive", "kind", name)
		}
		s.runDirective(ctx, name, args, eo, cont)
		return
	}

	s.backend.EvaluateText(ctx, input, "repl", eo, func(rep EvalReport) {
		rd := delivery{sess: s, opts: eo, cont: cont, onSuccess: func() {
			if !isHistoryRef(form) && !isNsDecl(form) {
				s.pushHistory(rep.Value)
			}
			if rep.Namespace != "" {
				s.ns = rep.Namespace
			}
		}}

		if rep.Err != nil {
			rd.resolve(ErrorOutcome(rep.Err))
		} else {
			rd.resolve(ValueOutcome(rep.Value))
		}
	})
}

// parseInput reads one top-level form. A reader failure of any kind
// surfaces as an error; it never escapes.
func (s *Session) parseInput(input string) (form Form, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reader panic: %v", r)
		}
	}()
	return s.reader.Parse(input)
}
