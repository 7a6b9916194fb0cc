package repl

// Continuation receives the final result of one Evaluate call. It is
// invoked exactly once per call: on success the payload is the rendered
// value (or the raw value when printing is suppressed), on failure it
// is the error.
type Continuation func(ok bool, payload any)

// delivery resolves one backend outcome into a continuation invocation.
// The side-effect hooks run only once the outcome is classified, so
// session mutation never happens speculatively.
type delivery struct {
	sess      *Session
	opts      EvalOptions
	cont      Continuation
	onSuccess func()
	onFailure func()
}

func (d delivery) resolve(outcome Outcome) {
	d.sess.backend.SetDiagnosticHandler(nil)

	// A pending warning downgrades the call no matter what the outcome
	// was, even an error. Documented precedence, not an oversight.
	if msg, ok := d.sess.sink.take(); ok {
		d.fail(&WarningError{Message: msg})
		return
	}

	if v, ok := outcome.Value(); ok {
		if d.onSuccess != nil {
			d.onSuccess()
		}
		d.cont(true, render(v, d.opts))
		return
	}

	if err, ok := outcome.Err(); ok {
		d.sess.recordError(err)
		d.fail(err)
		return
	}

	panic("repl: outcome carries neither value nor error")
}

func (d delivery) fail(err error) {
	if d.onFailure != nil {
		d.onFailure()
	}
	d.cont(false, err)
}

func render(v Form, opts EvalOptions) any {
	if opts.SuppressPrint {
		return v
	}
	if v == nil {
		return "nil"
	}
	return v.String()
}
