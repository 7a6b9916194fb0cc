package repl

import "fmt"

// warnSink holds at most one pending warning between a diagnostic event
// and the delivery of the call's result. Later warnings overwrite
// earlier ones; last wins.
type warnSink struct {
	msg string
	set bool
}

func (w *warnSink) put(msg string) {
	w.msg, w.set = msg, true
}

func (w *warnSink) take() (string, bool) {
	msg, ok := w.msg, w.set
	w.msg, w.set = "", false
	return msg, ok
}

// captureWarnings installs a diagnostic handler scoped to one backend
// call. Delivery releases it on every exit path; see delivery.resolve.
func (s *Session) captureWarnings(opts EvalOptions) {
	s.backend.SetDiagnosticHandler(func(category string, env DiagEnv, extra map[string]any) {
		if !opts.Warnings[category] {
			return
		}

		msg := opts.FormatWarning(category, extra)
		if msg == "" {
			return
		}

		qualified := fmt.Sprintf("WARNING: %s", msg)
		if env.Line > 0 {
			qualified = fmt.Sprintf("%s at line %d:%d", qualified, env.Line, env.Column)
		}
		if env.Namespace != "" {
			qualified = fmt.Sprintf("%s in %s", qualified, env.Namespace)
		}

		if opts.Verbose {
			s.logger.Info("warning captured", "category", category, "message", qualified)
		}
		s.sink.put(qualified)
	})
}
