package repl

import (
	"log/slog"
	"os"
)

// Reader parses one syntactic unit of input text.
type Reader interface {
	Parse(text string) (Form, error)
}

// Session is one interactive evaluation session: the current namespace,
// the value history, and a handle to the compiler backend. A session is
// a single logical actor; a new Evaluate call may only be issued after
// the previous call's continuation has fired.
type Session struct {
	backend Backend
	reader  Reader
	logger  *slog.Logger

	ns       Symbol
	coreNS   Symbol
	hist     [3]Form
	lastErr  error
	sink     warnSink
	defaults []EvalOption
}

type SessionOption func(*Session)

// WithStartNamespace sets the namespace the session begins in.
func WithStartNamespace(ns Symbol) SessionOption {
	return func(s *Session) { s.ns = ns }
}

// WithCoreNamespace sets the namespace whose macro table doc lookup
// falls back to.
func WithCoreNamespace(ns Symbol) SessionOption {
	return func(s *Session) { s.coreNS = ns }
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithDefaults sets session-wide evaluation options, layered between
// the package defaults and any per-call options.
func WithDefaults(opts ...EvalOption) SessionOption {
	return func(s *Session) { s.defaults = opts }
}

func New(backend Backend, rd Reader, opts ...SessionOption) *Session {
	s := &Session{
		backend: backend,
		reader:  rd,
		logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
		ns:      "user",
		coreNS:  "lang.core",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Namespace is the namespace new definitions and lookups resolve
// against.
func (s *Session) Namespace() Symbol {
	return s.ns
}

// History returns the last three successfully produced values, most
// recent first.
func (s *Session) History() (v1, v2, v3 Form) {
	return s.hist[0], s.hist[1], s.hist[2]
}

// LastError is the most recent evaluation error, or nil.
func (s *Session) LastError() error {
	return s.lastErr
}

func (s *Session) pushHistory(v Form) {
	s.hist[2] = s.hist[1]
	s.hist[1] = s.hist[0]
	s.hist[0] = v
}

func (s *Session) recordError(err error) {
	s.lastErr = err
}

// callOptions builds the immutable option snapshot for one call: later
// layers win.
func (s *Session) callOptions(opts []EvalOption) EvalOptions {
	eo := defaultOptions()
	for _, opt := range s.defaults {
		opt(&eo)
	}
	for _, opt := range opts {
		opt(&eo)
	}
	if eo.Namespace == "" {
		eo.Namespace = s.ns
	}
	return eo
}

func (s *Session) knownNamespace(ns Symbol) bool {
	for _, known := range s.backend.Namespaces() {
		if known == ns {
			return true
		}
	}
	return false
}
