package repl

import "fmt"

// ParseError wraps a reader failure. It is detected before anything is
// submitted to the backend.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ArgumentError reports a directive argument that failed a shape check.
type ArgumentError struct {
	Directive Symbol
	Reason    string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Directive, e.Reason)
}

// UnsupportedError reports a recognized but intentionally unimplemented
// directive.
type UnsupportedError struct {
	Directive Symbol
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("keyword %s is not supported", e.Directive)
}

// WarningError is a compiler warning promoted to a failure. Any
// diagnostic raised during an evaluation downgrades the result.
type WarningError struct {
	Message string
}

func (e *WarningError) Error() string {
	return e.Message
}
