package model

import "fmt"

// IoError indicates a corpus or vocabulary file could not be opened or read.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError indicates a malformed header or record line in a corpus file.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Msg)
}

// ConfigError indicates a missing required CLI argument or a contradictory
// combination of options. Surfaced by cmd with a non-zero exit.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// InvariantViolation indicates a sufficient-statistic invariant was found
// broken (negative count, reference to a dead slot, non-finite log
// probability). These are programming errors, not recoverable conditions:
// callers should let a panic of this type propagate, not retry.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Msg }

// panicInvariant raises an InvariantViolation. It is called only from the
// engines' own bookkeeping, never in response to caller input.
func panicInvariant(format string, args ...interface{}) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
