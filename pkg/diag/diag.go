package diag

import (
	"errors"
	"fmt"

	"treeswift/pkg/source"
)

// Severity ranks a diagnostic.
type Severity int

const (
	Fatal   Severity = iota // aborts the current file
	Error                   // recoverable, fails the build
	Warning                 // informational
)

var severityNames = [...]string{
	Fatal:   "fatal",
	Error:   "error",
	Warning: "warning",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Diagnostic is one message tied to a source position.
type Diagnostic struct {
	Severity Severity
	Pos      source.Pos
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Pos, d.Severity, d.Message)
}

// ErrTooManyErrors is wrapped by the FatalError produced when a file
// exceeds its error cap.
var ErrTooManyErrors = errors.New("too many errors")

// FatalError is returned by the reporter whenever parsing of the current
// file has to stop. The diagnostic has already been recorded.
type FatalError struct {
	Diagnostic
	cause error
}

func (e *FatalError) Error() string { return e.Diagnostic.String() }
func (e *FatalError) Unwrap() error { return e.cause }

// IsFatal reports whether err carries a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
