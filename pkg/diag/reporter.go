package diag

import (
	"fmt"
	"io"
	"strings"

	"treeswift/pkg/source"
)

// DefaultMaxErrors is the error cap used when none is configured.
const DefaultMaxErrors = 15

// Reporter collects the diagnostics of a single file. It is not safe for
// concurrent use; each parse owns one.
type Reporter struct {
	maxErrors int
	diags     []Diagnostic
	errors    int
	fatal     bool
}

// NewReporter returns a reporter that turns the (maxErrors+1)th error into
// a fatal. maxErrors <= 0 selects DefaultMaxErrors.
func NewReporter(maxErrors int) *Reporter {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	return &Reporter{maxErrors: maxErrors}
}

// Fatal records a fatal diagnostic and returns it as an error.
func (r *Reporter) Fatal(pos source.Pos, format string, args ...any) error {
	return r.fatalf(nil, pos, fmt.Sprintf(format, args...))
}

func (r *Reporter) fatalf(cause error, pos source.Pos, msg string) error {
	d := Diagnostic{Severity: Fatal, Pos: pos, Message: msg}
	r.diags = append(r.diags, d)
	r.fatal = true
	return &FatalError{Diagnostic: d, cause: cause}
}

// Error records a recoverable error. It returns nil unless the cap has been
// exceeded, in which case the returned error is a FatalError wrapping
// ErrTooManyErrors.
func (r *Reporter) Error(pos source.Pos, format string, args ...any) error {
	r.diags = append(r.diags, Diagnostic{Severity: Error, Pos: pos, Message: fmt.Sprintf(format, args...)})
	r.errors++
	if r.errors > r.maxErrors {
		return r.fatalf(ErrTooManyErrors, pos, fmt.Sprintf("too many errors emitted (limit %d), stopping now", r.maxErrors))
	}
	return nil
}

// Warning records an informational message.
func (r *Reporter) Warning(pos source.Pos, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{Severity: Warning, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether an error or fatal has been recorded.
func (r *Reporter) HasErrors() bool { return r.errors > 0 || r.fatal }

// HasFatal reports whether the file was aborted.
func (r *Reporter) HasFatal() bool { return r.fatal }

// ErrorCount is the number of recoverable errors recorded so far.
func (r *Reporter) ErrorCount() int { return r.errors }

// Diagnostics returns the recorded diagnostics in order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diags }

// Bundle closes out the file: the diagnostics are packaged with the file
// name and the source lines needed to print excerpts.
func (r *Reporter) Bundle(file string, lines []string) *Bundle {
	return &Bundle{File: file, Diagnostics: append([]Diagnostic(nil), r.diags...), lines: lines, fatal: r.fatal}
}

// Bundle is the finished diagnostic list of one file.
type Bundle struct {
	File        string
	Diagnostics []Diagnostic
	lines       []string
	fatal       bool
}

// HasErrors reports whether the bundle contains an error or fatal.
func (b *Bundle) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity != Warning {
			return true
		}
	}
	return false
}

// Aborted reports whether parsing of the file stopped on a fatal.
func (b *Bundle) Aborted() bool { return b.fatal }

// Write prints every diagnostic as
//
//	file:line:col severity: message
//	<source line>
//	    ^
func (b *Bundle) Write(w io.Writer) error {
	for _, d := range b.Diagnostics {
		if _, err := fmt.Fprintf(w, "%s:%d:%d %s: %s\n", b.File, d.Pos.Line, d.Pos.Col, d.Severity, d.Message); err != nil {
			return err
		}
		line := d.Pos.Line - 1
		if line < 0 || line >= len(b.lines) {
			continue
		}
		text := b.lines[line]
		if _, err := fmt.Fprintf(w, "%s\n%s^\n", text, caretPad(text, d.Pos.Col)); err != nil {
			return err
		}
	}
	return nil
}

// caretPad keeps tabs so the caret lines up under the column.
func caretPad(text string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	for ; i < col; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}
