package diag

import (
	"errors"
	"strings"
	"testing"

	"treeswift/pkg/source"
)

func TestReporterErrorCap(t *testing.T) {
	r := NewReporter(3)
	pos := source.Pos{Line: 1, Col: 1}
	for i := 0; i < 3; i++ {
		if err := r.Error(pos, "error %d", i); err != nil {
			t.Fatalf("error %d: expected nil, got %v", i, err)
		}
	}
	err := r.Error(pos, "one too many")
	if !errors.Is(err, ErrTooManyErrors) {
		t.Fatalf("expected ErrTooManyErrors, got %v", err)
	}
	if !IsFatal(err) {
		t.Errorf("expected the cap to be fatal")
	}
	if !r.HasFatal() || !r.HasErrors() {
		t.Errorf("expected fatal and errors to be recorded")
	}
}

func TestReporterDefaultCap(t *testing.T) {
	r := NewReporter(0)
	for i := 0; i < DefaultMaxErrors; i++ {
		if err := r.Error(source.Pos{Line: 1, Col: 1}, "e"); err != nil {
			t.Fatalf("unexpected fatal after %d errors", i+1)
		}
	}
	if err := r.Error(source.Pos{Line: 1, Col: 1}, "e"); err == nil {
		t.Errorf("expected fatal after %d errors", DefaultMaxErrors+1)
	}
}

func TestWarningsDoNotFail(t *testing.T) {
	r := NewReporter(0)
	r.Warning(source.Pos{Line: 1, Col: 1}, "unused")
	if r.HasErrors() {
		t.Errorf("expected warnings to leave HasErrors false")
	}
	b := r.Bundle("a.swift", nil)
	if b.HasErrors() {
		t.Errorf("expected bundle without errors")
	}
}

func TestLedgerReport(t *testing.T) {
	r := NewReporter(0)
	_ = r.Error(source.Pos{Line: 2, Col: 9}, "expected expression")
	r.Warning(source.Pos{Line: 1, Col: 5}, "variable 'x' was never used")

	var l Ledger
	l.Add(NewReporter(0).Bundle("clean.swift", nil))
	l.Add(r.Bundle("main.swift", []string{"let x = 1", "var y = \tx +"}))

	var out strings.Builder
	if err := l.Report(&out); err != nil {
		t.Fatal(err)
	}
	expected := "main.swift:2:9 error: expected expression\n" +
		"var y = \tx +\n" +
		"        ^\n" +
		"main.swift:1:5 warning: variable 'x' was never used\n" +
		"let x = 1\n" +
		"    ^\n"
	if out.String() != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, out.String())
	}
	if !l.HasErrors() {
		t.Errorf("expected ledger to report errors")
	}
	if l.Count(Warning) != 1 {
		t.Errorf("expected 1 warning, got %d", l.Count(Warning))
	}
}

func TestFatalMessage(t *testing.T) {
	r := NewReporter(0)
	err := r.Fatal(source.Pos{Line: 3, Col: 1}, "unexpected end of file")
	if err.Error() != "3:1 fatal: unexpected end of file" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
