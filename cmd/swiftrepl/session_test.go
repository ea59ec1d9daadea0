package main

import (
	"strings"
	"testing"

	"treeswift/pkg/ast"
	"treeswift/pkg/frontend"
)

func TestIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Complete", "let a = 1", false},
		{"Open Body", "func f() {", true},
		{"Open Call", "print(1,", true},
		{"Broken", "let = 1", false},
	}
	s := newSession(frontend.DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.incomplete(tt.input); got != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestEvalKeepsEarlierEntries(t *testing.T) {
	s := newSession(frontend.DefaultConfig())

	out, err := s.eval("let a = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Procedures) != 1 {
		t.Fatalf("expected 1 procedure, got %d", len(out.Procedures))
	}

	out, err = s.eval("let b = a + undefinedName")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Bundle.HasErrors() {
		t.Fatalf("expected the entry to be rejected")
	}

	out, err = s.eval("let b = a + 1\nprint(b)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bundle.HasErrors() {
		t.Fatalf("expected the entry to be accepted, got %v", out.Bundle.Diagnostics)
	}
	if len(out.Procedures) != 2 {
		t.Errorf("expected the 2 new procedures, got %d", len(out.Procedures))
	}
	if _, ok := out.Procedures[1].(*ast.ExprOp); !ok {
		t.Errorf("expected print(b) to be an expression, got %T", out.Procedures[1])
	}
	if !strings.Contains(out.Scope, "constant     b@") {
		t.Errorf("expected b in the scope tree, got:\n%s", out.Scope)
	}

	s.reset()
	out, err = s.eval("print(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Bundle.HasErrors() {
		t.Errorf("expected a to be forgotten after reset")
	}
}
