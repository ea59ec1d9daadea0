package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestViewListings(t *testing.T) {
	v := &View{Path: "a.swift"}
	if err := v.LoadSource("let a = 1\nprint(a)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeAST, "File a.swift"},
		{ModeTokens, "IDENTIFIER(a)"},
		{ModeScopes, "file a.swift"},
		{ModeDiagnostics, "no diagnostics"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			v.Mode = tt.mode
			if !strings.Contains(strings.Join(v.Lines(), "\n"), tt.expected) {
				t.Errorf("expected %q in %v", tt.expected, v.Lines())
			}
		})
	}
}

func TestViewPaging(t *testing.T) {
	v := &View{Path: "a.swift"}
	for i := 0; i < 7; i++ {
		v.listings[ModeAST] = append(v.listings[ModeAST], string(rune('a'+i)))
	}

	expected := []Cell{{0, 0, "a"}, {0, 1, "b"}, {1, 0, "c"}, {1, 1, "d"}}
	if got := v.Page(2, 2); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	v.Turn(1, 2, 2)
	expected = []Cell{{0, 0, "e"}, {0, 1, "f"}, {1, 0, "g"}}
	if got := v.Page(2, 2); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	v.Turn(5, 2, 2)
	if v.page != 1 {
		t.Errorf("expected to stop at the last page, got %d", v.page)
	}
	v.Turn(-9, 2, 2)
	if v.page != 0 {
		t.Errorf("expected to stop at the first page, got %d", v.page)
	}

	v.NextMode()
	if v.Mode != ModeTokens {
		t.Errorf("expected tokens after ast, got %s", v.Mode)
	}
}
