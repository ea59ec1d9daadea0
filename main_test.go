package main

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"treeswift/pkg/frontend"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Empty", "", nil},
		{"Single", "Swift", []string{"Swift"}},
		{"Spaces And Blanks", " Swift, ,Foundation ,", []string{"Swift", "Foundation"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOutput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   int
		stdout string
		stderr string
	}{
		{"Clean", "let a = 1", 0, "PatternInitDecl let", ""},
		{"Errors Suppress Dump", "let a = b", 1, "", "use of unresolved value 'b'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := frontend.ParseSources(context.Background(), frontend.DefaultConfig(), []frontend.Source{{Name: "a.swift", Text: tt.input}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var stdout, stderr bytes.Buffer
			if code := output(res, true, &stdout, &stderr); code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if tt.stdout == "" && stdout.Len() > 0 {
				t.Errorf("expected no output, got %q", stdout.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("expected %q in output, got %q", tt.stdout, stdout.String())
			}
			if tt.stderr == "" && stderr.Len() > 0 {
				t.Errorf("expected no diagnostics, got %q", stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("expected %q in diagnostics, got %q", tt.stderr, stderr.String())
			}
		})
	}
}
