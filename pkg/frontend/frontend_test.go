package frontend

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"treeswift/pkg/diag"
)

func messages(res *Result) map[string][]string {
	out := map[string][]string{}
	for _, b := range res.Ledger.Bundles() {
		out[b.File] = nil
		for _, d := range b.Diagnostics {
			out[b.File] = append(out[b.File], d.Message)
		}
	}
	return out
}

func TestParseSources(t *testing.T) {
	tests := []struct {
		name     string
		input    []Source
		expected map[string][]string
	}{
		{
			name: "Forward Use Across Files",
			input: []Source{
				{"a.swift", "let total = twice(21)"},
				{"b.swift", "func twice(n: Int) -> Int { return n * 2 }"},
			},
			expected: map[string][]string{"a.swift": nil, "b.swift": nil},
		},
		{
			name: "Private Declarations Stay In Their File",
			input: []Source{
				{"a.swift", "private let secret = 1"},
				{"b.swift", "let x = secret"},
			},
			expected: map[string][]string{"a.swift": nil, "b.swift": {"use of unresolved value 'secret'"}},
		},
		{
			name: "Duplicate Export",
			input: []Source{
				{"a.swift", "struct Point {}"},
				{"b.swift", "struct Point {}"},
			},
			expected: map[string][]string{"a.swift": nil, "b.swift": {"invalid redeclaration of 'Point' (previously declared at 1:8)"}},
		},
		{
			name: "Unknown Module",
			input: []Source{
				{"a.swift", "import Foundation\nimport UIKit"},
			},
			expected: map[string][]string{"a.swift": {"no such module 'UIKit'"}},
		},
		{
			name: "Fatal File Is Bundled",
			input: []Source{
				{"a.swift", "let a = b"},
				{"b.swift", "let s = \"open\nlet b = 1"},
			},
			expected: map[string][]string{"a.swift": {"use of unresolved value 'b'"}, "b.swift": {"invalid token"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseSources(context.Background(), DefaultConfig(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := messages(res); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLedgerKeepsRequestOrder(t *testing.T) {
	var srcs []Source
	var expected []string
	for _, name := range []string{"e", "d", "c", "b", "a"} {
		srcs = append(srcs, Source{Name: name + ".swift", Text: "let " + name + " = 1\n)"})
		expected = append(expected, name+".swift")
	}
	cfg := DefaultConfig()
	cfg.Jobs = 3
	res, err := ParseSources(context.Background(), cfg, srcs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, b := range res.Ledger.Bundles() {
		got = append(got, b.File)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
	if len(res.Module.Files) != len(srcs) {
		t.Errorf("expected %d files in the module, got %d", len(srcs), len(res.Module.Files))
	}
	var out bytes.Buffer
	if err := res.Ledger.Report(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "e.swift:2:1 error: ") {
		t.Errorf("expected the report to start with e.swift, got %q", out.String())
	}
}

func TestMaxErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxErrors = 2
	res, err := ParseSources(context.Background(), cfg, []Source{{"a.swift", ")\n)\n)\n)\n"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := res.Ledger.Bundles()[0]
	if !b.Aborted() {
		t.Errorf("expected the file to be aborted")
	}
	if got := res.Ledger.Count(diag.Error); got != 3 {
		t.Errorf("expected 3 errors, got %d", got)
	}
	if len(res.Module.Files) != 0 {
		t.Errorf("expected the aborted file to stay out of the module")
	}
}

func TestNoPrelude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoPrelude = true
	res, err := ParseSources(context.Background(), cfg, []Source{{"a.swift", "let x: Int = 1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"use of unresolved type 'Int'"}
	if got := messages(res)["a.swift"]; !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestParseFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "parser", "testdata", "*.swift"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := ParseFiles(context.Background(), DefaultConfig(), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Ledger.HasErrors() {
		var out bytes.Buffer
		_ = res.Ledger.Report(&out)
		t.Errorf("expected the samples to be clean, got\n%s", out.String())
	}
	for _, r := range res.Resolutions {
		if !r.Resolved() {
			t.Errorf("expected every ref to resolve, got %v", r.Err())
		}
	}
}

func TestParseFilesMissing(t *testing.T) {
	good := filepath.Join("..", "parser", "testdata", "stored_fibonacci.swift")
	missing := filepath.Join(t.TempDir(), "does-not-exist.swift")
	res, err := ParseFiles(context.Background(), DefaultConfig(), []string{good, missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bundles := res.Ledger.Bundles()
	if len(bundles) != 2 {
		t.Fatalf("expected 2 bundles, got %d", len(bundles))
	}
	if bundles[0].HasErrors() {
		t.Errorf("expected %s to parse cleanly, got %v", good, bundles[0].Diagnostics)
	}
	b := bundles[1]
	if b.File != missing || !b.Aborted() {
		t.Fatalf("expected a fatal bundle for %s, got %+v", missing, b)
	}
	if len(b.Diagnostics) != 1 || b.Diagnostics[0].Severity != diag.Fatal {
		t.Fatalf("expected one fatal, got %v", b.Diagnostics)
	}
	if msg := b.Diagnostics[0].Message; !strings.HasPrefix(msg, "cannot open file: ") || strings.Contains(msg, missing) {
		t.Errorf("expected an open failure without the path, got %q", msg)
	}
	if len(res.Module.Files) != 1 || res.Module.Files[0].Name != good {
		t.Errorf("expected only %s in the module, got %d files", good, len(res.Module.Files))
	}
}

func TestScopeErrorsAfterCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxErrors = 1
	res, err := ParseSources(context.Background(), cfg, []Source{{"a.swift", "let a = x\nlet b = y\nlet c = z"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := res.Ledger.Bundles()[0]
	if !b.Aborted() {
		t.Errorf("expected the cap to abort the file")
	}
	if got := res.Ledger.Count(diag.Error); got != 2 {
		t.Errorf("expected 2 errors, got %d", got)
	}
	if got := res.Ledger.Count(diag.Fatal); got != 1 {
		t.Errorf("expected 1 fatal, got %d", got)
	}
	if len(b.Diagnostics) != 3 {
		t.Errorf("expected the third failure to be dropped, got %v", b.Diagnostics)
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseSources(ctx, DefaultConfig(), []Source{{"a.swift", "let a = 1"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
