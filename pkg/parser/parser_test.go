package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"treeswift/pkg/ast"
	"treeswift/pkg/diag"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

type parsed struct {
	file *ast.File
	err  error
	r    *diag.Reporter
	res  []scope.Resolution
}

// parse runs a file through the parser and, when it survives, attaches it
// to a fresh module and resolves its refs.
func parse(t *testing.T, src string) parsed {
	t.Helper()
	module := scope.NewModule("main", scope.Prelude())
	m := scope.NewFileManager(module, "main.swift")
	r := diag.NewReporter(diag.DefaultMaxErrors)
	f, err := ParseFile("main.swift", lexer.NewStream(source.FromString(src)), m, r)
	out := parsed{file: f, err: err, r: r}
	if err != nil {
		return out
	}
	if errs := module.Attach(f.Scope); len(errs) > 0 {
		t.Fatalf("unexpected attach errors: %v", errs)
	}
	out.res = scope.Resolve(module)
	return out
}

func messages(r *diag.Reporter) []string {
	var out []string
	for _, d := range r.Diagnostics() {
		out = append(out, d.String())
	}
	return out
}

func unresolved(res []scope.Resolution) []string {
	var out []string
	for _, x := range res {
		if !x.Resolved() {
			out = append(out, x.Err().Error())
		}
	}
	return out
}

func TestParseClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Constants", "let x: Int = 1\nvar y = x + 1"},
		{"Nested Generic Arguments", "let d: Dictionary<String, Array<Int>> = [:]"},
		{"Implicit Parameters", "let f: (Int, Int) -> Int = { $0 + $1 }"},
		{"Closure Signature", "let g = { (a: Int) -> Int in a * 2 }"},
		{"Untyped Closure Parameters", "let add: (Int, Int) -> Int = { (a, b) in a + b }"},
		{"Throwing Closure", "let g = { (a: Int) throws -> Int in a * 2 }"},
		{"Capture List", "class C {\n  func m() {}\n  func f() {\n    let g = { [weak self] in }\n    let h = { [unowned(safe) self] (n: Int) in self.m() }\n  }\n}"},
		{"Trailing Closure", "let xs = [1, 2]\nlet ys = xs.map { x in x + 1 }"},
		{"Recursion", "func fact(n: Int) -> Int {\n  if n <= 1 { return 1 }\n  return n * fact(n - 1)\n}"},
		{"Switch", `
enum Shape {
    case Circle(Double), Square(Double)
}
func area(s: Shape) -> Double {
    switch s {
    case .Circle(let r):
        return r * r
    case let .Square(side):
        return side * side
    }
}`},
		{"Optional Binding", "let o: Int? = nil\nif let v = o, w = o where v < w {\n  print(v + w)\n} else {\n  print(o)\n}"},
		{"Guard", "func f(o: Int?) -> Int {\n  guard let v = o else { return 0 }\n  return v\n}"},
		{"Computed Property", "struct P {\n  var x = 0\n  var y: Int {\n    get { return x }\n    set(v) { x = v }\n  }\n}"},
		{"Observer", "var level = 0 {\n  didSet { print(oldValue) }\n  willSet { print(newValue) }\n}"},
		{"Class Members", "class Box {\n  var items: [Int] = []\n  init() {}\n  deinit {}\n  subscript(i: Int) -> Int { return items[i] }\n}"},
		{"Custom Operator", "infix operator ** { precedence 160 associativity right }\nfunc **(a: Int, b: Int) -> Int { return a }\nlet p = 2 ** 3"},
		{"Do Catch", "func f() throws {}\ndo {\n  try f()\n} catch {\n  print(error)\n}"},
		{"For In Where", "for i in [1, 2, 3] where i % 2 == 0 {\n  print(i)\n}"},
		{"C Style For", "for var i = 0; i < 3; ++i {\n  print(i)\n}"},
		{"Repeat", "var i = 0\nrepeat {\n  i += 1\n} while i < 10"},
		{"Defer", "func f() {\n  defer { print(1) }\n}"},
		{"Labels", "outer: while true {\n  break outer\n}"},
		{"Extension", "struct S {}\nextension S {\n  func f() -> S { return self }\n}"},
		{"Generic Function", "func id<T>(x: T) -> T { return x }\nlet n = id(1)"},
		{"Tuple Pattern", "let (a, b) = (1, 2)\nprint(a + b)"},
		{"Protocol", "protocol Named {\n  typealias Name\n  var name: String { get }\n  func rename(to: String)\n}"},
		{"Raw Enum", "enum Level: Int {\n  case Low = -1, Mid = 0, High\n}\nlet l = Level.High"},
		{"Ternary", "let a = 1\nlet b = a > 0 ? [a: 1] : [:]"},
		{"Casts", "let a: Any = 1\nlet b = a as? Int ?? 0\nlet c = a is Int"},
		{"Semicolons", "let a = 1; let b = 2; print(a + b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.input)
			if p.err != nil {
				t.Fatalf("unexpected fatal: %v", p.err)
			}
			if msgs := messages(p.r); len(msgs) > 0 {
				t.Errorf("expected no diagnostics, got %v", msgs)
			}
			if u := unresolved(p.res); len(u) > 0 {
				t.Errorf("expected every ref to resolve, got %v", u)
			}
		})
	}
}

func TestSamples(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("expected sample programs in testdata")
	}
	for _, name := range files {
		t.Run(filepath.Base(name), func(t *testing.T) {
			src, err := os.ReadFile(name)
			if err != nil {
				t.Fatal(err)
			}
			p := parse(t, string(src))
			if p.err != nil {
				t.Fatalf("unexpected fatal: %v", p.err)
			}
			if msgs := messages(p.r); len(msgs) > 0 {
				t.Errorf("expected no diagnostics, got %v", msgs)
			}
			if u := unresolved(p.res); len(u) > 0 {
				t.Errorf("expected every ref to resolve, got %v", u)
			}
		})
	}
}

func TestConstantsShareInst(t *testing.T) {
	p := parse(t, "let x: Int = 1\nvar y = x + 1")
	if p.err != nil {
		t.Fatalf("unexpected fatal: %v", p.err)
	}
	var decls []*ast.PatternInitDecl
	for _, proc := range p.file.Procedures {
		if d, ok := proc.(*ast.PatternInitDecl); ok {
			decls = append(decls, d)
		}
	}
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if !decls[0].Constant || decls[1].Constant {
		t.Errorf("expected let then var, got %v and %v", decls[0].Constant, decls[1].Constant)
	}
	x, ok := decls[0].Inits[0].Pattern.(*ast.IdentifierPattern)
	if !ok || x.Inst == nil {
		t.Fatalf("expected x to be declared by an identifier pattern, got %#v", decls[0].Inits[0].Pattern)
	}
	var use *ast.IdentExpr
	ast.Inspect(decls[1], func(n ast.Node) bool {
		if id, ok := n.(*ast.IdentExpr); ok && id.Name == "x" {
			use = id
		}
		return true
	})
	if use == nil || use.Ref == nil {
		t.Fatalf("expected a reference to x in the second initializer")
	}
	if use.Ref.Inst != x.Inst {
		t.Errorf("expected x to resolve to %v, got %v", x.Inst, use.Ref.Inst)
	}
}

func TestClosureParamsResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Typed", "let g = { (a: Int) -> Int in a * 2 }", []string{"a"}},
		{"Untyped", "let add: (Int, Int) -> Int = { (a, b) in a + b }", []string{"a", "b"}},
		{"Bare Names", "let add: (Int, Int) -> Int = { a, b in a + b }", []string{"a", "b"}},
		{"Throwing", "let g = { (a: Int) throws -> Int in a * 2 }", []string{"a"}},
		{"After Captures", "let k = 1\nlet g = { [k] (a: Int) in a + k }", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.input)
			if p.err != nil {
				t.Fatalf("unexpected fatal: %v", p.err)
			}
			if msgs := messages(p.r); len(msgs) > 0 {
				t.Fatalf("expected no diagnostics, got %v", msgs)
			}
			var closure *ast.ClosureExpr
			ast.Inspect(p.file, func(n ast.Node) bool {
				if c, ok := n.(*ast.ClosureExpr); ok && closure == nil {
					closure = c
				}
				return true
			})
			if closure == nil {
				t.Fatal("expected a closure")
			}
			params := map[string]*scope.Inst{}
			var names []string
			for _, param := range closure.Params {
				params[param.Name] = param.Inst
				names = append(names, param.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.expected, ",") {
				t.Fatalf("expected params %v, got %v", tt.expected, names)
			}
			uses := 0
			for _, proc := range closure.Body {
				ast.Inspect(proc, func(n ast.Node) bool {
					id, ok := n.(*ast.IdentExpr)
					if !ok || params[id.Name] == nil {
						return true
					}
					uses++
					if id.Ref == nil || id.Ref.Inst != params[id.Name] {
						t.Errorf("expected %s to resolve to its parameter", id.Name)
					}
					return true
				})
			}
			if uses != len(tt.expected) {
				t.Errorf("expected %d parameter uses, got %d", len(tt.expected), uses)
			}
		})
	}
}

func TestOwnInitializerIsNotVisible(t *testing.T) {
	p := parse(t, "func f() {\n  let x = x\n}")
	if p.err != nil {
		t.Fatalf("unexpected fatal: %v", p.err)
	}
	u := unresolved(p.res)
	if len(u) != 1 || !strings.Contains(u[0], "'x'") {
		t.Errorf("expected x to stay unresolved, got %v", u)
	}
}

func TestShadowingInFlow(t *testing.T) {
	p := parse(t, "let a = 0\nif true {\n  print(a)\n  let a = 1\n  print(a)\n}")
	if p.err != nil {
		t.Fatalf("unexpected fatal: %v", p.err)
	}
	var got []int
	for _, x := range p.res {
		if x.Ref.Name == "a" {
			got = append(got, x.Inst.Pos.Line)
		}
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("expected a to resolve to lines [1 4], got %v", got)
	}
}

func TestRecoverableErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Missing Separator", "let x = 1 let y = 2", "consecutive statements on a line must be separated by ';'"},
		{"Inout Default", "func f(inout a: Int = 1) {}", "'inout' parameter cannot have a default argument"},
		{"Variadic Var", "func f(var a: Int...) {}", "variadic parameter cannot declare as 'let', 'var' or 'inout'"},
		{"Mixed Enum", "enum E {\n  case A(Int), B = 1\n}", "enum with associated values cannot have raw values"},
		{"Prefix Precedence", "prefix operator +++ { precedence 10 }", "only infix operators may declare a precedence"},
		{"Empty Switch", "switch 1 {\n}", "'switch' statement body must have at least one 'case' or 'default' block"},
		{"Empty Case", "switch 1 {\ncase 1:\ndefault:\n  break\n}", "'case' label in a 'switch' must have at least one statement"},
		{"Duplicate Access", "private private let x = 1", "duplicate access level modifier"},
		{"Modifier On Import", "static import Foundation", "unexpected modifier before 'import'"},
		{"Missing Pattern", "let = 1", "expected pattern"},
		{"Missing Parameters", "func f {}", "expected parameter clause"},
		{"Case Outside Enum", "struct S {\n  case A\n}", "enum 'case' is not allowed outside of an enum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.input)
			if p.err != nil {
				t.Fatalf("expected the file to survive, got fatal %v", p.err)
			}
			msgs := messages(p.r)
			found := false
			for _, m := range msgs {
				found = found || strings.Contains(m, tt.expected)
			}
			if !found {
				t.Errorf("expected %q among %v", tt.expected, msgs)
			}
			if p.file == nil {
				t.Errorf("expected a syntax tree despite the errors")
			}
		})
	}
}

func TestFatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Redeclaration", "struct A {}\nstruct A {}", "invalid redeclaration of 'A'"},
		{"Unclosed Body", "func f() {\n  let a = 1\n", "expected '}', found end of file"},
		{"Unclosed Call", "print(1, ", "found end of file"},
		{"Unterminated String", "let s = \"abc\nprint(s)", lexer.MsgInvalidToken},
		{"Implicit Parameter Outside Closure", "print($0)", "reference to '$0' is not allowed"},
		{"Wrong Scope", "protocol P {\n  struct S {}\n}", "struct declaration 'S' is not allowed in protocol scope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.input)
			if !diag.IsFatal(p.err) {
				t.Fatalf("expected a fatal error, got %v", p.err)
			}
			msgs := strings.Join(messages(p.r), "\n")
			if !strings.Contains(msgs, tt.expected) {
				t.Errorf("expected %q in %q", tt.expected, msgs)
			}
		})
	}
}

func TestErrorCap(t *testing.T) {
	src := strings.Repeat(")\n", diag.DefaultMaxErrors+5)
	p := parse(t, src)
	if !errors.Is(p.err, diag.ErrTooManyErrors) {
		t.Fatalf("expected ErrTooManyErrors, got %v", p.err)
	}
	if got := p.r.ErrorCount(); got != diag.DefaultMaxErrors+1 {
		t.Errorf("expected %d errors, got %d", diag.DefaultMaxErrors+1, got)
	}
}

func TestTree(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "Right Nested Binary",
			input: "1 + 2 * 3",
			expected: `File main.swift
  ExprOp
    BinaryExpr +
      IntegerLiteral 1
      BinaryExpr *
        IntegerLiteral 2
        IntegerLiteral 3
`,
		},
		{
			name:  "Assignment",
			input: "var a = 0\na = a + 1",
			expected: `File main.swift
  PatternInitDecl var
    IdentifierPattern variable a
    IntegerLiteral 0
  AssignOp
    IdentExpr a
    BinaryExpr +
      IdentExpr a
      IntegerLiteral 1
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.input)
			if p.err != nil {
				t.Fatalf("unexpected fatal: %v", p.err)
			}
			if got := stripRefs(ast.DumpString(p.file)); got != tt.expected {
				t.Errorf("expected\n%s\ngot\n%s", tt.expected, got)
			}
		})
	}
}

// stripRefs drops the resolution suffixes Dump appends so expectations
// only describe the shape of the tree.
func stripRefs(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if j := strings.Index(l, " -> "); j >= 0 {
			lines[i] = l[:j]
		}
	}
	return strings.Join(lines, "\n")
}

func TestFunctionLiteral(t *testing.T) {
	p := parse(t, "func outer() {\n  let n = __FUNCTION__\n}\nlet top = __FUNCTION__")
	if p.err != nil {
		t.Fatalf("unexpected fatal: %v", p.err)
	}
	var got []string
	ast.Inspect(p.file, func(n ast.Node) bool {
		if s, ok := n.(*ast.StringLiteral); ok {
			got = append(got, s.Value)
		}
		return true
	})
	expected := []string{"outer", TopLevelName}
	if len(got) != len(expected) || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestSwitchAlternativesShareBindings(t *testing.T) {
	src := `
enum Pair {
    case A(Int), B(Int)
}
func f(p: Pair) -> Int {
    switch p {
    case .A(let x), .B(let x):
        return x
    }
}`
	p := parse(t, src)
	if p.err != nil {
		t.Fatalf("unexpected fatal: %v", p.err)
	}
	if msgs := messages(p.r); len(msgs) > 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
	var insts []*scope.Inst
	ast.Inspect(p.file, func(n ast.Node) bool {
		if ip, ok := n.(*ast.IdentifierPattern); ok && ip.Name == "x" {
			insts = append(insts, ip.Inst)
		}
		return true
	})
	if len(insts) != 2 || insts[0] != insts[1] {
		t.Errorf("expected both alternatives to bind one inst, got %v", insts)
	}
}
