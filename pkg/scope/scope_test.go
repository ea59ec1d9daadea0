package scope

import (
	"errors"
	"strings"
	"testing"

	"treeswift/pkg/source"
)

func at(line, col int) source.Pos { return source.Pos{Line: line, Col: col} }

func newFile(t *testing.T) (*Scope, *Manager) {
	t.Helper()
	module := NewModule("main", Prelude())
	return module, NewFileManager(module, "main.swift")
}

func mustCreate(t *testing.T, m *Manager, kind InstKind, name string) *Inst {
	t.Helper()
	inst, err := m.Create(kind, name, at(1, 1))
	if err != nil {
		t.Fatalf("unexpected error declaring %s: %v", name, err)
	}
	return inst
}

func mustRef(t *testing.T, m *Manager, kind RefKind, name string) *Ref {
	t.Helper()
	r, err := m.NewRef(kind, name, at(1, 1))
	if err != nil {
		t.Fatalf("unexpected error referencing %s: %v", name, err)
	}
	return r
}

func errKind(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return -1
}

func TestEnterLeave(t *testing.T) {
	_, m := newFile(t)
	fn := m.Enter(Function, at(1, 1))
	m.Enter(If, at(2, 1))
	if _, err := m.Leave(If, at(3, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Current() != fn {
		t.Errorf("expected to be back in the function scope, got %s", m.Current().Kind)
	}
	if _, err := m.Leave(While, at(4, 1)); errKind(err) != ScopeTypeMismatch {
		t.Errorf("expected ScopeTypeMismatch, got %v", err)
	}
	if _, err := m.Leave(Function, at(4, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Leave(File, at(5, 1)); errKind(err) != LeavingModuleScope {
		t.Errorf("expected LeavingModuleScope, got %v", err)
	}
	if err := m.Finish(at(5, 1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLeavePopsValueBindings(t *testing.T) {
	_, m := newFile(t)
	fn := m.Enter(Function, at(1, 1))
	m.EnterImplicit(at(2, 1))
	mustCreate(t, m, ConstantInst, "a")
	m.EnterImplicit(at(3, 1))
	mustCreate(t, m, ConstantInst, "b")
	if m.Current().Kind != ValueBinding || m.Current().Parent.Parent != fn {
		t.Fatalf("expected two nested value binding scopes")
	}
	s, err := m.Leave(Function, at(4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != fn || m.Current() != m.Root() {
		t.Errorf("expected the function scope to be closed with its bindings")
	}
}

func TestFinishWithOpenScope(t *testing.T) {
	_, m := newFile(t)
	m.Enter(Struct, at(1, 1))
	if err := m.Finish(at(2, 1)); errKind(err) != UnresolvedScopeRemains {
		t.Errorf("expected UnresolvedScopeRemains, got %v", err)
	}
}

func TestImplicitScopeInDeclarativeScope(t *testing.T) {
	_, m := newFile(t)
	m.EnterImplicit(at(1, 1))
	if m.Current() != m.Root() {
		t.Errorf("expected no value binding scope at file level, got %s", m.Current().Kind)
	}
}

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Manager) error
		kind  ErrorKind
	}{
		{"Same Constant In File", func(m *Manager) error {
			m.Create(ConstantInst, "x", at(1, 1))
			_, err := m.Create(VariableInst, "x", at(2, 1))
			return err
		}, AlreadyExist},
		{"Chained Lets In Function", func(m *Manager) error {
			m.Enter(Function, at(1, 1))
			m.EnterImplicit(at(2, 1))
			m.Create(ConstantInst, "x", at(2, 5))
			m.EnterImplicit(at(3, 1))
			_, err := m.Create(ConstantInst, "x", at(3, 5))
			return err
		}, AlreadyExist},
		{"Function Overloads", func(m *Manager) error {
			m.Create(FunctionInst, "f", at(1, 1))
			_, err := m.Create(FunctionInst, "f", at(2, 1))
			return err
		}, -1},
		{"Shadowing In Nested Scope", func(m *Manager) error {
			m.Create(ConstantInst, "x", at(1, 1))
			m.Enter(Function, at(2, 1))
			m.EnterImplicit(at(3, 1))
			_, err := m.Create(ConstantInst, "x", at(3, 5))
			return err
		}, -1},
		{"Sibling Functions", func(m *Manager) error {
			m.Enter(Function, at(1, 1))
			m.Create(ConstantInst, "a", at(1, 8))
			m.Leave(Function, at(1, 20))
			m.Enter(Function, at(2, 1))
			_, err := m.Create(ConstantInst, "a", at(2, 8))
			return err
		}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newFile(t)
			err := tt.build(m)
			if tt.kind < 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if errKind(err) != tt.kind {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestWhitelist(t *testing.T) {
	tests := []struct {
		scope Kind
		inst  InstKind
		ok    bool
	}{
		{File, ExtensionInst, true},
		{File, EnumCaseInst, false},
		{Function, ExtensionInst, false},
		{Function, ProtocolInst, false},
		{Function, StructInst, true},
		{Enum, EnumCaseInst, true},
		{Struct, EnumCaseInst, false},
		{Protocol, FunctionInst, true},
		{Protocol, StructInst, false},
		{Extension, EnumCaseInst, true},
	}
	for _, tt := range tests {
		t.Run(tt.scope.String()+"/"+tt.inst.String(), func(t *testing.T) {
			_, m := newFile(t)
			if tt.scope != File {
				m.Enter(tt.scope, at(1, 1))
			}
			_, err := m.Create(tt.inst, "n", at(2, 1))
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && errKind(err) != InvalidScope {
				t.Errorf("expected InvalidScope, got %v", err)
			}
		})
	}
}

func TestRefWhitelistLooksThroughBindings(t *testing.T) {
	_, m := newFile(t)
	m.Enter(Protocol, at(1, 1))
	if _, err := m.NewRef(ValueRef, "x", at(2, 1)); errKind(err) != InvalidRefScope {
		t.Errorf("expected InvalidRefScope in protocol, got %v", err)
	}
	if _, err := m.NewRef(TypeRef, "Int", at(2, 1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	m.Leave(Protocol, at(3, 1))
	if _, err := m.NewImplicitParameterRef(0, at(4, 1)); errKind(err) != InvalidRefScope {
		t.Errorf("expected $0 outside a closure to fail, got %v", err)
	}
}

func TestProceduralOrder(t *testing.T) {
	module, m := newFile(t)
	m.Enter(Function, at(1, 1))
	before := mustRef(t, m, ValueRef, "y")
	m.EnterImplicit(at(2, 1))
	y := mustCreate(t, m, ConstantInst, "y")
	after := mustRef(t, m, ValueRef, "y")
	m.Leave(Function, at(3, 1))
	m.Finish(at(4, 1))
	module.Attach(m.Root())

	Resolve(module)
	if before.Resolved() {
		t.Errorf("expected y to be invisible before its declaration, got %s", before.Inst)
	}
	if after.Inst != y {
		t.Errorf("expected %s, got %v", y, after.Inst)
	}
}

func TestLetDoesNotSeeItself(t *testing.T) {
	module, m := newFile(t)
	outer := mustCreate(t, m, ConstantInst, "x")
	m.Enter(Function, at(2, 1))
	inner := NewInst(ConstantInst, "x", at(3, 5))
	init := mustRef(t, m, ValueRef, "x")
	m.EnterImplicit(at(3, 1))
	if err := m.Declare(inner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	use := mustRef(t, m, ValueRef, "x")
	m.Leave(Function, at(4, 1))
	module.Attach(m.Root())

	Resolve(module)
	if init.Inst != outer {
		t.Errorf("expected the initializer to see the outer x, got %v", init.Inst)
	}
	if use.Inst != inner {
		t.Errorf("expected the inner x, got %v", use.Inst)
	}
}

func TestDeclarativeOrder(t *testing.T) {
	module, m := newFile(t)
	r := mustRef(t, m, TypeRef, "Later")
	s := mustCreate(t, m, StructInst, "Later")
	module.Attach(m.Root())
	Resolve(module)
	if r.Inst != s {
		t.Errorf("expected a forward reference to resolve, got %v", r.Inst)
	}
}

func TestNominalMembers(t *testing.T) {
	module, m := newFile(t)
	point := mustCreate(t, m, StructInst, "Point")
	m.EnterBody(point, at(1, 15))
	mustCreate(t, m, VariableInst, "x")
	mustCreate(t, m, FunctionInst, "norm")
	m.Enter(Function, at(3, 1))
	r := mustRef(t, m, ValueRef, "x")
	m.Leave(Function, at(4, 1))
	if _, err := m.Leave(Struct, at(5, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.Member("x") == nil || point.Member("norm") == nil {
		t.Fatalf("expected members to be copied to the struct, got %v", point.Values)
	}
	module.Attach(m.Root())
	Resolve(module)
	if r.Inst != point.Member("x") {
		t.Errorf("expected x to resolve to the member, got %v", r.Inst)
	}
}

func TestExtensionMembers(t *testing.T) {
	module, m := newFile(t)
	// extension comes first in the file
	ext := mustCreate(t, m, ExtensionInst, "Box")
	ext.Extends = mustRef(t, m, TypeRef, "Box")
	m.EnterBody(ext, at(1, 15))
	mustCreate(t, m, FunctionInst, "open")
	m.Enter(Function, at(2, 1))
	sizeRef := mustRef(t, m, ValueRef, "size")
	m.Leave(Function, at(3, 1))
	m.Leave(Extension, at(4, 1))

	box := mustCreate(t, m, StructInst, "Box")
	m.EnterBody(box, at(5, 12))
	size := mustCreate(t, m, VariableInst, "size")
	m.Enter(Function, at(6, 1))
	openRef := mustRef(t, m, ValueRef, "open")
	m.Leave(Function, at(7, 1))
	m.Leave(Struct, at(8, 1))
	module.Attach(m.Root())

	Resolve(module)
	if ext.Target != box {
		t.Fatalf("expected extension to bind Box, got %v", ext.Target)
	}
	if sizeRef.Inst != size {
		t.Errorf("expected size to resolve through the extended type, got %v", sizeRef.Inst)
	}
	if openRef.Inst == nil || openRef.Inst.Name != "open" {
		t.Errorf("expected open to resolve to the extension member, got %v", openRef.Inst)
	}
}

func TestEnumCaseRefs(t *testing.T) {
	module, m := newFile(t)
	color := mustCreate(t, m, EnumInst, "Color")
	m.EnterBody(color, at(1, 12))
	red := mustCreate(t, m, EnumCaseInst, "Red")
	m.Leave(Enum, at(2, 1))
	qualified, _ := m.NewEnumCaseRef("Color", "Red", at(3, 1))
	implicit, _ := m.NewEnumCaseRef("", "Red", at(4, 1))
	none, _ := m.NewEnumCaseRef("", "None", at(5, 1))
	missing, _ := m.NewEnumCaseRef("Color", "Blue", at(6, 1))
	module.Attach(m.Root())

	Resolve(module)
	if qualified.Inst != red || implicit.Inst != red {
		t.Errorf("expected both refs to resolve to Red, got %v and %v", qualified.Inst, implicit.Inst)
	}
	if none.Inst == nil || none.Inst.Scope.Owner.Name != "Optional" {
		t.Errorf("expected .None to resolve to Optional.None, got %v", none.Inst)
	}
	if missing.Resolved() {
		t.Errorf("expected Color.Blue to stay unresolved")
	}
}

func TestOperatorResolution(t *testing.T) {
	module, m := newFile(t)
	plus, _ := m.NewOperatorRef("+", Infix, at(1, 3))
	neg, _ := m.NewOperatorRef("-", Prefix, at(2, 1))

	op := NewInst(OperatorInst, "<>", at(3, 1))
	op.Operator = &OperatorInfo{Fixity: Infix, Precedence: DefaultPrecedence}
	if err := m.Declare(op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impl := mustCreate(t, m, FunctionInst, "<>")
	custom, _ := m.NewOperatorRef("<>", Infix, at(5, 3))
	module.Attach(m.Root())

	Resolve(module)
	if plus.Inst == nil || plus.Inst.Operator.Precedence != 140 {
		t.Errorf("expected + from the prelude, got %v", plus.Inst)
	}
	if neg.Inst == nil || neg.Inst.Operator.Fixity != Prefix {
		t.Errorf("expected prefix -, got %v", neg.Inst)
	}
	if custom.Inst != op || op.Implementation != impl {
		t.Errorf("expected <> to resolve and be implemented by the function, got %v / %v", custom.Inst, op.Implementation)
	}
}

func TestImplicitParameters(t *testing.T) {
	module, m := newFile(t)
	m.Enter(Function, at(1, 1))
	closure := m.Enter(Closure, at(2, 3))
	r, err := m.NewImplicitParameterRef(1, at(2, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Leave(Closure, at(2, 9))
	m.Leave(Function, at(3, 1))
	module.Attach(m.Root())

	Resolve(module)
	if r.Inst == nil || r.Inst.Name != "$1" || r.Inst.Scope != closure {
		t.Errorf("expected $1 declared in the closure, got %v", r.Inst)
	}
}

func TestAttachExports(t *testing.T) {
	module := NewModule("main", Prelude())
	a := NewFileManager(module, "a.swift")
	mustCreate(t, a, FunctionInst, "helper")
	secret := NewInst(ConstantInst, "secret", at(2, 1))
	secret.Access = PrivateAccess
	a.Declare(secret)
	mustCreate(t, a, StructInst, "Shared")

	b := NewFileManager(module, "b.swift")
	useHelper := mustRef(t, b, ValueRef, "helper")
	useSecret := mustRef(t, b, ValueRef, "secret")
	mustCreate(t, b, ClassInst, "Shared")

	if errs := module.Attach(a.Root()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	errs := module.Attach(b.Root())
	if len(errs) != 1 || errKind(errs[0]) != AlreadyExist {
		t.Fatalf("expected one AlreadyExist, got %v", errs)
	}
	Resolve(module)
	if !useHelper.Resolved() {
		t.Errorf("expected helper to be visible from another file")
	}
	if useSecret.Resolved() {
		t.Errorf("expected private secret to stay file local")
	}
}

func TestResolutionError(t *testing.T) {
	module, m := newFile(t)
	mustRef(t, m, ValueRef, "nowhere")
	module.Attach(m.Root())
	res := Resolve(module)
	if len(res) != 1 || res[0].Resolved() {
		t.Fatalf("expected one unresolved ref, got %v", res)
	}
	expected := "use of unresolved value 'nowhere'"
	if err := res[0].Err(); err == nil || err.Error() != expected {
		t.Errorf("expected %q, got %v", expected, err)
	}
	if !errors.Is(res[0].Err(), &Error{Kind: NotExist}) {
		t.Errorf("expected errors.Is to match NotExist")
	}
}

func TestDump(t *testing.T) {
	module, m := newFile(t)
	mustCreate(t, m, ConstantInst, "b")
	mustCreate(t, m, ConstantInst, "a")
	mustRef(t, m, TypeRef, "Int")
	module.Attach(m.Root())
	Resolve(module)

	out := module.String()
	for _, want := range []string{"module main", "  file main.swift", "constant     a@1:1", "type ref Int@1:1 -> type Int@0:0"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected dump to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, " a@") > strings.Index(out, " b@") {
		t.Errorf("expected names to be sorted, got:\n%s", out)
	}
}
