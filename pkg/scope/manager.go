package scope

import (
	"fmt"

	"treeswift/pkg/source"
)

// Manager builds the scope tree of one parse. It tracks the current scope,
// checks every declaration and reference against the whitelist of the
// scope it lands in and records refs for Resolve.
//
// A Manager is owned by a single parser and is not safe for concurrent use.
type Manager struct {
	root    *Scope
	current *Scope
	seq     int
}

// NewManager starts at root, which becomes the outermost scope Leave will
// refuse to pop.
func NewManager(root *Scope) *Manager {
	return &Manager{root: root, current: root}
}

// NewFileManager opens a file scope under module without registering it as
// a child; the module is left untouched so several files can be parsed at
// once. Use Scope.Attach to merge the result.
func NewFileManager(module *Scope, file string) *Manager {
	s := newScope(File, nil, source.Pos{Line: 1, Col: 1})
	s.Name = file
	s.Parent = module
	return NewManager(s)
}

// Root is the outermost scope of the manager.
func (m *Manager) Root() *Scope { return m.root }

// Current is the innermost open scope.
func (m *Manager) Current() *Scope { return m.current }

func (m *Manager) next() int {
	m.seq++
	return m.seq
}

// Enter opens a child scope of kind and makes it current.
func (m *Manager) Enter(kind Kind, pos source.Pos) *Scope {
	m.current = newScope(kind, m.current, pos)
	return m.current
}

// EnterBody opens the member scope of a nominal type or extension.
func (m *Manager) EnterBody(owner *Inst, pos source.Pos) *Scope {
	s := m.Enter(bodyKind(owner.Kind), pos)
	s.Name = owner.Name
	s.Owner = owner
	owner.Body = s
	return s
}

func bodyKind(k InstKind) Kind {
	switch k {
	case EnumInst:
		return Enum
	case StructInst:
		return Struct
	case ClassInst:
		return Class
	case ProtocolInst:
		return Protocol
	case ExtensionInst:
		return Extension
	}
	panic(fmt.Sprintf("scope: %s has no body", k))
}

// EnterImplicit opens a value binding scope for the names a let, var or
// optional binding is about to declare. Declarative scopes see their
// members in any order, so there nothing is opened.
func (m *Manager) EnterImplicit(pos source.Pos) {
	if m.current.Kind.Policy() == Declarative {
		return
	}
	m.Enter(ValueBinding, pos)
}

// Leave closes the current scope, which must be of kind. Value binding
// scopes opened since the scope was entered are closed with it.
//
// Leaving a nominal body copies its members into the owner inst.
func (m *Manager) Leave(kind Kind, pos source.Pos) (*Scope, error) {
	if kind != ValueBinding {
		for m.current.Kind == ValueBinding && m.current != m.root {
			m.current = m.current.Parent
		}
	}
	cur := m.current
	if kind == Module || cur == m.root || cur.Parent == nil {
		return nil, &Error{Kind: LeavingModuleScope, Pos: pos, Scope: cur.Kind}
	}
	if cur.Kind != kind {
		return nil, &Error{Kind: ScopeTypeMismatch, Pos: pos, Scope: cur.Kind, Expected: kind}
	}
	if cur.Owner != nil {
		for _, inst := range cur.order {
			cur.Owner.addMember(inst)
		}
	}
	m.current = cur.Parent
	return cur, nil
}

// Declare registers inst in the current scope.
func (m *Manager) Declare(inst *Inst) error {
	target := m.current.opaque()
	if !target.Kind.AllowsInst(inst.Kind) {
		return &Error{Kind: InvalidScope, Name: inst.Name, Pos: inst.Pos, Scope: target.Kind, Inst: inst.Kind}
	}
	if prev := m.current.conflict(inst); prev != nil {
		return &Error{Kind: AlreadyExist, Name: inst.Name, Pos: inst.Pos, Scope: target.Kind, Previous: prev}
	}
	inst.seq = m.next()
	m.current.add(inst)
	return nil
}

// Create allocates and declares an inst in one step.
func (m *Manager) Create(kind InstKind, name string, pos source.Pos) (*Inst, error) {
	inst := NewInst(kind, name, pos)
	if err := m.Declare(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// NewRef records a use of name in the current scope.
func (m *Manager) NewRef(kind RefKind, name string, pos source.Pos) (*Ref, error) {
	return m.addRef(&Ref{Kind: kind, Name: name, Pos: pos})
}

// NewOperatorRef records a use of an operator with the given fixity.
func (m *Manager) NewOperatorRef(name string, fixity Fixity, pos source.Pos) (*Ref, error) {
	return m.addRef(&Ref{Kind: OperatorRef, Name: name, Fixity: fixity, Pos: pos})
}

// NewEnumCaseRef records a reference to an enum case, optionally qualified
// by the enum name.
func (m *Manager) NewEnumCaseRef(className, name string, pos source.Pos) (*Ref, error) {
	return m.addRef(&Ref{Kind: EnumCaseRef, ClassName: className, Name: name, Pos: pos})
}

// NewImplicitParameterRef records $index. The innermost closure gets a
// constant named $index, declared on first use.
func (m *Manager) NewImplicitParameterRef(index int, pos source.Pos) (*Ref, error) {
	name := fmt.Sprintf("$%d", index)
	var closure *Scope
	for sc := m.current; sc != nil; sc = sc.Parent {
		if sc.Kind == Closure {
			closure = sc
			break
		}
	}
	if closure == nil {
		return nil, &Error{Kind: InvalidRefScope, Name: name, Pos: pos, Scope: m.current.opaque().Kind, Ref: ImplicitParameterRef}
	}
	if len(closure.insts[name]) == 0 {
		inst := NewInst(ConstantInst, name, closure.Pos)
		inst.seq = 0 // visible from the start of the closure
		closure.add(inst)
	}
	return m.addRef(&Ref{Kind: ImplicitParameterRef, Name: name, Index: index, Pos: pos})
}

func (m *Manager) addRef(r *Ref) (*Ref, error) {
	target := m.current.opaque()
	if !target.Kind.AllowsRef(r.Kind) {
		return nil, &Error{Kind: InvalidRefScope, Name: r.Name, Pos: r.Pos, Scope: target.Kind, Ref: r.Kind}
	}
	r.Scope = m.current
	r.seq = m.next()
	m.current.refs = append(m.current.refs, r)
	return r, nil
}

// Finish closes trailing value binding scopes and checks that every other
// scope has been left.
func (m *Manager) Finish(pos source.Pos) error {
	for m.current != m.root && m.current.Kind == ValueBinding {
		m.current = m.current.Parent
	}
	if m.current != m.root {
		return &Error{Kind: UnresolvedScopeRemains, Pos: pos, Scope: m.current.Kind}
	}
	return nil
}
