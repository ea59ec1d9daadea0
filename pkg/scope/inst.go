package scope

import (
	"fmt"

	"treeswift/pkg/source"
)

// Associativity of an infix operator.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	}
	return "none"
}

// Fixity of a declared operator.
type Fixity int

const (
	Infix Fixity = iota
	Prefix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	}
	return "infix"
}

// DefaultPrecedence is used for infix operators declared without one.
const DefaultPrecedence = 100

// OperatorInfo describes an operator inst.
type OperatorInfo struct {
	Fixity        Fixity
	Precedence    int
	Associativity Associativity
}

// Inst is a declared symbol.
type Inst struct {
	Kind   InstKind
	Name   string
	Pos    source.Pos
	Access AccessLevel

	// Type is filled in by type inference. Nothing in the front end reads it.
	Type any

	// Members of nominal types, filled when the body scope is left.
	Types  map[string]*Inst
	Values map[string]*Inst

	// Decl is the declaration node of enum, struct, class, protocol and
	// extension insts.
	Decl any
	// Body is the member scope of nominal and extension insts.
	Body *Scope
	// Scope is where the inst was declared.
	Scope *Scope

	// Operator is set for operator insts; Implementation is the operator
	// function bound during resolution.
	Operator       *OperatorInfo
	Implementation *Inst

	// Extends is the ref naming the type an extension applies to, and
	// Target its resolution.
	Extends *Ref
	Target  *Inst

	seq int
}

// NewInst allocates an inst that is not yet declared in any scope.
func NewInst(kind InstKind, name string, pos source.Pos) *Inst {
	return &Inst{Kind: kind, Name: name, Pos: pos}
}

func (i *Inst) String() string {
	return fmt.Sprintf("%s %s@%s", i.Kind, i.Name, i.Pos)
}

// Member looks a nested type or value up by name.
func (i *Inst) Member(name string) *Inst {
	if m, ok := i.Values[name]; ok {
		return m
	}
	return i.Types[name]
}

func (i *Inst) addMember(m *Inst) {
	if m.Kind.IsType() {
		if i.Types == nil {
			i.Types = make(map[string]*Inst)
		}
		if _, ok := i.Types[m.Name]; !ok {
			i.Types[m.Name] = m
		}
		return
	}
	if i.Values == nil {
		i.Values = make(map[string]*Inst)
	}
	if _, ok := i.Values[m.Name]; !ok {
		i.Values[m.Name] = m
	}
}

// Ref is a use of a name, recorded while parsing and bound by Resolve.
type Ref struct {
	Kind      RefKind
	Name      string
	Index     int    // implicit parameter number
	ClassName string // qualifying enum of an enum case ref, may be empty
	Fixity    Fixity // operator refs
	Pos       source.Pos
	Scope     *Scope

	// Inst and Type stay nil until resolution succeeds.
	Inst *Inst
	Type any

	seq int
}

func (r *Ref) String() string {
	name := r.Name
	if r.ClassName != "" {
		name = r.ClassName + "." + name
	}
	return fmt.Sprintf("%s ref %s@%s", r.Kind, name, r.Pos)
}

// Resolved reports whether the ref has been bound.
func (r *Ref) Resolved() bool { return r.Inst != nil }
