package ast

import (
	"fmt"
	"strings"

	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// IdentifierType names a type, optionally with generic arguments and a
// nested member type.
//
//	Dictionary<String, Int>.Index
//	^^^^^^^^^^ ^^^^^^^^^^^  ^^^^^
//	Name       Args         Nested
//
// Only the outermost name has a Ref; nested names are members of it.
type IdentifierType struct {
	Name   string
	Ref    *scope.Ref
	Args   []Type
	Nested *IdentifierType
	Pos    source.Pos
}

func (*IdentifierType) typeNode() {}
func (t *IdentifierType) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteString("<")
		sb.WriteString(joinTypes(t.Args, ", "))
		sb.WriteString(">")
	}
	if t.Nested != nil {
		sb.WriteString(".")
		sb.WriteString(t.Nested.String())
	}
	return sb.String()
}

// ArrayType is [Elem].
type ArrayType struct {
	Elem Type
}

func (*ArrayType) typeNode()        {}
func (t *ArrayType) String() string { return "[" + t.Elem.String() + "]" }

// DictionaryType is [Key: Value].
type DictionaryType struct {
	Key, Value Type
}

func (*DictionaryType) typeNode() {}
func (t *DictionaryType) String() string {
	return fmt.Sprintf("[%s: %s]", t.Key, t.Value)
}

// TupleTypeElem is one element of a tuple type or a function argument list.
//
//	(label: inout Int, rest: String...)
//	 ^^^^^  ^^^^^
type TupleTypeElem struct {
	Attrs    []*Attribute
	Label    string
	InOut    bool
	Variadic bool
	Type     Type
}

// TupleType is (A, b: B). The empty tuple is Void.
type TupleType struct {
	Elems []*TupleTypeElem
}

func (*TupleType) typeNode() {}
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		s := e.Type.String()
		if e.InOut {
			s = "inout " + s
		}
		if e.Label != "" {
			s = e.Label + ": " + s
		}
		if e.Variadic {
			s += "..."
		}
		parts[i] = s
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ProtocolCompositionType is protocol<A, B>.
type ProtocolCompositionType struct {
	Types []*IdentifierType
}

func (*ProtocolCompositionType) typeNode() {}
func (t *ProtocolCompositionType) String() string {
	parts := make([]string, len(t.Types))
	for i, p := range t.Types {
		parts[i] = p.String()
	}
	return "protocol<" + strings.Join(parts, ", ") + ">"
}

// ThrowKind marks functions and function types that may throw.
type ThrowKind int

const (
	NoThrow ThrowKind = iota
	Throws
	Rethrows
)

func (k ThrowKind) String() string {
	switch k {
	case Throws:
		return "throws"
	case Rethrows:
		return "rethrows"
	}
	return ""
}

// FunctionType is Arg -> Result, Arg throws -> Result.
type FunctionType struct {
	Arg    Type
	Throws ThrowKind
	Result Type
}

func (*FunctionType) typeNode() {}
func (t *FunctionType) String() string {
	if t.Throws != NoThrow {
		return fmt.Sprintf("%s %s -> %s", t.Arg, t.Throws, t.Result)
	}
	return fmt.Sprintf("%s -> %s", t.Arg, t.Result)
}

// OptionalType is Wrapped?.
type OptionalType struct {
	Wrapped Type
}

func (*OptionalType) typeNode()        {}
func (t *OptionalType) String() string { return t.Wrapped.String() + "?" }

// ImplicitlyUnwrappedOptionalType is Wrapped!.
type ImplicitlyUnwrappedOptionalType struct {
	Wrapped Type
}

func (*ImplicitlyUnwrappedOptionalType) typeNode()        {}
func (t *ImplicitlyUnwrappedOptionalType) String() string { return t.Wrapped.String() + "!" }

// MetaType is T.Type.
type MetaType struct {
	Of Type
}

func (*MetaType) typeNode()        {}
func (t *MetaType) String() string { return t.Of.String() + ".Type" }

// MetaProtocol is P.Protocol.
type MetaProtocol struct {
	Of Type
}

func (*MetaProtocol) typeNode()        {}
func (t *MetaProtocol) String() string { return t.Of.String() + ".Protocol" }

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// Attribute is @name with an optional raw argument clause.
//
//	@available(iOS, introduced=8.0)
//	 ^^^^^^^^^ ^^^^^^^^^^^^^^^^^^^
//	 Name      Args
type Attribute struct {
	Name string
	Args string
	Pos  source.Pos
}

func (a *Attribute) String() string {
	if a.Args != "" {
		return "@" + a.Name + "(" + a.Args + ")"
	}
	return "@" + a.Name
}

// GenericParam declares a type parameter with an optional conformance.
//
//	<T: Equatable>
//	 ^  ^^^^^^^^^
//	 Inst Conformance
type GenericParam struct {
	Inst        *scope.Inst
	Conformance Type // *IdentifierType or *ProtocolCompositionType
}

// Requirement is one clause of a where list: T: P or T == U.
type Requirement struct {
	Left     *IdentifierType
	Right    Type
	SameType bool
}

// GenericParamClause is the <...> after a generic declaration's name.
type GenericParamClause struct {
	Params       []*GenericParam
	Requirements []*Requirement
}

// Inheritance is the : A, B list after a nominal type's name. Class is set
// for the class requirement of class-only protocols.
type Inheritance struct {
	Class bool
	Types []*IdentifierType
}
