package ast

import (
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// IdentityPattern matches anything without binding. It stands in for the
// pattern of a plain expression in a case list that was parsed as a guard.
type IdentityPattern struct{}

// BooleanPattern is the pattern of a condition that is a plain expression.
//
//	while i < 10 { ... }
//	      ^^^^^^  BooleanPattern matched against the expression
type BooleanPattern struct{}

// IdentifierPattern declares a constant or variable.
//
//	let x: Int = 1
//	    ^  ^^^
//	    |  Annotation
//	    Inst
type IdentifierPattern struct {
	Name       string
	Inst       *scope.Inst
	Annotation Type
	Pos        source.Pos
}

// WildcardPattern is _ with an optional annotation.
type WildcardPattern struct {
	Annotation Type
	Pos        source.Pos
}

// TuplePatternElem is one element of a tuple pattern; Label is empty when
// the element has none.
type TuplePatternElem struct {
	Label   string
	Pattern Pattern
}

// TuplePattern destructures a tuple.
//
//	let (a, b: _) = pair
//	    ^^^^^^^^^
type TuplePattern struct {
	Elems      []*TuplePatternElem
	Annotation Type
	Pos        source.Pos
}

// BindingPattern is var or let in front of a pattern inside a case.
//
//	case let .Some(x):
//	     ^^^
type BindingPattern struct {
	Constant bool
	Pattern  Pattern
}

// OptionalPattern matches a non-nil optional: x?.
type OptionalPattern struct {
	Pattern Pattern
}

// TypeCastingPattern is pattern as Type.
type TypeCastingPattern struct {
	Pattern Pattern
	Type    Type
}

// TypePattern is is Type.
type TypePattern struct {
	Type Type
}

// EnumCasePattern matches an enum case and destructures its associated
// values.
//
//	case .Node(let left, let right):
//	      ^^^^ ^^^^^^^^^^^^^^^^^^^^
//	      Ref  Tuple
type EnumCasePattern struct {
	Ref   *scope.Ref
	Tuple *TuplePattern
	Pos   source.Pos
}

// ExpressionPattern matches with ~= against an expression.
type ExpressionPattern struct {
	Expr Expr
}

func (*IdentityPattern) patternNode()    {}
func (*BooleanPattern) patternNode()     {}
func (*IdentifierPattern) patternNode()  {}
func (*WildcardPattern) patternNode()    {}
func (*TuplePattern) patternNode()       {}
func (*BindingPattern) patternNode()     {}
func (*OptionalPattern) patternNode()    {}
func (*TypeCastingPattern) patternNode() {}
func (*TypePattern) patternNode()        {}
func (*EnumCasePattern) patternNode()    {}
func (*ExpressionPattern) patternNode()  {}
