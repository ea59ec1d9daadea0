package ast

import (
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// TryExpr is try or try! in front of an expression.
type TryExpr struct {
	Forced bool
	Expr   Expr
}

// BinaryExpr is Left Op Right. Chains nest to the right and precedence is
// applied later by the type checker, which has every operator declaration.
//
//	a + b * c
//	^ ^ ^^^^^
//	| | Right (another BinaryExpr)
//	| Op
//	Left
type BinaryExpr struct {
	Left  Expr
	Op    string
	Ref   *scope.Ref
	Right Expr
	Pos   source.Pos
}

// ConditionalExpr is Cond ? Then : Else.
type ConditionalExpr struct {
	Cond, Then, Else Expr
}

// CastKind distinguishes is, as, as? and as!.
type CastKind int

const (
	CastIs CastKind = iota
	CastAs
	CastConditional
	CastForced
)

func (k CastKind) String() string {
	switch k {
	case CastAs:
		return "as"
	case CastConditional:
		return "as?"
	case CastForced:
		return "as!"
	}
	return "is"
}

// CastExpr is Expr is Type, Expr as Type and the checked variants.
type CastExpr struct {
	Expr Expr
	Kind CastKind
	Type Type
}

// PrefixExpr applies a prefix operator.
//
//	-x
//	^
//	Op
type PrefixExpr struct {
	Op   string
	Ref  *scope.Ref
	Expr Expr
	Pos  source.Pos
}

// InOutExpr is &x passed to an inout parameter.
type InOutExpr struct {
	Expr Expr
}

// PostfixOpExpr applies a postfix operator: i++.
type PostfixOpExpr struct {
	Expr Expr
	Op   string
	Ref  *scope.Ref
	Pos  source.Pos
}

// TupleElem is one labelled or unlabelled element of a tuple expression or
// argument list.
type TupleElem struct {
	Label string
	Expr  Expr
}

// CallExpr is Fn(args) with an optional trailing closure.
type CallExpr struct {
	Fn       Expr
	Args     []*TupleElem
	Trailing *ClosureExpr
}

// MemberKind classifies what follows the dot of a MemberExpr.
type MemberKind int

const (
	MemberNamed       MemberKind = iota // x.name
	MemberUnnamed                       // x.0
	MemberInit                          // x.init
	MemberSelf                          // x.self
	MemberDynamicType                   // x.dynamicType
)

// MemberExpr is Expr.Name. Members are not resolved by the front end.
type MemberExpr struct {
	Expr  Expr
	Kind  MemberKind
	Name  string
	Index int64
	Args  []Type // generic arguments
	Pos   source.Pos
}

// SubscriptExpr is Expr[Index...].
type SubscriptExpr struct {
	Expr  Expr
	Index []Expr
}

// ForcedValueExpr is Expr!.
type ForcedValueExpr struct {
	Expr Expr
}

// OptionalChainExpr is Expr? continuing a postfix chain.
//
//	a?.b
//	^^
type OptionalChainExpr struct {
	Expr Expr
}

// IdentExpr is a bare name, optionally with generic arguments.
type IdentExpr struct {
	Name string
	Ref  *scope.Ref
	Args []Type
	Pos  source.Pos
}

// ImplicitParamExpr is $0, $1, ... inside a closure.
type ImplicitParamExpr struct {
	Index int
	Ref   *scope.Ref
	Pos   source.Pos
}

// IntegerLiteral keeps whether the source had a radix prefix.
type IntegerLiteral struct {
	Value   int64
	Decimal bool
	Pos     source.Pos
}

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	Value float64
	Pos   source.Pos
}

// StringLiteral holds the decoded value. __FILE__ and __FUNCTION__ become
// string literals at parse time.
type StringLiteral struct {
	Value string
	Pos   source.Pos
}

// BoolLiteral is true or false.
type BoolLiteral struct {
	Value bool
	Pos   source.Pos
}

// NilLiteral is nil.
type NilLiteral struct {
	Pos source.Pos
}

// ArrayLiteral is [a, b, c].
type ArrayLiteral struct {
	Elems []Expr
}

// DictEntry is one key: value pair.
type DictEntry struct {
	Key, Value Expr
}

// DictLiteral is [k: v, ...]; [:] is the empty dictionary.
type DictLiteral struct {
	Entries []*DictEntry
}

// SelfKind distinguishes the forms of self and super.
type SelfKind int

const (
	SelfPlain     SelfKind = iota // self
	SelfInit                      // self.init
	SelfMember                    // self.name
	SelfSubscript                 // self[i]
)

// SelfExpr is self, self.init, self.member or self[index].
type SelfExpr struct {
	Kind  SelfKind
	Name  string
	Index []Expr
	Pos   source.Pos
}

// SuperExpr is super.init, super.member or super[index].
type SuperExpr struct {
	Kind  SelfKind
	Name  string
	Index []Expr
	Pos   source.Pos
}

// CaptureKind is the specifier of a capture list entry.
type CaptureKind int

const (
	CaptureStrong CaptureKind = iota
	CaptureWeak
	CaptureUnowned
	CaptureUnownedSafe
	CaptureUnownedUnsafe
)

// Capture is one entry of a closure capture list: [weak self].
type Capture struct {
	Kind CaptureKind
	Expr Expr
}

// ClosureExpr is { (params) -> Result in body }.
//
//	{ [weak self] (a: Int, b: Int) -> Int in a + b }
//	  ^^^^^^^^^^^ ^^^^^^^^^^^^^^^^    ^^^    ^^^^^
//	  Captures    Params              Result Body
//
// Names listed without types ({ a, b in ... }) land in Params with a nil
// Type.
type ClosureExpr struct {
	Captures []*Capture
	Params   []*Param
	Throws   ThrowKind
	Result   Type
	Body     []Procedure
	Scope    *scope.Scope
	Pos      source.Pos
}

// TupleExpr is (a, label: b). A single unlabelled element is a
// parenthesized expression and is not wrapped.
type TupleExpr struct {
	Elems []*TupleElem
}

// ImplicitMemberExpr is .Name with the type left to inference; the ref
// looks for an enum case of that name.
type ImplicitMemberExpr struct {
	Name string
	Ref  *scope.Ref
	Pos  source.Pos
}

// WildcardExpr is _ on the left of an assignment.
type WildcardExpr struct {
	Pos source.Pos
}

func (*TryExpr) exprNode()            {}
func (*BinaryExpr) exprNode()         {}
func (*ConditionalExpr) exprNode()    {}
func (*CastExpr) exprNode()           {}
func (*PrefixExpr) exprNode()         {}
func (*InOutExpr) exprNode()          {}
func (*PostfixOpExpr) exprNode()      {}
func (*CallExpr) exprNode()           {}
func (*MemberExpr) exprNode()         {}
func (*SubscriptExpr) exprNode()      {}
func (*ForcedValueExpr) exprNode()    {}
func (*OptionalChainExpr) exprNode()  {}
func (*IdentExpr) exprNode()          {}
func (*ImplicitParamExpr) exprNode()  {}
func (*IntegerLiteral) exprNode()     {}
func (*FloatLiteral) exprNode()       {}
func (*StringLiteral) exprNode()      {}
func (*BoolLiteral) exprNode()        {}
func (*NilLiteral) exprNode()         {}
func (*ArrayLiteral) exprNode()       {}
func (*DictLiteral) exprNode()        {}
func (*SelfExpr) exprNode()           {}
func (*SuperExpr) exprNode()          {}
func (*ClosureExpr) exprNode()        {}
func (*TupleExpr) exprNode()          {}
func (*ImplicitMemberExpr) exprNode() {}
func (*WildcardExpr) exprNode()       {}
