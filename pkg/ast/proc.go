package ast

import (
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// Condition is one clause of an if, while or guard condition list.
//
//	if let x = opt, case .Some(let y) = z where y > 0, x < 10 { }
//	   ^^^^^^^^^^^  ^^^^^^^^^^^^^^^^^^^^^^ ^^^^^^^^^^^  ^^^^^^
//	   binding      pattern match          Where        BooleanPattern
type Condition struct {
	Pattern Pattern
	Expr    Expr
	Where   Expr
}

// ForFlow is the C-style for loop. Init is a PatternInitDecl or an
// operation; every part may be absent.
type ForFlow struct {
	Label Label
	Init  Procedure
	Cond  Expr
	Step  Procedure
	Body  []Procedure
	Scope *scope.Scope
}

// ForInFlow is for [case] pattern in sequence [where guard].
type ForInFlow struct {
	Label    Label
	Case     bool
	Pattern  Pattern
	Sequence Expr
	Where    Expr
	Body     []Procedure
	Scope    *scope.Scope
}

// WhileFlow is while conditions { body }.
type WhileFlow struct {
	Label Label
	Conds []*Condition
	Body  []Procedure
	Scope *scope.Scope
}

// RepeatWhileFlow is repeat { body } while cond.
type RepeatWhileFlow struct {
	Label Label
	Body  []Procedure
	Cond  Expr
	Scope *scope.Scope
}

// IfFlow is if conditions { body } with at most one of Else and ElseIf.
type IfFlow struct {
	Label  Label
	Conds  []*Condition
	Body   []Procedure
	Else   []Procedure
	ElseIf *IfFlow
	Scope  *scope.Scope
}

// GuardFlow is guard conditions else { body }. Bindings of the conditions
// are declared in the enclosing scope and stay visible after the guard.
type GuardFlow struct {
	Conds []*Condition
	Body  []Procedure
	Scope *scope.Scope
}

// DeferFlow is defer { body }.
type DeferFlow struct {
	Body  []Procedure
	Scope *scope.Scope
}

// DoFlow is do { body } catch ... .
type DoFlow struct {
	Body    []Procedure
	Catches []*CatchFlow
	Scope   *scope.Scope
}

// CatchFlow is catch [pattern] [where guard] { body }.
type CatchFlow struct {
	Pattern Pattern
	Where   Expr
	Body    []Procedure
	Scope   *scope.Scope
}

// CaseItem is one pattern of a case label with its guard.
type CaseItem struct {
	Pattern Pattern
	Where   Expr
}

// CaseFlow is one case or default block of a switch.
type CaseFlow struct {
	Items   []*CaseItem
	Default bool
	Body    []Procedure
	Scope   *scope.Scope
	Pos     source.Pos
}

// SwitchFlow is switch subject { cases }.
type SwitchFlow struct {
	Label   Label
	Subject Expr
	Cases   []*CaseFlow
}

// ExprOp is an expression used as a statement.
type ExprOp struct {
	Expr Expr
}

// AssignOp is Target = Value.
type AssignOp struct {
	Target Expr
	Value  Expr
	Pos    source.Pos
}

// BreakOp is break [label].
type BreakOp struct {
	Label Label
	Pos   source.Pos
}

// ContinueOp is continue [label].
type ContinueOp struct {
	Label Label
	Pos   source.Pos
}

// FallthroughOp is fallthrough.
type FallthroughOp struct {
	Pos source.Pos
}

// ReturnOp is return [value].
type ReturnOp struct {
	Value Expr
	Pos   source.Pos
}

// ThrowOp is throw value.
type ThrowOp struct {
	Value Expr
	Pos   source.Pos
}

func (*ForFlow) procNode()         {}
func (*ForInFlow) procNode()       {}
func (*WhileFlow) procNode()       {}
func (*RepeatWhileFlow) procNode() {}
func (*IfFlow) procNode()          {}
func (*GuardFlow) procNode()       {}
func (*DeferFlow) procNode()       {}
func (*DoFlow) procNode()          {}
func (*CatchFlow) procNode()       {}
func (*CaseFlow) procNode()        {}
func (*SwitchFlow) procNode()      {}
func (*ExprOp) procNode()          {}
func (*AssignOp) procNode()        {}
func (*BreakOp) procNode()         {}
func (*ContinueOp) procNode()      {}
func (*FallthroughOp) procNode()   {}
func (*ReturnOp) procNode()        {}
func (*ThrowOp) procNode()         {}
