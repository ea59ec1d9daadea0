// Package ast defines the syntax tree produced by the parser. Nodes that
// introduce a scope keep the *scope.Scope the parser left when it finished
// them; declarations keep their *scope.Inst and name uses their *scope.Ref.
package ast

import (
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// Node is implemented by every concrete node.
type Node interface {
	Accept(v Visitor) error
}

// Procedure is a statement inside a file or a body: a declaration, a flow
// or an operation.
type Procedure interface {
	Node
	procNode()
}

// Decl is a declaration. Declarations are procedures too.
type Decl interface {
	Procedure
	declNode()
}

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by the pattern nodes used by let/var, switch
// cases, for-in and optional binding.
type Pattern interface {
	Node
	patternNode()
}

// Type is a written type.
type Type interface {
	Node
	typeNode()
	String() string
}

// Module is the cross-file aggregate: the files that parsed without a
// fatal, and the module scope their exports were merged into.
type Module struct {
	Name  string
	Files []*File
	Scope *scope.Scope
}

func (m *Module) Accept(v Visitor) error { return v.VisitModule(m) }

// File is the root of one source file.
type File struct {
	Name       string
	Procedures []Procedure
	Scope      *scope.Scope
}

func (f *File) Accept(v Visitor) error { return v.VisitFile(f) }

// Label names a loop, if or switch for break and continue.
//
//	outer: for x in xs { ... break outer }
//	^^^^^
type Label string

// Common holds what every declaration may be prefixed with.
//
//	@objc private(set) static var count = 0
//	^^^^^ ^^^^^^^^^^^^ ^^^^^^
//	Attrs SetterAccess Modifiers
type Common struct {
	Attrs        []*Attribute
	Access       scope.AccessLevel
	SetterAccess scope.AccessLevel
	Modifiers    []Modifier
	Pos          source.Pos
}

// Has reports whether m was written before the declaration.
func (c *Common) Has(m Modifier) bool {
	for _, x := range c.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// Modifier is a declaration modifier other than an access level.
type Modifier int

const (
	ModClass Modifier = iota
	ModConvenience
	ModDynamic
	ModFinal
	ModLazy
	ModMutating
	ModNonmutating
	ModOptional
	ModOverride
	ModRequired
	ModStatic
	ModWeak
	ModUnowned
	ModUnownedSafe
	ModUnownedUnsafe
	ModIndirect
	ModPrefix
	ModPostfix
	ModInfix
)

var modifierNames = [...]string{
	ModClass:         "class",
	ModConvenience:   "convenience",
	ModDynamic:       "dynamic",
	ModFinal:         "final",
	ModLazy:          "lazy",
	ModMutating:      "mutating",
	ModNonmutating:   "nonmutating",
	ModOptional:      "optional",
	ModOverride:      "override",
	ModRequired:      "required",
	ModStatic:        "static",
	ModWeak:          "weak",
	ModUnowned:       "unowned",
	ModUnownedSafe:   "unowned(safe)",
	ModUnownedUnsafe: "unowned(unsafe)",
	ModIndirect:      "indirect",
	ModPrefix:        "prefix",
	ModPostfix:       "postfix",
	ModInfix:         "infix",
}

func (m Modifier) String() string {
	if int(m) < len(modifierNames) {
		return modifierNames[m]
	}
	return "modifier"
}
