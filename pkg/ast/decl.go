package ast

import (
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// ImportDecl is import [kind] a.b.c.
type ImportDecl struct {
	Common
	Kind string // typealias, struct, class, enum, protocol, var, func or empty
	Path []string
}

// PatternInit is one pattern = initializer pair of a let/var list.
type PatternInit struct {
	Pattern Pattern
	Init    Expr
}

// PatternInitDecl is a stored let or var declaration.
//
//	let x: Int = 1, y = 2
//	    ^^^^^^^^^^  ^^^^^
//	    Inits[0]    Inits[1]
type PatternInitDecl struct {
	Common
	Constant bool
	Inits    []*PatternInit
}

// AccessorKind names the accessor blocks of computed and observed
// variables and subscripts.
type AccessorKind int

const (
	Getter AccessorKind = iota
	Setter
	WillSetter
	DidSetter
)

func (k AccessorKind) String() string {
	switch k {
	case Setter:
		return "set"
	case WillSetter:
		return "willSet"
	case DidSetter:
		return "didSet"
	}
	return "get"
}

// AccessorBlock is one get, set, willSet or didSet body. Param is the
// setter parameter (newValue/oldValue unless named).
type AccessorBlock struct {
	Attrs []*Attribute
	Kind  AccessorKind
	Param *scope.Inst
	Body  []Procedure
	Scope *scope.Scope
}

// VariableBlockDecl is a computed or observed variable.
//
//	var area: Int { get { return w * h } set { ... } }
//
// In protocols the blocks are only declared: { get set } sets the
// keyword flags and leaves the blocks nil.
type VariableBlockDecl struct {
	Common
	Inst       *scope.Inst
	Annotation Type
	Init       Expr
	Blocks     []*AccessorBlock
	GetKeyword bool
	SetKeyword bool
}

// Block returns the accessor of kind k, or nil.
func (d *VariableBlockDecl) Block(k AccessorKind) *AccessorBlock {
	for _, b := range d.Blocks {
		if b.Kind == k {
			return b
		}
	}
	return nil
}

// TypealiasDecl is typealias Name = Type. Inside protocols the type may
// be absent and an inheritance list given instead.
type TypealiasDecl struct {
	Common
	Inst     *scope.Inst
	Inherits *Inheritance
	Type     Type
}

// ParamKind is the specifier written before a parameter name.
type ParamKind int

const (
	ParamPlain ParamKind = iota
	ParamLet
	ParamVar
	ParamInOut
	ParamVariadic
)

// Param is one function, initializer, subscript or closure parameter.
//
//	func move(from start: Int, var by delta: Int = 1)
//	          ^^^^ ^^^^^       ^^^ ^^ ^^^^^        ^
//	          External Name    Kind   ...          Default
type Param struct {
	Kind     ParamKind
	External string // "_" suppresses the label
	Name     string
	Inst     *scope.Inst
	Attrs    []*Attribute
	Type     Type
	Default  Expr
	Pos      source.Pos
}

// FuncDecl is a function or operator function. Params has one clause per
// curried parameter list.
type FuncDecl struct {
	Common
	Inst        *scope.Inst
	Operator    bool
	Generics    *GenericParamClause
	Params      [][]*Param
	Throws      ThrowKind
	ResultAttrs []*Attribute
	Result      Type
	Body        []Procedure
	HasBody     bool
	Scope       *scope.Scope
}

// EnumCase is one case name with associated value types or a raw value.
type EnumCase struct {
	Inst  *scope.Inst
	Assoc *TupleType
	Raw   Expr // *IntegerLiteral, *FloatLiteral or *StringLiteral
}

// EnumCaseDecl is a case line inside an enum.
//
//	indirect case Leaf(Int), Node(Tree, Tree)
type EnumCaseDecl struct {
	Attrs    []*Attribute
	Indirect bool
	Cases    []*EnumCase
	Pos      source.Pos
}

// EnumDecl is an enum. RawValue is set once a case carries a raw value;
// union-style and raw-value cases do not mix.
type EnumDecl struct {
	Common
	Indirect bool
	RawValue bool
	Inst     *scope.Inst
	Generics *GenericParamClause
	Inherits *Inheritance
	Members  []Decl
	Scope    *scope.Scope
}

// StructDecl is a struct.
type StructDecl struct {
	Common
	Inst     *scope.Inst
	Generics *GenericParamClause
	Inherits *Inheritance
	Members  []Decl
	Scope    *scope.Scope
}

// ClassDecl is a class.
type ClassDecl struct {
	Common
	Inst     *scope.Inst
	Generics *GenericParamClause
	Inherits *Inheritance
	Members  []Decl
	Scope    *scope.Scope
}

// ProtocolDecl is a protocol; its members are requirements without bodies.
type ProtocolDecl struct {
	Common
	Inst     *scope.Inst
	Inherits *Inheritance
	Members  []Decl
	Scope    *scope.Scope
}

// ExtensionDecl extends a named type. Inst.Extends is the ref of Type.
type ExtensionDecl struct {
	Common
	Inst     *scope.Inst
	Type     *IdentifierType
	Inherits *Inheritance
	Members  []Decl
	Scope    *scope.Scope
}

// Failable marks init? and init!.
type Failable int

const (
	NotFailable Failable = iota
	FailableOptional
	FailableForced
)

// InitDecl is an initializer.
type InitDecl struct {
	Common
	Failable Failable
	Generics *GenericParamClause
	Params   []*Param
	Throws   ThrowKind
	Body     []Procedure
	HasBody  bool
	Scope    *scope.Scope
}

// DeinitDecl is a deinitializer.
type DeinitDecl struct {
	Common
	Body  []Procedure
	Scope *scope.Scope
}

// SubscriptDecl is subscript(params) -> Result { get set }.
type SubscriptDecl struct {
	Common
	Params      []*Param
	ResultAttrs []*Attribute
	Result      Type
	Blocks      []*AccessorBlock
	GetKeyword  bool
	SetKeyword  bool
	Scope       *scope.Scope
}

// OperatorDecl declares a new operator.
//
//	infix operator <> { precedence 130 associativity left }
type OperatorDecl struct {
	Common
	Inst *scope.Inst
}

func (*ImportDecl) declNode()        {}
func (*PatternInitDecl) declNode()   {}
func (*VariableBlockDecl) declNode() {}
func (*TypealiasDecl) declNode()     {}
func (*FuncDecl) declNode()          {}
func (*EnumCaseDecl) declNode()      {}
func (*EnumDecl) declNode()          {}
func (*StructDecl) declNode()        {}
func (*ClassDecl) declNode()         {}
func (*ProtocolDecl) declNode()      {}
func (*ExtensionDecl) declNode()     {}
func (*InitDecl) declNode()          {}
func (*DeinitDecl) declNode()        {}
func (*SubscriptDecl) declNode()     {}
func (*OperatorDecl) declNode()      {}

func (*ImportDecl) procNode()        {}
func (*PatternInitDecl) procNode()   {}
func (*VariableBlockDecl) procNode() {}
func (*TypealiasDecl) procNode()     {}
func (*FuncDecl) procNode()          {}
func (*EnumCaseDecl) procNode()      {}
func (*EnumDecl) procNode()          {}
func (*StructDecl) procNode()        {}
func (*ClassDecl) procNode()         {}
func (*ProtocolDecl) procNode()      {}
func (*ExtensionDecl) procNode()     {}
func (*InitDecl) procNode()          {}
func (*DeinitDecl) procNode()        {}
func (*SubscriptDecl) procNode()     {}
func (*OperatorDecl) procNode()      {}
