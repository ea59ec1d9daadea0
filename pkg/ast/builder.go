package ast

import (
	"fmt"

	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// BuildError reports a declaration that cannot be finished.
type BuildError struct {
	Pos source.Pos
	Msg string
}

func (e *BuildError) Error() string { return e.Msg }

func buildErr(pos source.Pos, format string, args ...any) *BuildError {
	return &BuildError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// DeclKind selects the modifier rules DeclBuilder.Check applies.
type DeclKind int

const (
	ImportKind DeclKind = iota
	VarKind
	TypealiasKind
	FuncKind
	EnumKind
	StructKind
	ClassKind
	ProtocolKind
	ExtensionKind
	InitKind
	DeinitKind
	SubscriptKind
	OperatorKind
	EnumCaseKind
)

var declKindWords = [...]string{
	ImportKind:    "import",
	VarKind:       "var",
	TypealiasKind: "typealias",
	FuncKind:      "func",
	EnumKind:      "enum",
	StructKind:    "struct",
	ClassKind:     "class",
	ProtocolKind:  "protocol",
	ExtensionKind: "extension",
	InitKind:      "init",
	DeinitKind:    "deinit",
	SubscriptKind: "subscript",
	OperatorKind:  "operator",
	EnumCaseKind:  "case",
}

func (k DeclKind) String() string { return declKindWords[k] }

// DeclBuilder collects the attributes, access level and modifiers written
// before a declaration keyword. The prefix grammar is the same for every
// declaration; Check applies the rules of the declaration it turned out to
// introduce.
type DeclBuilder struct {
	c         Common
	hasAccess bool
	hasSetter bool
}

// NewDeclBuilder starts a prefix at pos.
func NewDeclBuilder(pos source.Pos) *DeclBuilder {
	return &DeclBuilder{c: Common{Pos: pos}}
}

// AddAttr appends an attribute.
func (b *DeclBuilder) AddAttr(a *Attribute) { b.c.Attrs = append(b.c.Attrs, a) }

// SetAccess records private, internal or public, or their (set) forms.
func (b *DeclBuilder) SetAccess(level scope.AccessLevel, setter bool, pos source.Pos) error {
	if setter {
		if b.hasSetter {
			return buildErr(pos, "duplicate access level modifier")
		}
		b.hasSetter = true
		b.c.SetterAccess = level
		return nil
	}
	if b.hasAccess {
		return buildErr(pos, "duplicate access level modifier")
	}
	b.hasAccess = true
	b.c.Access = level
	return nil
}

// AddModifier records a modifier once.
func (b *DeclBuilder) AddModifier(m Modifier, pos source.Pos) error {
	if b.c.Has(m) {
		return buildErr(pos, "duplicate modifier '%s'", m)
	}
	b.c.Modifiers = append(b.c.Modifiers, m)
	return nil
}

// Empty reports whether nothing was collected.
func (b *DeclBuilder) Empty() bool {
	return len(b.c.Attrs) == 0 && len(b.c.Modifiers) == 0 && !b.hasAccess && !b.hasSetter
}

// Fixity returns the operator fixity modifier, if exactly one was given.
func (b *DeclBuilder) Fixity() (scope.Fixity, bool) {
	var fixes []scope.Fixity
	for _, m := range b.c.Modifiers {
		switch m {
		case ModPrefix:
			fixes = append(fixes, scope.Prefix)
		case ModPostfix:
			fixes = append(fixes, scope.Postfix)
		case ModInfix:
			fixes = append(fixes, scope.Infix)
		}
	}
	if len(fixes) != 1 {
		return scope.Infix, false
	}
	return fixes[0], true
}

// Check validates the prefix for a declaration of kind k.
func (b *DeclBuilder) Check(k DeclKind) error {
	pos := b.c.Pos
	only := func(allowed ...Modifier) error {
		for _, m := range b.c.Modifiers {
			ok := false
			for _, a := range allowed {
				ok = ok || m == a
			}
			if !ok {
				return buildErr(pos, "unexpected declaration modifier '%s' before '%s'", m, k)
			}
		}
		return nil
	}
	switch k {
	case ImportKind, DeinitKind:
		if len(b.c.Modifiers) > 0 || b.hasAccess || b.hasSetter {
			return buildErr(pos, "unexpected modifier before '%s'", k)
		}
	case TypealiasKind, StructKind, ProtocolKind:
		return only()
	case EnumKind:
		return only(ModIndirect)
	case EnumCaseKind:
		if b.hasAccess || b.hasSetter {
			return buildErr(pos, "unexpected access level before 'case'")
		}
		return only(ModIndirect)
	case ClassKind:
		return only(ModFinal)
	case ExtensionKind:
		if len(b.c.Attrs) > 0 {
			return buildErr(pos, "unexpected attribute before 'extension'")
		}
		return only()
	case OperatorKind:
		if len(b.c.Attrs) > 0 {
			return buildErr(pos, "unexpected attribute before operator declaration")
		}
		if b.hasAccess || b.hasSetter {
			return buildErr(pos, "unexpected modifier before operator declaration")
		}
		if _, ok := b.Fixity(); !ok {
			return buildErr(pos, "operator declaration needs exactly one of prefix, postfix or infix")
		}
		return only(ModPrefix, ModPostfix, ModInfix)
	}
	return nil
}

// Common returns the collected prefix.
func (b *DeclBuilder) Common() Common { return b.c }

// FuncBuilder assembles functions, initializers and subscripts, whose
// parts become known one at a time while the parser walks the signature
// and the body. The Build methods refuse to return a declaration with a
// missing name, parameter clause or scope.
type FuncBuilder struct {
	common      Common
	inst        *scope.Inst
	operator    bool
	generics    *GenericParamClause
	params      [][]*Param
	throws      ThrowKind
	resultAttrs []*Attribute
	result      Type
	body        []Procedure
	hasBody     bool
	blocks      []*AccessorBlock
	getKeyword  bool
	setKeyword  bool
	scope       *scope.Scope
}

// NewFuncBuilder starts a declaration with the given prefix.
func NewFuncBuilder(c Common) *FuncBuilder { return &FuncBuilder{common: c} }

func (b *FuncBuilder) SetInst(inst *scope.Inst, operator bool) {
	b.inst = inst
	b.operator = operator
}

func (b *FuncBuilder) SetGenerics(g *GenericParamClause) { b.generics = g }
func (b *FuncBuilder) AddParams(ps []*Param)             { b.params = append(b.params, ps) }
func (b *FuncBuilder) SetThrows(t ThrowKind)             { b.throws = t }

func (b *FuncBuilder) SetResult(attrs []*Attribute, t Type) {
	b.resultAttrs = attrs
	b.result = t
}

func (b *FuncBuilder) SetBody(body []Procedure) {
	b.body = body
	b.hasBody = true
}

func (b *FuncBuilder) SetBlocks(blocks []*AccessorBlock, getKeyword, setKeyword bool) {
	b.blocks = blocks
	b.getKeyword = getKeyword
	b.setKeyword = setKeyword
}

func (b *FuncBuilder) SetScope(s *scope.Scope) { b.scope = s }

func (b *FuncBuilder) check(what string, named bool) error {
	if named && b.inst == nil {
		return buildErr(b.common.Pos, "%s has no name", what)
	}
	if len(b.params) == 0 {
		return buildErr(b.common.Pos, "%s has no parameter clause", what)
	}
	if b.scope == nil {
		return buildErr(b.common.Pos, "%s scope was not closed", what)
	}
	return nil
}

// BuildFunc finishes a function.
func (b *FuncBuilder) BuildFunc() (*FuncDecl, error) {
	if err := b.check("function", true); err != nil {
		return nil, err
	}
	return &FuncDecl{
		Common:      b.common,
		Inst:        b.inst,
		Operator:    b.operator,
		Generics:    b.generics,
		Params:      b.params,
		Throws:      b.throws,
		ResultAttrs: b.resultAttrs,
		Result:      b.result,
		Body:        b.body,
		HasBody:     b.hasBody,
		Scope:       b.scope,
	}, nil
}

// BuildInit finishes an initializer.
func (b *FuncBuilder) BuildInit(f Failable) (*InitDecl, error) {
	if err := b.check("initializer", false); err != nil {
		return nil, err
	}
	if len(b.params) > 1 {
		return nil, buildErr(b.common.Pos, "initializer cannot have curried parameters")
	}
	return &InitDecl{
		Common:   b.common,
		Failable: f,
		Generics: b.generics,
		Params:   b.params[0],
		Throws:   b.throws,
		Body:     b.body,
		HasBody:  b.hasBody,
		Scope:    b.scope,
	}, nil
}

// BuildSubscript finishes a subscript; it needs a result type.
func (b *FuncBuilder) BuildSubscript() (*SubscriptDecl, error) {
	if err := b.check("subscript", false); err != nil {
		return nil, err
	}
	if b.result == nil {
		return nil, buildErr(b.common.Pos, "subscript has no result type")
	}
	return &SubscriptDecl{
		Common:      b.common,
		Params:      b.params[0],
		ResultAttrs: b.resultAttrs,
		Result:      b.result,
		Blocks:      b.blocks,
		GetKeyword:  b.getKeyword,
		SetKeyword:  b.setKeyword,
		Scope:       b.scope,
	}, nil
}
