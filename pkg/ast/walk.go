package ast

// Children returns the direct child nodes of n in source order. Nil
// optional parts are skipped.
func Children(n Node) []Node {
	var c collector
	switch n := n.(type) {
	case *Module:
		for _, f := range n.Files {
			c.add(f)
		}
	case *File:
		c.procs(n.Procedures)

	case *ImportDecl:
		c.attrs(n.Attrs)
	case *PatternInitDecl:
		c.attrs(n.Attrs)
		for _, pi := range n.Inits {
			c.add(pi.Pattern)
			c.add(pi.Init)
		}
	case *VariableBlockDecl:
		c.attrs(n.Attrs)
		c.add(n.Annotation)
		c.add(n.Init)
		for _, b := range n.Blocks {
			c.add(b)
		}
	case *AccessorBlock:
		c.attrs(n.Attrs)
		c.procs(n.Body)
	case *TypealiasDecl:
		c.attrs(n.Attrs)
		c.inherits(n.Inherits)
		c.add(n.Type)
	case *FuncDecl:
		c.attrs(n.Attrs)
		c.generics(n.Generics)
		for _, clause := range n.Params {
			c.params(clause)
		}
		c.attrs(n.ResultAttrs)
		c.add(n.Result)
		c.procs(n.Body)
	case *EnumCaseDecl:
		c.attrs(n.Attrs)
		for _, ec := range n.Cases {
			if ec.Assoc != nil {
				c.add(ec.Assoc)
			}
			c.add(ec.Raw)
		}
	case *EnumDecl:
		c.attrs(n.Attrs)
		c.generics(n.Generics)
		c.inherits(n.Inherits)
		c.decls(n.Members)
	case *StructDecl:
		c.attrs(n.Attrs)
		c.generics(n.Generics)
		c.inherits(n.Inherits)
		c.decls(n.Members)
	case *ClassDecl:
		c.attrs(n.Attrs)
		c.generics(n.Generics)
		c.inherits(n.Inherits)
		c.decls(n.Members)
	case *ProtocolDecl:
		c.attrs(n.Attrs)
		c.inherits(n.Inherits)
		c.decls(n.Members)
	case *ExtensionDecl:
		c.attrs(n.Attrs)
		c.add(n.Type)
		c.inherits(n.Inherits)
		c.decls(n.Members)
	case *InitDecl:
		c.attrs(n.Attrs)
		c.generics(n.Generics)
		c.params(n.Params)
		c.procs(n.Body)
	case *DeinitDecl:
		c.attrs(n.Attrs)
		c.procs(n.Body)
	case *SubscriptDecl:
		c.attrs(n.Attrs)
		c.params(n.Params)
		c.attrs(n.ResultAttrs)
		c.add(n.Result)
		for _, b := range n.Blocks {
			c.add(b)
		}
	case *OperatorDecl:
		c.attrs(n.Attrs)

	case *ForFlow:
		c.add(n.Init)
		c.add(n.Cond)
		c.add(n.Step)
		c.procs(n.Body)
	case *ForInFlow:
		c.add(n.Pattern)
		c.add(n.Sequence)
		c.add(n.Where)
		c.procs(n.Body)
	case *WhileFlow:
		c.conds(n.Conds)
		c.procs(n.Body)
	case *RepeatWhileFlow:
		c.procs(n.Body)
		c.add(n.Cond)
	case *IfFlow:
		c.conds(n.Conds)
		c.procs(n.Body)
		c.procs(n.Else)
		if n.ElseIf != nil {
			c.add(n.ElseIf)
		}
	case *GuardFlow:
		c.conds(n.Conds)
		c.procs(n.Body)
	case *DeferFlow:
		c.procs(n.Body)
	case *DoFlow:
		c.procs(n.Body)
		for _, cf := range n.Catches {
			c.add(cf)
		}
	case *CatchFlow:
		c.add(n.Pattern)
		c.add(n.Where)
		c.procs(n.Body)
	case *SwitchFlow:
		c.add(n.Subject)
		for _, cf := range n.Cases {
			c.add(cf)
		}
	case *CaseFlow:
		for _, it := range n.Items {
			c.add(it.Pattern)
			c.add(it.Where)
		}
		c.procs(n.Body)
	case *ExprOp:
		c.add(n.Expr)
	case *AssignOp:
		c.add(n.Target)
		c.add(n.Value)
	case *ReturnOp:
		c.add(n.Value)
	case *ThrowOp:
		c.add(n.Value)

	case *TryExpr:
		c.add(n.Expr)
	case *BinaryExpr:
		c.add(n.Left)
		c.add(n.Right)
	case *ConditionalExpr:
		c.add(n.Cond)
		c.add(n.Then)
		c.add(n.Else)
	case *CastExpr:
		c.add(n.Expr)
		c.add(n.Type)
	case *PrefixExpr:
		c.add(n.Expr)
	case *InOutExpr:
		c.add(n.Expr)
	case *PostfixOpExpr:
		c.add(n.Expr)
	case *CallExpr:
		c.add(n.Fn)
		c.tuple(n.Args)
		if n.Trailing != nil {
			c.add(n.Trailing)
		}
	case *MemberExpr:
		c.add(n.Expr)
		c.types(n.Args)
	case *SubscriptExpr:
		c.add(n.Expr)
		c.exprs(n.Index)
	case *ForcedValueExpr:
		c.add(n.Expr)
	case *OptionalChainExpr:
		c.add(n.Expr)
	case *IdentExpr:
		c.types(n.Args)
	case *ArrayLiteral:
		c.exprs(n.Elems)
	case *DictLiteral:
		for _, e := range n.Entries {
			c.add(e.Key)
			c.add(e.Value)
		}
	case *SelfExpr:
		c.exprs(n.Index)
	case *SuperExpr:
		c.exprs(n.Index)
	case *ClosureExpr:
		for _, cp := range n.Captures {
			c.add(cp.Expr)
		}
		c.params(n.Params)
		c.add(n.Result)
		c.procs(n.Body)
	case *TupleExpr:
		c.tuple(n.Elems)

	case *IdentifierPattern:
		c.add(n.Annotation)
	case *WildcardPattern:
		c.add(n.Annotation)
	case *TuplePattern:
		for _, e := range n.Elems {
			c.add(e.Pattern)
		}
		c.add(n.Annotation)
	case *BindingPattern:
		c.add(n.Pattern)
	case *OptionalPattern:
		c.add(n.Pattern)
	case *TypeCastingPattern:
		c.add(n.Pattern)
		c.add(n.Type)
	case *TypePattern:
		c.add(n.Type)
	case *EnumCasePattern:
		if n.Tuple != nil {
			c.add(n.Tuple)
		}
	case *ExpressionPattern:
		c.add(n.Expr)

	case *IdentifierType:
		c.types(n.Args)
		if n.Nested != nil {
			c.add(n.Nested)
		}
	case *ArrayType:
		c.add(n.Elem)
	case *DictionaryType:
		c.add(n.Key)
		c.add(n.Value)
	case *TupleType:
		for _, e := range n.Elems {
			c.attrs(e.Attrs)
			c.add(e.Type)
		}
	case *ProtocolCompositionType:
		for _, t := range n.Types {
			c.add(t)
		}
	case *FunctionType:
		c.add(n.Arg)
		c.add(n.Result)
	case *OptionalType:
		c.add(n.Wrapped)
	case *ImplicitlyUnwrappedOptionalType:
		c.add(n.Wrapped)
	case *MetaType:
		c.add(n.Of)
	case *MetaProtocol:
		c.add(n.Of)

	case *GenericParamClause:
		for _, p := range n.Params {
			c.add(p.Conformance)
		}
		for _, r := range n.Requirements {
			c.add(r.Left)
			c.add(r.Right)
		}
	}
	return c.nodes
}

// Inspect traverses the tree depth first, calling fn before the children
// of each node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

type collector struct {
	nodes []Node
}

// add skips nil interfaces and typed nil pointers of the optional parts.
func (c *collector) add(n Node) {
	if n == nil || isNilNode(n) {
		return
	}
	c.nodes = append(c.nodes, n)
}

func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *IdentifierType:
		return n == nil
	case *TuplePattern:
		return n == nil
	case *TupleType:
		return n == nil
	case *ClosureExpr:
		return n == nil
	case *IfFlow:
		return n == nil
	case *GenericParamClause:
		return n == nil
	}
	return false
}

func (c *collector) attrs(as []*Attribute) {
	for _, a := range as {
		c.add(a)
	}
}

func (c *collector) procs(ps []Procedure) {
	for _, p := range ps {
		c.add(p)
	}
}

func (c *collector) decls(ds []Decl) {
	for _, d := range ds {
		c.add(d)
	}
}

func (c *collector) exprs(es []Expr) {
	for _, e := range es {
		c.add(e)
	}
}

func (c *collector) types(ts []Type) {
	for _, t := range ts {
		c.add(t)
	}
}

func (c *collector) tuple(es []*TupleElem) {
	for _, e := range es {
		c.add(e.Expr)
	}
}

func (c *collector) params(ps []*Param) {
	for _, p := range ps {
		c.attrs(p.Attrs)
		c.add(p.Type)
		c.add(p.Default)
	}
}

func (c *collector) generics(g *GenericParamClause) {
	if g != nil {
		c.add(g)
	}
}

func (c *collector) inherits(in *Inheritance) {
	if in == nil {
		return
	}
	for _, t := range in.Types {
		c.add(t)
	}
}

func (c *collector) conds(cs []*Condition) {
	for _, cd := range cs {
		c.add(cd.Pattern)
		c.add(cd.Expr)
		c.add(cd.Where)
	}
}
