package ast

import (
	"fmt"
	"io"
	"strings"

	"treeswift/pkg/scope"
)

// Dump writes an indented outline of the tree rooted at n. Refs show what
// they resolved to, or ? while unresolved.
func Dump(w io.Writer, n Node) error {
	p := &printer{w: w}
	return n.Accept(p)
}

// DumpString is Dump into a string.
func DumpString(n Node) string {
	var sb strings.Builder
	Dump(&sb, n)
	return sb.String()
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) node(n Node, format string, args ...any) error {
	line := strings.Repeat("  ", p.depth) + fmt.Sprintf(format, args...) + "\n"
	if _, err := io.WriteString(p.w, line); err != nil {
		return err
	}
	p.depth++
	defer func() { p.depth-- }()
	for _, c := range Children(n) {
		if err := c.Accept(p); err != nil {
			return err
		}
	}
	return nil
}

func ref(r *scope.Ref) string {
	switch {
	case r == nil:
		return ""
	case r.Inst == nil:
		return " -> ?"
	}
	return fmt.Sprintf(" -> %s", r.Inst)
}

func inst(i *scope.Inst) string {
	if i == nil {
		return "<nil>"
	}
	return i.Name
}

func label(l Label) string {
	if l == "" {
		return ""
	}
	return " " + string(l) + ":"
}

func common(c *Common) string {
	var parts []string
	if c.Access != scope.DefaultAccess {
		parts = append(parts, c.Access.String())
	}
	if c.SetterAccess != scope.DefaultAccess {
		parts = append(parts, c.SetterAccess.String()+"(set)")
	}
	for _, m := range c.Modifiers {
		parts = append(parts, m.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (p *printer) VisitModule(n *Module) error { return p.node(n, "Module %s", n.Name) }
func (p *printer) VisitFile(n *File) error     { return p.node(n, "File %s", n.Name) }

func (p *printer) VisitImportDecl(n *ImportDecl) error {
	kind := ""
	if n.Kind != "" {
		kind = n.Kind + " "
	}
	return p.node(n, "ImportDecl%s %s%s", common(&n.Common), kind, strings.Join(n.Path, "."))
}

func (p *printer) VisitPatternInitDecl(n *PatternInitDecl) error {
	kw := "var"
	if n.Constant {
		kw = "let"
	}
	return p.node(n, "PatternInitDecl%s %s", common(&n.Common), kw)
}

func (p *printer) VisitVariableBlockDecl(n *VariableBlockDecl) error {
	var kw []string
	if n.GetKeyword {
		kw = append(kw, "get")
	}
	if n.SetKeyword {
		kw = append(kw, "set")
	}
	suffix := ""
	if len(kw) > 0 {
		suffix = " { " + strings.Join(kw, " ") + " }"
	}
	return p.node(n, "VariableBlockDecl%s %s%s", common(&n.Common), inst(n.Inst), suffix)
}

func (p *printer) VisitAccessorBlock(n *AccessorBlock) error {
	if n.Param != nil {
		return p.node(n, "AccessorBlock %s(%s)", n.Kind, n.Param.Name)
	}
	return p.node(n, "AccessorBlock %s", n.Kind)
}

func (p *printer) VisitTypealiasDecl(n *TypealiasDecl) error {
	return p.node(n, "TypealiasDecl%s %s", common(&n.Common), inst(n.Inst))
}

func (p *printer) VisitFuncDecl(n *FuncDecl) error {
	sig := make([]string, len(n.Params))
	for i, clause := range n.Params {
		names := make([]string, len(clause))
		for j, prm := range clause {
			names[j] = prm.Name
		}
		sig[i] = "(" + strings.Join(names, ", ") + ")"
	}
	throws := ""
	if n.Throws != NoThrow {
		throws = " " + n.Throws.String()
	}
	return p.node(n, "FuncDecl%s %s%s%s", common(&n.Common), inst(n.Inst), strings.Join(sig, ""), throws)
}

func (p *printer) VisitEnumCaseDecl(n *EnumCaseDecl) error {
	names := make([]string, len(n.Cases))
	for i, c := range n.Cases {
		names[i] = inst(c.Inst)
	}
	return p.node(n, "EnumCaseDecl %s", strings.Join(names, ", "))
}

func (p *printer) VisitEnumDecl(n *EnumDecl) error {
	return p.node(n, "EnumDecl%s %s", common(&n.Common), inst(n.Inst))
}

func (p *printer) VisitStructDecl(n *StructDecl) error {
	return p.node(n, "StructDecl%s %s", common(&n.Common), inst(n.Inst))
}

func (p *printer) VisitClassDecl(n *ClassDecl) error {
	return p.node(n, "ClassDecl%s %s", common(&n.Common), inst(n.Inst))
}

func (p *printer) VisitProtocolDecl(n *ProtocolDecl) error {
	return p.node(n, "ProtocolDecl%s %s", common(&n.Common), inst(n.Inst))
}

func (p *printer) VisitExtensionDecl(n *ExtensionDecl) error {
	return p.node(n, "ExtensionDecl%s", common(&n.Common))
}

func (p *printer) VisitInitDecl(n *InitDecl) error {
	mark := ""
	switch n.Failable {
	case FailableOptional:
		mark = "?"
	case FailableForced:
		mark = "!"
	}
	return p.node(n, "InitDecl%s init%s", common(&n.Common), mark)
}

func (p *printer) VisitDeinitDecl(n *DeinitDecl) error { return p.node(n, "DeinitDecl") }

func (p *printer) VisitSubscriptDecl(n *SubscriptDecl) error {
	return p.node(n, "SubscriptDecl%s", common(&n.Common))
}

func (p *printer) VisitOperatorDecl(n *OperatorDecl) error {
	op := n.Inst.Operator
	if op == nil {
		return p.node(n, "OperatorDecl %s", inst(n.Inst))
	}
	return p.node(n, "OperatorDecl %s %s precedence %d associativity %s", op.Fixity, inst(n.Inst), op.Precedence, op.Associativity)
}

func (p *printer) VisitForFlow(n *ForFlow) error     { return p.node(n, "ForFlow%s", label(n.Label)) }
func (p *printer) VisitForInFlow(n *ForInFlow) error { return p.node(n, "ForInFlow%s", label(n.Label)) }
func (p *printer) VisitWhileFlow(n *WhileFlow) error { return p.node(n, "WhileFlow%s", label(n.Label)) }
func (p *printer) VisitRepeatWhileFlow(n *RepeatWhileFlow) error {
	return p.node(n, "RepeatWhileFlow%s", label(n.Label))
}
func (p *printer) VisitIfFlow(n *IfFlow) error       { return p.node(n, "IfFlow%s", label(n.Label)) }
func (p *printer) VisitGuardFlow(n *GuardFlow) error { return p.node(n, "GuardFlow") }
func (p *printer) VisitDeferFlow(n *DeferFlow) error { return p.node(n, "DeferFlow") }
func (p *printer) VisitDoFlow(n *DoFlow) error       { return p.node(n, "DoFlow") }
func (p *printer) VisitCatchFlow(n *CatchFlow) error { return p.node(n, "CatchFlow") }
func (p *printer) VisitSwitchFlow(n *SwitchFlow) error {
	return p.node(n, "SwitchFlow%s", label(n.Label))
}

func (p *printer) VisitCaseFlow(n *CaseFlow) error {
	if n.Default {
		return p.node(n, "CaseFlow default")
	}
	return p.node(n, "CaseFlow")
}

func (p *printer) VisitExprOp(n *ExprOp) error     { return p.node(n, "ExprOp") }
func (p *printer) VisitAssignOp(n *AssignOp) error { return p.node(n, "AssignOp") }
func (p *printer) VisitBreakOp(n *BreakOp) error   { return p.node(n, "BreakOp%s", label(n.Label)) }
func (p *printer) VisitContinueOp(n *ContinueOp) error {
	return p.node(n, "ContinueOp%s", label(n.Label))
}
func (p *printer) VisitFallthroughOp(n *FallthroughOp) error { return p.node(n, "FallthroughOp") }
func (p *printer) VisitReturnOp(n *ReturnOp) error           { return p.node(n, "ReturnOp") }
func (p *printer) VisitThrowOp(n *ThrowOp) error             { return p.node(n, "ThrowOp") }

func (p *printer) VisitTryExpr(n *TryExpr) error {
	if n.Forced {
		return p.node(n, "TryExpr try!")
	}
	return p.node(n, "TryExpr try")
}

func (p *printer) VisitBinaryExpr(n *BinaryExpr) error {
	return p.node(n, "BinaryExpr %s%s", n.Op, ref(n.Ref))
}

func (p *printer) VisitConditionalExpr(n *ConditionalExpr) error { return p.node(n, "ConditionalExpr") }
func (p *printer) VisitCastExpr(n *CastExpr) error               { return p.node(n, "CastExpr %s", n.Kind) }

func (p *printer) VisitPrefixExpr(n *PrefixExpr) error {
	return p.node(n, "PrefixExpr %s%s", n.Op, ref(n.Ref))
}

func (p *printer) VisitInOutExpr(n *InOutExpr) error { return p.node(n, "InOutExpr") }

func (p *printer) VisitPostfixOpExpr(n *PostfixOpExpr) error {
	return p.node(n, "PostfixOpExpr %s%s", n.Op, ref(n.Ref))
}

func (p *printer) VisitCallExpr(n *CallExpr) error {
	labels := make([]string, len(n.Args))
	for i, a := range n.Args {
		labels[i] = a.Label + ":"
	}
	return p.node(n, "CallExpr (%s)", strings.Join(labels, ""))
}

func (p *printer) VisitMemberExpr(n *MemberExpr) error {
	switch n.Kind {
	case MemberUnnamed:
		return p.node(n, "MemberExpr .%d", n.Index)
	case MemberInit:
		return p.node(n, "MemberExpr .init")
	case MemberSelf:
		return p.node(n, "MemberExpr .self")
	case MemberDynamicType:
		return p.node(n, "MemberExpr .dynamicType")
	}
	return p.node(n, "MemberExpr .%s", n.Name)
}

func (p *printer) VisitSubscriptExpr(n *SubscriptExpr) error     { return p.node(n, "SubscriptExpr") }
func (p *printer) VisitForcedValueExpr(n *ForcedValueExpr) error { return p.node(n, "ForcedValueExpr") }
func (p *printer) VisitOptionalChainExpr(n *OptionalChainExpr) error {
	return p.node(n, "OptionalChainExpr")
}

func (p *printer) VisitIdentExpr(n *IdentExpr) error {
	return p.node(n, "IdentExpr %s%s", n.Name, ref(n.Ref))
}

func (p *printer) VisitImplicitParamExpr(n *ImplicitParamExpr) error {
	return p.node(n, "ImplicitParamExpr $%d%s", n.Index, ref(n.Ref))
}

func (p *printer) VisitIntegerLiteral(n *IntegerLiteral) error {
	return p.node(n, "IntegerLiteral %d", n.Value)
}

func (p *printer) VisitFloatLiteral(n *FloatLiteral) error {
	return p.node(n, "FloatLiteral %g", n.Value)
}
func (p *printer) VisitStringLiteral(n *StringLiteral) error {
	return p.node(n, "StringLiteral %q", n.Value)
}
func (p *printer) VisitBoolLiteral(n *BoolLiteral) error   { return p.node(n, "BoolLiteral %t", n.Value) }
func (p *printer) VisitNilLiteral(n *NilLiteral) error     { return p.node(n, "NilLiteral") }
func (p *printer) VisitArrayLiteral(n *ArrayLiteral) error { return p.node(n, "ArrayLiteral") }
func (p *printer) VisitDictLiteral(n *DictLiteral) error   { return p.node(n, "DictLiteral") }

func (p *printer) VisitSelfExpr(n *SelfExpr) error {
	return p.node(n, "SelfExpr%s", selfSuffix(n.Kind, n.Name))
}

func (p *printer) VisitSuperExpr(n *SuperExpr) error {
	return p.node(n, "SuperExpr%s", selfSuffix(n.Kind, n.Name))
}

func selfSuffix(k SelfKind, name string) string {
	switch k {
	case SelfInit:
		return " .init"
	case SelfMember:
		return " ." + name
	case SelfSubscript:
		return " []"
	}
	return ""
}

func (p *printer) VisitClosureExpr(n *ClosureExpr) error {
	names := make([]string, len(n.Params))
	for i, prm := range n.Params {
		names[i] = prm.Name
	}
	return p.node(n, "ClosureExpr (%s)", strings.Join(names, ", "))
}

func (p *printer) VisitTupleExpr(n *TupleExpr) error { return p.node(n, "TupleExpr") }

func (p *printer) VisitImplicitMemberExpr(n *ImplicitMemberExpr) error {
	return p.node(n, "ImplicitMemberExpr .%s%s", n.Name, ref(n.Ref))
}

func (p *printer) VisitWildcardExpr(n *WildcardExpr) error { return p.node(n, "WildcardExpr") }

func (p *printer) VisitIdentityPattern(n *IdentityPattern) error { return p.node(n, "IdentityPattern") }
func (p *printer) VisitBooleanPattern(n *BooleanPattern) error   { return p.node(n, "BooleanPattern") }

func (p *printer) VisitIdentifierPattern(n *IdentifierPattern) error {
	kind := "?"
	if n.Inst != nil {
		kind = n.Inst.Kind.String()
	}
	return p.node(n, "IdentifierPattern %s %s", kind, n.Name)
}

func (p *printer) VisitWildcardPattern(n *WildcardPattern) error { return p.node(n, "WildcardPattern") }
func (p *printer) VisitTuplePattern(n *TuplePattern) error       { return p.node(n, "TuplePattern") }

func (p *printer) VisitBindingPattern(n *BindingPattern) error {
	if n.Constant {
		return p.node(n, "BindingPattern let")
	}
	return p.node(n, "BindingPattern var")
}

func (p *printer) VisitOptionalPattern(n *OptionalPattern) error { return p.node(n, "OptionalPattern") }
func (p *printer) VisitTypeCastingPattern(n *TypeCastingPattern) error {
	return p.node(n, "TypeCastingPattern")
}
func (p *printer) VisitTypePattern(n *TypePattern) error { return p.node(n, "TypePattern") }

func (p *printer) VisitEnumCasePattern(n *EnumCasePattern) error {
	name := n.Ref.Name
	if n.Ref.ClassName != "" {
		name = n.Ref.ClassName + "." + name
	}
	return p.node(n, "EnumCasePattern %s%s", name, ref(n.Ref))
}

func (p *printer) VisitExpressionPattern(n *ExpressionPattern) error {
	return p.node(n, "ExpressionPattern")
}

func (p *printer) VisitIdentifierType(n *IdentifierType) error {
	return p.node(n, "IdentifierType %s%s", n.Name, ref(n.Ref))
}

func (p *printer) VisitArrayType(n *ArrayType) error           { return p.node(n, "ArrayType") }
func (p *printer) VisitDictionaryType(n *DictionaryType) error { return p.node(n, "DictionaryType") }
func (p *printer) VisitTupleType(n *TupleType) error           { return p.node(n, "TupleType %s", n) }
func (p *printer) VisitProtocolCompositionType(n *ProtocolCompositionType) error {
	return p.node(n, "ProtocolCompositionType")
}
func (p *printer) VisitFunctionType(n *FunctionType) error {
	if n.Throws != NoThrow {
		return p.node(n, "FunctionType %s", n.Throws)
	}
	return p.node(n, "FunctionType")
}
func (p *printer) VisitOptionalType(n *OptionalType) error { return p.node(n, "OptionalType") }
func (p *printer) VisitImplicitlyUnwrappedOptionalType(n *ImplicitlyUnwrappedOptionalType) error {
	return p.node(n, "ImplicitlyUnwrappedOptionalType")
}
func (p *printer) VisitMetaType(n *MetaType) error         { return p.node(n, "MetaType") }
func (p *printer) VisitMetaProtocol(n *MetaProtocol) error { return p.node(n, "MetaProtocol") }

func (p *printer) VisitGenericParamClause(n *GenericParamClause) error {
	names := make([]string, len(n.Params))
	for i, g := range n.Params {
		names[i] = inst(g.Inst)
	}
	return p.node(n, "GenericParamClause <%s>", strings.Join(names, ", "))
}

func (p *printer) VisitAttribute(n *Attribute) error { return p.node(n, "Attribute %s", n) }
