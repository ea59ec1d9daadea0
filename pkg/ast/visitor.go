package ast

// Visitor has one method per concrete node. The type checker and the code
// generator implement it; Dump is the implementation in this package.
type Visitor interface {
	// Roots
	VisitModule(n *Module) error
	VisitFile(n *File) error

	// Declarations
	VisitImportDecl(n *ImportDecl) error
	VisitPatternInitDecl(n *PatternInitDecl) error
	VisitVariableBlockDecl(n *VariableBlockDecl) error
	VisitAccessorBlock(n *AccessorBlock) error
	VisitTypealiasDecl(n *TypealiasDecl) error
	VisitFuncDecl(n *FuncDecl) error
	VisitEnumCaseDecl(n *EnumCaseDecl) error
	VisitEnumDecl(n *EnumDecl) error
	VisitStructDecl(n *StructDecl) error
	VisitClassDecl(n *ClassDecl) error
	VisitProtocolDecl(n *ProtocolDecl) error
	VisitExtensionDecl(n *ExtensionDecl) error
	VisitInitDecl(n *InitDecl) error
	VisitDeinitDecl(n *DeinitDecl) error
	VisitSubscriptDecl(n *SubscriptDecl) error
	VisitOperatorDecl(n *OperatorDecl) error

	// Flows and operations
	VisitForFlow(n *ForFlow) error
	VisitForInFlow(n *ForInFlow) error
	VisitWhileFlow(n *WhileFlow) error
	VisitRepeatWhileFlow(n *RepeatWhileFlow) error
	VisitIfFlow(n *IfFlow) error
	VisitGuardFlow(n *GuardFlow) error
	VisitDeferFlow(n *DeferFlow) error
	VisitDoFlow(n *DoFlow) error
	VisitCatchFlow(n *CatchFlow) error
	VisitSwitchFlow(n *SwitchFlow) error
	VisitCaseFlow(n *CaseFlow) error
	VisitExprOp(n *ExprOp) error
	VisitAssignOp(n *AssignOp) error
	VisitBreakOp(n *BreakOp) error
	VisitContinueOp(n *ContinueOp) error
	VisitFallthroughOp(n *FallthroughOp) error
	VisitReturnOp(n *ReturnOp) error
	VisitThrowOp(n *ThrowOp) error

	// Expressions
	VisitTryExpr(n *TryExpr) error
	VisitBinaryExpr(n *BinaryExpr) error
	VisitConditionalExpr(n *ConditionalExpr) error
	VisitCastExpr(n *CastExpr) error
	VisitPrefixExpr(n *PrefixExpr) error
	VisitInOutExpr(n *InOutExpr) error
	VisitPostfixOpExpr(n *PostfixOpExpr) error
	VisitCallExpr(n *CallExpr) error
	VisitMemberExpr(n *MemberExpr) error
	VisitSubscriptExpr(n *SubscriptExpr) error
	VisitForcedValueExpr(n *ForcedValueExpr) error
	VisitOptionalChainExpr(n *OptionalChainExpr) error
	VisitIdentExpr(n *IdentExpr) error
	VisitImplicitParamExpr(n *ImplicitParamExpr) error
	VisitIntegerLiteral(n *IntegerLiteral) error
	VisitFloatLiteral(n *FloatLiteral) error
	VisitStringLiteral(n *StringLiteral) error
	VisitBoolLiteral(n *BoolLiteral) error
	VisitNilLiteral(n *NilLiteral) error
	VisitArrayLiteral(n *ArrayLiteral) error
	VisitDictLiteral(n *DictLiteral) error
	VisitSelfExpr(n *SelfExpr) error
	VisitSuperExpr(n *SuperExpr) error
	VisitClosureExpr(n *ClosureExpr) error
	VisitTupleExpr(n *TupleExpr) error
	VisitImplicitMemberExpr(n *ImplicitMemberExpr) error
	VisitWildcardExpr(n *WildcardExpr) error

	// Patterns
	VisitIdentityPattern(n *IdentityPattern) error
	VisitBooleanPattern(n *BooleanPattern) error
	VisitIdentifierPattern(n *IdentifierPattern) error
	VisitWildcardPattern(n *WildcardPattern) error
	VisitTuplePattern(n *TuplePattern) error
	VisitBindingPattern(n *BindingPattern) error
	VisitOptionalPattern(n *OptionalPattern) error
	VisitTypeCastingPattern(n *TypeCastingPattern) error
	VisitTypePattern(n *TypePattern) error
	VisitEnumCasePattern(n *EnumCasePattern) error
	VisitExpressionPattern(n *ExpressionPattern) error

	// Types
	VisitIdentifierType(n *IdentifierType) error
	VisitArrayType(n *ArrayType) error
	VisitDictionaryType(n *DictionaryType) error
	VisitTupleType(n *TupleType) error
	VisitProtocolCompositionType(n *ProtocolCompositionType) error
	VisitFunctionType(n *FunctionType) error
	VisitOptionalType(n *OptionalType) error
	VisitImplicitlyUnwrappedOptionalType(n *ImplicitlyUnwrappedOptionalType) error
	VisitMetaType(n *MetaType) error
	VisitMetaProtocol(n *MetaProtocol) error

	// Generics and attributes
	VisitGenericParamClause(n *GenericParamClause) error
	VisitAttribute(n *Attribute) error
}

func (n *ImportDecl) Accept(v Visitor) error              { return v.VisitImportDecl(n) }
func (n *PatternInitDecl) Accept(v Visitor) error         { return v.VisitPatternInitDecl(n) }
func (n *VariableBlockDecl) Accept(v Visitor) error       { return v.VisitVariableBlockDecl(n) }
func (n *AccessorBlock) Accept(v Visitor) error           { return v.VisitAccessorBlock(n) }
func (n *TypealiasDecl) Accept(v Visitor) error           { return v.VisitTypealiasDecl(n) }
func (n *FuncDecl) Accept(v Visitor) error                { return v.VisitFuncDecl(n) }
func (n *EnumCaseDecl) Accept(v Visitor) error            { return v.VisitEnumCaseDecl(n) }
func (n *EnumDecl) Accept(v Visitor) error                { return v.VisitEnumDecl(n) }
func (n *StructDecl) Accept(v Visitor) error              { return v.VisitStructDecl(n) }
func (n *ClassDecl) Accept(v Visitor) error               { return v.VisitClassDecl(n) }
func (n *ProtocolDecl) Accept(v Visitor) error            { return v.VisitProtocolDecl(n) }
func (n *ExtensionDecl) Accept(v Visitor) error           { return v.VisitExtensionDecl(n) }
func (n *InitDecl) Accept(v Visitor) error                { return v.VisitInitDecl(n) }
func (n *DeinitDecl) Accept(v Visitor) error              { return v.VisitDeinitDecl(n) }
func (n *SubscriptDecl) Accept(v Visitor) error           { return v.VisitSubscriptDecl(n) }
func (n *OperatorDecl) Accept(v Visitor) error            { return v.VisitOperatorDecl(n) }
func (n *ForFlow) Accept(v Visitor) error                 { return v.VisitForFlow(n) }
func (n *ForInFlow) Accept(v Visitor) error               { return v.VisitForInFlow(n) }
func (n *WhileFlow) Accept(v Visitor) error               { return v.VisitWhileFlow(n) }
func (n *RepeatWhileFlow) Accept(v Visitor) error         { return v.VisitRepeatWhileFlow(n) }
func (n *IfFlow) Accept(v Visitor) error                  { return v.VisitIfFlow(n) }
func (n *GuardFlow) Accept(v Visitor) error               { return v.VisitGuardFlow(n) }
func (n *DeferFlow) Accept(v Visitor) error               { return v.VisitDeferFlow(n) }
func (n *DoFlow) Accept(v Visitor) error                  { return v.VisitDoFlow(n) }
func (n *CatchFlow) Accept(v Visitor) error               { return v.VisitCatchFlow(n) }
func (n *SwitchFlow) Accept(v Visitor) error              { return v.VisitSwitchFlow(n) }
func (n *CaseFlow) Accept(v Visitor) error                { return v.VisitCaseFlow(n) }
func (n *ExprOp) Accept(v Visitor) error                  { return v.VisitExprOp(n) }
func (n *AssignOp) Accept(v Visitor) error                { return v.VisitAssignOp(n) }
func (n *BreakOp) Accept(v Visitor) error                 { return v.VisitBreakOp(n) }
func (n *ContinueOp) Accept(v Visitor) error              { return v.VisitContinueOp(n) }
func (n *FallthroughOp) Accept(v Visitor) error           { return v.VisitFallthroughOp(n) }
func (n *ReturnOp) Accept(v Visitor) error                { return v.VisitReturnOp(n) }
func (n *ThrowOp) Accept(v Visitor) error                 { return v.VisitThrowOp(n) }
func (n *TryExpr) Accept(v Visitor) error                 { return v.VisitTryExpr(n) }
func (n *BinaryExpr) Accept(v Visitor) error              { return v.VisitBinaryExpr(n) }
func (n *ConditionalExpr) Accept(v Visitor) error         { return v.VisitConditionalExpr(n) }
func (n *CastExpr) Accept(v Visitor) error                { return v.VisitCastExpr(n) }
func (n *PrefixExpr) Accept(v Visitor) error              { return v.VisitPrefixExpr(n) }
func (n *InOutExpr) Accept(v Visitor) error               { return v.VisitInOutExpr(n) }
func (n *PostfixOpExpr) Accept(v Visitor) error           { return v.VisitPostfixOpExpr(n) }
func (n *CallExpr) Accept(v Visitor) error                { return v.VisitCallExpr(n) }
func (n *MemberExpr) Accept(v Visitor) error              { return v.VisitMemberExpr(n) }
func (n *SubscriptExpr) Accept(v Visitor) error           { return v.VisitSubscriptExpr(n) }
func (n *ForcedValueExpr) Accept(v Visitor) error         { return v.VisitForcedValueExpr(n) }
func (n *OptionalChainExpr) Accept(v Visitor) error       { return v.VisitOptionalChainExpr(n) }
func (n *IdentExpr) Accept(v Visitor) error               { return v.VisitIdentExpr(n) }
func (n *ImplicitParamExpr) Accept(v Visitor) error       { return v.VisitImplicitParamExpr(n) }
func (n *IntegerLiteral) Accept(v Visitor) error          { return v.VisitIntegerLiteral(n) }
func (n *FloatLiteral) Accept(v Visitor) error            { return v.VisitFloatLiteral(n) }
func (n *StringLiteral) Accept(v Visitor) error           { return v.VisitStringLiteral(n) }
func (n *BoolLiteral) Accept(v Visitor) error             { return v.VisitBoolLiteral(n) }
func (n *NilLiteral) Accept(v Visitor) error              { return v.VisitNilLiteral(n) }
func (n *ArrayLiteral) Accept(v Visitor) error            { return v.VisitArrayLiteral(n) }
func (n *DictLiteral) Accept(v Visitor) error             { return v.VisitDictLiteral(n) }
func (n *SelfExpr) Accept(v Visitor) error                { return v.VisitSelfExpr(n) }
func (n *SuperExpr) Accept(v Visitor) error               { return v.VisitSuperExpr(n) }
func (n *ClosureExpr) Accept(v Visitor) error             { return v.VisitClosureExpr(n) }
func (n *TupleExpr) Accept(v Visitor) error               { return v.VisitTupleExpr(n) }
func (n *ImplicitMemberExpr) Accept(v Visitor) error      { return v.VisitImplicitMemberExpr(n) }
func (n *WildcardExpr) Accept(v Visitor) error            { return v.VisitWildcardExpr(n) }
func (n *IdentityPattern) Accept(v Visitor) error         { return v.VisitIdentityPattern(n) }
func (n *BooleanPattern) Accept(v Visitor) error          { return v.VisitBooleanPattern(n) }
func (n *IdentifierPattern) Accept(v Visitor) error       { return v.VisitIdentifierPattern(n) }
func (n *WildcardPattern) Accept(v Visitor) error         { return v.VisitWildcardPattern(n) }
func (n *TuplePattern) Accept(v Visitor) error            { return v.VisitTuplePattern(n) }
func (n *BindingPattern) Accept(v Visitor) error          { return v.VisitBindingPattern(n) }
func (n *OptionalPattern) Accept(v Visitor) error         { return v.VisitOptionalPattern(n) }
func (n *TypeCastingPattern) Accept(v Visitor) error      { return v.VisitTypeCastingPattern(n) }
func (n *TypePattern) Accept(v Visitor) error             { return v.VisitTypePattern(n) }
func (n *EnumCasePattern) Accept(v Visitor) error         { return v.VisitEnumCasePattern(n) }
func (n *ExpressionPattern) Accept(v Visitor) error       { return v.VisitExpressionPattern(n) }
func (n *IdentifierType) Accept(v Visitor) error          { return v.VisitIdentifierType(n) }
func (n *ArrayType) Accept(v Visitor) error               { return v.VisitArrayType(n) }
func (n *DictionaryType) Accept(v Visitor) error          { return v.VisitDictionaryType(n) }
func (n *TupleType) Accept(v Visitor) error               { return v.VisitTupleType(n) }
func (n *ProtocolCompositionType) Accept(v Visitor) error { return v.VisitProtocolCompositionType(n) }
func (n *FunctionType) Accept(v Visitor) error            { return v.VisitFunctionType(n) }
func (n *OptionalType) Accept(v Visitor) error            { return v.VisitOptionalType(n) }
func (n *ImplicitlyUnwrappedOptionalType) Accept(v Visitor) error {
	return v.VisitImplicitlyUnwrappedOptionalType(n)
}
func (n *MetaType) Accept(v Visitor) error           { return v.VisitMetaType(n) }
func (n *MetaProtocol) Accept(v Visitor) error       { return v.VisitMetaProtocol(n) }
func (n *GenericParamClause) Accept(v Visitor) error { return v.VisitGenericParamClause(n) }
func (n *Attribute) Accept(v Visitor) error          { return v.VisitAttribute(n) }
