package scope

import "treeswift/pkg/source"

// PreludeName is the name of the module every program implicitly imports.
const PreludeName = "Swift"

var preludeTypes = []string{
	"Int", "Int8", "Int16", "Int32", "Int64",
	"UInt", "UInt8", "UInt16", "UInt32", "UInt64",
	"Double", "Float", "String", "Bool", "Character",
	"Void", "Any", "AnyObject", "Array", "Dictionary", "Set",
	"ErrorType",
}

var preludeFunctions = []string{"print", "println", "debugPrint", "assert", "precondition", "fatalError", "min", "max", "abs"}

type preludeOperator struct {
	name   string
	fixity Fixity
	prec   int
	assoc  Associativity
}

var preludeOperators = []preludeOperator{
	{"<<", Infix, 160, AssocNone},
	{">>", Infix, 160, AssocNone},
	{"*", Infix, 150, AssocLeft},
	{"/", Infix, 150, AssocLeft},
	{"%", Infix, 150, AssocLeft},
	{"&*", Infix, 150, AssocLeft},
	{"&", Infix, 150, AssocLeft},
	{"+", Infix, 140, AssocLeft},
	{"-", Infix, 140, AssocLeft},
	{"&+", Infix, 140, AssocLeft},
	{"&-", Infix, 140, AssocLeft},
	{"|", Infix, 140, AssocLeft},
	{"^", Infix, 140, AssocLeft},
	{"..<", Infix, 135, AssocNone},
	{"...", Infix, 135, AssocNone},
	{"??", Infix, 131, AssocRight},
	{"<", Infix, 130, AssocNone},
	{"<=", Infix, 130, AssocNone},
	{">", Infix, 130, AssocNone},
	{">=", Infix, 130, AssocNone},
	{"==", Infix, 130, AssocNone},
	{"!=", Infix, 130, AssocNone},
	{"===", Infix, 130, AssocNone},
	{"!==", Infix, 130, AssocNone},
	{"~=", Infix, 130, AssocNone},
	{"&&", Infix, 120, AssocLeft},
	{"||", Infix, 110, AssocLeft},
	{"*=", Infix, 90, AssocRight},
	{"/=", Infix, 90, AssocRight},
	{"%=", Infix, 90, AssocRight},
	{"+=", Infix, 90, AssocRight},
	{"-=", Infix, 90, AssocRight},
	{"<<=", Infix, 90, AssocRight},
	{">>=", Infix, 90, AssocRight},
	{"&=", Infix, 90, AssocRight},
	{"^=", Infix, 90, AssocRight},
	{"|=", Infix, 90, AssocRight},
	{"&&=", Infix, 90, AssocRight},
	{"||=", Infix, 90, AssocRight},
	{"!", Prefix, 0, AssocNone},
	{"~", Prefix, 0, AssocNone},
	{"+", Prefix, 0, AssocNone},
	{"-", Prefix, 0, AssocNone},
	{"++", Prefix, 0, AssocNone},
	{"--", Prefix, 0, AssocNone},
	{"++", Postfix, 0, AssocNone},
	{"--", Postfix, 0, AssocNone},
}

// Prelude builds the standard library module: the basic types, Optional,
// a few global functions and the standard operators with their
// precedences.
func Prelude() *Scope {
	root := newScope(Module, nil, source.Pos{})
	root.Name = PreludeName
	m := NewManager(root)

	must := func(inst *Inst, err error) *Inst {
		if err != nil {
			panic("scope: broken prelude: " + err.Error())
		}
		return inst
	}
	for _, name := range preludeTypes {
		must(m.Create(TypeInst, name, source.Pos{}))
	}
	for _, name := range preludeFunctions {
		must(m.Create(FunctionInst, name, source.Pos{}))
	}
	for _, op := range preludeOperators {
		inst := NewInst(OperatorInst, op.name, source.Pos{})
		inst.Operator = &OperatorInfo{Fixity: op.fixity, Precedence: op.prec, Associativity: op.assoc}
		must(inst, m.Declare(inst))
	}

	optional := must(m.Create(EnumInst, "Optional", source.Pos{}))
	m.EnterBody(optional, source.Pos{})
	must(m.Create(TypeInst, "Wrapped", source.Pos{}))
	must(m.Create(EnumCaseInst, "None", source.Pos{}))
	must(m.Create(EnumCaseInst, "Some", source.Pos{}))
	if _, err := m.Leave(Enum, source.Pos{}); err != nil {
		panic("scope: broken prelude: " + err.Error())
	}
	return root
}

// Operator returns the operator declaration named name with fixity visible
// from s, or nil.
func Operator(s *Scope, name string, fixity Fixity) *Inst {
	for sc := s; sc != nil; sc = sc.Parent {
		for _, inst := range sc.insts[name] {
			if inst.Kind == OperatorInst && inst.Operator != nil && inst.Operator.Fixity == fixity {
				return inst
			}
		}
	}
	return nil
}
