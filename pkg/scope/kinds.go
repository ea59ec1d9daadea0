package scope

import "fmt"

// Kind is the syntactic construct a scope belongs to.
type Kind int

const (
	Module Kind = iota
	File
	ValueBinding // opened by let/var in procedural code
	Function     // func, init, deinit, subscript, accessors
	Closure
	Enum
	Struct
	Class
	Protocol
	Extension
	For
	ForIn
	While
	RepeatWhile
	If
	Guard
	Defer
	Do
	Catch
	Case
)

var kindNames = [...]string{
	Module:       "module",
	File:         "file",
	ValueBinding: "value binding",
	Function:     "function",
	Closure:      "closure",
	Enum:         "enum",
	Struct:       "struct",
	Class:        "class",
	Protocol:     "protocol",
	Extension:    "extension",
	For:          "for",
	ForIn:        "for-in",
	While:        "while",
	RepeatWhile:  "repeat-while",
	If:           "if",
	Guard:        "guard",
	Defer:        "defer",
	Do:           "do",
	Catch:        "catch",
	Case:         "case",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Policy decides how names declared in a scope become visible.
type Policy int

const (
	// Declarative scopes see every member regardless of textual order.
	Declarative Policy = iota
	// Procedural scopes see a name only after its declaration.
	Procedural
	// Transparent scopes are elided: they behave like their parent.
	Transparent
)

func (p Policy) String() string {
	switch p {
	case Declarative:
		return "declarative"
	case Procedural:
		return "procedural"
	}
	return "transparent"
}

// Policy returns the declaration policy of k.
func (k Kind) Policy() Policy {
	switch k {
	case Module, File, Enum, Struct, Class, Protocol, Extension:
		return Declarative
	case ValueBinding:
		return Transparent
	}
	return Procedural
}

// IsFlow reports whether k is one of the control flow kinds.
func (k Kind) IsFlow() bool { return k >= For }

// InstKind classifies declared symbols.
type InstKind int

const (
	TypeInst     InstKind = iota // typealias, generic parameter, associated type
	ConstantInst                 // let
	VariableInst                 // var, computed property
	FunctionInst
	OperatorInst
	EnumInst
	EnumCaseInst
	StructInst
	ClassInst
	ProtocolInst
	ExtensionInst
)

var instKindNames = [...]string{
	TypeInst:      "type",
	ConstantInst:  "constant",
	VariableInst:  "variable",
	FunctionInst:  "function",
	OperatorInst:  "operator",
	EnumInst:      "enum",
	EnumCaseInst:  "enum case",
	StructInst:    "struct",
	ClassInst:     "class",
	ProtocolInst:  "protocol",
	ExtensionInst: "extension",
}

func (k InstKind) String() string {
	if int(k) < len(instKindNames) {
		return instKindNames[k]
	}
	return fmt.Sprintf("InstKind(%d)", int(k))
}

// IsType reports whether an inst of kind k names a type.
func (k InstKind) IsType() bool {
	switch k {
	case TypeInst, EnumInst, StructInst, ClassInst, ProtocolInst:
		return true
	}
	return false
}

// IsValue reports whether an inst of kind k names a value.
func (k InstKind) IsValue() bool {
	switch k {
	case ConstantInst, VariableInst, FunctionInst, EnumCaseInst:
		return true
	}
	return false
}

// RefKind classifies references.
type RefKind int

const (
	TypeRef RefKind = iota
	ValueRef
	OperatorRef
	EnumCaseRef
	ImplicitParameterRef
)

var refKindNames = [...]string{
	TypeRef:              "type",
	ValueRef:             "value",
	OperatorRef:          "operator",
	EnumCaseRef:          "enum case",
	ImplicitParameterRef: "implicit parameter",
}

func (k RefKind) String() string {
	if int(k) < len(refKindNames) {
		return refKindNames[k]
	}
	return fmt.Sprintf("RefKind(%d)", int(k))
}

// AccessLevel is the declared visibility of an inst.
type AccessLevel int

const (
	DefaultAccess AccessLevel = iota // internal unless stated
	PrivateAccess
	InternalAccess
	PublicAccess
)

func (a AccessLevel) String() string {
	switch a {
	case PrivateAccess:
		return "private"
	case InternalAccess:
		return "internal"
	case PublicAccess:
		return "public"
	}
	return "default"
}

type instSet uint32

func instsOf(ks ...InstKind) instSet {
	var s instSet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

func (s instSet) has(k InstKind) bool { return s&(1<<k) != 0 }

type refSet uint32

func refsOf(ks ...RefKind) refSet {
	var s refSet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

func (s refSet) has(k RefKind) bool { return s&(1<<k) != 0 }

var (
	values = []InstKind{TypeInst, ConstantInst, VariableInst, FunctionInst}

	topLevelInsts  = instsOf(append(values, OperatorInst, EnumInst, StructInst, ClassInst, ProtocolInst, ExtensionInst)...)
	bodyInsts      = instsOf(append(values, OperatorInst, EnumInst, StructInst, ClassInst)...)
	enumInsts      = instsOf(append(values, OperatorInst, EnumInst, EnumCaseInst, StructInst, ClassInst)...)
	protocolInsts  = instsOf(values...)
	extensionInsts = enumInsts

	allRefs      = refsOf(TypeRef, ValueRef, OperatorRef, EnumCaseRef, ImplicitParameterRef)
	namedRefs    = refsOf(TypeRef, ValueRef, OperatorRef, EnumCaseRef)
	typeOnlyRefs = refsOf(TypeRef)
)

// allowedInsts is the whitelist of inst kinds per scope kind.
func allowedInsts(k Kind) instSet {
	switch k {
	case Module, File, ValueBinding:
		return topLevelInsts
	case Enum:
		return enumInsts
	case Struct, Class:
		return bodyInsts
	case Protocol:
		return protocolInsts
	case Extension:
		return extensionInsts
	}
	return bodyInsts
}

// allowedRefs is the whitelist of ref kinds per scope kind.
func allowedRefs(k Kind) refSet {
	switch k {
	case Module, File, ValueBinding, Struct, Class:
		return namedRefs
	case Enum, Protocol:
		return typeOnlyRefs
	case Extension:
		return refsOf(TypeRef, OperatorRef, EnumCaseRef)
	}
	return allRefs
}

// AllowsInst reports whether an inst of kind ik may be declared directly in
// a scope of kind k.
func (k Kind) AllowsInst(ik InstKind) bool { return allowedInsts(k).has(ik) }

// AllowsRef reports whether a ref of kind rk may be created directly in a
// scope of kind k.
func (k Kind) AllowsRef(rk RefKind) bool { return allowedRefs(k).has(rk) }
