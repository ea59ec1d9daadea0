package scope

import (
	"fmt"

	"treeswift/pkg/source"
)

// ErrorKind enumerates the scope manager failures.
type ErrorKind int

const (
	InvalidScope ErrorKind = iota
	AlreadyExist
	InvalidRefScope
	NotExist
	LeavingModuleScope
	ScopeTypeMismatch
	UnresolvedScopeRemains
	NoSuchModule
)

var errorKindNames = [...]string{
	InvalidScope:           "InvalidScope",
	AlreadyExist:           "AlreadyExist",
	InvalidRefScope:        "InvalidRefScope",
	NotExist:               "NotExist",
	LeavingModuleScope:     "LeavingModuleScope",
	ScopeTypeMismatch:      "ScopeTypeMismatch",
	UnresolvedScopeRemains: "UnresolvedScopeRemains",
	NoSuchModule:           "NoSuchModule",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by every failing Manager operation.
type Error struct {
	Kind  ErrorKind
	Name  string
	Pos   source.Pos
	Scope Kind // scope the operation ran in

	Expected Kind // ScopeTypeMismatch
	Inst     InstKind
	Ref      RefKind
	Previous *Inst // AlreadyExist
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidScope:
		return fmt.Sprintf("%s declaration '%s' is not allowed in %s scope", e.Inst, e.Name, e.Scope)
	case AlreadyExist:
		if e.Previous != nil {
			return fmt.Sprintf("invalid redeclaration of '%s' (previously declared at %s)", e.Name, e.Previous.Pos)
		}
		return fmt.Sprintf("invalid redeclaration of '%s'", e.Name)
	case InvalidRefScope:
		return fmt.Sprintf("%s reference to '%s' is not allowed in %s scope", e.Ref, e.Name, e.Scope)
	case NotExist:
		return fmt.Sprintf("use of unresolved %s '%s'", e.Ref, e.Name)
	case LeavingModuleScope:
		return "cannot leave the module scope"
	case ScopeTypeMismatch:
		return fmt.Sprintf("expected to leave %s scope, but the current scope is %s", e.Expected, e.Scope)
	case UnresolvedScopeRemains:
		return fmt.Sprintf("%s scope is still open at end of file", e.Scope)
	case NoSuchModule:
		return fmt.Sprintf("no such module '%s'", e.Name)
	}
	return e.Kind.String()
}

// Is lets errors.Is match on the kind alone: errors.Is(err, &Error{Kind: AlreadyExist}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
