package scope

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"treeswift/pkg/source"
)

// Scope is one node of the scope tree built while parsing.
type Scope struct {
	Kind     Kind
	Name     string // function, type or file name, for dumps
	Pos      source.Pos
	Parent   *Scope
	Children []*Scope

	// Owner is the nominal type or extension whose body this scope is.
	Owner *Inst

	insts map[string][]*Inst
	order []*Inst
	refs  []*Ref
}

func newScope(kind Kind, parent *Scope, pos source.Pos) *Scope {
	s := &Scope{Kind: kind, Parent: parent, Pos: pos, insts: make(map[string][]*Inst)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// NewModule returns an empty module scope whose parent is prelude. The
// module is not registered as a child of the prelude, so one prelude can
// serve several modules.
func NewModule(name string, prelude *Scope) *Scope {
	s := newScope(Module, nil, source.Pos{})
	s.Name = name
	s.Parent = prelude
	return s
}

// Policy is the effective policy: transparent scopes take their parent's.
func (s *Scope) Policy() Policy {
	return s.opaque().Kind.Policy()
}

// opaque returns the nearest scope, s included, that is not transparent.
func (s *Scope) opaque() *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Kind.Policy() != Transparent {
			return sc
		}
	}
	return s
}

// Insts returns the insts declared directly in s, in declaration order.
func (s *Scope) Insts() []*Inst { return s.order }

// Refs returns the refs created directly in s, in creation order.
func (s *Scope) Refs() []*Ref { return s.refs }

// Lookup returns the insts named name declared directly in s.
func (s *Scope) Lookup(name string) []*Inst { return s.insts[name] }

func (s *Scope) add(inst *Inst) {
	inst.Scope = s
	s.order = append(s.order, inst)
	if inst.Kind != ExtensionInst {
		s.insts[inst.Name] = append(s.insts[inst.Name], inst)
	}
}

// conflict returns the inst that a declaration of inst in s would redeclare.
// Transparent scopes are searched up to their first opaque ancestor.
func (s *Scope) conflict(inst *Inst) *Inst {
	if inst.Kind == ExtensionInst {
		return nil
	}
	for sc := s; sc != nil; sc = sc.Parent {
		for _, prev := range sc.insts[inst.Name] {
			if overloadable(prev, inst) {
				continue
			}
			return prev
		}
		if sc.Kind.Policy() != Transparent {
			break
		}
	}
	return nil
}

// overloadable reports whether a and b may share a name in one scope.
func overloadable(a, b *Inst) bool {
	switch {
	case a.Kind == FunctionInst && b.Kind == FunctionInst:
		return true
	case a.Kind == OperatorInst && b.Kind == OperatorInst:
		// prefix - and infix - coexist
		return a.Operator != nil && b.Operator != nil && a.Operator.Fixity != b.Operator.Fixity
	case a.Kind == OperatorInst && b.Kind == FunctionInst, a.Kind == FunctionInst && b.Kind == OperatorInst:
		return true
	}
	return false
}

// Attach adds a file scope that was built detached by NewFileManager and
// exports its non-private top-level insts into the module. Each name that
// is already exported yields an AlreadyExist error.
func (s *Scope) Attach(file *Scope) []error {
	s.Children = append(s.Children, file)
	file.Parent = s
	var errs []error
	for _, inst := range file.order {
		if inst.Access == PrivateAccess || inst.Kind == ExtensionInst {
			continue
		}
		if prev := s.conflict(inst); prev != nil {
			errs = append(errs, &Error{Kind: AlreadyExist, Name: inst.Name, Pos: inst.Pos, Scope: s.Kind, Previous: prev})
			continue
		}
		s.order = append(s.order, inst)
		s.insts[inst.Name] = append(s.insts[inst.Name], inst)
	}
	return errs
}

// Walk calls fn for s and every descendant, parents first.
func (s *Scope) Walk(fn func(*Scope)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

func (s *Scope) String() string {
	var sb strings.Builder
	s.dump(&sb, 0)
	return sb.String()
}

// Dump writes the scope tree below s. Insts are listed by name, refs in
// creation order with their resolution.
func (s *Scope) Dump(w io.Writer) error {
	_, err := io.WriteString(w, s.String())
	return err
}

func (s *Scope) dump(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s", indent, s.Kind)
	if s.Name != "" {
		fmt.Fprintf(sb, " %s", s.Name)
	}
	sb.WriteString("\n")

	names := make([]string, 0, len(s.insts))
	for name := range s.insts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, inst := range s.insts[name] {
			if inst.Scope != s {
				continue // exported from a file
			}
			fmt.Fprintf(sb, "%s  %-12s %s@%s", indent, inst.Kind, name, inst.Pos)
			if inst.Access != DefaultAccess {
				fmt.Fprintf(sb, " (%s)", inst.Access)
			}
			sb.WriteString("\n")
		}
	}
	for _, inst := range s.order {
		if inst.Kind == ExtensionInst {
			fmt.Fprintf(sb, "%s  %-12s %s@%s\n", indent, inst.Kind, inst.Name, inst.Pos)
		}
	}
	for _, r := range s.refs {
		fmt.Fprintf(sb, "%s  %s", indent, r)
		if r.Inst != nil {
			fmt.Fprintf(sb, " -> %s", r.Inst)
		} else {
			sb.WriteString(" -> ?")
		}
		sb.WriteString("\n")
	}
	for _, c := range s.Children {
		c.dump(sb, depth+1)
	}
}
