package scope

// Resolution is the outcome of binding one ref: either Inst is set, or the
// name is unresolved and Err describes it.
type Resolution struct {
	Ref        *Ref
	Inst       *Inst
	Candidates []*Inst // overloads visible at the same level, Inst first
}

// Resolved reports whether the ref found a declaration.
func (r Resolution) Resolved() bool { return r.Inst != nil }

// Err returns the NotExist error of an unresolved ref, or nil.
func (r Resolution) Err() error {
	if r.Inst != nil {
		return nil
	}
	name := r.Ref.Name
	if r.Ref.ClassName != "" {
		name = r.Ref.ClassName + "." + name
	}
	return &Error{Kind: NotExist, Name: name, Pos: r.Ref.Pos, Scope: r.Ref.Scope.opaque().Kind, Ref: r.Ref.Kind}
}

// Resolve binds every ref below root. Extensions are bound first so their
// members are visible through the extended type. The returned slice lists
// refs in scope tree order.
func Resolve(root *Scope) []Resolution {
	root.Walk(func(s *Scope) {
		for _, inst := range s.order {
			if inst.Kind == ExtensionInst {
				bindExtension(inst)
			}
		}
	})

	var out []Resolution
	root.Walk(func(s *Scope) {
		for _, r := range s.refs {
			res := resolveRef(r)
			if res.Inst != nil {
				r.Inst = res.Inst
				r.Type = res.Inst.Type
			}
			out = append(out, res)
		}
	})
	return out
}

func bindExtension(ext *Inst) {
	if ext.Extends == nil || ext.Target != nil {
		return
	}
	found := lookup(ext.Extends, ext.Extends.Name, isType)
	if len(found) == 0 {
		return
	}
	target := found[0]
	ext.Target = target
	for _, m := range ext.Types {
		target.addMember(m)
	}
	for _, m := range ext.Values {
		target.addMember(m)
	}
}

func isType(i *Inst) bool { return i.Kind.IsType() }

func resolveRef(r *Ref) Resolution {
	res := Resolution{Ref: r}
	switch r.Kind {
	case TypeRef:
		res.Candidates = lookup(r, r.Name, isType)
	case ValueRef:
		res.Candidates = lookup(r, r.Name, func(i *Inst) bool { return i.Kind.IsValue() || i.Kind.IsType() })
	case ImplicitParameterRef:
		res.Candidates = lookup(r, r.Name, func(i *Inst) bool { return i.Kind == ConstantInst })
	case OperatorRef:
		res.Candidates = resolveOperator(r)
	case EnumCaseRef:
		res.Candidates = resolveEnumCase(r)
	}
	if len(res.Candidates) > 0 {
		res.Inst = res.Candidates[0]
	}
	return res
}

// resolveOperator prefers operator declarations of the right fixity and
// wires the first visible function of the same name as their
// implementation. Without a declaration a function named like the operator
// still resolves.
func resolveOperator(r *Ref) []*Inst {
	ops := lookup(r, r.Name, func(i *Inst) bool {
		return i.Kind == OperatorInst && i.Operator != nil && i.Operator.Fixity == r.Fixity
	})
	funcs := lookup(r, r.Name, func(i *Inst) bool { return i.Kind == FunctionInst })
	if len(ops) == 0 {
		return funcs
	}
	for _, op := range ops {
		if op.Implementation == nil && len(funcs) > 0 {
			op.Implementation = funcs[0]
		}
	}
	return ops
}

func resolveEnumCase(r *Ref) []*Inst {
	isCase := func(i *Inst) bool { return i.Kind == EnumCaseInst }
	if r.ClassName != "" {
		var out []*Inst
		for _, enum := range lookup(r, r.ClassName, func(i *Inst) bool { return i.Kind == EnumInst }) {
			if c, ok := enum.Values[r.Name]; ok && isCase(c) {
				out = append(out, c)
			}
		}
		return out
	}
	// implicit member: any enum visible from the ref may own the case
	for sc := r.Scope; sc != nil; sc = sc.Parent {
		var found []*Inst
		for _, inst := range sc.insts[r.Name] {
			if isCase(inst) && visible(sc, inst, r) {
				found = append(found, inst)
			}
		}
		for _, inst := range sc.order {
			if inst.Kind != EnumInst || !visible(sc, inst, r) {
				continue
			}
			if c, ok := inst.Values[r.Name]; ok && isCase(c) && !contains(found, c) {
				found = append(found, c)
			}
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

// lookup walks outward from the ref's scope and returns the matching insts
// of the first scope that has any.
func lookup(r *Ref, name string, match func(*Inst) bool) []*Inst {
	for sc := r.Scope; sc != nil; sc = sc.Parent {
		var found []*Inst
		for _, inst := range sc.insts[name] {
			if match(inst) && visible(sc, inst, r) {
				found = append(found, inst)
			}
		}
		if owner := sc.Owner; owner != nil {
			found = appendMember(found, sc, owner, name, match)
			if owner.Target != nil {
				found = appendMember(found, sc, owner.Target, name, match)
			}
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

// visible applies the ordering rule of procedural scopes: a name is seen
// only by refs created after its declaration.
func visible(sc *Scope, inst *Inst, r *Ref) bool {
	if sc.Policy() != Procedural {
		return true
	}
	return inst.seq < r.seq
}

func appendMember(found []*Inst, sc *Scope, owner *Inst, name string, match func(*Inst) bool) []*Inst {
	m := owner.Member(name)
	if m == nil || m.Scope == sc || !match(m) || contains(found, m) {
		return found
	}
	return append(found, m)
}

func contains(list []*Inst, inst *Inst) bool {
	for _, i := range list {
		if i == inst {
			return true
		}
	}
	return false
}
