package parser

import (
	"treeswift/pkg/ast"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// parseProcedures reads procedures until end of input or one of ends,
// which is left unconsumed. Procedures on one line are separated by ';'.
func (p *Parser) parseProcedures(ends ...lexer.Kind) ([]ast.Procedure, error) {
	var procs []ast.Procedure
	for {
		t := p.peek()
		if t.Kind == lexer.EOF || isOneOf(t.Kind, ends) {
			return procs, nil
		}
		if t.Kind == lexer.SEMICOLON {
			p.next()
			continue
		}
		proc, err := p.parseProcedure()
		if err != nil {
			return nil, err
		}
		if proc == nil {
			continue
		}
		procs = append(procs, proc)
		switch next := p.raw(); {
		case next.Kind == lexer.SEMICOLON, next.Kind == lexer.LINE_FEED, next.Kind == lexer.EOF, isOneOf(next.Kind, ends):
		default:
			if err := p.errorf(next.Pos, "consecutive statements on a line must be separated by ';'"); err != nil {
				return nil, err
			}
		}
	}
}

func isOneOf(k lexer.Kind, kinds []lexer.Kind) bool {
	for _, x := range kinds {
		if k == x {
			return true
		}
	}
	return false
}

// parseProcedure reads one declaration, flow or operation. A nil
// procedure means an error was recorded and the parser moved on.
func (p *Parser) parseProcedure() (ast.Procedure, error) {
	t := p.peek()
	if t.Kind == lexer.ERROR {
		return nil, p.unexpected(t, "statement")
	}
	var label ast.Label
	if t.Kind == lexer.IDENTIFIER && p.look(1).Kind == lexer.COLON {
		switch p.look(2).Kind {
		case lexer.FOR, lexer.WHILE, lexer.REPEAT, lexer.IF, lexer.SWITCH, lexer.DO:
			p.ts.Next(2, true)
			label = ast.Label(t.Text)
			t = p.peek()
		}
	}
	switch t.Kind {
	case lexer.FOR:
		return p.parseFor(label)
	case lexer.WHILE:
		return p.parseWhile(label)
	case lexer.REPEAT:
		return p.parseRepeat(label)
	case lexer.IF:
		return p.parseIf(label)
	case lexer.SWITCH:
		return p.parseSwitch(label)
	case lexer.DO:
		return p.parseDo()
	case lexer.GUARD:
		return p.parseGuard()
	case lexer.DEFER:
		return p.parseDefer()
	case lexer.BREAK, lexer.CONTINUE:
		p.next()
		var l ast.Label
		if name := p.raw(); name.Kind == lexer.IDENTIFIER {
			p.next()
			l = ast.Label(name.Text)
		}
		if t.Kind == lexer.BREAK {
			return &ast.BreakOp{Label: l, Pos: t.Pos}, nil
		}
		return &ast.ContinueOp{Label: l, Pos: t.Pos}, nil
	case lexer.FALLTHROUGH:
		p.next()
		return &ast.FallthroughOp{Pos: t.Pos}, nil
	case lexer.RETURN:
		p.next()
		op := &ast.ReturnOp{Pos: t.Pos}
		switch p.raw().Kind {
		case lexer.LINE_FEED, lexer.SEMICOLON, lexer.RBRACE, lexer.EOF:
			return op, nil
		}
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		op.Value = v
		return op, nil
	case lexer.THROW:
		p.next()
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ThrowOp{Value: v, Pos: t.Pos}, nil
	}
	if startsDecl(t) {
		d, err := p.parseDeclaration()
		if err != nil || d == nil {
			return nil, err
		}
		return d, nil
	}
	if !startsExpr(t) {
		if err := p.unexpected(t, "statement"); err != nil {
			return nil, err
		}
		p.next()
		return nil, nil
	}
	return p.parseOperation()
}

// parseOperation reads an expression statement or an assignment.
func (p *Parser) parseOperation() (ast.Procedure, error) {
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if eq, ok := p.ts.Match(lexer.ASSIGN); ok {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignOp{Target: e, Value: v, Pos: eq.Pos}, nil
	}
	return &ast.ExprOp{Expr: e}, nil
}

// parseBlock reads { procedures }.
func (p *Parser) parseBlock() ([]ast.Procedure, source.Pos, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, source.Pos{}, err
	}
	var procs []ast.Procedure
	err := p.withClosures(func() error {
		var err error
		procs, err = p.parseProcedures(lexer.RBRACE)
		return err
	})
	if err != nil {
		return nil, source.Pos{}, err
	}
	end, err := p.expect(lexer.RBRACE)
	return procs, end.Pos, err
}

// isCStyleFor looks ahead for a ';' before 'in' or the body.
func (p *Parser) isCStyleFor() bool {
	depth := 0
	for i := 1; ; i++ {
		switch p.ts.Look(i, true).Kind {
		case lexer.LPAREN, lexer.LBRACKET:
			depth++
		case lexer.RPAREN, lexer.RBRACKET:
			depth--
		case lexer.SEMICOLON:
			if depth <= 1 {
				return true
			}
		case lexer.IN:
			if depth == 0 {
				return false
			}
		case lexer.LBRACE:
			if depth == 0 {
				return false
			}
		case lexer.EOF, lexer.ERROR:
			return false
		}
	}
}

func (p *Parser) parseFor(label ast.Label) (ast.Procedure, error) {
	if p.isCStyleFor() {
		return p.parseCStyleFor(label)
	}
	return p.parseForIn(label)
}

// parseCStyleFor reads for [(] init; cond; step [)] { body }.
func (p *Parser) parseCStyleFor(label ast.Label) (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.For, kw.Pos)
	f := &ast.ForFlow{Label: label}
	paren := p.ts.Test(lexer.LPAREN)
	err := p.withoutClosures(func() error {
		if paren {
			p.noClosure = false
		}
		var err error
		if k := p.peek().Kind; k != lexer.SEMICOLON {
			if k == lexer.VAR || k == lexer.LET {
				f.Init, err = p.parseDeclaration()
			} else {
				f.Init, err = p.parseOperation()
			}
			if err != nil {
				return err
			}
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return err
		}
		if p.peek().Kind != lexer.SEMICOLON {
			if f.Cond, err = p.parseExpression(); err != nil {
				return err
			}
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return err
		}
		if k := p.peek().Kind; k != lexer.LBRACE && k != lexer.RPAREN {
			if f.Step, err = p.parseOperation(); err != nil {
				return err
			}
		}
		if paren {
			_, err = p.expect(lexer.RPAREN)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	f.Body = body
	if f.Scope, err = p.leave(scope.For, end); err != nil {
		return nil, err
	}
	return f, nil
}

// parseForIn reads for [case] pattern in sequence [where guard] { body }.
func (p *Parser) parseForIn(label ast.Label) (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.ForIn, kw.Pos)
	f := &ast.ForInFlow{Label: label}
	var err error
	if p.ts.Test(lexer.CASE) {
		f.Case = true
		f.Pattern, err = p.parseCasePattern(nil)
	} else {
		f.Pattern, err = p.parseDeclPattern(true)
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	err = p.withoutClosures(func() error {
		var err error
		if f.Sequence, err = p.parseExpression(); err != nil {
			return err
		}
		if err := p.newBinder(kw.Pos).declare(f.Pattern); err != nil {
			return err
		}
		if p.ts.Test(lexer.WHERE) {
			f.Where, err = p.parseExpression()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	f.Body = body
	if f.Scope, err = p.leave(scope.ForIn, end); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseWhile(label ast.Label) (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.While, kw.Pos)
	w := &ast.WhileFlow{Label: label}
	conds, err := p.parseConditions(p.newBinder(kw.Pos))
	if err != nil {
		return nil, err
	}
	w.Conds = conds
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	w.Body = body
	if w.Scope, err = p.leave(scope.While, end); err != nil {
		return nil, err
	}
	return w, nil
}

func (p *Parser) parseRepeat(label ast.Label) (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.RepeatWhile, kw.Pos)
	r := &ast.RepeatWhileFlow{Label: label}
	body, _, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	r.Body = body
	end, err := p.expect(lexer.WHILE)
	if err != nil {
		return nil, err
	}
	if r.Cond, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if r.Scope, err = p.leave(scope.RepeatWhile, end.Pos); err != nil {
		return nil, err
	}
	return r, nil
}

// parseIf reads if conditions { body } [else { body } | else if ...].
// The else branch is parsed inside the scope of the if.
func (p *Parser) parseIf(label ast.Label) (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.If, kw.Pos)
	f := &ast.IfFlow{Label: label}
	conds, err := p.parseConditions(p.newBinder(kw.Pos))
	if err != nil {
		return nil, err
	}
	f.Conds = conds
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	f.Body = body
	if p.ts.Test(lexer.ELSE) {
		if p.peek().Kind == lexer.IF {
			elseIf, err := p.parseIf("")
			if err != nil {
				return nil, err
			}
			f.ElseIf = elseIf.(*ast.IfFlow)
		} else {
			if f.Else, end, err = p.parseBlock(); err != nil {
				return nil, err
			}
		}
	}
	if f.Scope, err = p.leave(scope.If, end); err != nil {
		return nil, err
	}
	return f, nil
}

// parseGuard reads guard conditions else { body }. The bindings of the
// conditions go into the enclosing scope and stay visible after the
// guard.
func (p *Parser) parseGuard() (ast.Procedure, error) {
	kw := p.next()
	g := &ast.GuardFlow{}
	conds, err := p.parseConditions(p.newBinder(kw.Pos))
	if err != nil {
		return nil, err
	}
	g.Conds = conds
	els, err := p.expect(lexer.ELSE)
	if err != nil {
		return nil, err
	}
	p.m.Enter(scope.Guard, els.Pos)
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	g.Body = body
	if g.Scope, err = p.leave(scope.Guard, end); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) parseDefer() (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.Defer, kw.Pos)
	d := &ast.DeferFlow{}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	d.Body = body
	if d.Scope, err = p.leave(scope.Defer, end); err != nil {
		return nil, err
	}
	return d, nil
}

// parseDo reads do { body } followed by any number of catch clauses.
func (p *Parser) parseDo() (ast.Procedure, error) {
	kw := p.next()
	p.m.Enter(scope.Do, kw.Pos)
	d := &ast.DoFlow{}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	d.Body = body
	if d.Scope, err = p.leave(scope.Do, end); err != nil {
		return nil, err
	}
	for p.peek().Kind == lexer.CATCH {
		c, err := p.parseCatch()
		if err != nil {
			return nil, err
		}
		d.Catches = append(d.Catches, c)
	}
	return d, nil
}

// parseCatch reads catch [pattern] [where guard] { body }. A catch without
// a pattern binds error.
func (p *Parser) parseCatch() (*ast.CatchFlow, error) {
	kw := p.next()
	p.m.Enter(scope.Catch, kw.Pos)
	c := &ast.CatchFlow{}
	err := p.withoutClosures(func() error {
		bind := p.newBinder(kw.Pos)
		if k := p.peek().Kind; k != lexer.LBRACE && k != lexer.WHERE {
			pat, err := p.parseCasePattern(nil)
			if err != nil {
				return err
			}
			c.Pattern = pat
			if err := bind.declare(pat); err != nil {
				return err
			}
		} else {
			inst := scope.NewInst(scope.ConstantInst, "error", kw.Pos)
			if err := bind.inst(inst); err != nil {
				return err
			}
		}
		if p.ts.Test(lexer.WHERE) {
			var err error
			c.Where, err = p.parseExpression()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	c.Body = body
	if c.Scope, err = p.leave(scope.Catch, end); err != nil {
		return nil, err
	}
	return c, nil
}

// parseSwitch reads switch subject { case ...: ... default: ... }.
func (p *Parser) parseSwitch(label ast.Label) (ast.Procedure, error) {
	p.next()
	s := &ast.SwitchFlow{Label: label}
	err := p.withoutClosures(func() error {
		var err error
		s.Subject, err = p.parseExpression()
		return err
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch t.Kind {
		case lexer.CASE, lexer.DEFAULT:
			c, err := p.parseCase()
			if err != nil {
				return nil, err
			}
			s.Cases = append(s.Cases, c)
			continue
		case lexer.RBRACE:
			p.next()
		case lexer.EOF:
			if err := p.unexpected(t, "'}'"); err != nil {
				return nil, err
			}
		default:
			if err := p.unexpected(t, "'case' or 'default'"); err != nil {
				return nil, err
			}
			p.next()
			continue
		}
		if len(s.Cases) == 0 {
			if err := p.errorf(t.Pos, "'switch' statement body must have at least one 'case' or 'default' block"); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
}

// parseCase reads one case or default block. The names bound by the
// alternatives of one case share their insts.
func (p *Parser) parseCase() (*ast.CaseFlow, error) {
	kw := p.next()
	p.m.Enter(scope.Case, kw.Pos)
	c := &ast.CaseFlow{Default: kw.Kind == lexer.DEFAULT, Pos: kw.Pos}
	if !c.Default {
		bind := p.newBinder(kw.Pos)
		bind.merge = true
		for {
			pat, err := p.parseCasePattern(nil)
			if err != nil {
				return nil, err
			}
			if err := bind.declare(pat); err != nil {
				return nil, err
			}
			item := &ast.CaseItem{Pattern: pat}
			if p.ts.Test(lexer.WHERE) {
				if item.Where, err = p.parseExpression(); err != nil {
					return nil, err
				}
			}
			c.Items = append(c.Items, item)
			if !p.ts.Test(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseProcedures(lexer.CASE, lexer.DEFAULT, lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		if err := p.errorf(kw.Pos, "'%s' label in a 'switch' must have at least one statement", kw.Kind); err != nil {
			return nil, err
		}
	}
	c.Body = body
	if c.Scope, err = p.leave(scope.Case, p.peek().Pos); err != nil {
		return nil, err
	}
	return c, nil
}

// parseConditions reads the comma separated condition list of if, while
// and guard. Names bound by a condition are visible to the conditions
// after it and to the body.
//
//	if let a = x, b = y, case .Some(let c) = z where c > 0, a < b {
func (p *Parser) parseConditions(bind *binder) ([]*ast.Condition, error) {
	var conds []*ast.Condition
	err := p.withoutClosures(func() error {
		constant, binding := true, false
		for {
			c := &ast.Condition{}
			var err error
			switch t := p.peek(); {
			case t.Kind == lexer.CASE:
				p.next()
				binding = false
				if c.Pattern, err = p.parseCasePattern(nil); err != nil {
					return err
				}
				if _, err := p.expect(lexer.ASSIGN); err != nil {
					return err
				}
			case t.Kind == lexer.LET || t.Kind == lexer.VAR:
				p.next()
				constant, binding = t.Kind == lexer.LET, true
				if c.Pattern, err = p.parseDeclPattern(constant); err != nil {
					return err
				}
				if _, err := p.expect(lexer.ASSIGN); err != nil {
					return err
				}
			case binding && t.Kind == lexer.IDENTIFIER && p.look(1).Kind == lexer.ASSIGN:
				// if let a = x, b = y
				if c.Pattern, err = p.parseDeclPattern(constant); err != nil {
					return err
				}
				p.next()
			default:
				binding = false
				c.Pattern = &ast.BooleanPattern{}
			}
			if c.Expr, err = p.parseExpression(); err != nil {
				return err
			}
			if err := bind.declare(c.Pattern); err != nil {
				return err
			}
			if p.ts.Test(lexer.WHERE) {
				if c.Where, err = p.parseExpression(); err != nil {
					return err
				}
			}
			conds = append(conds, c)
			if !p.ts.Test(lexer.COMMA) {
				return nil
			}
		}
	})
	return conds, err
}
