package parser

import (
	"strconv"
	"strings"

	"treeswift/pkg/ast"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
)

// parseAttributes reads @name and @name(args) until no '@' follows.
func (p *Parser) parseAttributes() ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute
	for {
		at, ok := p.ts.Match(lexer.ATMARK)
		if !ok {
			return attrs, nil
		}
		name, ok := p.ts.Match(lexer.IDENTIFIER)
		if !ok {
			if err := p.unexpected(name, "attribute name"); err != nil {
				return nil, err
			}
			continue
		}
		a := &ast.Attribute{Name: name.Text, Pos: at.Pos}
		if p.raw().Kind == lexer.LPAREN {
			args, err := p.parseAttributeArgs()
			if err != nil {
				return nil, err
			}
			a.Args = args
		}
		attrs = append(attrs, a)
	}
}

// parseAttributeArgs consumes a balanced parenthesized clause and returns
// the text between the outer parentheses as written, when it fits on one
// line, or the token spellings joined by spaces.
func (p *Parser) parseAttributeArgs() (string, error) {
	open := p.next()
	var parts []string
	depth := 1
	for {
		t := p.peek()
		switch t.Kind {
		case lexer.EOF, lexer.ERROR:
			return "", p.unexpected(t, "')' to close the attribute arguments")
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
		}
		p.next()
		if depth == 0 {
			if t.Pos.Line == open.Pos.Line {
				line := []rune(p.ts.Source().Line(t.Pos.Line))
				if t.Pos.Col-1 <= len(line) {
					return string(line[open.Pos.Col : t.Pos.Col-1]), nil
				}
			}
			return strings.Join(parts, " "), nil
		}
		parts = append(parts, tokenText(t))
	}
}

func tokenText(t lexer.Token) string {
	switch t.Kind {
	case lexer.IDENTIFIER:
		return t.Text
	case lexer.STRING_LITERAL:
		return strconv.Quote(t.Text)
	case lexer.INTEGER_LITERAL:
		return strconv.FormatInt(t.Int, 10)
	case lexer.FLOATING_POINT_LITERAL:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case lexer.BOOLEAN_LITERAL:
		return strconv.FormatBool(t.Bool)
	}
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}

// atOpenAngle reports whether the next raw token opens a generic clause.
func (p *Parser) atOpenAngle() bool {
	t := p.raw()
	return t.Kind == lexer.PREFIX_LESS_THAN || (t.Kind == lexer.BINARY_OPERATOR && t.Text == "<")
}

// closeAngle consumes a '>' that may be the first character of a longer
// operator token such as '>>'.
func (p *Parser) closeAngle() error {
	t := p.peek()
	switch {
	case t.Kind == lexer.POSTFIX_GRATER_THAN:
		p.next()
		return nil
	case isOperator(t) && strings.HasPrefix(t.Text, ">"):
		if len(t.Text) == 1 {
			p.next()
		} else {
			p.ts.SplitOperator(1)
		}
		return nil
	}
	return p.unexpected(t, "'>'")
}

// parseGenericParams reads <T, U: P where T == U> and declares every
// parameter as a type in the current scope.
func (p *Parser) parseGenericParams() (*ast.GenericParamClause, error) {
	p.next()
	g := &ast.GenericParamClause{}
	for {
		name, ok := p.ts.Match(lexer.IDENTIFIER)
		if !ok {
			if err := p.unexpected(name, "generic parameter name"); err != nil {
				return nil, err
			}
			break
		}
		inst, err := p.create(scope.TypeInst, name.Text, name.Pos)
		if err != nil {
			return nil, err
		}
		gp := &ast.GenericParam{Inst: inst}
		if p.ts.Test(lexer.COLON) {
			if gp.Conformance, err = p.parseConformance(); err != nil {
				return nil, err
			}
		}
		g.Params = append(g.Params, gp)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	if p.ts.Test(lexer.WHERE) {
		for {
			req, err := p.parseRequirement()
			if err != nil {
				return nil, err
			}
			g.Requirements = append(g.Requirements, req)
			if !p.ts.Test(lexer.COMMA) {
				break
			}
		}
	}
	return g, p.closeAngle()
}

// parseConformance reads the type after ':' in a generic parameter or
// requirement: a type identifier or a protocol composition.
func (p *Parser) parseConformance() (ast.Type, error) {
	if p.peek().Kind == lexer.PROTOCOL {
		return p.parseProtocolComposition()
	}
	return p.parseIdentifierType()
}

// parseRequirement reads T: P or T == U.
func (p *Parser) parseRequirement() (*ast.Requirement, error) {
	left, err := p.parseIdentifierType()
	if err != nil {
		return nil, err
	}
	req := &ast.Requirement{Left: left}
	t := p.peek()
	switch {
	case t.Kind == lexer.COLON:
		p.next()
		req.Right, err = p.parseConformance()
	case isOperator(t) && t.Text == "==":
		p.next()
		req.SameType = true
		req.Right, err = p.parseType()
	default:
		if err := p.unexpected(t, "':' or '==' in generic requirement"); err != nil {
			return nil, err
		}
		req.Right = &ast.IdentifierType{Pos: t.Pos}
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// parseGenericArgs reads <Type, ...> after a type or value name.
func (p *Parser) parseGenericArgs() ([]ast.Type, error) {
	p.next()
	var args []ast.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	return args, p.closeAngle()
}

// looksLikeGenericArgs decides whether a '<' right after a value name
// opens an argument list, as in f<Int>(x), rather than a comparison. The
// tokens up to the matching '>' must all be able to appear in types.
func (p *Parser) looksLikeGenericArgs(name lexer.Token) bool {
	lt := p.raw()
	if lt.Kind != lexer.BINARY_OPERATOR || lt.Text != "<" || lt.Pos.Offset != name.Pos.Offset+len(name.Text) {
		return false
	}
	depth := 0
	for i := 0; ; i++ {
		t := p.ts.Look(i, false)
		switch t.Kind {
		case lexer.IDENTIFIER, lexer.COMMA, lexer.DOT, lexer.COLON, lexer.ARROW,
			lexer.LBRACKET, lexer.RBRACKET, lexer.LPAREN, lexer.RPAREN,
			lexer.POSTFIX_QUESTION, lexer.POSTFIX_EXCLAMATION, lexer.PROTOCOL, lexer.SELF_TYPE:
			continue
		case lexer.PREFIX_LESS_THAN:
			depth++
			continue
		case lexer.POSTFIX_GRATER_THAN:
			depth--
		case lexer.BINARY_OPERATOR, lexer.POSTFIX_OPERATOR:
			switch {
			case t.Text == "<":
				depth++
				continue
			case strings.Trim(t.Text, ">") == "":
				depth -= len(t.Text)
			default:
				return false
			}
		default:
			return false
		}
		if depth <= 0 {
			return depth == 0
		}
	}
}

// parseTypeAnnotation reads ': [attributes] Type'. The colon has not been
// consumed yet.
func (p *Parser) parseTypeAnnotation() ([]*ast.Attribute, ast.Type, error) {
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, nil, err
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, nil, err
	}
	t, err := p.parseType()
	return attrs, t, err
}

// parseType reads a full type, function types included.
//
//	[String: Int]?  (Int, Int) throws -> Bool  Array<Int>.Index.Type
func (p *Parser) parseType() (ast.Type, error) {
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	if t, err = p.parseTypePostfix(t); err != nil {
		return nil, err
	}
	throws := ast.NoThrow
	switch p.peek().Kind {
	case lexer.THROWS:
		throws = ast.Throws
	case lexer.RETHROWS:
		throws = ast.Rethrows
	}
	if throws != ast.NoThrow {
		p.next()
		if p.peek().Kind != lexer.ARROW {
			return t, p.unexpected(p.peek(), "'->' after 'throws'")
		}
	}
	if !p.ts.Test(lexer.ARROW) {
		return t, nil
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionType{Arg: t, Throws: throws, Result: result}, nil
}

// parseTypePostfix applies ?, !, .Type and .Protocol.
func (p *Parser) parseTypePostfix(t ast.Type) (ast.Type, error) {
	for {
		tok := p.raw()
		switch tok.Kind {
		case lexer.POSTFIX_QUESTION:
			p.next()
			t = &ast.OptionalType{Wrapped: t}
		case lexer.POSTFIX_EXCLAMATION:
			p.next()
			t = &ast.ImplicitlyUnwrappedOptionalType{Wrapped: t}
		case lexer.POSTFIX_OPERATOR:
			if strings.Trim(tok.Text, "?!") != "" {
				return t, nil
			}
			p.next()
			for _, c := range tok.Text {
				if c == '?' {
					t = &ast.OptionalType{Wrapped: t}
				} else {
					t = &ast.ImplicitlyUnwrappedOptionalType{Wrapped: t}
				}
			}
		case lexer.DOT:
			member := p.ts.Look(1, false)
			if member.Kind != lexer.IDENTIFIER {
				return t, nil
			}
			switch member.Text {
			case "Type":
				t = &ast.MetaType{Of: t}
			case "Protocol":
				t = &ast.MetaProtocol{Of: t}
			default:
				return t, nil
			}
			p.ts.Next(2, false)
		default:
			return t, nil
		}
	}
}

func (p *Parser) parsePrimaryType() (ast.Type, error) {
	t := p.peek()
	switch t.Kind {
	case lexer.IDENTIFIER, lexer.SELF_TYPE:
		return p.parseIdentifierType()
	case lexer.LBRACKET:
		return p.parseCollectionType()
	case lexer.LPAREN:
		return p.parseTupleType()
	case lexer.PROTOCOL:
		return p.parseProtocolComposition()
	}
	if err := p.unexpected(t, "type"); err != nil {
		return nil, err
	}
	return &ast.IdentifierType{Pos: t.Pos}, nil
}

// parseIdentifierType reads Name<Args>.Nested<Args>. Only the first name
// gets a type ref; Self has none.
func (p *Parser) parseIdentifierType() (*ast.IdentifierType, error) {
	t := p.peek()
	if t.Kind != lexer.IDENTIFIER && t.Kind != lexer.SELF_TYPE {
		if err := p.unexpected(t, "type name"); err != nil {
			return nil, err
		}
		return &ast.IdentifierType{Pos: t.Pos}, nil
	}
	p.next()
	it := &ast.IdentifierType{Name: t.Text, Pos: t.Pos}
	if t.Kind == lexer.SELF_TYPE {
		it.Name = "Self"
	} else {
		ref, err := p.typeRef(t.Text, t.Pos)
		if err != nil {
			return nil, err
		}
		it.Ref = ref
	}
	cur := it
	for {
		if cur.Args == nil && p.atOpenAngle() {
			args, err := p.parseGenericArgs()
			if err != nil {
				return nil, err
			}
			cur.Args = args
		}
		if p.raw().Kind != lexer.DOT {
			return it, nil
		}
		member := p.ts.Look(1, false)
		if member.Kind != lexer.IDENTIFIER || member.Text == "Type" || member.Text == "Protocol" {
			return it, nil
		}
		p.ts.Next(2, false)
		cur.Nested = &ast.IdentifierType{Name: member.Text, Pos: member.Pos}
		cur = cur.Nested
	}
}

// parseCollectionType reads [T] or [K: V].
func (p *Parser) parseCollectionType() (ast.Type, error) {
	p.next()
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	var t ast.Type = &ast.ArrayType{Elem: elem}
	if p.ts.Test(lexer.COLON) {
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		t = &ast.DictionaryType{Key: elem, Value: value}
	}
	_, err = p.expect(lexer.RBRACKET)
	return t, err
}

// parseTupleType reads (a: inout A, B...). The parentheses of a single
// unlabelled type are kept as a one element tuple.
func (p *Parser) parseTupleType() (*ast.TupleType, error) {
	p.next()
	tt := &ast.TupleType{}
	if p.ts.Test(lexer.RPAREN) {
		return tt, nil
	}
	for {
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		e := &ast.TupleTypeElem{Attrs: attrs}
		e.InOut = p.ts.Test(lexer.INOUT)
		if t := p.peek(); (t.Kind == lexer.IDENTIFIER || t.Kind == lexer.UNDERSCORE) && p.look(1).Kind == lexer.COLON {
			e.Label = t.Text
			if t.Kind == lexer.UNDERSCORE {
				e.Label = "_"
			}
			p.ts.Next(2, true)
			more, err := p.parseAttributes()
			if err != nil {
				return nil, err
			}
			e.Attrs = append(e.Attrs, more...)
			e.InOut = e.InOut || p.ts.Test(lexer.INOUT)
		}
		if e.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		e.Variadic = p.testVariadic()
		tt.Elems = append(tt.Elems, e)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	_, err := p.expect(lexer.RPAREN)
	return tt, err
}

// testVariadic consumes a '...' written right after a type.
func (p *Parser) testVariadic() bool {
	t := p.raw()
	if (t.Kind == lexer.POSTFIX_OPERATOR || t.Kind == lexer.BINARY_OPERATOR) && t.Text == "..." {
		p.next()
		return true
	}
	return false
}

// parseProtocolComposition reads protocol<A, B>.
func (p *Parser) parseProtocolComposition() (*ast.ProtocolCompositionType, error) {
	p.next()
	pc := &ast.ProtocolCompositionType{}
	if !p.atOpenAngle() {
		return pc, p.unexpected(p.peek(), "'<' after 'protocol'")
	}
	p.next()
	if t := p.peek(); t.Kind == lexer.POSTFIX_GRATER_THAN || (isOperator(t) && strings.HasPrefix(t.Text, ">")) {
		return pc, p.closeAngle()
	}
	for {
		it, err := p.parseIdentifierType()
		if err != nil {
			return nil, err
		}
		pc.Types = append(pc.Types, it)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	return pc, p.closeAngle()
}

// parseInheritance reads ': A, B' after a nominal type name. Protocols may
// start the list with 'class'.
func (p *Parser) parseInheritance() (*ast.Inheritance, error) {
	if !p.ts.Test(lexer.COLON) {
		return nil, nil
	}
	in := &ast.Inheritance{}
	for {
		if p.ts.Test(lexer.CLASS) {
			in.Class = true
		} else {
			it, err := p.parseIdentifierType()
			if err != nil {
				return nil, err
			}
			in.Types = append(in.Types, it)
		}
		if !p.ts.Test(lexer.COMMA) {
			return in, nil
		}
	}
}
