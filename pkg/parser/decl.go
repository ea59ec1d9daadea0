package parser

import (
	"errors"

	"treeswift/pkg/ast"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

var accessLevels = map[lexer.Kind]scope.AccessLevel{
	lexer.PRIVATE:  scope.PrivateAccess,
	lexer.INTERNAL: scope.InternalAccess,
	lexer.PUBLIC:   scope.PublicAccess,
}

var modifiers = map[lexer.Kind]ast.Modifier{
	lexer.CONVENIENCE: ast.ModConvenience,
	lexer.DYNAMIC:     ast.ModDynamic,
	lexer.FINAL:       ast.ModFinal,
	lexer.LAZY:        ast.ModLazy,
	lexer.MUTATING:    ast.ModMutating,
	lexer.NONMUTATING: ast.ModNonmutating,
	lexer.OPTIONAL:    ast.ModOptional,
	lexer.OVERRIDE:    ast.ModOverride,
	lexer.REQUIRED:    ast.ModRequired,
	lexer.STATIC:      ast.ModStatic,
	lexer.WEAK:        ast.ModWeak,
	lexer.INDIRECT:    ast.ModIndirect,
	lexer.PREFIX:      ast.ModPrefix,
	lexer.POSTFIX:     ast.ModPostfix,
	lexer.INFIX:       ast.ModInfix,
}

var declKinds = map[lexer.Kind]ast.DeclKind{
	lexer.IMPORT:    ast.ImportKind,
	lexer.LET:       ast.VarKind,
	lexer.VAR:       ast.VarKind,
	lexer.TYPEALIAS: ast.TypealiasKind,
	lexer.FUNC:      ast.FuncKind,
	lexer.ENUM:      ast.EnumKind,
	lexer.STRUCT:    ast.StructKind,
	lexer.CLASS:     ast.ClassKind,
	lexer.PROTOCOL:  ast.ProtocolKind,
	lexer.EXTENSION: ast.ExtensionKind,
	lexer.INIT:      ast.InitKind,
	lexer.DEINIT:    ast.DeinitKind,
	lexer.SUBSCRIPT: ast.SubscriptKind,
	lexer.OPERATOR:  ast.OperatorKind,
	lexer.CASE:      ast.EnumCaseKind,
}

// startsDecl reports whether t begins a declaration in procedural code.
// 'case' only starts one inside an enum body.
func startsDecl(t lexer.Token) bool {
	if t.Kind == lexer.ATMARK || t.Kind == lexer.UNOWNED {
		return true
	}
	if _, ok := accessLevels[t.Kind]; ok {
		return true
	}
	if _, ok := modifiers[t.Kind]; ok {
		return true
	}
	k, ok := declKinds[t.Kind]
	return ok && k != ast.EnumCaseKind
}

// buildErr records a builder complaint as a recoverable error.
func (p *Parser) buildErr(err error) error {
	var be *ast.BuildError
	if errors.As(err, &be) {
		return p.errorf(be.Pos, "%s", be.Msg)
	}
	return err
}

// parseDeclaration reads one declaration with its attributes and
// modifiers. When no declaration keyword follows, an error is recorded
// and nil is returned; the token is skipped only if nothing was read.
func (p *Parser) parseDeclaration() (ast.Decl, error) {
	b := ast.NewDeclBuilder(p.peek().Pos)
	if err := p.parseDeclPrefix(b); err != nil {
		return nil, err
	}
	t := p.peek()
	kind, ok := declKinds[t.Kind]
	if !ok {
		if err := p.unexpected(t, "declaration"); err != nil {
			return nil, err
		}
		if b.Empty() {
			p.next()
		}
		return nil, nil
	}
	if err := b.Check(kind); err != nil {
		if err := p.buildErr(err); err != nil {
			return nil, err
		}
	}
	c := b.Common()
	switch t.Kind {
	case lexer.IMPORT:
		return p.parseImport(c)
	case lexer.LET, lexer.VAR:
		return p.parseVar(c)
	case lexer.TYPEALIAS:
		return p.parseTypealias(c)
	case lexer.FUNC:
		return p.parseFunc(c)
	case lexer.ENUM:
		return p.parseEnum(c)
	case lexer.STRUCT:
		return p.parseStruct(c)
	case lexer.CLASS:
		return p.parseClass(c)
	case lexer.PROTOCOL:
		return p.parseProtocol(c)
	case lexer.EXTENSION:
		return p.parseExtension(c)
	case lexer.INIT:
		return p.parseInit(c)
	case lexer.DEINIT:
		return p.parseDeinit(c)
	case lexer.SUBSCRIPT:
		return p.parseSubscript(c)
	case lexer.OPERATOR:
		fixity, _ := b.Fixity()
		return p.parseOperator(c, fixity)
	default:
		return p.parseEnumCase(c)
	}
}

// parseDeclPrefix collects attributes, access levels and modifiers.
//
//	@objc private(set) final class var x = 0
func (p *Parser) parseDeclPrefix(b *ast.DeclBuilder) error {
	for {
		t := p.peek()
		var err error
		switch t.Kind {
		case lexer.ATMARK:
			attrs, err := p.parseAttributes()
			if err != nil {
				return err
			}
			for _, a := range attrs {
				b.AddAttr(a)
			}
			continue
		case lexer.PRIVATE, lexer.INTERNAL, lexer.PUBLIC:
			p.next()
			setter := false
			if p.raw().Kind == lexer.LPAREN {
				if set := p.ts.Look(1, false); set.Kind == lexer.IDENTIFIER && set.Text == "set" && p.ts.Look(2, false).Kind == lexer.RPAREN {
					p.ts.Next(3, false)
					setter = true
				}
			}
			err = b.SetAccess(accessLevels[t.Kind], setter, t.Pos)
		case lexer.CLASS:
			// class Name is a declaration, class func a modifier
			if p.look(1).Kind == lexer.IDENTIFIER {
				return nil
			}
			p.next()
			err = b.AddModifier(ast.ModClass, t.Pos)
		case lexer.UNOWNED:
			p.next()
			m := ast.ModUnowned
			if p.raw().Kind == lexer.LPAREN && p.ts.Look(2, false).Kind == lexer.RPAREN {
				switch p.ts.Look(1, false).Text {
				case "safe":
					m = ast.ModUnownedSafe
					p.ts.Next(3, false)
				case "unsafe":
					m = ast.ModUnownedUnsafe
					p.ts.Next(3, false)
				}
			}
			err = b.AddModifier(m, t.Pos)
		default:
			m, ok := modifiers[t.Kind]
			if !ok {
				return nil
			}
			p.next()
			err = b.AddModifier(m, t.Pos)
		}
		if err != nil {
			if err := p.buildErr(err); err != nil {
				return err
			}
		}
	}
}

// parseImport reads import [kind] a.b.c.
func (p *Parser) parseImport(c ast.Common) (ast.Decl, error) {
	p.next()
	d := &ast.ImportDecl{Common: c}
	switch t := p.peek(); t.Kind {
	case lexer.TYPEALIAS, lexer.STRUCT, lexer.CLASS, lexer.ENUM, lexer.PROTOCOL, lexer.VAR, lexer.FUNC:
		p.next()
		d.Kind = t.Kind.String()
	}
	for {
		name, ok := p.ts.Match(lexer.IDENTIFIER)
		if !ok {
			if err := p.unexpected(name, "module name"); err != nil {
				return nil, err
			}
			break
		}
		d.Path = append(d.Path, name.Text)
		if p.raw().Kind != lexer.DOT {
			break
		}
		p.next()
	}
	return d, nil
}

// parseVar reads a let or var declaration. Names are declared after their
// own initializer so that they are not visible inside it. A single var
// name followed by '{' is a computed or observed variable.
func (p *Parser) parseVar(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	constant := kw.Kind == lexer.LET
	bind := p.newBinder(kw.Pos)
	d := &ast.PatternInitDecl{Common: c, Constant: constant}
	for {
		pat, err := p.parseDeclPattern(constant)
		if err != nil {
			return nil, err
		}
		pi := &ast.PatternInit{Pattern: pat}
		if p.ts.Test(lexer.ASSIGN) {
			if pi.Init, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		if ip, ok := pat.(*ast.IdentifierPattern); ok && !constant && len(d.Inits) == 0 && p.raw().Kind == lexer.LBRACE {
			return p.parseVariableBlock(c, ip, pi.Init, bind)
		}
		for _, ip := range identifierPatterns(pat) {
			ip.Inst.Access = c.Access
		}
		if err := bind.declare(pat); err != nil {
			return nil, err
		}
		d.Inits = append(d.Inits, pi)
		if !p.ts.Test(lexer.COMMA) {
			return d, nil
		}
	}
}

// parseVariableBlock reads the accessor blocks of a computed or observed
// variable. The variable is declared before the blocks so that they may
// refer to it.
func (p *Parser) parseVariableBlock(c ast.Common, ip *ast.IdentifierPattern, init ast.Expr, bind *binder) (ast.Decl, error) {
	ip.Inst.Access = c.Access
	if err := bind.inst(ip.Inst); err != nil {
		return nil, err
	}
	d := &ast.VariableBlockDecl{Common: c, Inst: ip.Inst, Annotation: ip.Annotation, Init: init}
	blocks, get, set, err := p.parseAccessors(ip.Name)
	if err != nil {
		return nil, err
	}
	d.Blocks, d.GetKeyword, d.SetKeyword = blocks, get, set
	if init != nil && d.Block(ast.Getter) != nil {
		if err := p.errorf(ip.Pos, "variable with a getter cannot have an initial value"); err != nil {
			return nil, err
		}
	}
	return d, nil
}

var accessorKinds = map[string]ast.AccessorKind{
	"get":     ast.Getter,
	"set":     ast.Setter,
	"willSet": ast.WillSetter,
	"didSet":  ast.DidSetter,
}

// atAccessor reports whether the token after '{' starts an accessor
// rather than the body of an implicit getter.
func (p *Parser) atAccessor() bool {
	t := p.peek()
	switch t.Kind {
	case lexer.ATMARK, lexer.MUTATING, lexer.NONMUTATING:
		return true
	case lexer.IDENTIFIER:
		_, ok := accessorKinds[t.Text]
		if !ok {
			return false
		}
		switch p.look(1).Kind {
		case lexer.LBRACE, lexer.RBRACE, lexer.LPAREN, lexer.IDENTIFIER:
			return true
		}
	}
	return false
}

// parseAccessors reads { get { } set(v) { } }, { get set } or the body
// of an implicit getter. name is reported by __FUNCTION__ inside.
func (p *Parser) parseAccessors(name string) ([]*ast.AccessorBlock, bool, bool, error) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, false, false, err
	}
	if !p.atAccessor() {
		blk := &ast.AccessorBlock{Kind: ast.Getter}
		if err := p.parseAccessorBody(blk, name, open.Pos); err != nil {
			return nil, false, false, err
		}
		return []*ast.AccessorBlock{blk}, false, false, nil
	}
	var blocks []*ast.AccessorBlock
	var getKw, setKw bool
	for {
		t := p.peek()
		if t.Kind == lexer.RBRACE || t.Kind == lexer.EOF {
			break
		}
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, false, false, err
		}
		p.ts.Test(lexer.MUTATING, lexer.NONMUTATING)
		t = p.peek()
		kind, ok := accessorKinds[t.Text]
		if t.Kind != lexer.IDENTIFIER || !ok {
			if err := p.unexpected(t, "'get', 'set', 'willSet' or 'didSet'"); err != nil {
				return nil, false, false, err
			}
			p.next()
			continue
		}
		p.next()
		if p.peek().Kind != lexer.LBRACE && p.peek().Kind != lexer.LPAREN {
			switch kind {
			case ast.Getter:
				getKw = true
			case ast.Setter:
				setKw = true
			default:
				if err := p.unexpected(p.peek(), "'{' after '"+t.Text+"'"); err != nil {
					return nil, false, false, err
				}
			}
			continue
		}
		blk := &ast.AccessorBlock{Attrs: attrs, Kind: kind}
		if err := p.parseAccessorBlock(blk, name, t.Pos); err != nil {
			return nil, false, false, err
		}
		blocks = append(blocks, blk)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, false, false, err
	}
	return blocks, getKw, setKw, nil
}

// parseAccessorBlock reads [(param)] { body } after an accessor name.
// Setters see newValue and didSet sees oldValue unless a name is given.
func (p *Parser) parseAccessorBlock(blk *ast.AccessorBlock, name string, pos source.Pos) error {
	p.m.Enter(scope.Function, pos)
	param, paramPos := "", pos
	switch blk.Kind {
	case ast.Setter, ast.WillSetter:
		param = "newValue"
	case ast.DidSetter:
		param = "oldValue"
	}
	if p.ts.Test(lexer.LPAREN) {
		t, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return err
		}
		if blk.Kind == ast.Getter {
			if err := p.errorf(t.Pos, "getter cannot have a parameter"); err != nil {
				return err
			}
		} else if t.Kind == lexer.IDENTIFIER {
			param, paramPos = t.Text, t.Pos
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return err
		}
	}
	if param != "" {
		inst, err := p.create(scope.ConstantInst, param, paramPos)
		if err != nil {
			return err
		}
		blk.Param = inst
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return err
	}
	p.enterFunc(name)
	body, err := p.parseProcedures(lexer.RBRACE)
	p.leaveFunc()
	if err != nil {
		return err
	}
	blk.Body = body
	end, err := p.expect(lexer.RBRACE)
	if err != nil {
		return err
	}
	blk.Scope, err = p.leave(scope.Function, end.Pos)
	return err
}

// parseAccessorBody reads the body of an implicit getter; the '{' has been
// consumed.
func (p *Parser) parseAccessorBody(blk *ast.AccessorBlock, name string, pos source.Pos) error {
	p.m.Enter(scope.Function, pos)
	p.enterFunc(name)
	body, err := p.parseProcedures(lexer.RBRACE)
	p.leaveFunc()
	if err != nil {
		return err
	}
	blk.Body = body
	end, err := p.expect(lexer.RBRACE)
	if err != nil {
		return err
	}
	blk.Scope, err = p.leave(scope.Function, end.Pos)
	return err
}

// parseTypealias reads typealias Name = Type. Protocols declare associated
// types with an inheritance list and no type.
func (p *Parser) parseTypealias(c ast.Common) (ast.Decl, error) {
	p.next()
	name, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	inst := scope.NewInst(scope.TypeInst, name.Text, name.Pos)
	inst.Access = c.Access
	if name.Kind == lexer.IDENTIFIER {
		if err := p.declare(inst); err != nil {
			return nil, err
		}
	}
	d := &ast.TypealiasDecl{Common: c, Inst: inst}
	if d.Inherits, err = p.parseInheritance(); err != nil {
		return nil, err
	}
	if p.ts.Test(lexer.ASSIGN) {
		if d.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	} else if p.m.Current().Kind != scope.Protocol {
		if err := p.unexpected(p.peek(), "'=' and the aliased type"); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// parseFuncName reads an identifier or an operator as a function name.
// The returned name is empty when neither follows.
func (p *Parser) parseFuncName() (name string, operator bool, err error) {
	t := p.peek()
	switch {
	case t.Kind == lexer.IDENTIFIER:
		p.next()
		return t.Text, false, nil
	case isOperator(t):
		p.next()
		return t.Text, true, nil
	}
	return "", false, p.unexpected(t, "function name")
}

// parseFunc reads a function or operator function. The function is
// declared before its body so that it can call itself.
//
//	func name<T>(a: T)(b: Int) throws -> [T] { ... }
func (p *Parser) parseFunc(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	pos := p.peek().Pos
	name, operator, err := p.parseFuncName()
	if err != nil {
		return nil, err
	}
	fb := ast.NewFuncBuilder(c)
	inst := scope.NewInst(scope.FunctionInst, name, pos)
	inst.Access = c.Access
	if name != "" {
		if err := p.declare(inst); err != nil {
			return nil, err
		}
	}
	fb.SetInst(inst, operator)
	p.m.Enter(scope.Function, kw.Pos)
	p.enterFunc(name)
	err = p.parseFuncRest(fb, true)
	p.leaveFunc()
	if err != nil {
		return nil, err
	}
	sc, err := p.leave(scope.Function, p.peek().Pos)
	if err != nil {
		return nil, err
	}
	fb.SetScope(sc)
	d, err := fb.BuildFunc()
	if err != nil {
		return nil, p.buildErr(err)
	}
	return d, nil
}

// parseFuncRest reads generics, parameter clauses, throws, the result and
// the optional body of a function or initializer inside its scope.
func (p *Parser) parseFuncRest(fb *ast.FuncBuilder, result bool) error {
	if p.atOpenAngle() {
		g, err := p.parseGenericParams()
		if err != nil {
			return err
		}
		fb.SetGenerics(g)
	}
	clauses := 0
	for p.peek().Kind == lexer.LPAREN {
		params, err := p.parseParamClause(false)
		if err != nil {
			return err
		}
		fb.AddParams(params)
		clauses++
	}
	if clauses == 0 {
		if err := p.unexpected(p.peek(), "parameter clause"); err != nil {
			return err
		}
		fb.AddParams(nil)
	}
	switch p.peek().Kind {
	case lexer.THROWS:
		p.next()
		fb.SetThrows(ast.Throws)
	case lexer.RETHROWS:
		p.next()
		fb.SetThrows(ast.Rethrows)
	}
	if result && p.ts.Test(lexer.ARROW) {
		attrs, err := p.parseAttributes()
		if err != nil {
			return err
		}
		t, err := p.parseType()
		if err != nil {
			return err
		}
		fb.SetResult(attrs, t)
	}
	if p.peek().Kind == lexer.LBRACE {
		p.next()
		body, err := p.parseProcedures(lexer.RBRACE)
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.RBRACE); err != nil {
			return err
		}
		fb.SetBody(body)
	}
	return nil
}

// parseParamClause reads (a: Int, b c: String = "", d: Int...) and
// declares every named parameter in the current scope. Closure parameters
// may omit their types.
func (p *Parser) parseParamClause(closure bool) ([]*ast.Param, error) {
	p.next()
	params := []*ast.Param{}
	if p.ts.Test(lexer.RPAREN) {
		return params, nil
	}
	for {
		param, err := p.parseParam(closure)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	_, err := p.expect(lexer.RPAREN)
	return params, err
}

func isParamName(t lexer.Token) bool {
	return t.Kind == lexer.IDENTIFIER || t.Kind == lexer.UNDERSCORE
}

func paramText(t lexer.Token) string {
	switch t.Kind {
	case lexer.IDENTIFIER:
		return t.Text
	case lexer.UNDERSCORE:
		return "_"
	}
	return t.Kind.String()
}

func (p *Parser) parseParam(closure bool) (*ast.Param, error) {
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	param := &ast.Param{Attrs: attrs, Pos: p.peek().Pos}
	switch p.peek().Kind {
	case lexer.LET:
		p.next()
		param.Kind = ast.ParamLet
	case lexer.VAR:
		p.next()
		param.Kind = ast.ParamVar
	case lexer.INOUT:
		p.next()
		param.Kind = ast.ParamInOut
	}
	first := p.peek()
	switch {
	case isParamName(first), first.Kind.IsKeyword() && isParamName(p.look(1)):
		p.next()
	default:
		if err := p.unexpected(first, "parameter name"); err != nil {
			return nil, err
		}
		param.Name = "_"
		return param, nil
	}
	param.Name, param.Pos = paramText(first), first.Pos
	if second := p.peek(); isParamName(second) {
		p.next()
		param.External = param.Name
		param.Name, param.Pos = paramText(second), second.Pos
	}
	if p.peek().Kind == lexer.COLON {
		more, t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		param.Attrs = append(param.Attrs, more...)
		param.Type = t
	} else if !closure {
		if err := p.unexpected(p.peek(), "':' and the parameter type"); err != nil {
			return nil, err
		}
	}
	if param.Type != nil && p.testVariadic() {
		if param.Kind != ast.ParamPlain {
			if err := p.errorf(param.Pos, "variadic parameter cannot declare as 'let', 'var' or 'inout'"); err != nil {
				return nil, err
			}
		}
		param.Kind = ast.ParamVariadic
	}
	if p.ts.Test(lexer.ASSIGN) {
		if param.Kind == ast.ParamInOut {
			if err := p.errorf(param.Pos, "'inout' parameter cannot have a default argument"); err != nil {
				return nil, err
			}
		}
		if param.Default, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if param.Name != "_" {
		kind := scope.ConstantInst
		if param.Kind == ast.ParamVar || param.Kind == ast.ParamInOut {
			kind = scope.VariableInst
		}
		if param.Inst, err = p.create(kind, param.Name, param.Pos); err != nil {
			return nil, err
		}
	}
	return param, nil
}

// nominal is what the enum, struct, class and protocol parsers share.
type nominal struct {
	inst     *scope.Inst
	generics *ast.GenericParamClause
	inherits *ast.Inheritance
	members  []ast.Decl
	scope    *scope.Scope
}

// parseNominal reads Name<Generics>: Inheritance { members } and declares
// Name. Generic parameters and members live in the body scope of the new
// inst.
func (p *Parser) parseNominal(c ast.Common, kind scope.InstKind, generic bool) (*nominal, error) {
	kw := p.next()
	name, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	n := &nominal{inst: scope.NewInst(kind, name.Text, name.Pos)}
	n.inst.Access = c.Access
	if name.Kind == lexer.IDENTIFIER {
		if err := p.declare(n.inst); err != nil {
			return nil, err
		}
	} else {
		n.inst.Name, n.inst.Pos = "", kw.Pos
	}
	sc := p.m.EnterBody(n.inst, kw.Pos)
	if generic && p.atOpenAngle() {
		if n.generics, err = p.parseGenericParams(); err != nil {
			return nil, err
		}
	}
	if n.inherits, err = p.parseInheritance(); err != nil {
		return nil, err
	}
	if n.members, err = p.parseMembers(); err != nil {
		return nil, err
	}
	if n.scope, err = p.leave(sc.Kind, p.peek().Pos); err != nil {
		return nil, err
	}
	return n, nil
}

// parseMembers reads { declarations } of a nominal type or extension.
func (p *Parser) parseMembers() ([]ast.Decl, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var members []ast.Decl
	for {
		switch t := p.peek(); t.Kind {
		case lexer.RBRACE:
			p.next()
			return members, nil
		case lexer.EOF:
			return members, p.unexpected(t, "'}'")
		case lexer.SEMICOLON:
			p.next()
			continue
		}
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		if d != nil {
			members = append(members, d)
		}
	}
}

func (p *Parser) parseEnum(c ast.Common) (ast.Decl, error) {
	d := &ast.EnumDecl{Common: c, Indirect: c.Has(ast.ModIndirect)}
	p.enums = append(p.enums, &enumState{decl: d})
	n, err := p.parseNominal(c, scope.EnumInst, true)
	p.enums = p.enums[:len(p.enums)-1]
	if err != nil {
		return nil, err
	}
	d.Inst, d.Generics, d.Inherits, d.Members, d.Scope = n.inst, n.generics, n.inherits, n.members, n.scope
	d.Inst.Decl = d
	return d, nil
}

func (p *Parser) parseStruct(c ast.Common) (ast.Decl, error) {
	n, err := p.parseNominal(c, scope.StructInst, true)
	if err != nil {
		return nil, err
	}
	d := &ast.StructDecl{Common: c, Inst: n.inst, Generics: n.generics, Inherits: n.inherits, Members: n.members, Scope: n.scope}
	d.Inst.Decl = d
	return d, nil
}

func (p *Parser) parseClass(c ast.Common) (ast.Decl, error) {
	n, err := p.parseNominal(c, scope.ClassInst, true)
	if err != nil {
		return nil, err
	}
	d := &ast.ClassDecl{Common: c, Inst: n.inst, Generics: n.generics, Inherits: n.inherits, Members: n.members, Scope: n.scope}
	d.Inst.Decl = d
	return d, nil
}

func (p *Parser) parseProtocol(c ast.Common) (ast.Decl, error) {
	n, err := p.parseNominal(c, scope.ProtocolInst, false)
	if err != nil {
		return nil, err
	}
	d := &ast.ProtocolDecl{Common: c, Inst: n.inst, Inherits: n.inherits, Members: n.members, Scope: n.scope}
	d.Inst.Decl = d
	return d, nil
}

// parseExtension reads extension Type: Protocols { members }. The
// extended type is a type ref resolved later; the extension inst carries
// it and gets the members of its body like a nominal type.
func (p *Parser) parseExtension(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	it, err := p.parseIdentifierType()
	if err != nil {
		return nil, err
	}
	inst := scope.NewInst(scope.ExtensionInst, it.Name, it.Pos)
	inst.Access = c.Access
	inst.Extends = it.Ref
	if err := p.declare(inst); err != nil {
		return nil, err
	}
	d := &ast.ExtensionDecl{Common: c, Inst: inst, Type: it}
	inst.Decl = d
	sc := p.m.EnterBody(inst, kw.Pos)
	if d.Inherits, err = p.parseInheritance(); err != nil {
		return nil, err
	}
	if d.Members, err = p.parseMembers(); err != nil {
		return nil, err
	}
	if d.Scope, err = p.leave(sc.Kind, p.peek().Pos); err != nil {
		return nil, err
	}
	return d, nil
}

// parseEnumCase reads a case line of an enum.
//
//	case North, South
//	case Value(Int), Pair(a: Int, b: Int)
//	case Zero = 0, One
func (p *Parser) parseEnumCase(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	d := &ast.EnumCaseDecl{Attrs: c.Attrs, Indirect: c.Has(ast.ModIndirect), Pos: kw.Pos}
	var enum *enumState
	if len(p.enums) > 0 && p.m.Current().Owner != nil && p.m.Current().Owner.Kind == scope.EnumInst {
		enum = p.enums[len(p.enums)-1]
	} else if err := p.errorf(kw.Pos, "enum 'case' is not allowed outside of an enum"); err != nil {
		return nil, err
	}
	for {
		name, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if name.Kind != lexer.IDENTIFIER {
			return d, nil
		}
		ec := &ast.EnumCase{}
		switch {
		case p.raw().Kind == lexer.LPAREN:
			if ec.Assoc, err = p.parseTupleType(); err != nil {
				return nil, err
			}
		case p.ts.Test(lexer.ASSIGN):
			if ec.Raw, err = p.parseRawValue(); err != nil {
				return nil, err
			}
		}
		if err := p.checkEnumStyle(enum, ec, name.Pos); err != nil {
			return nil, err
		}
		inst := scope.NewInst(scope.EnumCaseInst, name.Text, name.Pos)
		if enum != nil {
			if err := p.declare(inst); err != nil {
				return nil, err
			}
		}
		ec.Inst = inst
		d.Cases = append(d.Cases, ec)
		if !p.ts.Test(lexer.COMMA) {
			return d, nil
		}
	}
}

// enumState follows the cases of the enum being parsed.
type enumState struct {
	decl  *ast.EnumDecl
	union bool // a case with associated values was seen
}

// checkEnumStyle rejects mixing cases with associated values and cases
// with raw values in one enum.
func (p *Parser) checkEnumStyle(enum *enumState, ec *ast.EnumCase, pos source.Pos) error {
	if enum == nil {
		return nil
	}
	switch {
	case ec.Raw != nil:
		enum.decl.RawValue = true
		if enum.union {
			return p.errorf(pos, "enum with associated values cannot have raw values")
		}
	case ec.Assoc != nil:
		enum.union = true
		if enum.decl.RawValue {
			return p.errorf(pos, "enum with raw values cannot have associated values")
		}
	}
	return nil
}

// parseRawValue reads the literal after 'case Name ='. A leading '-' is
// folded into numeric literals.
func (p *Parser) parseRawValue() (ast.Expr, error) {
	t := p.peek()
	negative := false
	if t.Kind == lexer.PREFIX_OPERATOR && t.Text == "-" {
		p.next()
		negative = true
		t = p.peek()
	}
	switch t.Kind {
	case lexer.INTEGER_LITERAL:
		p.next()
		v := t.Int
		if negative {
			v = -v
		}
		return &ast.IntegerLiteral{Value: v, Decimal: t.Decimal, Pos: t.Pos}, nil
	case lexer.FLOATING_POINT_LITERAL:
		p.next()
		v := t.Float
		if negative {
			v = -v
		}
		return &ast.FloatLiteral{Value: v, Pos: t.Pos}, nil
	case lexer.STRING_LITERAL:
		if !negative {
			p.next()
			return &ast.StringLiteral{Value: t.Text, Pos: t.Pos}, nil
		}
	}
	if err := p.unexpected(t, "raw value literal"); err != nil {
		return nil, err
	}
	return &ast.IntegerLiteral{Pos: t.Pos}, nil
}

// parseInit reads init, init? and init!.
func (p *Parser) parseInit(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	failable := ast.NotFailable
	switch p.raw().Kind {
	case lexer.POSTFIX_QUESTION:
		p.next()
		failable = ast.FailableOptional
	case lexer.POSTFIX_EXCLAMATION:
		p.next()
		failable = ast.FailableForced
	}
	fb := ast.NewFuncBuilder(c)
	p.m.Enter(scope.Function, kw.Pos)
	p.enterFunc("init")
	err := p.parseFuncRest(fb, false)
	p.leaveFunc()
	if err != nil {
		return nil, err
	}
	sc, err := p.leave(scope.Function, p.peek().Pos)
	if err != nil {
		return nil, err
	}
	fb.SetScope(sc)
	d, err := fb.BuildInit(failable)
	if err != nil {
		return nil, p.buildErr(err)
	}
	return d, nil
}

// parseDeinit reads deinit { body }.
func (p *Parser) parseDeinit(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	d := &ast.DeinitDecl{Common: c}
	p.m.Enter(scope.Function, kw.Pos)
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	p.enterFunc("deinit")
	body, err := p.parseProcedures(lexer.RBRACE)
	p.leaveFunc()
	if err != nil {
		return nil, err
	}
	d.Body = body
	end, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	if d.Scope, err = p.leave(scope.Function, end.Pos); err != nil {
		return nil, err
	}
	return d, nil
}

// parseSubscript reads subscript(params) -> Result { accessors }.
func (p *Parser) parseSubscript(c ast.Common) (ast.Decl, error) {
	kw := p.next()
	fb := ast.NewFuncBuilder(c)
	p.m.Enter(scope.Function, kw.Pos)
	if p.peek().Kind == lexer.LPAREN {
		params, err := p.parseParamClause(false)
		if err != nil {
			return nil, err
		}
		fb.AddParams(params)
	} else {
		if err := p.unexpected(p.peek(), "subscript parameter clause"); err != nil {
			return nil, err
		}
		fb.AddParams(nil)
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	fb.SetResult(attrs, result)
	blocks, get, set, err := p.parseAccessors("subscript")
	if err != nil {
		return nil, err
	}
	fb.SetBlocks(blocks, get, set)
	sc, err := p.leave(scope.Function, p.peek().Pos)
	if err != nil {
		return nil, err
	}
	fb.SetScope(sc)
	d, err := fb.BuildSubscript()
	if err != nil {
		return nil, p.buildErr(err)
	}
	return d, nil
}

// parseOperator reads an operator declaration.
//
//	infix operator ** { precedence 160 associativity right }
func (p *Parser) parseOperator(c ast.Common, fixity scope.Fixity) (ast.Decl, error) {
	p.next()
	name := p.peek()
	if !isOperator(name) {
		return nil, p.unexpected(name, "operator")
	}
	p.next()
	info := &scope.OperatorInfo{Fixity: fixity, Precedence: scope.DefaultPrecedence, Associativity: scope.AssocNone}
	if p.peek().Kind == lexer.LBRACE {
		if err := p.parseOperatorBody(info); err != nil {
			return nil, err
		}
	}
	inst := scope.NewInst(scope.OperatorInst, name.Text, name.Pos)
	inst.Operator = info
	if err := p.declare(inst); err != nil {
		return nil, err
	}
	return &ast.OperatorDecl{Common: c, Inst: inst}, nil
}

func (p *Parser) parseOperatorBody(info *scope.OperatorInfo) error {
	p.next()
	for {
		t := p.peek()
		switch t.Kind {
		case lexer.RBRACE:
			p.next()
			return nil
		case lexer.PRECEDENCE:
			p.next()
			n, err := p.expect(lexer.INTEGER_LITERAL)
			if err != nil {
				return err
			}
			if info.Fixity != scope.Infix {
				if err := p.errorf(t.Pos, "only infix operators may declare a precedence"); err != nil {
					return err
				}
			}
			info.Precedence = int(n.Int)
		case lexer.ASSOCIATIVITY:
			p.next()
			a := p.peek()
			if a.Kind != lexer.IDENTIFIER {
				a.Text = ""
			}
			switch a.Text {
			case "left":
				info.Associativity = scope.AssocLeft
			case "right":
				info.Associativity = scope.AssocRight
			case "none":
				info.Associativity = scope.AssocNone
			default:
				if err := p.unexpected(a, "'left', 'right' or 'none'"); err != nil {
					return err
				}
				continue
			}
			p.next()
			if info.Fixity != scope.Infix {
				if err := p.errorf(t.Pos, "only infix operators may declare an associativity"); err != nil {
					return err
				}
			}
		case lexer.EOF:
			return p.unexpected(t, "'}'")
		default:
			if err := p.unexpected(t, "'precedence', 'associativity' or '}'"); err != nil {
				return err
			}
			p.next()
		}
	}
}
