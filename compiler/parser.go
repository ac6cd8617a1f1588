package compiler

// ---------------------------------------------------------------------------
// Parser: Recursive descent parser for B-Minor syntax
// ---------------------------------------------------------------------------

// Parser parses B-Minor source code into an AST. Parsing stops at the
// first error; no recovery or resynchronization is attempted, and no
// partial AST escapes to the caller.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	err       error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to fill curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete program. On failure the returned error is a
// *ParseError or, for lexical errors, a *LexError.
func Parse(input string) (*Program, error) {
	p := NewParser(input)
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

// ParseExpr parses a standalone expression spanning the whole input.
func ParseExpr(input string) (Expr, error) {
	p := NewParser(input)
	expr := p.parseExpression()
	if p.err == nil && !p.curTokenIs(TokenEOF) {
		p.errorExpected("end of input")
	}
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

// nextToken advances to the next token. A lexical error token aborts
// the parse as soon as it reaches the cursor.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
	if p.curToken.Type == TokenError && p.err == nil {
		p.err = &LexError{Msg: p.curToken.Lexeme, Pos: p.curToken.Pos}
	}
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the peek token is of the given type.
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// expect advances if the current token matches, otherwise records an error.
func (p *Parser) expect(t TokenType, what string) bool {
	if p.err != nil {
		return false
	}
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorExpected(what)
	return false
}

// errorExpected records the first parse error against the current token.
func (p *Parser) errorExpected(what string) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{Expected: what, Found: p.curToken, Pos: p.curToken.Pos}
}

// ---------------------------------------------------------------------------
// Program and declarations
// ---------------------------------------------------------------------------

func (p *Parser) parseProgram() *Program {
	startPos := p.curToken.Pos
	prog := &Program{}
	for !p.curTokenIs(TokenEOF) {
		decl := p.parseDeclaration()
		if decl == nil {
			return nil
		}
		prog.Decls = append(prog.Decls, decl)
	}
	prog.SpanVal = MakeSpan(startPos, p.curToken.Pos)
	return prog
}

// parseDeclaration parses name: type ...; the shape after the type
// decides between a variable and a function declaration.
func (p *Parser) parseDeclaration() Decl {
	if p.err != nil {
		return nil
	}
	startPos := p.curToken.Pos
	if !p.curTokenIs(TokenIdentifier) {
		p.errorExpected("declaration name")
		return nil
	}
	name := p.curToken.Lexeme
	p.nextToken()
	if !p.expect(TokenColon, "':' after declaration name") {
		return nil
	}

	if p.curTokenIs(TokenFunction) {
		decl := p.parseFuncDecl(name, startPos)
		if decl == nil {
			return nil
		}
		return decl
	}
	decl := p.parseVarDeclTail(name, startPos)
	if decl == nil {
		return nil
	}
	return decl
}

// parseVarDeclTail parses the rest of a variable declaration after
// name and colon have been consumed.
func (p *Parser) parseVarDeclTail(name string, startPos Position) *VarDecl {
	typ := p.parseType()
	if typ == nil {
		return nil
	}

	var value Expr
	switch {
	case p.curTokenIs(TokenAssign):
		p.nextToken()
		value = p.parseExpression()
		if value == nil {
			return nil
		}
		if !p.expect(TokenSemicolon, "';' after initializer") {
			return nil
		}
	case p.curTokenIs(TokenSemicolon):
		p.nextToken()
	default:
		p.errorExpected("'=' or ';'")
		return nil
	}

	return &VarDecl{
		SpanVal: MakeSpan(startPos, p.curToken.Pos),
		Name:    name,
		Type:    typ,
		Value:   value,
	}
}

// parseFuncDecl parses the rest of a function declaration. A body
// follows '='; a bare ';' makes it a prototype.
func (p *Parser) parseFuncDecl(name string, startPos Position) *FuncDecl {
	ft := p.parseFuncType()
	if ft == nil {
		return nil
	}

	var body *BlockStmt
	switch {
	case p.curTokenIs(TokenAssign):
		p.nextToken()
		if !p.curTokenIs(TokenLBrace) {
			p.errorExpected("function body block")
			return nil
		}
		body = p.parseBlock()
		if body == nil {
			return nil
		}
	case p.curTokenIs(TokenSemicolon):
		p.nextToken()
	default:
		p.errorExpected("'=' or ';'")
		return nil
	}

	return &FuncDecl{
		SpanVal: MakeSpan(startPos, p.curToken.Pos),
		Name:    name,
		Type:    ft,
		Body:    body,
	}
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

var basicKinds = map[TokenType]TypeKind{
	TokenInteger: TypeInteger,
	TokenBoolean: TypeBoolean,
	TokenChar:    TypeChar,
	TokenString:  TypeString,
	TokenVoid:    TypeVoid,
}

func (p *Parser) parseType() Type {
	if p.err != nil {
		return nil
	}
	startPos := p.curToken.Pos
	switch p.curToken.Type {
	case TokenInteger, TokenBoolean, TokenChar, TokenString, TokenVoid:
		kind := basicKinds[p.curToken.Type]
		p.nextToken()
		return &BasicType{SpanVal: MakeSpan(startPos, p.curToken.Pos), Kind: kind}

	case TokenArray:
		p.nextToken()
		if !p.expect(TokenLBracket, "'[' after 'array'") {
			return nil
		}
		// The size, when present, must be an integer literal.
		var size *IntLiteral
		if p.curTokenIs(TokenIntLiteral) {
			size = p.parseIntLiteral()
		} else if !p.curTokenIs(TokenRBracket) {
			p.errorExpected("array size integer literal or ']'")
			return nil
		}
		if !p.expect(TokenRBracket, "']' after array size") {
			return nil
		}
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &ArrayType{SpanVal: MakeSpan(startPos, p.curToken.Pos), Size: size, Elem: elem}

	case TokenFunction:
		ft := p.parseFuncType()
		if ft == nil {
			return nil
		}
		return ft

	default:
		p.errorExpected("type")
		return nil
	}
}

func (p *Parser) parseFuncType() *FuncType {
	startPos := p.curToken.Pos
	if !p.expect(TokenFunction, "'function'") {
		return nil
	}
	ret := p.parseType()
	if ret == nil {
		return nil
	}
	if !p.expect(TokenLParen, "'(' before parameter list") {
		return nil
	}
	var params []*Param
	for !p.curTokenIs(TokenRParen) {
		if len(params) > 0 {
			if !p.expect(TokenComma, "',' between parameters") {
				return nil
			}
		}
		param := p.parseParam()
		if param == nil {
			return nil
		}
		params = append(params, param)
	}
	p.nextToken() // consume )
	return &FuncType{SpanVal: MakeSpan(startPos, p.curToken.Pos), Return: ret, Params: params}
}

// parseParam parses name: type. The name is optional: nested function
// types may list bare parameter types.
func (p *Parser) parseParam() *Param {
	if p.err != nil {
		return nil
	}
	var name string
	if p.curTokenIs(TokenIdentifier) && p.peekTokenIs(TokenColon) {
		name = p.curToken.Lexeme
		p.nextToken()
		p.nextToken()
	}
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	return &Param{Name: name, Type: typ}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() Stmt {
	if p.err != nil {
		return nil
	}
	switch p.curToken.Type {
	case TokenLBrace:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		return block
	case TokenIf:
		return p.parseIf()
	case TokenFor:
		return p.parseFor()
	case TokenPrint:
		return p.parsePrint()
	case TokenReturn:
		return p.parseReturn()
	case TokenIdentifier:
		if p.peekTokenIs(TokenColon) {
			return p.parseDeclStmt()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() *BlockStmt {
	startPos := p.curToken.Pos
	if !p.expect(TokenLBrace, "'{'") {
		return nil
	}
	block := &BlockStmt{}
	for !p.curTokenIs(TokenRBrace) {
		if p.curTokenIs(TokenEOF) {
			p.errorExpected("'}' closing block")
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	p.nextToken() // consume }
	block.SpanVal = MakeSpan(startPos, p.curToken.Pos)
	return block
}

func (p *Parser) parseIf() Stmt {
	startPos := p.curToken.Pos
	p.nextToken() // consume if
	if !p.expect(TokenLParen, "'(' after 'if'") {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(TokenRParen, "')' after condition") {
		return nil
	}
	then := p.parseStatement()
	if then == nil {
		return nil
	}

	// Greedy: an else binds to the innermost open if.
	var els Stmt
	if p.curTokenIs(TokenElse) {
		p.nextToken()
		els = p.parseStatement()
		if els == nil {
			return nil
		}
	}

	return &IfStmt{
		SpanVal: MakeSpan(startPos, p.curToken.Pos),
		Cond:    cond,
		Then:    then,
		Else:    els,
	}
}

func (p *Parser) parseFor() Stmt {
	startPos := p.curToken.Pos
	p.nextToken() // consume for
	if !p.expect(TokenLParen, "'(' after 'for'") {
		return nil
	}

	var init, cond, post Expr
	if !p.curTokenIs(TokenSemicolon) {
		if init = p.parseExpression(); init == nil {
			return nil
		}
	}
	if !p.expect(TokenSemicolon, "';' after for initializer") {
		return nil
	}
	if !p.curTokenIs(TokenSemicolon) {
		if cond = p.parseExpression(); cond == nil {
			return nil
		}
	}
	if !p.expect(TokenSemicolon, "';' after for condition") {
		return nil
	}
	if !p.curTokenIs(TokenRParen) {
		if post = p.parseExpression(); post == nil {
			return nil
		}
	}
	if !p.expect(TokenRParen, "')' after for clauses") {
		return nil
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}

	return &ForStmt{
		SpanVal: MakeSpan(startPos, p.curToken.Pos),
		Init:    init,
		Cond:    cond,
		Post:    post,
		Body:    body,
	}
}

func (p *Parser) parsePrint() Stmt {
	startPos := p.curToken.Pos
	p.nextToken() // consume print

	var args []Expr
	if !p.curTokenIs(TokenSemicolon) {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.curTokenIs(TokenComma) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expect(TokenSemicolon, "';' after print arguments") {
		return nil
	}

	return &PrintStmt{SpanVal: MakeSpan(startPos, p.curToken.Pos), Args: args}
}

func (p *Parser) parseReturn() Stmt {
	startPos := p.curToken.Pos
	p.nextToken() // consume return

	var value Expr
	if !p.curTokenIs(TokenSemicolon) {
		if value = p.parseExpression(); value == nil {
			return nil
		}
	}
	if !p.expect(TokenSemicolon, "';' after return value") {
		return nil
	}

	return &ReturnStmt{SpanVal: MakeSpan(startPos, p.curToken.Pos), Value: value}
}

func (p *Parser) parseExprStmt() Stmt {
	startPos := p.curToken.Pos
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.expect(TokenSemicolon, "';' after expression") {
		return nil
	}
	return &ExprStmt{SpanVal: MakeSpan(startPos, p.curToken.Pos), Expr: expr}
}

// parseDeclStmt parses a local variable declaration. Functions may only
// be declared at program scope.
func (p *Parser) parseDeclStmt() Stmt {
	startPos := p.curToken.Pos
	name := p.curToken.Lexeme
	p.nextToken()
	p.nextToken() // consume :

	if p.curTokenIs(TokenFunction) {
		p.errorExpected("variable type")
		return nil
	}
	decl := p.parseVarDeclTail(name, startPos)
	if decl == nil {
		return nil
	}
	return &DeclStmt{SpanVal: decl.SpanVal, Decl: decl}
}

// ---------------------------------------------------------------------------
// Expressions (precedence climbing)
// ---------------------------------------------------------------------------

type opInfo struct {
	prec       int
	rightAssoc bool
}

// binaryOps maps each binary operator to its binding power. All binary
// operators are left-associative except assignment and exponentiation.
var binaryOps = map[TokenType]opInfo{
	TokenAssign:    {1, true},
	TokenOr:        {2, false},
	TokenAnd:       {3, false},
	TokenEq:        {4, false},
	TokenNotEq:     {4, false},
	TokenLess:      {5, false},
	TokenLessEq:    {5, false},
	TokenGreater:   {5, false},
	TokenGreaterEq: {5, false},
	TokenPlus:      {6, false},
	TokenMinus:     {6, false},
	TokenStar:      {7, false},
	TokenSlash:     {7, false},
	TokenPercent:   {7, false},
	TokenCaret:     {8, true},
}

func (p *Parser) parseExpression() Expr {
	return p.parseBinary(1)
}

// parseBinary climbs the binaryOps table: operators below minPrec are
// left for an enclosing call to consume.
func (p *Parser) parseBinary(minPrec int) Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		info, ok := binaryOps[p.curToken.Type]
		if !ok || info.prec < minPrec {
			return left
		}
		op := p.curToken.Type
		opTok := p.curToken
		p.nextToken()

		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		right := p.parseBinary(nextMin)
		if right == nil {
			return nil
		}

		span := MakeSpan(left.Span().Start, right.Span().End)
		if op == TokenAssign {
			if !isLValue(left) {
				if p.err == nil {
					p.err = &ParseError{Expected: "assignable expression", Found: opTok, Pos: opTok.Pos}
				}
				return nil
			}
			left = &AssignExpr{SpanVal: span, Target: left, Value: right}
		} else {
			left = &BinaryExpr{SpanVal: span, Op: op, Left: left, Right: right}
		}
	}
}

// isLValue reports whether expr may appear on the left of an assignment.
func isLValue(expr Expr) bool {
	switch expr.(type) {
	case *Ident, *IndexExpr:
		return true
	}
	return false
}

// parseUnary parses prefix - and !, which bind tighter than any binary
// operator.
func (p *Parser) parseUnary() Expr {
	if p.err != nil {
		return nil
	}
	if p.curTokenIs(TokenMinus) || p.curTokenIs(TokenBang) {
		startPos := p.curToken.Pos
		op := p.curToken.Type
		p.nextToken()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &UnaryExpr{
			SpanVal: MakeSpan(startPos, operand.Span().End),
			Op:      op,
			Operand: operand,
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses call, index and increment/decrement suffixes.
func (p *Parser) parsePostfix() Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.curToken.Type {
		case TokenLParen:
			ident, ok := expr.(*Ident)
			if !ok {
				p.errorExpected("function name before '('")
				return nil
			}
			p.nextToken() // consume (
			var args []Expr
			for !p.curTokenIs(TokenRParen) {
				if len(args) > 0 {
					if !p.expect(TokenComma, "',' between arguments") {
						return nil
					}
				}
				arg := p.parseExpression()
				if arg == nil {
					return nil
				}
				args = append(args, arg)
			}
			p.nextToken() // consume )
			expr = &CallExpr{
				SpanVal: MakeSpan(expr.Span().Start, p.curToken.Pos),
				Callee:  ident.Name,
				Args:    args,
			}

		case TokenLBracket:
			p.nextToken() // consume [
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			if !p.expect(TokenRBracket, "']' after index") {
				return nil
			}
			expr = &IndexExpr{
				SpanVal: MakeSpan(expr.Span().Start, p.curToken.Pos),
				Array:   expr,
				Index:   index,
			}

		case TokenIncrement, TokenDecrement:
			op := p.curToken.Type
			p.nextToken()
			expr = &UnaryExpr{
				SpanVal: MakeSpan(expr.Span().Start, p.curToken.Pos),
				Op:      op,
				Operand: expr,
				Postfix: true,
			}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() Expr {
	if p.err != nil {
		return nil
	}
	startPos := p.curToken.Pos
	switch p.curToken.Type {
	case TokenIntLiteral:
		return p.parseIntLiteral()

	case TokenCharLiteral:
		value := []rune(p.curToken.Text)[0]
		p.nextToken()
		return &CharLiteral{SpanVal: MakeSpan(startPos, p.curToken.Pos), Value: value}

	case TokenStringLiteral:
		value := p.curToken.Text
		p.nextToken()
		return &StringLiteral{SpanVal: MakeSpan(startPos, p.curToken.Pos), Value: value}

	case TokenTrue, TokenFalse:
		value := p.curTokenIs(TokenTrue)
		p.nextToken()
		return &BoolLiteral{SpanVal: MakeSpan(startPos, p.curToken.Pos), Value: value}

	case TokenIdentifier:
		name := p.curToken.Lexeme
		p.nextToken()
		return &Ident{SpanVal: MakeSpan(startPos, p.curToken.Pos), Name: name}

	case TokenLParen:
		p.nextToken() // consume (
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(TokenRParen, "')'") {
			return nil
		}
		return &GroupExpr{SpanVal: MakeSpan(startPos, p.curToken.Pos), Inner: inner}

	case TokenLBrace:
		p.nextToken() // consume {
		var elems []Expr
		for !p.curTokenIs(TokenRBrace) {
			if len(elems) > 0 {
				if !p.expect(TokenComma, "',' between array elements") {
					return nil
				}
			}
			elem := p.parseExpression()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
		}
		p.nextToken() // consume }
		return &ArrayLiteral{SpanVal: MakeSpan(startPos, p.curToken.Pos), Elems: elems}

	default:
		p.errorExpected("expression")
		return nil
	}
}

func (p *Parser) parseIntLiteral() *IntLiteral {
	startPos := p.curToken.Pos
	value := p.curToken.Int
	p.nextToken()
	return &IntLiteral{SpanVal: MakeSpan(startPos, p.curToken.Pos), Value: value}
}
