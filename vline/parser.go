package vline

import "fmt"

// Parser is a recursive-descent parser over a flat token stream,
// producing the AST that CodeGen consumes. Its productions return the
// package's Result[T] wrapper rather than bare (T, error) pairs, since
// most productions recurse several levels
// deep before an error can surface.
type Parser struct {
	tokens  []Token
	idx     int
	srcName string
}

// NewParser wraps a token stream already ending in TokenEOF.
func NewParser(tokens []Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.srcName = tokens[0].Loc.FileName
	}
	return p
}

// Parse consumes the whole token stream and returns the program block.
func (p *Parser) Parse() Result[*Block] {
	block := &Block{Statements: []Stmt{}}
	for !p.isAtEnd() {
		res := p.statement()
		if res.IsErr() {
			return ResErr[*Block](res.Err)
		}
		block.Statements = append(block.Statements, res.Value)
	}
	return ResOk(block)
}

// --- token helpers ---

func (p *Parser) current() *Token { return &p.tokens[p.idx] }

func (p *Parser) previous() *Token { return &p.tokens[p.idx-1] }

func (p *Parser) isAtEnd() bool { return p.current().Kind == TokenEOF }

func (p *Parser) advance() *Token {
	if !p.isAtEnd() {
		p.idx++
	}
	return p.previous()
}

func (p *Parser) check(kind TokenType) bool {
	return !p.isAtEnd() && p.current().Kind == kind
}

func (p *Parser) match(kinds ...TokenType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) checkKeyword(kw string) bool {
	return p.check(TokenKeyword) && p.current().Value == kw
}

func (p *Parser) matchKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind TokenType, msg string) Result[*Token] {
	if p.check(kind) {
		return ResOk(p.advance())
	}
	return ResErr[*Token](NewSyntaxError(msg, p.current().Loc))
}

func (p *Parser) consumeKeyword(kw, msg string) *VLineError {
	if p.matchKeyword(kw) {
		return nil
	}
	return NewSyntaxError(msg, p.current().Loc)
}

// --- statements ---

func (p *Parser) statement() Result[Stmt] {
	if p.check(TokenKeyword) {
		switch p.current().Value {
		case "import":
			return p.importStatement()
		case "const":
			return p.constantDeclaration()
		case "class":
			return p.classDeclaration()
		case "fn":
			return p.functionDeclaration()
		case "if":
			return p.ifStatement()
		case "while":
			return p.whileStatement()
		case "for":
			return p.forStatement()
		case "return":
			return p.returnStatement()
		case "break":
			tok := p.advance()
			return ResOk[Stmt](&BreakStatement{Tok: tok})
		case "continue":
			tok := p.advance()
			return ResOk[Stmt](&ContinueStatement{Tok: tok})
		case "raise":
			return p.raiseStatement()
		}
	}
	return p.assignmentOrExpressionStatement()
}

func (p *Parser) blockUntil(terminators ...string) Result[Block] {
	block := Block{Statements: []Stmt{}}
	for {
		if p.isAtEnd() {
			return ResErr[Block](NewSyntaxError("unexpected end of input, expected one of block terminators", p.current().Loc))
		}
		for _, t := range terminators {
			if p.checkKeyword(t) {
				return ResOk(block)
			}
		}
		res := p.statement()
		if res.IsErr() {
			return ResErr[Block](res.Err)
		}
		block.Statements = append(block.Statements, res.Value)
	}
}

func (p *Parser) importStatement() Result[Stmt] {
	tok := p.advance()
	nameRes := p.consume(TokenIdent, "expected package name after 'import'")
	if nameRes.IsErr() {
		return ResErr[Stmt](nameRes.Err)
	}
	return ResOk[Stmt](&ImportStatement{Tok: tok, PackageName: nameRes.Value.Value})
}

func (p *Parser) constantDeclaration() Result[Stmt] {
	tok := p.advance()
	nameRes := p.consume(TokenIdent, "expected identifier after 'const'")
	if nameRes.IsErr() {
		return ResErr[Stmt](nameRes.Err)
	}
	if eq := p.consume(TokenAssign, "expected '=' in constant declaration"); eq.IsErr() {
		return ResErr[Stmt](eq.Err)
	}
	valRes := p.expression()
	if valRes.IsErr() {
		return ResErr[Stmt](valRes.Err)
	}
	return ResOk[Stmt](&ConstantDeclaration{Tok: tok, Name: nameRes.Value.Value, Value: valRes.Value})
}

func (p *Parser) classDeclaration() Result[Stmt] {
	tok := p.advance()
	nameRes := p.consume(TokenIdent, "expected class name")
	if nameRes.IsErr() {
		return ResErr[Stmt](nameRes.Err)
	}
	decl := &ClassDeclaration{
		Tok:       tok,
		ClassName: nameRes.Value.Value,
		Members:   map[string]*Assignment{},
		Methods:   map[string]*FunctionDeclaration{},
	}
	if p.match(TokenColon) {
		parentRes := p.consume(TokenIdent, "expected parent class name after ':'")
		if parentRes.IsErr() {
			return ResErr[Stmt](parentRes.Err)
		}
		decl.HasParent = true
		decl.ParentName = parentRes.Value.Value
	}

	for !p.checkKeyword("end") {
		if p.isAtEnd() {
			return ResErr[Stmt](NewSyntaxError("unterminated class declaration, expected 'end'", p.current().Loc))
		}
		if p.checkKeyword("fn") {
			fnRes := p.functionDeclaration()
			if fnRes.IsErr() {
				return ResErr[Stmt](fnRes.Err)
			}
			fn := fnRes.Value.(*FunctionDeclaration)
			decl.Methods[fn.Name] = fn
			continue
		}
		memberRes := p.assignmentOrExpressionStatement()
		if memberRes.IsErr() {
			return ResErr[Stmt](memberRes.Err)
		}
		assign, ok := memberRes.Value.(*Assignment)
		if !ok {
			return ResErr[Stmt](NewSyntaxError("expected member default assignment or method in class body", p.current().Loc))
		}
		decl.Members[assign.Target] = assign
	}
	p.advance()
	return ResOk[Stmt](decl)
}

func (p *Parser) functionDeclaration() Result[Stmt] {
	tok := p.advance()
	nameRes := p.consume(TokenIdent, "expected function name")
	if nameRes.IsErr() {
		return ResErr[Stmt](nameRes.Err)
	}
	if lp := p.consume(TokenLParen, "expected '(' after function name"); lp.IsErr() {
		return ResErr[Stmt](lp.Err)
	}

	var params []string
	var defaults []Expr
	for !p.check(TokenRParen) {
		paramRes := p.consume(TokenIdent, "expected parameter name")
		if paramRes.IsErr() {
			return ResErr[Stmt](paramRes.Err)
		}
		params = append(params, paramRes.Value.Value)
		if p.match(TokenAssign) {
			defRes := p.expression()
			if defRes.IsErr() {
				return ResErr[Stmt](defRes.Err)
			}
			defaults = append(defaults, defRes.Value)
		} else {
			defaults = append(defaults, nil)
		}
		if !p.match(TokenComma) {
			break
		}
	}
	if rp := p.consume(TokenRParen, "expected ')' after parameter list"); rp.IsErr() {
		return ResErr[Stmt](rp.Err)
	}

	bodyRes := p.blockUntil("end")
	if bodyRes.IsErr() {
		return ResErr[Stmt](bodyRes.Err)
	}
	p.advance()

	return ResOk[Stmt](&FunctionDeclaration{
		Tok:        tok,
		Name:       nameRes.Value.Value,
		Parameters: params,
		Defaults:   defaults,
		Body:       bodyRes.Value,
	})
}

func (p *Parser) ifStatement() Result[Stmt] {
	tok := p.advance()
	condRes := p.expression()
	if condRes.IsErr() {
		return ResErr[Stmt](condRes.Err)
	}
	bodyRes := p.blockUntil("elif", "else", "end")
	if bodyRes.IsErr() {
		return ResErr[Stmt](bodyRes.Err)
	}

	stmt := &IfStatement{Tok: tok, Condition: condRes.Value, Body: bodyRes.Value}

	for p.checkKeyword("elif") {
		p.advance()
		elifCondRes := p.expression()
		if elifCondRes.IsErr() {
			return ResErr[Stmt](elifCondRes.Err)
		}
		elifBodyRes := p.blockUntil("elif", "else", "end")
		if elifBodyRes.IsErr() {
			return ResErr[Stmt](elifBodyRes.Err)
		}
		stmt.ElifClauses = append(stmt.ElifClauses, ElifClause{Condition: elifCondRes.Value, Body: elifBodyRes.Value})
	}

	if p.matchKeyword("else") {
		elseBodyRes := p.blockUntil("end")
		if elseBodyRes.IsErr() {
			return ResErr[Stmt](elseBodyRes.Err)
		}
		stmt.ElseBody = &elseBodyRes.Value
	}

	if err := p.consumeKeyword("end", "expected 'end' to close 'if'"); err != nil {
		return ResErr[Stmt](err)
	}
	return ResOk[Stmt](stmt)
}

func (p *Parser) whileStatement() Result[Stmt] {
	tok := p.advance()
	condRes := p.expression()
	if condRes.IsErr() {
		return ResErr[Stmt](condRes.Err)
	}
	bodyRes := p.blockUntil("end")
	if bodyRes.IsErr() {
		return ResErr[Stmt](bodyRes.Err)
	}
	if err := p.consumeKeyword("end", "expected 'end' to close 'while'"); err != nil {
		return ResErr[Stmt](err)
	}
	return ResOk[Stmt](&WhileStatement{Tok: tok, Condition: condRes.Value, Body: bodyRes.Value})
}

func (p *Parser) forStatement() Result[Stmt] {
	tok := p.advance()
	varRes := p.consume(TokenIdent, "expected loop variable name after 'for'")
	if varRes.IsErr() {
		return ResErr[Stmt](varRes.Err)
	}
	if err := p.consumeKeyword("in", "expected 'in' after loop variable"); err != nil {
		return ResErr[Stmt](err)
	}
	iterRes := p.expression()
	if iterRes.IsErr() {
		return ResErr[Stmt](iterRes.Err)
	}
	bodyRes := p.blockUntil("end")
	if bodyRes.IsErr() {
		return ResErr[Stmt](bodyRes.Err)
	}
	if err := p.consumeKeyword("end", "expected 'end' to close 'for'"); err != nil {
		return ResErr[Stmt](err)
	}
	return ResOk[Stmt](&ForStatement{Tok: tok, Variable: varRes.Value.Value, Iterable: iterRes.Value, Body: bodyRes.Value})
}

func (p *Parser) returnStatement() Result[Stmt] {
	tok := p.advance()
	if p.isAtEnd() || p.checkKeyword("end") || p.checkKeyword("elif") || p.checkKeyword("else") {
		return ResOk[Stmt](&ReturnStatement{Tok: tok})
	}
	valRes := p.expression()
	if valRes.IsErr() {
		return ResErr[Stmt](valRes.Err)
	}
	return ResOk[Stmt](&ReturnStatement{Tok: tok, Value: valRes.Value})
}

func (p *Parser) raiseStatement() Result[Stmt] {
	tok := p.advance()
	valRes := p.expression()
	if valRes.IsErr() {
		return ResErr[Stmt](valRes.Err)
	}
	return ResOk[Stmt](&RaiseStatement{Tok: tok, ErrorMessage: valRes.Value})
}

// assignmentOrExpressionStatement disambiguates `name = v`, `name[i] = v`,
// `self.member = v`, `self.member[i] = v` from a plain expression
// statement by attempting the expression first and checking what
// follows.
func (p *Parser) assignmentOrExpressionStatement() Result[Stmt] {
	tok := p.current()
	exprRes := p.expression()
	if exprRes.IsErr() {
		return ResErr[Stmt](exprRes.Err)
	}

	if p.check(TokenAssign) {
		switch target := exprRes.Value.(type) {
		case *Identifier:
			p.advance()
			valRes := p.expression()
			if valRes.IsErr() {
				return ResErr[Stmt](valRes.Err)
			}
			return ResOk[Stmt](&Assignment{Tok: tok, Target: target.Name, Value: valRes.Value})
		case *BinaryExpression:
			if target.Op == "[]" {
				p.advance()
				valRes := p.expression()
				if valRes.IsErr() {
					return ResErr[Stmt](valRes.Err)
				}
				if ma, ok := target.Left.(*MemberAccess); ok && ma.Index == nil && len(ma.Objects) == 2 {
					self, isSelf := ma.Objects[0].(*Identifier)
					member, isIdent := ma.Objects[1].(*Identifier)
					if isSelf && self.Name == "self" && isIdent {
						return ResOk[Stmt](&ClassMemberAssignment{Tok: tok, MemberName: member.Name, Index: target.Right, Value: valRes.Value})
					}
				}
				ident, ok := target.Left.(*Identifier)
				if !ok {
					return ResErr[Stmt](NewSyntaxError("subscript assignment target must be a variable", tok.Loc))
				}
				return ResOk[Stmt](&Assignment{
					Tok: tok, Target: ident.Name, Index: target.Right,
					Value: valRes.Value, IsSubscriptAssignment: true,
				})
			}
		case *MemberAccess:
			if len(target.Objects) == 2 {
				if self, ok := target.Objects[0].(*Identifier); ok && self.Name == "self" {
					if member, ok := target.Objects[1].(*Identifier); ok {
						p.advance()
						valRes := p.expression()
						if valRes.IsErr() {
							return ResErr[Stmt](valRes.Err)
						}
						return ResOk[Stmt](&ClassMemberAssignment{
							Tok: tok, MemberName: member.Name, Index: target.Index, Value: valRes.Value,
						})
					}
				}
			}
		}
		return ResErr[Stmt](NewSyntaxError("invalid assignment target", tok.Loc))
	}

	return ResOk[Stmt](&ExpressionStatement{Tok: tok, Expression: exprRes.Value})
}

// --- expressions, precedence climbing low to high ---

func (p *Parser) expression() Result[Expr] { return p.orExpr() }

func (p *Parser) orExpr() Result[Expr] {
	leftRes := p.andExpr()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for p.checkKeyword("or") {
		tok := p.advance()
		rightRes := p.andExpr()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: "or", Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

func (p *Parser) andExpr() Result[Expr] {
	leftRes := p.notExpr()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for p.checkKeyword("and") {
		tok := p.advance()
		rightRes := p.notExpr()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: "and", Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

func (p *Parser) notExpr() Result[Expr] {
	if p.checkKeyword("not") {
		tok := p.advance()
		operandRes := p.notExpr()
		if operandRes.IsErr() {
			return operandRes
		}
		return ResOk[Expr](&UnaryExpression{Tok: tok, Op: "not", Operand: operandRes.Value})
	}
	return p.comparison()
}

var comparisonOps = map[TokenType]string{
	TokenEQ: "==", TokenNEQ: "!=", TokenLT: "<", TokenLTE: "<=", TokenGT: ">", TokenGTE: ">=",
}

func (p *Parser) comparison() Result[Expr] {
	leftRes := p.bitwiseOr()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for {
		op, ok := comparisonOps[p.current().Kind]
		if !ok {
			break
		}
		tok := p.advance()
		rightRes := p.bitwiseOr()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: op, Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

func (p *Parser) bitwiseOr() Result[Expr] {
	leftRes := p.bitwiseAnd()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for p.check(TokenPipe) {
		tok := p.advance()
		rightRes := p.bitwiseAnd()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: "|", Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

func (p *Parser) bitwiseAnd() Result[Expr] {
	leftRes := p.additive()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for p.check(TokenAmp) {
		tok := p.advance()
		rightRes := p.additive()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: "&", Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

func (p *Parser) additive() Result[Expr] {
	leftRes := p.multiplicative()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for p.check(TokenPlus) || p.check(TokenMinus) {
		tok := p.advance()
		op := "+"
		if tok.Kind == TokenMinus {
			op = "-"
		}
		rightRes := p.multiplicative()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: op, Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

func (p *Parser) multiplicative() Result[Expr] {
	leftRes := p.power()
	if leftRes.IsErr() {
		return leftRes
	}
	left := leftRes.Value
	for p.check(TokenStar) || p.check(TokenSlash) || p.check(TokenPercent) {
		tok := p.advance()
		op := map[TokenType]string{TokenStar: "*", TokenSlash: "/", TokenPercent: "%"}[tok.Kind]
		rightRes := p.power()
		if rightRes.IsErr() {
			return rightRes
		}
		left = &BinaryExpression{Tok: tok, Op: op, Left: left, Right: rightRes.Value}
	}
	return ResOk(left)
}

// power is right-associative: 2^3^2 == 2^(3^2).
func (p *Parser) power() Result[Expr] {
	baseRes := p.unary()
	if baseRes.IsErr() {
		return baseRes
	}
	if p.check(TokenCaret) {
		tok := p.advance()
		expRes := p.power()
		if expRes.IsErr() {
			return expRes
		}
		return ResOk[Expr](&BinaryExpression{Tok: tok, Op: "^", Left: baseRes.Value, Right: expRes.Value})
	}
	return baseRes
}

func (p *Parser) unary() Result[Expr] {
	if p.check(TokenMinus) {
		tok := p.advance()
		operandRes := p.unary()
		if operandRes.IsErr() {
			return operandRes
		}
		return ResOk[Expr](&UnaryExpression{Tok: tok, Op: "-", Operand: operandRes.Value})
	}
	if p.check(TokenTilde) {
		tok := p.advance()
		operandRes := p.unary()
		if operandRes.IsErr() {
			return operandRes
		}
		return ResOk[Expr](&UnaryExpression{Tok: tok, Op: "~", Operand: operandRes.Value})
	}
	return p.postfix()
}

func (p *Parser) postfix() Result[Expr] {
	exprRes := p.primary()
	if exprRes.IsErr() {
		return exprRes
	}
	expr := exprRes.Value

	for {
		switch {
		case p.check(TokenLParen):
			tok := p.advance()
			var args []Expr
			for !p.check(TokenRParen) {
				argRes := p.expression()
				if argRes.IsErr() {
					return argRes
				}
				args = append(args, argRes.Value)
				if !p.match(TokenComma) {
					break
				}
			}
			if rp := p.consume(TokenRParen, "expected ')' after call arguments"); rp.IsErr() {
				return ResErr[Expr](rp.Err)
			}
			expr = &FunctionCall{Tok: tok, Callee: expr, Arguments: args}

		case p.check(TokenLBracket):
			tok := p.advance()
			idxRes := p.expression()
			if idxRes.IsErr() {
				return idxRes
			}
			if rb := p.consume(TokenRBracket, "expected ']' after index expression"); rb.IsErr() {
				return ResErr[Expr](rb.Err)
			}
			expr = &BinaryExpression{Tok: tok, Op: "[]", Left: expr, Right: idxRes.Value}

		case p.check(TokenDot):
			tok := p.advance()
			nameRes := p.consume(TokenIdent, "expected member name after '.'")
			if nameRes.IsErr() {
				return ResErr[Expr](nameRes.Err)
			}
			member := &Identifier{Tok: nameRes.Value, Name: nameRes.Value.Value}
			if ma, ok := expr.(*MemberAccess); ok && ma.Index == nil {
				ma.Objects = append(ma.Objects, member)
			} else {
				expr = &MemberAccess{Tok: tok, Objects: []Expr{expr, member}}
			}

		default:
			return ResOk(expr)
		}
	}
}

func (p *Parser) primary() Result[Expr] {
	tok := p.current()

	switch tok.Kind {
	case TokenInt, TokenFloat:
		p.advance()
		return ResOk[Expr](&NumberLiteral{Tok: tok, Value: NewBigNumString(tok.Value)})
	case TokenString:
		p.advance()
		return ResOk[Expr](&StringLiteral{Tok: tok, Value: tok.Value})
	case TokenIdent:
		p.advance()
		return ResOk[Expr](&Identifier{Tok: tok, Name: tok.Value})
	case TokenLParen:
		p.advance()
		innerRes := p.expression()
		if innerRes.IsErr() {
			return innerRes
		}
		if rp := p.consume(TokenRParen, "expected ')' after parenthesized expression"); rp.IsErr() {
			return ResErr[Expr](rp.Err)
		}
		return ResOk(innerRes.Value)
	case TokenLBracket:
		p.advance()
		var elems []Expr
		for !p.check(TokenRBracket) {
			elRes := p.expression()
			if elRes.IsErr() {
				return elRes
			}
			elems = append(elems, elRes.Value)
			if !p.match(TokenComma) {
				break
			}
		}
		if rb := p.consume(TokenRBracket, "expected ']' after list literal"); rb.IsErr() {
			return ResErr[Expr](rb.Err)
		}
		return ResOk[Expr](&ListLiteral{Tok: tok, Elements: elems})
	case TokenKeyword:
		switch tok.Value {
		case "true":
			p.advance()
			return ResOk[Expr](&BooleanLiteral{Tok: tok, Value: true})
		case "false":
			p.advance()
			return ResOk[Expr](&BooleanLiteral{Tok: tok, Value: false})
		case "null":
			p.advance()
			return ResOk[Expr](&NullLiteral{Tok: tok})
		case "self":
			p.advance()
			return ResOk[Expr](&Identifier{Tok: tok, Name: "self"})
		case "new":
			return p.newExpression()
		}
	}

	return ResErr[Expr](NewSyntaxError(fmt.Sprintf("unexpected token %s", tok), tok.Loc))
}

func (p *Parser) newExpression() Result[Expr] {
	tok := p.advance()
	nameRes := p.consume(TokenIdent, "expected class name after 'new'")
	if nameRes.IsErr() {
		return ResErr[Expr](nameRes.Err)
	}
	var args []Expr
	if p.match(TokenLParen) {
		for !p.check(TokenRParen) {
			argRes := p.expression()
			if argRes.IsErr() {
				return argRes
			}
			args = append(args, argRes.Value)
			if !p.match(TokenComma) {
				break
			}
		}
		if rp := p.consume(TokenRParen, "expected ')' after constructor arguments"); rp.IsErr() {
			return ResErr[Expr](rp.Err)
		}
	}
	return ResOk[Expr](&NewExpression{Tok: tok, ClassName: nameRes.Value.Value, Args: args})
}
