// Package parser implements Zoof's recursive-descent statement parser
// and precedence-climbing expression parser, producing an *ast.Program
// from a lexer token stream. Grounded on zoofc1 parser.py for grammar
// shape (statement dispatch, do/its duality, indentation-delimited
// blocks, error synchronization) and on Eloquence's parser.go for Go
// idiom (cursor-style Parser struct, registered error reporting).
package parser

import (
	"zoof/ast"
	"zoof/errors"
	"zoof/source"
	"zoof/token"
)

// parseErrorSignal unwinds the call stack to the nearest declaration()
// recovery point. It carries no data; the diagnostic itself was already
// reported to the Handler before panicking.
type parseErrorSignal struct{}

// Parser consumes a token stream and an error Handler to report into.
type Parser struct {
	toks        []token.Token
	pos         int
	handler     *errors.Handler
	indentDepth int
	inImpl      bool
	inTrait     bool
}

// New builds a Parser over toks, filtering out Comment tokens (they
// carry no grammatical meaning beyond marking an end-of-statement,
// which the lexer already guarantees with a following Newline).
func New(toks []token.Token, handler *errors.Handler) *Parser {
	filtered := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type == token.Comment {
			continue
		}
		filtered = append(filtered, t)
	}
	if len(filtered) == 0 {
		filtered = append(filtered, token.Token{Type: token.EOF})
	}
	return &Parser{toks: filtered, handler: handler}
}

// Parse returns the parsed program. Syntax errors are reported to the
// Handler; parsing continues past them via statement synchronization,
// so a single Parse call may surface several diagnostics.
func (p *Parser) Parse() *ast.Program {
	var stmts []ast.Stmt
	p.skipBlankNewlines()
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
		p.skipBlankNewlines()
	}
	return &ast.Program{Stmts: stmts}
}

func (p *Parser) skipBlankNewlines() {
	for p.check(token.Newline) {
		p.advance()
	}
}

// ---- cursor primitives ----

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

func (p *Parser) atEnd() bool { return p.cur().Type == token.EOF }

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	switch tok.Type {
	case token.Indent:
		p.indentDepth++
	case token.Dedent:
		p.indentDepth--
	}
	return tok
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) checkKeyword(word string) bool {
	c := p.cur()
	return c.Type == token.Keyword && c.Lexeme == word
}

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) atEos() bool {
	return p.check(token.Newline) || p.check(token.Dedent) || p.atEnd()
}

func (p *Parser) consumeEos(code, msg string) {
	if p.check(token.Newline) {
		p.advance()
		return
	}
	if p.atEnd() || p.check(token.Dedent) {
		return
	}
	p.error(code, msg, posSpan(p.cur()), "An end of statement (a newline) was expected here.", true)
}

func (p *Parser) consume(t token.Type, code, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(code, msg, posSpan(p.cur()), "The parser expected a different token at this position.", true)
	panic("unreachable")
}

func (p *Parser) consumeKeyword(word, code, msg string) token.Token {
	if p.checkKeyword(word) {
		return p.advance()
	}
	p.error(code, msg, posSpan(p.cur()), "The parser expected the keyword '"+word+"' at this position.", true)
	panic("unreachable")
}

func (p *Parser) error(code, message string, span errors.Span, explanation string, throw bool) {
	p.handler.SyntaxError(code, message, span, explanation)
	if throw {
		panic(parseErrorSignal{})
	}
}

// ---- synchronization ----

// declaration wraps statement() with panic recovery: on a thrown parse
// error it resynchronizes at the next statement boundary and balances
// any indentation opened while parsing the failed statement.
func (p *Parser) declaration() (stmt ast.Stmt) {
	depth0 := p.indentDepth
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseErrorSignal); ok {
				p.synchronize(depth0)
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.statement()
}

func (p *Parser) synchronize(depth0 int) {
	for !p.atEnd() {
		if p.check(token.Newline) {
			p.advance()
			break
		}
		if p.indentDepth <= depth0 && p.check(token.Dedent) {
			break
		}
		p.advance()
	}
	for p.indentDepth > depth0 && p.check(token.Dedent) {
		p.advance()
	}
}

// ---- blocks ----

func (p *Parser) openBlock(code string) {
	p.consumeEos(code, "expected a newline before an indented block")
	p.consume(token.Indent, code, "expected an indented block")
}

func (p *Parser) closeBlock(code string) {
	p.consume(token.Dedent, code, "expected a dedent to close this block")
}

func (p *Parser) block() []ast.Stmt {
	p.openBlock("E1010")
	var stmts []ast.Stmt
	for !p.check(token.Dedent) && !p.atEnd() {
		if p.check(token.Newline) {
			p.advance()
			continue
		}
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.closeBlock("E1011")
	return stmts
}

// ---- statements ----

func (p *Parser) statement() ast.Stmt {
	tok := p.cur()
	if tok.Type == token.Keyword {
		switch tok.Lexeme {
		case "do":
			return p.doStmt()
		case "if":
			return p.ifStmt()
		case "for":
			return p.forStmt()
		case "while":
			return p.whileStmt()
		case "break":
			return p.breakStmt()
		case "return":
			return p.returnStmt()
		case "print":
			return p.printStmt()
		case "func", "method", "getter", "setter":
			return p.functionStmt()
		case "struct":
			return p.structStmt()
		case "trait":
			return p.traitStmt()
		case "impl":
			return p.implStmt()
		}
	}
	return p.expressionStmt()
}

func (p *Parser) doStmt() ast.Stmt {
	tok := p.advance()
	body := p.block()
	return &ast.DoStmt{Loc: locSpan(tok, p.previous()), Body: body}
}

func (p *Parser) ifStmt() ast.Stmt {
	ifTok := p.advance()
	cond := p.expression(false)

	if p.matchKeyword("do") {
		then := p.block()
		var elseifs []ast.ElseIfClause
		for p.checkKeyword("elseif") {
			p.advance()
			c := p.expression(false)
			p.consumeKeyword("do", "E1019", "expected 'do' after elseif condition")
			b := p.block()
			elseifs = append(elseifs, ast.ElseIfClause{Cond: c, Body: b})
		}
		var elseBody []ast.Stmt
		if p.checkKeyword("else") {
			p.advance()
			elseBody = p.block()
		}
		return &ast.IfStmt{Loc: locSpan(ifTok, p.previous()), Cond: cond, Then: then, ElseIfs: elseifs, Else: elseBody}
	}

	if p.matchKeyword("its") {
		thenE := p.expression(true)
		p.consumeKeyword("else", "E1020", "expected 'else' in if-expression")
		elseE := p.expression(true)
		loc := locSpan(ifTok, p.previous())
		ifExpr := &ast.IfExpr{Loc: loc, Cond: cond, Then: thenE, Else: elseE}
		p.consumeEos("E1021", "expected end of statement after if-expression")
		return &ast.ExpressionStmt{Loc: loc, Expr: ifExpr}
	}

	p.error("E1022", "expected 'do' or 'its' after if condition", posSpan(p.cur()),
		"An if used as a statement needs 'do'; an if used as a value needs 'its ... else ...'.", true)
	panic("unreachable")
}

func (p *Parser) forStmt() ast.Stmt {
	forTok := p.advance()
	varTok := p.consume(token.Identifier, "E1023", "expected a loop variable name")
	p.consumeKeyword("in", "E1024", "expected 'in' after the loop variable")
	iterable := p.expression(false)

	if p.matchKeyword("do") {
		body := p.block()
		return &ast.ForStmt{Loc: locSpan(forTok, p.previous()), Var: varTok.Lexeme, Iterable: iterable, Body: body}
	}
	if p.matchKeyword("its") {
		inner := p.statement()
		return &ast.ForStmt{Loc: locSpan(forTok, p.previous()), Var: varTok.Lexeme, Iterable: iterable, Body: []ast.Stmt{inner}}
	}
	p.error("E1025", "expected 'do' or 'its' after the for-loop iterable", posSpan(p.cur()),
		"A for-loop needs a body: 'do' followed by an indented block, or 'its' followed by a single statement.", true)
	panic("unreachable")
}

func (p *Parser) whileStmt() ast.Stmt {
	whileTok := p.advance()
	cond := p.expression(false)
	p.consumeKeyword("do", "E1026", "expected 'do' after the while condition")
	body := p.block()
	return &ast.WhileStmt{Loc: locSpan(whileTok, p.previous()), Cond: cond, Body: body}
}

func (p *Parser) breakStmt() ast.Stmt {
	tok := p.advance()
	p.consumeEos("E1027", "expected end of statement after 'break'")
	return &ast.BreakStmt{Loc: locOf(tok)}
}

func (p *Parser) returnStmt() ast.Stmt {
	tok := p.advance()
	var value ast.Expr
	if !p.atEos() {
		value = p.expression(true)
	}
	p.consumeEos("E1028", "expected end of statement after the return value")
	return &ast.ReturnStmt{Loc: locSpan(tok, p.previous()), Value: value}
}

func (p *Parser) printStmt() ast.Stmt {
	tok := p.advance()
	value := p.expression(true)
	p.consumeEos("E1029", "expected end of statement after the print value")
	return &ast.PrintStmt{Loc: locSpan(tok, p.previous()), Value: value}
}

func kindFromLexeme(lexeme string) ast.FuncKind {
	switch lexeme {
	case "method":
		return ast.KindMethod
	case "getter":
		return ast.KindGetter
	case "setter":
		return ast.KindSetter
	default:
		return ast.KindFunc
	}
}

func (p *Parser) functionStmt() *ast.FunctionStmt {
	kindTok := p.advance()
	kind := kindFromLexeme(kindTok.Lexeme)
	if kind != ast.KindFunc && !p.inImpl && !p.inTrait {
		p.error("E1012", "method/getter/setter declarations are only valid inside a trait or impl block",
			posSpan(kindTok), "Use 'func' to declare a top-level function.", false)
	}
	nameTok := p.consume(token.Identifier, "E1013", "expected a function name")
	params := p.paramList()

	var body []ast.Stmt
	var exprBody ast.Expr
	switch {
	case p.matchKeyword("do"):
		body = p.block()
	case p.matchKeyword("its"):
		exprBody = p.expression(true)
		p.consumeEos("E1014", "expected end of statement after the function expression")
	case p.inTrait && p.atEos():
		p.consumeEos("E1014", "expected end of statement after an abstract declaration")
	default:
		p.error("E1015", "expected 'do' or 'its' after the parameter list", posSpan(p.cur()),
			"A function needs a body: 'do' followed by an indented block, or 'its' followed by a single expression.", true)
	}
	return &ast.FunctionStmt{
		Loc: locSpan(kindTok, p.previous()), Name: nameTok.Lexeme, Kind: kind,
		Params: params, Body: body, ExprBody: exprBody,
	}
}

func (p *Parser) paramList() []string {
	p.consume(token.LeftParen, "E1016", "expected '(' to start the parameter list")
	var params []string
	if !p.check(token.RightParen) {
		for {
			nameTok := p.consume(token.Identifier, "E1017", "expected a parameter name")
			params = append(params, nameTok.Lexeme)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "E1018", "expected ')' to close the parameter list")
	return params
}

func (p *Parser) structStmt() ast.Stmt {
	tok := p.advance()
	nameTok := p.consume(token.Identifier, "E1030", "expected a struct name")
	p.openBlock("E1031")
	var fields []string
	for !p.check(token.Dedent) && !p.atEnd() {
		if p.check(token.Newline) {
			p.advance()
			continue
		}
		fieldTok := p.consume(token.Identifier, "E1032", "expected a field name")
		if p.check(token.Identifier) {
			p.advance() // optional type annotation, unchecked: Zoof is dynamically typed
		}
		p.consumeEos("E1033", "expected end of statement after the field declaration")
		fields = append(fields, fieldTok.Lexeme)
	}
	p.closeBlock("E1034")
	return &ast.StructStmt{Loc: locSpan(tok, p.previous()), Name: nameTok.Lexeme, Fields: fields}
}

func (p *Parser) traitStmt() ast.Stmt {
	tok := p.advance()
	nameTok := p.consume(token.Identifier, "E1035", "expected a trait name")
	p.openBlock("E1036")
	wasTrait := p.inTrait
	p.inTrait = true
	var methods []*ast.FunctionStmt
	for !p.check(token.Dedent) && !p.atEnd() {
		if p.check(token.Newline) {
			p.advance()
			continue
		}
		methods = append(methods, p.functionStmt())
	}
	p.inTrait = wasTrait
	p.closeBlock("E1037")
	return &ast.TraitStmt{Loc: locSpan(tok, p.previous()), Name: nameTok.Lexeme, Methods: methods}
}

func (p *Parser) implStmt() ast.Stmt {
	tok := p.advance()
	firstTok := p.consume(token.Identifier, "E1038", "expected a trait or struct name")
	var traitName, structName string
	if p.matchKeyword("for") {
		traitName = firstTok.Lexeme
		structTok := p.consume(token.Identifier, "E1039", "expected a struct name after 'for'")
		structName = structTok.Lexeme
	} else {
		structName = firstTok.Lexeme
	}
	p.openBlock("E1040")
	wasImpl := p.inImpl
	p.inImpl = true
	var methods []*ast.FunctionStmt
	for !p.check(token.Dedent) && !p.atEnd() {
		if p.check(token.Newline) {
			p.advance()
			continue
		}
		methods = append(methods, p.functionStmt())
	}
	p.inImpl = wasImpl
	p.closeBlock("E1041")
	return &ast.ImplStmt{Loc: locSpan(tok, p.previous()), Trait: traitName, Struct: structName, Methods: methods}
}

func (p *Parser) expressionStmt() ast.Stmt {
	e := p.expression(true)
	p.consumeEos("E1042", "expected end of statement")
	return &ast.ExpressionStmt{Loc: spanOfLoc(e), Expr: e}
}

// ---- expressions ----
//
// allowKeyword threads whether a keyword-expression (if...its...else,
// func(...) its...) is syntactically permitted at this position, per
// spec.md §4.2: only print/return values, assignment right-hand sides,
// parenthesized groups, call arguments, and the top of an expression
// statement allow one directly; elsewhere it must be parenthesized.

func (p *Parser) expression(allowKeyword bool) ast.Expr {
	return p.assignment(allowKeyword)
}

func (p *Parser) assignment(allowKeyword bool) ast.Expr {
	left := p.or(allowKeyword)
	if p.check(token.Equal) {
		p.advance()
		value := p.assignment(true)
		switch l := left.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Loc: mergeLoc(left, value), Name: l.Name, Value: value, Depth: -1}
		case *ast.GetExpr:
			return &ast.SetExpr{Loc: mergeLoc(left, value), Object: l.Object, Name: l.Name, Private: l.Private, Value: value}
		default:
			p.error("E1004", "invalid assignment target", spanOfLoc(left),
				"Only a variable or a property/field access can appear on the left of '='.", false)
			return left
		}
	}
	return left
}

func (p *Parser) or(allowKeyword bool) ast.Expr {
	left := p.and(allowKeyword)
	for p.checkKeyword("or") {
		p.advance()
		right := p.and(false)
		left = &ast.LogicalExpr{Loc: mergeLoc(left, right), Left: left, Op: "or", Right: right}
	}
	return left
}

func (p *Parser) and(allowKeyword bool) ast.Expr {
	left := p.equality(allowKeyword)
	for p.checkKeyword("and") {
		p.advance()
		right := p.equality(false)
		left = &ast.LogicalExpr{Loc: mergeLoc(left, right), Left: left, Op: "and", Right: right}
	}
	return left
}

func (p *Parser) equality(allowKeyword bool) ast.Expr {
	left := p.comparison(allowKeyword)
	for p.check(token.EqualEqual) || p.check(token.BangEqual) {
		opTok := p.advance()
		right := p.comparison(false)
		left = &ast.BinaryExpr{Loc: mergeLoc(left, right), Left: left, Op: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) comparison(allowKeyword bool) ast.Expr {
	left := p.rangeExpr(allowKeyword)
	for p.check(token.Less) || p.check(token.LessEqual) || p.check(token.Greater) || p.check(token.GreaterEqual) {
		opTok := p.advance()
		right := p.rangeExpr(false)
		left = &ast.BinaryExpr{Loc: mergeLoc(left, right), Left: left, Op: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) rangeExpr(allowKeyword bool) ast.Expr {
	start := p.additive(allowKeyword)
	if !p.check(token.Colon) {
		return start
	}
	p.advance()
	stop := p.additive(false)
	var step ast.Expr
	last := ast.Expr(stop)
	if p.check(token.Colon) {
		p.advance()
		step = p.additive(false)
		last = step
	}
	return &ast.RangeExpr{Loc: mergeLoc(start, last), Start: start, Stop: stop, Step: step}
}

func (p *Parser) additive(allowKeyword bool) ast.Expr {
	left := p.multiplicative(allowKeyword)
	for p.check(token.Plus) || p.check(token.Minus) {
		opTok := p.advance()
		right := p.multiplicative(false)
		left = &ast.BinaryExpr{Loc: mergeLoc(left, right), Left: left, Op: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) multiplicative(allowKeyword bool) ast.Expr {
	left := p.power(allowKeyword)
	for p.check(token.Star) || p.check(token.Slash) {
		opTok := p.advance()
		right := p.power(false)
		left = &ast.BinaryExpr{Loc: mergeLoc(left, right), Left: left, Op: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) power(allowKeyword bool) ast.Expr {
	left := p.unit(allowKeyword)
	if p.check(token.Caret) {
		p.advance()
		right := p.power(false) // right-associative
		return &ast.BinaryExpr{Loc: mergeLoc(left, right), Left: left, Op: token.Caret, Right: right}
	}
	return left
}

func (p *Parser) unit(allowKeyword bool) ast.Expr {
	if p.check(token.Plus) || p.check(token.Minus) {
		opTok := p.advance()
		right := p.call(false) // non-stacking: the operand is not another unit
		return &ast.UnaryExpr{Loc: mergeLocTokExpr(opTok, right), Op: opTok.Type, Right: right}
	}
	return p.call(allowKeyword)
}

func (p *Parser) call(allowKeyword bool) ast.Expr {
	expr := p.primaryOrKeywordExpr(allowKeyword)
	for {
		switch {
		case p.check(token.LeftParen):
			p.advance()
			args := p.argumentList()
			expr = &ast.CallExpr{Loc: mergeLocTok(expr, p.previous()), Callee: expr, Args: args}
		case p.check(token.Dot):
			p.advance()
			nameTok := p.consume(token.Identifier, "E1043", "expected a property name after '.'")
			expr = &ast.GetExpr{Loc: mergeLocTok(expr, nameTok), Object: expr, Name: nameTok.Lexeme, Private: false}
		case p.check(token.DotDot):
			p.advance()
			nameTok := p.consume(token.Identifier, "E1044", "expected a field name after '..'")
			expr = &ast.GetExpr{Loc: mergeLocTok(expr, nameTok), Object: expr, Name: nameTok.Lexeme, Private: true}
		default:
			return expr
		}
	}
}

func (p *Parser) argumentList() []ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			args = append(args, p.expression(true))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "E1045", "expected ')' to close the call arguments")
	return args
}

func (p *Parser) primaryOrKeywordExpr(allowKeyword bool) ast.Expr {
	if p.cur().Type == token.Keyword {
		switch p.cur().Lexeme {
		case "if":
			if !allowKeyword {
				p.error("E1046", "if-expression must be parenthesized here", posSpan(p.cur()),
					"Keyword-expressions are only allowed directly after print/return, on the right of '=', inside parentheses, or as a call argument.", true)
			}
			return p.ifExprKeyword()
		case "func":
			if !allowKeyword {
				p.error("E1047", "function-expression must be parenthesized here", posSpan(p.cur()),
					"Keyword-expressions are only allowed directly after print/return, on the right of '=', inside parentheses, or as a call argument.", true)
			}
			return p.funcExprKeyword()
		}
	}
	return p.primary()
}

func (p *Parser) ifExprKeyword() ast.Expr {
	tok := p.advance() // 'if'
	cond := p.expression(false)
	p.consumeKeyword("its", "E1048", "expected 'its' in an if-expression")
	thenE := p.expression(true)
	p.consumeKeyword("else", "E1049", "expected 'else' in an if-expression")
	elseE := p.expression(true)
	return &ast.IfExpr{Loc: locSpan(tok, p.previous()), Cond: cond, Then: thenE, Else: elseE}
}

func (p *Parser) funcExprKeyword() ast.Expr {
	tok := p.advance() // 'func'
	params := p.paramList()
	p.consumeKeyword("its", "E1050", "expected 'its' in a function expression")
	body := p.expression(true)
	return &ast.FunctionExpr{Loc: locSpan(tok, p.previous()), Params: params, Body: body}
}

func (p *Parser) primary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.Number, token.String, token.True, token.False, token.Nil:
		p.advance()
		return &ast.LiteralExpr{Loc: locOf(tok), Token: tok}
	case token.Identifier, token.Reserved:
		p.advance()
		return &ast.VariableExpr{Loc: locOf(tok), Name: tok.Lexeme, Depth: -1}
	case token.LeftParen:
		p.advance()
		inner := p.expression(true)
		closeTok := p.consume(token.RightParen, "E1051", "expected ')' to close the grouping")
		return &ast.GroupingExpr{Loc: locSpan(tok, closeTok), Inner: inner}
	case token.UnterminatedString:
		p.advance()
		p.error("E1007", "unterminated string literal", posSpan(tok),
			"Strings must be closed with a matching ' on the same line.", false)
		return &ast.LiteralExpr{Loc: locOf(tok), Token: tok}
	case token.Invalid:
		p.error("E1008", "invalid character", posSpan(tok), "The lexer could not recognize this character.", true)
	case token.InvalidIndentation:
		p.error("E1009", "inconsistent indentation", posSpan(tok),
			"This line's indentation does not match any enclosing block.", true)
	}
	p.error("E1001", "expected an expression", posSpan(tok),
		"An expression was expected here: a literal, a name, a parenthesized expression, or a permitted keyword-expression.", true)
	panic("unreachable")
}

// ---- span helpers ----

func locOf(tok token.Token) ast.Loc {
	start := source.Pos{Line: tok.Line, Column: tok.Column}
	end := source.Pos{Line: tok.Line, Column: tok.Column + len(tok.Lexeme)}
	if end.Column <= start.Column {
		end.Column = start.Column + 1
	}
	return ast.Loc{Start: start, End: end}
}

func locSpan(startTok, endTok token.Token) ast.Loc {
	s := locOf(startTok)
	e := locOf(endTok)
	return ast.Loc{Start: s.Start, End: e.End}
}

func posSpan(tok token.Token) errors.Span {
	l := locOf(tok)
	return errors.Span{Start: l.Start, End: l.End}
}

func spanOfLoc(e ast.Expr) errors.Span {
	s, end := e.Span()
	return errors.Span{Start: s, End: end}
}

func mergeLoc(a, b ast.Expr) ast.Loc {
	sa, _ := a.Span()
	_, eb := b.Span()
	return ast.Loc{Start: sa, End: eb}
}

func mergeLocTok(a ast.Expr, tok token.Token) ast.Loc {
	sa, _ := a.Span()
	e := locOf(tok)
	return ast.Loc{Start: sa, End: e.End}
}

func mergeLocTokExpr(tok token.Token, b ast.Expr) ast.Loc {
	s := locOf(tok)
	_, eb := b.Span()
	return ast.Loc{Start: s.Start, End: eb}
}
