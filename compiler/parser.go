package compiler

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Parser: recursive descent over the token sequence
// ---------------------------------------------------------------------------
//
// Statements are terminated by NEWLINE (or end of input). A block is
// introduced by ':' + NEWLINE and contains every following statement whose
// first token sits further right than the line that opened the block; a
// statement at or left of that column closes the block. An `else` attaches
// to the `if` whose header shares its column. There are no indentation
// tokens; the parser reads token columns.

// SyntaxError describes a grammar mismatch. Parsing is all-or-nothing: the
// first mismatch aborts and no AST is produced.
type SyntaxError struct {
	Message string
	Kind    TokenType
	Literal string
	Line    int
	AtEOF   bool
}

func (e *SyntaxError) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("syntax error: %s at end of input", e.Message)
	}
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
}

// Parser consumes tokens and produces an AST.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over a token sequence. The sequence must end
// with an EOF token, as produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 {
		tokens = []Token{{Type: TokenEOF, Line: 1}}
	}
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. Any grammar mismatch yields a *SyntaxError
// and a nil AST.
func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).ParseProgram()
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() (*Program, error) {
	stmts, err := p.parseStatements(0)
	if err != nil {
		return nil, err
	}
	if !p.curIs(TokenEOF) {
		return nil, p.unexpected("unexpected token")
	}
	return &Program{Statements: stmts}, nil
}

func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) curIs(t TokenType) bool {
	return p.cur().Type == t
}

// expect consumes the current token if it matches, else fails.
func (p *Parser) expect(t TokenType) error {
	if p.curIs(t) {
		p.advance()
		return nil
	}
	return p.unexpected(fmt.Sprintf("expected %s, got %s", t, p.cur().Type))
}

func (p *Parser) unexpected(msg string) *SyntaxError {
	tok := p.cur()
	if tok.Type == TokenEOF {
		return &SyntaxError{Message: msg, Kind: TokenEOF, Line: tok.Line, AtEOF: true}
	}
	return &SyntaxError{
		Message: fmt.Sprintf("%s (%q)", msg, tok.Literal),
		Kind:    tok.Type,
		Literal: tok.Literal,
		Line:    tok.Line,
	}
}

// endStatement consumes the statement terminator: a NEWLINE, or end of
// input for the last line of the source.
func (p *Parser) endStatement() error {
	if p.curIs(TokenNewline) {
		p.advance()
		return nil
	}
	if p.curIs(TokenEOF) {
		return nil
	}
	return p.unexpected(fmt.Sprintf("expected end of line, got %s", p.cur().Type))
}

// parseStatements parses statements whose first token is right of minCol.
// Lone NEWLINE tokens are empty statements and are dropped.
func (p *Parser) parseStatements(minCol int) ([]Stmt, error) {
	var stmts []Stmt
	for {
		for p.curIs(TokenNewline) {
			p.advance()
		}
		if p.curIs(TokenEOF) || p.curIs(TokenElse) || p.cur().Column <= minCol {
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch p.cur().Type {
	case TokenVar:
		return p.parseDeclaration()
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	case TokenFor:
		return p.parseFor()
	case TokenFunction:
		return p.parseFunction()
	case TokenReturn:
		return p.parseReturn()
	case TokenPrint:
		return p.parsePrint()
	case TokenIdentifier:
		if p.peek().Type == TokenAssign {
			return p.parseAssignment()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

// parseDeclaration parses `var name = expr`.
func (p *Parser) parseDeclaration() (Stmt, error) {
	line := p.cur().Line
	p.advance() // var
	if !p.curIs(TokenIdentifier) {
		return nil, p.unexpected(fmt.Sprintf("expected identifier after %s, got %s", TokenVar, p.cur().Type))
	}
	name := p.cur().Literal
	p.advance()
	if err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &Assignment{Line: line, Name: name, Value: value, IsDecl: true}, nil
}

// parseAssignment parses `name = expr`. Whether the name is declared is the
// bytecode compiler's concern, not the parser's.
func (p *Parser) parseAssignment() (Stmt, error) {
	tok := p.cur()
	p.advance() // identifier
	p.advance() // =
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &Assignment{Line: tok.Line, Name: tok.Literal, Value: value}, nil
}

// parseBlock parses `: NEWLINE statements` for a header starting at
// headerCol.
func (p *Parser) parseBlock(headerCol int) ([]Stmt, error) {
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	if !p.curIs(TokenNewline) {
		return nil, p.unexpected(fmt.Sprintf("expected end of line after \":\", got %s", p.cur().Type))
	}
	p.advance()
	return p.parseStatements(headerCol)
}

func (p *Parser) parseIf() (Stmt, error) {
	tok := p.cur()
	p.advance() // if
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock(tok.Column)
	if err != nil {
		return nil, err
	}
	node := &If{Line: tok.Line, Cond: cond, Then: then}

	if p.curIs(TokenElse) && p.cur().Column == tok.Column {
		elseTok := p.cur()
		p.advance()
		node.Else, err = p.parseBlock(elseTok.Column)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	tok := p.cur()
	p.advance() // while
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(tok.Column)
	if err != nil {
		return nil, err
	}
	return &While{Line: tok.Line, Cond: cond, Body: body}, nil
}

// parseFor parses `for i = start : end : body`.
func (p *Parser) parseFor() (Stmt, error) {
	tok := p.cur()
	p.advance() // for
	if !p.curIs(TokenIdentifier) {
		return nil, p.unexpected(fmt.Sprintf("expected loop variable, got %s", p.cur().Type))
	}
	name := p.cur().Literal
	p.advance()
	if err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(tok.Column)
	if err != nil {
		return nil, err
	}
	return &For{Line: tok.Line, Var: name, Start: start, End: end, Body: body}, nil
}

func (p *Parser) parseFunction() (Stmt, error) {
	tok := p.cur()
	p.advance() // function
	if !p.curIs(TokenIdentifier) {
		return nil, p.unexpected(fmt.Sprintf("expected function name, got %s", p.cur().Type))
	}
	name := p.cur().Literal
	p.advance()
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var params []string
	if !p.curIs(TokenRParen) {
		for {
			if !p.curIs(TokenIdentifier) {
				return nil, p.unexpected(fmt.Sprintf("expected parameter name, got %s", p.cur().Type))
			}
			params = append(params, p.cur().Literal)
			p.advance()
			if !p.curIs(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(tok.Column)
	if err != nil {
		return nil, err
	}
	return &Function{Line: tok.Line, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	tok := p.cur()
	p.advance() // return
	node := &Return{Line: tok.Line}
	if !p.curIs(TokenNewline) && !p.curIs(TokenEOF) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parsePrint() (Stmt, error) {
	tok := p.cur()
	p.advance() // print
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &Print{Line: tok.Line, Value: value}, nil
}

func (p *Parser) parseExprStatement() (Stmt, error) {
	line := p.cur().Line
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ExprStmt{Line: line, Value: value}, nil
}

// ---------------------------------------------------------------------------
// Expressions, lowest precedence first. All binary operators are
// left-associative.
// ---------------------------------------------------------------------------

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs(TokenOr) {
		line := p.cur().Line
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: line, Left: left, Op: "or", Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.curIs(TokenAnd) {
		line := p.cur().Line
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: line, Left: left, Op: "and", Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.curIs(TokenEq) || p.curIs(TokenNe) {
		tok := p.cur()
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: tok.Line, Left: left, Op: tok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelational() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.curIs(TokenLt) || p.curIs(TokenLe) || p.curIs(TokenGt) || p.curIs(TokenGe) {
		tok := p.cur()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: tok.Line, Left: left, Op: tok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curIs(TokenPlus) || p.curIs(TokenMinus) {
		tok := p.cur()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: tok.Line, Left: left, Op: tok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curIs(TokenStar) || p.curIs(TokenSlash) || p.curIs(TokenPercent) {
		tok := p.cur()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: tok.Line, Left: left, Op: tok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	switch p.cur().Type {
	case TokenNot:
		line := p.cur().Line
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Line: line, Op: "not", Operand: operand}, nil
	case TokenMinus:
		line := p.cur().Line
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Line: line, Op: "-", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenNumber:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.unexpected("number out of range")
		}
		p.advance()
		return &Literal{Line: tok.Line, Value: n}, nil

	case TokenString:
		p.advance()
		return &Literal{Line: tok.Line, Value: tok.Literal}, nil

	case TokenTrue:
		p.advance()
		return &Literal{Line: tok.Line, Value: true}, nil

	case TokenFalse:
		p.advance()
		return &Literal{Line: tok.Line, Value: false}, nil

	case TokenIdentifier:
		if p.peek().Type == TokenLParen {
			return p.parseCall()
		}
		p.advance()
		return &Identifier{Line: tok.Line, Name: tok.Literal}, nil

	case TokenInput:
		// The read-a-line primitive looks like a call: input().
		p.advance()
		if err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &Call{Line: tok.Line, Name: "input"}, nil

	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected(fmt.Sprintf("unexpected token %s", tok.Type))
}

// parseCall parses `name(arg, ...)`.
func (p *Parser) parseCall() (Expr, error) {
	tok := p.cur()
	p.advance() // identifier
	p.advance() // (

	var args []Expr
	if !p.curIs(TokenRParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.curIs(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &Call{Line: tok.Line, Name: tok.Literal, Args: args}, nil
}
