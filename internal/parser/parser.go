// Package parser implements the qxad recursive descent parser.
//
// The parser pulls tokens from a lexer.Lexer with one token of lookahead and
// stops at the first mismatch. There is no error recovery.
package parser

import (
	"github.com/qxad-lang/qxad/internal/ast"
	"github.com/qxad-lang/qxad/internal/lexer"
	"github.com/qxad-lang/qxad/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Token
	prevEnd position.Position // end of the last consumed token
}

// NewParser creates a new parser instance and primes the lookahead
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}
	p.current = l.NextToken()
	return p
}

// Parse parses the whole token stream into a program
func (p *Parser) Parse() (*ast.Program, error) {
	start := p.current.Pos
	program := &ast.Program{}

	for !p.currentTokenIs(lexer.TokenEOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}

	program.Span = position.Span{Start: start, End: p.current.End}
	return program, nil
}

// nextToken consumes the current token and returns it
func (p *Parser) nextToken() lexer.Token {
	tok := p.current
	p.prevEnd = tok.End
	p.current = p.lexer.NextToken()
	return tok
}

func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// expect consumes the current token if it has the given type
func (p *Parser) expect(tokenType lexer.TokenType) (lexer.Token, error) {
	if !p.currentTokenIs(tokenType) {
		return lexer.Token{}, unexpected(tokenType.String(), p.current)
	}
	return p.nextToken(), nil
}

func (p *Parser) expectIdent() (lexer.Token, error) {
	return p.expect(lexer.TokenIdentifier)
}

func (p *Parser) spanFrom(start position.Position) position.Span {
	return position.Span{Start: start, End: p.prevEnd}
}

// ====== Declarations ======

func (p *Parser) parseFunction() (*ast.Function, error) {
	fnTok, err := p.expect(lexer.TokenFn)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	params := []string{}
	if !p.currentTokenIs(lexer.TokenRParen) {
		for {
			param, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			params = append(params, param.Literal)

			if !p.currentTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}

	// Snapshot of PE mode once the parameter list has closed.
	partialEval := p.lexer.PEEnabled()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Span:        p.spanFrom(fnTok.Pos),
		Name:        name.Literal,
		Params:      params,
		Body:        body,
		PartialEval: partialEval,
	}, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	stmts := []ast.Statement{}
	for !p.currentTokenIs(lexer.TokenRBrace) && !p.currentTokenIs(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ====== Statements ======

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Type {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenQbit:
		return p.parseQbitDeclaration()
	case lexer.TokenMeasure:
		return p.parseMeasureStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenQOp:
		tok := p.nextToken()
		return &ast.QuantumOperation{Span: tok.Span(), Gate: tok.Literal, Target: tok.Target}, nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	start := p.nextToken().Pos

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return &ast.LetStatement{Span: p.spanFrom(start), Name: name.Literal, Init: init}, nil
}

func (p *Parser) parseQbitDeclaration() (ast.Statement, error) {
	start := p.nextToken().Pos

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return &ast.QbitDeclaration{Span: p.spanFrom(start), Name: name.Literal}, nil
}

func (p *Parser) parseMeasureStatement() (ast.Statement, error) {
	start := p.nextToken().Pos

	target, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	stmt := &ast.MeasureStatement{Target: target.Literal}
	if p.currentTokenIs(lexer.TokenArrow) {
		p.nextToken()
		classical, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		stmt.Classical = classical.Literal
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	start := p.nextToken().Pos

	stmt := &ast.ReturnStatement{}
	if !p.currentTokenIs(lexer.TokenSemicolon) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	start := p.current.Pos

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}, nil
}
