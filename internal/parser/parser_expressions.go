package parser

import (
	"strconv"
	"strings"

	"github.com/qxad-lang/qxad/internal/ast"
	"github.com/qxad-lang/qxad/internal/lexer"
	"github.com/qxad-lang/qxad/internal/position"
)

// =============================================================================
// Expression Parsing
//
//	expression     := additive
//	additive       := multiplicative (("+" | "-") multiplicative)*
//	multiplicative := primary (("*" | "/") primary)*
//	primary        := NUMBER | IDENT [ "(" [expression ("," expression)*] ")" ]
//	                | "(" expression ")"
// =============================================================================

var additiveOps = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokenPlus:  ast.OpAdd,
	lexer.TokenMinus: ast.OpSub,
}

var multiplicativeOps = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokenStar:  ast.OpMul,
	lexer.TokenSlash: ast.OpDiv,
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinary(multiplicativeOps, p.parsePrimary)
}

// parseBinary folds a left-associative chain of operators from ops whose
// operands come from operand.
func (p *Parser) parseBinary(ops map[lexer.TokenType]ast.BinaryOperator, operand func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.current.Type]
		if !ok {
			return left, nil
		}
		p.nextToken()

		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Span:     left.GetSpan().Union(right.GetSpan()),
			Operator: op,
			Left:     left,
			Right:    right,
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.current.Type {
	case lexer.TokenNumber:
		return p.parseNumber()

	case lexer.TokenIdentifier:
		name := p.nextToken()
		if !p.currentTokenIs(lexer.TokenLParen) {
			return &ast.Identifier{Span: name.Span(), Name: name.Literal}, nil
		}
		return p.parseCall(name)

	case lexer.TokenLParen:
		p.nextToken()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, unexpected("expression", p.current)
	}
}

func (p *Parser) parseCall(callee lexer.Token) (ast.Expression, error) {
	p.nextToken() // (

	args := []ast.Expression{}
	if !p.currentTokenIs(lexer.TokenRParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.currentTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}

	return &ast.CallExpression{
		Span:   position.Span{Start: callee.Pos, End: p.prevEnd},
		Callee: callee.Literal,
		Args:   args,
	}, nil
}

// parseNumber converts the literal text: int64 without a fractional part,
// float64 with one.
func (p *Parser) parseNumber() (ast.Expression, error) {
	tok := p.nextToken()
	lit := &ast.NumberLiteral{Span: tok.Span(), Raw: tok.Literal}

	if strings.Contains(tok.Literal, ".") {
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, invalidNumber(tok, err)
		}
		lit.IsFloat = true
		lit.Float = v
		return lit, nil
	}

	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, invalidNumber(tok, err)
	}
	lit.Int = v
	return lit, nil
}
