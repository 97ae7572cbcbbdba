// Package ast defines the syntax tree built by the qxad parser.
//
// All nodes carry a position.Span and implement the Node interface with
// visitor support. The tree is plain data: the front end neither checks
// types nor evaluates anything.
package ast

import (
	"fmt"
	"strings"

	"github.com/qxad-lang/qxad/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns a human-readable representation of the node
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the AST
type Expression interface {
	Node
	expressionNode()
}

// ===== Program Structure =====

// Program is the root of the AST: the functions of one source file in order
type Program struct {
	Span      position.Span
	Functions []*Function
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	var parts []string
	for _, fn := range p.Functions {
		parts = append(parts, fn.String())
	}
	return strings.Join(parts, "\n")
}
func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }

// Function is a top-level fn declaration.
//
// PartialEval is the lexer's PE mode read once when the parameter list
// closed. It is a snapshot and is never updated by pragmas inside the body.
type Function struct {
	Span        position.Span
	Name        string
	Params      []string
	Body        []Statement
	PartialEval bool
}

func (f *Function) GetSpan() position.Span { return f.Span }
func (f *Function) String() string {
	mode := "nope"
	if f.PartialEval {
		mode = "pe"
	}
	return fmt.Sprintf("fn %s(%s) #[%s]", f.Name, strings.Join(f.Params, ", "), mode)
}
func (f *Function) Accept(visitor Visitor) interface{} { return visitor.VisitFunction(f) }

// ===== Statements =====

// LetStatement binds a name to a required initializer
type LetStatement struct {
	Span position.Span
	Name string
	Init Expression
}

func (s *LetStatement) GetSpan() position.Span { return s.Span }
func (s *LetStatement) String() string {
	return fmt.Sprintf("let %s = %s;", s.Name, s.Init.String())
}
func (s *LetStatement) Accept(visitor Visitor) interface{} { return visitor.VisitLetStatement(s) }
func (s *LetStatement) statementNode()                     {}

// QbitDeclaration declares a qubit
type QbitDeclaration struct {
	Span position.Span
	Name string
}

func (s *QbitDeclaration) GetSpan() position.Span { return s.Span }
func (s *QbitDeclaration) String() string         { return fmt.Sprintf("qbit %s;", s.Name) }
func (s *QbitDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitQbitDeclaration(s)
}
func (s *QbitDeclaration) statementNode() {}

// QuantumOperation applies a gate to a single target qubit
type QuantumOperation struct {
	Span   position.Span
	Gate   string
	Target string
}

func (s *QuantumOperation) GetSpan() position.Span { return s.Span }
func (s *QuantumOperation) String() string         { return fmt.Sprintf("%s(%s);", s.Gate, s.Target) }
func (s *QuantumOperation) Accept(visitor Visitor) interface{} {
	return visitor.VisitQuantumOperation(s)
}
func (s *QuantumOperation) statementNode() {}

// MeasureStatement measures Target, optionally into a classical name.
// Classical is empty when no "-> name" was given.
type MeasureStatement struct {
	Span      position.Span
	Target    string
	Classical string
}

func (s *MeasureStatement) GetSpan() position.Span { return s.Span }
func (s *MeasureStatement) String() string {
	if s.Classical != "" {
		return fmt.Sprintf("measure %s -> %s;", s.Target, s.Classical)
	}
	return fmt.Sprintf("measure %s;", s.Target)
}
func (s *MeasureStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitMeasureStatement(s)
}
func (s *MeasureStatement) statementNode() {}

// ReturnStatement returns an optional value; Value is nil for a bare return
type ReturnStatement struct {
	Span  position.Span
	Value Expression
}

func (s *ReturnStatement) GetSpan() position.Span { return s.Span }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value.String())
}
func (s *ReturnStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitReturnStatement(s)
}
func (s *ReturnStatement) statementNode() {}

// ExpressionStatement evaluates an expression for effect
type ExpressionStatement struct {
	Span       position.Span
	Expression Expression
}

func (s *ExpressionStatement) GetSpan() position.Span { return s.Span }
func (s *ExpressionStatement) String() string         { return s.Expression.String() + ";" }
func (s *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(s)
}
func (s *ExpressionStatement) statementNode() {}

// ===== Expressions =====

// NumberLiteral keeps the source text and its parsed value. Literals
// without a fractional part are int64, the rest float64.
type NumberLiteral struct {
	Span    position.Span
	Raw     string
	IsFloat bool
	Int     int64
	Float   float64
}

func (e *NumberLiteral) GetSpan() position.Span { return e.Span }
func (e *NumberLiteral) String() string         { return e.Raw }
func (e *NumberLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitNumberLiteral(e)
}
func (e *NumberLiteral) expressionNode() {}

// Value returns the literal as an interface holding int64 or float64
func (e *NumberLiteral) Value() interface{} {
	if e.IsFloat {
		return e.Float
	}
	return e.Int
}

// Identifier is a variable reference
type Identifier struct {
	Span position.Span
	Name string
}

func (e *Identifier) GetSpan() position.Span             { return e.Span }
func (e *Identifier) String() string                     { return e.Name }
func (e *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(e) }
func (e *Identifier) expressionNode()                    {}

// CallExpression calls a named function with ordered arguments
type CallExpression struct {
	Span   position.Span
	Callee string
	Args   []Expression
}

func (e *CallExpression) GetSpan() position.Span { return e.Span }
func (e *CallExpression) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}
func (e *CallExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitCallExpression(e)
}
func (e *CallExpression) expressionNode() {}

// BinaryOperator enumerates the arithmetic operators
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("BinaryOperator(%d)", int(op))
	}
}

// BinaryExpression is a left-associative arithmetic operation
type BinaryExpression struct {
	Span     position.Span
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

func (e *BinaryExpression) GetSpan() position.Span { return e.Span }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}
func (e *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(e)
}
func (e *BinaryExpression) expressionNode() {}

// ===== Pretty Printing =====

// PrettyPrint returns an indented outline of the tree rooted at node
func PrettyPrint(node Node) string {
	printer := &astPrinter{}
	printer.print(node)
	return strings.TrimRight(printer.out.String(), "\n")
}

type astPrinter struct {
	indent int
	out    strings.Builder
}

func (p *astPrinter) line(s string) {
	p.out.WriteString(strings.Repeat("  ", p.indent))
	p.out.WriteString(s)
	p.out.WriteString("\n")
}

func (p *astPrinter) print(node Node) {
	if node == nil {
		p.line("<nil>")
		return
	}

	switch n := node.(type) {
	case *Program:
		p.line("Program")
		p.indent++
		for _, fn := range n.Functions {
			p.print(fn)
		}
		p.indent--

	case *Function:
		p.line(n.String())
		p.indent++
		for _, stmt := range n.Body {
			p.print(stmt)
		}
		p.indent--

	default:
		p.line(node.String())
	}
}
