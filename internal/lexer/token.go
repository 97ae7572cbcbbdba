package lexer

import (
	"fmt"

	"github.com/qxad-lang/qxad/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	// 特殊トークン
	TokenEOF TokenType = iota
	TokenUnknown
	TokenPragma

	// リテラル
	TokenIdentifier
	TokenNumber

	// キーワード
	TokenLet
	TokenFn
	TokenReturn
	TokenQbit
	TokenMeasure

	// 量子
	TokenGate
	TokenQOp

	// 演算子
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenAssign
	TokenArrow

	// 記号
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenUnknown: "UNKNOWN",
	TokenPragma:  "PRAGMA",

	TokenIdentifier: "IDENTIFIER",
	TokenNumber:     "NUMBER",

	TokenLet:     "LET",
	TokenFn:      "FN",
	TokenReturn:  "RETURN",
	TokenQbit:    "QBIT",
	TokenMeasure: "MEASURE",

	TokenGate: "GATE",
	TokenQOp:  "QOP",

	TokenPlus:   "PLUS",
	TokenMinus:  "MINUS",
	TokenStar:   "STAR",
	TokenSlash:  "SLASH",
	TokenAssign: "ASSIGN",
	TokenArrow:  "ARROW",

	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",
	TokenComma:     "COMMA",
	TokenSemicolon: "SEMICOLON",
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"let":     TokenLet,
	"fn":      TokenFn,
	"return":  TokenReturn,
	"qbit":    TokenQbit,
	"measure": TokenMeasure,
}

// gates is the fixed set of recognized gate names. Multi-qubit gates are
// recognized here but never cancelled.
var gates = map[string]bool{
	"H":    true,
	"X":    true,
	"Y":    true,
	"Z":    true,
	"CX":   true,
	"CNOT": true,
	"CCX":  true,
}

// selfInverse holds the single-qubit gates G with G·G = I.
var selfInverse = map[string]bool{
	"H": true,
	"X": true,
	"Y": true,
	"Z": true,
}

// IsGate reports whether name is a recognized gate name.
func IsGate(name string) bool { return gates[name] }

// IsSelfInverse reports whether two consecutive applications of gate cancel.
func IsSelfInverse(gate string) bool { return selfInverse[gate] }

// Token is an immutable lexical unit.
//
// Literal holds the identifier/number/gate/pragma text (or the offending
// character for TokenUnknown). For TokenQOp, Literal is the gate name and
// Target the qubit identifier.
type Token struct {
	Type    TokenType
	Literal string
	Target  string
	Pos     position.Position // first rune
	End     position.Position // just past the last rune
}

// Span returns the source range covered by the token
func (t Token) Span() position.Span {
	return position.Span{Start: t.Pos, End: t.End}
}

// Equal reports structural equality, ignoring source position.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Literal == other.Literal && t.Target == other.Target
}

// String returns a compact representation such as IDENTIFIER("x") or QOP(H, q)
func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenNumber, TokenGate, TokenPragma, TokenUnknown:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	case TokenQOp:
		return fmt.Sprintf("QOP(%s, %s)", t.Literal, t.Target)
	default:
		return t.Type.String()
	}
}

// lookupIdent classifies identifier text as keyword, gate name or identifier
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if IsGate(ident) {
		return TokenGate
	}
	return TokenIdentifier
}
