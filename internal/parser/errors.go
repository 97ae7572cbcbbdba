package parser

import (
	"errors"
	"fmt"

	"github.com/qxad-lang/qxad/internal/lexer"
	"github.com/qxad-lang/qxad/internal/position"
)

// ErrorKind classifies a parse failure
type ErrorKind int

const (
	// UnexpectedToken: the current token does not fit the grammar
	UnexpectedToken ErrorKind = iota
	// InvalidNumericLiteral: a number token does not fit int64/float64
	InvalidNumericLiteral
	// UnexpectedEndOfInput: EOF where a token was required
	UnexpectedEndOfInput
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case InvalidNumericLiteral:
		return "InvalidNumericLiteral"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by ParseError.Is
var (
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrInvalidNumericLiteral = errors.New("invalid numeric literal")
	ErrUnexpectedEOF         = errors.New("unexpected end of input")
)

// ParseError represents a parsing error with context. Parsing stops at the
// first one.
type ParseError struct {
	Kind     ErrorKind
	Position position.Position
	Expected string      // what the grammar required
	Found    lexer.Token // what the lexer produced
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %s: %s", e.Position.String(), e.Message)
}

// Is lets errors.Is match a ParseError against the kind sentinels
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrUnexpectedToken:
		return e.Kind == UnexpectedToken
	case ErrInvalidNumericLiteral:
		return e.Kind == InvalidNumericLiteral
	case ErrUnexpectedEOF:
		return e.Kind == UnexpectedEndOfInput
	}
	return false
}

func unexpected(expected string, found lexer.Token) *ParseError {
	kind := UnexpectedToken
	if found.Type == lexer.TokenEOF {
		kind = UnexpectedEndOfInput
	}
	return &ParseError{
		Kind:     kind,
		Position: found.Pos,
		Expected: expected,
		Found:    found,
		Message:  fmt.Sprintf("expected %s, got %s", expected, found),
	}
}

func invalidNumber(tok lexer.Token, cause error) *ParseError {
	return &ParseError{
		Kind:     InvalidNumericLiteral,
		Position: tok.Pos,
		Expected: "number",
		Found:    tok,
		Message:  fmt.Sprintf("invalid numeric literal %q: %v", tok.Literal, cause),
	}
}
