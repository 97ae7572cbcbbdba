package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/qxad-lang/qxad/internal/position"
)

// peekChar returns the rune under the cursor, or 0 at end of input
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// readChar consumes the rune under the cursor and advances line/column
func (l *Lexer) readChar() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	ch := l.src[l.pos]
	l.pos++
	l.offset += utf8.RuneLen(ch)

	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.peekChar()) {
		l.readChar()
	}
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.offset,
	}
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isIdentChar accepts letters, digits and '_'. ASCII digits are claimed by
// numbers before identifiers are tried, so only non-ASCII digits can lead.
func isIdentChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// scan produces exactly one raw token from the source. It never fails:
// anything it cannot classify becomes TokenUnknown.
func (l *Lexer) scan() Token {
	tok := l.scanToken()
	tok.End = l.currentPosition()
	return tok
}

func (l *Lexer) scanToken() Token {
	l.skipWhitespace()

	start := l.currentPosition()
	if l.atEnd() {
		return Token{Type: TokenEOF, Pos: start}
	}

	ch := l.readChar()
	switch {
	case ch == '#':
		return l.readPragma(start)
	case isDigit(ch):
		return Token{Type: TokenNumber, Literal: l.readNumber(ch), Pos: start}
	case isIdentChar(ch):
		ident := l.readIdentifier(ch)
		return Token{Type: lookupIdent(ident), Literal: ident, Pos: start}
	}

	tok := Token{Literal: string(ch), Pos: start}
	switch ch {
	case '(':
		tok.Type = TokenLParen
	case ')':
		tok.Type = TokenRParen
	case '{':
		tok.Type = TokenLBrace
	case '}':
		tok.Type = TokenRBrace
	case ',':
		tok.Type = TokenComma
	case ';':
		tok.Type = TokenSemicolon
	case '+':
		tok.Type = TokenPlus
	case '*':
		tok.Type = TokenStar
	case '/':
		tok.Type = TokenSlash
	case '=':
		tok.Type = TokenAssign
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok.Type = TokenArrow
			tok.Literal = "->"
		} else {
			tok.Type = TokenMinus
		}
	default:
		tok.Type = TokenUnknown
	}
	return tok
}

// readPragma reads #[name]. A '#' not followed by '[' is an unknown token.
// An unterminated pragma runs to end of input.
func (l *Lexer) readPragma(start position.Position) Token {
	if l.peekChar() != '[' {
		return Token{Type: TokenUnknown, Literal: "#", Pos: start}
	}
	l.readChar()

	var name strings.Builder
	for !l.atEnd() {
		ch := l.readChar()
		if ch == ']' {
			break
		}
		name.WriteRune(ch)
	}
	return Token{Type: TokenPragma, Literal: strings.TrimSpace(name.String()), Pos: start}
}

// readNumber accumulates digits with an optional fractional part. The '.'
// is only taken when a digit follows it.
func (l *Lexer) readNumber(first rune) string {
	var b strings.Builder
	b.WriteRune(first)
	for isDigit(l.peekChar()) {
		b.WriteRune(l.readChar())
	}

	if l.peekChar() == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		b.WriteRune(l.readChar())
		for isDigit(l.peekChar()) {
			b.WriteRune(l.readChar())
		}
	}
	return b.String()
}

func (l *Lexer) readIdentifier(first rune) string {
	var b strings.Builder
	b.WriteRune(first)
	for !l.atEnd() && isIdentChar(l.peekChar()) {
		b.WriteRune(l.readChar())
	}
	return b.String()
}
