// Package lexer implements the qxad lexical analyzer.
//
// Besides ordinary scanning the lexer recognizes gate calls of the form
// G(q); as single quantum-operation tokens and, while partial evaluation
// (PE) is enabled, cancels adjacent self-inverse operations before they
// reach the parser. PE mode is toggled by #[...] pragmas in the source.
package lexer

// lookaheadWindow is the number of raw tokens read after a gate name to
// test the call pattern ( identifier ) ;
const lookaheadWindow = 4

// Lexer represents the lexical analyzer. A Lexer is owned by a single
// consumer; it is not safe for concurrent use.
type Lexer struct {
	src      []rune
	pos      int // index into src of the next rune
	line     int // current line number
	column   int // current column number
	offset   int // current byte offset in input
	filename string

	peEnabled bool

	// pending holds quantum operations awaiting cancellation; drained FIFO.
	pending []Token

	// unread restores a failed lookahead window, front first.
	unread  [lookaheadWindow]Token
	nUnread int

	// held is the token that ended a buffering session. It has already been
	// through gate-call recognition and is emitted once pending drains.
	held    Token
	hasHeld bool
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for positions
func NewWithFilename(input, filename string) *Lexer {
	return &Lexer{
		src:       []rune(input),
		line:      1,
		column:    1,
		filename:  filename,
		peEnabled: true,
	}
}

// PEEnabled reports the current partial evaluation mode.
func (l *Lexer) PEEnabled() bool {
	return l.peEnabled
}

// SetPEEnabled overrides the PE mode. Operations already buffered are not
// reconsidered.
func (l *Lexer) SetPEEnabled(enabled bool) {
	l.peEnabled = enabled
}

// NextToken returns the next token. Once the end of input is reached it
// keeps returning TokenEOF.
func (l *Lexer) NextToken() Token {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}

		tok := l.nextCooked()
		switch {
		case tok.Type == TokenPragma:
			l.applyPragma(tok)
		case tok.Type == TokenQOp && l.peEnabled:
			l.bufferSession(tok)
		default:
			return tok
		}
	}
}

// Tokens drains the lexer and returns every token up to and including EOF.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

// bufferSession accumulates consecutive quantum operations, cancelling as it
// goes. Pragmas inside the run take effect without ending it. The first
// token that is neither a pragma nor a buffered operation is held back.
func (l *Lexer) bufferSession(first Token) {
	l.push(first)
	for {
		tok := l.nextCooked()
		switch {
		case tok.Type == TokenPragma:
			l.applyPragma(tok)
		case tok.Type == TokenQOp && l.peEnabled:
			l.push(tok)
		default:
			l.held, l.hasHeld = tok, true
			return
		}
	}
}

func (l *Lexer) push(op Token) {
	l.pending = Reduce(append(l.pending, op))
}

func (l *Lexer) applyPragma(tok Token) {
	if a, ok := ParseAnnotation(tok.Literal); ok {
		l.peEnabled = a.Enables()
	}
}

// nextCooked returns the held token if any, otherwise the next raw token
// with gate calls collapsed into TokenQOp.
func (l *Lexer) nextCooked() Token {
	if l.hasHeld {
		l.hasHeld = false
		return l.held
	}
	tok := l.nextRaw()
	if tok.Type == TokenGate {
		return l.readGateCall(tok)
	}
	return tok
}

// readGateCall tests whether gate is followed by ( identifier ) ; and if so
// returns the collapsed operation. Otherwise the four lookahead tokens are
// restored in order and gate is returned unchanged.
func (l *Lexer) readGateCall(gate Token) Token {
	var window [lookaheadWindow]Token
	for i := range window {
		window[i] = l.nextRaw()
	}

	if window[0].Type == TokenLParen &&
		window[1].Type == TokenIdentifier &&
		window[2].Type == TokenRParen &&
		window[3].Type == TokenSemicolon {
		return Token{
			Type:    TokenQOp,
			Literal: gate.Literal,
			Target:  window[1].Literal,
			Pos:     gate.Pos,
			End:     window[3].End,
		}
	}

	l.unreadTokens(window[:])
	return gate
}

// nextRaw returns restored lookahead first, then scans.
func (l *Lexer) nextRaw() Token {
	if l.nUnread > 0 {
		tok := l.unread[0]
		copy(l.unread[:], l.unread[1:l.nUnread])
		l.nUnread--
		l.unread[l.nUnread] = Token{}
		return tok
	}
	return l.scan()
}

// unreadTokens puts toks back in front of any restored lookahead. The window
// is only ever refilled after it has been fully consumed, so it cannot
// overflow.
func (l *Lexer) unreadTokens(toks []Token) {
	if l.nUnread+len(toks) > lookaheadWindow {
		panic("lexer: lookahead window overflow")
	}
	copy(l.unread[len(toks):], l.unread[:l.nUnread])
	copy(l.unread[:], toks)
	l.nUnread += len(toks)
}
