package lexer

import (
	"fmt"
	"strings"
	"testing"
)

type expectedToken struct {
	expectedType  TokenType
	expectedValue string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%s)",
				i, tt.expectedType, tok.Type, tok)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

// qops returns the quantum operations of a token stream as "G(q)" strings.
func qops(toks []Token) []string {
	var out []string
	for _, tok := range toks {
		if tok.Type == TokenQOp {
			out = append(out, fmt.Sprintf("%s(%s)", tok.Literal, tok.Target))
		}
	}
	return out
}

// rawTokens scans input with no gate-call recognition, pragma handling or
// buffering.
func rawTokens(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.scan()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func TestLetBinding(t *testing.T) {
	checkTokens(t, "let x = 42;", []expectedToken{
		{TokenLet, "let"},
		{TokenIdentifier, "x"},
		{TokenAssign, "="},
		{TokenNumber, "42"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	})
}

func TestFunctionTokens(t *testing.T) {
	checkTokens(t, "fn add(x, y) { return x + y * 2 - 1 / z; }", []expectedToken{
		{TokenFn, "fn"},
		{TokenIdentifier, "add"},
		{TokenLParen, "("},
		{TokenIdentifier, "x"},
		{TokenComma, ","},
		{TokenIdentifier, "y"},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenReturn, "return"},
		{TokenIdentifier, "x"},
		{TokenPlus, "+"},
		{TokenIdentifier, "y"},
		{TokenStar, "*"},
		{TokenNumber, "2"},
		{TokenMinus, "-"},
		{TokenNumber, "1"},
		{TokenSlash, "/"},
		{TokenIdentifier, "z"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	})
}

func TestQuantumKeywords(t *testing.T) {
	checkTokens(t, "qbit q; measure q -> r; measure q-r;", []expectedToken{
		{TokenQbit, "qbit"},
		{TokenIdentifier, "q"},
		{TokenSemicolon, ";"},
		{TokenMeasure, "measure"},
		{TokenIdentifier, "q"},
		{TokenArrow, "->"},
		{TokenIdentifier, "r"},
		{TokenSemicolon, ";"},
		{TokenMeasure, "measure"},
		{TokenIdentifier, "q"},
		{TokenMinus, "-"},
		{TokenIdentifier, "r"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	checkTokens(t, "3.14 7. 0.5x 12", []expectedToken{
		{TokenNumber, "3.14"},
		{TokenNumber, "7"},
		{TokenUnknown, "."},
		{TokenNumber, "0.5"},
		{TokenIdentifier, "x"},
		{TokenNumber, "12"},
		{TokenEOF, ""},
	})
}

func TestUnknownCharacters(t *testing.T) {
	checkTokens(t, "a @ [ ] # b !", []expectedToken{
		{TokenIdentifier, "a"},
		{TokenUnknown, "@"},
		{TokenUnknown, "["},
		{TokenUnknown, "]"},
		{TokenUnknown, "#"},
		{TokenIdentifier, "b"},
		{TokenUnknown, "!"},
		{TokenEOF, ""},
	})
}

func TestUnicodeIdentifiers(t *testing.T) {
	checkTokens(t, "let 量子 = α_1;", []expectedToken{
		{TokenLet, "let"},
		{TokenIdentifier, "量子"},
		{TokenAssign, "="},
		{TokenIdentifier, "α_1"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	})
}

func TestEOFIsRepeatable(t *testing.T) {
	l := New("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("call %d after end - expected EOF, got %s", i, tok)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	l := NewWithFilename("let x = 1;\n  H(q);\n", "pos.qx")
	toks := l.Tokens()

	tests := []struct {
		line, column, offset int
	}{
		{1, 1, 0},  // let
		{1, 5, 4},  // x
		{1, 7, 6},  // =
		{1, 9, 8},  // 1
		{1, 10, 9}, // ;
		{2, 3, 13}, // H(q);
		{3, 1, 19}, // EOF
	}
	if len(toks) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(toks), toks)
	}
	for i, tt := range tests {
		pos := toks[i].Pos
		if pos.Line != tt.line || pos.Column != tt.column || pos.Offset != tt.offset {
			t.Errorf("tests[%d] - position wrong. expected=%d:%d@%d, got=%d:%d@%d",
				i, tt.line, tt.column, tt.offset, pos.Line, pos.Column, pos.Offset)
		}
		if pos.Filename != "pos.qx" {
			t.Errorf("tests[%d] - filename wrong: %q", i, pos.Filename)
		}
	}
}

func TestGateCallRecognition(t *testing.T) {
	l := New("#[nope] H(q); CX(a); Y ( b ) ;")
	toks := l.Tokens()

	expected := []string{"H(q)", "CX(a)", "Y(b)"}
	got := qops(toks)
	if strings.Join(got, " ") != strings.Join(expected, " ") {
		t.Fatalf("qops wrong. expected=%v, got=%v", expected, got)
	}
	if toks[0].Pos.Column != 9 {
		t.Errorf("qop should carry gate position, got column %d", toks[0].Pos.Column)
	}
}

func TestScenarioCancelPair(t *testing.T) {
	toks := New("#[pe] H(q); H(q);").Tokens()

	for _, tok := range toks {
		if tok.Type == TokenQOp || tok.Type == TokenGate {
			t.Fatalf("expected everything to cancel, got %s in %v", tok, toks)
		}
	}
	if len(toks) != 1 || toks[0].Type != TokenEOF {
		t.Fatalf("expected only EOF, got %v", toks)
	}
}

func TestScenarioModeSwitch(t *testing.T) {
	toks := New("#[pe] H(q); H(q); X(q); X(q); #[nope] X(q);").Tokens()

	got := qops(toks)
	if len(got) != 1 || got[0] != "X(q)" {
		t.Fatalf("expected exactly [X(q)], got %v", got)
	}
}

func TestScenarioMultiQubitGates(t *testing.T) {
	toks := New("CNOT(a,b); CNOT(a,b);").Tokens()

	var gates int
	for _, tok := range toks {
		if tok.Type == TokenGate && tok.Literal == "CNOT" {
			gates++
		}
	}
	if gates != 2 {
		t.Fatalf("expected both CNOT calls to survive, got %d in %v", gates, toks)
	}
	if len(toks) != 15 {
		t.Fatalf("expected 15 tokens, got %d: %v", len(toks), toks)
	}
}

func TestMultiQubitGatesNeverCancel(t *testing.T) {
	for _, gate := range []string{"CX", "CNOT", "CCX"} {
		src := fmt.Sprintf("%s(q); %s(q); %s(q); %s(q);", gate, gate, gate, gate)
		got := qops(New(src).Tokens())
		if len(got) != 4 {
			t.Errorf("%s: expected 4 surviving operations, got %v", gate, got)
		}
	}
}

func TestEvenCancellation(t *testing.T) {
	for _, gate := range []string{"H", "X", "Y", "Z"} {
		for k := 0; k <= 7; k++ {
			src := "#[pe]" + strings.Repeat(gate+"(q); ", k) + "let done = 1;"
			toks := New(src).Tokens()

			got := qops(toks)
			want := k % 2
			if len(got) != want {
				t.Errorf("%s x%d: expected %d operations, got %v", gate, k, want, got)
			}
			if toks[len(got)].Type != TokenLet {
				t.Errorf("%s x%d: trailing tokens not preserved: %v", gate, k, toks)
			}
		}
	}
}

func TestNoCrossCancellation(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"H(q); X(q);", []string{"H(q)", "X(q)"}},
		{"H(a); H(b);", []string{"H(a)", "H(b)"}},
		{"X(a); Y(a); X(a);", []string{"X(a)", "Y(a)", "X(a)"}},
		{"H(a); H(b); H(b); H(a);", nil},
		{"Z(q); H(q); X(q); X(q); H(q); Z(q); Y(q);", []string{"Y(q)"}},
	}

	for i, tt := range tests {
		got := qops(New(tt.input).Tokens())
		if strings.Join(got, " ") != strings.Join(tt.expected, " ") {
			t.Errorf("tests[%d] %q - expected=%v, got=%v", i, tt.input, tt.expected, got)
		}
	}
}

func TestModeBoundary(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		// before the boundary cancels, after it does not, and the two never meet
		{"H(q); H(q); H(q); #[nope] H(q); H(q);", []string{"H(q)", "H(q)", "H(q)"}},
		{"#[dynamic] X(q); X(q); #[static] X(q); X(q);", []string{"X(q)", "X(q)"}},
		// re-enabling starts a fresh session over later operations only
		{"#[nope] Z(q); #[pe] Z(q); Z(q); Z(q);", []string{"Z(q)", "Z(q)"}},
		{"X(q); #[nope] X(q); #[pe] X(q);", []string{"X(q)", "X(q)", "X(q)"}},
	}

	for i, tt := range tests {
		got := qops(New(tt.input).Tokens())
		if strings.Join(got, " ") != strings.Join(tt.expected, " ") {
			t.Errorf("tests[%d] %q - expected=%v, got=%v", i, tt.input, tt.expected, got)
		}
	}
}

func TestSessionSpansPragmas(t *testing.T) {
	// a pragma inside a run of operations does not end the buffering session
	got := qops(New("H(q); #[static] #[whatever] H(q);").Tokens())
	if len(got) != 0 {
		t.Fatalf("expected cancellation across pragma, got %v", got)
	}
}

func TestBufferedOperationsKeepOrder(t *testing.T) {
	toks := New("qbit q; H(a); X(b); Y(c); measure a;").Tokens()

	var seq []string
	for _, tok := range toks {
		seq = append(seq, tok.String())
	}
	expected := []string{
		"QBIT", `IDENTIFIER("q")`, "SEMICOLON",
		"QOP(H, a)", "QOP(X, b)", "QOP(Y, c)",
		"MEASURE", `IDENTIFIER("a")`, "SEMICOLON", "EOF",
	}
	if strings.Join(seq, " ") != strings.Join(expected, " ") {
		t.Fatalf("sequence wrong.\nexpected=%v\ngot=     %v", expected, seq)
	}
}

func TestPragmaInvisibility(t *testing.T) {
	inputs := []string{
		"#[pe]",
		"#[ nope ] let x = 1;",
		"#[pe] #[nope] #[static] #[dynamic] #[unknown] H(q);",
		"H #[nope] (q);",
		"#[unterminated",
	}
	for _, input := range inputs {
		for _, tok := range New(input).Tokens() {
			if tok.Type == TokenPragma {
				t.Errorf("%q: pragma leaked: %s", input, tok)
			}
		}
	}
}

func TestPragmaModeTracking(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"#[nope]", false},
		{"#[dynamic]", false},
		{"#[nope] #[static]", true},
		{"#[nope] #[PE]", false},
		{"#[nope] #[bogus]", false},
		{"#[ pe ]", true},
		{"#[nope] #[  pe  ]", true},
	}

	for i, tt := range tests {
		l := New(tt.input)
		l.Tokens()
		if l.PEEnabled() != tt.expected {
			t.Errorf("tests[%d] %q - PE expected=%v, got=%v", i, tt.input, tt.expected, l.PEEnabled())
		}
	}
}

func TestSpeculativeLookaheadExactness(t *testing.T) {
	// none of these contain a complete G(ident); call, so the cooked stream
	// must equal the raw scan token for token
	inputs := []string{
		"H",
		"H(",
		"H(q)",
		"H(q) x;",
		"H q ;",
		"H(1);",
		"H(q, r);",
		"CNOT(a,b); CCX(a,b,c);",
		"H H H(q)",
		"X(H(q));",
		"let y = H + X;",
		"H(q) + Z(r) * 2",
		"Y(q)) ;",
	}

	for _, input := range inputs {
		cooked := New(input).Tokens()
		raw := rawTokens(input)

		if len(cooked) != len(raw) {
			t.Fatalf("%q: length mismatch.\ncooked=%v\nraw=   %v", input, cooked, raw)
		}
		for i := range raw {
			if cooked[i] != raw[i] {
				t.Fatalf("%q: token %d differs. cooked=%s raw=%s", input, i, cooked[i], raw[i])
			}
		}
	}
}

func TestLookaheadRetriggersPerGate(t *testing.T) {
	// the failed window of the first H contains a gate that must still be
	// recognized on its own
	got := qops(New("#[nope] H X(q);").Tokens())
	if len(got) != 1 || got[0] != "X(q)" {
		t.Fatalf("expected [X(q)], got %v", got)
	}

	toks := New("H X(q); X(q);").Tokens()
	if toks[0].Type != TokenGate || toks[0].Literal != "H" {
		t.Fatalf("expected bare H first, got %s", toks[0])
	}
	if got := qops(toks); len(got) != 0 {
		t.Fatalf("expected the X pair to cancel, got %v", got)
	}
}

func TestHeldTokenAfterSession(t *testing.T) {
	// the token ending a session can itself be a bare gate whose lookahead
	// window was restored
	toks := New("H(q); CNOT(a,b);").Tokens()

	expected := []string{
		"QOP(H, q)", `GATE("CNOT")`, "LPAREN", `IDENTIFIER("a")`, "COMMA",
		`IDENTIFIER("b")`, "RPAREN", "SEMICOLON", "EOF",
	}
	var seq []string
	for _, tok := range toks {
		seq = append(seq, tok.String())
	}
	if strings.Join(seq, " ") != strings.Join(expected, " ") {
		t.Fatalf("sequence wrong.\nexpected=%v\ngot=     %v", expected, seq)
	}
}

func TestSetPEEnabled(t *testing.T) {
	l := New("H(q); H(q);")
	l.SetPEEnabled(false)
	if got := qops(l.Tokens()); len(got) != 2 {
		t.Fatalf("expected no cancellation with PE off, got %v", got)
	}
}

func TestLongCancellingChainIsIterative(t *testing.T) {
	src := strings.Repeat("#[pe] ", 10000) + strings.Repeat("X(q); ", 20000) + "let z = 0;"
	toks := New(src).Tokens()
	if len(toks) != 6 || toks[0].Type != TokenLet {
		t.Fatalf("expected only the let statement to remain, got %d tokens", len(toks))
	}
}
