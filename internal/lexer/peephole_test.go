package lexer

import "testing"

func op(gate, target string) Token {
	return Token{Type: TokenQOp, Literal: gate, Target: target}
}

func sameOps(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		input    []Token
		expected []Token
	}{
		{"empty", nil, nil},
		{"single", []Token{op("H", "q")}, []Token{op("H", "q")}},
		{"pair", []Token{op("H", "q"), op("H", "q")}, nil},
		{"different targets", []Token{op("X", "a"), op("X", "b")}, []Token{op("X", "a"), op("X", "b")}},
		{"different gates", []Token{op("X", "a"), op("Z", "a")}, []Token{op("X", "a"), op("Z", "a")}},
		{"multi-qubit", []Token{op("CX", "a"), op("CX", "a")}, []Token{op("CX", "a"), op("CX", "a")}},
		{
			"nested pairs collapse to fixpoint",
			[]Token{op("H", "q"), op("X", "q"), op("Y", "q"), op("Y", "q"), op("X", "q"), op("H", "q")},
			nil,
		},
		{
			"cancellation exposes earlier pair",
			[]Token{op("Z", "a"), op("H", "q"), op("X", "q"), op("X", "q"), op("H", "q"), op("Y", "a")},
			[]Token{op("Z", "a"), op("Y", "a")},
		},
		{
			"odd run keeps one",
			[]Token{op("X", "q"), op("X", "q"), op("X", "q")},
			[]Token{op("X", "q")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(append([]Token(nil), tt.input...))
			if !sameOps(got, tt.expected) {
				t.Fatalf("expected=%v, got=%v", tt.expected, got)
			}

			again := Reduce(append([]Token(nil), got...))
			if !sameOps(again, got) {
				t.Fatalf("reduce not idempotent: %v -> %v", got, again)
			}
		})
	}
}

func TestCancelsOnlyQuantumOperations(t *testing.T) {
	gate := Token{Type: TokenGate, Literal: "H"}
	if cancels(gate, gate) {
		t.Fatal("bare gate tokens must never cancel")
	}
	if !cancels(op("Y", "q"), op("Y", "q")) {
		t.Fatal("Y(q) Y(q) should cancel")
	}
}
