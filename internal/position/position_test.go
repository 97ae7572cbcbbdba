package position

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos      Position
		expected string
	}{
		{Position{Line: 1, Column: 5, Offset: 4}, "1:5"},
		{Position{Filename: "/tmp/src/bell.qx", Line: 3, Column: 2, Offset: 20}, "bell.qx:3:2"},
	}

	for i, tt := range tests {
		if got := tt.pos.String(); got != tt.expected {
			t.Fatalf("tests[%d] - string wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestPositionValidity(t *testing.T) {
	if (Position{}).IsValid() {
		t.Error("zero position should be invalid")
	}
	if !(Position{Line: 1, Column: 1}).IsValid() {
		t.Error("1:1 should be valid")
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 4, Offset: 3},
	}
	b := Span{
		Start: Position{Line: 2, Column: 1, Offset: 10},
		End:   Position{Line: 2, Column: 6, Offset: 15},
	}

	u := a.Union(b)
	if u.Start != a.Start || u.End != b.End {
		t.Fatalf("union wrong: got %s", u)
	}
	if got := u.String(); got != "1:1-2:6" {
		t.Fatalf("span string wrong. expected=%q, got=%q", "1:1-2:6", got)
	}
	if got := (Span{}).Union(b); got != b {
		t.Fatalf("union with invalid span should return other, got %s", got)
	}
}

func TestSourceFileCaret(t *testing.T) {
	sf := NewSourceFile("t.qx", "fn main() {\n  let x = ;\n}")

	if got := sf.GetLine(2); got != "  let x = ;" {
		t.Fatalf("GetLine wrong: %q", got)
	}
	if got := sf.GetLine(9); got != "" {
		t.Fatalf("GetLine out of range should be empty, got %q", got)
	}

	got := sf.Caret(Position{Line: 2, Column: 11, Offset: 22})
	expected := "   2 |   let x = ;\n     |           ^"
	if got != expected {
		t.Fatalf("caret wrong.\nexpected=%q\ngot=     %q", expected, got)
	}

	if sf.Caret(Position{}) != "" {
		t.Error("caret for invalid position should be empty")
	}

	tabbed := NewSourceFile("t.qx", "\tH(q) q;")
	got = tabbed.Caret(Position{Line: 1, Column: 3, Offset: 2})
	expected = "   1 | \tH(q) q;\n     | \t ^"
	if got != expected {
		t.Fatalf("caret should keep leading tabs.\nexpected=%q\ngot=     %q", expected, got)
	}
}
