package lexer

import "testing"

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name       string
		recognized bool
		enables    bool
	}{
		{"pe", true, true},
		{"static", true, true},
		{"nope", true, false},
		{"dynamic", true, false},
		{"Pe", false, false},
		{"STATIC", false, false},
		{"inline", false, false},
		{"", false, false},
	}

	for i, tt := range tests {
		a, ok := ParseAnnotation(tt.name)
		if ok != tt.recognized {
			t.Fatalf("tests[%d] %q - recognized wrong. expected=%v, got=%v", i, tt.name, tt.recognized, ok)
		}
		if ok && a.Enables() != tt.enables {
			t.Fatalf("tests[%d] %q - enables wrong. expected=%v, got=%v", i, tt.name, tt.enables, a.Enables())
		}
		if ok && a.String() != tt.name {
			t.Fatalf("tests[%d] - string wrong. expected=%q, got=%q", i, tt.name, a.String())
		}
	}
}
