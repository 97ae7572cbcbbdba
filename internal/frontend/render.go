package frontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/qxad-lang/qxad/internal/ast"
	"github.com/qxad-lang/qxad/internal/lexer"
	"github.com/qxad-lang/qxad/internal/parser"
	"github.com/qxad-lang/qxad/internal/position"
)

// TokenView is the serialized form of a token
type TokenView struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// TokenViews converts tokens to their serialized form
func TokenViews(tokens []lexer.Token) []TokenView {
	views := make([]TokenView, 0, len(tokens))
	for _, tok := range tokens {
		views = append(views, TokenView{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Target:  tok.Target,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}
	return views
}

// ProgramView is the serialized form of a parsed program
type ProgramView struct {
	AST   interface{} `json:"ast" yaml:"ast"`
	Stats ast.Stats   `json:"stats" yaml:"stats"`
}

// NewProgramView builds the serialized form of program
func NewProgramView(program *ast.Program) ProgramView {
	return ProgramView{AST: ast.Dump(program), Stats: ast.Collect(program)}
}

// ErrorView is the serialized form of a failure. Kind, Line and Column are
// only set for parse errors.
type ErrorView struct {
	Error  string `json:"error" yaml:"error"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// NewErrorView builds the serialized form of err
func NewErrorView(err error) ErrorView {
	view := ErrorView{Error: err.Error()}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		view.Kind = perr.Kind.String()
		view.Line = perr.Position.Line
		view.Column = perr.Position.Column
	}
	return view
}

// Renderer writes pipeline results in one of the text, json or yaml formats
type Renderer struct {
	Format string
	Color  bool
}

// NewRenderer creates a renderer; an empty format means text
func NewRenderer(format string, color bool) *Renderer {
	if format == "" {
		format = "text"
	}
	return &Renderer{Format: format, Color: color}
}

// WriteTokens writes a token stream, one token per line in text format
func (r *Renderer) WriteTokens(w io.Writer, tokens []lexer.Token) error {
	if r.Format != "text" {
		return r.encode(w, TokenViews(tokens))
	}

	styles := newTokenStyles(w, r.Color)
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, styles.render(tok)); err != nil {
			return err
		}
	}
	return nil
}

// WriteProgram writes a parsed program
func (r *Renderer) WriteProgram(w io.Writer, program *ast.Program) error {
	if r.Format != "text" {
		return r.encode(w, NewProgramView(program))
	}
	_, err := fmt.Fprintln(w, ast.PrettyPrint(program))
	return err
}

// WriteError writes err. In text format a parse error is followed by the
// offending source line with a caret under the error column.
func (r *Renderer) WriteError(w io.Writer, src *position.SourceFile, err error) error {
	if r.Format != "text" {
		return r.encode(w, NewErrorView(err))
	}

	if _, werr := fmt.Fprintln(w, err.Error()); werr != nil {
		return werr
	}
	var perr *parser.ParseError
	if src != nil && errors.As(err, &perr) {
		if caret := src.Caret(perr.Position); caret != "" {
			_, werr := fmt.Fprintln(w, caret)
			return werr
		}
	}
	return nil
}

func (r *Renderer) encode(w io.Writer, v interface{}) error {
	switch r.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", r.Format)
	}
}

type tokenStyles struct {
	enabled bool
	keyword lipgloss.Style
	quantum lipgloss.Style
	number  lipgloss.Style
	pragma  lipgloss.Style
	unknown lipgloss.Style
	plain   lipgloss.Style
}

func newTokenStyles(w io.Writer, color bool) *tokenStyles {
	if !color {
		return &tokenStyles{}
	}

	re := lipgloss.NewRenderer(w)
	re.SetColorProfile(termenv.ANSI256)
	return &tokenStyles{
		enabled: true,
		keyword: re.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true),
		quantum: re.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		number:  re.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		pragma:  re.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true),
		unknown: re.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		plain:   re.NewStyle(),
	}
}

func (s *tokenStyles) render(tok lexer.Token) string {
	text := tok.String()
	if !s.enabled {
		return text
	}

	switch tok.Type {
	case lexer.TokenLet, lexer.TokenFn, lexer.TokenReturn, lexer.TokenQbit, lexer.TokenMeasure:
		return s.keyword.Render(text)
	case lexer.TokenGate, lexer.TokenQOp:
		return s.quantum.Render(text)
	case lexer.TokenNumber:
		return s.number.Render(text)
	case lexer.TokenPragma:
		return s.pragma.Render(text)
	case lexer.TokenUnknown:
		return s.unknown.Render(text)
	default:
		return s.plain.Render(text)
	}
}
