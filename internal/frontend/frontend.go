// Package frontend wires the lexer and parser into the one-call pipelines
// shared by the command line, the file watcher and the HTTP service.
package frontend

import (
	"os"

	"github.com/qxad-lang/qxad/internal/ast"
	qxerrors "github.com/qxad-lang/qxad/internal/errors"
	"github.com/qxad-lang/qxad/internal/lexer"
	"github.com/qxad-lang/qxad/internal/parser"
)

// Options configure a pipeline run
type Options struct {
	Filename string
	// PE is the partial-evaluation mode in effect before the first pragma
	PE bool
}

// DefaultOptions returns options with partial evaluation enabled. It is the
// base for configuration defaults and for per-request options.
func DefaultOptions() Options {
	return Options{PE: true}
}

func (o Options) newLexer(src string) *lexer.Lexer {
	l := lexer.NewWithFilename(src, o.Filename)
	l.SetPEEnabled(o.PE)
	return l
}

// Tokenize returns the full token stream for src, ending with EOF
func Tokenize(src string, opts Options) []lexer.Token {
	return opts.newLexer(src).Tokens()
}

// Parse parses src into a program. The error, if any, is a *parser.ParseError.
func Parse(src string, opts Options) (*ast.Program, error) {
	return parser.NewParser(opts.newLexer(src)).Parse()
}

// ReadSource reads a whole source file
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", qxerrors.ReadFailure(path, err)
	}
	return string(data), nil
}
