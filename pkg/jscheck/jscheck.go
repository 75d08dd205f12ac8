// Package jscheck verifies rewritten JavaScript: it checks that the output
// still parses and can execute code against a two-frame sandbox.
package jscheck

import (
	"errors"
	"fmt"

	"github.com/dop251/goja/parser"
)

// ErrRewriteBroke is returned by Compare when the input parses and the
// rewritten output does not.
var ErrRewriteBroke = errors.New("rewritten code no longer parses")

// ParseError is a syntax error reported by the JavaScript parser.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reports whether code is syntactically valid JavaScript.
func Parse(code string) error {
	if _, err := parser.ParseFile(nil, "", code, 0); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// Compare checks rewritten against original. An original that does not
// parse has nothing to preserve, so only a regression is an error.
func Compare(original, rewritten string) error {
	if Parse(original) != nil {
		return nil
	}
	if err := Parse(rewritten); err != nil {
		return fmt.Errorf("%w: %w", ErrRewriteBroke, err)
	}
	return nil
}
