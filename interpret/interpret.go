// Package interpret abstracts the language-understanding engine that turns
// free-text queries into keyword sets.
package interpret

import (
	"context"
)

// Interpreter extracts search keywords from free text.
//
// A query the engine cannot interpret yields an empty keyword set and no
// error; errors are reserved for the engine being unreachable or failing.
type Interpreter interface {
	Keywords(ctx context.Context, text string) ([]string, error)
}

// Func adapts a plain function to the Interpreter interface.
type Func func(ctx context.Context, text string) ([]string, error)

// Keywords implements Interpreter.
func (f Func) Keywords(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}
