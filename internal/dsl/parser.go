package dsl

import (
	"context"
	"fmt"

	"github.com/ritamzico/atomgraph/internal/query"
	"github.com/ritamzico/atomgraph/internal/result"
	"github.com/ritamzico/atomgraph/internal/store"
)

// Parser turns one DSL command line into a query.Query. It carries no
// session state: the atom store owning the data is supplied per call.
type Parser struct{}

func NewParser() Parser { return Parser{} }

// ParseLine parses a single command line into an executable Query.
func (p Parser) ParseLine(input string) (query.Query, error) {
	ast, err := dslParser.ParseString("", input)
	if err != nil {
		return nil, SyntaxError{Kind: "ParseError", Message: fmt.Sprintf("%v", err)}
	}
	return convertGrammar(ast)
}

// Run parses input and executes it against s in one step.
func (p Parser) Run(ctx context.Context, s store.AtomStore, input string) (result.Result, error) {
	q, err := p.ParseLine(input)
	if err != nil {
		return nil, err
	}
	return q.Execute(ctx, s)
}
