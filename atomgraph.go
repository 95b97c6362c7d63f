// Package atomgraph is the façade wrapping an atom store and its DSL
// parser: New/Load construct one, Query runs a single command line
// against it, Save/SaveFile snapshot it back out.
package atomgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ritamzico/atomgraph/internal/dsl"
	"github.com/ritamzico/atomgraph/internal/result"
	"github.com/ritamzico/atomgraph/internal/serialization"
	"github.com/ritamzico/atomgraph/internal/store"
)

type Result = result.Result

// AtomGraph pairs a store with the parser used to drive it from DSL text.
type AtomGraph struct {
	Store  store.AtomStore
	parser dsl.Parser
}

func New() *AtomGraph {
	return &AtomGraph{
		Store:  store.NewInMemoryAtomStore(),
		parser: dsl.NewParser(),
	}
}

func Load(r io.Reader) (*AtomGraph, error) {
	s, err := serialization.ReadJSON(r)
	if err != nil {
		return nil, err
	}
	return &AtomGraph{Store: s, parser: dsl.NewParser()}, nil
}

func LoadFile(path string) (*AtomGraph, error) {
	s, err := serialization.LoadJSON(path)
	if err != nil {
		return nil, err
	}
	return &AtomGraph{Store: s, parser: dsl.NewParser()}, nil
}

// Query parses and executes a single DSL command line against the graph.
func (g *AtomGraph) Query(dslQuery string) (Result, error) {
	return g.parser.Run(context.Background(), g.Store, dslQuery)
}

func (g *AtomGraph) Save(w io.Writer) error {
	return serialization.WriteJSON(g.Store, w)
}

func (g *AtomGraph) SaveFile(path string) error {
	return serialization.SaveJSON(g.Store, path)
}

type jsonResult struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// MarshalResultJSON wraps a Result in a {kind, data} envelope so cmd/server
// can return any result shape through one JSON response type.
func MarshalResultJSON(r Result) ([]byte, error) {
	var jr jsonResult
	switch v := r.(type) {
	case result.HandleSetResult:
		jr = jsonResult{Kind: "handles", Data: v}
	case result.AtomResult:
		jr = jsonResult{Kind: "atom", Data: v}
	case result.AtomSetResult:
		jr = jsonResult{Kind: "atoms", Data: v}
	case result.CountResult:
		jr = jsonResult{Kind: "count", Data: v}
	case result.BooleanResult:
		jr = jsonResult{Kind: "boolean", Data: v}
	case result.MultiResult:
		items := make([]json.RawMessage, len(v.Results))
		for i, sub := range v.Results {
			b, err := MarshalResultJSON(sub)
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		jr = jsonResult{Kind: "multi", Data: items}
	default:
		jr = jsonResult{Kind: "unknown", Data: fmt.Sprintf("%v", r)}
	}
	return json.Marshal(jr)
}
