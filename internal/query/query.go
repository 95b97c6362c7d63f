// Package query wraps each store operation the DSL can invoke in a Query
// value, so the DSL's convert step and the HTTP handlers share one
// execution path instead of calling the store directly.
package query

import (
	"context"

	"github.com/ritamzico/atomgraph/internal/result"
	"github.com/ritamzico/atomgraph/internal/store"
)

// Query is anything that can run against an atom store and produce a
// Result. Composite probabilistic combinators (and/or/threshold, concurrent
// fan-out) have no referent in a content-addressed store and are not part
// of this surface.
type Query interface {
	Execute(ctx context.Context, s store.AtomStore) (result.Result, error)
}
