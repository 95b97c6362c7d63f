package query

import (
	"context"
	"fmt"

	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/atomhash"
	"github.com/ritamzico/atomgraph/internal/result"
	"github.com/ritamzico/atomgraph/internal/store"
)

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return QueryError{Kind: "ContextCanceled", Message: ctx.Err().Error()}
	default:
		return nil
	}
}

// AddNodeQuery files a single node.
type AddNodeQuery struct {
	Descriptor atom.NodeDescriptor
}

func (q AddNodeQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	n, err := s.AddNode(q.Descriptor)
	if err != nil {
		return nil, err
	}
	return result.AtomResult{Atom: n}, nil
}

// AddLinkQuery files a link, recursively realizing any nested target
// descriptors.
type AddLinkQuery struct {
	Descriptor atom.LinkDescriptor
	IsToplevel bool
}

func (q AddLinkQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	l, err := s.AddLink(q.Descriptor, q.IsToplevel)
	if err != nil {
		return nil, err
	}
	return result.AtomResult{Atom: l}, nil
}

// DeleteAtomQuery removes an atom and cascades to any link that held it as
// a target.
type DeleteAtomQuery struct {
	Handle atomhash.Handle
}

func (q DeleteAtomQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	if err := s.DeleteAtom(q.Handle); err != nil {
		return nil, err
	}
	return result.BooleanResult{Value: true}, nil
}

// ClearQuery drops every table and index.
type ClearQuery struct{}

func (q ClearQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.ClearDatabase()
	return result.BooleanResult{Value: true}, nil
}

// MatchLinkQuery resolves get_matched_links: type and/or targets may carry
// the wildcard token.
type MatchLinkQuery struct {
	Type         string
	Targets      []string
	ToplevelOnly bool
}

func (q MatchLinkQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	handles, err := s.GetMatchedLinks(q.Type, q.Targets, q.ToplevelOnly)
	if err != nil {
		return nil, err
	}
	return result.HandleSetResult{Handles: handles}, nil
}

// MatchTypeQuery resolves get_matched_type.
type MatchTypeQuery struct {
	Type         string
	ToplevelOnly bool
}

func (q MatchTypeQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	return result.HandleSetResult{Handles: s.GetMatchedType(q.Type, q.ToplevelOnly)}, nil
}

// MatchTemplateQuery resolves get_matched_type_template.
type MatchTemplateQuery struct {
	Template     []string
	ToplevelOnly bool
}

func (q MatchTemplateQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	return result.HandleSetResult{Handles: s.GetMatchedTypeTemplate(q.Template, q.ToplevelOnly)}, nil
}

// GetAtomQuery resolves get_atom with the given reformatting options.
type GetAtomQuery struct {
	Handle  atomhash.Handle
	Options store.GetAtomOptions
}

func (q GetAtomQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	a, err := s.GetAtom(q.Handle, q.Options)
	if err != nil {
		return nil, err
	}
	return result.AtomResult{Atom: a}, nil
}

// IncomingQuery resolves get_incoming_links_handles / get_incoming_links_atoms,
// selected by Options.HandlesOnly.
type IncomingQuery struct {
	Handle  atomhash.Handle
	Options store.GetAtomOptions
}

func (q IncomingQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	if q.Options.HandlesOnly {
		return result.HandleSetResult{Handles: s.GetIncomingLinkHandles(q.Handle)}, nil
	}
	atoms, err := s.GetIncomingLinkAtoms(q.Handle, q.Options)
	if err != nil {
		return nil, err
	}
	return result.AtomSetResult{Atoms: atoms}, nil
}

// NodeExistsQuery resolves node_exists.
type NodeExistsQuery struct {
	Type, Name string
}

func (q NodeExistsQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	return result.BooleanResult{Value: s.NodeExists(q.Type, q.Name)}, nil
}

// LinkExistsQuery resolves link_exists.
type LinkExistsQuery struct {
	Type    string
	Targets []atomhash.Handle
}

func (q LinkExistsQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	return result.BooleanResult{Value: s.LinkExists(q.Type, q.Targets)}, nil
}

// CountQuery resolves count_atoms.
type CountQuery struct{}

func (q CountQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	counts := s.CountAtoms()
	return result.CountResult{NodeCount: counts.NodeCount, LinkCount: counts.LinkCount, AtomCount: counts.AtomCount}, nil
}

// MultiQuery runs each sub-query in order against the same store and
// collects the results. Unlike the combinator it replaces, this always runs
// sequentially: the store performs no internal locking (spec §5), so
// concurrent sub-queries against the same store would race.
type MultiQuery struct {
	Queries []Query
}

func (q MultiQuery) Execute(ctx context.Context, s store.AtomStore) (result.Result, error) {
	results := make([]result.Result, 0, len(q.Queries))
	for i, sub := range q.Queries {
		r, err := sub.Execute(ctx, s)
		if err != nil {
			return nil, QueryError{
				Kind:    "MultiQueryFailed",
				Message: fmt.Sprintf("sub-query %d: %v", i, err),
			}
		}
		results = append(results, r)
	}
	return result.MultiResult{Results: results}, nil
}
