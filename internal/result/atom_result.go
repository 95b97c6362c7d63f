package result

import (
	"fmt"
	"strings"

	"github.com/ritamzico/atomgraph/internal/atom"
)

// AtomResult wraps a single resolved atom, as returned by get_atom and by
// add_node / add_link.
type AtomResult struct {
	Atom atom.Atom
}

func (r AtomResult) Kind() Kind { return AtomResultKind }

func (r AtomResult) String() string {
	if r.Atom == nil {
		return "No such atom."
	}
	return formatAtom(r.Atom)
}

// AtomSetResult wraps a set-valued list of resolved atoms.
type AtomSetResult struct {
	Atoms []atom.Atom
}

func (r AtomSetResult) Kind() Kind { return AtomSetResultKind }

func (r AtomSetResult) String() string {
	if len(r.Atoms) == 0 {
		return "No matches."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Atoms (%d):", len(r.Atoms))
	for i, a := range r.Atoms {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, formatAtom(a))
	}
	return b.String()
}

func formatAtom(a atom.Atom) string {
	switch v := a.(type) {
	case atom.Node:
		return fmt.Sprintf("%s(%q) [%s]", v.NamedType, v.Name, v.Handle)
	case atom.Link:
		targets := make([]string, len(v.Targets))
		for i, t := range v.Targets {
			targets[i] = string(t)
		}
		return fmt.Sprintf("%s(%s) [%s]", v.NamedType, strings.Join(targets, ", "), v.Handle)
	default:
		return fmt.Sprintf("%v", a)
	}
}
