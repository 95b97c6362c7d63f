package result

import "fmt"

// CountResult wraps the outcome of count_atoms.
type CountResult struct {
	NodeCount int
	LinkCount int
	AtomCount int
}

func (r CountResult) Kind() Kind { return CountResultKind }

func (r CountResult) String() string {
	return fmt.Sprintf("nodes: %d, links: %d, atoms: %d", r.NodeCount, r.LinkCount, r.AtomCount)
}
