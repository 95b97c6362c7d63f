package atom

import (
	"encoding/json"

	"github.com/ritamzico/atomgraph/internal/atomhash"
)

// CompositeType is the recursive structural-type descriptor mirroring the
// shape of a link and its transitive targets: each element is either a
// type-name handle (a leaf) or a nested list of the same shape (a branch).
// Element zero of the top-level list is always the link's own
// named_type_hash.
type CompositeType struct {
	leaf     atomhash.Handle
	branch   []CompositeType
	isBranch bool
}

// Leaf builds a CompositeType wrapping a single type-hash handle.
func Leaf(h atomhash.Handle) CompositeType {
	return CompositeType{leaf: h}
}

// Branch builds a CompositeType wrapping a nested list of elements, used for
// a target that is itself a link (whose own composite_type tree is spliced
// in whole).
func Branch(elements []CompositeType) CompositeType {
	return CompositeType{branch: elements, isBranch: true}
}

// IsLeaf reports whether this element is a bare handle rather than a nested
// list.
func (c CompositeType) IsLeaf() bool { return !c.isBranch }

// LeafHandle returns the wrapped handle; only valid when IsLeaf() is true.
func (c CompositeType) LeafHandle() atomhash.Handle { return c.leaf }

// Elements returns the nested list; only valid when IsLeaf() is false.
func (c CompositeType) Elements() []CompositeType { return c.branch }

// MarshalJSON renders a leaf as its bare handle string and a branch as a
// nested array, so a snapshot's composite_type tree reads the same shape
// as the link it describes.
func (c CompositeType) MarshalJSON() ([]byte, error) {
	if c.IsLeaf() {
		return json.Marshal(c.leaf)
	}
	return json.Marshal(c.branch)
}

// UnmarshalJSON accepts either shape produced by MarshalJSON.
func (c *CompositeType) UnmarshalJSON(data []byte) error {
	var leaf atomhash.Handle
	if err := json.Unmarshal(data, &leaf); err == nil {
		*c = Leaf(leaf)
		return nil
	}
	var branch []CompositeType
	if err := json.Unmarshal(data, &branch); err != nil {
		return err
	}
	*c = Branch(branch)
	return nil
}
