// Package atom defines the node/link value types, the composite-type tree,
// and the builders that realize them from caller-supplied descriptors.
package atom

import "github.com/ritamzico/atomgraph/internal/atomhash"

type Handle = atomhash.Handle

// Header holds the fields common to every stored atom.
type Header struct {
	ID                Handle
	Handle            Handle
	CompositeTypeHash Handle
	NamedType         string
	CustomAttributes  map[string]CustomAttributeValue
}

// Node is a terminal atom identified by (type, name).
type Node struct {
	Header
	Name string
}

// Clone returns a deep copy of n (custom attributes included).
func (n Node) Clone() Node {
	n.CustomAttributes = cloneAttributes(n.CustomAttributes)
	return n
}

// Link is a non-terminal atom identified by (type, ordered targets).
type Link struct {
	Header
	CompositeType    CompositeType
	NamedTypeHash    Handle
	Targets          []Handle
	IsToplevel       bool
	TargetsDocuments []Atom // only populated on read, never stored in indices
}

// Clone returns a deep copy of l (custom attributes and target handles
// included; TargetsDocuments is dropped since it is a read-time
// materialization, never part of the stored atom).
func (l Link) Clone() Link {
	l.CustomAttributes = cloneAttributes(l.CustomAttributes)
	targets := make([]Handle, len(l.Targets))
	copy(targets, l.Targets)
	l.Targets = targets
	l.TargetsDocuments = nil
	return l
}

// Atom is either a Node or a Link; the sole stored entity.
type Atom interface {
	atomHeader() Header
}

func (n Node) atomHeader() Header { return n.Header }
func (l Link) atomHeader() Header { return l.Header }

// HeaderOf extracts the common header fields from any Atom.
func HeaderOf(a Atom) Header { return a.atomHeader() }
