// Package store implements the in-memory hypergraph atom store: the node
// and link tables plus the four derived indices (outgoing, incoming,
// template, pattern) described in spec.md §3.4-§4.5.
package store

import (
	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/atomhash"
)

type Handle = atomhash.Handle

// AtomCounts is the result of CountAtoms.
type AtomCounts struct {
	NodeCount int
	LinkCount int
	AtomCount int
}

// AtomStore is the public contract of the in-memory atom store (spec §4.4).
// AddNode/AddLink/DeleteAtom/ClearDatabase require exclusive access; every
// Get*/Count*/node_exists/link_exists requires at least shared access (see
// spec §5 — the store itself performs no internal locking).
type AtomStore interface {
	// Mutation
	AddNode(d atom.NodeDescriptor) (atom.Node, error)
	AddLink(d atom.LinkDescriptor, isToplevel bool) (atom.Link, error)
	DeleteAtom(handle Handle) error
	ClearDatabase()
	BulkInsert(atoms []atom.Atom) []error

	// Lookup
	GetNodeHandle(typ, name string) (Handle, error)
	GetNodeName(handle Handle) (string, error)
	GetNodeType(handle Handle) (string, error)
	GetLinkHandle(typ string, targets []Handle) (Handle, error)
	GetLinkType(handle Handle) (string, error)
	GetLinkTargets(handle Handle) ([]Handle, error)
	GetAtomType(handle Handle) (string, bool)
	GetAtom(handle Handle, opts GetAtomOptions) (atom.Atom, error)
	CountAtoms() AtomCounts
	GetAllNodeHandles(typ string) []Handle
	GetAllNodeNames(typ string) []string
	GetAllLinks(typ string) []atom.Link
	GetNodeByName(typ, substring string) []Handle
	AllAtoms() []atom.Atom

	NodeExists(typ, name string) bool
	LinkExists(typ string, targets []Handle) bool

	// Incoming traversal
	GetIncomingLinkHandles(handle Handle) []Handle
	GetIncomingLinkAtoms(handle Handle, opts GetAtomOptions) ([]atom.Atom, error)

	// Pattern match
	GetMatchedLinks(typ string, targets []string, toplevelOnly bool) ([]Handle, error)
	GetMatchedTypeTemplate(template []string, toplevelOnly bool) []Handle
	GetMatchedType(typ string, toplevelOnly bool) []Handle

	// Unimplemented surface (spec §4.4) — always ErrNotSupported.
	GetAtomsByField(field string, value any) ([]atom.Atom, error)
	GetAtomsByIndex(index string, value any) ([]atom.Atom, error)
	GetAtomsByTextField(field, text string) ([]atom.Atom, error)
	GetNodeByNameStartingWith(typ, prefix string) ([]Handle, error)
	Reindex() error
	CreateFieldIndex(typ, field string) error
	Commit() error
}
