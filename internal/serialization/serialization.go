// Package serialization snapshots an atom store to JSON and restores it.
// A snapshot is a flat list of every node and link; restoring goes through
// store.BulkInsert rather than AddNode/AddLink so the atoms land back in
// the store with the exact handles they were written with, instead of
// having them re-derived from descriptors.
package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/atomhash"
	"github.com/ritamzico/atomgraph/internal/store"
)

type serializedValue struct {
	Kind  string `json:"kind"`
	Value any    `json:"value,omitempty"`
}

func marshalValue(v atom.CustomAttributeValue) serializedValue {
	switch v.Kind {
	case atom.AttrString:
		return serializedValue{Kind: "string", Value: v.S}
	case atom.AttrInt:
		return serializedValue{Kind: "int", Value: v.I}
	case atom.AttrFloat:
		return serializedValue{Kind: "float", Value: v.F}
	case atom.AttrBool:
		return serializedValue{Kind: "bool", Value: v.B}
	default:
		return serializedValue{Kind: "unknown"}
	}
}

func unmarshalValue(sv serializedValue) (atom.CustomAttributeValue, error) {
	switch sv.Kind {
	case "string":
		s, ok := sv.Value.(string)
		if !ok {
			return atom.CustomAttributeValue{}, fmt.Errorf("expected string, got %T", sv.Value)
		}
		return atom.StringAttr(s), nil
	case "int":
		f, ok := sv.Value.(float64)
		if !ok {
			return atom.CustomAttributeValue{}, fmt.Errorf("expected number for int, got %T", sv.Value)
		}
		return atom.IntAttr(int64(f)), nil
	case "float":
		f, ok := sv.Value.(float64)
		if !ok {
			return atom.CustomAttributeValue{}, fmt.Errorf("expected number for float, got %T", sv.Value)
		}
		return atom.FloatAttr(f), nil
	case "bool":
		b, ok := sv.Value.(bool)
		if !ok {
			return atom.CustomAttributeValue{}, fmt.Errorf("expected bool, got %T", sv.Value)
		}
		return atom.BoolAttr(b), nil
	default:
		return atom.CustomAttributeValue{}, fmt.Errorf("unknown serialized value kind %q", sv.Kind)
	}
}

func marshalAttrs(attrs map[string]atom.CustomAttributeValue) map[string]serializedValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]serializedValue, len(attrs))
	for k, v := range attrs {
		out[k] = marshalValue(v)
	}
	return out
}

func unmarshalAttrs(attrs map[string]serializedValue) (map[string]atom.CustomAttributeValue, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	out := make(map[string]atom.CustomAttributeValue, len(attrs))
	for k, sv := range attrs {
		v, err := unmarshalValue(sv)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

type serializedNode struct {
	Handle            string                     `json:"handle"`
	CompositeTypeHash string                     `json:"composite_type_hash"`
	NamedType         string                     `json:"named_type"`
	Name              string                     `json:"name"`
	CustomAttributes  map[string]serializedValue `json:"custom_attributes,omitempty"`
}

type serializedLink struct {
	Handle            string                     `json:"handle"`
	CompositeTypeHash string                     `json:"composite_type_hash"`
	NamedType         string                     `json:"named_type"`
	NamedTypeHash     string                     `json:"named_type_hash"`
	CompositeType     atom.CompositeType         `json:"composite_type"`
	Targets           []string                   `json:"targets"`
	IsToplevel        bool                       `json:"is_toplevel"`
	CustomAttributes  map[string]serializedValue `json:"custom_attributes,omitempty"`
}

type serializedAtom struct {
	Kind string          `json:"kind"`
	Node *serializedNode `json:"node,omitempty"`
	Link *serializedLink `json:"link,omitempty"`
}

type serializedStore struct {
	Atoms []serializedAtom `json:"atoms"`
}

func toSerializedAtom(a atom.Atom) (serializedAtom, error) {
	switch v := a.(type) {
	case atom.Node:
		return serializedAtom{
			Kind: "node",
			Node: &serializedNode{
				Handle:            string(v.Handle),
				CompositeTypeHash: string(v.CompositeTypeHash),
				NamedType:         v.NamedType,
				Name:              v.Name,
				CustomAttributes:  marshalAttrs(v.CustomAttributes),
			},
		}, nil
	case atom.Link:
		targets := make([]string, len(v.Targets))
		for i, t := range v.Targets {
			targets[i] = string(t)
		}
		return serializedAtom{
			Kind: "link",
			Link: &serializedLink{
				Handle:            string(v.Handle),
				CompositeTypeHash: string(v.CompositeTypeHash),
				NamedType:         v.NamedType,
				NamedTypeHash:     string(v.NamedTypeHash),
				CompositeType:     v.CompositeType,
				Targets:           targets,
				IsToplevel:        v.IsToplevel,
				CustomAttributes:  marshalAttrs(v.CustomAttributes),
			},
		}, nil
	default:
		return serializedAtom{}, fmt.Errorf("unknown atom type %T", a)
	}
}

func fromSerializedAtom(sa serializedAtom) (atom.Atom, error) {
	switch sa.Kind {
	case "node":
		n := sa.Node
		attrs, err := unmarshalAttrs(n.CustomAttributes)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.Handle, err)
		}
		return atom.Node{
			Header: atom.Header{
				ID:                atomhash.Handle(n.Handle),
				Handle:            atomhash.Handle(n.Handle),
				CompositeTypeHash: atomhash.Handle(n.CompositeTypeHash),
				NamedType:         n.NamedType,
				CustomAttributes:  attrs,
			},
			Name: n.Name,
		}, nil
	case "link":
		l := sa.Link
		attrs, err := unmarshalAttrs(l.CustomAttributes)
		if err != nil {
			return nil, fmt.Errorf("link %s: %w", l.Handle, err)
		}
		targets := make([]atomhash.Handle, len(l.Targets))
		for i, t := range l.Targets {
			targets[i] = atomhash.Handle(t)
		}
		return atom.Link{
			Header: atom.Header{
				ID:                atomhash.Handle(l.Handle),
				Handle:            atomhash.Handle(l.Handle),
				CompositeTypeHash: atomhash.Handle(l.CompositeTypeHash),
				NamedType:         l.NamedType,
				CustomAttributes:  attrs,
			},
			CompositeType: l.CompositeType,
			NamedTypeHash: atomhash.Handle(l.NamedTypeHash),
			Targets:       targets,
			IsToplevel:    l.IsToplevel,
		}, nil
	default:
		return nil, fmt.Errorf("unknown serialized atom kind %q", sa.Kind)
	}
}

// WriteJSON encodes every atom in s as JSON and writes it to w.
func WriteJSON(s store.AtomStore, w io.Writer) error {
	atoms := s.AllAtoms()
	sAtoms := make([]serializedAtom, len(atoms))
	for i, a := range atoms {
		sa, err := toSerializedAtom(a)
		if err != nil {
			return err
		}
		sAtoms[i] = sa
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(serializedStore{Atoms: sAtoms})
}

// ReadJSON decodes a snapshot from r into a fresh in-memory store.
func ReadJSON(r io.Reader) (*store.InMemoryAtomStore, error) {
	var ss serializedStore
	if err := json.NewDecoder(r).Decode(&ss); err != nil {
		return nil, fmt.Errorf("decoding snapshot JSON: %w", err)
	}

	atoms := make([]atom.Atom, len(ss.Atoms))
	for i, sa := range ss.Atoms {
		a, err := fromSerializedAtom(sa)
		if err != nil {
			return nil, err
		}
		atoms[i] = a
	}

	s := store.NewInMemoryAtomStore()
	errs := s.BulkInsert(atoms)
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("restoring atom %d: %w", i, err)
		}
	}
	return s, nil
}

// SaveJSON writes a snapshot of s to a JSON file at path.
func SaveJSON(s store.AtomStore, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// LoadJSON reads a snapshot from a JSON file at path into a fresh store.
func LoadJSON(path string) (*store.InMemoryAtomStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
