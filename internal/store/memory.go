package store

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/atomhash"
	"github.com/ritamzico/atomgraph/internal/intern"
	"github.com/ritamzico/atomgraph/internal/pattern"
)

// InMemoryAtomStore is the sole AtomStore implementation: every table and
// index lives in process memory, with no internal locking (see spec §5 —
// callers needing concurrent access wrap the store themselves).
type InMemoryAtomStore struct {
	nodes map[Handle]atom.Node
	links map[Handle]atom.Link

	ids *intern.Table

	// outgoing[h] is link h's own target list, keyed by link handle.
	outgoing map[Handle][]Handle
	// incoming[h] is the set of (interned) link IDs that hold h as a
	// target, keyed by any atom handle.
	incoming map[Handle]*roaring.Bitmap
	// templates[k] is the set of link IDs filed under composite_type_hash
	// or named_type_hash k.
	templates map[Handle]*roaring.Bitmap
	// patterns[k] is the set of link IDs filed under wildcard pattern key k.
	patterns map[Handle]*roaring.Bitmap
}

// NewInMemoryAtomStore returns an empty store.
func NewInMemoryAtomStore() *InMemoryAtomStore {
	return &InMemoryAtomStore{
		nodes:     make(map[Handle]atom.Node),
		links:     make(map[Handle]atom.Link),
		ids:       intern.New(),
		outgoing:  make(map[Handle][]Handle),
		incoming:  make(map[Handle]*roaring.Bitmap),
		templates: make(map[Handle]*roaring.Bitmap),
		patterns:  make(map[Handle]*roaring.Bitmap),
	}
}

var _ AtomStore = (*InMemoryAtomStore)(nil)

// ---- Mutation ---------------------------------------------------------

func (s *InMemoryAtomStore) AddNode(d atom.NodeDescriptor) (atom.Node, error) {
	n, err := atom.BuildNode(d)
	if err != nil {
		return atom.Node{}, err
	}
	s.nodes[n.Handle] = n
	return n, nil
}

func (s *InMemoryAtomStore) AddLink(d atom.LinkDescriptor, isToplevel bool) (atom.Link, error) {
	if d.NamedType == "" {
		return atom.Link{}, atom.ErrInvalidAtom{Kind: "EmptyNamedType", Message: "named_type must not be empty"}
	}
	if len(d.Targets) == 0 {
		return atom.Link{}, atom.ErrInvalidAtom{Kind: "EmptyTargets", Message: "a link requires at least one target"}
	}

	results := make([]atom.TargetResult, len(d.Targets))
	for i, td := range d.Targets {
		switch {
		case td.Node != nil:
			n, err := s.AddNode(*td.Node)
			if err != nil {
				return atom.Link{}, err
			}
			results[i] = atom.TargetResult{
				Handle:            n.Handle,
				CompositeTypeHash: n.CompositeTypeHash,
				CompositeType:     atom.Leaf(n.CompositeTypeHash),
			}
		case td.Link != nil:
			l, err := s.AddLink(*td.Link, false)
			if err != nil {
				return atom.Link{}, err
			}
			results[i] = atom.TargetResult{
				Handle:            l.Handle,
				CompositeTypeHash: l.CompositeTypeHash,
				CompositeType:     l.CompositeType,
			}
		default:
			return atom.Link{}, atom.ErrInvalidAtom{Kind: "InvalidTarget", Message: "target descriptor must set exactly one of Node or Link"}
		}
	}

	built, err := atom.AssembleLink(d.NamedType, results, d.CustomAttributes)
	if err != nil {
		return atom.Link{}, err
	}

	if existing, ok := s.links[built.Handle]; ok {
		// A link already stored non-toplevel stays queryable as toplevel
		// once any insertion asks for that; toplevel status only grows.
		isToplevel = existing.IsToplevel || isToplevel
	}
	built.IsToplevel = isToplevel

	s.links[built.Handle] = built
	s.addAtomIndex(built)
	return built, nil
}

func (s *InMemoryAtomStore) DeleteAtom(handle Handle) error {
	if _, ok := s.nodes[handle]; ok {
		delete(s.nodes, handle)
		s.deleteAtomIndex(handle, nil)
		return nil
	}
	if _, ok := s.links[handle]; !ok {
		return errNotFoundHandle(string(handle))
	}
	s.deleteLinkAndUpdateIndex(handle)
	return nil
}

func (s *InMemoryAtomStore) ClearDatabase() {
	s.nodes = make(map[Handle]atom.Node)
	s.links = make(map[Handle]atom.Link)
	s.ids = intern.New()
	s.outgoing = make(map[Handle][]Handle)
	s.incoming = make(map[Handle]*roaring.Bitmap)
	s.templates = make(map[Handle]*roaring.Bitmap)
	s.patterns = make(map[Handle]*roaring.Bitmap)
}

// BulkInsert files already-built atoms (as produced by a prior snapshot
// load) directly into the tables and indices, preserving their stored
// handles exactly rather than recomputing them. Each slot in the returned
// slice corresponds to the same slot in atoms; nil means that atom was
// filed successfully.
func (s *InMemoryAtomStore) BulkInsert(atoms []atom.Atom) []error {
	errs := make([]error, len(atoms))
	for i, a := range atoms {
		switch v := a.(type) {
		case atom.Node:
			s.nodes[v.Handle] = v
		case atom.Link:
			s.links[v.Handle] = v
			s.addAtomIndex(v)
		default:
			errs[i] = atom.ErrInvalidAtom{Kind: "UnknownAtomKind", Message: "bulk insert only accepts Node or Link values"}
		}
	}
	return errs
}

// ---- Lookup -------------------------------------------------------------

func (s *InMemoryAtomStore) GetNodeHandle(typ, name string) (Handle, error) {
	handle, err := atomhash.TerminalHash(typ, name)
	if err != nil {
		return "", err
	}
	if _, ok := s.nodes[handle]; !ok {
		return "", errNotFoundHandle(string(handle))
	}
	return handle, nil
}

func (s *InMemoryAtomStore) GetNodeName(handle Handle) (string, error) {
	n, ok := s.nodes[handle]
	if !ok {
		return "", errNotFoundHandle(string(handle))
	}
	return n.Name, nil
}

func (s *InMemoryAtomStore) GetNodeType(handle Handle) (string, error) {
	n, ok := s.nodes[handle]
	if !ok {
		return "", errNotFoundHandle(string(handle))
	}
	return n.NamedType, nil
}

func (s *InMemoryAtomStore) GetLinkHandle(typ string, targets []Handle) (Handle, error) {
	handle := atomhash.ExpressionHash(atomhash.NamedTypeHash(typ), targets)
	if _, ok := s.links[handle]; !ok {
		return "", errNotFoundHandle(string(handle))
	}
	return handle, nil
}

func (s *InMemoryAtomStore) GetLinkType(handle Handle) (string, error) {
	l, ok := s.links[handle]
	if !ok {
		return "", errNotFoundHandle(string(handle))
	}
	return l.NamedType, nil
}

func (s *InMemoryAtomStore) GetLinkTargets(handle Handle) ([]Handle, error) {
	targets, ok := s.outgoing[handle]
	if !ok {
		return nil, errNotFoundHandle(string(handle))
	}
	out := make([]Handle, len(targets))
	copy(out, targets)
	return out, nil
}

func (s *InMemoryAtomStore) GetAtomType(handle Handle) (string, bool) {
	if n, ok := s.nodes[handle]; ok {
		return n.NamedType, true
	}
	if l, ok := s.links[handle]; ok {
		return l.NamedType, true
	}
	return "", false
}

func (s *InMemoryAtomStore) CountAtoms() AtomCounts {
	return AtomCounts{
		NodeCount: len(s.nodes),
		LinkCount: len(s.links),
		AtomCount: len(s.nodes) + len(s.links),
	}
}

func (s *InMemoryAtomStore) GetAllNodeHandles(typ string) []Handle {
	want := atomhash.NamedTypeHash(typ)
	var out []Handle
	for h, n := range s.nodes {
		if n.CompositeTypeHash == want {
			out = append(out, h)
		}
	}
	return out
}

func (s *InMemoryAtomStore) GetAllNodeNames(typ string) []string {
	want := atomhash.NamedTypeHash(typ)
	var out []string
	for _, n := range s.nodes {
		if n.CompositeTypeHash == want {
			out = append(out, n.Name)
		}
	}
	return out
}

func (s *InMemoryAtomStore) GetAllLinks(typ string) []atom.Link {
	var out []atom.Link
	for _, l := range s.links {
		if l.NamedType == typ {
			out = append(out, l.Clone())
		}
	}
	return out
}

func (s *InMemoryAtomStore) GetNodeByName(typ, substring string) []Handle {
	want := atomhash.NamedTypeHash(typ)
	var out []Handle
	for h, n := range s.nodes {
		if n.CompositeTypeHash == want && strings.Contains(n.Name, substring) {
			out = append(out, h)
		}
	}
	return out
}

// AllAtoms returns every stored node and link, for snapshot export. Order
// is unspecified: callers must not rely on it.
func (s *InMemoryAtomStore) AllAtoms() []atom.Atom {
	out := make([]atom.Atom, 0, len(s.nodes)+len(s.links))
	for _, n := range s.nodes {
		out = append(out, n.Clone())
	}
	for _, l := range s.links {
		out = append(out, l.Clone())
	}
	return out
}

func (s *InMemoryAtomStore) NodeExists(typ, name string) bool {
	_, err := s.GetNodeHandle(typ, name)
	return err == nil
}

func (s *InMemoryAtomStore) LinkExists(typ string, targets []Handle) bool {
	_, err := s.GetLinkHandle(typ, targets)
	return err == nil
}

// ---- Incoming traversal --------------------------------------------------

func (s *InMemoryAtomStore) GetIncomingLinkHandles(handle Handle) []Handle {
	return s.bitmapToHandles(s.incoming[handle])
}

func (s *InMemoryAtomStore) GetIncomingLinkAtoms(handle Handle, opts GetAtomOptions) ([]atom.Atom, error) {
	handles := s.GetIncomingLinkHandles(handle)
	atoms := make([]atom.Atom, 0, len(handles))
	for _, h := range handles {
		a, err := s.GetAtom(h, opts)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}

// ---- Pattern match --------------------------------------------------------

func (s *InMemoryAtomStore) GetMatchedLinks(typ string, targets []string, toplevelOnly bool) ([]Handle, error) {
	wildcardTarget := false
	for _, t := range targets {
		if t == atomhash.Wildcard {
			wildcardTarget = true
			break
		}
	}

	if typ != atomhash.Wildcard && !wildcardTarget {
		handles := make([]Handle, len(targets))
		for i, t := range targets {
			handles[i] = Handle(t)
		}
		handle, err := s.GetLinkHandle(typ, handles)
		if err != nil {
			if _, ok := err.(ErrNotFound); ok {
				return nil, nil
			}
			return nil, err
		}
		return s.filterToplevel([]Handle{handle}, toplevelOnly), nil
	}

	typeHash := atomhash.WildcardHash
	if typ != atomhash.Wildcard {
		typeHash = atomhash.NamedTypeHash(typ)
	}
	substituted := make([]Handle, len(targets))
	for i, t := range targets {
		if t == atomhash.Wildcard {
			substituted[i] = atomhash.WildcardHash
		} else {
			substituted[i] = Handle(t)
		}
	}
	key := atomhash.ExpressionHash(typeHash, substituted)
	handles := s.bitmapToHandles(s.patterns[key])
	return s.filterToplevel(handles, toplevelOnly), nil
}

func (s *InMemoryAtomStore) GetMatchedTypeTemplate(template []string, toplevelOnly bool) []Handle {
	hashes := make([]Handle, len(template))
	for i, name := range template {
		hashes[i] = atomhash.NamedTypeHash(name)
	}
	key := atomhash.CompositeHash(hashes)
	return s.filterToplevel(s.bitmapToHandles(s.templates[key]), toplevelOnly)
}

func (s *InMemoryAtomStore) GetMatchedType(typ string, toplevelOnly bool) []Handle {
	key := atomhash.NamedTypeHash(typ)
	return s.filterToplevel(s.bitmapToHandles(s.templates[key]), toplevelOnly)
}

func (s *InMemoryAtomStore) filterToplevel(handles []Handle, toplevelOnly bool) []Handle {
	if !toplevelOnly || len(s.links) == 0 {
		return handles
	}
	filtered := make([]Handle, 0, len(handles))
	for _, h := range handles {
		if l, ok := s.links[h]; ok && l.IsToplevel {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// ---- Result reformatting --------------------------------------------------

func (s *InMemoryAtomStore) GetAtom(handle Handle, opts GetAtomOptions) (atom.Atom, error) {
	if n, ok := s.nodes[handle]; ok {
		return n.Clone(), nil
	}
	l, ok := s.links[handle]
	if !ok {
		return nil, errNotFoundHandle(string(handle))
	}
	l = l.Clone()
	if opts.NoTargetFormat || (!opts.TargetsDocument && !opts.DeepRepresentation) {
		return l, nil
	}

	childOpts := GetAtomOptions{}
	if opts.DeepRepresentation {
		childOpts = opts
	}
	docs := make([]atom.Atom, 0, len(l.Targets))
	for _, t := range l.Targets {
		child, err := s.GetAtom(t, childOpts)
		if err != nil {
			continue // target absent at reformatting time: silently skipped
		}
		docs = append(docs, child)
	}
	l.TargetsDocuments = docs
	return l, nil
}

// ---- Index maintenance -----------------------------------------------------

func (s *InMemoryAtomStore) addAtomIndex(l atom.Link) {
	id := s.ids.Intern(l.Handle)

	targets := make([]Handle, len(l.Targets))
	copy(targets, l.Targets)
	s.outgoing[l.Handle] = targets

	for _, t := range l.Targets {
		addToBitmapIndex(s.incoming, t, id)
	}

	addToBitmapIndex(s.templates, l.CompositeTypeHash, id)
	addToBitmapIndex(s.templates, l.NamedTypeHash, id)

	for _, k := range s.patternKeys(l) {
		addToBitmapIndex(s.patterns, k, id)
	}
}

// deleteAtomIndex tears down the index contribution of the atom just
// removed from its table. link is nil when the removed atom was a node
// (nodes contribute no outgoing/template/pattern entries of their own).
// Either way, any link that held handle as a target is cascade-deleted:
// that is what empties handle's own incoming-set entry.
func (s *InMemoryAtomStore) deleteAtomIndex(handle Handle, link *atom.Link) {
	if bm, ok := s.incoming[handle]; ok {
		delete(s.incoming, handle)
		it := bm.Iterator()
		for it.HasNext() {
			s.deleteLinkAndUpdateIndex(s.ids.Handle(it.Next()))
		}
	}
	if link == nil {
		return
	}

	id, known := s.ids.Lookup(handle)

	targets := s.outgoing[handle]
	delete(s.outgoing, handle)
	if known {
		for _, t := range targets {
			removeFromBitmapIndex(s.incoming, t, id)
		}
		removeFromBitmapIndex(s.templates, link.CompositeTypeHash, id)
		removeFromBitmapIndex(s.templates, link.NamedTypeHash, id)
		for _, k := range s.patternKeys(*link) {
			removeFromBitmapIndex(s.patterns, k, id)
		}
	}
}

func (s *InMemoryAtomStore) deleteLinkAndUpdateIndex(handle Handle) {
	link, ok := s.links[handle]
	if !ok {
		return
	}
	delete(s.links, handle)
	s.deleteAtomIndex(handle, &link)
	// Every bitmap that could carry handle's interned ID has just been
	// purged of it (deleteAtomIndex above), so the reverse mapping is safe
	// to drop too.
	s.ids.Forget(handle)
}

func (s *InMemoryAtomStore) patternKeys(l atom.Link) []Handle {
	hashList := make([]Handle, 0, len(l.Targets)+1)
	hashList = append(hashList, l.NamedTypeHash)
	hashList = append(hashList, l.Targets...)
	return pattern.BuildKeys(hashList)
}

func (s *InMemoryAtomStore) bitmapToHandles(bm *roaring.Bitmap) []Handle {
	if bm == nil {
		return nil
	}
	handles := make([]Handle, 0, int(bm.GetCardinality()))
	it := bm.Iterator()
	for it.HasNext() {
		handles = append(handles, s.ids.Handle(it.Next()))
	}
	return handles
}

func addToBitmapIndex(idx map[Handle]*roaring.Bitmap, key Handle, id uint32) {
	bm := idx[key]
	if bm == nil {
		bm = roaring.New()
		idx[key] = bm
	}
	bm.Add(id)
}

func removeFromBitmapIndex(idx map[Handle]*roaring.Bitmap, key Handle, id uint32) {
	if bm, ok := idx[key]; ok {
		bm.Remove(id)
	}
}

// ---- Unimplemented surface --------------------------------------------------

func (s *InMemoryAtomStore) GetAtomsByField(field string, value any) ([]atom.Atom, error) {
	return nil, ErrNotSupported{Operation: "get_atoms_by_field"}
}

func (s *InMemoryAtomStore) GetAtomsByIndex(index string, value any) ([]atom.Atom, error) {
	return nil, ErrNotSupported{Operation: "get_atoms_by_index"}
}

func (s *InMemoryAtomStore) GetAtomsByTextField(field, text string) ([]atom.Atom, error) {
	return nil, ErrNotSupported{Operation: "get_atoms_by_text_field"}
}

func (s *InMemoryAtomStore) GetNodeByNameStartingWith(typ, prefix string) ([]Handle, error) {
	return nil, ErrNotSupported{Operation: "get_node_by_name_starting_with"}
}

func (s *InMemoryAtomStore) Reindex() error {
	return ErrNotSupported{Operation: "reindex"}
}

func (s *InMemoryAtomStore) CreateFieldIndex(typ, field string) error {
	return ErrNotSupported{Operation: "create_field_index"}
}

func (s *InMemoryAtomStore) Commit() error {
	return ErrNotSupported{Operation: "commit"}
}
