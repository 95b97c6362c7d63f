// Package intern assigns each atom handle a dense uint32 ID so the store's
// indices can use github.com/RoaringBitmap/roaring/v2 bitmaps instead of
// string-keyed sets.
package intern

import "github.com/ritamzico/atomgraph/internal/atomhash"

// Table is a two-way handle<->uint32 mapping. IDs are assigned densely and
// never reused within the lifetime of a Table (a deleted handle's ID is
// simply left unreferenced by any bitmap), which keeps bitmap membership
// checks correct without needing to compact or renumber existing indices.
type Table struct {
	byHandle map[atomhash.Handle]uint32
	byID     []atomhash.Handle
}

// New returns an empty interning table.
func New() *Table {
	return &Table{byHandle: make(map[atomhash.Handle]uint32)}
}

// Intern returns the ID for h, assigning a new one if h hasn't been seen
// before.
func (t *Table) Intern(h atomhash.Handle) uint32 {
	if id, ok := t.byHandle[h]; ok {
		return id
	}
	id := uint32(len(t.byID))
	t.byID = append(t.byID, h)
	t.byHandle[h] = id
	return id
}

// Lookup returns the ID already assigned to h, if any.
func (t *Table) Lookup(h atomhash.Handle) (uint32, bool) {
	id, ok := t.byHandle[h]
	return id, ok
}

// Handle returns the handle an ID was assigned to.
func (t *Table) Handle(id uint32) atomhash.Handle {
	return t.byID[id]
}

// Forget removes h's entry from the reverse (handle->ID) direction. The
// forward slot in byID is intentionally left in place: bitmaps may still
// carry that numeric ID in stale positions the caller is in the process of
// clearing, and indices are always purged of a handle's ID before the
// handle itself is considered gone (see store.deleteAtomIndex).
func (t *Table) Forget(h atomhash.Handle) {
	delete(t.byHandle, h)
}
