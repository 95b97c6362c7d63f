package serialization

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/store"
)

func buildStore(t *testing.T) (*store.InMemoryAtomStore, atom.Node, atom.Node, atom.Link) {
	t.Helper()
	s := store.NewInMemoryAtomStore()
	human, err := s.AddNode(atom.NodeDescriptor{NamedType: "Concept", Name: "human"})
	require.NoError(t, err)
	monkey, err := s.AddNode(atom.NodeDescriptor{NamedType: "Concept", Name: "monkey"})
	require.NoError(t, err)
	link, err := s.AddLink(atom.LinkDescriptor{
		NamedType: "Similarity",
		Targets: []atom.TargetDescriptor{
			{Node: &atom.NodeDescriptor{NamedType: "Concept", Name: "human"}},
			{Node: &atom.NodeDescriptor{NamedType: "Concept", Name: "monkey"}},
		},
		CustomAttributes: map[string]atom.CustomAttributeValue{
			"confidence": atom.FloatAttr(0.9),
		},
	}, true)
	require.NoError(t, err)
	return s, human, monkey, link
}

func roundTrip(t *testing.T, s store.AtomStore) *store.InMemoryAtomStore {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(s, &buf))
	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	return got
}

func TestRoundTripEmptyStore(t *testing.T) {
	s := store.NewInMemoryAtomStore()
	got := roundTrip(t, s)
	counts := got.CountAtoms()
	assert.Equal(t, 0, counts.AtomCount)
}

func TestRoundTripPreservesHandlesAndCounts(t *testing.T) {
	s, human, monkey, link := buildStore(t)
	got := roundTrip(t, s)

	counts := got.CountAtoms()
	assert.Equal(t, 2, counts.NodeCount)
	assert.Equal(t, 1, counts.LinkCount)

	assert.True(t, got.NodeExists("Concept", "human"))
	assert.True(t, got.NodeExists("Concept", "monkey"))
	assert.True(t, got.LinkExists("Similarity", []store.Handle{human.Handle, monkey.Handle}))

	h, err := got.GetLinkHandle("Similarity", []store.Handle{human.Handle, monkey.Handle})
	require.NoError(t, err)
	assert.Equal(t, link.Handle, h)
}

func TestRoundTripPreservesCustomAttributes(t *testing.T) {
	s, human, monkey, _ := buildStore(t)
	got := roundTrip(t, s)

	handle, err := got.GetLinkHandle("Similarity", []store.Handle{human.Handle, monkey.Handle})
	require.NoError(t, err)
	links := got.GetAllLinks("Similarity")
	require.Len(t, links, 1)
	assert.Equal(t, handle, links[0].Handle)
	assert.Equal(t, 0.9, links[0].CustomAttributes["confidence"].F)
}

func TestRoundTripPreservesToplevelFlag(t *testing.T) {
	s, _, _, link := buildStore(t)
	got := roundTrip(t, s)
	links := got.GetAllLinks("Similarity")
	require.Len(t, links, 1)
	assert.True(t, links[0].IsToplevel)
	assert.Equal(t, link.Handle, links[0].Handle)
}

func TestRoundTripPreservesIncomingIndex(t *testing.T) {
	s, human, _, link := buildStore(t)
	got := roundTrip(t, s)
	incoming := got.GetIncomingLinkHandles(human.Handle)
	require.Len(t, incoming, 1)
	assert.Equal(t, link.Handle, incoming[0])
}

func TestRoundTripNestedLink(t *testing.T) {
	s := store.NewInMemoryAtomStore()
	_, err := s.AddLink(atom.LinkDescriptor{
		NamedType: "Evaluation",
		Targets: []atom.TargetDescriptor{
			{Node: &atom.NodeDescriptor{NamedType: "Predicate", Name: "pred"}},
			{Link: &atom.LinkDescriptor{
				NamedType: "List",
				Targets: []atom.TargetDescriptor{
					{Node: &atom.NodeDescriptor{NamedType: "Concept", Name: "human"}},
					{Node: &atom.NodeDescriptor{NamedType: "Concept", Name: "monkey"}},
				},
			}},
		},
	}, true)
	require.NoError(t, err)

	got := roundTrip(t, s)
	counts := got.CountAtoms()
	assert.Equal(t, 3, counts.NodeCount)
	assert.Equal(t, 2, counts.LinkCount)
}

func TestWriteJSONProducesValidJSON(t *testing.T) {
	s, _, _, _ := buildStore(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(s, &buf))
	assert.Contains(t, buf.String(), `"atoms"`)
	assert.Contains(t, buf.String(), `"named_type"`)
}

func TestReadJSONEmptyAtomsArray(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{"atoms": []}`))
	require.NoError(t, err)
	assert.Equal(t, 0, got.CountAtoms().AtomCount)
}

func TestReadJSONInvalidJSON(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestReadJSONUnknownAtomKind(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"atoms": [{"kind": "mystery"}]}`))
	assert.Error(t, err)
}

func TestReadJSONInvalidAttributeKind(t *testing.T) {
	input := `{"atoms": [{"kind": "node", "node": {"handle": "af12f10f9ae2002a1607ba0b47ba8407", "composite_type_hash": "x", "named_type": "Concept", "name": "human", "custom_attributes": {"x": {"kind": "complex", "value": 1}}}}]}`
	_, err := ReadJSON(strings.NewReader(input))
	assert.Error(t, err)
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atoms.json")

	s, human, monkey, _ := buildStore(t)
	require.NoError(t, SaveJSON(s, path))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	assert.True(t, got.LinkExists("Similarity", []store.Handle{human.Handle, monkey.Handle}))
}

func TestLoadJSONNonexistentFile(t *testing.T) {
	_, err := LoadJSON("/nonexistent/path/atoms.json")
	assert.Error(t, err)
}

func TestSaveJSONInvalidPath(t *testing.T) {
	s := store.NewInMemoryAtomStore()
	err := SaveJSON(s, "/nonexistent/dir/atoms.json")
	assert.Error(t, err)
}

func TestWriteJSONIsIndented(t *testing.T) {
	s, _, _, _ := buildStore(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(s, &buf))
	lines := strings.Split(buf.String(), "\n")
	assert.Greater(t, len(lines), 3)
}

func TestSaveJSONOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atoms.json")

	s1 := store.NewInMemoryAtomStore()
	_, err := s1.AddNode(atom.NodeDescriptor{NamedType: "Concept", Name: "a"})
	require.NoError(t, err)
	require.NoError(t, SaveJSON(s1, path))

	s2 := store.NewInMemoryAtomStore()
	_, err = s2.AddNode(atom.NodeDescriptor{NamedType: "Concept", Name: "b"})
	require.NoError(t, err)
	require.NoError(t, SaveJSON(s2, path))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	assert.False(t, got.NodeExists("Concept", "a"))
	assert.True(t, got.NodeExists("Concept", "b"))
}

func TestReadJSONRejectsNonNumericCustomAttributeFloat(t *testing.T) {
	input := `{"atoms": [{"kind": "node", "node": {"handle": "h", "composite_type_hash": "t", "named_type": "Concept", "name": "human", "custom_attributes": {"x": {"kind": "float", "value": "nope"}}}}]}`
	_, err := ReadJSON(strings.NewReader(input))
	assert.Error(t, err)
}
