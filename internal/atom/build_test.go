package atom

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/atomgraph/internal/atomhash"
)

func TestBuildNodeRejectsEmptyFields(t *testing.T) {
	_, err := BuildNode(NodeDescriptor{NamedType: "", Name: "human"})
	require.Error(t, err)

	_, err = BuildNode(NodeDescriptor{NamedType: "Concept", Name: ""})
	require.Error(t, err)
}

func TestBuildNodeHandleMatchesTerminalHash(t *testing.T) {
	n, err := BuildNode(NodeDescriptor{NamedType: "Concept", Name: "human"})
	require.NoError(t, err)

	want, _ := atomhash.TerminalHash("Concept", "human")
	assert.Equal(t, want, n.Handle)
	assert.Equal(t, n.Handle, n.ID)
	assert.Equal(t, atomhash.NamedTypeHash("Concept"), n.CompositeTypeHash)
}

func TestAssembleLinkRejectsEmptyTargets(t *testing.T) {
	_, err := AssembleLink("Similarity", nil, nil)
	require.Error(t, err)
}

func TestAssembleLinkHandleMatchesExpressionHash(t *testing.T) {
	human, _ := BuildNode(NodeDescriptor{NamedType: "Concept", Name: "human"})
	monkey, _ := BuildNode(NodeDescriptor{NamedType: "Concept", Name: "monkey"})

	link, err := AssembleLink("Similarity", []TargetResult{
		{Handle: human.Handle, CompositeTypeHash: human.CompositeTypeHash, CompositeType: Leaf(human.CompositeTypeHash)},
		{Handle: monkey.Handle, CompositeTypeHash: monkey.CompositeTypeHash, CompositeType: Leaf(monkey.CompositeTypeHash)},
	}, nil)
	require.NoError(t, err)

	wantHandle := atomhash.ExpressionHash(atomhash.NamedTypeHash("Similarity"), []atomhash.Handle{human.Handle, monkey.Handle})
	assert.Equal(t, wantHandle, link.Handle)
	assert.Equal(t, link.NamedTypeHash, link.CompositeType.Elements()[0].LeafHandle())
	assert.Equal(t, []atomhash.Handle{human.Handle, monkey.Handle}, link.Targets)
}

func TestBuildNodeIsDeterministic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	tried := 0
	for tried < 50 {
		var typ, name string
		f.Fuzz(&typ)
		f.Fuzz(&name)
		if typ == "" || name == "" {
			continue
		}
		tried++

		a, err := BuildNode(NodeDescriptor{NamedType: typ, Name: name})
		require.NoError(t, err)
		b, err := BuildNode(NodeDescriptor{NamedType: typ, Name: name})
		require.NoError(t, err)

		assert.Equal(t, a.Handle, b.Handle, "same descriptor must hash to the same handle")
		assert.Len(t, string(a.Handle), 32)
	}
}

func TestBuildNodeDistinctInputsDistinctHandles(t *testing.T) {
	f := fuzz.New().NilChance(0)
	seen := make(map[string]string)
	tried := 0
	for tried < 50 {
		var typ, name string
		f.Fuzz(&typ)
		f.Fuzz(&name)
		if typ == "" || name == "" {
			continue
		}
		tried++

		n, err := BuildNode(NodeDescriptor{NamedType: typ, Name: name})
		require.NoError(t, err)

		key := typ + "\x00" + name
		if prev, ok := seen[string(n.Handle)]; ok {
			assert.Equal(t, prev, key, "distinct (type,name) pairs must not collide on handle")
		}
		seen[string(n.Handle)] = key
	}
}
