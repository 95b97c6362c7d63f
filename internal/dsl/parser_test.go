package dsl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/query"
	"github.com/ritamzico/atomgraph/internal/result"
	"github.com/ritamzico/atomgraph/internal/store"
)

func TestParseAddNode(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine(`ADD NODE Concept "human"`)
	require.NoError(t, err)
	add, ok := q.(query.AddNodeQuery)
	require.True(t, ok)
	assert.Equal(t, "Concept", add.Descriptor.NamedType)
	assert.Equal(t, "human", add.Descriptor.Name)
}

func TestParseAddNodeCaseInsensitiveKeyword(t *testing.T) {
	p := NewParser()
	_, err := p.ParseLine(`add node Concept "human"`)
	assert.NoError(t, err)
}

func TestParseAddNodeWithProps(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine(`ADD NODE Concept "human" { confidence: 0.9, count: 3, verified: TRUE, tag: "x" }`)
	require.NoError(t, err)
	add := q.(query.AddNodeQuery)
	attrs := add.Descriptor.CustomAttributes
	require.Len(t, attrs, 4)
	assert.Equal(t, 0.9, attrs["confidence"].F)
	assert.Equal(t, int64(3), attrs["count"].I)
	assert.Equal(t, true, attrs["verified"].B)
	assert.Equal(t, "x", attrs["tag"].S)
}

func TestParseAddLinkNested(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine(`ADD LINK Similarity ( NODE Concept "human", NODE Concept "monkey" )`)
	require.NoError(t, err)
	add, ok := q.(query.AddLinkQuery)
	require.True(t, ok)
	assert.Equal(t, "Similarity", add.Descriptor.NamedType)
	assert.True(t, add.IsToplevel)
	require.Len(t, add.Descriptor.Targets, 2)
	assert.Equal(t, "human", add.Descriptor.Targets[0].Node.Name)
	assert.Equal(t, "monkey", add.Descriptor.Targets[1].Node.Name)
}

func TestParseAddLinkDeeplyNested(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine(`ADD LINK Evaluation ( NODE Predicate "pred", LINK List ( NODE Concept "human", NODE Concept "monkey" ) )`)
	require.NoError(t, err)
	add := q.(query.AddLinkQuery)
	require.Len(t, add.Descriptor.Targets, 2)
	require.NotNil(t, add.Descriptor.Targets[1].Link)
	assert.Equal(t, "List", add.Descriptor.Targets[1].Link.NamedType)
	require.Len(t, add.Descriptor.Targets[1].Link.Targets, 2)
}

func TestParseDeleteAtom(t *testing.T) {
	p := NewParser()
	handle := "af12f10f9ae2002a1607ba0b47ba8407"
	q, err := p.ParseLine("DELETE ATOM " + handle)
	require.NoError(t, err)
	del, ok := q.(query.DeleteAtomQuery)
	require.True(t, ok)
	assert.Equal(t, handle, string(del.Handle))
}

func TestParseClear(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine("CLEAR")
	require.NoError(t, err)
	_, ok := q.(query.ClearQuery)
	assert.True(t, ok)
}

func TestParseCount(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine("COUNT")
	require.NoError(t, err)
	_, ok := q.(query.CountQuery)
	assert.True(t, ok)
}

func TestParseMatchLinkWithWildcardTarget(t *testing.T) {
	p := NewParser()
	h := "af12f10f9ae2002a1607ba0b47ba8407"
	q, err := p.ParseLine("MATCH LINK Similarity ( " + h + ", * )")
	require.NoError(t, err)
	m, ok := q.(query.MatchLinkQuery)
	require.True(t, ok)
	assert.Equal(t, "Similarity", m.Type)
	assert.Equal(t, []string{h, "*"}, m.Targets)
	assert.False(t, m.ToplevelOnly)
}

func TestParseMatchLinkWildcardTypeToplevel(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine("MATCH LINK * ( *, * ) TOPLEVEL")
	require.NoError(t, err)
	m := q.(query.MatchLinkQuery)
	assert.Equal(t, "*", m.Type)
	assert.True(t, m.ToplevelOnly)
}

func TestParseMatchType(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine("MATCH TYPE Similarity")
	require.NoError(t, err)
	m, ok := q.(query.MatchTypeQuery)
	require.True(t, ok)
	assert.Equal(t, "Similarity", m.Type)
}

func TestParseMatchTemplate(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine("MATCH TEMPLATE ( Similarity, Concept, Concept )")
	require.NoError(t, err)
	m, ok := q.(query.MatchTemplateQuery)
	require.True(t, ok)
	assert.Equal(t, []string{"Similarity", "Concept", "Concept"}, m.Template)
}

func TestParseGetAtomWithOptions(t *testing.T) {
	p := NewParser()
	h := "af12f10f9ae2002a1607ba0b47ba8407"
	q, err := p.ParseLine("GET ATOM " + h + " DEEP TARGETSDOCUMENT")
	require.NoError(t, err)
	g, ok := q.(query.GetAtomQuery)
	require.True(t, ok)
	assert.Equal(t, h, string(g.Handle))
	assert.True(t, g.Options.DeepRepresentation)
	assert.True(t, g.Options.TargetsDocument)
}

func TestParseIncomingHandlesOnly(t *testing.T) {
	p := NewParser()
	h := "af12f10f9ae2002a1607ba0b47ba8407"
	q, err := p.ParseLine("INCOMING " + h + " HANDLESONLY")
	require.NoError(t, err)
	in, ok := q.(query.IncomingQuery)
	require.True(t, ok)
	assert.True(t, in.Options.HandlesOnly)
}

func TestParseNodeExists(t *testing.T) {
	p := NewParser()
	q, err := p.ParseLine(`NODE EXISTS Concept "human"`)
	require.NoError(t, err)
	n, ok := q.(query.NodeExistsQuery)
	require.True(t, ok)
	assert.Equal(t, "Concept", n.Type)
	assert.Equal(t, "human", n.Name)
}

func TestParseLinkExists(t *testing.T) {
	p := NewParser()
	h1, h2 := "af12f10f9ae2002a1607ba0b47ba8407", "af12f10f9ae2002a1607ba0b47ba8408"
	q, err := p.ParseLine("LINK EXISTS Similarity ( " + h1 + ", " + h2 + " )")
	require.NoError(t, err)
	l, ok := q.(query.LinkExistsQuery)
	require.True(t, ok)
	require.Len(t, l.Targets, 2)
}

func TestParseInvalidSyntaxReturnsError(t *testing.T) {
	p := NewParser()
	_, err := p.ParseLine(`ADD BOGUS Concept "human"`)
	require.Error(t, err)
	_, ok := err.(SyntaxError)
	assert.True(t, ok)
}

func TestParseEmptyInputReturnsError(t *testing.T) {
	p := NewParser()
	_, err := p.ParseLine("")
	assert.Error(t, err)
}

func TestRunAgainstStoreAddThenCount(t *testing.T) {
	p := NewParser()
	s := store.NewInMemoryAtomStore()
	ctx := context.Background()

	r, err := p.Run(ctx, s, `ADD NODE Concept "human"`)
	require.NoError(t, err)
	added, ok := r.(result.AtomResult)
	require.True(t, ok)
	n, ok := added.Atom.(atom.Node)
	require.True(t, ok)
	assert.NotEmpty(t, n.Handle)

	countResult, err := p.Run(ctx, s, "COUNT")
	require.NoError(t, err)
	cr, ok := countResult.(result.CountResult)
	require.True(t, ok)
	assert.Equal(t, 1, cr.NodeCount)
}
