package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(ADD|DELETE|ATOM|CLEAR|MATCH|LINK|NODE|TYPE|TEMPLATE|GET|INCOMING|EXISTS|COUNT|TOPLEVEL|NOTARGETFORMAT|TARGETSDOCUMENT|DEEP|HANDLESONLY|TRUE|FALSE)\b`},
	{Name: "Hash", Pattern: `[0-9a-f]{32}`},
	{Name: "Float", Pattern: `-?\d+\.\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),{}:*]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Grammar is the top-level AST node: one command per line.
type Grammar struct {
	Add        *AddAST        `parser:"  \"ADD\" @@"`
	DeleteAtom *DeleteAtomAST `parser:"| \"DELETE\" \"ATOM\" @@"`
	Clear      bool           `parser:"| @\"CLEAR\""`
	Match      *MatchAST      `parser:"| \"MATCH\" @@"`
	Get        *GetAtomAST    `parser:"| \"GET\" \"ATOM\" @@"`
	Incoming   *IncomingAST   `parser:"| \"INCOMING\" @@"`
	NodeExists *ExistsAST     `parser:"| \"NODE\" \"EXISTS\" @@"`
	LinkExists *LinkExistsAST `parser:"| \"LINK\" \"EXISTS\" @@"`
	Count      bool           `parser:"| @\"COUNT\""`
}

// AddAST dispatches on NODE or LINK.
type AddAST struct {
	Node *AddNodeAST `parser:"  \"NODE\" @@"`
	Link *AddLinkAST `parser:"| \"LINK\" @@"`
}

// AddNodeAST: <type> <name> [{ props }]
type AddNodeAST struct {
	Type  string     `parser:"@Ident"`
	Name  string     `parser:"@String"`
	Props []*PropAST `parser:"( \"{\" @@ ( \",\" @@ )* \"}\" )?"`
}

// AddLinkAST: <type> ( <target> ( , <target> )* ) [{ props }]
type AddLinkAST struct {
	Type    string       `parser:"@Ident"`
	Targets []*TargetAST `parser:"\"(\" @@ ( \",\" @@ )* \")\""`
	Props   []*PropAST   `parser:"( \"{\" @@ ( \",\" @@ )* \"}\" )?"`
}

// TargetAST is a link target: an inline node, or an inline (possibly
// nested) link. Re-adding an atom that already exists in the store is
// idempotent (spec §4.2), so there is no separate by-handle reference form.
type TargetAST struct {
	Node *AddNodeAST `parser:"  \"NODE\" @@"`
	Link *AddLinkAST `parser:"| \"LINK\" @@"`
}

// PropAST: <key> : <value>. A key may also be a word the lexer reads as a
// keyword (e.g. "count").
type PropAST struct {
	Key   string        `parser:"@(Ident | Keyword) \":\""`
	Value *PropValueAST `parser:"@@"`
}

// PropValueAST: a typed custom-attribute value.
type PropValueAST struct {
	Str   *string  `parser:"  @String"`
	Float *float64 `parser:"| @Float"`
	Int   *int64   `parser:"| @Int"`
	True  bool     `parser:"| @\"TRUE\""`
	False bool     `parser:"| @\"FALSE\""`
}

// DeleteAtomAST: <handle>
type DeleteAtomAST struct {
	Handle string `parser:"@Hash"`
}

// MatchAST dispatches on LINK, TYPE, or TEMPLATE.
type MatchAST struct {
	Link     *MatchLinkAST     `parser:"  \"LINK\" @@"`
	Type     *MatchTypeAST     `parser:"| \"TYPE\" @@"`
	Template *MatchTemplateAST `parser:"| \"TEMPLATE\" @@"`
}

// MatchLinkAST: <type|*> ( <targetref> ( , <targetref> )* ) [TOPLEVEL]
type MatchLinkAST struct {
	Type         string          `parser:"@(Ident|\"*\")"`
	Targets      []*TargetRefAST `parser:"\"(\" @@ ( \",\" @@ )* \")\""`
	ToplevelOnly bool            `parser:"@\"TOPLEVEL\"?"`
}

// TargetRefAST is either the wildcard token or a concrete handle.
type TargetRefAST struct {
	Wildcard bool   `parser:"  @\"*\""`
	Handle   string `parser:"| @Hash"`
}

// MatchTypeAST: <type> [TOPLEVEL]
type MatchTypeAST struct {
	Type         string `parser:"@Ident"`
	ToplevelOnly bool   `parser:"@\"TOPLEVEL\"?"`
}

// MatchTemplateAST: ( <type> ( , <type> )* ) [TOPLEVEL]
type MatchTemplateAST struct {
	Template     []string `parser:"\"(\" @Ident ( \",\" @Ident )* \")\""`
	ToplevelOnly bool     `parser:"@\"TOPLEVEL\"?"`
}

// GetAtomAST: <handle> [reformatting flags]
type GetAtomAST struct {
	Handle  string   `parser:"@Hash"`
	Options []string `parser:"@( \"NOTARGETFORMAT\" | \"TARGETSDOCUMENT\" | \"DEEP\" )*"`
}

// IncomingAST: <handle> [HANDLESONLY|TARGETSDOCUMENT|DEEP]
type IncomingAST struct {
	Handle  string   `parser:"@Hash"`
	Options []string `parser:"@( \"HANDLESONLY\" | \"TARGETSDOCUMENT\" | \"DEEP\" )*"`
}

// ExistsAST: <type> <name>, used by NODE EXISTS.
type ExistsAST struct {
	Type string `parser:"@Ident"`
	Name string `parser:"@String"`
}

// LinkExistsAST: <type> ( <handle> ( , <handle> )* )
type LinkExistsAST struct {
	Type    string   `parser:"@Ident"`
	Targets []string `parser:"\"(\" @Hash ( \",\" @Hash )* \")\""`
}

// Parser singleton built from the grammar.
var dslParser = participle.MustBuild[Grammar](
	participle.Lexer(dslLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
)
