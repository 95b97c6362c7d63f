// Package result wraps query outcomes in a common Result interface, the way
// query execution results were wrapped in the original graph engine.
package result

// Result is anything a Query can return.
type Result interface {
	Kind() Kind
	String() string
}

type Kind int

const (
	HandleSetResultKind Kind = iota
	AtomResultKind
	AtomSetResultKind
	CountResultKind
	BooleanResultKind
	MultiResultKind
)
