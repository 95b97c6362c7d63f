// Package atomhash computes the deterministic content hashes that give
// every atom in the store its handle.
package atomhash

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Handle is a 32-character lowercase hex MD5 digest, and the sole form of
// identifier used throughout the store.
type Handle string

const (
	joinChar            = " "
	maxHashableInputLen = 100_000
)

// Wildcard is the string token a caller substitutes for a concrete type name
// or target handle when it wants a pattern query to match anything in that
// position.
const Wildcard = "*"

// Sentinel handles, precomputed once at package init the same way the
// original implementation exports them as process-wide constants.
var (
	WildcardHash    = NamedTypeHash(Wildcard)
	TypeHash        = NamedTypeHash("Type")
	TypedefMarkHash = NamedTypeHash(":")
)

// ErrInvalidInput is returned when a pre-hash string would exceed the
// maximum hashable length.
type ErrInvalidInput struct {
	Message string
}

func (e ErrInvalidInput) Error() string {
	return "invalid input: " + e.Message
}

func computeHash(input string) Handle {
	sum := md5.Sum([]byte(input))
	return Handle(hex.EncodeToString(sum[:]))
}

// NamedTypeHash hashes a type or token name verbatim.
func NamedTypeHash(name string) Handle {
	return computeHash(name)
}

// TerminalHash hashes a node's (type, name) pair as "type name".
func TerminalHash(typ, name string) (Handle, error) {
	if len(typ)+len(name) >= maxHashableInputLen {
		return "", ErrInvalidInput{Message: "terminal name too large"}
	}
	return computeHash(typ + joinChar + name), nil
}

// CompositeHash hashes a list of handles joined by a single space. A
// single-element list is returned unchanged (identity), and the empty list
// hashes the empty string. This mirrors the reference implementation's two
// overloads: the string overload is retained here as CompositeHashSingle for
// call-site uniformity with code that already holds one handle.
func CompositeHash(elements []Handle) Handle {
	if len(elements) == 1 {
		return elements[0]
	}
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = string(e)
	}
	return computeHash(strings.Join(parts, joinChar))
}

// CompositeHashSingle is the identity overload of CompositeHash, retained so
// call sites that already hold a single base hash don't need a slice.
func CompositeHashSingle(base Handle) Handle {
	return base
}

// ExpressionHash hashes a type handle together with its target/element
// handles: CompositeHash([typeHash, elements...]).
func ExpressionHash(typeHash Handle, elements []Handle) Handle {
	composite := make([]Handle, 0, len(elements)+1)
	composite = append(composite, typeHash)
	composite = append(composite, elements...)
	return CompositeHash(composite)
}
