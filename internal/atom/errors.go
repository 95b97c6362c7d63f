package atom

import "fmt"

// ErrInvalidAtom is returned by the builders for build-time validation
// failures: empty type, empty name, empty target list, or a malformed
// custom-attribute value.
type ErrInvalidAtom struct {
	Kind    string
	Message string
}

func (e ErrInvalidAtom) Error() string {
	return fmt.Sprintf("invalid atom (%s): %s", e.Kind, e.Message)
}

func errEmptyNamedType() error {
	return ErrInvalidAtom{Kind: "EmptyNamedType", Message: "named_type must not be empty"}
}

func errEmptyName() error {
	return ErrInvalidAtom{Kind: "EmptyName", Message: "name must not be empty"}
}

func errEmptyTargets() error {
	return ErrInvalidAtom{Kind: "EmptyTargets", Message: "a link requires at least one target"}
}
