package result

import (
	"fmt"
	"strings"

	"github.com/ritamzico/atomgraph/internal/atomhash"
)

// HandleSetResult wraps a set-valued list of handles: the outcome of a
// pattern, template, or incoming-link query.
type HandleSetResult struct {
	Handles []atomhash.Handle
}

func (r HandleSetResult) Kind() Kind { return HandleSetResultKind }

func (r HandleSetResult) String() string {
	if len(r.Handles) == 0 {
		return "No matches."
	}
	parts := make([]string, len(r.Handles))
	for i, h := range r.Handles {
		parts[i] = string(h)
	}
	return fmt.Sprintf("Handles (%d):\n  %s", len(r.Handles), strings.Join(parts, "\n  "))
}
