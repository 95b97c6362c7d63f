// Package pattern enumerates the wildcard-substituted index keys a link is
// filed under, mirroring das-atom-db's build_pattern_keys / binary-matrix
// enumeration.
package pattern

import (
	"sync"

	"github.com/ritamzico/atomgraph/internal/atomhash"
)

// binary matrix row: true means "keep the concrete handle in this
// position", false means "substitute WildcardHash". Memoized by arity,
// matching the source's process-wide BINARY_MATRIX_CACHE.
var (
	matrixCacheMu sync.Mutex
	matrixCache   = map[int][][]bool{0: {{}}}
)

func binaryMatrix(n int) [][]bool {
	matrixCacheMu.Lock()
	defer matrixCacheMu.Unlock()
	return binaryMatrixLocked(n)
}

func binaryMatrixLocked(n int) [][]bool {
	if rows, ok := matrixCache[n]; ok {
		return rows
	}
	smaller := binaryMatrixLocked(n - 1)
	rows := make([][]bool, 0, len(smaller)*2)
	for _, row := range smaller {
		withFalse := append(append([]bool{}, row...), false)
		rows = append(rows, withFalse)
		withTrue := append(append([]bool{}, row...), true)
		rows = append(rows, withTrue)
	}
	matrixCache[n] = rows
	return rows
}

// BuildKeys generates every pattern-index key a link with hash list H =
// [linkTypeHash, target0, ..., targetN-1] must be filed under: every subset
// of positions kept concrete, except the empty subset (all positions
// wildcarded). That all-wildcard row is excluded — see DESIGN.md's note on
// spec.md Open Question 2 for why this is the one dropped, not the
// all-concrete row a naive reading of the reference implementation's
// "discard the last row" phrasing might suggest.
func BuildKeys(handles []atomhash.Handle) []atomhash.Handle {
	if len(handles) == 0 {
		return nil
	}
	rows := binaryMatrix(len(handles))

	keys := make([]atomhash.Handle, 0, len(rows)-1)
	for _, row := range rows {
		if allFalse(row) {
			continue
		}
		substituted := make([]atomhash.Handle, len(handles))
		for i, keep := range row {
			if keep {
				substituted[i] = handles[i]
			} else {
				substituted[i] = atomhash.WildcardHash
			}
		}
		keys = append(keys, atomhash.ExpressionHash(substituted[0], substituted[1:]))
	}
	return keys
}

func allFalse(row []bool) bool {
	for _, v := range row {
		if v {
			return false
		}
	}
	return true
}
