//go:build strandchecks

package strand

import (
	"fmt"

	"github.com/dshills/strand/enc"
)

const debugChecks = true

// checkAttributes verifies caller-supplied attributes against a fresh scan.
func checkAttributes(e *enc.Encoding, b []byte, offset, length int, stride uint8, cr enc.CodeRange, cpLen int) {
	gotCP, gotCR := scanAttributes(e, b, offset, length, stride)
	if gotCP != cpLen || gotCR != cr {
		panic(fmt.Sprintf("strand: attribute mismatch for %s: got (%d, %s), caller supplied (%d, %s)",
			e.Name(), gotCP, gotCR, cpLen, cr))
	}
}

// checkRing walks the cache ring anchored at head and verifies it is a
// single cycle with no duplicate (encoding, nativeness, foreign-view) entry.
func checkRing(head *String) {
	type key struct {
		id      enc.ID
		native  bool
		foreign bool
	}
	seen := make(map[key]int)
	steps := 0
	for cur := head.next.Load(); cur != nil && cur != head; cur = cur.next.Load() {
		seen[key{cur.encID, cur.IsNative(), cur.IsForeignView()}]++
		if steps++; steps > 1<<16 {
			panic("strand: cache ring does not cycle back to head")
		}
	}
	for k, n := range seen {
		if n > 1 {
			panic(fmt.Sprintf("strand: %d equivalent cache entries for encoding %d", n, k.id))
		}
	}
}
