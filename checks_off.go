//go:build !strandchecks

package strand

import "github.com/dshills/strand/enc"

// debugChecks gates expensive consistency verification. Build with the
// strandchecks tag to enable.
const debugChecks = false

func checkAttributes(*enc.Encoding, []byte, int, int, uint8, enc.CodeRange, int) {}

func checkRing(*String) {}
