// Command main is a scratch harness for exercising the avo-described
// matchByte32 while iterating on asm.go; it is not part of the module
// build (separate go.mod) and is not invoked by swissflat itself.
package main

import (
	"fmt"
	"math/bits"
)

func main() {
	group := make([]byte, 32)
	group[2] = 42
	group[15] = 42
	group[31] = 42

	mask := scalarMatchByte32(42, group)
	fmt.Println(mask)

	for mask != 0 {
		index := bits.TrailingZeros32(mask)
		fmt.Println("match:", index)
		mask &= mask - 1
	}
}

// scalarMatchByte32 is the reference behavior for matchByte32, used here
// only to sanity-check the avo description while editing it by hand.
func scalarMatchByte32(target byte, group []byte) uint32 {
	var mask uint32
	for i, b := range group[:32] {
		if b == target {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
