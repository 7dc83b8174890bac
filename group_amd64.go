//go:build amd64 && !purego

package swissflat

// matchByte32 and signMask32 are implemented in group_amd64.s, generated
// from avo/asm.go. They operate on exactly groupSize (32) tag bytes and
// return a bitmask where bit i corresponds to group[i].
//
// matchByte32 compares every lane against target (PCMPEQB over two
// 16-byte XMM loads, PMOVMSKB to extract each comparison's sign bit,
// combined into one 32-bit mask).
//
// signMask32 extracts the high bit of every lane directly (PMOVMSKB
// needs no preceding compare for this one): bit i is 1 iff group[i] has
// its top bit set, which is exactly the "non-occupied" predicate on a
// control byte.

//go:noescape
func matchByte32(target byte, group []byte) uint32

//go:noescape
func signMask32(group []byte) uint32

const haveAsmGroupOps = true
