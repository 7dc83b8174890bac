// Command asm generates the group-scanning primitives in
// group_amd64.s from this avo description. Run with:
//
//	go run asm.go -out ../group_amd64.s -pkg swissflat
//
//go:build ignore

package main

import (
	. "github.com/mmcloughlin/avo/build"
	"github.com/mmcloughlin/avo/operand"
)

// groupSize mirrors the package-level control-group width (swissflat.groupSize).
// It is duplicated here because this file is its own unbuilt module.
const groupSize = 32

func main() {
	ConstraintExpr("!purego")
	matchByte32()
	signMask32()
	Generate()
}

// matchByte32 compares every one of groupSize control bytes against a
// broadcast target byte and returns a bitmask of equal lanes.
//
//	func matchByte32(target byte, group []byte) uint32
func matchByte32() {
	TEXT("matchByte32", NOSPLIT, "func(target byte, group []byte) uint32")
	Doc("matchByte32 returns a bitmask with bit i set where group[i] == target.",
		"group must have length >= groupSize (32).")

	c := Load(Param("target"), GP32())
	ptr := Load(Param("group").Base(), GP64())

	broadcast, zero := XMM(), XMM()
	PXOR(zero, zero)
	MOVD(c, broadcast)
	PSHUFB(zero, broadcast)

	lo, hi := XMM(), XMM()
	MOVOU(operand.Mem{Base: ptr}, lo)
	MOVOU(operand.Mem{Base: ptr, Disp: 16}, hi)

	PCMPEQB(broadcast, lo)
	PCMPEQB(broadcast, hi)

	maskLo, maskHi := GP32(), GP32()
	PMOVMSKB(lo, maskLo)
	PMOVMSKB(hi, maskHi)

	SHLL(operand.Imm(16), maskHi)
	ORL(maskHi, maskLo)

	Store(maskLo, ReturnIndex(0))
	RET()
}

// signMask32 extracts the high bit of every one of groupSize control
// bytes directly: bit i is 1 iff group[i] is non-occupied (empty or
// tombstone, both of which set the tag's top bit).
//
//	func signMask32(group []byte) uint32
func signMask32() {
	TEXT("signMask32", NOSPLIT, "func(group []byte) uint32")
	Doc("signMask32 returns a bitmask with bit i set where group[i] has its high bit set.",
		"group must have length >= groupSize (32).")

	ptr := Load(Param("group").Base(), GP64())

	lo, hi := XMM(), XMM()
	MOVOU(operand.Mem{Base: ptr}, lo)
	MOVOU(operand.Mem{Base: ptr, Disp: 16}, hi)

	maskLo, maskHi := GP32(), GP32()
	PMOVMSKB(lo, maskLo)
	PMOVMSKB(hi, maskHi)

	SHLL(operand.Imm(16), maskHi)
	ORL(maskHi, maskLo)

	Store(maskLo, ReturnIndex(0))
	RET()
}
