package swissflat

import (
	"hash/maphash"

	dolthashing "github.com/dolthub/maphash"
)

// Hasher is the "hash builder" collaborator (§6): a per-key 64-bit hash
// function, deterministic within one table's lifetime. The design
// assumes it is not adversarial with respect to the low 7 bits used for
// the control tag.
type Hasher[K comparable] interface {
	Hash(key K) uint64
}

// hasherFunc adapts a plain function to a Hasher.
type hasherFunc[K comparable] func(K) uint64

func (f hasherFunc[K]) Hash(key K) uint64 { return f(key) }

// newDefaultHasher returns the Hasher used when a Map is constructed
// without WithHasher or WithSeed: dolthub/maphash's generic hasher, which
// hashes any comparable K the way the Go runtime hashes map keys
// (no exported seed, randomized per process). It is the fastest path and
// the right default for production use.
func newDefaultHasher[K comparable]() Hasher[K] {
	h := dolthashing.NewHasher[K]()
	return hasherFunc[K](h.Hash)
}

// newSeededHasher returns a Hasher built on the standard library's
// hash/maphash.Comparable, seeded explicitly: every Map built with the
// same seed hashes each key identically. A maphash.Seed comes only from
// maphash.MakeSeed and cannot be carried from one process to the next,
// so this output is repeatable within a process, not across runs.
func newSeededHasher[K comparable](seed maphash.Seed) Hasher[K] {
	return hasherFunc[K](func(key K) uint64 {
		return maphash.Comparable(seed, key)
	})
}
