package swissflat

// entry holds one key/value payload. A slot's entry is only meaningful
// when the control byte at the same index is occupied; otherwise it must
// not be read. Go's zero-initialized memory stands in for the "raw,
// uninitialized storage" the design notes describe for unsafe-language
// targets — there is no placement-new/placement-destroy step here, just
// a convention that the tag is the sole source of truth for validity.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// table is the open-addressed storage backing a Map: a tag array of
// length capacity+groupSize (the trailing groupSize bytes mirror the
// first groupSize, so a group load never needs to special-case
// wraparound) and a parallel slot array of length capacity.
type table[K comparable, V any] struct {
	tags  []byte
	slots []entry[K, V]

	capacity   int // 0 or a power of two
	live       int // L
	tombstones int // D
}

// newTable allocates a table of the given capacity, which must already be
// 0 or a power of two (the façade is responsible for rounding).
func newTable[K comparable, V any](capacity int) *table[K, V] {
	if capacity == 0 {
		return &table[K, V]{}
	}
	t := &table[K, V]{
		tags:     make([]byte, capacity+groupSize),
		slots:    make([]entry[K, V], capacity),
		capacity: capacity,
	}
	t.resetTags()
	return t
}

// resetTags marks every slot (including the mirror tail) empty.
func (t *table[K, V]) resetTags() {
	for i := range t.tags {
		t.tags[i] = byte(tagEmpty)
	}
}

// writeTag is the single path through which any tag byte is mutated. If i
// falls within the first groupSize positions, the mirrored copy at
// i+capacity is written in the same call, keeping the mirror-tail
// invariant local rather than a scheduled concern.
func (t *table[K, V]) writeTag(i int, tg tag) {
	t.tags[i] = byte(tg)
	if i < groupSize {
		t.tags[i+t.capacity] = byte(tg)
	}
}

// groupStart returns the starting probe position for a hash: h mod C,
// computed with a mask since capacity is always a power of two.
func (t *table[K, V]) groupStart(h uint64) int {
	return int(h & uint64(t.capacity-1))
}

// newProbe starts a probe for the given hash using the supplied scanner
// and controller.
func (t *table[K, V]) newProbe(h uint64, scanner groupScanner, ctrl controller) *probeIter {
	return newProbeIter(t.tags, t.capacity, t.groupStart(h), scanner, ctrl)
}

// stopAfterFullScan returns a controller bounded to the table's own
// capacity, the safety net required any time a probe must be guaranteed
// to terminate even on a degenerate table with no reachable empty slot.
func (t *table[K, V]) stopAfterFullScan() controller {
	return newControlStopAfterN(t.capacity)
}
