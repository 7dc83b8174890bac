// Package swissflat implements a generic, single-threaded, open-addressed
// hash map in the Swiss/Abseil "flat" style: one control byte per slot,
// groups of groupSize (32) control bytes scanned with SIMD-accelerated
// equality/sign masks on amd64, and a probe sequence that is the
// composition of a group scanner with a termination controller.
//
// Map is not safe for concurrent use, the same as the builtin map.
package swissflat

import "hash/maphash"

// debugTrace is a compile-time debug switch, the same pattern the
// teacher's own prototype used instead of a logging dependency. No code
// in this package reads it, so it emits no tracing.
const debugTrace = false

// Map is an unordered key-value map. The zero Map is not usable; construct
// one with New.
type Map[K comparable, V any] struct {
	t      *table[K, V]
	hasher Hasher[K]
}

// Option configures a Map at construction time.
type Option[K comparable, V any] func(*mapConfig[K, V])

type mapConfig[K comparable, V any] struct {
	capacityHint int
	hasher       Hasher[K]
}

// WithCapacity hints the number of entries the Map should hold without
// triggering a resize. The hint is rounded up to the table's own sizing
// policy (§ auto-grow); it is never treated as exact.
func WithCapacity[K comparable, V any](hint int) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.capacityHint = hint }
}

// WithHasher overrides the default hash builder.
func WithHasher[K comparable, V any](h Hasher[K]) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.hasher = h }
}

// WithSeed selects the reproducible, stdlib-maphash-backed Hasher seeded
// with seed, instead of the randomized default. Intended for tests and
// fuzzing, where "the same sequence of operations produces the same
// table state" matters more than raw speed.
func WithSeed[K comparable, V any](seed maphash.Seed) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.hasher = newSeededHasher[K](seed) }
}

// New constructs an empty Map. With no options it starts with zero
// capacity and allocates nothing until the first Set.
func New[K comparable, V any](opts ...Option[K, V]) *Map[K, V] {
	var cfg mapConfig[K, V]
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasher == nil {
		cfg.hasher = newDefaultHasher[K]()
	}
	return &Map[K, V]{
		t:      newTable[K, V](calcCapacity(cfg.capacityHint)),
		hasher: cfg.hasher,
	}
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.t.live }

// Cap returns the current table capacity (always 0 or a power of two).
func (m *Map[K, V]) Cap() int { return m.t.capacity }

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.t.live == 0 }

// Clear removes every entry. It does not release the underlying arrays;
// use ShrinkToFit afterward to reclaim the allocation.
func (m *Map[K, V]) Clear() {
	t := m.t
	if t.capacity == 0 {
		return
	}
	t.resetTags()
	var zero entry[K, V]
	for i := range t.slots {
		t.slots[i] = zero
	}
	t.live = 0
	t.tombstones = 0
}

// Reserve ensures the map can hold at least Len()+additional entries
// without a further resize. It is a no-op if the current capacity
// already covers that total.
func (m *Map[K, V]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	target := calcCapacity(m.t.live + additional)
	if target <= m.t.capacity {
		return
	}
	m.resizeTo(target)
}

// ShrinkToFit compacts the table to the capacity calcCapacity picks for
// the current entry count (at least groupSize slots, or 0 if the map is
// empty), reclaiming any tombstones along the way. It never grows the
// table: one that auto-shrink has already taken below that size is only
// rehashed at its current capacity. It is a no-op if the table is
// already at the target capacity with no tombstones to reclaim.
func (m *Map[K, V]) ShrinkToFit() {
	t := m.t
	if t.capacity == 0 {
		return
	}
	target := calcCapacity(t.live)
	if target > t.capacity {
		target = t.capacity
	}
	if target == t.capacity && t.tombstones == 0 {
		return
	}
	if target == 0 {
		m.t = newTable[K, V](0)
		return
	}
	m.resizeTo(target)
}

// Set inserts or updates the value associated with key, returning the
// value it replaced, if any. This realizes the design's insert
// operation: a probe for the existing key first, then — only if that
// probe reaches an empty slot without finding it — a claim of the
// first insertable slot along the same probe path.
func (m *Map[K, V]) Set(key K, value V) (prev V, replaced bool) {
	m.maybeGrow()
	t := m.t
	h := m.hasher.Hash(key)
	tg := tagForHash(h)

	existing := t.newProbe(h, scanMatch(tg), newControlEither(t.stopAfterFullScan(), controlStopOnEmpty{}))
	for {
		idx, ok := existing.next()
		if !ok {
			break
		}
		if t.slots[idx].key == key {
			prev = t.slots[idx].value
			t.slots[idx].value = value
			return prev, true
		}
	}

	claim := t.newProbe(h, scanInsertable, t.stopAfterFullScan())
	idx, ok := claim.next()
	if !ok {
		fatalf("swissflat: no insertable slot in a table of capacity %d with %d live and %d tombstoned entries",
			t.capacity, t.live, t.tombstones)
	}
	wasTombstone := tag(t.tags[idx]) == tagTombstone

	// Payload is written before the tag so a panic inside this call
	// (e.g. from a misbehaving V) can never leave an occupied tag
	// pointing at an uninitialized payload.
	t.slots[idx] = entry[K, V]{key: key, value: value}
	t.writeTag(idx, tg)
	t.live++
	if wasTombstone {
		t.tombstones--
	}
	return prev, false
}

// Get returns the value associated with key, if present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx, found := m.find(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.t.slots[idx].value, true
}

// GetPointer returns a pointer to the stored value for in-place mutation,
// if present. The pointer is invalidated by any subsequent resize
// (Set past the growth threshold, Reserve, ShrinkToFit) — this package
// makes no pointer-stability guarantee across mutation.
func (m *Map[K, V]) GetPointer(key K) (*V, bool) {
	idx, found := m.find(key)
	if !found {
		return nil, false
	}
	return &m.t.slots[idx].value, true
}

// Remove deletes key, if present, returning its value.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	_, v, ok := m.RemoveEntry(key)
	return v, ok
}

// RemoveEntry deletes key, if present, returning both the key and value
// that were stored (useful when K carries data beyond what compares
// equal, e.g. a case-insensitive string key).
func (m *Map[K, V]) RemoveEntry(key K) (K, V, bool) {
	idx, found := m.find(key)
	if !found {
		var zk K
		var zv V
		return zk, zv, false
	}
	k, v := m.removeAt(idx)
	return k, v, true
}

// find locates key's slot using the lookup (scanMatch, either(stop-after-C,
// stop-on-empty)) policy shared by Get/Set's existence check/Remove.
func (m *Map[K, V]) find(key K) (idx int, found bool) {
	t := m.t
	if t.capacity == 0 {
		return 0, false
	}
	h := m.hasher.Hash(key)
	return m.findHash(h, func(k K) bool { return k == key })
}

// findHash is the borrow-aware search primitive (§4.6): it takes an
// already-computed hash and an equality closure over K, so a caller
// holding only a borrowed view of a key (not a constructed K) can still
// drive a lookup, the way hyperpb's searchFunc lets an extractor stand
// in for a full key comparison.
func (m *Map[K, V]) findHash(h uint64, eq func(K) bool) (idx int, found bool) {
	t := m.t
	if t.capacity == 0 {
		return 0, false
	}
	tg := tagForHash(h)
	p := t.newProbe(h, scanMatch(tg), newControlEither(t.stopAfterFullScan(), controlStopOnEmpty{}))
	for {
		i, ok := p.next()
		if !ok {
			return 0, false
		}
		if eq(t.slots[i].key) {
			return i, true
		}
	}
}

// GetByHash and RemoveByHash expose findHash directly for borrowed-key
// lookups: a caller with a key representation that is expensive or
// impossible to materialize as a K (e.g. an out-of-line byte buffer)
// can hash that representation itself and supply an equality closure
// over it, rather than constructing a K just to search with it.

// GetByHash looks up a value by a precomputed hash and an equality
// closure, without requiring a constructed K.
func (m *Map[K, V]) GetByHash(h uint64, eq func(K) bool) (V, bool) {
	idx, found := m.findHash(h, eq)
	if !found {
		var zero V
		return zero, false
	}
	return m.t.slots[idx].value, true
}

// RemoveByHash removes an entry by a precomputed hash and an equality
// closure, without requiring a constructed K.
func (m *Map[K, V]) RemoveByHash(h uint64, eq func(K) bool) (K, V, bool) {
	idx, found := m.findHash(h, eq)
	if !found {
		var zk K
		var zv V
		return zk, zv, false
	}
	k, v := m.removeAt(idx)
	return k, v, true
}

// removeAt tombstones slot idx and returns the entry it held. The tag is
// cleared before the payload, the mirror image of Set's ordering, so a
// panic partway through can never leave a tombstone pointing at a
// payload this call was still in the middle of reading out.
func (m *Map[K, V]) removeAt(idx int) (K, V) {
	t := m.t
	t.writeTag(idx, tagTombstone)
	e := t.slots[idx]
	var zero entry[K, V]
	t.slots[idx] = zero
	t.live--
	t.tombstones++
	m.maybeShrink()
	return e.key, e.value
}

// Range calls f for every entry currently in the map, in unspecified
// order, stopping early if f returns false. It provides the same
// dynamic guarantee as the builtin map and sync.Map.Range: a key deleted
// before Range reaches it is not yielded; whether a key inserted during
// Range is yielded is unspecified. A Set that triggers a resize mid-Range
// detaches the iteration from the live table (it keeps scanning the
// table that existed when Range started) — the teacher's own design
// notes flag this exact case as unresolved, and this package does not
// attempt to paper over it with auxiliary storage.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	t := m.t
	if t.capacity == 0 {
		return
	}
	p := newProbeIter(t.tags, t.capacity, 0, scanOccupied, newControlStopAfterN(t.capacity))
	for {
		idx, ok := p.next()
		if !ok {
			return
		}
		e := t.slots[idx]
		if !f(e.key, e.value) {
			return
		}
	}
}

// Keys returns a snapshot slice of the map's keys, in unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns a snapshot slice of the map's values, in unspecified
// order (parallel to Keys only if neither Range call observed a
// concurrent mutation).
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.Range(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}
