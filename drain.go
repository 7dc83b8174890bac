package swissflat

import "iter"

// Drain returns an iterator that visits every occupied slot exactly
// once, yields its (key, value), and clears the slot as it goes. L and D
// are zeroed the instant Drain is called — not as the sequence is
// consumed — so a Len() call between this call and full consumption
// observes an empty map, matching the teacher's own stated goal for
// this transfer-of-ownership shape ("needs to track if a Range is live
// during a Set").
//
// Breaking out of the range-over-func loop early does not leave the
// table half-drained: the returned sequence keeps clearing whatever
// remains internally even after its yield stops being called, so by the
// time the sequence function returns, every tag is back to empty
// regardless of how much of it the caller actually consumed.
func (m *Map[K, V]) Drain() iter.Seq2[K, V] {
	t := m.t
	if t.capacity == 0 {
		return func(func(K, V) bool) {}
	}

	remaining := t.live
	t.live = 0
	t.tombstones = 0

	return func(yield func(K, V) bool) {
		stopped := false
		ctrl := newControlStopAfterN(t.capacity)
		p := newProbeIter(t.tags, t.capacity, 0, scanOccupied, ctrl)

		for remaining > 0 {
			idx, ok := p.next()
			if !ok {
				break
			}
			e := t.slots[idx]
			t.writeTag(idx, tagEmpty)
			var zero entry[K, V]
			t.slots[idx] = zero
			remaining--

			if stopped {
				continue
			}
			if !yield(e.key, e.value) {
				stopped = true
			}
		}
		t.resetTags()
	}
}
