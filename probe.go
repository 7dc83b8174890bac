package swissflat

// probeIter is a lazy, finite, non-restartable sequence of candidate slot
// indices produced by repeatedly scanning groups of control bytes
// starting at a given position and advancing by groupSize modulo the
// table's capacity. It owns the (scanner, controller) pair for its
// lifetime; group scanning happens inside next, not at construction.
//
// probeIter assumes capacity > 0; callers must special-case the empty
// table before constructing one.
type probeIter struct {
	tags     []byte // length capacity + groupSize, mirror tail included
	capacity int

	cursor    int // start of the next group to scan
	scannedAt int // start of the group the current mask was scanned from
	mask      uint32
	finished  bool

	scanner groupScanner
	ctrl    controller
}

// newProbeIter starts a probe at the given group position (typically
// hash mod capacity; it need not be a multiple of groupSize — the mirror
// tail makes every start position valid).
func newProbeIter(tags []byte, capacity int, start int, scanner groupScanner, ctrl controller) *probeIter {
	return &probeIter{
		tags:     tags,
		capacity: capacity,
		cursor:   start % capacity,
		scanner:  scanner,
		ctrl:     ctrl,
	}
}

// next reports the next candidate slot index in probe order, or ok=false
// once the controller has signaled completion and every lane of the last
// scanned group has been reported.
func (p *probeIter) next() (index int, ok bool) {
	for {
		if p.mask != 0 {
			pos := lowestSet(p.mask)
			p.mask = clearLowest(p.mask)
			idx := p.scannedAt + pos
			if idx >= p.capacity {
				idx -= p.capacity
			}
			return idx, true
		}
		if p.finished {
			return 0, false
		}

		group := p.tags[p.cursor : p.cursor+groupSize]
		newMask := maskForCapacity(p.scanner.scan(group), p.capacity)
		p.finished = p.ctrl.observe(group)
		p.scannedAt = p.cursor
		p.mask = newMask

		p.cursor += groupSize
		if p.cursor >= p.capacity {
			p.cursor -= p.capacity
		}
	}
}
