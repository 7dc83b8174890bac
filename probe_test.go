package swissflat

import "testing"

func newFilledTags(capacity int, occupied map[int]byte) []byte {
	tags := make([]byte, capacity+groupSize)
	for i := range tags {
		tags[i] = byte(tagEmpty)
	}
	for i, tg := range occupied {
		tags[i] = tg
		if i < groupSize {
			tags[i+capacity] = tg
		}
	}
	return tags
}

func TestProbeIterVisitsOccupiedInOrder(t *testing.T) {
	capacity := 64
	tags := newFilledTags(capacity, map[int]byte{3: 0x01, 5: 0x01, 40: 0x01})

	p := newProbeIter(tags, capacity, 0, scanOccupied, newControlStopAfterN(capacity))
	var got []int
	for {
		idx, ok := p.next()
		if !ok {
			break
		}
		got = append(got, idx)
	}

	want := []int{3, 5, 40}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestProbeIterStopsOnEmpty(t *testing.T) {
	capacity := 64
	tags := newFilledTags(capacity, map[int]byte{0: 0x01, 1: 0x01, 2: 0x01})
	// slot 3 stays empty; everything after it must not be visited.
	tags[35] = 0x01 // in the second group, unreachable if stop-on-empty works

	p := newProbeIter(tags, capacity, 0, scanOccupied, controlStopOnEmpty{})
	var got []int
	for {
		idx, ok := p.next()
		if !ok {
			break
		}
		got = append(got, idx)
	}
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 entries before the empty lane", got)
	}
}

func TestProbeIterStartOffsetWraps(t *testing.T) {
	capacity := 32
	tags := newFilledTags(capacity, map[int]byte{0: 0x01, 31: 0x01})

	// Starting mid-group should still find both occupied lanes across the
	// wraparound, since the mirror tail makes the backing slice valid
	// starting anywhere.
	p := newProbeIter(tags, capacity, 20, scanOccupied, newControlStopAfterN(capacity))
	count := 0
	for {
		_, ok := p.next()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("got %d hits, want 2", count)
	}
}

func TestControlStopAfterNTerminates(t *testing.T) {
	capacity := groupSize * 3
	ctrl := newControlStopAfterN(capacity)
	group := make([]byte, groupSize)
	for i := 0; i < groupSize; i++ {
		group[i] = byte(tagEmpty)
	}
	// Remove the empty lanes so only the budget can terminate the probe.
	for i := range group {
		group[i] = 0x01
	}

	done := false
	for i := 0; i < 3; i++ {
		done = ctrl.observe(group)
	}
	if !done {
		t.Fatalf("controlStopAfterN did not finish after scanning its full budget")
	}
}

func TestControlEitherObservesBoth(t *testing.T) {
	a := newControlStopAfterN(groupSize * 10)
	b := controlStopOnEmpty{}
	either := newControlEither(a, b)

	occupiedGroup := make([]byte, groupSize)
	for i := range occupiedGroup {
		occupiedGroup[i] = 0x01
	}
	if either.observe(occupiedGroup) {
		t.Fatalf("controlEither finished early on a fully-occupied group")
	}

	emptyGroup := make([]byte, groupSize)
	for i := range emptyGroup {
		emptyGroup[i] = byte(tagEmpty)
	}
	if !either.observe(emptyGroup) {
		t.Fatalf("controlEither did not finish once the empty-stop sub-controller fired")
	}
}

func TestScanEitherUnionsLanes(t *testing.T) {
	group := make([]byte, groupSize)
	for i := range group {
		group[i] = 0x05
	}
	group[0] = byte(tagEmpty)
	group[1] = byte(tagTombstone)

	either := scanEither(scanMatch(tagEmpty), scanMatch(tagTombstone))
	got := either.scan(group)
	want := uint32(1<<0 | 1<<1)
	if got != want {
		t.Errorf("scanEither.scan() = %#x, want %#x", got, want)
	}
}

func TestMaskForCapacityClipsMirrorTail(t *testing.T) {
	mask := uint32(1<<32 - 1)
	got := maskForCapacity(mask, 8)
	want := uint32(1<<8 - 1)
	if got != want {
		t.Errorf("maskForCapacity() = %#x, want %#x", got, want)
	}
	if got := maskForCapacity(mask, groupSize); got != mask {
		t.Errorf("maskForCapacity() at full group size = %#x, want %#x", got, mask)
	}
}

func TestLowestSetAndClearLowest(t *testing.T) {
	mask := uint32(0b1010100)
	if got := lowestSet(mask); got != 2 {
		t.Errorf("lowestSet(%b) = %d, want 2", mask, got)
	}
	mask = clearLowest(mask)
	if got := lowestSet(mask); got != 4 {
		t.Errorf("lowestSet(%b) after clearLowest = %d, want 4", mask, got)
	}
	if lowestSet(0) != -1 {
		t.Errorf("lowestSet(0) = %d, want -1", lowestSet(0))
	}
}
