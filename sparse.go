package hll

import "sort"

// defaultBufferCap is the small append-buffer bound at which a flush is
// forced.
const defaultBufferCap = 128

// sparseList is the sparse representation: a sorted, deduplicated backbone
// of 32-bit encoded (index, rank) entries plus a small unsorted append
// buffer. Encoding packs index into the high bits and rank into the low 6
// bits (registerWidth), so index<<6|rank sorts ascending by index first and,
// for equal indices, by rank, which the flush dedupe step relies on.
type sparseList struct {
	sorted []uint32
	buffer []uint32
	cap    int
}

func newSparseList() *sparseList {
	return &sparseList{cap: defaultBufferCap}
}

func encodeSparseEntry(index int, rank byte) uint32 {
	return uint32(index)<<registerWidth | uint32(rank&registerMax)
}

func decodeSparseEntry(e uint32) (index int, rank byte) {
	return int(e >> registerWidth), byte(e & registerMax)
}

// add appends an encoded (index, rank) pair to the buffer, flushing once the
// buffer reaches its bound, and reports whether a flush happened (so the
// caller can check the post-flush backbone length against the promotion
// threshold). This is distinct from Sketch.Add's own return value, which
// always reports false for a sparse-mode insertion since answering
// accurately would require a backbone lookup the fast path is built to
// avoid.
func (s *sparseList) add(index int, rank byte) (flushed bool) {
	s.buffer = append(s.buffer, encodeSparseEntry(index, rank))
	if len(s.buffer) >= s.cap {
		s.flush()
		return true
	}
	return false
}

// flush sorts and dedupes the append buffer, then merges it into the sorted
// backbone, collapsing any index present in both by taking the larger rank.
func (s *sparseList) flush() {
	if len(s.buffer) == 0 {
		return
	}
	sort.Slice(s.buffer, func(i, j int) bool { return s.buffer[i] < s.buffer[j] })
	deduped := dedupeAscending(s.buffer)
	s.sorted = mergeDedupe(s.sorted, deduped)
	s.buffer = s.buffer[:0]
}

// dedupeAscending collapses runs of equal index in an ascending-sorted slice
// down to the entry with the largest rank (the last in the run, since rank
// occupies the low bits of the sort key).
func dedupeAscending(sorted []uint32) []uint32 {
	out := sorted[:0:0]
	for i, e := range sorted {
		idx, _ := decodeSparseEntry(e)
		if i+1 < len(sorted) {
			nextIdx, _ := decodeSparseEntry(sorted[i+1])
			if nextIdx == idx {
				continue // a later, equal-or-greater-rank entry for this index follows
			}
		}
		out = append(out, e)
	}
	return out
}

// mergeDedupe merges two ascending, already-deduplicated entry lists,
// collapsing indices present in both by taking the larger rank.
func mergeDedupe(a, b []uint32) []uint32 {
	out := make([]uint32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ia, ra := decodeSparseEntry(a[i])
		ib, rb := decodeSparseEntry(b[j])
		switch {
		case ia < ib:
			out = append(out, a[i])
			i++
		case ia > ib:
			out = append(out, b[j])
			j++
		default:
			if ra >= rb {
				out = append(out, a[i])
			} else {
				out = append(out, b[j])
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// len returns the number of distinct indices in the backbone. The caller is
// responsible for flushing first if the buffer may hold entries.
func (s *sparseList) len() int {
	return len(s.sorted)
}

// entries flushes and returns the sorted backbone, for callers (dense<-sparse
// union) that need to walk every entry.
func (s *sparseList) entries() []uint32 {
	s.flush()
	return s.sorted
}

// get flushes and binary-searches the backbone for index, returning its
// rank or 0 if index has never been observed.
func (s *sparseList) get(index int) byte {
	s.flush()
	n := len(s.sorted)
	k := sort.Search(n, func(k int) bool {
		idx, _ := decodeSparseEntry(s.sorted[k])
		return idx >= index
	})
	if k < n {
		if idx, rank := decodeSparseEntry(s.sorted[k]); idx == index {
			return rank
		}
	}
	return 0
}

// copy returns a deep copy of s.
func (s *sparseList) copy() *sparseList {
	o := &sparseList{cap: s.cap}
	o.sorted = append([]uint32(nil), s.sorted...)
	o.buffer = append([]uint32(nil), s.buffer...)
	return o
}

// materializeHistogram flushes and builds the [0,64] register-value
// histogram a sparse sketch would have if every buffered and backbone entry
// were applied to a dense array of m registers, without allocating one.
func (s *sparseList) materializeHistogram(m int) [65]uint32 {
	s.flush()
	var h [65]uint32
	for _, e := range s.sorted {
		_, rank := decodeSparseEntry(e)
		h[rank]++
	}
	h[0] += uint32(m) - uint32(len(s.sorted)) // rank-0 entries were counted in h[0] above
	return h
}

// promote flushes and replays every backbone entry into a freshly allocated
// dense register array, producing exactly the array that direct insertion
// of every element would have.
func (s *sparseList) promote(m int) *registers {
	s.flush()
	r := newRegisters(m)
	for _, e := range s.sorted {
		idx, rank := decodeSparseEntry(e)
		r.setMax(idx, rank)
	}
	return r
}

// mergeInto merges other's entries into s, collapsing any index present in
// both backbones by taking the larger rank.
func (s *sparseList) mergeInto(other *sparseList) {
	s.flush()
	other.flush()
	s.sorted = mergeDedupe(s.sorted, other.sorted)
}
