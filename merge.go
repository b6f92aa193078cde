package hll

// Merge computes the union of sk and other and stores the result into sk.
// Both must share precision and seed; otherwise Merge returns an
// InvalidArgument error wrapping ErrIncompatiblePrecision or
// ErrIncompatibleSeed and leaves sk unchanged.
//
// Merge is commutative and associative: a.Merge(b) and b.Merge(a) estimate
// the same cardinality, and the order in which several sketches are folded
// together does not matter.
func (sk *Sketch) Merge(other *Sketch) error {
	if sk.s.p != other.s.p {
		return newError(InvalidArgument, ErrIncompatiblePrecision)
	}
	if sk.s.seed != other.s.seed {
		return newError(InvalidArgument, ErrIncompatibleSeed)
	}

	switch {
	case sk.mode == modeDense && other.mode == modeDense:
		sk.dense.union(other.dense)

	case sk.mode == modeDense && other.mode == modeSparse:
		for _, e := range other.sparse.entries() {
			idx, rank := decodeSparseEntry(e)
			sk.dense.setMax(idx, rank)
		}

	case sk.mode == modeSparse && other.mode == modeDense:
		sk.promote()
		sk.dense.union(other.dense)

	default: // both sparse
		sk.sparse.mergeInto(other.sparse)
		if sk.sparse.len() > sk.s.maxSparseLen {
			sk.promote()
		}
	}

	return nil
}
