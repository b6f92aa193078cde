// Package hll implements a HyperLogLog cardinality sketch: a bounded-memory
// estimator of how many distinct byte values have been observed, with a
// bit-packed dense register array, a sparse-to-dense adaptive
// representation, lossless union, and a versioned binary codec.
package hll

import "math/bits"

// mode is the sketch's current representation: Sparse or Dense. The only
// transition is Sparse -> Dense; Dense is terminal, there is no demotion.
type mode int

const (
	modeSparse mode = iota
	modeDense
)

// Sketch is a probabilistic cardinality estimator: a single-owner, mutable
// value supporting insertion of opaque byte values, cardinality estimation,
// lossless union with an equal-precision sketch, and (de)serialisation. It
// is not safe for concurrent use; callers needing concurrent update must
// externally serialise or shard. Every Sketch is built by New; there is no
// zero-value initialization against process-wide defaults.
type Sketch struct {
	s      *settings
	mode   mode
	dense  *registers
	sparse *sparseList
}

// New creates a Sketch per cfg, validating Precision and deriving every
// constant the hot paths need. An invalid Precision returns an
// InvalidArgument error.
func New(cfg Settings) (*Sketch, error) {
	s, err := cfg.toInternal()
	if err != nil {
		return nil, err
	}

	sk := &Sketch{s: s}
	if s.sparse {
		sk.mode = modeSparse
		sk.sparse = newSparseList()
	} else {
		sk.mode = modeDense
		sk.dense = newRegisters(s.m)
	}
	return sk, nil
}

// Precision returns p.
func (sk *Sketch) Precision() int { return sk.s.p }

// Size returns m = 2^p, the register count.
func (sk *Sketch) Size() int { return sk.s.m }

// Seed returns the seed mixed into every hash computed for this sketch.
func (sk *Sketch) Seed() uint32 { return sk.s.seed }

// IsSparse reports whether the sketch is currently in the sparse
// representation. Since Dense is terminal, once this returns false it never
// returns true again for this Sketch.
func (sk *Sketch) IsSparse() bool { return sk.mode == modeSparse }

// Hash exposes the sketch's seeded hash of data, mainly useful for testing.
// It is also what Add uses internally, so it is exercised by every
// insertion, not merely exposed.
func (sk *Sketch) Hash(data []byte) uint64 {
	return sk.s.hasher.Sum64(sk.s.seed, data)
}

// indexAndRank derives (index, rank) from a 64-bit hash: the top p bits
// select the register, and a sentinel bit bounds the rank to 64-p+1 before
// the 6-bit cell clamp is applied.
func (sk *Sketch) indexAndRank(h uint64) (index int, rank byte) {
	p := uint(sk.s.p)
	index = int(h >> (64 - p))

	w := (h << p) | (uint64(1) << (p - 1))
	rank = byte(1 + bits.LeadingZeros64(w))
	if rank > registerMax {
		rank = registerMax
	}
	return index, rank
}

// Add hashes data with the sketch's seed and records the observation,
// promoting sparse -> dense if the insertion pushes the sparse backbone
// over its threshold. It reports whether the effective register changed;
// this is always false in sparse mode, since answering accurately there
// would require a backbone lookup the fast path is built to avoid.
func (sk *Sketch) Add(data []byte) bool {
	h := sk.Hash(data)
	index, rank := sk.indexAndRank(h)

	if sk.mode == modeDense {
		_, changed := sk.dense.setMax(index, rank)
		return changed
	}

	if flushed := sk.sparse.add(index, rank); flushed && sk.sparse.len() > sk.s.maxSparseLen {
		sk.promote()
	}
	return false
}

// promote replaces the sparse backbone with a freshly allocated, fully
// replayed dense register array and flips mode permanently to Dense.
func (sk *Sketch) promote() {
	sk.dense = sk.sparse.promote(sk.s.m)
	sk.sparse = nil
	sk.mode = modeDense
}

// Cardinality estimates the number of distinct values added so far.
func (sk *Sketch) Cardinality() float64 {
	return estimate(sk.Histogram(), sk.s.alphaMSquared)
}

// Histogram returns h[0..64], the count of registers currently holding each
// value. In dense mode this is read directly; in sparse mode it is
// materialized on demand by flushing and scanning the backbone.
func (sk *Sketch) Histogram() [65]uint32 {
	if sk.mode == modeDense {
		return sk.dense.histogram
	}
	return sk.sparse.materializeHistogram(sk.s.m)
}

// GetRegister returns the current value of register i. It is a
// testing/codec aid; OutOfBounds is returned for i outside [0, m).
func (sk *Sketch) GetRegister(i int) (byte, error) {
	if i < 0 || i >= sk.s.m {
		return 0, outOfBoundsf("register index %d out of range [0, %d)", i, sk.s.m)
	}
	if sk.mode == modeDense {
		return sk.dense.get(i), nil
	}
	return sk.sparse.get(i), nil
}

// SetRegister unconditionally overwrites register i, bypassing the
// monotonicity invariant Add and Merge preserve. It is a testing/codec aid:
// a value outside [0, 63] is InvalidArgument, an index outside [0, m) is
// OutOfBounds. Calling it on a sparse sketch forces promotion to dense
// first, since the sparse backbone has no notion of an explicit zero write.
func (sk *Sketch) SetRegister(i int, v byte) error {
	if i < 0 || i >= sk.s.m {
		return outOfBoundsf("register index %d out of range [0, %d)", i, sk.s.m)
	}
	if v > registerMax {
		return invalidArgumentf("register value %d out of range [0, %d]", v, registerMax)
	}
	if sk.mode == modeSparse {
		sk.promote()
	}
	sk.dense.bulkSet(i, v)
	return nil
}
