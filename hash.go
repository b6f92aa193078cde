package hll

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
	"github.com/cespare/xxhash"
	"github.com/spaolacci/murmur3"
)

// Hasher is the black-box 64-bit PRF a Sketch hashes every added value
// through. Only its output width and uniformity matter to the sketch; this
// package never inspects a Hasher's internals. A Hasher must be stateless
// and safe to reuse across calls with different seeds.
type Hasher interface {
	Sum64(seed uint32, data []byte) uint64
}

// murmur3Hasher is the default Hasher. Murmur3's x64-64 variant is a good
// general-purpose seeded 64-bit digest and is the hash this package's tests
// and accuracy properties are tuned against.
type murmur3Hasher struct{}

func (murmur3Hasher) Sum64(seed uint32, data []byte) uint64 {
	h := murmur3.New64WithSeed(seed)
	h.Write(data)
	return h.Sum64()
}

// xxhashHasher adapts cespare/xxhash (v1), which has no native seed
// parameter, into a seeded Hasher by writing the seed into the streaming
// digest ahead of the payload.
type xxhashHasher struct{}

func (xxhashHasher) Sum64(seed uint32, data []byte) uint64 {
	var seedBytes [4]byte
	binary.LittleEndian.PutUint32(seedBytes[:], seed)

	h := xxhash.New()
	h.Write(seedBytes[:])
	h.Write(data)
	return h.Sum64()
}

// farmHasher adapts FarmHash's native seeded 64-bit digest.
type farmHasher struct{}

func (farmHasher) Sum64(seed uint32, data []byte) uint64 {
	return farm.Hash64WithSeed(data, uint64(seed))
}

// DefaultHasher returns the Hasher used when no Hasher option is supplied to
// New: a murmur3-backed implementation.
func DefaultHasher() Hasher { return murmur3Hasher{} }

// XXHasher returns an xxhash-backed Hasher.
func XXHasher() Hasher { return xxhashHasher{} }

// FarmHasher returns a FarmHash-backed Hasher.
func FarmHasher() Hasher { return farmHasher{} }
