package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_hashers_areSeedSensitive(t *testing.T) {
	data := []byte("distinct-value")

	for name, h := range map[string]Hasher{
		"murmur3": DefaultHasher(),
		"xxhash":  XXHasher(),
		"farm":    FarmHasher(),
	} {
		t.Run(name, func(t *testing.T) {
			a := h.Sum64(1, data)
			b := h.Sum64(2, data)
			assert.NotEqual(t, a, b, "changing the seed must change the digest")
		})
	}
}

func Test_hashers_areDeterministic(t *testing.T) {
	data := []byte("repeatable")
	for name, h := range map[string]Hasher{
		"murmur3": DefaultHasher(),
		"xxhash":  XXHasher(),
		"farm":    FarmHasher(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, h.Sum64(7, data), h.Sum64(7, data))
		})
	}
}

func Test_hashers_produceDifferentDigests(t *testing.T) {
	data := []byte("backend-distinguishing")
	m := DefaultHasher().Sum64(3, data)
	x := XXHasher().Sum64(3, data)
	f := FarmHasher().Sum64(3, data)

	assert.NotEqual(t, m, x)
	assert.NotEqual(t, m, f)
	assert.NotEqual(t, x, f)
}

func Test_Sketch_Hash_usesConfiguredSeedAndHasher(t *testing.T) {
	sk, err := New(Settings{Precision: 4, Seed: 99, Hasher: XXHasher()})
	assert.NoError(t, err)

	want := XXHasher().Sum64(99, []byte("abc"))
	assert.Equal(t, want, sk.Hash([]byte("abc")))
}
