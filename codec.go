package hll

import "encoding/binary"

const (
	magic      = "HLL1"
	version    = 1
	headerSize = 4 + 1 + 1 + 1 + 1 + 4 + 4 // magic, version, flags, p, reserved, seed, body_len

	flagSparse = 1 << 0
)

// Encode serialises sk into a 16-byte little-endian header (magic, version,
// flags, p, reserved, seed, body_len) followed by a representation-specific
// body: packed register bytes for dense, or a u32 entry count plus that
// many packed u32 entries for sparse.
func (sk *Sketch) Encode() []byte {
	var body []byte
	var flags byte

	if sk.mode == modeSparse {
		flags |= flagSparse
		entries := sk.sparse.entries()
		body = make([]byte, 4+4*len(entries))
		binary.LittleEndian.PutUint32(body[0:4], uint32(len(entries)))
		for i, e := range entries {
			binary.LittleEndian.PutUint32(body[4+4*i:8+4*i], e)
		}
	} else {
		body = append([]byte(nil), sk.dense.bytes...)
	}

	buf := make([]byte, headerSize+len(body))
	copy(buf[0:4], magic)
	buf[4] = version
	buf[5] = flags
	buf[6] = byte(sk.s.p)
	buf[7] = 0
	binary.LittleEndian.PutUint32(buf[8:12], sk.s.seed)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(body)))
	copy(buf[headerSize:], body)

	return buf
}

// Decode deserialises bytes produced by Encode. Any structural mismatch,
// including bad magic, unsupported version, reserved bits set, precision
// out of range, or a body_len or body shape inconsistent with the header,
// returns a DecodeError wrapping ErrDecode and no partially-constructed
// Sketch.
func Decode(data []byte) (*Sketch, error) {
	if len(data) < headerSize {
		return nil, decodeErr("truncated header")
	}
	if string(data[0:4]) != magic {
		return nil, decodeErr("bad magic")
	}
	if data[4] != version {
		return nil, decodeErr("unsupported version")
	}

	flags := data[5]
	if flags&^flagSparse != 0 {
		return nil, decodeErr("reserved flag bits set")
	}
	sparse := flags&flagSparse != 0

	p := int(data[6])
	if p < minPrecision || p > maxPrecision {
		return nil, decodeErr("precision out of range")
	}
	if data[7] != 0 {
		return nil, decodeErr("reserved byte must be zero")
	}

	seed := binary.LittleEndian.Uint32(data[8:12])
	bodyLen := binary.LittleEndian.Uint32(data[12:16])
	body := data[headerSize:]
	if uint32(len(body)) != bodyLen {
		return nil, decodeErr("body_len does not match trailing bytes")
	}

	sk, err := New(Settings{Precision: p, Seed: seed, Sparse: sparse})
	if err != nil {
		return nil, err
	}
	m := sk.s.m

	if sparse {
		if len(body) < 4 {
			return nil, decodeErr("truncated sparse entry count")
		}
		count := binary.LittleEndian.Uint32(body[0:4])
		if uint64(len(body)) != 4+4*uint64(count) {
			return nil, decodeErr("sparse body length does not match entry count")
		}

		entries := make([]uint32, count)
		prevIndex := -1
		for i := range entries {
			off := 4 + 4*int(i)
			e := binary.LittleEndian.Uint32(body[off : off+4])
			idx, _ := decodeSparseEntry(e)
			if idx < 0 || idx >= m {
				return nil, decodeErr("sparse entry index out of range")
			}
			if idx <= prevIndex {
				return nil, decodeErr("sparse entries must be strictly sorted by index")
			}
			prevIndex = idx
			entries[i] = e
		}
		sk.sparse.sorted = entries
		return sk, nil
	}

	if len(body) != byteLen(m) {
		return nil, decodeErr("dense body length does not match precision")
	}
	copy(sk.dense.bytes, body)
	sk.dense.rebuildHistogram()
	return sk, nil
}
