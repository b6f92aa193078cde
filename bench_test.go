package hll

import (
	"encoding/binary"
	"fmt"
	"testing"
)

func BenchmarkSettingsToInternal(b *testing.B) {
	s := Settings{Precision: 11}
	for i := 0; i < b.N; i++ {
		s.toInternal()
	}
}

func BenchmarkSketch_Add_dense(b *testing.B) {
	sk, _ := New(Settings{Precision: 14})
	buf := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		binary.LittleEndian.PutUint64(buf, uint64(i))
		sk.Add(buf)
	}
}

func BenchmarkSketch_Add_sparse(b *testing.B) {
	sk, _ := New(Settings{Precision: 14, Sparse: true})
	buf := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		binary.LittleEndian.PutUint64(buf, uint64(i))
		sk.Add(buf)
	}
}

func BenchmarkSketch_Cardinality(b *testing.B) {
	sk, _ := New(Settings{Precision: 14})
	for i := 0; i < 100000; i++ {
		sk.Add([]byte(fmt.Sprintf("v%d", i)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sk.Cardinality()
	}
}

func BenchmarkSketch_Merge(b *testing.B) {
	a, _ := New(Settings{Precision: 14})
	other, _ := New(Settings{Precision: 14})
	for i := 0; i < 50000; i++ {
		a.Add([]byte(fmt.Sprintf("a%d", i)))
		other.Add([]byte(fmt.Sprintf("b%d", i)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Merge(other)
	}
}

func BenchmarkCodec_EncodeDense(b *testing.B) {
	sk, _ := New(Settings{Precision: 14})
	for i := 0; i < 50000; i++ {
		sk.Add([]byte(fmt.Sprintf("e%d", i)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sk.Encode()
	}
}

func BenchmarkCodec_DecodeDense(b *testing.B) {
	sk, _ := New(Settings{Precision: 14})
	for i := 0; i < 50000; i++ {
		sk.Add([]byte(fmt.Sprintf("e%d", i)))
	}
	buf := sk.Encode()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decode(buf)
	}
}
