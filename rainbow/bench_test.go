package rainbow

import (
	"fmt"
	"testing"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var benchSizes = []int{32, 128, 256, 1024, 4096, 500 * 1024}

func benchName(size int) string {
	switch {
	case size >= 1024:
		return fmt.Sprintf("%dK", size/1024)
	default:
		return fmt.Sprintf("%dB", size)
	}
}

func BenchmarkSum256(b *testing.B) {
	for _, size := range benchSizes {
		data := pattern(size, 1)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Sum256(data, 0)
			}
		})
	}
}

func BenchmarkSum64(b *testing.B) {
	for _, size := range benchSizes {
		data := pattern(size, 1)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Sum64(data, 0)
			}
		})
	}
}

func BenchmarkHasher(b *testing.B) {
	for _, size := range benchSizes {
		data := pattern(size, 1)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				h, _ := New(0, uint64(size), Size256)
				h.Write(data)
				h.Sum()
			}
		})
	}
}

// Comparison benchmarks against the usual suspects from x/crypto.

func BenchmarkSHA3(b *testing.B) {
	for _, size := range benchSizes {
		data := pattern(size, 1)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			h := sha3.New256()
			for i := 0; i < b.N; i++ {
				h.Reset()
				h.Write(data)
				h.Sum(nil)
			}
		})
	}
}

func BenchmarkBlake2b(b *testing.B) {
	for _, size := range benchSizes {
		data := pattern(size, 1)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				blake2b.Sum256(data)
			}
		})
	}
}
