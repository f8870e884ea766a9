package utils

import (
	"math/bits"
	"sync"
)

// BufferSizeClass lists the pooled capacities: powers of two from 16 bytes,
// the size of a typical embedded frame, up to 32 KiB.
var BufferSizeClass = [...]int{16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

const (
	minClassBits = 4 // log2(BufferSizeClass[0])
	maxPooled    = 32768
)

// SizeIndex returns the index of the smallest class holding n bytes, or -1
// when n is not poolable.
func SizeIndex(n int) int {
	if n <= 0 || n > maxPooled {
		return -1
	}
	if n <= BufferSizeClass[0] {
		return 0
	}
	return bits.Len(uint(n-1)) - minClassBits
}

type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return &bp
}

// Acquire returns a buffer of length n. Sizes above the largest class are
// allocated directly and never pooled.
func (bp *BufferPool) Acquire(n int) []byte {
	idx := SizeIndex(n)
	if idx < 0 {
		return make([]byte, n)
	}
	bufPtr := bp.pools[idx].Get().(*[]byte)
	return (*bufPtr)[:n]
}

func (bp *BufferPool) AcquireZeroed(n int) []byte {
	buf := bp.Acquire(n)
	clear(buf)
	return buf
}

// Grow releases buf and returns a buffer of at least twice its length,
// and at least n bytes.
func (bp *BufferPool) Grow(buf []byte, n int) []byte {
	size := 2 * len(buf)
	if size < n {
		size = n
	}
	bp.Release(buf)
	return bp.Acquire(size)
}

// Release returns the buffer to its pool if its capacity matches a class.
func (bp *BufferPool) Release(buf []byte) {
	c := cap(buf)
	if c&(c-1) != 0 || c < BufferSizeClass[0] || c > maxPooled {
		return
	}
	idx := bits.Len(uint(c)) - minClassBits - 1
	buf = buf[:c]
	bp.pools[idx].Put(&buf)
}
