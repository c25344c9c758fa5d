// Package mempool pools the small scratch buffers a TableBuilder
// reallocates on every Add/flush call: the varint64-pair encoding of a
// block.Handle, copied into an index or metaindex entry each time a
// data block (or the filter block) is written. Buckets are sized for
// that use case, not for general-purpose byte-slice reuse.
package mempool

import "sync"

// BucketSizes are the capacities Pool buckets buffers into. A
// block.Handle never encodes past 20 bytes (two varint64s), so the
// buckets stop well short of the kilobyte range a data-block-sized
// buffer would need.
var BucketSizes = [4]int{32, 64, 128, 256}

// Pool hands out byte slices sized for handle-encoding scratch space and
// takes them back once the caller is done with them.
type Pool struct {
	pools [len(BucketSizes)]sync.Pool
}

// NewPool creates a Pool with freshly initialized buckets.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.pools {
		size := BucketSizes[i]
		p.pools[i] = sync.Pool{
			New: func() any {
				buf := make([]byte, 0, size)
				return &buf
			},
		}
	}
	return p
}

// Get returns a zero-length slice with at least minSize capacity. A
// request larger than the biggest bucket bypasses the pool entirely
// rather than growing it to fit an outlier.
func (p *Pool) Get(minSize int) []byte {
	bucket := p.bucketFor(minSize)
	if bucket < 0 {
		return make([]byte, 0, minSize)
	}
	bufPtr, ok := p.pools[bucket].Get().(*[]byte)
	if !ok {
		return make([]byte, 0, minSize)
	}
	return (*bufPtr)[:0]
}

// Put returns buf to its bucket for reuse. A nil slice, or one too large
// to belong to any bucket, is dropped instead of pooled.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}
	bucket := p.bucketFor(cap(buf))
	if bucket < 0 {
		return
	}
	buf = buf[:0]
	p.pools[bucket].Put(&buf)
}

func (p *Pool) bucketFor(size int) int {
	for i, bucketSize := range BucketSizes {
		if size <= bucketSize {
			return i
		}
	}
	return -1
}

// GlobalPool is the pool TableBuilder uses for its handle-encoding
// scratch buffer.
var GlobalPool = NewPool()
