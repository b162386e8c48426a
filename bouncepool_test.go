package vmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBouncePoolCapacityFromSharedSize(t *testing.T) {
	p := newBouncePool(4 * bounceChunkSize)
	assert.Equal(t, 4, p.capacity())
}

func TestBouncePoolOddSizeTruncatesToWholeChunks(t *testing.T) {
	p := newBouncePool(4*bounceChunkSize + 100)
	assert.Equal(t, 4, p.capacity())
}

func TestBouncePoolAcquireReleaseLIFO(t *testing.T) {
	p := newBouncePool(2 * bounceChunkSize)
	a := p.acquire()
	b := p.acquire()
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Nil(t, p.acquire(), "pool should be exhausted")

	p.release(b)
	c := p.acquire()
	assert.Equal(t, chunkAddr(b), chunkAddr(c), "LIFO release must hand the same chunk back out first")

	p.release(c)
	p.release(a)
}

// chunkAddr compares chunk identity by address of the first byte, since
// []byte equality via == isn't defined; len(a)==len(b)==chunkSize always.
func chunkAddr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}

func TestBouncePoolChunksAreDisjoint(t *testing.T) {
	p := newBouncePool(3 * bounceChunkSize)
	var chunks [][]byte
	for i := 0; i < 3; i++ {
		c := p.acquire()
		require.NotNil(t, c)
		chunks = append(chunks, c)
	}
	for i := range chunks {
		for j := range chunks {
			if i == j {
				continue
			}
			assert.NotEqual(t, chunkAddr(chunks[i]), chunkAddr(chunks[j]))
		}
	}
}
