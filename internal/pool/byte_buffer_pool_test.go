package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	require.Zero(t, bb.Len())
	require.Equal(t, 16, bb.Cap())

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("12345678"))

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte("12345678"), bb.Bytes())
}

func TestPoolDiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	small := p.Get()
	_, _ = small.Write(make([]byte, 32))
	p.Put(small)

	big := p.Get()
	_, _ = big.Write(make([]byte, 1024))
	p.Put(big) // above threshold, dropped

	next := p.Get()
	require.LessOrEqual(t, next.Cap(), 64)
	require.Zero(t, next.Len())

	p.Put(nil) // tolerated
}

func TestPayloadBufferHelpers(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())
	_, _ = bb.Write([]byte("payload"))
	PutPayloadBuffer(bb)
}
