package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappedMapUint32PairRoundTrip(t *testing.T) {
	entries := []Entry[Uint32Pair, uint32]{
		{Key: Uint32Pair{A: 1, B: 2}, Value: 100},
		{Key: Uint32Pair{A: 3, B: 4}, Value: 200},
		{Key: Uint32Pair{A: 1, B: 5}, Value: 300},
	}
	buf, err := WriteMappedMap(entries, HashUint32Pair, Uint32PairSerializer{}, Uint32Serializer{})
	assert.NoError(t, err)

	m := NewMappedMap[Uint32Pair, uint32](HashUint32Pair, EqUint32Pair, Uint32PairSerializer{}, Uint32Serializer{})
	n, err := m.Attach(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, len(entries), m.Len())

	for _, e := range entries {
		assert.True(t, m.Contains(e.Key))
		v, ok := m.Get(e.Key)
		assert.True(t, ok)
		assert.Equal(t, e.Value, v)
	}

	assert.False(t, m.Contains(Uint32Pair{A: 99, B: 99}))
	_, ok := m.Get(Uint32Pair{A: 99, B: 99})
	assert.False(t, ok)
}

func TestMappedMapBytesToUint32Slice(t *testing.T) {
	entries := []Entry[[]byte, []uint32]{
		{Key: []byte("hello"), Value: []uint32{1, 2, 3}},
		{Key: []byte("world"), Value: []uint32{4}},
		{Key: []byte(""), Value: nil},
	}
	buf, err := WriteMappedMap(entries, HashBytes, BytesKeySerializer{}, Uint32SliceSerializer{})
	assert.NoError(t, err)

	m := NewMappedMap[[]byte, []uint32](HashBytes, EqBytes, BytesKeySerializer{}, Uint32SliceSerializer{})
	_, err = m.Attach(buf)
	assert.NoError(t, err)

	v, ok := m.Get([]byte("hello"))
	assert.True(t, ok)
	assert.Equal(t, []uint32{1, 2, 3}, v)

	v, ok = m.Get([]byte("world"))
	assert.True(t, ok)
	assert.Equal(t, []uint32{4}, v)

	assert.True(t, m.Contains([]byte("")))
	assert.False(t, m.Contains([]byte("missing")))
}

func TestMappedMapEmpty(t *testing.T) {
	buf, err := WriteMappedMap([]Entry[Uint32Pair, uint32]{}, HashUint32Pair, Uint32PairSerializer{}, Uint32Serializer{})
	assert.NoError(t, err)

	m := NewMappedMap[Uint32Pair, uint32](HashUint32Pair, EqUint32Pair, Uint32PairSerializer{}, Uint32Serializer{})
	_, err = m.Attach(buf)
	assert.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Contains(Uint32Pair{A: 1, B: 2}))
}

func TestMappedMapRejectsOversizeKey(t *testing.T) {
	oversize := make([]byte, 256)
	entries := []Entry[[]byte, []uint32]{
		{Key: oversize, Value: []uint32{1}},
	}
	_, err := WriteMappedMap(entries, HashBytes, BytesKeySerializer{}, Uint32SliceSerializer{})
	assert.ErrorIs(t, err, ErrTokenTooLong)
}

func TestMappedMapAttachTooShort(t *testing.T) {
	m := NewMappedMap[Uint32Pair, uint32](HashUint32Pair, EqUint32Pair, Uint32PairSerializer{}, Uint32Serializer{})
	_, err := m.Attach([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestChooseHashTableSizeNeverZero(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 10, 100} {
		hashes := make([]uint64, n)
		for i := range hashes {
			hashes[i] = uint64(i)
		}
		size := chooseHashTableSize(n, hashes)
		assert.Greater(t, size, 0, "n=%d", n)
	}
}
