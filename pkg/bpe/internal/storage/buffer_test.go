package storage

import "testing"

import "github.com/stretchr/testify/assert"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(0xAB)
	w.WriteU16(0x1234)
	w.WriteU32(0xDEADBEEF)
	err := w.WriteShortString([]byte("hello"))
	assert.NoError(t, err)
	w.WriteUint32Slice([]uint32{1, 2, 3})

	r := NewReader(w.Bytes())
	assert.Equal(t, uint8(0xAB), r.ReadU8())
	assert.Equal(t, uint16(0x1234), r.ReadU16())
	assert.Equal(t, uint32(0xDEADBEEF), r.ReadU32())
	assert.Equal(t, []byte("hello"), r.ReadShortString())
	assert.Equal(t, []uint32{1, 2, 3}, r.ReadUint32Slice())
	assert.Equal(t, 0, r.Remaining())
}

func TestWriterShortStringTooLong(t *testing.T) {
	w := NewWriter()
	long := make([]byte, 256)
	err := w.WriteShortString(long)
	assert.ErrorIs(t, err, ErrTokenTooLong)
}

func TestReaderSkip(t *testing.T) {
	w := NewWriter()
	w.WriteU32(1)
	_ = w.WriteShortString([]byte("ab"))
	w.WriteU32(2)
	w.WriteUint32Slice([]uint32{9, 9})
	w.WriteU32(3)

	r := NewReader(w.Bytes())
	r.SkipU32()
	r.SkipShortString()
	r.SkipU32()
	r.SkipUint32Slice()
	assert.Equal(t, uint32(3), r.ReadU32())
}

func TestPutU32Patches(t *testing.T) {
	w := NewWriter()
	w.WriteU32(0)
	w.WriteU32(0)
	w.PutU32(0, 42)

	r := NewReader(w.Bytes())
	assert.Equal(t, uint32(42), r.ReadU32())
	assert.Equal(t, uint32(0), r.ReadU32())
}
