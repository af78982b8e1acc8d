package storage

import (
	"bytes"
	"hash/fnv"
)

// Uint32Pair is an ordered pair of token ids, used as the merge-table key.
type Uint32Pair struct {
	A, B uint32
}

// HashUint32Pair packs the pair into a single hash the way the original
// implementation does: a | (b << 32).
func HashUint32Pair(p Uint32Pair) uint64 {
	return uint64(p.A) | (uint64(p.B) << 32)
}

// EqUint32Pair compares two pairs for equality.
func EqUint32Pair(a, b Uint32Pair) bool { return a == b }

// Uint32PairSerializer serializes a Uint32Pair as two little-endian uint32s.
type Uint32PairSerializer struct{}

func (Uint32PairSerializer) Size(Uint32Pair) int { return 8 }
func (Uint32PairSerializer) Write(w *Writer, v Uint32Pair) error {
	w.WriteU32(v.A)
	w.WriteU32(v.B)
	return nil
}
func (Uint32PairSerializer) Read(r *Reader) Uint32Pair {
	a := r.ReadU32()
	b := r.ReadU32()
	return Uint32Pair{A: a, B: b}
}
func (Uint32PairSerializer) Skip(r *Reader) {
	r.SkipU32()
	r.SkipU32()
}

// Uint32Serializer serializes a single little-endian uint32.
type Uint32Serializer struct{}

func (Uint32Serializer) Size(uint32) int          { return 4 }
func (Uint32Serializer) Write(w *Writer, v uint32) error {
	w.WriteU32(v)
	return nil
}
func (Uint32Serializer) Read(r *Reader) uint32 { return r.ReadU32() }
func (Uint32Serializer) Skip(r *Reader)        { r.SkipU32() }

// BytesKeySerializer serializes a byte string as a length-prefixed short
// string (<=255 bytes). Reads return a borrowed view into the attached
// buffer. Write returns ErrTokenTooLong for a key longer than the
// short-string limit instead of writing a truncated or corrupt entry.
type BytesKeySerializer struct{}

func (BytesKeySerializer) Size(v []byte) int           { return 1 + len(v) }
func (BytesKeySerializer) Write(w *Writer, v []byte) error {
	return w.WriteShortString(v)
}
func (BytesKeySerializer) Read(r *Reader) []byte { return r.ReadShortString() }
func (BytesKeySerializer) Skip(r *Reader)        { r.SkipShortString() }

// HashBytes hashes a byte string with FNV-1a. The hash must be stable
// across processes (it determines bucket placement at write time and must
// reproduce the same bucket at lookup time in a later process), so a
// randomized hash (e.g. hash/maphash with a fresh seed) cannot be used here.
func HashBytes(v []byte) uint64 {
	h := fnv.New64a()
	h.Write(v)
	return h.Sum64()
}

// EqBytes compares two byte strings for equality.
func EqBytes(a, b []byte) bool { return bytes.Equal(a, b) }

// Uint32SliceSerializer serializes a []uint32 as a 4-byte length followed by
// that many little-endian uint32 elements.
type Uint32SliceSerializer struct{}

func (Uint32SliceSerializer) Size(v []uint32) int { return 4 + 4*len(v) }
func (Uint32SliceSerializer) Write(w *Writer, v []uint32) error {
	w.WriteUint32Slice(v)
	return nil
}
func (Uint32SliceSerializer) Read(r *Reader) []uint32 { return r.ReadUint32Slice() }
func (Uint32SliceSerializer) Skip(r *Reader)          { r.SkipUint32Slice() }
