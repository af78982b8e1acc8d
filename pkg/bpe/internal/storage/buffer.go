// Package storage implements the mapped, zero-copy binary artifact
// primitives the tokenizer attaches to at inference time: a typed
// byte-buffer cursor, an offset-indexed short-string table, and a
// hash-bucketed key/value map.
package storage

import "encoding/binary"

// Reader is a cursor over a byte slice, reading little-endian fixed-width
// integers and length-prefixed short strings without copying.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current cursor offset into the underlying buffer.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// ReadU8 reads one byte and advances the cursor.
func (r *Reader) ReadU8() uint8 {
	v := r.data[r.pos]
	r.pos++
	return v
}

// ReadU16 reads a little-endian uint16 and advances the cursor.
func (r *Reader) ReadU16() uint16 {
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

// ReadU32 reads a little-endian uint32 and advances the cursor.
func (r *Reader) ReadU32() uint32 {
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

// SkipU16 advances the cursor past one uint16 without reading it.
func (r *Reader) SkipU16() { r.pos += 2 }

// SkipU32 advances the cursor past one uint32 without reading it.
func (r *Reader) SkipU32() { r.pos += 4 }

// ReadBytes returns a borrowed view of the next n bytes and advances the cursor.
func (r *Reader) ReadBytes(n int) []byte {
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// SkipBytes advances the cursor by n bytes without reading them.
func (r *Reader) SkipBytes(n int) { r.pos += n }

// ReadShortString reads a 1-byte length prefix followed by that many data
// bytes, returning a borrowed view (no allocation).
func (r *Reader) ReadShortString() []byte {
	n := int(r.ReadU8())
	return r.ReadBytes(n)
}

// SkipShortString advances the cursor past one length-prefixed short string.
func (r *Reader) SkipShortString() {
	n := int(r.ReadU8())
	r.SkipBytes(n)
}

// ReadUint32Slice reads a 4-byte length followed by that many little-endian
// uint32 elements.
func (r *Reader) ReadUint32Slice() []uint32 {
	n := int(r.ReadU32())
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.ReadU32()
	}
	return out
}

// SkipUint32Slice advances the cursor past one length-prefixed uint32 vector.
func (r *Reader) SkipUint32Slice() {
	n := int(r.ReadU32())
	r.SkipBytes(n * 4)
}

// Writer accumulates little-endian fixed-width integers and length-prefixed
// short strings into a growable byte slice.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteU16 appends a little-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32 appends a little-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutU32 overwrites the 4 bytes at offset with a little-endian uint32. Used
// to patch a header field (e.g. end_pos) after the body has been written.
func (w *Writer) PutU32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[offset:offset+4], v)
}

// WriteBytes appends raw bytes with no length prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteShortString appends a 1-byte length prefix followed by s. Returns
// ErrTokenTooLong if s is longer than 255 bytes.
func (w *Writer) WriteShortString(s []byte) error {
	if len(s) > 0xFF {
		return ErrTokenTooLong
	}
	w.WriteU8(uint8(len(s)))
	w.WriteBytes(s)
	return nil
}

// WriteUint32Slice appends a 4-byte length followed by the elements of v as
// little-endian uint32s.
func (w *Writer) WriteUint32Slice(v []uint32) {
	w.WriteU32(uint32(len(v)))
	for _, x := range v {
		w.WriteU32(x)
	}
}
