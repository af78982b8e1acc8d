package storage

import "encoding/binary"

// StringTable is an offset-indexed array of short (<=255-byte) strings laid
// out over an attached byte buffer:
//
//	buffer_size   u32
//	element_count u32
//	offsets       u32 x element_count   (relative to the strings region)
//	strings       packed (1-byte length, data) records
//
// Every accessor returns a view borrowed from the attached buffer; nothing
// is copied.
type StringTable struct {
	count   uint32
	offsets []byte
	strings []byte
}

const stringTableHeaderSize = 8

// Attach reads the header from data and records borrowed views over the
// offsets and strings regions. It returns the number of bytes this table
// occupies in data (the buffer_size field) so the caller can advance past
// it to the next artifact.
func (t *StringTable) Attach(data []byte) (int, error) {
	if len(data) < stringTableHeaderSize {
		return 0, ErrCorrupt
	}
	r := NewReader(data)
	bufferSize := r.ReadU32()
	count := r.ReadU32()
	if bufferSize < stringTableHeaderSize || int(bufferSize) > len(data) {
		return 0, ErrCorrupt
	}

	offsetsStart := stringTableHeaderSize
	offsetsLen := int(count) * 4
	stringsStart := offsetsStart + offsetsLen
	if stringsStart > int(bufferSize) {
		return 0, ErrCorrupt
	}

	t.count = count
	t.offsets = data[offsetsStart:stringsStart]
	t.strings = data[stringsStart:bufferSize]
	return int(bufferSize), nil
}

// Len returns the number of strings in the table.
func (t *StringTable) Len() int { return int(t.count) }

// Get returns a borrowed view of the string at index, or ErrUnknownToken /
// ErrCorrupt if index is out of range or the layout is inconsistent.
func (t *StringTable) Get(index uint32) ([]byte, error) {
	if index >= t.count {
		return nil, ErrUnknownToken
	}
	off := binary.LittleEndian.Uint32(t.offsets[index*4:])
	if int(off) >= len(t.strings) {
		return nil, ErrCorrupt
	}
	r := NewReader(t.strings[off:])
	n := int(r.ReadU8())
	if n > r.Remaining() {
		return nil, ErrCorrupt
	}
	return r.ReadBytes(n), nil
}

// WriteStringTable serializes data (indexed by position, i.e. data[i] is
// the byte string for id i) into the StringTable on-disk layout.
func WriteStringTable(data [][]byte) ([]byte, error) {
	offsets := make([]uint32, len(data))
	var stringsSize uint32
	for i, item := range data {
		if len(item) > 0xFF {
			return nil, ErrTokenTooLong
		}
		offsets[i] = stringsSize
		stringsSize += uint32(1 + len(item))
	}

	bufferSize := uint32(stringTableHeaderSize) + uint32(len(data))*4 + stringsSize

	w := NewWriter()
	w.WriteU32(bufferSize)
	w.WriteU32(uint32(len(data)))
	for _, off := range offsets {
		w.WriteU32(off)
	}
	for _, item := range data {
		// error already checked above; WriteShortString cannot fail here.
		_ = w.WriteShortString(item)
	}
	return w.Bytes(), nil
}
