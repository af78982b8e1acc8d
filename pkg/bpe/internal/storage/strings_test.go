package storage

import "testing"

import "github.com/stretchr/testify/assert"

func TestStringTableRoundTrip(t *testing.T) {
	data := [][]byte{
		[]byte("a"),
		[]byte("hello"),
		[]byte(""),
		[]byte("world!"),
	}
	buf, err := WriteStringTable(data)
	assert.NoError(t, err)

	var tbl StringTable
	n, err := tbl.Attach(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, len(data), tbl.Len())

	for i, want := range data {
		got, err := tbl.Get(uint32(i))
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestStringTableUnknownIndex(t *testing.T) {
	buf, err := WriteStringTable([][]byte{[]byte("x")})
	assert.NoError(t, err)

	var tbl StringTable
	_, err = tbl.Attach(buf)
	assert.NoError(t, err)

	_, err = tbl.Get(5)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestStringTableRejectsOversizeEntry(t *testing.T) {
	_, err := WriteStringTable([][]byte{make([]byte, 256)})
	assert.ErrorIs(t, err, ErrTokenTooLong)
}

func TestStringTableConcatenation(t *testing.T) {
	// The artifact format concatenates multiple tables back to back; a
	// table's Attach must stop exactly at its own buffer_size so the next
	// table can attach starting right after it.
	first, err := WriteStringTable([][]byte{[]byte("ab")})
	assert.NoError(t, err)
	second, err := WriteStringTable([][]byte{[]byte("cd"), []byte("ef")})
	assert.NoError(t, err)

	combined := append(append([]byte{}, first...), second...)

	var tbl1 StringTable
	n, err := tbl1.Attach(combined)
	assert.NoError(t, err)
	assert.Equal(t, len(first), n)

	var tbl2 StringTable
	n2, err := tbl2.Attach(combined[n:])
	assert.NoError(t, err)
	assert.Equal(t, len(second), n2)

	v, err := tbl2.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("ef"), v)
}

func TestStringTableAttachTooShort(t *testing.T) {
	var tbl StringTable
	_, err := tbl.Attach([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorrupt)
}
