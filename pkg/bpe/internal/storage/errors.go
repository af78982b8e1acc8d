package storage

import "errors"

// ErrCorrupt is returned when an attached artifact fails a header or
// offset self-consistency check.
var ErrCorrupt = errors.New("storage: corrupt artifact")

// ErrTokenTooLong is returned when a string-table or map entry would
// exceed the 255-byte short-string limit.
var ErrTokenTooLong = errors.New("storage: entry exceeds 255 bytes")

// ErrUnknownToken is returned when a string-table lookup index is outside
// the table's element range.
var ErrUnknownToken = errors.New("storage: unknown token id")
