package bpe

import (
	"os"

	"github.com/conneroisu/bpetok/pkg/bpe/internal/storage"
)

// Tokenizer encodes and decodes text against a trained BPE artifact
// attached from a byte buffer. All lookups read directly out of the
// attached buffer; nothing is deserialized into Go data structures ahead of
// time.
type Tokenizer struct {
	memory []byte

	idToSeq    storage.StringTable
	mergeTable storage.MappedMap[Pair, uint32]
	cache      storage.MappedMap[[]byte, []uint32]

	attached bool
}

// Load reads the artifact at path into memory and attaches it.
func (t *Tokenizer) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return t.Attach(data)
}

// Attach parses the three concatenated sections of data (string table,
// merge table, cache) without copying the underlying bytes; data must
// outlive the Tokenizer.
func (t *Tokenizer) Attach(data []byte) error {
	offset := 0

	n, err := t.idToSeq.Attach(data[offset:])
	if err != nil {
		return err
	}
	offset += n

	mergeTable := storage.NewMappedMap[Pair, uint32](
		storage.HashUint32Pair, storage.EqUint32Pair,
		storage.Uint32PairSerializer{}, storage.Uint32Serializer{},
	)
	n, err = mergeTable.Attach(data[offset:])
	if err != nil {
		return err
	}
	offset += n

	cache := storage.NewMappedMap[[]byte, []uint32](
		storage.HashBytes, storage.EqBytes,
		storage.BytesKeySerializer{}, storage.Uint32SliceSerializer{},
	)
	if _, err := cache.Attach(data[offset:]); err != nil {
		return err
	}

	t.memory = data
	t.mergeTable = *mergeTable
	t.cache = *cache
	t.attached = true
	return nil
}

// Encode tokenizes text into a sequence of token ids.
func (t *Tokenizer) Encode(text string) ([]uint32, error) {
	if !t.attached {
		return nil, ErrNotAttached
	}

	ids := make([]uint32, 0, len(text))
	for _, word := range SplitByWords(text) {
		if cached, ok := t.cache.Get([]byte(word)); ok {
			ids = append(ids, cached...)
			continue
		}
		ids = append(ids, t.encodeWord(word)...)
	}
	return ids, nil
}

// encodeWord greedily merges word byte-by-byte until no adjacent pair has a
// known merge id. At each step it applies the merge with the smallest id
// among all adjacent pairs that have one, breaking ties toward the
// leftmost position — the same rule the merge table's insertion order
// encodes implicitly, made explicit here since Go has no tuple ordering to
// lean on.
func (t *Tokenizer) encodeWord(word string) []uint32 {
	ids := make([]uint32, len(word))
	for i := 0; i < len(word); i++ {
		ids[i] = uint32(word[i])
	}

	for len(ids) >= 2 {
		bestID, bestIndex, found := uint32(0), 0, false
		for i := 1; i < len(ids); i++ {
			id, ok := t.mergeID(ids[i-1], ids[i])
			if !ok {
				continue
			}
			if !found || id < bestID {
				bestID, bestIndex, found = id, i-1, true
			}
		}
		if !found {
			break
		}

		ids[bestIndex] = bestID
		ids = append(ids[:bestIndex+1], ids[bestIndex+2:]...)
	}

	return ids
}

// mergeID looks up the merge id for the adjacent pair (first, second), if
// any.
func (t *Tokenizer) mergeID(first, second uint32) (uint32, bool) {
	return t.mergeTable.Get(Pair{A: first, B: second})
}

// Decode concatenates the token text of every id in ids, in order.
func (t *Tokenizer) Decode(ids []uint32) (string, error) {
	if !t.attached {
		return "", ErrNotAttached
	}

	var out []byte
	for _, id := range ids {
		text, err := t.idToSeq.Get(id)
		if err != nil {
			return "", err
		}
		out = append(out, text...)
	}
	return string(out), nil
}

// DecodeToken returns the token text for a single id.
func (t *Tokenizer) DecodeToken(id uint32) ([]byte, error) {
	if !t.attached {
		return nil, ErrNotAttached
	}
	return t.idToSeq.Get(id)
}
