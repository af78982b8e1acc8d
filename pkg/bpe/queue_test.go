package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeQueuePopsHighestWeightFirst(t *testing.T) {
	vocab := []vocabEntry{
		{ids: []uint32{1, 2}, count: 10},
		{ids: []uint32{3, 4}, count: 3},
	}
	q := newMergeQueue(vocab)

	pair, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, Pair{A: 1, B: 2}, pair)
}

func TestMergeQueueMergeNonOverlapping(t *testing.T) {
	vocab := []vocabEntry{
		{ids: []uint32{1, 2}, count: 10},
		{ids: []uint32{3, 4}, count: 3},
	}
	q := newMergeQueue(vocab)

	pair, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, Pair{A: 1, B: 2}, pair)
	q.merge(pair, 256)

	assert.Equal(t, []uint32{256}, q.vocab[0].ids)

	next, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, Pair{A: 3, B: 4}, next)
	q.merge(next, 257)
	assert.Equal(t, []uint32{257}, q.vocab[1].ids)

	_, ok = q.pop()
	assert.False(t, ok)
}

func TestMergeQueueMergeSelfOverlapping(t *testing.T) {
	// A word whose own token sequence repeats the candidate pair: "aaa"
	// tokenized as three copies of the same byte.
	vocab := []vocabEntry{
		{ids: []uint32{1, 1, 1}, count: 5},
	}
	q := newMergeQueue(vocab)

	pair, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, Pair{A: 1, B: 1}, pair)
	q.merge(pair, 256)

	assert.Equal(t, []uint32{256, 1}, q.vocab[0].ids)

	next, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, Pair{A: 256, B: 1}, next)
}

func TestMergeQueueEmptyVocab(t *testing.T) {
	q := newMergeQueue(nil)
	_, ok := q.pop()
	assert.False(t, ok)
}
