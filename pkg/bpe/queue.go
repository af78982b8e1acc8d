package bpe

import (
	"container/heap"
	"sort"

	"github.com/conneroisu/bpetok/pkg/bpe/internal/storage"
)

// Pair is a pair of consecutive token ids, the key of the merge table.
type Pair = storage.Uint32Pair

// vocabEntry is one distinct word of the training corpus: its current token
// sequence (shrinking as merges apply), its source text, and how many times
// it occurred.
type vocabEntry struct {
	ids   []uint32
	text  string
	count uint64
}

// mergeCandidate tracks one candidate pair for merging. queueCount is the
// weight the candidate had when it was last pushed onto the heap; realCount
// is its true current weight. The two diverge whenever a merge elsewhere
// changes the candidate's weight without an accompanying heap fix-up —
// lazily reconciled on pop rather than eagerly on every update, since
// container/heap (like std::priority_queue) has no cheap decrease-key.
type mergeCandidate struct {
	pair       Pair
	queueCount uint64
	realCount  uint64
	// where holds the vocab indices where this pair currently occurs.
	where map[int]struct{}
}

// candidateHeap is a max-heap over candidate indices, ordered by queueCount.
type candidateHeap struct {
	indices    []int
	candidates *[]mergeCandidate
}

func (h candidateHeap) Len() int { return len(h.indices) }

func (h candidateHeap) Less(i, j int) bool {
	c := *h.candidates
	a, b := h.indices[i], h.indices[j]
	if c[a].queueCount != c[b].queueCount {
		return c[a].queueCount > c[b].queueCount
	}
	// Equal weights: the candidate created first wins.
	return a < b
}

func (h candidateHeap) Swap(i, j int) { h.indices[i], h.indices[j] = h.indices[j], h.indices[i] }

func (h *candidateHeap) Push(x any) { h.indices = append(h.indices, x.(int)) }

func (h *candidateHeap) Pop() any {
	old := h.indices
	n := len(old)
	item := old[n-1]
	h.indices = old[:n-1]
	return item
}

// mergeQueue finds, in weight order, the next pair of tokens to merge and
// applies a merge across every affected vocab entry.
type mergeQueue struct {
	vocab          []vocabEntry
	candidates     []mergeCandidate
	candidateIndex map[Pair]int
	heap           *candidateHeap
}

// newMergeQueue sorts vocab by descending count (heaviest words first, so
// ties among equal-weight candidates favor pairs discovered earlier) and
// seeds one candidate per adjacent token pair found in it.
func newMergeQueue(vocab []vocabEntry) *mergeQueue {
	sort.Slice(vocab, func(i, j int) bool { return vocab[i].count > vocab[j].count })

	q := &mergeQueue{
		vocab:          vocab,
		candidateIndex: make(map[Pair]int),
	}
	q.heap = &candidateHeap{candidates: &q.candidates}

	for vocabIndex := range vocab {
		ids := vocab[vocabIndex].ids
		for i := 1; i < len(ids); i++ {
			q.updateCandidate(Pair{A: ids[i-1], B: ids[i]}, int64(vocab[vocabIndex].count), vocabIndex)
		}
	}

	q.heap.indices = make([]int, len(q.candidates))
	for i := range q.candidates {
		q.heap.indices[i] = i
	}
	heap.Init(q.heap)

	return q
}

// popNonZero pops heap entries until it finds one whose candidate still has
// non-zero weight, discarding stale zero-weight tombstones along the way.
func (q *mergeQueue) popNonZero() (int, bool) {
	for q.heap.Len() > 0 {
		idx := heap.Pop(q.heap).(int)
		if q.candidates[idx].realCount != 0 {
			return idx, true
		}
	}
	return 0, false
}

// pop returns the best merge candidate pair by current weight, or false if
// no candidate with positive weight remains.
func (q *mergeQueue) pop() (Pair, bool) {
	for {
		idx, ok := q.popNonZero()
		if !ok {
			return Pair{}, false
		}

		c := &q.candidates[idx]
		if c.realCount == c.queueCount {
			return c.pair, true
		}

		// The popped entry is stale: its weight changed since it was
		// pushed. Refresh it and push it back for reconsideration.
		c.queueCount = c.realCount
		heap.Push(q.heap, idx)
	}
}

// disable permanently removes pair from consideration without applying a
// merge: it is popped off the heap already (the caller must have just
// popped it), so zeroing its weight here is enough to keep it from ever
// being returned by pop again.
func (q *mergeQueue) disable(pair Pair) {
	idx, ok := q.candidateIndex[pair]
	if !ok {
		return
	}
	q.candidates[idx].where = nil
	q.candidates[idx].realCount = 0
	q.candidates[idx].queueCount = 0
}

// merge applies the pair -> newID merge across every vocab entry where pair
// currently occurs, updating affected candidates' weights and enqueueing
// the newly formed neighboring pairs.
func (q *mergeQueue) merge(pair Pair, newID uint32) {
	index := q.candidateIndex[pair]
	newPairs := make(map[Pair]struct{})

	for vocabIndex := range q.candidates[index].where {
		entry := &q.vocab[vocabIndex]
		ids := entry.ids
		count := int64(entry.count)

		newIDs := make([]uint32, 0, len(ids))
		i := 0
		for i < len(ids) {
			if i+1 < len(ids) && ids[i] == pair.A && ids[i+1] == pair.B {
				if i > 0 {
					leftPair := Pair{A: ids[i-1], B: ids[i]}
					q.updateCandidateRealCount(leftPair, -count)

					newLeftPair := Pair{A: newIDs[len(newIDs)-1], B: newID}
					q.updateCandidate(newLeftPair, count, vocabIndex)
					newPairs[newLeftPair] = struct{}{}
				}
				if i+2 < len(ids) {
					rightPair := Pair{A: ids[i+1], B: ids[i+2]}
					q.updateCandidateRealCount(rightPair, -count)

					newRightPair := Pair{A: newID, B: ids[i+2]}
					q.updateCandidate(newRightPair, count, vocabIndex)
					newPairs[newRightPair] = struct{}{}
				}
				newIDs = append(newIDs, newID)
				i += 2
			} else {
				newIDs = append(newIDs, ids[i])
				i++
			}
		}
		entry.ids = newIDs
	}

	q.candidates[index].where = nil
	q.candidates[index].realCount = 0
	q.candidates[index].queueCount = 0

	for newPair := range newPairs {
		heap.Push(q.heap, q.candidateIndex[newPair])
	}
}

// updateCandidate folds countDelta into the candidate for pair (creating it
// if this is the first time pair has been seen) and records whereIndex as
// one of the vocab entries it occurs in. New candidates are not pushed onto
// the heap here; the caller pushes once all of a merge's fallout has been
// folded in.
func (q *mergeQueue) updateCandidate(pair Pair, countDelta int64, whereIndex int) {
	idx, ok := q.candidateIndex[pair]
	if !ok {
		idx = len(q.candidates)
		q.candidateIndex[pair] = idx
		q.candidates = append(q.candidates, mergeCandidate{
			pair:       pair,
			queueCount: uint64(countDelta),
			realCount:  uint64(countDelta),
			where:      map[int]struct{}{whereIndex: {}},
		})
		return
	}

	c := &q.candidates[idx]
	c.queueCount = uint64(int64(c.queueCount) + countDelta)
	c.realCount = uint64(int64(c.realCount) + countDelta)
	if c.where == nil {
		c.where = map[int]struct{}{}
	}
	c.where[whereIndex] = struct{}{}
}

// updateCandidateRealCount adjusts only the live weight of an
// already-registered candidate, leaving its heap-side queueCount untouched
// until it is next popped.
func (q *mergeQueue) updateCandidateRealCount(pair Pair, countDelta int64) {
	idx := q.candidateIndex[pair]
	if q.candidates[idx].realCount == 0 {
		// Merged or disabled candidates stay at zero weight.
		return
	}
	q.candidates[idx].realCount = uint64(int64(q.candidates[idx].realCount) + countDelta)
}
