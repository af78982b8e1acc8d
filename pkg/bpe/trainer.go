package bpe

import (
	"fmt"

	"github.com/conneroisu/bpetok/pkg/bpe/internal/storage"
)

// byteCount is the size of the raw single-byte alphabet every trained
// vocabulary starts from.
const byteCount = 256

// maxTokenTextBytes is the longest token text the mapped artifact's
// short-string encoding can hold. A merge whose result would exceed this is
// never applied; see DESIGN.md.
const maxTokenTextBytes = 0xFF

// Config controls a TokenizerTrainer.
type Config struct {
	// Size is the target vocabulary size, raw bytes plus merges. Must be
	// at least byteCount.
	Size int
	// MinCount is the minimum number of corpus occurrences a word needs
	// to be considered during training.
	MinCount uint64
	// MaxWorker bounds the goroutines used for corpus ingestion.
	MaxWorker int
	// CacheSize is how many of the most frequent words get their token
	// sequence precomputed into the saved artifact's cache. 0 disables
	// the cache.
	CacheSize int
}

// DefaultConfig returns a Config equivalent to training a raw byte-level
// vocabulary with no merges.
func DefaultConfig() Config {
	return Config{Size: byteCount, MinCount: 1, MaxWorker: 1, CacheSize: 0}
}

// TokenizerTrainer builds a BPE vocabulary from one or more ingested
// corpora. TrainOnCorpus/TrainOnText may be called any number of times
// before BuildBPE; BuildBPE runs once.
type TokenizerTrainer struct {
	config Config

	wordVocab WordVocab
	vocab     []vocabEntry

	mergeTable map[Pair]uint32
	idToSeq    [][]byte
	cache      map[string][]uint32

	built bool
}

// NewTokenizerTrainer validates config and returns a ready-to-use trainer.
func NewTokenizerTrainer(config Config) (*TokenizerTrainer, error) {
	if config.Size < byteCount {
		return nil, ErrVocabTooSmall
	}
	if config.MaxWorker < 1 {
		return nil, ErrInvalidMaxWorker
	}
	return &TokenizerTrainer{
		config:    config,
		wordVocab: make(WordVocab),
	}, nil
}

// TrainOnCorpus folds the words of the file at path into the trainer's
// running vocabulary. symbolsCount caps ingestion to that many bytes from
// the start of the file; 0 means the whole file.
func (t *TokenizerTrainer) TrainOnCorpus(path string, symbolsCount int64) error {
	return BuildVocabularyOnCorpus(path, symbolsCount, t.config.MaxWorker, t.wordVocab)
}

// TrainOnText folds the words of text into the trainer's running
// vocabulary.
func (t *TokenizerTrainer) TrainOnText(text string) {
	BuildVocabularyOnText(text, t.wordVocab)
}

// BuildBPE runs the merge loop over everything ingested so far and builds
// the optional frequent-word cache. It may be called only once per trainer.
func (t *TokenizerTrainer) BuildBPE() error {
	if t.built {
		return ErrAlreadyBuilt
	}
	t.built = true

	t.initIDToSeq()
	t.createVocabFromWordVocab()
	t.trainBPE()
	t.buildCache()
	return nil
}

// MergeTable returns the trained pair -> new-id merge table. Valid after
// BuildBPE.
func (t *TokenizerTrainer) MergeTable() map[Pair]uint32 { return t.mergeTable }

// IDToSeq returns the trained id -> token-text table. Valid after BuildBPE.
func (t *TokenizerTrainer) IDToSeq() [][]byte { return t.idToSeq }

// TokenSequenceLengths returns, for every vocabulary word with at least
// MinCount occurrences,
// how many tokens its final merged id sequence compressed down to. Valid
// after BuildBPE.
func (t *TokenizerTrainer) TokenSequenceLengths() []int {
	lengths := make([]int, len(t.vocab))
	for i, entry := range t.vocab {
		lengths[i] = len(entry.ids)
	}
	return lengths
}

func (t *TokenizerTrainer) initIDToSeq() {
	t.idToSeq = make([][]byte, byteCount)
	for i := 0; i < byteCount; i++ {
		t.idToSeq[i] = []byte{byte(i)}
	}
}

// createVocabFromWordVocab converts the word -> count map accumulated by
// ingestion into the per-entry token-id sequences the merge queue operates
// on, dropping words below MinCount.
func (t *TokenizerTrainer) createVocabFromWordVocab() {
	t.vocab = make([]vocabEntry, 0, len(t.wordVocab))
	for word, count := range t.wordVocab {
		if count < t.config.MinCount {
			continue
		}
		ids := make([]uint32, len(word))
		for i := 0; i < len(word); i++ {
			ids[i] = uint32(word[i])
		}
		t.vocab = append(t.vocab, vocabEntry{ids: ids, text: word, count: count})
	}
}

// trainBPE runs the merge loop: repeatedly pop the heaviest candidate pair
// and fold it into a new token id, until the target vocabulary size is
// reached or no candidate remains.
//
// A candidate whose merge would produce a token text longer than
// maxTokenTextBytes is permanently disabled instead of applied, and does
// not count against the merge budget; see DESIGN.md for why this departs
// from the unbounded std::string token text of the reference trainer.
func (t *TokenizerTrainer) trainBPE() {
	numMerges := t.config.Size - byteCount
	t.mergeTable = make(map[Pair]uint32, numMerges)

	if len(t.vocab) == 0 {
		return
	}

	queue := newMergeQueue(t.vocab)
	t.vocab = queue.vocab

	for merged := 0; merged < numMerges; {
		pair, ok := queue.pop()
		if !ok {
			break
		}

		newSeq := make([]byte, 0, len(t.idToSeq[pair.A])+len(t.idToSeq[pair.B]))
		newSeq = append(newSeq, t.idToSeq[pair.A]...)
		newSeq = append(newSeq, t.idToSeq[pair.B]...)

		if len(newSeq) > maxTokenTextBytes {
			queue.disable(pair)
			continue
		}

		newID := uint32(len(t.idToSeq))
		t.mergeTable[pair] = newID
		t.idToSeq = append(t.idToSeq, newSeq)

		queue.merge(pair, newID)
		merged++
	}
}

// buildCache precomputes the token sequence for the CacheSize most frequent
// words, so a Tokenizer can skip the merge search for them entirely.
func (t *TokenizerTrainer) buildCache() {
	if t.config.CacheSize == 0 {
		return
	}

	cacheSize := t.config.CacheSize
	if cacheSize > len(t.vocab) {
		cacheSize = len(t.vocab)
	}

	t.cache = make(map[string][]uint32, cacheSize)
	for i := 0; i < cacheSize; i++ {
		entry := t.vocab[i]
		t.cache[entry.text] = entry.ids
	}
}

// Save serializes the trained tokenizer into the mapped artifact layout: a
// string table of token texts, followed by the pair merge table, followed
// by the frequent-word cache.
func (t *TokenizerTrainer) Save() ([]byte, error) {
	strTable, err := storage.WriteStringTable(t.idToSeq)
	if err != nil {
		return nil, err
	}

	mergeEntries := make([]storage.Entry[Pair, uint32], 0, len(t.mergeTable))
	for pair, id := range t.mergeTable {
		mergeEntries = append(mergeEntries, storage.Entry[Pair, uint32]{Key: pair, Value: id})
	}
	mergeBuf, err := storage.WriteMappedMap(mergeEntries, storage.HashUint32Pair, storage.Uint32PairSerializer{}, storage.Uint32Serializer{})
	if err != nil {
		return nil, fmt.Errorf("serialize merge table: %w", err)
	}

	cacheEntries := make([]storage.Entry[[]byte, []uint32], 0, len(t.cache))
	for text, ids := range t.cache {
		cacheEntries = append(cacheEntries, storage.Entry[[]byte, []uint32]{Key: []byte(text), Value: ids})
	}
	cacheBuf, err := storage.WriteMappedMap(cacheEntries, storage.HashBytes, storage.BytesKeySerializer{}, storage.Uint32SliceSerializer{})
	if err != nil {
		return nil, fmt.Errorf("serialize cache: %w", err)
	}

	buf := make([]byte, 0, len(strTable)+len(mergeBuf)+len(cacheBuf))
	buf = append(buf, strTable...)
	buf = append(buf, mergeBuf...)
	buf = append(buf, cacheBuf...)
	return buf, nil
}
