package bpe

import (
	"errors"

	"github.com/conneroisu/bpetok/pkg/bpe/internal/storage"
)

// ErrCorrupt is returned when an attached artifact fails a structural
// consistency check.
var ErrCorrupt = storage.ErrCorrupt

// ErrUnknownToken is returned by DecodeToken when id falls outside the
// attached token-sequence table.
var ErrUnknownToken = storage.ErrUnknownToken

// ErrNotAttached is returned by Tokenizer methods called before Attach or
// Load has succeeded.
var ErrNotAttached = errors.New("bpe: tokenizer has no attached artifact")

// ErrAlreadyBuilt is returned by BuildBPE when called more than once on the
// same trainer.
var ErrAlreadyBuilt = errors.New("bpe: trainer has already built a vocabulary")

// ErrVocabTooSmall is returned by NewTokenizerTrainer when Config.Size is
// below byteCount. The reference implementation enforces this same
// precondition with assert(config.size >= byte_count); see DESIGN.md for why
// this and the other Config preconditions are returned errors here instead.
var ErrVocabTooSmall = errors.New("bpe: vocabulary size must be at least 256")

// ErrInvalidMaxWorker is returned by NewTokenizerTrainer when Config.MaxWorker
// is below 1. The reference implementation enforces this same precondition
// with assert(config.max_worker >= 1).
var ErrInvalidMaxWorker = errors.New("bpe: max worker must be at least 1")
