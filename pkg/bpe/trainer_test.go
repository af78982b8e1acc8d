package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenizerTrainerRejectsSmallSize(t *testing.T) {
	_, err := NewTokenizerTrainer(Config{Size: 100})
	assert.ErrorIs(t, err, ErrVocabTooSmall)
}

func TestTokenizerTrainerBuildBPEMergesFrequentPair(t *testing.T) {
	trainer, err := NewTokenizerTrainer(Config{Size: 257, MinCount: 1, MaxWorker: 1})
	require.NoError(t, err)

	trainer.TrainOnText("ab ab ab ab ab")
	require.NoError(t, trainer.BuildBPE())

	mergeTable := trainer.MergeTable()
	require.Len(t, mergeTable, 1)

	newID, ok := mergeTable[Pair{A: uint32('a'), B: uint32('b')}]
	assert.True(t, ok)
	assert.Equal(t, uint32(256), newID)

	idToSeq := trainer.IDToSeq()
	assert.Equal(t, []byte("ab"), idToSeq[256])
}

func TestTokenizerTrainerBuildBPEIsOnceOnly(t *testing.T) {
	trainer, err := NewTokenizerTrainer(DefaultConfig())
	require.NoError(t, err)

	trainer.TrainOnText("hello")
	require.NoError(t, trainer.BuildBPE())
	assert.ErrorIs(t, trainer.BuildBPE(), ErrAlreadyBuilt)
}

func TestTokenizerTrainerEmptyCorpusProducesNoMerges(t *testing.T) {
	trainer, err := NewTokenizerTrainer(Config{Size: 300, MinCount: 1, MaxWorker: 1})
	require.NoError(t, err)

	require.NoError(t, trainer.BuildBPE())
	assert.Empty(t, trainer.MergeTable())
	assert.Len(t, trainer.IDToSeq(), byteCount)
}

func TestTokenizerTrainerMinCountDropsRareWords(t *testing.T) {
	trainer, err := NewTokenizerTrainer(Config{Size: 300, MinCount: 3, MaxWorker: 1})
	require.NoError(t, err)

	trainer.TrainOnText("rare common common common")
	require.NoError(t, trainer.BuildBPE())

	// "rare" occurs once (below MinCount) and contributes no candidate
	// pairs; "common" occurs three times and should merge at least once.
	assert.NotEmpty(t, trainer.MergeTable())
}

func TestTokenizerTrainerSaveProducesNonEmptyArtifact(t *testing.T) {
	trainer, err := NewTokenizerTrainer(Config{Size: 260, MinCount: 1, MaxWorker: 1, CacheSize: 10})
	require.NoError(t, err)

	trainer.TrainOnText("hello world hello world hello")
	require.NoError(t, trainer.BuildBPE())

	buf, err := trainer.Save()
	require.NoError(t, err)
	assert.NotEmpty(t, buf)
}
