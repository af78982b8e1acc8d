package bpe

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// singleThreadFileSize is the file-size threshold below which ingestion
// always runs on a single goroutine regardless of the configured worker
// count: spinning up workers for a tiny corpus costs more than it saves.
const singleThreadFileSize = 16384

// WordVocab counts word occurrences across one or more ingested corpora.
// Create it with make; a nil WordVocab cannot be written to.
type WordVocab map[string]uint64

// addWord increments the count for word, creating the entry if absent.
func (v WordVocab) addWord(word string) {
	if word == "" {
		return
	}
	v[word]++
}

// addText splits text into words and folds their counts into v.
func (v WordVocab) addText(text string) {
	for _, word := range SplitByWords(text) {
		v.addWord(word)
	}
}

// merge folds other's counts into v, summing counts for shared words.
func (v WordVocab) merge(other WordVocab) {
	for word, count := range other {
		v[word] += count
	}
}

// ingestRange reads newline-delimited text from r and folds each line's
// words into vocab, stopping at EOF or once a completed line brings the
// byte count to end. Every caller passes a reader bounded to exactly the
// range, so a line straddling the end of the range is cut at that byte and
// its text past the range is not read.
func ingestRange(r io.Reader, end int64, vocab WordVocab) error {
	br := bufio.NewReader(r)
	var pos int64
	for {
		line, err := br.ReadString('\n')
		pos += int64(len(line))
		vocab.addText(strings.TrimSuffix(line, "\n"))

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if pos >= end {
			return nil
		}
	}
}

// BuildVocabularyOnText folds the words of text into vocab. Corresponds to
// TokenizerTrainer.train_on_text: callable repeatedly, counts accumulate.
func BuildVocabularyOnText(text string, vocab WordVocab) {
	vocab.addText(text)
}

// BuildVocabularyOnCorpus ingests up to symbolsCount bytes (0 meaning the
// whole file) from the file at path into vocab, using up to maxWorker
// goroutines. Below singleThreadFileSize bytes, or with maxWorker == 1,
// ingestion always runs single-threaded.
//
// Parallel ingestion partitions the file into maxWorker equal byte ranges
// and lets each worker build an independent local vocabulary over its
// range; a word straddling a chunk boundary is therefore counted by
// whichever worker's range happens to contain each half, a small,
// documented miscount versus single-threaded ingestion of the same file.
func BuildVocabularyOnCorpus(path string, symbolsCount int64, maxWorker int, vocab WordVocab) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	fileSize := info.Size()
	if symbolsCount > 0 && symbolsCount < fileSize {
		fileSize = symbolsCount
	}

	if maxWorker <= 1 || fileSize <= singleThreadFileSize {
		return ingestRange(io.NewSectionReader(file, 0, fileSize), fileSize, vocab)
	}

	chunkSize := fileSize / int64(maxWorker)
	if chunkSize < 1 {
		return ingestRange(io.NewSectionReader(file, 0, fileSize), fileSize, vocab)
	}

	localVocabs := make([]WordVocab, maxWorker)
	var group errgroup.Group
	for w := 0; w < maxWorker; w++ {
		w := w
		begin := int64(w) * chunkSize
		rangeEnd := fileSize
		if w != maxWorker-1 {
			rangeEnd = int64(w+1) * chunkSize
		}
		if rangeEnd > fileSize {
			rangeEnd = fileSize
		}
		length := rangeEnd - begin
		group.Go(func() error {
			local := make(WordVocab, 1<<16)
			if length > 0 {
				if err := ingestRange(io.NewSectionReader(file, begin, length), length, local); err != nil {
					return err
				}
			}
			localVocabs[w] = local
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, local := range localVocabs {
		vocab.merge(local)
	}
	return nil
}
