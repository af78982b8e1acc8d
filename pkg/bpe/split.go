package bpe

// isSpace reports whether c is one of the four recognized whitespace bytes.
func isSpace(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

// isPunctuation reports whether c is one of the fixed punctuation bytes.
func isPunctuation(c byte) bool {
	switch c {
	case ',', '.', '?', '-', '"', ':', ';', '(', ')', '[', ']', '<', '>',
		'{', '}', '%', '\'', '!', '/', '#', '$', '^', '&', '*', '~', '|',
		'+', '=', '_':
		return true
	default:
		return false
	}
}

// SplitPrefixBodySuffix strips a leading run of spaces-then-punctuation and
// a trailing run of punctuation-then-spaces from word, returning the three
// parts. Spaces at either end are split off only together with adjacent
// punctuation; a word with spaces but no punctuation at that end keeps
// them in its body. Degenerate words (all-space, all-punctuation, or empty) return
// ("", word, "") so the body always carries the full content in those
// cases.
func SplitPrefixBodySuffix(word string) (prefix, body, suffix string) {
	begin := 0
	for begin < len(word) && isSpace(word[begin]) {
		begin++
	}
	if begin == len(word) {
		return "", word, ""
	}

	bodyStart := begin
	for bodyStart < len(word) && isPunctuation(word[bodyStart]) {
		bodyStart++
	}
	if bodyStart == len(word) {
		return "", word, ""
	}

	end := len(word)
	for end > bodyStart && isSpace(word[end-1]) {
		end--
	}
	if end == bodyStart {
		return "", word, ""
	}

	bodyEnd := end
	for bodyEnd > bodyStart && isPunctuation(word[bodyEnd-1]) {
		bodyEnd--
	}
	if bodyEnd == bodyStart {
		return "", word, ""
	}

	if bodyStart > begin {
		prefix = word[:bodyStart]
	}
	if bodyEnd < end {
		suffix = word[bodyEnd:]
	}
	body = word[len(prefix) : len(word)-len(suffix)]
	return prefix, body, suffix
}

// SplitByWords partitions text into non-empty word slices such that
// concatenating them in order reproduces text exactly. Every position
// inside a run of spaces is a split point, so a lone leading space attaches
// to the following word while runs of two or more spaces surface the
// interior positions as their own single-space tokens; each piece between
// split points is further decomposed by SplitPrefixBodySuffix.
func SplitByWords(text string) []string {
	type span struct{ start, end int }

	var spaces []span
	spanStart := -1
	for i := 0; i < len(text); i++ {
		if isSpace(text[i]) {
			if spanStart < 0 {
				spanStart = i
			}
			continue
		}
		if spanStart >= 0 {
			spaces = append(spaces, span{spanStart, i})
			spanStart = -1
		}
	}
	// A run of spaces that reaches the end of text is a run like any other.
	if spanStart >= 0 {
		spaces = append(spaces, span{spanStart, len(text)})
	}

	splitPoints := make([]int, 0, len(spaces)+2)
	splitPoints = append(splitPoints, 0)
	for _, sp := range spaces {
		for i := sp.start; i < sp.end; i++ {
			splitPoints = append(splitPoints, i)
		}
	}
	splitPoints = append(splitPoints, len(text))

	words := make([]string, 0, len(splitPoints))
	for i := 0; i < len(splitPoints)-1; i++ {
		begin, end := splitPoints[i], splitPoints[i+1]
		word := text[begin:end]

		prefix, body, suffix := SplitPrefixBodySuffix(word)
		if prefix != "" {
			words = append(words, prefix)
		}
		if body != "" {
			words = append(words, body)
		}
		if suffix != "" {
			words = append(words, suffix)
		}
	}
	return words
}
