package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitByWords(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"hello world", []string{"hello", " world"}},
		{"hello  world", []string{"hello", " ", " world"}},
		{"hello, world", []string{"hello", ",", " world"}},
		{"Hello, world!", []string{"Hello", ",", " world", "!"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SplitByWords(c.text), "text=%q", c.text)
	}
}

func TestSplitByWordsReassembles(t *testing.T) {
	for _, text := range []string{"hello world", "hello  world", "hello, world", "Hello, world!", "  (Hello) "} {
		var got string
		for _, word := range SplitByWords(text) {
			got += word
		}
		assert.Equal(t, text, got, "text=%q", text)
	}
}

func TestSplitPrefixBodySuffix(t *testing.T) {
	cases := []struct {
		word               string
		prefix, body, suff string
	}{
		{"", "", "", ""},
		{"Hello", "", "Hello", ""},
		{" Hello", "", " Hello", ""},
		{"(Hello", "(", "Hello", ""},
		{"(Hello,!", "(", "Hello", ",!"},
		{"  (Hello) ", "  (", "Hello", ") "},
		{",,,,", "", ",,,,", ""},
	}
	for _, c := range cases {
		prefix, body, suffix := SplitPrefixBodySuffix(c.word)
		assert.Equal(t, c.prefix, prefix, "word=%q prefix", c.word)
		assert.Equal(t, c.body, body, "word=%q body", c.word)
		assert.Equal(t, c.suff, suffix, "word=%q suffix", c.word)
	}
}
