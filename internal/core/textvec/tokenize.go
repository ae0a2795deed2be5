package textvec

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest run of word characters kept as a token
const minTokenRunes = 2

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize splits normalized text into runs of word characters at least two runes long
func Tokenize(s string) []string {
	var out []string
	start, runes := -1, 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			out = append(out, s[start:end])
		}
		start, runes = -1, 0
	}
	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(s))
	return out
}

// ngrams builds contiguous n-grams for n in [lo,hi] joined by a single space
// unigrams first, then bigrams and so on, each in text order
func ngrams(tokens []string, lo, hi int) []string {
	if len(tokens) == 0 {
		return nil
	}
	if lo < 1 {
		lo = 1
	}
	out := make([]string, 0, len(tokens)*(hi-lo+1))
	for n := lo; n <= hi; n++ {
		if n == 1 {
			out = append(out, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
