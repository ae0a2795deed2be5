// Package normalize folds email text into the form the tokenizer sees
//
// Invalid UTF-8 is dropped, then a golang.org/x/text chain decomposes (NFKD), case folds,
// strips combining marks and format characters such as zero-width joiners, folds width,
// and recomposes (NFC). Whitespace runs finally collapse to single spaces.
// Accents are therefore stripped: "café" and "cafe" produce the same tokens.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is stateless; one value may be shared across goroutines
type Normalizer struct{}

func New() *Normalizer { return &Normalizer{} }

// transform chains carry state between calls so each goroutine borrows its own
var chains = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s)
func (*Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	t := chains.Get().(transform.Transformer)
	folded, _, err := transform.String(t, s)
	t.Reset()
	chains.Put(t)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return collapseSpaces(folded)
}

func collapseSpaces(s string) string { return strings.Join(strings.Fields(s), " ") }
