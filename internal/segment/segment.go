// Package segment splits continuous text into word tokens.
package segment

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-ego/gse"
)

// Segmenter cuts text into tokens. Implementations must be deterministic for
// a given dictionary and safe for concurrent use once constructed.
type Segmenter interface {
	Cut(text string) []string
}

// GSE segments Chinese text with a prefix dictionary and an HMM for words
// missing from the dictionary.
type GSE struct {
	seg gse.Segmenter
	hmm bool
}

// Options configures NewGSE.
type Options struct {
	// DictPaths are dictionary files in gse format ("word freq pos" per line).
	// When empty the embedded simplified Chinese dictionary is loaded.
	DictPaths []string
	// DisableHMM turns off unknown-word discovery.
	DisableHMM bool
}

// NewGSE loads the dictionary and returns a ready segmenter. Loading the
// embedded dictionary takes a moment, so callers build one and share it.
func NewGSE(opt Options) (*GSE, error) {
	g := &GSE{hmm: !opt.DisableHMM}
	g.seg.SkipLog = true
	var err error
	if len(opt.DictPaths) == 0 {
		err = g.seg.LoadDictEmbed()
	} else {
		err = g.seg.LoadDict(strings.Join(opt.DictPaths, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return g, nil
}

// Cut returns word tokens in text order. gse hands back runs of whitespace,
// punctuation and symbols ("……", "，，\n") as single tokens; those are
// dropped and kept tokens are trimmed of surrounding space.
func (g *GSE) Cut(text string) []string {
	if text == "" {
		return nil
	}
	raw := g.seg.TrimPunct(g.seg.Cut(text, g.hmm))
	out := raw[:0]
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if hasWordRune(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
