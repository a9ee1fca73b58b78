// Package freq counts segmented words and ranks them by occurrence.
package freq

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperifyio/pagefreq/internal/segment"
)

// DefaultTopN is how many ranked words are shown by default.
const DefaultTopN = 20

// MinWordRunes is the shortest token, in characters, that is counted.
const MinWordRunes = 2

// WordCount is one ranked entry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequency maps words to occurrence counts and remembers the order in which
// each distinct word was first seen. It is not modified after Count returns.
type Frequency struct {
	order  []string
	counts map[string]int
	total  int
}

// Count builds a Frequency from a token stream. A token is kept when it has
// at least MinWordRunes characters, is not made only of whitespace,
// punctuation and symbols, and is not in stop. Matching is exact.
func Count(tokens []string, stop StopwordSet) *Frequency {
	f := &Frequency{counts: make(map[string]int)}
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < MinWordRunes || !hasWordRune(tok) {
			continue
		}
		if stop.Contains(tok) {
			continue
		}
		if _, seen := f.counts[tok]; !seen {
			f.order = append(f.order, tok)
		}
		f.counts[tok]++
		f.total++
	}
	return f
}

// Analyze joins paragraphs with a single space, segments the result and
// counts the kept tokens.
func Analyze(paragraphs []string, seg segment.Segmenter, stop StopwordSet) *Frequency {
	text := strings.Join(paragraphs, " ")
	if text == "" {
		return Count(nil, stop)
	}
	return Count(seg.Cut(text), stop)
}

// Len returns the number of distinct words.
func (f *Frequency) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Total returns the number of kept tokens.
func (f *Frequency) Total() int {
	if f == nil {
		return 0
	}
	return f.total
}

// Count returns the occurrences of word, zero when absent.
func (f *Frequency) Count(word string) int {
	if f == nil {
		return 0
	}
	return f.counts[word]
}

// Words returns the distinct words in first-seen order.
func (f *Frequency) Words() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Each calls fn for every word in first-seen order until fn returns false.
func (f *Frequency) Each(fn func(word string, count int) bool) {
	if f == nil {
		return
	}
	for _, w := range f.order {
		if !fn(w, f.counts[w]) {
			return
		}
	}
}

// Top returns up to n words by count descending. Equal counts keep the
// first-seen order. n <= 0 returns every word.
func (f *Frequency) Top(n int) []WordCount {
	if f == nil || len(f.order) == 0 {
		return []WordCount{}
	}
	all := make([]WordCount, 0, len(f.order))
	for _, w := range f.order {
		all = append(all, WordCount{Word: w, Count: f.counts[w]})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Count > all[j].Count
	})
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
