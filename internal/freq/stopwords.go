package freq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StopwordSet holds words excluded from counting. The zero value is an empty
// set and is safe to use.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from the given words.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether word is a stop word.
func (s StopwordSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s[word]
	return ok
}

// Len returns the number of distinct stop words.
func (s StopwordSet) Len() int { return len(s) }

// LoadStopwords reads one stop word per line. Surrounding whitespace is
// trimmed, blank lines are skipped, a leading byte order mark is dropped and
// repeated lines collapse into one entry.
func LoadStopwords(r io.Reader) (StopwordSet, error) {
	s := StopwordSet{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if w := strings.TrimSpace(line); w != "" {
			s[w] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	return s, nil
}

// LoadStopwordsFile is LoadStopwords over a file path.
func LoadStopwordsFile(path string) (StopwordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadStopwords(f)
}
