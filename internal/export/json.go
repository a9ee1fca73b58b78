package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperifyio/pagefreq/internal/freq"
)

type jsonReport struct {
	Report
	Tokens    int              `json:"tokens"`
	Distinct  int              `json:"distinct"`
	Frequency []freq.WordCount `json:"frequency"`
}

// WriteJSON writes rep as indented JSON. The frequency array holds every
// counted word in first-seen order.
func WriteJSON(w io.Writer, rep Report) error {
	out := jsonReport{
		Report:    rep,
		Tokens:    rep.Tokens(),
		Distinct:  rep.Distinct(),
		Frequency: make([]freq.WordCount, 0, rep.Distinct()),
	}
	if out.Top == nil {
		out.Top = []freq.WordCount{}
	}
	rep.All.Each(func(word string, count int) bool {
		out.Frequency = append(out.Frequency, freq.WordCount{Word: word, Count: count})
		return true
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
