// Package corpus loads labeled email text for training
package corpus

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	perr "phishguard/internal/platform/errors"
)

// Known labels
const (
	LabelLegit    = "legit"
	LabelPhishing = "phishing"
)

// Column names located in the header row
const (
	ColumnText  = "text"
	ColumnLabel = "label"
)

// Example is one labeled email
type Example struct {
	Text  string
	Label string
}

// Dataset holds aligned texts and labels
type Dataset struct {
	Texts   []string
	Labels  []string
	Dropped int // rows discarded for a missing text or label
}

// Len is the number of kept examples
func (d *Dataset) Len() int { return len(d.Texts) }

// Add appends one example, dropping it when text or label is blank
// Labels are trimmed and lowercased; text is kept verbatim
func (d *Dataset) Add(text, label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if strings.TrimSpace(text) == "" || label == "" {
		d.Dropped++
		return false
	}
	d.Texts = append(d.Texts, text)
	d.Labels = append(d.Labels, label)
	return true
}

// Examples returns the dataset as pairs
func (d *Dataset) Examples() []Example {
	out := make([]Example, len(d.Texts))
	for i := range d.Texts {
		out[i] = Example{Text: d.Texts[i], Label: d.Labels[i]}
	}
	return out
}

// Counts returns the number of examples per label
func (d *Dataset) Counts() map[string]int {
	m := map[string]int{}
	for _, l := range d.Labels {
		m[l]++
	}
	return m
}

// LoadFile opens path and reads it as CSV
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "corpus: %s not found", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeDataFormat, "corpus: open %s", path)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadCSV reads a header row then records, keeping the text and label columns
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, perr.DataFormatf("corpus: empty input, no header row")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeDataFormat, "corpus: read header")
	}
	textIdx, labelIdx := -1, -1
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		switch strings.ToLower(strings.TrimSpace(h)) {
		case ColumnText:
			if textIdx < 0 {
				textIdx = i
			}
		case ColumnLabel:
			if labelIdx < 0 {
				labelIdx = i
			}
		}
	}
	if textIdx < 0 || labelIdx < 0 {
		return nil, perr.DataFormatf("corpus: header %q lacks required columns %q and %q", header, ColumnText, ColumnLabel)
	}

	ds := &Dataset{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDataFormat, "corpus: parse record")
		}
		var text, label string
		if textIdx < len(rec) {
			text = rec[textIdx]
		}
		if labelIdx < len(rec) {
			label = rec[labelIdx]
		}
		ds.Add(text, label)
	}
	return ds, nil
}
