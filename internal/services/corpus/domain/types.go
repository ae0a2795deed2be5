// Package domain defines core types and ports for the postgres corpus source
package domain

import "phishguard/internal/core/corpus"

// Source names the table and columns holding labelled emails
// each name is quoted as an identifier, never spliced raw
type Source struct {
	Schema      string // empty means search_path
	Table       string
	TextColumn  string
	LabelColumn string
}

// DefaultSource is the table written by Import
func DefaultSource() Source {
	return Source{
		Table:       "emails",
		TextColumn:  corpus.ColumnText,
		LabelColumn: corpus.ColumnLabel,
	}
}

// Row is one email as stored; NULL text or label reads as blank
type Row struct {
	Text  string
	Label string
}
