// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex parses BibTeX files into an ordered document of entries and
// pass-through text, tracking brace nesting so field values may contain
// balanced {...} groups. Entries carry their verbatim source text; writing a
// document back out reproduces untouched entries byte for byte.
package bibtex

import (
	"io"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// Segment is one piece of a parsed file in source order: either an entry or
// verbatim non-entry text (comments, @preamble/@string blocks, blank lines).
type Segment struct {
	// Text holds verbatim source when Entry is nil.
	Text string

	// Entry is the parsed record when this segment is an entry.
	Entry *types.BibItem
}

// Document is a parsed BibTeX file: segments in source order.
type Document struct {
	Segments []Segment
}

// Entries returns the document's entries in source order.
func (d *Document) Entries() []*types.BibItem {
	var items []*types.BibItem
	for _, s := range d.Segments {
		if s.Entry != nil {
			items = append(items, s.Entry)
		}
	}
	return items
}

// WriteTo serializes the document. Segments untouched by any transformation
// are written byte-identical to the input.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range d.Segments {
		text := s.Text
		if s.Entry != nil {
			text = s.Entry.Raw
		}
		n, err := io.WriteString(w, text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
