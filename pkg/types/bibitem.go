// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for convert-bibtex: the BibItem
// entry record and the configuration structs consumed by the transformers
// and the entry library.
package types

// Span marks a half-open byte range [Start, End) within a BibItem's Raw text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// BibItem is one parsed bibliography entry. The parser fills every exported
// field; Raw holds the entry's verbatim source text so untouched entries can
// be written back byte-identical. Edits go through SetField and SetCiteKey,
// which splice the new text into Raw and keep the span bookkeeping current.
type BibItem struct {
	// EntryType is the lowercase BibTeX category, e.g. "article".
	EntryType string

	// CiteKey is the entry identifier following the opening brace.
	CiteKey string

	// Fields maps lowercase field names to raw values with the surrounding
	// delimiter (braces or quotes) stripped and the interior verbatim.
	Fields map[string]string

	// Raw is the entry's source text, updated in place by edits.
	Raw string

	// Offset and Line locate the entry's '@' in the source file.
	Offset int
	Line   int

	keySpan    Span
	fieldSpans map[string]Span
	changed    bool
}

// NewBibItem constructs an entry record with span bookkeeping attached.
// keySpan and fieldSpans are byte ranges within raw covering the cite key
// and each field's value (delimiters excluded).
func NewBibItem(entryType, citeKey string, fields map[string]string, raw string, offset, line int, keySpan Span, fieldSpans map[string]Span) *BibItem {
	return &BibItem{
		EntryType:  entryType,
		CiteKey:    citeKey,
		Fields:     fields,
		Raw:        raw,
		Offset:     offset,
		Line:       line,
		keySpan:    keySpan,
		fieldSpans: fieldSpans,
	}
}

// Field returns the value of the named field and whether it is present.
func (b *BibItem) Field(name string) (string, bool) {
	v, ok := b.Fields[name]
	return v, ok
}

// Changed reports whether any edit has been applied since parsing.
func (b *BibItem) Changed() bool { return b.changed }

// SetField replaces the named field's value, splicing the new text into Raw
// between the original delimiters. Setting an absent field or setting the
// same value is a no-op.
func (b *BibItem) SetField(name, value string) {
	old, ok := b.Fields[name]
	if !ok || old == value {
		return
	}
	span, ok := b.fieldSpans[name]
	if !ok {
		return
	}
	b.splice(span, value)
	b.Fields[name] = value
	b.changed = true
}

// SetCiteKey replaces the cite key, splicing the new text into Raw.
func (b *BibItem) SetCiteKey(key string) {
	if key == "" || key == b.CiteKey {
		return
	}
	b.splice(b.keySpan, key)
	b.CiteKey = key
	b.changed = true
}

// splice replaces span with text in Raw and shifts every span that starts at
// or after the edit point by the length delta.
func (b *BibItem) splice(span Span, text string) {
	b.Raw = b.Raw[:span.Start] + text + b.Raw[span.End:]
	delta := len(text) - span.Len()
	if delta == 0 {
		return
	}
	if b.keySpan.Start >= span.End {
		b.keySpan.Start += delta
		b.keySpan.End += delta
	} else if b.keySpan.Start == span.Start && b.keySpan.End == span.End {
		b.keySpan.End += delta
	}
	for name, s := range b.fieldSpans {
		switch {
		case s.Start == span.Start && s.End == span.End:
			s.End += delta
		case s.Start >= span.End:
			s.Start += delta
			s.End += delta
		default:
			continue
		}
		b.fieldSpans[name] = s
	}
}
