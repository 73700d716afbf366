// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform rewrites single fields of parsed BibTeX entries. Two
// transformations exist: title-casing the title field and generating a
// citation key from author/year/page metadata. Each transformer declares its
// required fields upfront; an entry missing one is passed through unmodified
// with a warning rather than aborting the run.
package transform

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/convert-bibtex/internal/bibtex"
	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// Transformer rewrites one field of a BibItem in place.
type Transformer interface {
	// Name identifies the transformation ("titlecase", "citekey").
	Name() string

	// Required lists the fields the transformation cannot run without.
	Required() []string

	// Apply rewrites the entry. A *MissingFieldError means the entry was
	// left untouched and processing may continue with other entries.
	Apply(item *types.BibItem) error
}

// MissingFieldError reports that an entry lacks a field the selected
// transformation requires. Recoverable: the entry is emitted unchanged.
type MissingFieldError struct {
	// CiteKey identifies the offending entry.
	CiteKey string

	// Field is the missing or unusable required field.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("entry %s: required field %q is missing", e.CiteKey, e.Field)
}

// Result holds the outcome of a transformation run over a document.
type Result struct {
	Updated int
	Skipped int
	Failed  int

	missing map[string]int
}

// Total returns the number of entries processed.
func (r Result) Total() int { return r.Updated + r.Skipped + r.Failed }

// HasFailures reports whether any entry was passed through due to a
// missing field.
func (r Result) HasFailures() bool { return r.Failed > 0 }

// Run applies the transformer to every entry in document order, printing a
// warning line per failed entry to w and a summary at the end. Entries the
// transformer cannot handle keep their original text.
func Run(doc *bibtex.Document, tr Transformer, w io.Writer) (Result, error) {
	result := Result{missing: make(map[string]int)}
	for _, item := range doc.Entries() {
		if err := tr.Apply(item); err != nil {
			var mfe *MissingFieldError
			if errors.As(err, &mfe) {
				result.Failed++
				result.missing[mfe.Field]++
				fmt.Fprintf(w, "warning: %v; entry left unchanged\n", err)
				continue
			}
			return result, fmt.Errorf("applying %s to entry %s: %w", tr.Name(), item.CiteKey, err)
		}
		if item.Changed() {
			result.Updated++
		} else {
			result.Skipped++
		}
	}
	fmt.Fprintf(w, "Updated %d entries (%d skipped, %d passed through)\n",
		result.Updated, result.Skipped, result.Failed)
	result.ReportMissing(w)
	return result, nil
}

// ReportMissing prints the per-field counts of entries passed through due to
// missing information. No output when nothing was missing.
func (r Result) ReportMissing(w io.Writer) {
	if len(r.missing) == 0 {
		return
	}
	fields := make([]string, 0, len(r.missing))
	for f := range r.missing {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Fprintln(w, "\n*** WARNING ***")
	fmt.Fprintln(w, "Some entries were left unchanged due to missing information.")
	fmt.Fprintln(w, "Check your .bib file for the following missing fields:")
	fmt.Fprintf(w, "  %-20s %8s\n", "Missing Field", "Count")
	fmt.Fprintln(w, "  -----------------------------")
	for _, f := range fields {
		fmt.Fprintf(w, "  %-20s %8d\n", f, r.missing[f])
	}
	fmt.Fprintln(w, "  -----------------------------")
}

// requireFields returns a MissingFieldError for the first of names absent
// from the entry, or nil when all are present.
func requireFields(item *types.BibItem, names ...string) error {
	for _, name := range names {
		if v, ok := item.Field(name); !ok || v == "" {
			return &MissingFieldError{CiteKey: item.CiteKey, Field: name}
		}
	}
	return nil
}
