// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSingleEntry(t *testing.T) {
	src := `@article{x, author={Jane Smith}, year={2024}, pages={103-110}, title={a study of fish}}`

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	items := doc.Entries()
	if len(items) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(items))
	}
	item := items[0]

	if item.EntryType != "article" {
		t.Errorf("EntryType = %q, want %q", item.EntryType, "article")
	}
	if item.CiteKey != "x" {
		t.Errorf("CiteKey = %q, want %q", item.CiteKey, "x")
	}
	want := map[string]string{
		"author": "Jane Smith",
		"year":   "2024",
		"pages":  "103-110",
		"title":  "a study of fish",
	}
	for name, value := range want {
		got, ok := item.Field(name)
		if !ok {
			t.Errorf("field %q missing", name)
			continue
		}
		if got != value {
			t.Errorf("field %q = %q, want %q", name, got, value)
		}
	}
	if item.Raw != src {
		t.Errorf("Raw = %q, want the full entry text", item.Raw)
	}
}

func TestParseFieldValueForms(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		want  string
	}{
		{
			name:  "nested braces preserved verbatim",
			src:   `@article{k, title={The {NASA} {B}udget Story}}`,
			field: "title",
			want:  "The {NASA} {B}udget Story",
		},
		{
			name:  "deeply nested braces",
			src:   `@article{k, note={a {b {c {d}}} e}}`,
			field: "note",
			want:  "a {b {c {d}}} e",
		},
		{
			name:  "quote delimited",
			src:   `@article{k, journal="Journal of Tests"}`,
			field: "journal",
			want:  "Journal of Tests",
		},
		{
			name:  "braces inside quotes",
			src:   `@article{k, title="The {BIG} One"}`,
			field: "title",
			want:  "The {BIG} One",
		},
		{
			name:  "bare numeric value",
			src:   `@article{k, year = 2024, title={t}}`,
			field: "year",
			want:  "2024",
		},
		{
			name:  "latex command kept unmodified",
			src:   `@article{k, author={G\"{o}del, Kurt}}`,
			field: "author",
			want:  `G\"{o}del, Kurt`,
		},
		{
			name:  "field name case normalized",
			src:   `@article{k, TITLE={Loud}}`,
			field: "title",
			want:  "Loud",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			items := doc.Entries()
			if len(items) != 1 {
				t.Fatalf("len(Entries) = %d, want 1", len(items))
			}
			got, ok := items[0].Field(tt.field)
			if !ok {
				t.Fatalf("field %q missing", tt.field)
			}
			if got != tt.want {
				t.Errorf("field %q = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParsePreservesSurroundingText(t *testing.T) {
	src := "% my references\n\n" +
		"@article{a, title={First}}\n\n" +
		"some stray note between entries\n" +
		"@misc{b,\n  title = {Second},\n}\n" +
		"% trailing comment\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := len(doc.Entries()); got != 2 {
		t.Fatalf("len(Entries) = %d, want 2", got)
	}
	if doc.Entries()[0].CiteKey != "a" || doc.Entries()[1].CiteKey != "b" {
		t.Errorf("entry order = %q, %q, want a, b", doc.Entries()[0].CiteKey, doc.Entries()[1].CiteKey)
	}

	var buf strings.Builder
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != src {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", buf.String(), src)
	}
}

func TestParseSpecialBlocksPassThrough(t *testing.T) {
	src := "@comment{not an entry {even nested}}\n" +
		"@string{jot = {Journal of Tests}}\n" +
		"@PREAMBLE{ {\\newcommand{\\x}{y}} }\n" +
		"@article{real, title={Kept}}\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	items := doc.Entries()
	if len(items) != 1 {
		t.Fatalf("len(Entries) = %d, want 1 (special blocks are not entries)", len(items))
	}
	if items[0].CiteKey != "real" {
		t.Errorf("CiteKey = %q, want %q", items[0].CiteKey, "real")
	}

	var buf strings.Builder
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != src {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", buf.String(), src)
	}
}

func TestParseAtSignInPlainText(t *testing.T) {
	src := "% mail me @ lab\n@article{k, title={Fine}}\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(doc.Entries()); got != 1 {
		t.Fatalf("len(Entries) = %d, want 1", got)
	}
}

func TestParseEmailInComment(t *testing.T) {
	src := "% contact jane@gmail.com about this file\n" +
		"@article{k, title={Fine}}\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(doc.Entries()); got != 1 {
		t.Fatalf("len(Entries) = %d, want 1", got)
	}

	var buf strings.Builder
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != src {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", buf.String(), src)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "missing opening brace",
			src:     "@article k, title={x}}",
			wantMsg: "'{' missing",
		},
		{
			name:    "missing cite key",
			src:     "@article{, title={x}}",
			wantMsg: "cite key missing",
		},
		{
			name:    "unbalanced braces in value",
			src:     "@article{k, title={never {closed}",
			wantMsg: "unbalanced braces",
		},
		{
			name:    "entry brace never closed after value",
			src:     "@article{k, title={fine}",
			wantMsg: "unexpected end of file",
		},
		{
			name:    "missing equals",
			src:     "@article{k, title {x}}",
			wantMsg: "'=' missing",
		},
		{
			name:    "field without value terminates file",
			src:     "@article{k, title = ",
			wantMsg: "field value missing",
		},
		{
			name:    "unterminated quote",
			src:     `@article{k, title = "open`,
			wantMsg: "unterminated quoted value",
		},
		{
			name:    "entry never closed",
			src:     "@article{k, year = 2020,",
			wantMsg: "unexpected end of file",
		},
		{
			name:    "unbalanced comment block",
			src:     "@comment{open forever",
			wantMsg: "unbalanced braces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("Parse succeeded, want *ParseError")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if !strings.Contains(perr.Msg, tt.wantMsg) {
				t.Errorf("Msg = %q, want it to contain %q", perr.Msg, tt.wantMsg)
			}
			if perr.Line < 1 {
				t.Errorf("Line = %d, want >= 1", perr.Line)
			}
		})
	}
}

func TestParseErrorTruncatedEntry(t *testing.T) {
	src := "@article{k, year = 2020,"

	_, err := Parse(src)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if !strings.Contains(perr.Msg, "unexpected end of file") {
		t.Errorf("Msg = %q, want it to contain %q", perr.Msg, "unexpected end of file")
	}
	if perr.Offset != 0 {
		t.Errorf("Offset = %d, want 0 (the entry's '@')", perr.Offset)
	}
}

func TestParseErrorPosition(t *testing.T) {
	src := "@article{ok, title={fine}}\n\n@article{bad, title={oops}\n"

	_, err := Parse(src)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line != 3 {
		t.Errorf("Line = %d, want 3", perr.Line)
	}
	if perr.Offset < strings.Index(src, "@article{bad") {
		t.Errorf("Offset = %d, want inside the second entry", perr.Offset)
	}
}

func TestEntryLineNumbers(t *testing.T) {
	src := "% header\n\n@article{a, title={x}}\n@misc{b, title={y}}\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	items := doc.Entries()
	if items[0].Line != 3 {
		t.Errorf("first entry Line = %d, want 3", items[0].Line)
	}
	if items[1].Line != 4 {
		t.Errorf("second entry Line = %d, want 4", items[1].Line)
	}
}
