// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"strings"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// Citekey generates a citation key of the form
// <LastAuthorLastName><2-digit-year>_<discriminator>, where the
// discriminator is the first page number when present and the entry type
// otherwise, e.g. "Smith24_103" or "Wu19_inproceedings". Keys are
// deterministic; duplicates across entries are not resolved here.
type Citekey struct{}

// NewCitekey builds the transformer.
func NewCitekey() *Citekey { return &Citekey{} }

// Name implements Transformer.
func (c *Citekey) Name() string { return "citekey" }

// Required implements Transformer.
func (c *Citekey) Required() []string { return []string{"author", "year"} }

// Apply replaces the entry's cite key. Entries missing author or year, or
// with a non-numeric year, return a *MissingFieldError and stay untouched.
func (c *Citekey) Apply(item *types.BibItem) error {
	if err := requireFields(item, c.Required()...); err != nil {
		return err
	}

	author, _ := item.Field("author")
	surname := lastAuthorSurname(author)
	if surname == "" {
		return &MissingFieldError{CiteKey: item.CiteKey, Field: "author"}
	}

	year, _ := item.Field("year")
	yy, ok := twoDigitYear(year)
	if !ok {
		return &MissingFieldError{CiteKey: item.CiteKey, Field: "year"}
	}

	discriminator := item.EntryType
	if pages, ok := item.Field("pages"); ok {
		if first := leadingDigits(strings.TrimSpace(pages)); first != "" {
			discriminator = first
		}
	}

	item.SetCiteKey(surname + yy + "_" + discriminator)
	return nil
}

// lastAuthorSurname extracts the surname of the last author in a BibTeX
// author list ("First Last and First Last" or "Last, First and Last, First").
// With a comma the surname is the final token before it, so "van Kuiken, B."
// yields "Kuiken"; without one it is the final whitespace-separated token.
func lastAuthorSurname(author string) string {
	authors := strings.Split(author, " and ")
	last := strings.TrimSpace(authors[len(authors)-1])
	if idx := strings.IndexByte(last, ','); idx >= 0 {
		last = strings.TrimSpace(last[:idx])
	}
	parts := strings.Fields(last)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// twoDigitYear returns the last two digits of a numeric year value.
func twoDigitYear(year string) (string, bool) {
	year = strings.TrimSpace(year)
	if year == "" {
		return "", false
	}
	for i := 0; i < len(year); i++ {
		if year[i] < '0' || year[i] > '9' {
			return "", false
		}
	}
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return year, true
}

// leadingDigits returns the leading run of ASCII digits in s.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
