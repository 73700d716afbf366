// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders parsed BibTeX entries for inspection: a plain
// listing for debugging and CSL-YAML for reference managers.
package export

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-JSON/CSL-YAML schema so that output
// is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps BibTeX entry types onto CSL item types. Unlisted types fall
// back to "article".
var cslTypes = map[string]string{
	"article":       "article-journal",
	"book":          "book",
	"inbook":        "chapter",
	"incollection":  "chapter",
	"inproceedings": "paper-conference",
	"conference":    "paper-conference",
	"proceedings":   "book",
	"mastersthesis": "thesis",
	"phdthesis":     "thesis",
	"techreport":    "report",
	"unpublished":   "manuscript",
	"misc":          "document",
}

// FormatCSL writes the entries as a CSL-YAML list to w.
func FormatCSL(items []*types.BibItem, w io.Writer) error {
	out := make([]CSLItem, len(items))
	for i, item := range items {
		out[i] = toCSLItem(item)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}

// toCSLItem converts one BibTeX entry to a CSLItem.
func toCSLItem(item *types.BibItem) CSLItem {
	cslType, ok := cslTypes[item.EntryType]
	if !ok {
		cslType = "article"
	}
	out := CSLItem{
		ID:   item.CiteKey,
		Type: cslType,
	}

	out.Title, _ = item.Field("title")
	if out.Title == "" {
		out.Title, _ = item.Field("booktitle")
	}
	if journal, ok := item.Field("journal"); ok {
		out.ContainerTitle = journal
	} else if booktitle, ok := item.Field("booktitle"); ok && item.EntryType != "book" {
		out.ContainerTitle = booktitle
	}
	out.Volume, _ = item.Field("volume")
	out.Page, _ = item.Field("pages")
	out.DOI, _ = item.Field("doi")

	if author, ok := item.Field("author"); ok {
		for _, name := range strings.Split(author, " and ") {
			out.Author = append(out.Author, parseAuthorName(name))
		}
	}

	if year, ok := item.Field("year"); ok {
		if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
			out.Issued = &CSLDate{DateParts: [][]int{{y}}}
		}
	}

	return out
}

// parseAuthorName splits a BibTeX author name into CSL family/given parts.
// "Last, First" splits at the comma; "First Last" splits at the last space;
// single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		return CSLName{
			Family: strings.TrimSpace(name[:idx]),
			Given:  strings.TrimSpace(name[idx+1:]),
		}
	}
	idx := strings.LastIndexByte(name, ' ')
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}
