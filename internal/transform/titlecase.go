// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"strings"
	"unicode"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// defaultMinorWords are the words kept lowercase in titlecase output unless
// they begin or end the title: articles, coordinating conjunctions, and
// short prepositions.
var defaultMinorWords = []string{
	"a", "an", "and", "as", "at", "but", "by", "en", "for",
	"if", "in", "of", "on", "or", "the", "to", "v", "via", "vs",
}

// Titlecase rewrites an entry's title field to title case. Brace-wrapped
// spans are capitalization-protected per BibTeX convention and pass through
// with their original casing and braces intact.
type Titlecase struct {
	minor map[string]bool
}

// NewTitlecase builds the transformer. An empty MinorWords list in cfg
// selects the built-in defaults.
func NewTitlecase(cfg types.TitlecaseConfig) *Titlecase {
	words := cfg.MinorWords
	if len(words) == 0 {
		words = defaultMinorWords
	}
	minor := make(map[string]bool, len(words))
	for _, w := range words {
		minor[strings.ToLower(w)] = true
	}
	return &Titlecase{minor: minor}
}

// Name implements Transformer.
func (t *Titlecase) Name() string { return "titlecase" }

// Required implements Transformer. The title field is not listed: an entry
// without a title is passed through as a no-op rather than warned about.
func (t *Titlecase) Required() []string { return nil }

// Apply rewrites the title field in place. Entries without a title are left
// untouched.
func (t *Titlecase) Apply(item *types.BibItem) error {
	title, ok := item.Field("title")
	if !ok || title == "" {
		return nil
	}
	item.SetField("title", t.Render(title))
	return nil
}

// Render returns the title-cased form of title. Whitespace is preserved
// exactly; the result is stable under repeated application.
func (t *Titlecase) Render(title string) string {
	prot := protectedBytes(title)

	type word struct{ start, end int }
	var words []word
	for i := 0; i < len(title); {
		if isSpace(title[i]) {
			i++
			continue
		}
		j := i
		for j < len(title) && !isSpace(title[j]) {
			j++
		}
		words = append(words, word{i, j})
		i = j
	}
	if len(words) == 0 {
		return title
	}

	var b strings.Builder
	b.Grow(len(title))
	prev := 0
	for wi, wd := range words {
		b.WriteString(title[prev:wd.start])
		boundary := wi == 0 || wi == len(words)-1
		b.WriteString(t.caseWord(title[wd.start:wd.end], prot[wd.start:wd.end], boundary))
		prev = wd.end
	}
	b.WriteString(title[prev:])
	return b.String()
}

// caseWord title-cases one whitespace-delimited word. Hyphenated compounds
// are cased segment by segment; minor words within a compound stay lowercase.
// boundary marks the first or last word of the title, whose leading segment
// is always capitalized.
func (t *Titlecase) caseWord(word string, prot []bool, boundary bool) string {
	var b strings.Builder
	segStart := 0
	segIdx := 0
	for i := 0; i <= len(word); i++ {
		if i < len(word) && word[i] != '-' {
			continue
		}
		seg := word[segStart:i]
		b.WriteString(t.caseSegment(seg, prot[segStart:i], boundary && segIdx == 0))
		if i < len(word) {
			b.WriteByte('-')
		}
		segStart = i + 1
		segIdx++
	}
	return b.String()
}

// caseSegment cases one hyphen-separated segment. Segments touching a
// protected span are emitted verbatim, as are segments with capitals past
// the first letter (acronyms, camel-cased names).
func (t *Titlecase) caseSegment(seg string, prot []bool, forceCap bool) string {
	if seg == "" {
		return seg
	}
	for _, p := range prot {
		if p {
			return seg
		}
	}
	if hasInternalUpper(seg) {
		return seg
	}
	if !forceCap && t.minor[lookupKey(seg)] {
		return strings.ToLower(seg)
	}
	return capitalize(seg)
}

// protectedBytes marks each byte of s that lies inside a brace group,
// braces included.
func protectedBytes(s string) []bool {
	prot := make([]bool, len(s))
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
			prot[i] = true
		case '}':
			prot[i] = true
			if depth > 0 {
				depth--
			}
		default:
			prot[i] = depth > 0
		}
	}
	return prot
}

// lookupKey strips surrounding punctuation and lowercases for the minor-word
// check, so "the," and "Vs." match their list entries.
func lookupKey(seg string) string {
	return strings.ToLower(strings.TrimFunc(seg, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}))
}

// hasInternalUpper reports an uppercase letter after the first letter of seg.
func hasInternalUpper(seg string) bool {
	seen := false
	for _, r := range seg {
		if !unicode.IsLetter(r) {
			continue
		}
		if seen && unicode.IsUpper(r) {
			return true
		}
		seen = true
	}
	return false
}

// capitalize uppercases the first letter of seg and lowercases the rest.
func capitalize(seg string) string {
	runes := []rune(seg)
	seen := false
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		if seen {
			runes[i] = unicode.ToLower(r)
		} else {
			runes[i] = unicode.ToUpper(r)
			seen = true
		}
	}
	return string(runes)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
