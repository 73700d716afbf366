// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"strings"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// Parse scans a full BibTeX file and returns its document. Text outside
// entries, including @comment, @preamble, and @string blocks, is preserved
// verbatim as pass-through segments. Structural problems return a *ParseError
// and no document.
func Parse(src string) (*Document, error) {
	s := &scanner{src: src}
	return s.parse()
}

// scanner is a single forward pass over the input with explicit brace-depth
// tracking. No recursion: protected spans inside field values and entry
// boundaries use the same depth counter.
type scanner struct {
	src string
	pos int
}

func (s *scanner) parse() (*Document, error) {
	doc := &Document{}
	textStart := 0
	for {
		rel := strings.IndexByte(s.src[s.pos:], '@')
		if rel < 0 {
			break
		}
		at := s.pos + rel

		// An entry begins at '@' followed by a type token and '{'. A '@'
		// not followed by a letter is ordinary text (comments, emails).
		j := at + 1
		if j >= len(s.src) || !isLetter(s.src[j]) {
			s.pos = at + 1
			continue
		}
		for j < len(s.src) && isIdentByte(s.src[j]) {
			j++
		}
		typ := strings.ToLower(s.src[at+1 : j])
		j = s.skipSpace(j)
		if j >= len(s.src) || s.src[j] != '{' {
			// Entries start at the beginning of a line. A bare '@word'
			// further in is prose, an email address or a handle.
			if !s.atLineStart(at) {
				s.pos = at + 1
				continue
			}
			return nil, s.errAt(at, "'{' missing after entry type @"+typ)
		}

		// @comment, @preamble, and @string are not entries; their whole
		// block stays in the surrounding pass-through text.
		if typ == "comment" || typ == "preamble" || typ == "string" {
			end, err := s.skipBalanced(j, "@"+typ+" block")
			if err != nil {
				return nil, err
			}
			s.pos = end
			continue
		}

		if at > textStart {
			doc.Segments = append(doc.Segments, Segment{Text: s.src[textStart:at]})
		}
		item, end, err := s.parseEntry(at, typ, j)
		if err != nil {
			return nil, err
		}
		doc.Segments = append(doc.Segments, Segment{Entry: item})
		textStart = end
		s.pos = end
	}
	if textStart < len(s.src) {
		doc.Segments = append(doc.Segments, Segment{Text: s.src[textStart:]})
	}
	return doc, nil
}

// parseEntry consumes one entry starting at the '@' at offset at, with open
// the offset of its opening brace. It returns the entry and the offset just
// past the closing brace.
func (s *scanner) parseEntry(at int, typ string, open int) (*types.BibItem, int, error) {
	i := s.skipSpace(open + 1)

	ks := i
	for i < len(s.src) && !isKeyEnd(s.src[i]) {
		i++
	}
	key := s.src[ks:i]
	if key == "" {
		return nil, 0, s.errAt(at, "cite key missing in @"+typ+" entry")
	}
	keySpan := types.Span{Start: ks, End: i}

	fields := make(map[string]string)
	fieldSpans := make(map[string]types.Span)
	i = s.skipSpace(i)
	for {
		if i >= len(s.src) {
			return nil, 0, s.errAt(at, "unexpected end of file in @"+typ+" entry")
		}
		switch s.src[i] {
		case '}':
			end := i + 1
			item := types.NewBibItem(typ, key, fields, s.src[at:end], at, s.lineAt(at),
				rebase(keySpan, at), rebaseAll(fieldSpans, at))
			return item, end, nil
		case ',':
			i = s.skipSpace(i + 1)
			if i >= len(s.src) {
				return nil, 0, s.errAt(at, "unexpected end of file in @"+typ+" entry")
			}
			if s.src[i] == '}' {
				continue // trailing comma before the closing brace
			}
			var err error
			i, err = s.parseField(i, fields, fieldSpans)
			if err != nil {
				return nil, 0, err
			}
			i = s.skipSpace(i)
		default:
			return nil, 0, s.errAt(i, "expected ',' or '}' in entry "+key)
		}
	}
}

// parseField consumes one "name = value" pair starting at offset i and
// returns the offset just past the value. Values may be brace-delimited,
// quote-delimited, or bare tokens; the delimiters are excluded from the
// recorded span so the stored value is the interior verbatim.
func (s *scanner) parseField(i int, fields map[string]string, fieldSpans map[string]types.Span) (int, error) {
	ns := i
	for i < len(s.src) && s.src[i] != '=' && s.src[i] != ',' && s.src[i] != '}' && !isSpace(s.src[i]) {
		i++
	}
	name := strings.ToLower(s.src[ns:i])
	i = s.skipSpace(i)
	if name == "" || i >= len(s.src) || s.src[i] != '=' {
		return 0, s.errAt(ns, "'=' missing after field name")
	}
	i = s.skipSpace(i + 1)
	if i >= len(s.src) {
		return 0, s.errAt(ns, "field value missing for "+name)
	}

	var span types.Span
	switch s.src[i] {
	case '{':
		end, err := s.skipBalanced(i, "field "+name)
		if err != nil {
			return 0, err
		}
		span = types.Span{Start: i + 1, End: end - 1}
		i = end
	case '"':
		vs := i + 1
		depth := 0
		j := vs
		closed := false
		for ; j < len(s.src) && !closed; j++ {
			switch s.src[j] {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				closed = depth == 0
			}
		}
		if !closed {
			return 0, s.errAt(i, "unterminated quoted value for field "+name)
		}
		span = types.Span{Start: vs, End: j - 1}
		i = j
	default:
		vs := i
		for i < len(s.src) && s.src[i] != ',' && s.src[i] != '}' && s.src[i] != '\n' {
			i++
		}
		ve := i
		for ve > vs && isSpace(s.src[ve-1]) {
			ve--
		}
		if ve == vs {
			return 0, s.errAt(vs, "field value missing for "+name)
		}
		span = types.Span{Start: vs, End: ve}
	}

	fields[name] = s.src[span.Start:span.End]
	fieldSpans[name] = span
	return i, nil
}

// skipBalanced consumes a brace-delimited block starting at the '{' at
// offset open and returns the offset just past the matching '}'.
func (s *scanner) skipBalanced(open int, what string) (int, error) {
	depth := 0
	for i := open; i < len(s.src); i++ {
		switch s.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, s.errAt(open, "unbalanced braces in "+what)
}

// atLineStart reports whether only spaces or tabs precede offset pos on its
// line.
func (s *scanner) atLineStart(pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		switch s.src[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

func (s *scanner) skipSpace(i int) int {
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}
	return i
}

func (s *scanner) errAt(pos int, msg string) *ParseError {
	return &ParseError{Offset: pos, Line: s.lineAt(pos), Msg: msg}
}

func (s *scanner) lineAt(pos int) int {
	return 1 + strings.Count(s.src[:pos], "\n")
}

func rebase(sp types.Span, base int) types.Span {
	return types.Span{Start: sp.Start - base, End: sp.End - base}
}

func rebaseAll(spans map[string]types.Span, base int) map[string]types.Span {
	out := make(map[string]types.Span, len(spans))
	for k, v := range spans {
		out[k] = rebase(v, base)
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentByte(b byte) bool {
	return isLetter(b) || '0' <= b && b <= '9'
}

func isKeyEnd(b byte) bool {
	return b == ',' || b == '}' || b == '{' || isSpace(b)
}
