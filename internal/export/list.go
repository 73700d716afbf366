package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// FormatList writes a plain listing of the entries to w, one block per
// entry with fields in alphabetical order.
func FormatList(items []*types.BibItem, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d entries\n", len(items)); err != nil {
		return err
	}
	for i, item := range items {
		fmt.Fprintf(w, "\n[%d] @%s{%s} (line %d)\n", i+1, item.EntryType, item.CiteKey, item.Line)
		names := make([]string, 0, len(item.Fields))
		for name := range item.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "  %-12s %s\n", name, item.Fields[name]); err != nil {
				return err
			}
		}
	}
	return nil
}
