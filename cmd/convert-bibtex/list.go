package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/convert-bibtex/internal/bibtex"
	"github.com/pdiddy/convert-bibtex/internal/export"
)

var listCmd = &cobra.Command{
	Use:   "list <input-file>",
	Short: "Print the parsed entries of a BibTeX file",
	Long: `List parses a BibTeX file and prints its entries without modifying
anything. The default format is a plain per-entry listing; --format csl
emits CSL-YAML consumable by Pandoc and reference managers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		doc, err := bibtex.Parse(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "plain":
			return export.FormatList(doc.Entries(), os.Stdout)
		case "csl":
			return export.FormatCSL(doc.Entries(), os.Stdout)
		default:
			return fmt.Errorf("unknown format %q: use plain or csl", format)
		}
	},
}

func init() {
	listCmd.Flags().String("format", "plain", "output format: plain or csl")

	rootCmd.AddCommand(listCmd)
}
