package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/convert-bibtex/internal/bibtex"
	"github.com/pdiddy/convert-bibtex/internal/library"
	"github.com/pdiddy/convert-bibtex/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index <input-file>...",
	Short: "Catalogue entries in the local SQLite library",
	Long: `Index parses one or more BibTeX files and upserts their entries into a
local SQLite library, then reports cite keys that appear more than once
across everything indexed. The convert commands never read this library;
it is a side catalogue for spotting duplicates across files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("library.db_path")
	}

	store, err := library.Open(types.LibraryConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var total library.IndexSummary
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := bibtex.Parse(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		summary, err := store.Index(ctx, path, doc.Entries(), os.Stdout)
		if err != nil {
			return err
		}
		total.Indexed += summary.Indexed
		total.Failed += summary.Failed
	}

	dups, err := store.Duplicates(ctx)
	if err != nil {
		return err
	}
	if len(dups) > 0 {
		fmt.Printf("\n%d duplicate cite keys in the library:\n", len(dups))
		for _, d := range dups {
			fmt.Printf("  %-24s %s\n", d.CiteKey, strings.Join(d.Sources, ", "))
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nLibrary now holds %d entries.\n", count)

	if total.Failed > 0 {
		return fmt.Errorf("%d entries failed indexing", total.Failed)
	}
	return nil
}

func init() {
	indexCmd.Flags().String("db", "", "library database file (default: "+library.DefaultDBPath+")")

	rootCmd.AddCommand(indexCmd)
}
