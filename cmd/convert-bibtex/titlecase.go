package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/convert-bibtex/internal/transform"
	"github.com/pdiddy/convert-bibtex/pkg/types"
)

var titlecaseCmd = &cobra.Command{
	Use:   "titlecase <input-file>",
	Short: "Convert all title fields to title case",
	Long: `Titlecase rewrites every entry's title field to title case and writes the
result to <input-file>.titlecase.bib. Minor words (articles, conjunctions,
short prepositions) stay lowercase except at the title boundaries, and
brace-protected spans like {NASA} keep their original casing. Entries
without a title are passed through unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		cfg := types.TitlecaseConfig{
			MinorWords: viper.GetStringSlice("titlecase.minor_words"),
		}
		return runConvert(transform.NewTitlecase(cfg), args[0], output)
	},
}

func init() {
	titlecaseCmd.Flags().String("output", "", "output file (default: <input-file>.titlecase.bib)")

	rootCmd.AddCommand(titlecaseCmd)
}
