package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/convert-bibtex/internal/transform"
)

var citekeyCmd = &cobra.Command{
	Use:   "citekey <input-file>",
	Short: "Generate cite keys for all entries",
	Long: `Citekey replaces every entry's cite key following the scheme
<Last Author's Last Name><2-Digit Year>_<Page Number OR Entry Type>,
e.g. "Smith24_103" or "Wu19_inproceedings", and writes the result to
<input-file>.citekey.bib. Entries missing the author or year field are
passed through unchanged with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return runConvert(transform.NewCitekey(), args[0], output)
	},
}

func init() {
	citekeyCmd.Flags().String("output", "", "output file (default: <input-file>.citekey.bib)")

	rootCmd.AddCommand(citekeyCmd)
}
