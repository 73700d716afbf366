// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/convert-bibtex/internal/bibtex"
	"github.com/pdiddy/convert-bibtex/internal/transform"
)

// runConvert is the shared flow of the titlecase and citekey commands:
// read, parse, transform in memory, then write the output file. The output
// file is only created after a successful parse and transform, so a
// structural failure leaves no partial output behind.
func runConvert(tr transform.Transformer, inputPath, outputOverride string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	doc, err := bibtex.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	result, err := transform.Run(doc, tr, os.Stderr)
	if err != nil {
		return err
	}

	outputPath := outputOverride
	if outputPath == "" {
		outputPath = outputName(inputPath, tr.Name())
	}
	if outputPath == inputPath {
		return fmt.Errorf("refusing to overwrite input file %s", inputPath)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outputPath, err)
	}

	fmt.Printf("Wrote %s (%d of %d entries updated)\n", outputPath, result.Updated, result.Total())
	return nil
}

// outputName inserts the mode before the input's extension:
// "refs.bib" becomes "refs.titlecase.bib". Inputs without an extension get
// ".<mode>.bib" appended.
func outputName(inputPath, mode string) string {
	if idx := strings.LastIndexByte(inputPath, '.'); idx > 0 {
		return inputPath[:idx] + "." + mode + inputPath[idx:]
	}
	return inputPath + "." + mode + ".bib"
}
