// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the convert-bibtex CLI: conversions
// and cite key generation for BibTeX files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the convert-bibtex CLI.
var rootCmd = &cobra.Command{
	Use:   "convert-bibtex",
	Short: "Conversions and cite key generation for BibTeX files",
	Long: `convert-bibtex rewrites one field of every entry in a BibTeX file and
writes the result to a new file, never overwriting the input.

Modes:
  titlecase  convert all title fields to title case
  citekey    generate cite keys for all entries following the scheme
             <Last Author's Last Name><2-Digit Year>_<Page Number OR Entry Type>

Supporting commands: list prints parsed entries (plain or CSL-YAML), index
catalogues entries in a local SQLite library and reports duplicate cite keys.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./convert-bibtex.yaml or ~/.config/convert-bibtex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("convert-bibtex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "convert-bibtex"))
		}
	}

	viper.SetEnvPrefix("CONVERT_BIBTEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
