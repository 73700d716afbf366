package types

// TitlecaseConfig holds settings for the titlecase transformation.
type TitlecaseConfig struct {
	// MinorWords overrides the built-in list of words kept lowercase in
	// titlecase output (articles, coordinating conjunctions, short
	// prepositions). Empty means use the default list.
	MinorWords []string `json:"minor_words,omitempty" yaml:"minor_words,omitempty"`
}

// LibraryConfig holds settings for the SQLite entry library.
type LibraryConfig struct {
	// DBPath is the library database file (default "bibtex-library.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups all tool configuration.
type Config struct {
	Titlecase TitlecaseConfig `json:"titlecase" yaml:"titlecase"`
	Library   LibraryConfig   `json:"library" yaml:"library"`
}
