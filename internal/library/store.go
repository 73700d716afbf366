// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library maintains a local SQLite catalogue of BibTeX entries
// indexed from one or more .bib files, with duplicate cite-key detection
// across everything indexed. The convert commands never touch it; indexing
// is an optional side catalogue.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/convert-bibtex/pkg/types"
)

// DefaultDBPath is used when the configuration does not name a database file.
const DefaultDBPath = "bibtex-library.db"

// Store manages the entry library SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the library database, creating the schema if it
// does not exist.
func Open(cfg types.LibraryConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = DefaultDBPath
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening library database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			cite_key TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			title TEXT,
			author TEXT,
			year TEXT,
			pages TEXT,
			raw TEXT NOT NULL,
			source_file TEXT NOT NULL,
			indexed_at TEXT NOT NULL,
			UNIQUE(cite_key, source_file)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_cite_key ON entries(cite_key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Indexed int
	Failed  int
}

// Index upserts the entries of one source file into the library, printing a
// per-file status line to w.
func (s *Store) Index(ctx context.Context, sourceFile string, items []*types.BibItem, w io.Writer) (IndexSummary, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries
		(cite_key, entry_type, title, author, year, pages, raw, source_file, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cite_key, source_file) DO UPDATE SET
			entry_type = excluded.entry_type,
			title = excluded.title,
			author = excluded.author,
			year = excluded.year,
			pages = excluded.pages,
			raw = excluded.raw,
			indexed_at = excluded.indexed_at`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	var summary IndexSummary
	for _, item := range items {
		title, _ := item.Field("title")
		author, _ := item.Field("author")
		year, _ := item.Field("year")
		pages, _ := item.Field("pages")
		if _, err := stmt.ExecContext(ctx, item.CiteKey, item.EntryType,
			title, author, year, pages, item.Raw, sourceFile, now); err != nil {
			summary.Failed++
			fmt.Fprintf(w, "failed  %s: %v\n", item.CiteKey, err)
			continue
		}
		summary.Indexed++
	}
	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing index transaction: %w", err)
	}
	fmt.Fprintf(w, "indexed %s (%d entries, %d failed)\n", sourceFile, summary.Indexed, summary.Failed)
	return summary, nil
}

// Duplicate describes a cite key that appears more than once in the library.
type Duplicate struct {
	CiteKey string
	Sources []string
}

// Duplicates returns the cite keys recorded under more than one source file,
// with the source files that share them.
func (s *Store) Duplicates(ctx context.Context) ([]Duplicate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cite_key, group_concat(source_file, '|')
		FROM entries
		GROUP BY cite_key
		HAVING count(*) > 1
		ORDER BY cite_key`)
	if err != nil {
		return nil, fmt.Errorf("querying duplicates: %w", err)
	}
	defer rows.Close()

	var dups []Duplicate
	for rows.Next() {
		var d Duplicate
		var sources string
		if err := rows.Scan(&d.CiteKey, &sources); err != nil {
			return nil, fmt.Errorf("scanning duplicate row: %w", err)
		}
		d.Sources = strings.Split(sources, "|")
		dups = append(dups, d)
	}
	return dups, rows.Err()
}

// Count returns the number of entries in the library.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
