// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	indexDir = "index"
	dbFile   = "library.db"
)

// Index is a SQLite index over the note collection for fast keyword
// queries.
type Index struct {
	db         *sql.DB
	maxResults int
}

// IndexSummary holds counts from an index rebuild.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
}

// Total returns the number of notes processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped
}

// OpenIndex opens or creates the library index at notesDir/index/library.db.
func (l *Library) OpenIndex() (*Index, error) {
	dbDir := filepath.Join(l.notesDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{db: db, maxResults: l.maxResults}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

func (i *Index) createSchema() error {
	_, err := i.db.Exec(`CREATE TABLE IF NOT EXISTS notes (
		path TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		file_mod_time TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Rebuild walks the note collection and refreshes the index. Unchanged
// notes are detected by file modification time and skipped; notes whose
// files have disappeared are removed.
func (l *Library) Rebuild(ctx context.Context, idx *Index) (IndexSummary, error) {
	var summary IndexSummary

	topics, err := l.Topics()
	if err != nil {
		return summary, err
	}

	seen := map[string]bool{}
	for _, topic := range topics {
		notes, err := l.topicNotes(topic)
		if err != nil {
			return summary, err
		}
		for _, notePath := range notes {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}
			seen[notePath] = true

			info, err := os.Stat(notePath)
			if err != nil {
				continue
			}
			modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

			var storedModTime string
			err = idx.db.QueryRowContext(ctx,
				`SELECT file_mod_time FROM notes WHERE path = ?`, notePath,
			).Scan(&storedModTime)
			if err == nil && storedModTime == modTime {
				summary.Skipped++
				continue
			}
			isUpdate := err == nil

			data, err := os.ReadFile(notePath)
			if err != nil {
				l.log.WithError(err).WithField("path", notePath).Debug("reading note")
				continue
			}
			content := string(data)

			_, err = idx.db.ExecContext(ctx,
				`INSERT INTO notes (path, topic, title, content, file_mod_time)
				 VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT(path) DO UPDATE SET
					topic=excluded.topic, title=excluded.title,
					content=excluded.content, file_mod_time=excluded.file_mod_time`,
				notePath, topic, noteTitle(content, notePath), content, modTime,
			)
			if err != nil {
				return summary, fmt.Errorf("indexing %s: %w", notePath, err)
			}
			if isUpdate {
				summary.Updated++
			} else {
				summary.Indexed++
			}
		}
	}

	// Drop entries whose files no longer exist.
	rows, err := idx.db.QueryContext(ctx, `SELECT path FROM notes`)
	if err != nil {
		return summary, fmt.Errorf("listing indexed notes: %w", err)
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return summary, err
		}
		if !seen[path] {
			stale = append(stale, path)
		}
	}
	rows.Close()
	for _, path := range stale {
		if _, err := idx.db.ExecContext(ctx, `DELETE FROM notes WHERE path = ?`, path); err != nil {
			return summary, fmt.Errorf("removing stale entry: %w", err)
		}
	}

	return summary, nil
}

// Query returns indexed notes whose title or content contain the keyword,
// up to the configured result limit.
func (i *Index) Query(ctx context.Context, keyword string) ([]Match, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	rows, err := i.db.QueryContext(ctx,
		`SELECT topic, title, path FROM notes
		 WHERE lower(title) LIKE ? OR lower(content) LIKE ?
		 ORDER BY topic, title LIMIT ?`,
		pattern, pattern, i.maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Topic, &m.Title, &m.Path); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
