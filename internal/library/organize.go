// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stats summarizes the note collection.
type Stats struct {
	TotalNotes int
	Topics     map[string]int
}

// Match is one keyword hit in the note collection.
type Match struct {
	Topic string
	Title string
	Path  string
}

// Topics lists topic directories in sorted order.
func (l *Library) Topics() ([]string, error) {
	entries, err := os.ReadDir(l.notesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading notes directory: %w", err)
	}

	var topics []string
	for _, entry := range entries {
		// The index database lives alongside topic directories.
		if entry.IsDir() && entry.Name() != indexDir {
			topics = append(topics, entry.Name())
		}
	}
	sort.Strings(topics)
	return topics, nil
}

// Stats counts notes per topic.
func (l *Library) Stats() (Stats, error) {
	stats := Stats{Topics: map[string]int{}}
	topics, err := l.Topics()
	if err != nil {
		return stats, err
	}
	for _, topic := range topics {
		notes, err := l.topicNotes(topic)
		if err != nil {
			return stats, err
		}
		stats.Topics[topic] = len(notes)
		stats.TotalNotes += len(notes)
	}
	return stats, nil
}

// SearchByKeyword scans all notes for a case-insensitive keyword match in
// title or body, up to the configured result limit.
func (l *Library) SearchByKeyword(keyword string) ([]Match, error) {
	needle := strings.ToLower(keyword)
	topics, err := l.Topics()
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, topic := range topics {
		notes, err := l.topicNotes(topic)
		if err != nil {
			return nil, err
		}
		for _, notePath := range notes {
			data, err := os.ReadFile(notePath)
			if err != nil {
				l.log.WithError(err).WithField("path", notePath).Debug("reading note")
				continue
			}
			if !strings.Contains(strings.ToLower(string(data)), needle) {
				continue
			}
			matches = append(matches, Match{
				Topic: topic,
				Title: noteTitle(string(data), notePath),
				Path:  notePath,
			})
			if len(matches) >= l.maxResults {
				return matches, nil
			}
		}
	}
	return matches, nil
}

// topicNotes lists markdown note paths in one topic directory, sorted.
func (l *Library) topicNotes(topic string) ([]string, error) {
	dir := filepath.Join(l.notesDir, topic)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading topic %s: %w", topic, err)
	}

	var notes []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			notes = append(notes, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(notes)
	return notes, nil
}

// noteTitle returns the first markdown heading, falling back to the
// filename.
func noteTitle(content, path string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
