// Package history persists the conversation log used to give chat replies
// continuity across invocations.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// memoryCap bounds how many entries are held after load.
	memoryCap = 200
	// diskCap bounds how many entries are written back.
	diskCap = 400
)

// Roles recorded in history entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one logged exchange half.
type Entry struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Log is the on-disk conversation history.
type Log struct {
	path    string
	entries []Entry
}

// Open loads the history file at path. A missing or corrupt file yields an
// empty log; history is a convenience, never a blocker.
func Open(path string) *Log {
	l := &Log{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return l
	}
	if len(entries) > memoryCap {
		entries = entries[len(entries)-memoryCap:]
	}
	l.entries = entries
	return l
}

// Append records an exchange half.
func (l *Log) Append(role, content string) {
	l.entries = append(l.entries, Entry{Role: role, Content: content, At: time.Now()})
	if len(l.entries) > memoryCap {
		l.entries = l.entries[len(l.entries)-memoryCap:]
	}
}

// Save writes the history back, merging with what other invocations wrote
// in the meantime is out of scope: last writer wins, capped at diskCap.
func (l *Log) Save() error {
	entries := l.entries
	if len(entries) > diskCap {
		entries = entries[len(entries)-diskCap:]
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o600); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Entries returns a copy of the in-memory log.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Recent selects the newest entries whose estimated token cost fits budget,
// returned in chronological order. est maps text to tokens.
func (l *Log) Recent(budget int, est func(string) int) []Entry {
	if budget <= 0 || est == nil {
		return nil
	}

	remaining := budget
	cut := len(l.entries)
	for i := len(l.entries) - 1; i >= 0; i-- {
		cost := est(l.entries[i].Role) + est(l.entries[i].Content)
		if cost > remaining {
			break
		}
		remaining -= cost
		cut = i
	}
	if cut == len(l.entries) {
		return nil
	}
	return append([]Entry(nil), l.entries[cut:]...)
}
