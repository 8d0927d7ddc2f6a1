// Package history keeps a bounded in-memory log of recent lookups.
package history

import (
	"sync"
	"time"
)

// Entry records one completed search.
type Entry struct {
	Word           string    `json:"word"`
	TargetLanguage string    `json:"target_language"`
	Timestamp      time.Time `json:"timestamp"`
	HasDefinition  bool      `json:"has_definition"`
	HasTranslation bool      `json:"has_translation"`
}

// Log is a FIFO of the most recent entries, newest first. Once capacity is
// reached the oldest entry is dropped. Safe for concurrent use.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
}

func NewLog(capacity int) *Log {
	return &Log{capacity: capacity}
}

// Record prepends entry, evicting the oldest when over capacity.
func (l *Log) Record(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Entries returns a copy, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear drops all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
