// Package audit records folder-creation and transfer runs to an append-only
// JSONL event log under the project settings directory. The core engine
// never writes here; only the orchestrator appends events after an
// operation actually changed something.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of audit event.
type EventType string

const (
	EventFolderCreate EventType = "FOLDER_CREATE"
	EventTransfer     EventType = "TRANSFER"
)

// Event is one line of the event log.
type Event struct {
	RunID     string    `json:"run_id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Paths     []string  `json:"paths,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// NewRunID returns a fresh identifier shared by all events of one run.
func NewRunID() string {
	return uuid.NewString()
}

// Writer appends events to one JSONL log file.
type Writer struct {
	path string
}

// NewWriter returns a writer for the given log path. The file and its
// directory are created lazily on first append.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append writes one event as a JSON line. A zero timestamp is filled with
// the current time.
func (w *Writer) Append(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close()

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// ReadAll parses every event in the log at path. A missing log is an empty
// history, not an error.
func ReadAll(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("corrupt event log line: %w", err)
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}
