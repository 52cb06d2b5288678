// Package observability provides the append-only run log that records what
// each msbee invocation did to the vault.
package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event types emitted during a run.
const (
	EventRunStarted     = "run.started"
	EventVaultStamped   = "vault.stamped"
	EventTasksExtracted = "tasks.extracted"
	EventSummarizer     = "summarizer.completed"
	EventNoteUpdated    = "note.updated"
	EventNoteMissing    = "note.missing"
)

// Event is one record in the run log.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"` // INFO, WARN, ERROR
	Type    string         `json:"type"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventLog appends run events to durable storage and reads them back for
// display. Implementations must be safe for use from a single process;
// concurrent processes sharing one log are out of scope.
type EventLog interface {
	Append(event Event) error
	Recent(n int) ([]Event, error)
	Close() error
}

// jsonlEventLog stores events as one JSON object per line.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog opens (or creates) the append-only run log at path.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	return &jsonlEventLog{path: path, file: f}, nil
}

func (l *jsonlEventLog) Append(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling run event: %w", err)
	}
	data = append(data, '\n')
	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("appending run event: %w", err)
	}
	return nil
}

// Recent returns the last n events in chronological order. Lines that fail
// to decode are skipped; a half-written trailing line must not poison the
// whole log.
func (l *jsonlEventLog) Recent(n int) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log for reading: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if json.Unmarshal(scanner.Bytes(), &ev) != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning run log: %w", err)
	}

	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

func (l *jsonlEventLog) Close() error {
	return l.file.Close()
}

// Emit appends an event to log, silently doing nothing when log is nil.
// Run logging is best-effort and never fails a run.
func Emit(log EventLog, level, eventType, msg string, data map[string]any) {
	if log == nil {
		return
	}
	_ = log.Append(Event{Level: level, Type: eventType, Message: msg, Data: data})
}
