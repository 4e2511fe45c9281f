package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepository appends events to a JSONL file so counters survive across
// process runs. Reads scan the whole file; the event log is small enough
// that this stays cheap.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileRepository{path: filepath.Join(dataDir, "events.jsonl")}, nil
}

var _ Repository = (*FileRepository)(nil)

func (r *FileRepository) RecordEvent(eventType EventType, at time.Time, metadata EventMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.readLocked()
	if err != nil {
		return err
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	line, err := json.Marshal(Event{
		ID:        len(events) + 1,
		Type:      eventType,
		Timestamp: at,
		Metadata:  string(metadataJSON),
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

func (r *FileRepository) GetEvents(since time.Time, eventTypes []EventType) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.readLocked()
	if err != nil {
		return nil, err
	}

	typeFilter := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0, len(events))
	for _, event := range events {
		if event.Timestamp.Before(since) {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}
	return result, nil
}

func (r *FileRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (r *FileRepository) readLocked() ([]Event, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			// Skip a torn trailing line rather than fail the whole log.
			continue
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
