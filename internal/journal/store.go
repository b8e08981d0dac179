package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var ErrEmptyNote = errors.New("note text is empty")

const notesFile = "devotional_notes_v1.json"

// Store holds the journal, newest entry first.
type Store interface {
	// Notes returns all entries. An unreadable file yields an empty journal.
	Notes() []Note

	// Save rejects blank text, prepends a new entry and returns the updated
	// journal.
	Save(text string) ([]Note, error)

	// Delete removes the entry with the given id, keeping the rest in
	// relative order, and returns the updated journal.
	Delete(id string) ([]Note, error)
}

type fileStore struct {
	path string
	loc  *time.Location
	now  func() time.Time
	mu   sync.Mutex
}

func NewStore(dir string, loc *time.Location) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal dir: %w", err)
	}
	return &fileStore{
		path: filepath.Join(dir, notesFile),
		loc:  loc,
		now:  time.Now,
	}, nil
}

func (s *fileStore) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *fileStore) Save(text string) ([]Note, error) {
	if isBlank(text) {
		return nil, ErrEmptyNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	note := Note{
		ID:   strconv.FormatInt(now.UnixMilli(), 10),
		Date: now.In(s.loc).Format("02/01/2006"),
		Text: text,
	}

	updated := append([]Note{note}, s.load()...)
	if err := s.persist(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *fileStore) Delete(id string) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.load()
	updated := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			updated = append(updated, n)
		}
	}

	if err := s.persist(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *fileStore) load() []Note {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return []Note{}
	}
	var notes []Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		// Corrupt journal reads as empty rather than failing.
		return []Note{}
	}
	return notes
}

func (s *fileStore) persist(notes []Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func isBlank(text string) bool {
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
