package tone

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/alkime/jailu/pkg/collections"
)

// StorageKey names the persisted custom tone list.
const StorageKey = "jaiLuLesCGU_customTones"

// Store persists the ordered list of custom tones as a JSON file.
//
// Write failures are logged and do not fail the operation: the in-memory
// list stays authoritative for the lifetime of the process.
type Store struct {
	mu     sync.Mutex
	path   string
	tones  []Custom
	logger *slog.Logger
}

// NewStore creates a store rooted in dir. Nothing is read until Load.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   filepath.Join(dir, StorageKey+".json"),
		tones:  []Custom{},
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// storedTone mirrors Custom with presence tracking for validation on read.
type storedTone struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsCustom    *bool   `json:"isCustom"`
}

// Load reads the persisted list, dropping malformed entries.
func (s *Store) Load() []Custom {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tones = s.read()
	return s.snapshot()
}

func (s *Store) read() []Custom {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("Failed to read custom tones", "path", s.path, "error", err)
		}
		return []Custom{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Error("Failed to parse custom tones", "path", s.path, "error", err)
		return []Custom{}
	}

	decoded := collections.Apply(raw, decodeStored)
	valid := collections.Filter(decoded, func(c *Custom) bool { return c != nil })

	if dropped := len(raw) - len(valid); dropped > 0 {
		s.logger.Debug("Dropped malformed custom tones", "count", dropped)
	}

	return collections.Apply(valid, func(c *Custom) Custom { return *c })
}

func decodeStored(msg json.RawMessage) *Custom {
	var st storedTone
	if err := json.Unmarshal(msg, &st); err != nil {
		return nil
	}
	if st.ID == nil || st.Name == nil || st.Description == nil || st.IsCustom == nil || !*st.IsCustom {
		return nil
	}
	return &Custom{
		ID:          *st.ID,
		Name:        *st.Name,
		Description: *st.Description,
		IsCustom:    true,
	}
}

// List returns the current custom tones.
func (s *Store) List() []Custom {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Find returns the custom tone with the given id.
func (s *Store) Find(id string) (Custom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return collections.Find(s.tones, func(c Custom) bool { return c.ID == id })
}

// Add appends a tone and persists the list.
func (s *Store) Add(c Custom) []Custom {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.IsCustom = true
	s.tones = append(s.snapshot(), c)
	s.save()

	return s.snapshot()
}

// Remove deletes the tone with the given id and persists the list.
func (s *Store) Remove(id string) []Custom {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tones = collections.Filter(s.tones, func(c Custom) bool { return c.ID != id })
	s.save()

	return s.snapshot()
}

func (s *Store) snapshot() []Custom {
	out := make([]Custom, len(s.tones))
	copy(out, s.tones)
	return out
}

func (s *Store) save() {
	if err := s.write(); err != nil {
		s.logger.Error("Failed to save custom tones", "path", s.path, "error", err)
	}
}

func (s *Store) write() error {
	data, err := json.Marshal(s.tones)
	if err != nil {
		return fmt.Errorf("failed to encode custom tones: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // Tone definitions are not secret
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write custom tones: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace custom tones file: %w", err)
	}

	return nil
}
