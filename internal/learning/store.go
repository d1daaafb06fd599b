package learning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const storeFileName = "learned_qa.json"

// Store is the durable mapping of normalized query -> AnswerRecord.
// Every mutating call persists before returning; if the write fails the
// in-memory state is rolled back so it never diverges from disk.
type Store struct {
	mu       sync.RWMutex
	records  map[string]AnswerRecord
	path     string
	disabled bool
}

// OpenStore loads (or initializes) the learned store under dir. With
// disabled set, Get/Put/Remove become no-ops and the disk is never touched.
func OpenStore(dir string, disabled bool) (*Store, error) {
	s := &Store{
		records:  make(map[string]AnswerRecord),
		path:     filepath.Join(dir, storeFileName),
		disabled: disabled,
	}
	if disabled {
		return s, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "load", Path: dir, Err: err}
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StorageError{Op: "load", Path: s.path, Err: err}
	}
	if err := validateStoreDocument(data); err != nil {
		return &StorageError{Op: "load", Path: s.path, Err: err}
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return &StorageError{Op: "load", Path: s.path, Err: err}
	}
	return nil
}

// Get returns the record for a normalized key, if present.
func (s *Store) Get(key string) (AnswerRecord, bool) {
	if s.disabled {
		return AnswerRecord{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok
}

// Put upserts a record, replacing any existing record for the key entirely.
func (s *Store) Put(rec AnswerRecord) error {
	if s.disabled {
		return nil
	}
	if rec.NormalizedQuery == "" {
		return fmt.Errorf("refusing to store record with empty key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[rec.NormalizedQuery]
	s.records[rec.NormalizedQuery] = rec
	if err := s.persistLocked(); err != nil {
		if existed {
			s.records[rec.NormalizedQuery] = prev
		} else {
			delete(s.records, rec.NormalizedQuery)
		}
		return &StorageError{Op: "put", Path: s.path, Err: err}
	}
	return nil
}

// Remove deletes the record for key if present; removing a missing key is a
// no-op.
func (s *Store) Remove(key string) error {
	if s.disabled {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[key]
	if !existed {
		return nil
	}
	delete(s.records, key)
	if err := s.persistLocked(); err != nil {
		s.records[key] = prev
		return &StorageError{Op: "remove", Path: s.path, Err: err}
	}
	return nil
}

// Keys returns all normalized keys, sorted for deterministic scans.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns a copy of the query -> answer mapping for export.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.records))
	for k, rec := range s.records {
		out[k] = rec.Answer
	}
	return out
}

// persistLocked writes the store to a temp file in the same directory and
// renames it over the target, so a crash mid-write leaves either the old
// or the new file, never a hybrid. Caller must hold mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(s.path, data)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
