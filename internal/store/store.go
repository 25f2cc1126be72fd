package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"planner-bot/internal/model"
)

// Store keeps every user record in memory and mirrors the whole collection
// to a single indented JSON document on every mutation. One mutex guards
// the read-mutate-persist critical section; concurrent processes writing
// the same file are not coordinated (last writer wins).
type Store struct {
	path  string
	mu    sync.Mutex
	users map[int64]*model.UserRecord
}

// Open loads the backing file. A missing file means an empty collection;
// a present but malformed file is an error the caller should treat as fatal.
func Open(path string) (*Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	s := &Store{path: path, users: make(map[int64]*model.UserRecord)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read store %q: %w", path, err)
	}

	var doc map[string]*model.UserRecord
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse store %q: %w", path, err)
	}

	for key, rec := range doc {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse store %q: bad user key %q", path, key)
		}
		rec.AssignIDs()
		s.users[id] = rec
	}

	return s, nil
}

// Update runs fn against the user's record inside the critical section and
// persists the whole collection afterwards. The record is created with
// defaults on first access. If fn returns an error nothing is written.
func (s *Store) Update(userID int64, fn func(*model.UserRecord) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateLocked(userID)
	if err := fn(rec); err != nil {
		return err
	}
	return s.saveLocked()
}

// View runs fn against the user's record without persisting afterwards.
// A first-time user is still created and persisted immediately, matching
// the get-or-create contract.
func (s *Store) View(userID int64, fn func(*model.UserRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.users[userID]
	rec := s.getOrCreateLocked(userID)
	if !existed {
		if err := s.saveLocked(); err != nil {
			return err
		}
	}
	fn(rec)
	return nil
}

// UserIDs lists every known user in ascending order.
func (s *Store) UserIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Flush rewrites the backing file with the current in-memory state.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) getOrCreateLocked(userID int64) *model.UserRecord {
	rec, ok := s.users[userID]
	if !ok {
		rec = model.NewUserRecord()
		s.users[userID] = rec
	}
	return rec
}

func (s *Store) saveLocked() error {
	doc := make(map[string]*model.UserRecord, len(s.users))
	for id, rec := range s.users {
		doc[strconv.FormatInt(id, 10)] = rec
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write store %q: %w", s.path, err)
	}
	return nil
}

// ensureDir creates the parent directory for the store file if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir %q: %w", dir, err)
	}
	return nil
}
