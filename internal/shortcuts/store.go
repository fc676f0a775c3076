// Package shortcuts maps single-character keys to destination directories
// and runs the interactive dialog that collects them.
package shortcuts

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"declutter/internal/errors"
)

// reservedKeys are keys the navigation loop claims for itself. Arrow keys and
// enter arrive as non-printable events and can never collide with a typed
// shortcut, so only the printable reservations are listed.
var reservedKeys = map[string]struct{}{
	"?": {},
	"-": {},
}

// Reserved reports whether key is claimed by the control legend.
func Reserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Store maps shortcut keys to destination directories. Keys are unique; a
// later Add or Merge overwrites.
type Store struct {
	dirs map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{dirs: make(map[string]string)}
}

// Add validates and inserts a binding. The key must be exactly one character
// and not reserved; the directory must exist, be a directory, and be
// writable. On success the mapping is inserted, overwriting any previous
// binding for the key.
func (s *Store) Add(key, dir string) error {
	if utf8.RuneCountInString(key) != 1 {
		return errors.NewInputError("shortcut key must be exactly one character", key, errors.InvalidKeyLength)
	}
	if Reserved(key) {
		return errors.NewInputError("shortcut key is reserved", key, errors.ReservedKey)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.NewInputError("not a directory", dir, errors.NotADirectory)
	}
	if !writable(dir) {
		return errors.NewInputError("directory is not writable", dir, errors.PermissionDenied)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	s.dirs[key] = abs
	return nil
}

// Resolve looks up the destination for key. Pure lookup, no side effects.
func (s *Store) Resolve(key string) (string, bool) {
	dir, ok := s.dirs[key]
	return dir, ok
}

// Merge unions other into s; entries from other overwrite on key collision.
func (s *Store) Merge(other *Store) {
	if other == nil {
		return
	}
	for key, dir := range other.dirs {
		s.dirs[key] = dir
	}
}

// MergeHistory loads persisted bindings without re-validating them. A
// destination that has since vanished surfaces as a move failure when used,
// not as a reason to refuse the whole history.
func (s *Store) MergeHistory(bindings map[string]string) {
	for key, dir := range bindings {
		if utf8.RuneCountInString(key) != 1 || Reserved(key) {
			continue
		}
		s.dirs[key] = dir
	}
}

// Keys returns the bound keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.dirs))
	for key := range s.dirs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of bindings.
func (s *Store) Len() int {
	return len(s.dirs)
}

// Map returns a copy of the bindings, for persisting.
func (s *Store) Map() map[string]string {
	out := make(map[string]string, len(s.dirs))
	for key, dir := range s.dirs {
		out[key] = dir
	}
	return out
}

// writable probes effective write access by creating and removing a
// throwaway file, which honors ACLs and read-only mounts unlike a mode-bit
// check.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".declutter-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
