// Package history persists the outcome of past sessions: the shortcut map
// and the set of file paths already accepted at their final location. The
// file is advisory. A missing or corrupt file never stops a run, and saving
// re-reads the file first so entries written by an earlier run are never
// lost.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"declutter/internal/errors"
)

// Record is the persisted aggregate: key -> destination directory, plus the
// set of absolute paths considered resolved. Field names match the on-disk
// JSON document.
type Record struct {
	Shortcuts  map[string]string `json:"shortcuts"`
	SavedPaths []string          `json:"savedpaths"`

	resolved map[string]struct{}
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{
		Shortcuts:  make(map[string]string),
		SavedPaths: []string{},
		resolved:   make(map[string]struct{}),
	}
}

// reindex rebuilds the resolved-path set after unmarshalling.
func (r *Record) reindex() {
	if r.Shortcuts == nil {
		r.Shortcuts = make(map[string]string)
	}
	r.resolved = make(map[string]struct{}, len(r.SavedPaths))
	deduped := r.SavedPaths[:0]
	for _, p := range r.SavedPaths {
		abs := absolute(p)
		if _, seen := r.resolved[abs]; seen {
			continue
		}
		r.resolved[abs] = struct{}{}
		deduped = append(deduped, abs)
	}
	r.SavedPaths = deduped
}

// AddPath records a path as resolved. Paths are stored absolute; adding the
// same path twice is a no-op (set semantics).
func (r *Record) AddPath(path string) {
	abs := absolute(path)
	if r.resolved == nil {
		r.resolved = make(map[string]struct{})
	}
	if _, seen := r.resolved[abs]; seen {
		return
	}
	r.resolved[abs] = struct{}{}
	r.SavedPaths = append(r.SavedPaths, abs)
}

// Resolved reports whether path was already accepted at its final location.
func (r *Record) Resolved(path string) bool {
	_, ok := r.resolved[absolute(path)]
	return ok
}

// SetShortcut records a shortcut binding, last write wins.
func (r *Record) SetShortcut(key, dir string) {
	if r.Shortcuts == nil {
		r.Shortcuts = make(map[string]string)
	}
	r.Shortcuts[key] = absolute(dir)
}

// Merge unions other into r. Other's shortcuts overwrite on key collision;
// saved paths are unioned.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for key, dir := range other.Shortcuts {
		r.SetShortcut(key, dir)
	}
	for _, p := range other.SavedPaths {
		r.AddPath(p)
	}
}

// Load reads the record at path. It always returns a usable record: when the
// file is missing, unreadable, or malformed the record is empty and the
// returned error says why, for the caller to report. History is never fatal.
func Load(path string) (*Record, error) {
	rec := NewRecord()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rec, nil
		}
		return rec, errors.NewFileError("cannot read history file", path, errors.HistoryCorrupt, err)
	}

	if err := json.Unmarshal(data, rec); err != nil {
		return NewRecord(), errors.NewFileError("malformed history file", path, errors.HistoryCorrupt, err)
	}
	rec.reindex()
	return rec, nil
}

// Save merges rec into whatever is on disk at path and writes the result.
// The file is re-read at save time so concurrent external edits and entries
// from interrupted runs survive, and the write goes through a temp file plus
// rename so the history is never left half-written.
func Save(rec *Record, path string) error {
	onDisk, _ := Load(path)
	onDisk.Merge(rec)
	sort.Strings(onDisk.SavedPaths)

	data, err := json.MarshalIndent(onDisk, "", "    ")
	if err != nil {
		return errors.NewFileError("cannot encode history", path, errors.HistoryWriteFailed, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".declutter-*.json")
	if err != nil {
		return errors.NewFileError("cannot write history", path, errors.HistoryWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewFileError("cannot write history", path, errors.HistoryWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewFileError("cannot write history", path, errors.HistoryWriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewFileError("cannot replace history file", path, errors.HistoryWriteFailed, err)
	}
	return nil
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
