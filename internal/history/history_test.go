package history_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"declutter/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	rec, err := history.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, rec.Shortcuts)
	assert.Empty(t, rec.SavedPaths)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	rec, err := history.Load(path)
	assert.Error(t, err, "malformed history should be reported")
	require.NotNil(t, rec, "a usable empty record must still come back")
	assert.Empty(t, rec.SavedPaths)
}

func TestRecordSetSemantics(t *testing.T) {
	rec := history.NewRecord()
	rec.AddPath("/tmp/a.txt")
	rec.AddPath("/tmp/a.txt")
	rec.AddPath("/tmp/b.txt")

	assert.Len(t, rec.SavedPaths, 2)
	assert.True(t, rec.Resolved("/tmp/a.txt"))
	assert.False(t, rec.Resolved("/tmp/c.txt"))
}

func TestMergeLastWriteWins(t *testing.T) {
	older := history.NewRecord()
	older.SetShortcut("p", "/old/pics")
	older.AddPath("/tmp/a.txt")

	newer := history.NewRecord()
	newer.SetShortcut("p", "/new/pics")
	newer.AddPath("/tmp/b.txt")

	older.Merge(newer)
	assert.Equal(t, "/new/pics", older.Shortcuts["p"])
	assert.ElementsMatch(t, []string{"/tmp/a.txt", "/tmp/b.txt"}, older.SavedPaths)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	rec := history.NewRecord()
	rec.SetShortcut("p", "/tmp/pics")
	rec.SetShortcut("d", "/tmp/docs")
	rec.AddPath("/tmp/pics/a.txt")
	require.NoError(t, history.Save(rec, path))

	loaded, err := history.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pics", loaded.Shortcuts["p"])
	assert.Equal(t, "/tmp/docs", loaded.Shortcuts["d"])
	assert.True(t, loaded.Resolved("/tmp/pics/a.txt"))
}

func TestSaveMergesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	first := history.NewRecord()
	first.SetShortcut("p", "/tmp/pics")
	first.AddPath("/tmp/pics/a.txt")
	require.NoError(t, history.Save(first, path))

	// A later session that never saw the first session's entries must not
	// clobber them.
	second := history.NewRecord()
	second.SetShortcut("d", "/tmp/docs")
	second.SetShortcut("p", "/tmp/pictures")
	second.AddPath("/tmp/docs/b.txt")
	require.NoError(t, history.Save(second, path))

	loaded, err := history.Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Resolved("/tmp/pics/a.txt"))
	assert.True(t, loaded.Resolved("/tmp/docs/b.txt"))
	assert.Equal(t, "/tmp/pictures", loaded.Shortcuts["p"], "later write wins on key collision")
	assert.Equal(t, "/tmp/docs", loaded.Shortcuts["d"])
}

func TestSaveIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	rec := history.NewRecord()
	rec.SetShortcut("p", "/tmp/pics")
	rec.AddPath("/tmp/pics/a.txt")

	require.NoError(t, history.Save(rec, path))
	firstBytes, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, history.Save(rec, path))
	secondBytes, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(firstBytes), string(secondBytes))
}

func TestSavedFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	rec := history.NewRecord()
	rec.SetShortcut("p", "/tmp/pics")
	rec.AddPath("/tmp/pics/a.txt")
	require.NoError(t, history.Save(rec, path))

	var doc map[string]json.RawMessage
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "shortcuts")
	assert.Contains(t, doc, "savedpaths")
}
