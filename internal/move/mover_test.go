package move_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"declutter/internal/errors"
	"declutter/internal/move"
	"declutter/internal/ui"
	"declutter/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neverAsked fails the test if the collision dialog fires.
type neverAsked struct{ t *testing.T }

func (n neverAsked) Rename(target string) (string, bool) {
	n.t.Fatalf("unexpected collision dialog for %s", target)
	return "", false
}

// scriptedResolver returns canned rename answers.
type scriptedResolver struct {
	answers []string // empty string means decline
}

func (s *scriptedResolver) Rename(target string) (string, bool) {
	if len(s.answers) == 0 {
		return "", false
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer == "" {
		return "", false
	}
	return answer, true
}

func TestRelocateNoCollision(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0644))
	dest := testutils.WritableDir(t, tmpDir, "pics")

	outcome := move.New().Relocate(src, dest, neverAsked{t})
	require.Equal(t, move.Moved, outcome.Status)
	assert.Equal(t, filepath.Join(dest, "a.txt"), outcome.NewPath)

	_, err := os.Stat(outcome.NewPath)
	assert.NoError(t, err, "destination should exist after move")
	_, err = os.Stat(src)
	assert.ErrorIs(t, err, os.ErrNotExist, "source should not exist after move")
}

func TestRelocateCollisionAbort(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	dest := testutils.WritableDir(t, tmpDir, "pics")
	existing := filepath.Join(dest, "a.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	outcome := move.New().Relocate(src, dest, &scriptedResolver{})
	assert.Equal(t, move.Aborted, outcome.Status)

	// Both files untouched
	srcBytes, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "new", string(srcBytes))
	destBytes, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(destBytes))
}

func TestRelocateCollisionRenameLoop(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	dest := testutils.WritableDir(t, tmpDir, "pics")
	require.NoError(t, os.WriteFile(filepath.Join(dest, "a.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "b.txt"), []byte("y"), 0644))

	// First rename also collides, second settles
	resolver := &scriptedResolver{answers: []string{"b.txt", "c.txt"}}
	outcome := move.New().Relocate(src, dest, resolver)
	require.Equal(t, move.Moved, outcome.Status)
	assert.Equal(t, filepath.Join(dest, "c.txt"), outcome.NewPath)
	assert.Empty(t, resolver.answers)
}

func TestRelocateSourceMissing(t *testing.T) {
	tmpDir := t.TempDir()
	dest := testutils.WritableDir(t, tmpDir, "pics")

	outcome := move.New().Relocate(filepath.Join(tmpDir, "ghost.txt"), dest, neverAsked{t})
	require.Equal(t, move.Failed, outcome.Status)
	assert.True(t, errors.IsSourceMissing(outcome.Err))
}

func TestDelete(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	mover := move.New()
	require.NoError(t, mover.Delete(path))
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = mover.Delete(path)
	assert.True(t, errors.IsSourceMissing(err))
}

// scriptedLines feeds canned dialog lines to the prompt resolver.
type scriptedLines struct {
	lines []string
}

func (s *scriptedLines) ReadLine(prompt string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestPromptResolver(t *testing.T) {
	t.Run("decline", func(t *testing.T) {
		var buf bytes.Buffer
		r := move.NewPromptResolver(&scriptedLines{lines: []string{"n"}}, ui.NewPrinter(&buf, false))
		_, ok := r.Rename("/tmp/pics/a.txt")
		assert.False(t, ok)
	})

	t.Run("accept with new name", func(t *testing.T) {
		var buf bytes.Buffer
		r := move.NewPromptResolver(&scriptedLines{lines: []string{"yes", "b.txt"}}, ui.NewPrinter(&buf, false))
		name, ok := r.Rename("/tmp/pics/a.txt")
		assert.True(t, ok)
		assert.Equal(t, "b.txt", name)
	})

	t.Run("end of input declines", func(t *testing.T) {
		var buf bytes.Buffer
		r := move.NewPromptResolver(&scriptedLines{}, ui.NewPrinter(&buf, false))
		_, ok := r.Rename("/tmp/pics/a.txt")
		assert.False(t, ok)
	})
}
