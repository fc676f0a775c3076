// Package move relocates and deletes files. Collision handling is explicit:
// Relocate returns a closed set of outcomes (moved, aborted, failed) and asks
// a CollisionResolver for a new name while the computed target already
// exists, so the caller never sees control flow smuggled through errors.
package move

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"declutter/internal/errors"
	"declutter/internal/log"
)

// Status classifies the result of a relocation.
type Status int

// Relocation outcomes
const (
	Moved Status = iota
	Aborted
	Failed
)

// Outcome is the result of a Relocate call. NewPath is set only for Moved;
// Err only for Failed. Aborted is the user declining to rename on collision,
// which is an explicit skip, not an error.
type Outcome struct {
	Status  Status
	NewPath string
	Err     error
}

// CollisionResolver drives the collision sub-dialog. Rename is asked while
// the target exists; returning ok=false aborts the move, otherwise newName
// replaces the filename within the destination directory and the collision
// check runs again.
type CollisionResolver interface {
	Rename(target string) (newName string, ok bool)
}

// Mover performs the filesystem side of filing decisions.
type Mover struct{}

// New creates a Mover.
func New() *Mover {
	return &Mover{}
}

// Relocate moves path into destDir under its own basename, running the
// collision loop until a free target is settled or the resolver aborts. The
// filesystem move happens only after a non-colliding target is chosen.
func (m *Mover) Relocate(path, destDir string, resolver CollisionResolver) Outcome {
	target := filepath.Join(destDir, filepath.Base(path))

	for {
		_, err := os.Stat(target)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return Outcome{Status: Failed, Err: errors.NewFileError("cannot check destination", target, errors.MoveFailed, err)}
		}

		newName, ok := resolver.Rename(target)
		if !ok {
			log.Debug("move aborted at collision: %s", target)
			return Outcome{Status: Aborted}
		}
		target = filepath.Join(destDir, filepath.Base(newName))
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Outcome{Status: Failed, Err: errors.NewFileError("source file does not exist", path, errors.SourceMissing, err)}
		}
		return Outcome{Status: Failed, Err: errors.NewFileError("cannot access source file", path, classify(err), err)}
	}

	if err := rename(path, target); err != nil {
		return Outcome{Status: Failed, Err: errors.NewFileError("cannot move file", path, classify(err), err)}
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	log.Debug("moved %s -> %s", path, abs)
	return Outcome{Status: Moved, NewPath: abs}
}

// Delete removes the file outright.
func (m *Mover) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("file is already gone", path, errors.SourceMissing, err)
		}
		if os.IsPermission(err) {
			return errors.NewFileError("cannot delete file", path, errors.PermissionDenied, err)
		}
		return errors.NewFileError("cannot delete file", path, errors.DeleteFailed, err)
	}
	log.Debug("deleted %s", path)
	return nil
}

// rename moves src to dst, falling back to copy-and-remove when the
// destination is on a different filesystem.
func rename(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyAndRemove(src, dst)
}

func copyAndRemove(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func classify(err error) errors.Kind {
	if os.IsPermission(err) {
		return errors.PermissionDenied
	}
	return errors.MoveFailed
}
