package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Staged is a fully written temporary file waiting to replace its target.
type Staged struct {
	Target string
	temp   string
}

// Stage writes data to a temporary file next to target. The target itself is
// not touched until Commit.
func Stage(target string, data []byte) (*Staged, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", target, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("stage %s: %w", target, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("stage %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("stage %s: %w", target, err)
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("stage %s: %w", target, err)
	}
	return &Staged{Target: target, temp: tmp}, nil
}

// Commit renames the staged file over its target.
func (s *Staged) Commit() error {
	if err := os.Rename(s.temp, s.Target); err != nil {
		os.Remove(s.temp)
		return fmt.Errorf("replace %s: %w", s.Target, err)
	}
	return nil
}

// Discard removes the staged file.
func (s *Staged) Discard() {
	if s != nil {
		os.Remove(s.temp)
	}
}

// WriteFileAtomic replaces path with data via a temporary file and rename.
func WriteFileAtomic(path string, data []byte) error {
	st, err := Stage(path, data)
	if err != nil {
		return err
	}
	return st.Commit()
}
