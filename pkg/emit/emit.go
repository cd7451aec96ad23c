package emit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
	"github.com/jc-juarez/lazarus-statusgen/pkg/store"
)

// Emitter turns a validated registry into one generated source file.
//
// Emit must be deterministic: the same registry always yields the same bytes.
type Emitter interface {
	Target() string
	Path() string
	Emit(reg *codes.Registry) []byte
}

// Artifact is the rendered output of one emitter.
type Artifact struct {
	Target  string
	Path    string
	Content []byte
}

// Render runs every emitter over reg, in order.
func Render(reg *codes.Registry, emitters ...Emitter) []Artifact {
	out := make([]Artifact, 0, len(emitters))
	for _, e := range emitters {
		out = append(out, Artifact{Target: e.Target(), Path: e.Path(), Content: e.Emit(reg)})
	}
	return out
}

// Staged holds every artifact in a temporary file next to its target.
type Staged struct {
	files []*store.Staged
}

// StageAll writes every artifact to a temporary file. If any of them fails,
// the ones already staged are discarded and no target is touched.
func StageAll(artifacts []Artifact) (*Staged, error) {
	s := &Staged{files: make([]*store.Staged, 0, len(artifacts))}
	for _, a := range artifacts {
		st, err := store.Stage(a.Path, a.Content)
		if err != nil {
			s.Discard()
			return nil, fmt.Errorf("write %s artifact: %w", a.Target, err)
		}
		s.files = append(s.files, st)
	}
	return s, nil
}

// Commit renames every staged file over its target.
func (s *Staged) Commit() error {
	var errs []error
	for _, st := range s.files {
		if err := st.Commit(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard removes every staged file.
func (s *Staged) Discard() {
	if s == nil {
		return
	}
	for _, st := range s.files {
		st.Discard()
	}
}

// WriteAll replaces every artifact on disk. All files are staged before the
// first one is renamed into place, so a staging failure leaves every target
// untouched.
func WriteAll(artifacts []Artifact) error {
	staged, err := StageAll(artifacts)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Stale returns the paths of artifacts whose file content differs from the
// rendered content, including missing files.
func Stale(artifacts []Artifact) ([]string, error) {
	var stale []string
	for _, a := range artifacts {
		current, err := os.ReadFile(a.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stale = append(stale, a.Path)
				continue
			}
			return nil, fmt.Errorf("read %s artifact: %w", a.Target, err)
		}
		if !bytes.Equal(current, a.Content) {
			stale = append(stale, a.Path)
		}
	}
	return stale, nil
}

// oneLine folds a description onto a single line.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// fileBase returns the last element of a slash or OS separated path.
func fileBase(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
