package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

const defaultIndent = "  "

// ErrConcurrentModification is returned when the registry file changed
// between the read and the write of an append.
var ErrConcurrentModification = errors.New("registry changed during append")

// listItemRe finds the indentation used for entries of the codes list.
var listItemRe = regexp.MustCompile(`(?m)^([ \t]*)- name:`)

// Store persists the registry as a YAML file.
//
// It performs an unlocked read-modify-write: only one writer may operate on
// a registry file at a time.
type Store struct {
	path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file path.
func (s *Store) Path() string {
	return s.path
}

// ReadRaw returns the registry file bytes verbatim.
func (s *Store) ReadRaw() ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, codes.NewRegistryNotFoundError(s.path)
		}
		return nil, fmt.Errorf("read registry %s: %w", s.path, err)
	}
	return raw, nil
}

// Read parses the registry without decoding internal codes.
func (s *Store) Read() (*codes.Document, error) {
	raw, err := s.ReadRaw()
	if err != nil {
		return nil, err
	}
	return codes.Parse(raw)
}

// Load reads and strictly decodes the registry.
func (s *Store) Load() (*codes.Registry, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	return doc.Registry()
}

// Append adds one record block to the end of the registry file. Existing
// text is preserved byte for byte; only trailing whitespace is normalized.
func (s *Store) Append(sc codes.StatusCode) error {
	raw, err := s.ReadRaw()
	if err != nil {
		return err
	}
	before, err := codes.Parse(raw)
	if err != nil {
		return err
	}
	if len(before.Codes) == 0 {
		return fmt.Errorf("append to %s: registry has no codes list to extend, seed it first", s.path)
	}

	text := strings.TrimRight(string(raw), " \t\r\n") + "\n"
	text += "\n" + FormatEntry(sc, detectIndent(raw))

	after, err := codes.Parse([]byte(text))
	if err != nil {
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	if err := verifyAppend(before, after, sc); err != nil {
		return fmt.Errorf("append to %s: %w", s.path, err)
	}

	// Single writer is still the contract; this only narrows the window.
	current, err := s.ReadRaw()
	if err != nil {
		return err
	}
	if !bytes.Equal(current, raw) {
		return fmt.Errorf("append to %s: %w", s.path, ErrConcurrentModification)
	}
	return WriteFileAtomic(s.path, []byte(text))
}

// FormatEntry serializes one record as a list item indented by indent.
func FormatEntry(sc codes.StatusCode, indent string) string {
	field := indent + "  "
	var b strings.Builder
	fmt.Fprintf(&b, "%s- name: %s\n", indent, sc.Name)
	fmt.Fprintf(&b, "%sinternal: \"%s\"\n", field, codes.FormatCode(sc.Internal))
	fmt.Fprintf(&b, "%shttp: %d\n", field, sc.HTTP)
	fmt.Fprintf(&b, "%sdesc: %s\n", field, formatScalar(sc.Desc))
	return b.String()
}

// formatScalar writes s plain when YAML reads it back unchanged, quoted
// otherwise.
func formatScalar(s string) string {
	if s != "" && !strings.ContainsAny(s, "\r\n") {
		var probe struct {
			V string `yaml:"v"`
		}
		if err := yaml.Unmarshal([]byte("v: "+s), &probe); err == nil && probe.V == s {
			return s
		}
	}
	return strconv.Quote(s)
}

func detectIndent(raw []byte) string {
	if m := listItemRe.FindSubmatch(raw); m != nil {
		return string(m[1])
	}
	return defaultIndent
}

// verifyAppend makes sure the rewritten text decodes to the previous entries
// followed by exactly the new record.
func verifyAppend(before, after *codes.Document, sc codes.StatusCode) error {
	if len(after.Codes) != len(before.Codes)+1 {
		return fmt.Errorf("expected %d entries after append, found %d", len(before.Codes)+1, len(after.Codes))
	}
	for i, e := range before.Codes {
		if after.Codes[i] != e {
			return fmt.Errorf("entry %q changed during append", e.Name)
		}
	}
	last := after.Codes[len(after.Codes)-1]
	v, err := last.Internal.Decode()
	if err != nil {
		return codes.NewMalformedCodeError(last.Name, last.Internal.Text, err)
	}
	got := codes.StatusCode{Name: last.Name, Internal: v, HTTP: last.HTTP, Desc: last.Desc}
	if got != sc {
		return fmt.Errorf("appended entry %q does not read back as written", sc.Name)
	}
	return nil
}

// Seed creates a registry holding only the success record. It refuses to
// overwrite an existing file.
func Seed(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("registry %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat registry %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("codes:\n")
	buf.WriteString(FormatEntry(codes.StatusCode{
		Name: codes.SuccessName,
		HTTP: 200,
		Desc: "Operation succeeded.",
	}, defaultIndent))
	return WriteFileAtomic(path, buf.Bytes())
}
