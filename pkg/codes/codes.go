package codes

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FailureBit marks an internal code as belonging to the failure class.
	FailureBit uint32 = 0x80000000

	// SuccessName and FailName are the conventional names of the success
	// record and of the generic failure root.
	SuccessName = "success"
	FailName    = "fail"
)

// StatusCode is one registry entry shared by the server and the client SDK.
type StatusCode struct {
	Name     string
	Internal uint32
	HTTP     int
	Desc     string
}

// Failed reports whether the code belongs to the failure class.
func (s StatusCode) Failed() bool {
	return s.Internal&FailureBit != 0
}

// Succeeded reports whether the code is the success code.
func (s StatusCode) Succeeded() bool {
	return s.Internal == 0
}

// Hex returns the internal code as a fixed-width lowercase literal.
func (s StatusCode) Hex() string {
	return FormatCode(s.Internal)
}

// FormatCode renders an internal code as a zero padded 8-digit hex literal.
func FormatCode(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}

// Registry is the ordered, fully decoded list of status codes.
type Registry struct {
	Codes []StatusCode
}

// Lookup returns the status code with the given name.
func (r *Registry) Lookup(name string) (StatusCode, bool) {
	if i := r.Index(name); i >= 0 {
		return r.Codes[i], true
	}
	return StatusCode{}, false
}

// Index returns the position of name in registry order, or -1.
func (r *Registry) Index(name string) int {
	if r == nil {
		return -1
	}
	for i, c := range r.Codes {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Success returns the record holding the zero code.
func (r *Registry) Success() (StatusCode, bool) {
	if r == nil {
		return StatusCode{}, false
	}
	for _, c := range r.Codes {
		if c.Internal == 0 {
			return c, true
		}
	}
	return StatusCode{}, false
}

// With returns a copy of the registry with sc appended.
func (r *Registry) With(sc StatusCode) *Registry {
	out := &Registry{Codes: make([]StatusCode, 0, len(r.Codes)+1)}
	out.Codes = append(out.Codes, r.Codes...)
	out.Codes = append(out.Codes, sc)
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Codes)
}

// Document is the registry as persisted, before internal codes are decoded.
type Document struct {
	Codes []Entry `yaml:"codes"`
}

// Entry is one persisted record.
type Entry struct {
	Name     string  `yaml:"name"`
	Internal RawCode `yaml:"internal"`
	HTTP     int     `yaml:"http"`
	Desc     string  `yaml:"desc"`
}

// RawCode keeps the internal code exactly as it appeared in the file.
//
// String values are hexadecimal with an optional 0x prefix. Bare YAML
// integers are taken at face value, so hand-edited files may use either.
type RawCode struct {
	Text   string
	Quoted bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *RawCode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: internal code must be a scalar", node.Line)
	}
	c.Text = node.Value
	c.Quoted = node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 || node.Tag == "!!str"
	return nil
}

// Decode converts the raw text into a 32-bit internal code.
func (c RawCode) Decode() (uint32, error) {
	text := strings.TrimSpace(strings.ReplaceAll(c.Text, "'", ""))
	if text == "" {
		return 0, fmt.Errorf("empty internal code")
	}
	if c.Quoted {
		hex := strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Parse decodes registry YAML without decoding internal codes.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return &doc, nil
}

// Registry decodes every entry. The first undecodable code is reported as a
// MalformedCodeError naming its record.
func (d *Document) Registry() (*Registry, error) {
	reg := &Registry{Codes: make([]StatusCode, 0, len(d.Codes))}
	for _, e := range d.Codes {
		v, err := e.Internal.Decode()
		if err != nil {
			return nil, NewMalformedCodeError(e.Name, e.Internal.Text, err)
		}
		reg.Codes = append(reg.Codes, StatusCode{
			Name:     e.Name,
			Internal: v,
			HTTP:     e.HTTP,
			Desc:     e.Desc,
		})
	}
	return reg, nil
}

// Load parses and decodes registry YAML.
func Load(raw []byte) (*Registry, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return doc.Registry()
}
