package emit

import (
	"fmt"
	"strings"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

// DynamicOptions configures the Python enum emitter.
type DynamicOptions struct {
	Path      string
	Project   string
	ClassName string
	Generator string
}

// Dynamic emits a Python Enum with one member per record and a from_code
// reverse lookup.
type Dynamic struct {
	opts DynamicOptions
}

// NewDynamic returns a Python enum emitter.
func NewDynamic(opts DynamicOptions) *Dynamic {
	return &Dynamic{opts: opts}
}

func (d *Dynamic) Target() string { return "dynamic" }

func (d *Dynamic) Path() string { return d.opts.Path }

// Emit renders the module. The lookup table is built once at import time
// from the enum members.
func (d *Dynamic) Emit(reg *codes.Registry) []byte {
	class := d.opts.ClassName
	table := "_" + strings.ToUpper(class) + "_BY_CODE"

	var b strings.Builder
	b.WriteString(banner("#", d.opts.Project, fileBase(d.opts.Path), d.opts.Generator))
	b.WriteString("from enum import Enum\n")
	b.WriteString("from typing import Optional\n\n\n")
	fmt.Fprintf(&b, "class %s(Enum):\n\n", class)
	for _, c := range reg.Codes {
		fmt.Fprintf(&b, "    # %s\n", oneLine(c.Desc))
		fmt.Fprintf(&b, "    %s = %s\n\n", c.Name, c.Hex())
	}
	b.WriteString("    @classmethod\n")
	fmt.Fprintf(&b, "    def from_code(cls, code: int) -> Optional[\"%s\"]:\n", class)
	fmt.Fprintf(&b, "        return %s.get(code)\n\n\n", table)
	fmt.Fprintf(&b, "%s = {member.value: member for member in %s}\n", table, class)
	return []byte(b.String())
}
