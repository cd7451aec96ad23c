package emit

import (
	"fmt"
	"strings"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

// NativeOptions configures the C++ header emitter.
type NativeOptions struct {
	Path        string
	Project     string
	Namespace   []string
	Include     string
	HTTPType    string
	HTTPInclude string
	Generator   string
}

// Native emits a C++ header with one constexpr status_code per record.
type Native struct {
	opts NativeOptions
}

// NewNative returns a header emitter.
func NewNative(opts NativeOptions) *Native {
	return &Native{opts: opts}
}

func (n *Native) Target() string { return "native" }

func (n *Native) Path() string { return n.opts.Path }

// Emit renders the header. The failed/succeeded predicates are placed after
// the fail record, or after the success record when that one comes later, so
// every name they reference is already declared.
func (n *Native) Emit(reg *codes.Registry) []byte {
	anchor, success := predicateAnchor(reg)

	var b strings.Builder
	b.WriteString(banner("//", n.opts.Project, fileBase(n.opts.Path), n.opts.Generator))
	b.WriteString("#pragma once\n\n")
	if n.opts.Include != "" {
		fmt.Fprintf(&b, "#include \"%s\"\n", n.opts.Include)
	}
	if n.opts.HTTPInclude != "" {
		fmt.Fprintf(&b, "#include <%s>\n", n.opts.HTTPInclude)
	}
	b.WriteString("\n")
	for _, ns := range n.opts.Namespace {
		fmt.Fprintf(&b, "namespace %s\n{\n", ns)
	}
	if len(n.opts.Namespace) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("#define status_code_definition(name, internal, http) \\\n")
	b.WriteString("    static inline constexpr status_code name{internal, http, #name}\n\n")

	for i, c := range reg.Codes {
		fmt.Fprintf(&b, "// %s\n", oneLine(c.Desc))
		b.WriteString("status_code_definition(\n")
		fmt.Fprintf(&b, "    %s,\n", c.Name)
		fmt.Fprintf(&b, "    %s,\n", c.Hex())
		fmt.Fprintf(&b, "    %s);\n\n", n.httpValue(c.HTTP))
		if i == anchor {
			writePredicates(&b, success)
		}
	}

	for i := len(n.opts.Namespace) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "} // namespace %s.\n", n.opts.Namespace[i])
	}
	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

func (n *Native) httpValue(code int) string {
	if n.opts.HTTPType == "" {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("static_cast<%s>(%d)", n.opts.HTTPType, code)
}

// predicateAnchor finds the record after which the predicates go, by name
// rather than position. It returns -1 when there is no fail record.
func predicateAnchor(reg *codes.Registry) (int, string) {
	anchor := reg.Index(codes.FailName)
	if anchor < 0 {
		return -1, ""
	}
	success := codes.SuccessName
	for i, c := range reg.Codes {
		if c.Internal == 0 {
			success = c.Name
			if i > anchor {
				anchor = i
			}
			break
		}
	}
	return anchor, success
}

func writePredicates(b *strings.Builder, success string) {
	b.WriteString("//\n")
	b.WriteString("// Determines whether a given status is considered as failure.\n")
	b.WriteString("//\n")
	b.WriteString("inline static\n")
	b.WriteString("bool\n")
	b.WriteString("failed(\n")
	b.WriteString("    const status_code& status_code)\n")
	b.WriteString("{\n")
	b.WriteString("    return static_cast<std::int32_t>(status_code) < 0;\n")
	b.WriteString("}\n\n")
	b.WriteString("//\n")
	b.WriteString("// Determines whether a given status is considered as success.\n")
	b.WriteString("//\n")
	b.WriteString("inline static\n")
	b.WriteString("bool\n")
	b.WriteString("succeeded(\n")
	b.WriteString("    const status_code& status_code)\n")
	b.WriteString("{\n")
	fmt.Fprintf(b, "    return status_code == %s;\n", success)
	b.WriteString("}\n\n")
}
