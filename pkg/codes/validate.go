package codes

import (
	"fmt"
	"regexp"
)

// ViolationKind classifies a registry invariant violation.
type ViolationKind string

const (
	ViolationDuplicateName  ViolationKind = "duplicate_name"
	ViolationDuplicateCode  ViolationKind = "duplicate_code"
	ViolationMissingSuccess ViolationKind = "missing_success"
	ViolationInvalidName    ViolationKind = "invalid_name"
	ViolationReservedName   ViolationKind = "reserved_name"

	// Advisory kinds. They never block emission on their own.
	ViolationSuccessName  ViolationKind = "success_name"
	ViolationSuccessClass ViolationKind = "success_class"
	ViolationMissingFail  ViolationKind = "missing_fail"
)

// Severity tells whether a violation blocks emission.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Violation is a single invariant check failure.
type Violation struct {
	Kind     ViolationKind
	Severity Severity
	Name     string
	Internal uint32
	Detail   string
}

func (v Violation) String() string {
	if v.Name == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
	}
	return fmt.Sprintf("%s %q: %s", v.Kind, v.Name, v.Detail)
}

// nameRe accepts identifiers valid in both generated targets.
var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// reserved are names that collide with Python or C++ keywords, or with
// helpers the emitters generate next to the records.
var reserved = reservedSet(
	// Python
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is", "lambda",
	"nonlocal", "not", "or", "pass", "raise", "return", "try", "while",
	"with", "yield",

	// C++ keywords and alternative tokens
	"alignas", "alignof", "and_eq", "asm", "auto", "bitand", "bitor", "bool",
	"case", "catch", "char", "char8_t", "char16_t", "char32_t", "compl",
	"concept", "const", "consteval", "constexpr", "constinit", "const_cast",
	"co_await", "co_return", "co_yield", "decltype", "default", "delete",
	"do", "double", "dynamic_cast", "enum", "explicit", "export", "extern",
	"false", "float", "friend", "goto", "inline", "int", "long", "mutable",
	"namespace", "new", "noexcept", "not_eq", "nullptr", "operator", "or_eq",
	"private", "protected", "public", "register", "reinterpret_cast",
	"requires", "short", "signed", "sizeof", "static", "static_assert",
	"static_cast", "struct", "switch", "template", "this", "thread_local",
	"throw", "true", "typedef", "typeid", "typename", "union", "unsigned",
	"using", "virtual", "void", "volatile", "wchar_t", "xor", "xor_eq",
	"NULL",

	// generated helpers
	"from_code", "failed", "succeeded", "status_code", "status_code_definition",
)

func reservedSet(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// ValidName reports whether name can be used as a status code name.
func ValidName(name string) bool {
	if !nameRe.MatchString(name) {
		return false
	}
	_, taken := reserved[name]
	return !taken
}

// Validate checks registry invariants and returns every violation found, in
// registry order.
func (r *Registry) Validate() []Violation {
	var out []Violation
	names := make(map[string]struct{}, r.Len())
	seen := make(map[uint32]string, r.Len())
	zeros := 0

	for _, c := range r.Codes {
		switch {
		case !nameRe.MatchString(c.Name):
			out = append(out, Violation{
				Kind: ViolationInvalidName, Severity: SeverityError,
				Name: c.Name, Internal: c.Internal,
				Detail: "name must start with a letter and contain only letters, digits and underscores",
			})
		default:
			if _, taken := reserved[c.Name]; taken {
				out = append(out, Violation{
					Kind: ViolationReservedName, Severity: SeverityError,
					Name: c.Name, Internal: c.Internal,
					Detail: "name is reserved by a generated target",
				})
			}
		}

		if _, dup := names[c.Name]; dup {
			out = append(out, Violation{
				Kind: ViolationDuplicateName, Severity: SeverityError,
				Name: c.Name, Internal: c.Internal,
				Detail: "name appears more than once",
			})
		}
		names[c.Name] = struct{}{}

		if owner, dup := seen[c.Internal]; dup {
			out = append(out, Violation{
				Kind: ViolationDuplicateCode, Severity: SeverityError,
				Name: c.Name, Internal: c.Internal,
				Detail: fmt.Sprintf("internal code %s already used by %q", FormatCode(c.Internal), owner),
			})
		} else {
			seen[c.Internal] = c.Name
		}

		switch {
		case c.Internal == 0:
			zeros++
			if c.Name != SuccessName {
				out = append(out, Violation{
					Kind: ViolationSuccessName, Severity: SeverityWarning,
					Name: c.Name, Internal: c.Internal,
					Detail: fmt.Sprintf("zero code is conventionally named %q", SuccessName),
				})
			}
		case !c.Failed():
			out = append(out, Violation{
				Kind: ViolationSuccessClass, Severity: SeverityWarning,
				Name: c.Name, Internal: c.Internal,
				Detail: fmt.Sprintf("non-zero code %s does not have the failure bit set", FormatCode(c.Internal)),
			})
		}
	}

	if zeros == 0 {
		out = append(out, Violation{
			Kind: ViolationMissingSuccess, Severity: SeverityError,
			Detail: fmt.Sprintf("exactly one record must hold code %s", FormatCode(0)),
		})
	}
	if _, ok := names[FailName]; !ok {
		out = append(out, Violation{
			Kind: ViolationMissingFail, Severity: SeverityWarning,
			Detail: fmt.Sprintf("no %q record, failed/succeeded predicates will not be generated", FailName),
		})
	}
	return out
}

// Errors returns the error-severity violations.
func Errors(vs []Violation) []Violation {
	return filter(vs, SeverityError)
}

// Warnings returns the advisory violations.
func Warnings(vs []Violation) []Violation {
	return filter(vs, SeverityWarning)
}

func filter(vs []Violation, sev Severity) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Severity == sev {
			out = append(out, v)
		}
	}
	return out
}

// Check validates the registry and returns a ValidationError when any
// error-severity violation is present. Kinds listed in escalate are treated
// as errors even when advisory.
func (r *Registry) Check(escalate ...ViolationKind) ([]Violation, error) {
	vs := r.Validate()
	for i := range vs {
		for _, k := range escalate {
			if vs[i].Kind == k {
				vs[i].Severity = SeverityError
			}
		}
	}
	if errs := Errors(vs); len(errs) > 0 {
		return Warnings(vs), &ValidationError{Violations: errs}
	}
	return vs, nil
}
