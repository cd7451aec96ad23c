package codes

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the registry compiler.
var (
	// ErrRegistryNotFound is returned when the registry file does not exist.
	ErrRegistryNotFound = errors.New("registry not found")

	// ErrDuplicateName is returned when appending a name that already exists.
	ErrDuplicateName = errors.New("status code name already exists")

	// ErrMalformedCode is returned when an internal code cannot be decoded.
	ErrMalformedCode = errors.New("malformed internal code")

	// ErrInvalidRegistry is returned when the registry violates an invariant.
	ErrInvalidRegistry = errors.New("invalid registry")

	// ErrInvalidArguments is returned when the command line contract is violated.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrStaleArtifact is returned when a generated file does not match the registry.
	ErrStaleArtifact = errors.New("generated artifact is stale")

	// ErrCodeSpaceExhausted is returned when no internal code is left to allocate.
	ErrCodeSpaceExhausted = errors.New("internal code space exhausted")
)

// RegistryNotFoundError names the missing registry file.
type RegistryNotFoundError struct {
	Path string
}

func (e *RegistryNotFoundError) Error() string {
	return fmt.Sprintf("registry %q not found", e.Path)
}

func (e *RegistryNotFoundError) Is(target error) bool {
	return target == ErrRegistryNotFound
}

// DuplicateNameError names the status code that already exists.
type DuplicateNameError struct {
	Name     string
	Internal uint32
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("status code %q already exists as %s", e.Name, FormatCode(e.Internal))
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// MalformedCodeError names the record whose internal code cannot be decoded.
type MalformedCodeError struct {
	Name  string
	Raw   string
	Cause error
}

func (e *MalformedCodeError) Error() string {
	msg := fmt.Sprintf("status code %q has malformed internal code %q", e.Name, e.Raw)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedCodeError) Is(target error) bool {
	return target == ErrMalformedCode
}

func (e *MalformedCodeError) Unwrap() error {
	return e.Cause
}

// ValidationError carries the error-severity violations of a registry.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid registry: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRegistry
}

// InvalidArgumentsError describes a command line contract violation.
type InvalidArgumentsError struct {
	Message string
}

func (e *InvalidArgumentsError) Error() string {
	return e.Message
}

func (e *InvalidArgumentsError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// StaleArtifactError lists generated files that differ from the registry.
type StaleArtifactError struct {
	Paths []string
}

func (e *StaleArtifactError) Error() string {
	return fmt.Sprintf("generated artifacts out of date: %s", strings.Join(e.Paths, ", "))
}

func (e *StaleArtifactError) Is(target error) bool {
	return target == ErrStaleArtifact
}

// NewRegistryNotFoundError creates a new RegistryNotFoundError.
func NewRegistryNotFoundError(path string) error {
	return &RegistryNotFoundError{Path: path}
}

// NewDuplicateNameError creates a new DuplicateNameError.
func NewDuplicateNameError(name string, internal uint32) error {
	return &DuplicateNameError{Name: name, Internal: internal}
}

// NewMalformedCodeError creates a new MalformedCodeError.
func NewMalformedCodeError(name, raw string, cause error) error {
	return &MalformedCodeError{Name: name, Raw: raw, Cause: cause}
}

// NewInvalidArgumentsError creates a new InvalidArgumentsError.
func NewInvalidArgumentsError(format string, args ...any) error {
	return &InvalidArgumentsError{Message: fmt.Sprintf(format, args...)}
}

// IsRegistryNotFound checks if an error is a registry not found error.
func IsRegistryNotFound(err error) bool {
	return errors.Is(err, ErrRegistryNotFound)
}

// IsDuplicateName checks if an error is a duplicate name error.
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsMalformedCode checks if an error is a malformed code error.
func IsMalformedCode(err error) bool {
	return errors.Is(err, ErrMalformedCode)
}

// IsInvalidArguments checks if an error is an invalid arguments error.
func IsInvalidArguments(err error) bool {
	return errors.Is(err, ErrInvalidArguments)
}
