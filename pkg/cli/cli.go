package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError reports a command line contract violation (exit 2).
func usageError(format string, args ...any) *ExitError {
	err := codes.NewInvalidArgumentsError(format, args...)
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}

// Operation is the action selected on the command line.
type Operation int

const (
	OpNone Operation = iota
	OpGenerate
	OpAdd
	OpCheck
	OpInit
)

func (o Operation) String() string {
	switch o {
	case OpGenerate:
		return "generate"
	case OpAdd:
		return "add"
	case OpCheck:
		return "check"
	case OpInit:
		return "init"
	default:
		return "none"
	}
}

// Options is the parsed command line.
type Options struct {
	Op   Operation
	Name string
	HTTP int
	Desc string

	ConfigFile string
	Root       string
	LogLevel   string
	LogFormat  string
}

const usageText = `
statusgen - status code registry compiler.

Maintains status_codes.yaml and regenerates the C++ header and the Python
enum that mirror it.

Usage:
  statusgen --generate
  statusgen --add <name> --http <code> --desc <text>
  statusgen --check
  statusgen --init

Options:
`

// Parse processes command-line arguments. It returns the parsed Options,
// a boolean indicating the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	fs := pflag.NewFlagSet("statusgen", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(output, usageText)
		fs.PrintDefaults()
	}

	generate := fs.Bool("generate", false, "Regenerate all output files from the registry.")
	add := fs.String("add", "", "Add a new status code name (e.g. object_data_empty).")
	httpCode := fs.Int("http", 0, "Associated HTTP code (e.g. 400).")
	desc := fs.String("desc", "", "Description text for the code.")
	check := fs.Bool("check", false, "Fail when generated files are out of date.")
	initFlag := fs.Bool("init", false, "Create a registry holding only the success code.")
	configFile := fs.String("config", "", "Path to statusgen.yaml.")
	root := fs.String("root", "", "Project root relative paths are resolved against.")
	logLevel := fs.String("log-level", "", "Logging level: debug, info, warn or error.")
	logFormat := fs.String("log-format", "", "Log output format: text or json.")
	version := fs.BoolP("version", "v", false, "Show version information.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}

	if *version {
		fmt.Fprintln(output, VersionString())
		return nil, true, nil
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, false, usageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts := &Options{
		ConfigFile: *configFile,
		Root:       *root,
		LogLevel:   strings.ToLower(*logLevel),
		LogFormat:  strings.ToLower(*logFormat),
	}

	switch opts.LogFormat {
	case "", "text", "json":
	default:
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	addSet := fs.Changed("add")
	detailSet := fs.Changed("http") || fs.Changed("desc")

	var selected []string
	if *generate {
		selected = append(selected, "--generate")
	}
	if addSet {
		selected = append(selected, "--add")
	}
	if *check {
		selected = append(selected, "--check")
	}
	if *initFlag {
		selected = append(selected, "--init")
	}

	switch {
	case len(selected) > 1:
		return nil, false, usageError("%s cannot be combined", strings.Join(selected, " and "))
	case *generate && detailSet:
		return nil, false, usageError("--generate cannot be combined with --add, --http, or --desc")
	case len(selected) == 0:
		fs.Usage()
		return nil, false, usageError("must specify either --generate OR --add (with --http and --desc)")
	case !addSet && detailSet:
		return nil, false, usageError("--http and --desc are only valid with --add")
	}

	switch {
	case *generate:
		opts.Op = OpGenerate
	case *check:
		opts.Op = OpCheck
	case *initFlag:
		opts.Op = OpInit
	case addSet:
		if !fs.Changed("http") || !fs.Changed("desc") {
			return nil, false, usageError("--add requires both --http and --desc parameters")
		}
		if !codes.ValidName(*add) {
			return nil, false, usageError("invalid status code name %q: use letters, digits and underscores, starting with a letter", *add)
		}
		opts.Op = OpAdd
		opts.Name = *add
		opts.HTTP = *httpCode
		opts.Desc = *desc
	}
	return opts, false, nil
}
