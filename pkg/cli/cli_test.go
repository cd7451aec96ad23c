package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		args        []string
		expectExit  bool
		expectCode  int
		expected    *Options
		checkOutput func(t *testing.T, output string)
	}{
		{
			name:     "Generate",
			args:     []string{"--generate"},
			expected: &Options{Op: OpGenerate},
		},
		{
			name:     "Add with http and desc",
			args:     []string{"--add", "object_data_empty", "--http", "400", "--desc", "Object data is empty."},
			expected: &Options{Op: OpAdd, Name: "object_data_empty", HTTP: 400, Desc: "Object data is empty."},
		},
		{
			name:     "Add with empty desc",
			args:     []string{"--add=fail", "--http=500", "--desc="},
			expected: &Options{Op: OpAdd, Name: "fail", HTTP: 500},
		},
		{
			name: "Check with overrides",
			args: []string{"--check", "--root", "/repo", "--config", "/repo/statusgen.yaml", "--log-level=DEBUG", "--log-format", "json"},
			expected: &Options{
				Op: OpCheck, Root: "/repo", ConfigFile: "/repo/statusgen.yaml", LogLevel: "debug", LogFormat: "json",
			},
		},
		{
			name:     "Init",
			args:     []string{"--init"},
			expected: &Options{Op: OpInit},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Usage:")
				assert.Contains(t, output, "--generate")
			},
		},
		{
			name:       "Version",
			args:       []string{"--version"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "statusgen version "+Version)
			},
		},
		{
			name:       "No arguments prints usage",
			args:       nil,
			expectCode: 2,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Usage:")
			},
		},
		{name: "Generate with add", args: []string{"--generate", "--add", "x", "--http", "1", "--desc", "d"}, expectCode: 2},
		{name: "Generate with http", args: []string{"--generate", "--http", "400"}, expectCode: 2},
		{name: "Generate with desc", args: []string{"--generate", "--desc", "d"}, expectCode: 2},
		{name: "Add without desc", args: []string{"--add", "x", "--http", "400"}, expectCode: 2},
		{name: "Add without http", args: []string{"--add", "x", "--desc", "d"}, expectCode: 2},
		{name: "Http without add", args: []string{"--http", "400", "--desc", "d"}, expectCode: 2},
		{name: "Check with init", args: []string{"--check", "--init"}, expectCode: 2},
		{name: "Invalid name", args: []string{"--add", "9lives", "--http", "400", "--desc", "d"}, expectCode: 2},
		{name: "Reserved name", args: []string{"--add", "from_code", "--http", "400", "--desc", "d"}, expectCode: 2},
		{name: "Non numeric http", args: []string{"--add", "x", "--http", "bad", "--desc", "d"}, expectCode: 2},
		{name: "Positional argument", args: []string{"--generate", "extra"}, expectCode: 2},
		{name: "Unknown flag", args: []string{"--nope"}, expectCode: 2},
		{name: "Bad log level", args: []string{"--generate", "--log-level", "loud"}, expectCode: 2},
		{name: "Bad log format", args: []string{"--generate", "--log-format", "xml"}, expectCode: 2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			opts, shouldExit, err := Parse(tc.args, out)

			if tc.expectCode != 0 {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "Expected error to be of type ExitError")
				assert.Equal(t, tc.expectCode, exitErr.Code)
				assert.True(t, codes.IsInvalidArguments(err))
				assert.Nil(t, opts)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectExit, shouldExit)
				assert.Equal(t, tc.expected, opts)
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestParse_MessagesMatchContract(t *testing.T) {
	_, _, err := Parse([]string{"--generate", "--desc", "d"}, &bytes.Buffer{})
	assert.EqualError(t, err, "--generate cannot be combined with --add, --http, or --desc")

	_, _, err = Parse([]string{"--add", "x", "--http", "400"}, &bytes.Buffer{})
	assert.EqualError(t, err, "--add requires both --http and --desc parameters")
}
