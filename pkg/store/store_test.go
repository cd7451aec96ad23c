package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

const seeded = `codes:
  - name: success
    internal: "0x00000000"
    http: 200
    desc: Operation succeeded.

  - name: fail
    internal: 2147483653
    http: 500
    desc: Generic operation failed.`

func writeRegistry(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "status_codes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRead_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := s.Read()
	require.Error(t, err)
	assert.True(t, codes.IsRegistryNotFound(err))

	var nf *codes.RegistryNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, s.Path(), nf.Path)
}

func TestAppend_PreservesTextAndFormatsBlock(t *testing.T) {
	path := writeRegistry(t, seeded)
	s := New(path)

	err := s.Append(codes.StatusCode{Name: "container_already_exists", Internal: 0x80000006, HTTP: 409, Desc: "Object container already exists."})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := seeded + "\n\n" +
		"  - name: container_already_exists\n" +
		"    internal: \"0x80000006\"\n" +
		"    http: 409\n" +
		"    desc: Object container already exists.\n"
	assert.Equal(t, want, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAppend_CollapsesTrailingNewlines(t *testing.T) {
	path := writeRegistry(t, seeded+"\n\n\n")
	require.NoError(t, New(path).Append(codes.StatusCode{Name: "x_failed", Internal: 0x80000006, HTTP: 500, Desc: "x"}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, seeded+"\n\n  - name: x_failed\n    internal: \"0x80000006\"\n    http: 500\n    desc: x\n", string(got))
}

func TestAppend_RoundTripsCodeFormat(t *testing.T) {
	path := writeRegistry(t, seeded)
	s := New(path)
	require.NoError(t, s.Append(codes.StatusCode{Name: "small", Internal: 0x80000006, HTTP: 400, Desc: "d"}))

	reg, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())
	// The bare integer written by hand is read back as the same value.
	assert.Equal(t, "0x80000005", reg.Codes[1].Hex())
	assert.Equal(t, "0x80000006", reg.Codes[2].Hex())
}

func TestAppend_QuotesDescriptionsThatNeedIt(t *testing.T) {
	tests := []struct {
		name string
		desc string
	}{
		{"colon", "Key: value pair rejected."},
		{"comment marker", "Size exceeds limit # of bytes."},
		{"leading dash", "- starts like a list"},
		{"quotes", `Object "id" missing.`},
		{"empty", ""},
		{"boolean looking", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRegistry(t, seeded)
			s := New(path)
			sc := codes.StatusCode{Name: "tricky", Internal: 0x80000006, HTTP: 400, Desc: tt.desc}
			require.NoError(t, s.Append(sc))

			reg, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, sc, reg.Codes[2])
		})
	}
}

func TestAppend_DetectsIndentation(t *testing.T) {
	body := "codes:\n- name: success\n  internal: \"0x00000000\"\n  http: 200\n  desc: ok\n"
	path := writeRegistry(t, body)
	require.NoError(t, New(path).Append(codes.StatusCode{Name: "fail", Internal: 0x80000001, HTTP: 500, Desc: "Generic failure"}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body+"\n- name: fail\n  internal: \"0x80000001\"\n  http: 500\n  desc: Generic failure\n", string(got))
}

func TestAppend_RefusesEmptyList(t *testing.T) {
	body := "codes: []\n"
	path := writeRegistry(t, body)

	err := New(path).Append(codes.StatusCode{Name: "fail", Internal: 0x80000001, HTTP: 500, Desc: "x"})
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "status_codes.yaml")
	require.NoError(t, Seed(path))

	reg, err := New(path).Load()
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, codes.StatusCode{Name: "success", Internal: 0, HTTP: 200, Desc: "Operation succeeded."}, reg.Codes[0])

	assert.Error(t, Seed(path), "seeding must not overwrite an existing registry")
}

func TestStage_DiscardLeavesTargetAlone(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	st, err := Stage(target, []byte("new"))
	require.NoError(t, err)
	st.Discard()

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
