package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

func testRegistry() *codes.Registry {
	return &codes.Registry{Codes: []codes.StatusCode{
		{Name: "success", Internal: 0x00000000, HTTP: 200, Desc: "Operation succeeded."},
		{Name: "fail", Internal: 0x80000001, HTTP: 500, Desc: "Generic failure"},
		{Name: "container_already_exists", Internal: 0x80000002, HTTP: 409, Desc: "Object container\nalready exists."},
	}}
}

func nativeEmitter(path string) *Native {
	return NewNative(NativeOptions{
		Path:        path,
		Project:     "Lazarus Data Store",
		Namespace:   []string{"lazarus", "status"},
		Include:     "status_code.hh",
		HTTPType:    "drogon::HttpStatusCode",
		HTTPInclude: "drogon/drogon.h",
		Generator:   "statusgen",
	})
}

func dynamicEmitter(path string) *Dynamic {
	return NewDynamic(DynamicOptions{
		Path:      path,
		Project:   "Lazarus Data Store",
		ClassName: "LazarusStatus",
		Generator: "statusgen",
	})
}

func TestNative_Layout(t *testing.T) {
	out := string(nativeEmitter("src/status/status.hh").Emit(testRegistry()))

	assert.True(t, strings.HasPrefix(out, "// ****"))
	assert.Contains(t, out, "// 'status.hh'\n")
	assert.Contains(t, out, "//      'statusgen' to add\n")
	assert.Contains(t, out, "#pragma once\n\n#include \"status_code.hh\"\n#include <drogon/drogon.h>\n\n")
	assert.Contains(t, out, "namespace lazarus\n{\nnamespace status\n{\n\n#define status_code_definition")
	assert.Contains(t, out, "// Operation succeeded.\nstatus_code_definition(\n    success,\n    0x00000000,\n    static_cast<drogon::HttpStatusCode>(200));\n")
	assert.Contains(t, out, "// Object container already exists.\n")
	assert.True(t, strings.HasSuffix(out, "} // namespace status.\n} // namespace lazarus.\n"))
}

func TestNative_PredicatesFollowFail(t *testing.T) {
	out := string(nativeEmitter("status.hh").Emit(testRegistry()))

	failDef := "status_code_definition(\n    fail,\n    0x80000001,\n    static_cast<drogon::HttpStatusCode>(500));\n\n"
	idx := strings.Index(out, failDef)
	require.GreaterOrEqual(t, idx, 0)

	rest := out[idx+len(failDef):]
	assert.True(t, strings.HasPrefix(rest, "//\n// Determines whether a given status is considered as failure.\n"))
	assert.Contains(t, rest, "return static_cast<std::int32_t>(status_code) < 0;")
	assert.Contains(t, rest, "return status_code == success;")
	assert.Less(t, strings.Index(rest, "succeeded("), strings.Index(rest, "container_already_exists"))
	assert.Equal(t, 1, strings.Count(out, "failed("))
}

func TestNative_PredicatesFollowLateSuccess(t *testing.T) {
	reg := &codes.Registry{Codes: []codes.StatusCode{
		{Name: "fail", Internal: 0x80000001, HTTP: 500, Desc: "f"},
		{Name: "ok", Internal: 0, HTTP: 200, Desc: "s"},
	}}
	out := string(nativeEmitter("status.hh").Emit(reg))

	assert.Less(t, strings.Index(out, "    ok,\n"), strings.Index(out, "failed("))
	assert.Contains(t, out, "return status_code == ok;")
}

func TestNative_NoFailNoPredicates(t *testing.T) {
	reg := &codes.Registry{Codes: []codes.StatusCode{{Name: "success", HTTP: 200, Desc: "s"}}}
	out := string(nativeEmitter("status.hh").Emit(reg))
	assert.NotContains(t, out, "failed(")
	assert.NotContains(t, out, "succeeded(")
}

func TestNative_PlainHTTPWithoutType(t *testing.T) {
	e := NewNative(NativeOptions{Path: "s.hh", Project: "P", Generator: "g"})
	out := string(e.Emit(testRegistry()))
	assert.Contains(t, out, "    0x80000002,\n    409);\n")
	assert.NotContains(t, out, "namespace")
}

func TestDynamic_Layout(t *testing.T) {
	out := string(dynamicEmitter("sdk/python/lazarus_client/status.py").Emit(testRegistry()))

	assert.True(t, strings.HasPrefix(out, "# ****"))
	assert.Contains(t, out, "# 'status.py'\n")
	assert.Contains(t, out, "class LazarusStatus(Enum):\n\n    # Operation succeeded.\n    success = 0x00000000\n\n")
	assert.Contains(t, out, "    # Generic failure\n    fail = 0x80000001\n\n")
	assert.Contains(t, out, "    # Object container already exists.\n    container_already_exists = 0x80000002\n")
	assert.Contains(t, out, "    def from_code(cls, code: int) -> Optional[\"LazarusStatus\"]:\n        return _LAZARUSSTATUS_BY_CODE.get(code)\n")
	assert.True(t, strings.HasSuffix(out, "_LAZARUSSTATUS_BY_CODE = {member.value: member for member in LazarusStatus}\n"))
}

func TestEmitters_PreserveRegistryOrder(t *testing.T) {
	reg := &codes.Registry{Codes: []codes.StatusCode{
		{Name: "success", Internal: 0, HTTP: 200, Desc: "s"},
		{Name: "zeta", Internal: 0x80000003, HTTP: 500, Desc: "z"},
		{Name: "fail", Internal: 0x80000001, HTTP: 500, Desc: "f"},
		{Name: "alpha", Internal: 0x80000002, HTTP: 400, Desc: "a"},
	}}
	for _, e := range []Emitter{nativeEmitter("n.hh"), dynamicEmitter("d.py")} {
		out := string(e.Emit(reg))
		last := -1
		for _, c := range reg.Codes {
			i := strings.Index(out, c.Hex())
			require.GreaterOrEqual(t, i, 0, "%s: %s missing", e.Target(), c.Name)
			assert.Greater(t, i, last, "%s: %s out of order", e.Target(), c.Name)
			last = i
		}
	}
}

func TestEmitters_Deterministic(t *testing.T) {
	for _, e := range []Emitter{nativeEmitter("n.hh"), dynamicEmitter("d.py")} {
		assert.Equal(t, e.Emit(testRegistry()), e.Emit(testRegistry()), e.Target())
	}
}

func TestWriteAllAndStale(t *testing.T) {
	dir := t.TempDir()
	emitters := []Emitter{
		nativeEmitter(filepath.Join(dir, "src", "status", "status.hh")),
		dynamicEmitter(filepath.Join(dir, "sdk", "status.py")),
	}
	artifacts := Render(testRegistry(), emitters...)
	require.Len(t, artifacts, 2)

	stale, err := Stale(artifacts)
	require.NoError(t, err)
	assert.Len(t, stale, 2, "missing files are stale")

	require.NoError(t, WriteAll(artifacts))
	stale, err = Stale(artifacts)
	require.NoError(t, err)
	assert.Empty(t, stale)

	require.NoError(t, os.WriteFile(artifacts[1].Path, []byte("# edited\n"), 0o644))
	stale, err = Stale(artifacts)
	require.NoError(t, err)
	assert.Equal(t, []string{artifacts[1].Path}, stale)
}

func TestWriteAll_StagingFailureTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "status.hh")
	require.NoError(t, os.WriteFile(good, []byte("old"), 0o644))

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteAll([]Artifact{
		{Target: "native", Path: good, Content: []byte("new")},
		{Target: "dynamic", Path: filepath.Join(blocker, "status.py"), Content: []byte("new")},
	})
	require.Error(t, err)

	got, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
}

func TestStageAll_DiscardLeavesTargetsAlone(t *testing.T) {
	dir := t.TempDir()
	header := filepath.Join(dir, "status.hh")
	require.NoError(t, os.WriteFile(header, []byte("old"), 0o644))

	staged, err := StageAll([]Artifact{
		{Target: "native", Path: header, Content: []byte("new")},
		{Target: "dynamic", Path: filepath.Join(dir, "status.py"), Content: []byte("new")},
	})
	require.NoError(t, err)
	staged.Discard()

	got, err := os.ReadFile(header)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are removed")
	assert.Equal(t, "status.hh", entries[0].Name())
}
