package envelope

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

func TestNew_FillsDefaults(t *testing.T) {
	sc := codes.StatusCode{Name: "fail", Internal: 0x80000001, HTTP: 500, Desc: "Operation failed."}
	evt := New(KindAppended, []byte("codes:\n"), 2, &sc)

	assert.Equal(t, Version, evt.Version)
	_, err := uuid.Parse(evt.ID)
	require.NoError(t, err)
	assert.False(t, evt.CreatedAt.IsZero())
	assert.Equal(t, "0x80000001", evt.Code.Internal)
	assert.Equal(t, "fail", evt.Key())
	assert.Equal(t, Digest([]byte("codes:\n")), evt.Digest)
	assert.Len(t, evt.Digest, 64)
	assert.NoError(t, Validate(evt))
}

func TestValidate(t *testing.T) {
	evt := New(KindRegenerated, nil, 0, nil)
	assert.NoError(t, Validate(evt))
	assert.Equal(t, KindRegenerated, evt.Key())

	assert.Error(t, Validate(nil))
	assert.Error(t, Validate(&RegistryEvent{Kind: "other", ID: evt.ID, Digest: evt.Digest}))
	assert.Error(t, Validate(&RegistryEvent{Kind: KindAppended, ID: evt.ID, Digest: evt.Digest}))
	assert.Error(t, Validate(&RegistryEvent{Kind: KindRegenerated, ID: "x", Digest: evt.Digest}))
	assert.Error(t, Validate(&RegistryEvent{Kind: KindRegenerated, ID: evt.ID, Digest: "abc"}))
}

func TestEncodeDecode(t *testing.T) {
	evt := New(KindRegenerated, []byte("x"), 3, nil)
	StampTrace(evt, map[string]string{"traceparent": "00-0102-03-01"})

	data, err := Encode(evt)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"registry.regenerated"`)
	assert.NotContains(t, string(data), `"code"`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "00-0102-03-01", got.Trace["traceparent"])

	_, err = Decode([]byte(`{"kind":"nope"}`))
	assert.Error(t, err)
}
