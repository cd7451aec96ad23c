package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(vs []Violation) []ViolationKind {
	out := make([]ViolationKind, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Kind)
	}
	return out
}

func TestValidate_CleanRegistry(t *testing.T) {
	reg := &Registry{Codes: []StatusCode{
		{Name: "success", Internal: 0, HTTP: 200},
		{Name: "fail", Internal: 0x80000001, HTTP: 500},
		{Name: "container_already_exists", Internal: 0x80000002, HTTP: 409},
	}}
	assert.Empty(t, reg.Validate())
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name  string
		codes []StatusCode
		want  []ViolationKind
	}{
		{
			name: "duplicate name",
			codes: []StatusCode{
				{Name: "success"}, {Name: "fail", Internal: 0x80000001},
				{Name: "fail", Internal: 0x80000002},
			},
			want: []ViolationKind{ViolationDuplicateName},
		},
		{
			name: "duplicate code",
			codes: []StatusCode{
				{Name: "success"}, {Name: "fail", Internal: 0x80000001},
				{Name: "other", Internal: 0x80000001},
			},
			want: []ViolationKind{ViolationDuplicateCode},
		},
		{
			name: "two zero codes",
			codes: []StatusCode{
				{Name: "success"}, {Name: "fail", Internal: 0x80000001},
				{Name: "also_ok"},
			},
			want: []ViolationKind{ViolationDuplicateCode, ViolationSuccessName},
		},
		{
			name:  "missing success",
			codes: []StatusCode{{Name: "fail", Internal: 0x80000001}},
			want:  []ViolationKind{ViolationMissingSuccess},
		},
		{
			name:  "missing fail is advisory",
			codes: []StatusCode{{Name: "success"}},
			want:  []ViolationKind{ViolationMissingFail},
		},
		{
			name: "invalid and reserved names",
			codes: []StatusCode{
				{Name: "success"}, {Name: "fail", Internal: 0x80000001},
				{Name: "1bad", Internal: 0x80000002},
				{Name: "from_code", Internal: 0x80000003},
				{Name: "class", Internal: 0x80000004},
			},
			want: []ViolationKind{ViolationInvalidName, ViolationReservedName, ViolationReservedName},
		},
		{
			name: "c++ keywords and alternative tokens",
			codes: []StatusCode{
				{Name: "success"}, {Name: "fail", Internal: 0x80000001},
				{Name: "delete", Internal: 0x80000002},
				{Name: "namespace", Internal: 0x80000003},
				{Name: "and_eq", Internal: 0x80000004},
				{Name: "int", Internal: 0x80000005},
			},
			want: []ViolationKind{ViolationReservedName, ViolationReservedName, ViolationReservedName, ViolationReservedName},
		},
		{
			name: "success class code",
			codes: []StatusCode{
				{Name: "success"}, {Name: "fail", Internal: 0x80000001},
				{Name: "partial", Internal: 0x00000002},
			},
			want: []ViolationKind{ViolationSuccessClass},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &Registry{Codes: tt.codes}
			assert.Equal(t, tt.want, kinds(reg.Validate()))
		})
	}
}

func TestCheck_SplitsErrorsAndWarnings(t *testing.T) {
	reg := &Registry{Codes: []StatusCode{{Name: "success"}}}

	warnings, err := reg.Check()
	require.NoError(t, err)
	assert.Equal(t, []ViolationKind{ViolationMissingFail}, kinds(warnings))

	_, err = reg.Check(ViolationMissingFail)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRegistry)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []ViolationKind{ViolationMissingFail}, kinds(ve.Violations))
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"object_data_empty", true},
		{"ObjectDataEmpty", true},
		{"deleted", true},
		{"Default", true},
		{"", false},
		{"_private", false},
		{"with-dash", false},
		{"succeeded", false},
		{"None", false},
		{"delete", false},
		{"default", false},
		{"int", false},
		{"namespace", false},
		{"bitand", false},
		{"xor_eq", false},
		{"nullptr", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.name))
		})
	}
}
