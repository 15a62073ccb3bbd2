package typespec

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     reflect.Type
		wantName string
		wantErr  bool
	}{
		{name: "any", input: "any", want: nil, wantName: "any"},
		{name: "string", input: "string", want: reflect.TypeOf(""), wantName: "string"},
		{name: "alias", input: "Object", want: reflect.TypeOf(map[string]any{}), wantName: "map"},
		{name: "list", input: " list ", want: reflect.TypeOf([]any{}), wantName: "list"},
		{name: "float alias", input: "float", want: reflect.TypeOf(float64(0)), wantName: "float64"},
		{name: "unknown", input: "decimal", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, err := Lookup(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "expected one of")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, Any)
	assert.IsIncreasing(t, names)
}

func TestFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := NewFlag()
	fs.VarP(f, "type", "t", "expected type")

	assert.Equal(t, "any", f.String())
	assert.Nil(t, f.Expected())

	require.NoError(t, fs.Parse([]string{"-t", "int64"}))
	assert.Equal(t, "int64", f.String())
	assert.Equal(t, reflect.TypeOf(int64(0)), f.Expected())
	assert.Equal(t, "type", f.Type())

	err := fs.Parse([]string{"--type", "nope"})
	require.Error(t, err)
	assert.Equal(t, "int64", f.String())
}
