package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Ref_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Ref
	}{
		{name: "bare id", in: `"64a1f0c2e7b9a4d3f8c1b2e3"`, want: Ref{ID: "64a1f0c2e7b9a4d3f8c1b2e3"}},
		{name: "embedded object", in: `{"_id":"64a1f0c2e7b9a4d3f8c1b2e3","name":"Science"}`, want: Ref{ID: "64a1f0c2e7b9a4d3f8c1b2e3", Name: "Science"}},
		{name: "null", in: `null`, want: Ref{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Ref
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Ref_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Ref{ID: "abc", Name: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(b))
}

func Test_RefIDs(t *testing.T) {
	ids := RefIDs([]Ref{{ID: "a", Name: "A"}, {}, {ID: "b"}})
	assert.Equal(t, []string{"a", "b"}, ids)
}
