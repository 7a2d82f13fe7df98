package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_RoundTripKeepsDocument(t *testing.T) {
	var s Setting
	require.NoError(t, json.Unmarshal([]byte(`{"key":"hours","value":{"mon":"11-23","tags":[1,2]}}`), &s))
	assert.JSONEq(t, `{"mon":"11-23","tags":[1,2]}`, string(s.Value))

	out, err := json.Marshal(s.Value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mon":"11-23","tags":[1,2]}`, string(out))
}

func TestJSON_Scan(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    string
		wantErr bool
	}{
		{name: "bytes", in: []byte(`"x"`), want: `"x"`},
		{name: "string", in: `{"a":1}`, want: `{"a":1}`},
		{name: "nil", in: nil, want: ""},
		{name: "unsupported", in: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var j JSON
			err := j.Scan(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(j))
		})
	}
}

func TestJSON_NullHandling(t *testing.T) {
	var empty JSON
	assert.True(t, empty.IsNull())
	assert.True(t, JSON(" null ").IsNull())
	assert.False(t, JSON(`{"a":1}`).IsNull())

	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStringList_ValueAndScan(t *testing.T) {
	v, err := StringList{"spicy", "vegan"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["spicy","vegan"]`, v)

	var l StringList
	require.NoError(t, l.Scan([]byte(`["wings"]`)))
	assert.Equal(t, StringList{"wings"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	nilValue, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, nilValue)
}
