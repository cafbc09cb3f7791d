package store

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     string   `json:"id"`
	Price  float64  `json:"price"`
	Reads  int      `json:"reads"`
	Live   bool     `json:"live"`
	Tags   []string `json:"tags"`
	Count  *int     `json:"count"`
	hidden string
}

func TestCoerceValue(t *testing.T) {
	typeOf := func(v any) reflect.Type { return reflect.TypeOf(v).Elem() }
	tests := []struct {
		name string
		in   string
		want sample
	}{
		{"numeric id", `{"id":42}`, sample{ID: "42"}},
		{"large numeric id", `{"id":1714564800000}`, sample{ID: "1714564800000"}},
		{"quoted price", `{"id":"a","price":"5.5"}`, sample{ID: "a", Price: 5.5}},
		{"quoted int", `{"id":"a","reads":" 12 "}`, sample{ID: "a", Reads: 12}},
		{"integral float into int", `{"id":"a","reads":3.0}`, sample{ID: "a", Reads: 3}},
		{"quoted bool", `{"id":"a","live":"true"}`, sample{ID: "a", Live: true}},
		{"numeric tags", `{"id":"a","tags":[1,"x"]}`, sample{ID: "a", Tags: []string{"1", "x"}}},
		{"pointer", `{"id":"a","count":"4"}`, sample{ID: "a", Count: ptr(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, dropped, ok := coerceRecord([]byte(tt.in), typeOf(&sample{}))
			require.True(t, ok)
			assert.False(t, dropped)
			rows, lossy, err := decodeRows[sample]([]byte("[" + string(out) + "]"))
			require.NoError(t, err)
			assert.False(t, lossy)
			assert.Equal(t, []sample{tt.want}, rows)
		})
	}
}

func TestDecodeRows(t *testing.T) {
	rows, lossy, err := decodeRows[sample]([]byte(`[{"id":1,"price":"2"},{"id":"b","reads":1.5},"junk"]`))
	require.NoError(t, err)
	assert.True(t, lossy)
	assert.Equal(t, []sample{{ID: "1", Price: 2}, {ID: "b"}}, rows)

	rows, lossy, err = decodeRows[sample]([]byte(`[]`))
	require.NoError(t, err)
	assert.False(t, lossy)
	assert.Empty(t, rows)

	_, _, err = decodeRows[sample]([]byte(`{"id":1}`))
	assert.Error(t, err)
}

func ptr[T any](v T) *T { return &v }
