package dto

import (
	"encoding/json"
	"testing"

	"pdv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var in struct {
		A, B, C FormValue
	}
	require.NoError(t, json.Unmarshal([]byte(`{"A":"  12,5 ","B":7,"C":null}`), &in))
	assert.Equal(t, "12,5", in.A.Trimmed())
	assert.Equal(t, FormValue("7"), in.B)
	assert.Equal(t, FormValue(""), in.C)
}

func TestFormValue_Decimal(t *testing.T) {
	d, ok := FormValue("12,5").Decimal()
	assert.True(t, ok)
	assert.Equal(t, "12.5", d.String())

	_, ok = FormValue("abc").Decimal()
	assert.False(t, ok)
	assert.True(t, FormValue("").DecimalOrZero().IsZero())
}

func TestFormValue_Quantity(t *testing.T) {
	cases := []struct {
		in      FormValue
		want    int
		inRange bool
	}{
		{"3", 3, true},
		{"3.9", 3, true},
		{"-2", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"2147483647", model.MaxQuantity, true},
		{"2147483647.5", model.MaxQuantity, true},
		{"2147483648", 0, false},
		{"9223372036854775807", 0, false},
		{"18446744073709551619", 0, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.in), func(t *testing.T) {
			q, ok := tc.in.BoundedQuantity()
			assert.Equal(t, tc.want, q)
			assert.Equal(t, tc.inRange, ok)
			assert.Equal(t, tc.want, tc.in.Quantity())
		})
	}
}
