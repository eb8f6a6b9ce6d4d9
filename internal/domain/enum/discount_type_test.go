package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DiscountType
		wantErr bool
	}{
		{name: "string percentage", input: `"percentage"`, want: DiscountTypePercentage},
		{name: "string fixed", input: `"fixed"`, want: DiscountTypeFixed},
		{name: "empty string defaults to percentage", input: `""`, want: DiscountTypePercentage},
		{name: "numeric percentage", input: `0`, want: DiscountTypePercentage},
		{name: "numeric fixed", input: `1`, want: DiscountTypeFixed},
		{name: "unknown string", input: `"rebate"`, wantErr: true},
		{name: "wrong json type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DiscountType
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDiscountType_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(DiscountTypeFixed)
	require.NoError(t, err)
	assert.Equal(t, `"fixed"`, string(data))

	data, err = json.Marshal(DiscountTypePercentage)
	require.NoError(t, err)
	assert.Equal(t, `"percentage"`, string(data))
}

func TestDiscountType_IsValid(t *testing.T) {
	assert.True(t, DiscountTypePercentage.IsValid())
	assert.True(t, DiscountTypeFixed.IsValid())
	assert.False(t, DiscountType(7).IsValid())
}
