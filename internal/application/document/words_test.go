package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords_French(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{
			name:   "units and subunits",
			amount: 1234.50,
			want:   "mille deux cent trente-quatre dirhams et cinquante centimes",
		},
		{
			name:   "whole amount omits the subunit clause",
			amount: 200,
			want:   "deux cents dirhams",
		},
		{
			name:   "zero",
			amount: 0,
			want:   "zéro dirhams",
		},
		{
			name:   "subunit rounding carries into the unit",
			amount: 9.999,
			want:   "dix dirhams",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(tt.amount, "fr", "dirhams", "centimes"))
		})
	}
}

func TestAmountInWords_English(t *testing.T) {
	got := AmountInWords(1234.50, "en", "dirhams", "centimes")
	assert.Equal(t, "one thousand two hundred thirty-four dirhams and fifty centimes", got)
}
