package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmarkt/marketplace-api/internal/domain"
)

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name       string
		price      int64
		feePercent int64
		want       int64
	}{
		{
			name:       "one percent fee",
			price:      200,
			feePercent: 1,
			want:       202,
		},
		{
			name:       "fee truncates toward zero",
			price:      150,
			feePercent: 1,
			want:       151,
		},
		{
			name:       "fee below one unit is dropped",
			price:      99,
			feePercent: 1,
			want:       99,
		},
		{
			name:       "zero fee percent",
			price:      500,
			feePercent: 0,
			want:       500,
		},
		{
			name:       "ten percent fee",
			price:      1234,
			feePercent: 10,
			want:       1357,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.TotalPrice(tc.price, tc.feePercent))
		})
	}
}
