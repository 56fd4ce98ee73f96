package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{50.00, 5000},
		{19.99, 1999},
		{0.1, 10},
		{0.01, 1},
		{120.5, 12050},
		{999.99, 99999},
		{999999.99, MaxChargeMinorUnits},
	}
	for _, tc := range cases {
		got, err := ToMinorUnits(tc.price)
		require.NoError(t, err, "price %v", tc.price)
		assert.Equal(t, tc.want, got, "price %v", tc.price)
	}
}

func TestToMinorUnitsRejectsInvalidPrices(t *testing.T) {
	for _, price := range []float64{0, -5, 0.001, 1000000, 1e30, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ToMinorUnits(price)
		assert.ErrorIs(t, err, ErrInvalidAmount, "price %v", price)
	}
}
