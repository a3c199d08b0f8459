package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalPrice_KnownVector(t *testing.T) {
	// base 12,000,000 -> labor 13,200,000 -> tax 14,388,000
	// -> profit 15,395,160, no discount.
	got := FinalPrice(6_000_000, 2.0, 10, 0)
	require.Equal(t, int64(15_395_160), got)
}

func TestFinalPrice_WithDiscount(t *testing.T) {
	// 15,395,160 minus 20% (3,079,032).
	got := FinalPrice(6_000_000, 2.0, 10, 20)
	require.Equal(t, int64(12_316_128), got)
}

func TestFinalPrice_Deterministic(t *testing.T) {
	first := FinalPrice(6_000_000, 2.0, 10, 20)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, FinalPrice(6_000_000, 2.0, 10, 20))
	}
}

func TestFinalPrice_ZeroGoldYieldsZero(t *testing.T) {
	cases := []struct {
		weight   float64
		labor    float64
		discount int
	}{
		{2.0, 10, 0},
		{0.5, 7, 20},
		{12.75, 0, 99},
	}
	for _, c := range cases {
		assert.Zero(t, FinalPrice(0, c.weight, c.labor, c.discount))
	}
}

func TestFinalPrice_NonPositiveDiscountIgnored(t *testing.T) {
	base := FinalPrice(6_000_000, 2.0, 10, 0)
	assert.Equal(t, base, FinalPrice(6_000_000, 2.0, 10, -10))
}

func TestFinalPrice_TruncatesOnlyAtTheEnd(t *testing.T) {
	// 1000 * 1.5 = 1500; +3% labor = 1545; *1.09 = 1684.05; *1.07 =
	// 1801.9335. Rounding any intermediate step would change the result.
	got := FinalPrice(1000, 1.5, 3, 0)
	require.Equal(t, int64(1801), got)
}

func TestFinalPrice_FractionalWeight(t *testing.T) {
	// 6,000,000 * 0.5 = 3,000,000 -> 3,300,000 -> 3,597,000 -> 3,848,790.
	got := FinalPrice(6_000_000, 0.5, 10, 0)
	require.Equal(t, int64(3_848_790), got)
}
