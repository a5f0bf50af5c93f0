package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64(), "draw %d", i)
	}
}

func TestDifferentSeeds(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for i := 0; i < 16; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 16)
}

func TestZeroSeedIsUsable(t *testing.T) {
	x := New(0)
	assert.NotEqual(t, x.Uint64(), x.Uint64())
}

func TestClone(t *testing.T) {
	a := New(7)
	a.Uint64()
	b := a.Clone()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	// advancing the clone leaves the original alone
	b.Uint64()
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestRanges(t *testing.T) {
	x := New(99)
	for i := 0; i < 10000; i++ {
		f := x.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)

		g := x.Float32()
		require.GreaterOrEqual(t, g, float32(0))
		require.Less(t, g, float32(1))

		r := x.Float32Range(0.25, 1.5)
		require.GreaterOrEqual(t, r, float32(0.25))
		require.LessOrEqual(t, r, float32(1.5))

		d := x.Float64Range(-3, 3)
		require.GreaterOrEqual(t, d, -3.0)
		require.Less(t, d, 3.0)
	}
}

func TestZeroWidthRange(t *testing.T) {
	x := New(5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, float32(-30), x.Float32Range(-30, -30))
	}
}

func TestToFloat64Bounds(t *testing.T) {
	tests := []struct {
		in   uint64
		want float64
	}{
		{0, 0},
		{1 << 63, 0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toFloat64(tt.in))
	}
	assert.Less(t, toFloat64(^uint64(0)), 1.0)
}
