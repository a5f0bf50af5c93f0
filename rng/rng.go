// Package rng is a small seedable uniform generator (xorshift128+).
//
// A Xorshift is not safe for concurrent use. Give every generation request
// its own generator, either with Clone or by seeding a child from Uint64.
package rng

import "math"

// Xorshift holds the 128 bits of xorshift128+ state.
type Xorshift struct {
	s [2]uint64
}

// New returns a generator seeded from seed. The seed is spread over the
// state with splitmix64 so that small seeds (0, 1, 2...) still give
// well-mixed, non-zero states.
func New(seed uint64) *Xorshift {
	x := &Xorshift{}
	x.Seed(seed)
	return x
}

// Seed resets the generator state from seed.
func (x *Xorshift) Seed(seed uint64) {
	x.s[0] = splitmix64(&seed)
	x.s[1] = splitmix64(&seed)
	if x.s[0] == 0 && x.s[1] == 0 {
		x.s[1] = 1
	}
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Clone returns an independent copy with the same state.
func (x *Xorshift) Clone() *Xorshift {
	c := *x
	return &c
}

// Uint64 returns the next raw 64 bit value.
func (x *Xorshift) Uint64() uint64 {
	s1 := x.s[0]
	s0 := x.s[1]
	x.s[0] = s0
	s1 ^= s1 << 23
	x.s[1] = s1 ^ s0 ^ (s1 >> 17) ^ (s0 >> 26)
	return x.s[1] + s0
}

// toFloat64 maps the top 52 bits onto [1, 2) and shifts down to [0, 1).
func toFloat64(v uint64) float64 {
	return math.Float64frombits(0x3FF<<52|v>>12) - 1.0
}

// Float64 returns a value in [0, 1).
func (x *Xorshift) Float64() float64 {
	return toFloat64(x.Uint64())
}

// Float64Range returns a value in [min, max). A reversed range is allowed
// and a zero-width range always returns min.
func (x *Xorshift) Float64Range(min, max float64) float64 {
	return min + (max-min)*x.Float64()
}

// Float32 returns a value in [0, 1).
func (x *Xorshift) Float32() float32 {
	f := float32(x.Float64())
	if f == 1 {
		// rounding to float32 can land on 1.0
		f = math.Nextafter32(1, 0)
	}
	return f
}

// Float32Range returns a value between min and max.
func (x *Xorshift) Float32Range(min, max float32) float32 {
	return min + (max-min)*x.Float32()
}
