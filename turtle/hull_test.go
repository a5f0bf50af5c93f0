package turtle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientation(t *testing.T) {
	tests := []struct {
		p, q, r Point
		want    int
	}{
		{Point{0, 0}, Point{1, 1}, Point{2, 2}, 0},
		{Point{0, 0}, Point{4, 4}, Point{1, 2}, 2},
		{Point{0, 0}, Point{4, 4}, Point{2, 1}, 1},
	}
	for _, tt := range tests {
		if got := orientation(tt.p, tt.q, tt.r); got != tt.want {
			t.Errorf("orientation(%v, %v, %v) = %d, want %d", tt.p, tt.q, tt.r, got, tt.want)
		}
	}
}

func TestConvexHull(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   []Point
	}{
		{
			name: "square with interior and edge points",
			points: []Point{
				{2, 2}, {0, 4}, {4, 0}, {2, 0}, {0, 0}, {4, 4}, {1, 3},
			},
			want: []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		}, {
			name:   "triangle",
			points: []Point{{0, 0}, {10, 0}, {5, -8}},
			want:   []Point{{0, 0}, {5, -8}, {10, 0}},
		}, {
			name:   "duplicates collapse",
			points: []Point{{1, 1}, {1, 1}, {3, 3}},
			want:   []Point{{1, 1}, {3, 3}},
		}, {
			name: "empty",
		},
	}
	for _, tt := range tests {
		got := ConvexHull(tt.points)
		assert.ElementsMatch(t, tt.want, got, tt.name)
		if len(tt.want) > 0 {
			assert.Equal(t, tt.want[0], got[0], tt.name)
		}
	}
}

func TestConvexHullContainsEveryPoint(t *testing.T) {
	var pts []Point
	for i := 0; i < 40; i++ {
		pts = append(pts, Point{float64(i*7%13) - 6, float64(i*11%17) - 8})
	}
	hull := ConvexHull(pts)
	assert.GreaterOrEqual(t, len(hull), 3)
	for _, p := range pts {
		for i := range hull {
			a, b := hull[i], hull[(i+1)%len(hull)]
			assert.NotEqual(t, 1, orientation(a, b, p), "%v outside edge %v-%v", p, a, b)
		}
	}
}
