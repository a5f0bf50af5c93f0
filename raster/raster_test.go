package raster

import (
	"image/color"
	"testing"

	"github.com/scottkirkwood/arbor/turtle"
	"github.com/stretchr/testify/assert"
)

func isSet(c *Canvas, x, y int) bool {
	_, _, _, a := c.Image().At(x, y).RGBA()
	return a != 0
}

func count(c *Canvas) int {
	n := 0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if isSet(c, x, y) {
				n++
			}
		}
	}
	return n
}

func TestFill(t *testing.T) {
	c := New(4, 3)
	assert.Equal(t, 0, count(c))
	c.Fill(color.White)
	assert.Equal(t, 12, count(c))
}

func TestLines(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 turtle.Point
		want   int
	}{
		{"horizontal", turtle.Point{X: 0, Y: 5}, turtle.Point{X: 10, Y: 5}, 10},
		{"reversed", turtle.Point{X: 10, Y: 5}, turtle.Point{X: 0, Y: 5}, 10},
		{"vertical", turtle.Point{X: 3, Y: 0}, turtle.Point{X: 3, Y: 8}, 8},
		{"diagonal", turtle.Point{X: 0, Y: 0}, turtle.Point{X: 6, Y: 6}, 6},
		{"zero length", turtle.Point{X: 2, Y: 2}, turtle.Point{X: 2, Y: 2}, 0},
	}
	for _, tt := range tests {
		c := New(16, 16)
		c.DrawLine(tt.p0, tt.p1, color.Black)
		assert.Equal(t, tt.want, count(c), tt.name)
	}
}

func TestLineIsClipped(t *testing.T) {
	c := New(10, 10)
	c.DrawLine(turtle.Point{X: -20, Y: 5}, turtle.Point{X: 30, Y: 5}, color.Black)
	assert.Equal(t, 10, count(c))
	for x := 0; x < 10; x++ {
		assert.True(t, isSet(c, x, 5))
	}
}

func TestExportRejectsVectorFormats(t *testing.T) {
	c := New(2, 2)
	assert.Error(t, c.Export("x.svg", ".svg"))
}

func TestLineJustOffCanvasStaysOff(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 turtle.Point
	}{
		{"above", turtle.Point{X: 0, Y: -0.5}, turtle.Point{X: 4, Y: -0.5}},
		{"left", turtle.Point{X: -0.5, Y: 0}, turtle.Point{X: -0.5, Y: 4}},
	}
	for _, tt := range tests {
		c := New(8, 8)
		c.DrawLine(tt.p0, tt.p1, color.Black)
		assert.Equal(t, 0, count(c), tt.name)
	}

	c := New(8, 8)
	c.DrawLine(turtle.Point{X: -1.5, Y: 2}, turtle.Point{X: 3, Y: 2}, color.Black)
	assert.Equal(t, 3, count(c))
	assert.True(t, isSet(c, 0, 2))
	assert.False(t, isSet(c, 3, 2))
}
