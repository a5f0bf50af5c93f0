// Package raster is a pixel canvas for the 2D turtle, backed by gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/scottkirkwood/arbor/turtle"
)

// Canvas draws hard-edged Bresenham lines into a gg context. Pixels outside
// the bounds are dropped.
type Canvas struct {
	ctx *gg.Context
}

var _ turtle.Canvas = (*Canvas)(nil)

// New returns a transparent width x height canvas.
func New(width, height int) *Canvas {
	return &Canvas{ctx: gg.NewContext(width, height)}
}

// Width in pixels.
func (c *Canvas) Width() int { return c.ctx.Width() }

// Height in pixels.
func (c *Canvas) Height() int { return c.ctx.Height() }

// Image returns the backing image.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col color.Color) {
	c.ctx.SetColor(col)
	c.ctx.Clear()
}

// SetPixel writes one pixel if it is inside the canvas.
func (c *Canvas) SetPixel(x, y int, col color.Color) {
	if x < 0 || y < 0 || x >= c.ctx.Width() || y >= c.ctx.Height() {
		return
	}
	c.ctx.SetColor(col)
	c.ctx.SetPixel(x, y)
}

// DrawLine draws from p0 towards p1 with Bresenham's algorithm. The end
// pixel is not set so that chained segments do not double-plot joints.
func (c *Canvas) DrawLine(p0, p1 turtle.Point, col color.Color) {
	x1, y1, x2, y2 := p0.X, p0.Y, p1.X, p1.Y
	steep := math.Abs(y2-y1) > math.Abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}

	dx := x2 - x1
	dy := math.Abs(y2 - y1)
	errAcc := dx / 2
	ystep := 1
	if y1 > y2 {
		ystep = -1
	}
	// floor, not truncate, so lines clipped at negative coordinates land
	// on the same pixels as on an unbounded plane
	y := int(math.Floor(y1))
	maxX := int(math.Floor(x2))

	for x := int(math.Floor(x1)); x < maxX; x++ {
		if steep {
			c.SetPixel(y, x, col)
		} else {
			c.SetPixel(x, y, col)
		}
		errAcc -= dy
		if errAcc < 0 {
			y += ystep
			errAcc += dx
		}
	}
}

// WritePNG saves the canvas.
func (c *Canvas) WritePNG(fname string) error {
	return c.ctx.SavePNG(fname)
}

// Export writes the canvas in the format named by ext. Only ".png" is
// supported for a raster.
func (c *Canvas) Export(fname, ext string) error {
	if ext != ".png" {
		return fmt.Errorf("raster canvas cannot write %s", ext)
	}
	return c.WritePNG(fname)
}
