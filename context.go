package arbor

import (
	"fmt"
	"image/color"

	"github.com/scottkirkwood/arbor/turtle"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/pdf"
	"github.com/tdewolff/canvas/rasterizer"
	"github.com/tdewolff/canvas/svg"
)

// Context is a vector canvas the 2D turtle can draw into. Turtle
// coordinates have y pointing down; canvas has it pointing up, so lines
// are flipped on the way in.
type Context struct {
	c      *canvas.Canvas
	ctx    *canvas.Context
	width  float64
	height float64
}

var _ turtle.Canvas = (*Context)(nil)

func NewContext(width, height float64) *Context {
	ctx := &Context{
		c:      canvas.New(width, height),
		width:  width,
		height: height,
	}
	ctx.ctx = canvas.NewContext(ctx.c)
	ctx.ctx.SetStrokeWidth(1)
	return ctx
}

// Width of the canvas in millimetres.
func (ctx *Context) Width() float64 { return ctx.width }

// Height of the canvas in millimetres.
func (ctx *Context) Height() float64 { return ctx.height }

// WritePNG writes to a PNG file
func (ctx *Context) WritePNG(fname string) error {
	return ctx.c.WriteFile(fname, rasterizer.PNGWriter(3.2))
}

// WriteSVG writes to an SVG file
func (ctx *Context) WriteSVG(fname string) error {
	return ctx.c.WriteFile(fname, svg.Writer)
}

// WritePDF writes to a PDF file
func (ctx *Context) WritePDF(fname string) error {
	return ctx.c.WriteFile(fname, pdf.Writer)
}

// Export writes the canvas in the format named by ext.
func (ctx *Context) Export(fname, ext string) error {
	switch ext {
	case ".png":
		return ctx.WritePNG(fname)
	case ".svg":
		return ctx.WriteSVG(fname)
	case ".pdf":
		return ctx.WritePDF(fname)
	}
	return fmt.Errorf("unsupported file format %s", ext)
}

// Reset empties the canvas.
func (ctx *Context) Reset() {
	ctx.c.Reset()
}

// Fill covers the whole canvas with col.
func (ctx *Context) Fill(col color.Color) {
	ctx.ctx.Push()
	ctx.ctx.SetFillColor(col)
	ctx.ctx.SetStrokeColor(color.Transparent)
	ctx.ctx.DrawPath(0, 0, canvas.Rectangle(ctx.width, ctx.height))
	ctx.ctx.Pop()
}

// DrawLine strokes one segment in col.
func (ctx *Context) DrawLine(p0, p1 turtle.Point, col color.Color) {
	ctx.ctx.SetStrokeColor(col)
	ctx.ctx.MoveTo(p0.X, ctx.height-p0.Y)
	ctx.ctx.LineTo(p1.X, ctx.height-p1.Y)
	ctx.ctx.Stroke()
}

func (ctx *Context) SetStrokeWidth(width float64) {
	ctx.ctx.SetStrokeWidth(width)
}
