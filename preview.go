package arbor

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/raster"
	"github.com/scottkirkwood/arbor/turtle"
	"golang.org/x/image/draw"
)

// VpCenter inspects the canvas and image geometry, and determines where the
// origin of the image should be painted into the canvas.
// If the image is bigger than the canvas, this is always (0, 0).
// If the image is the same size, then it is also (0, 0).
// If a dimension of the image is smaller than the canvas, then:
// x = (canvas_width - image_width) / 2 and
// y = (canvas_height - image_height) / 2
func VpCenter(ximg image.Image, canWidth, canHeight int) image.Point {
	xmargin, ymargin := 0, 0
	if ximg.Bounds().Dx() < canWidth {
		xmargin = (canWidth - ximg.Bounds().Dx()) / 2
	}
	if ximg.Bounds().Dy() < canHeight {
		ymargin = (canHeight - ximg.Bounds().Dy()) / 2
	}
	return image.Point{xmargin, ymargin}
}

// FitImage scales img down, keeping its aspect ratio, so that it fits in
// a maxWidth x maxHeight box. Images that already fit come back as is.
func FitImage(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	scale := min(float64(maxWidth)/float64(b.Dx()), float64(maxHeight)/float64(b.Dy()))
	w := max(int(float64(b.Dx())*scale), 1)
	h := max(int(float64(b.Dy())*scale), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// PreviewLines projects skeleton lines onto the XY plane of a size x size
// raster, fitting their bounding box with a small margin. Segment colours
// are kept.
func PreviewLines(lines *mesh.Lines, size int, background color.Color) *raster.Canvas {
	c := raster.New(size, size)
	c.Fill(background)
	if lines.Len() == 0 {
		return c
	}

	lo := math32.Vec3(math32.Infinity, math32.Infinity, 0)
	hi := math32.Vec3(-math32.Infinity, -math32.Infinity, 0)
	for _, s := range lines.Segments {
		for _, p := range []math32.Vector3{s.Start, s.End} {
			lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
			hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
		}
	}
	extent := max(hi.X-lo.X, hi.Y-lo.Y)
	if extent <= 0 {
		extent = 1
	}
	margin := float64(size) * 0.05
	scale := (float64(size) - 2*margin) / float64(extent)
	cx := float64(lo.X+hi.X) / 2

	project := func(p math32.Vector3) turtle.Point {
		// y up in the scene, down on the canvas; the root sits at the bottom
		return turtle.Point{
			X: float64(size)/2 + (float64(p.X)-cx)*scale,
			Y: float64(size) - margin - float64(p.Y-lo.Y)*scale,
		}
	}
	for i, s := range lines.Segments {
		c.DrawLine(project(s.Start), project(s.End), vecColor(lines.Colors[2*i]))
	}
	return c
}

func vecColor(v math32.Vector4) color.Color {
	to8 := func(f float32) uint8 { return uint8(Clamp(f, 0, 1)*255 + 0.5) }
	return color.NRGBA{to8(v.X), to8(v.Y), to8(v.Z), to8(v.W)}
}
