package tree

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/turtle"
)

// LeafTextureSize is the side of the square leaf texture in pixels.
const LeafTextureSize = 128

var (
	leafFill = color.NRGBA{0, 200, 0, 0}
	leafLine = color.NRGBA{0, 100, 0, 255}
)

// GenerateLeaf paints the fractal leaf into c, which should be size pixels
// square, and returns a mesh of its outline. The mesh lies in the XZ plane
// facing +Y with the stem at the origin and the tip towards +Z; texture
// coordinates map back onto c.
func GenerateLeaf(c turtle.Canvas, size int, col colorful.Color) (*mesh.Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: leaf texture size %d", fractals.ErrInvalidParams, size)
	}
	s := float64(size)
	c.Fill(leafFill)
	hull, err := fractals.DrawFractalLeaf(c, fractals.Params{
		Iterations: 6,
		Scale:      1,
		Origin:     turtle.Point{X: s * 0.5, Y: s},
		StartAngle: 90,
		Color:      leafLine,
	})
	if err != nil {
		return nil, err
	}
	if len(hull) < 3 {
		return nil, fmt.Errorf("tree: leaf outline has %d points", len(hull))
	}
	for i := range hull {
		c.DrawLine(hull[i], hull[(i+1)%len(hull)], leafLine)
	}

	m := &mesh.Mesh{}
	up := math32.Vec3(0, 1, 0)
	vc := vec4(col)
	for _, p := range hull {
		u, v := float32(p.X/s), float32(p.Y/s)
		m.AddVertex(math32.Vec3(u-0.5, 0, 1-v), up, vc, math32.Vec4(u, v, 0, 0))
	}
	for i := 1; i+1 < len(hull); i++ {
		m.DefineTriangle(0, uint32(i), uint32(i+1))
	}
	m.ApplyMatrix(scaleMatrix(0.5))
	return m, nil
}

func scaleMatrix(k float32) *math32.Matrix4 {
	return &math32.Matrix4{
		k, 0, 0, 0,
		0, k, 0, 0,
		0, 0, k, 0,
		0, 0, 0, 1,
	}
}

func vec4(c colorful.Color) math32.Vector4 {
	c = c.Clamped()
	return math32.Vec4(float32(c.R), float32(c.G), float32(c.B), 1)
}
