// Package tree turns a grown skeleton into renderable geometry: tapered
// branch cylinders, scattered leaves and a bone overlay.
package tree

import (
	"context"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/skeleton"
)

const (
	branchScalar   = 0.4 // child branch thickness relative to its parent
	trunkDivisions = 32
	minDivisions   = 6
	epsilon        = 1e-6
)

var (
	boneColor   = math32.Vec4(0, 1, 0, 1)
	normalColor = math32.Vec4(1, 0, 0, 1)
)

// Options control the look of the synthesised tree.
type Options struct {
	LeafMinScale float32
	LeafMaxScale float32
	BarkColor    colorful.Color
	// Each leaf gets a random blend of LeafColor and LeafAltColor.
	LeafColor    colorful.Color
	LeafAltColor colorful.Color
}

// DefaultOptions are white bark and green leaves between a quarter and one
// and a half times the leaf mesh size.
func DefaultOptions() Options {
	return Options{
		LeafMinScale: 0.25,
		LeafMaxScale: 1.5,
		BarkColor:    colorful.Color{R: 1, G: 1, B: 1},
		LeafColor:    colorful.Color{R: 0.18, G: 0.55, B: 0.15},
		LeafAltColor: colorful.Color{R: 0.55, G: 0.7, B: 0.2},
	}
}

// Validate rejects an empty or inverted leaf scale range.
func (o Options) Validate() error {
	if !(o.LeafMinScale > 0) || o.LeafMaxScale < o.LeafMinScale {
		return fmt.Errorf("%w: leaf scale range [%v, %v]", fractals.ErrInvalidParams, o.LeafMinScale, o.LeafMaxScale)
	}
	return nil
}

// Result is everything one generation produces. It holds no references
// into the skeleton it was built from.
type Result struct {
	Branches mesh.Mesh
	Leaves   mesh.Mesh
	Skeleton mesh.Lines

	BranchCount int
	LeafCount   int
}

// Summary is a one line description of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d branches (%d triangles), %d leaves (%d triangles)",
		r.BranchCount, r.Branches.TriangleCount(), r.LeafCount, r.Leaves.TriangleCount())
}

// shape holds the per-tree constants derived from the grammar settings.
type shape struct {
	trunkThickness float32
	depthScalar    float32
	subdivisions   int
}

func newShape(iterations, subdivisions int) shape {
	return shape{
		trunkThickness: 0.5 * math32.Pow(1.3, float32(iterations)),
		// the root counters the extra bones of finer subdivisions
		depthScalar:  math32.Pow(0.75, 1/float32(subdivisions)),
		subdivisions: subdivisions,
	}
}

func (s shape) thickness(branchDepth, nodeDepth int) float32 {
	return s.trunkThickness *
		math32.Pow(branchScalar, float32(branchDepth)) *
		math32.Pow(s.depthScalar, float32(nodeDepth))
}

// cylinderDivisions halves the ring resolution every branch generation.
func cylinderDivisions(branchDepth int) int {
	d := 0
	if branchDepth < 31 {
		d = trunkDivisions >> branchDepth
	}
	return max(d, minDivisions)
}

func unit(v math32.Vector3) (math32.Vector3, bool) {
	l := v.Length()
	if !(l > epsilon) {
		return v, false
	}
	return v.DivScalar(l), true
}

func rotate(v, axis math32.Vector3, radians float32) math32.Vector3 {
	a, ok := unit(axis)
	if !ok {
		return v
	}
	return v.MulQuat(math32.NewQuatAxisAngle(a, radians))
}

// SynthesizeMesh builds the branch and leaf meshes for branches of s.
// iterations and subdivisions must be the values the skeleton was grown
// with; they set the trunk thickness, taper and leaf density. leaf is
// stamped along the outer branches; a nil or empty leaf skips foliage.
func SynthesizeMesh[P any](s *skeleton.Skeleton[P], branches []skeleton.Branch, iterations, subdivisions int, leaf *mesh.Mesh, rnd fractals.Random, opts Options) (*Result, error) {
	if iterations < 0 || subdivisions < 1 {
		return nil, fmt.Errorf("%w: iterations %d, subdivisions %d", fractals.ErrInvalidParams, iterations, subdivisions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Result{}
	if len(branches) == 0 {
		return r, nil
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: no random source", fractals.ErrInvalidParams)
	}

	sh := newShape(iterations, subdivisions)
	bark := vec4(opts.BarkColor)
	for i := range branches {
		var m mesh.Mesh
		branchMesh(sh, &m, s, &branches[i], bark)
		r.Branches.AppendMesh(&m)
	}
	r.BranchCount = len(branches)
	s.BoneLines(&r.Skeleton, boneColor, normalColor)

	if leaf != nil && !leaf.IsEmpty() {
		r.LeafCount = scatterLeaves(sh, &r.Leaves, s, branches, iterations, leaf, rnd, opts)
	}
	return r, nil
}

// Generate grows a tree with p and synthesises its meshes. ctx is checked
// between the stages; the stages themselves run to completion.
func Generate(ctx context.Context, p fractals.TreeParams, leaf *mesh.Mesh, rnd fractals.Random, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grown, err := fractals.GenerateTree3D(p, rnd)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SynthesizeMesh(grown.Skeleton, grown.Branches, p.Iterations, p.Subdivisions, leaf, rnd, opts)
}

// GeneratePlant grows the bushy 3D plant. Its bones are too short for
// cylinders, so only the bone overlay and branch count are filled in.
func GeneratePlant(ctx context.Context, iterations int, scale float32, rnd fractals.Random) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grown, err := fractals.GeneratePlant3D(iterations, scale, rnd)
	if err != nil {
		return nil, err
	}
	r := &Result{BranchCount: len(grown.Branches)}
	grown.Skeleton.BoneLines(&r.Skeleton, boneColor, normalColor)
	return r, nil
}
