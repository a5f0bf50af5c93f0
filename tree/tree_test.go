package tree

import (
	"context"
	"strings"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/raster"
	"github.com/scottkirkwood/arbor/rng"
	"github.com/scottkirkwood/arbor/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midRandom always answers the middle of [0,1) and the low end of ranges.
type midRandom struct{}

func (midRandom) Float32() float32 { return 0.5 }

func (midRandom) Float32Range(min, _ float32) float32 { return min }

func vecNear(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func finite(t *testing.T, m *mesh.Mesh) {
	t.Helper()
	for i, p := range m.Positions {
		if math32.IsNaN(p.X) || math32.IsNaN(p.Y) || math32.IsNaN(p.Z) {
			t.Fatalf("vertex %d is NaN", i)
		}
	}
}

// straight grows a chain of bones up +Y with the given lengths.
func straight(lengths ...float32) *skeleton.Turtle[fractals.TreeProps] {
	tt := skeleton.NewTurtle[fractals.TreeProps]()
	tt.Transform = skeleton.NewTransform(fractals.TreeProps{})
	for _, l := range lengths {
		tt.MoveForward(l)
	}
	return tt
}

func TestCylinderDivisions(t *testing.T) {
	tests := []struct {
		depth, want int
	}{
		{0, 32}, {1, 16}, {2, 8}, {3, 6}, {4, 6}, {40, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cylinderDivisions(tt.depth), "depth %d", tt.depth)
	}
}

func TestLeafDensity(t *testing.T) {
	tests := []struct {
		iterations int
		perBone    int
		pruning    float32
	}{
		{0, 45, -1},
		{1, 25, 0},
		{3, 15, 0.5},
	}
	for _, tt := range tests {
		perBone, pruning := leafDensity(tt.iterations)
		assert.Equal(t, tt.perBone, perBone, "iterations %d", tt.iterations)
		assert.InDelta(t, tt.pruning, pruning, 1e-6)
	}
	perBone, _ := leafDensity(1 << 30)
	assert.GreaterOrEqual(t, perBone, 1)
}

func TestLeafStartDepth(t *testing.T) {
	mk := func(depths ...int) []skeleton.Branch {
		var bs []skeleton.Branch
		for _, d := range depths {
			bs = append(bs, skeleton.Branch{Depth: d})
		}
		return bs
	}
	assert.Equal(t, 2, leafStartDepth(mk(1)))
	assert.Equal(t, 2, leafStartDepth(mk(1, 2, 3, 4)))
	assert.Equal(t, 4, leafStartDepth(mk(1, 2, 3, 6)))
}

func TestThicknessTapers(t *testing.T) {
	sh := newShape(4, 3)
	assert.InDelta(t, 0.5*1.3*1.3*1.3*1.3*0.4, sh.thickness(1, 0), 1e-4)
	assert.Less(t, sh.thickness(1, 5), sh.thickness(1, 4))
	assert.Less(t, sh.thickness(2, 1), sh.thickness(1, 1))
	// three subdivided bones taper as much as one whole one
	assert.InDelta(t, sh.thickness(1, 0)*0.75, sh.thickness(1, 3), 1e-4)
}

func TestSynthesizeEmpty(t *testing.T) {
	var s skeleton.Skeleton[fractals.TreeProps]
	r, err := SynthesizeMesh(&s, nil, 3, 3, nil, nil, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, r.Branches.IsEmpty())
	assert.True(t, r.Leaves.IsEmpty())
	assert.Equal(t, 0, r.BranchCount)
}

func TestSynthesizeInvalid(t *testing.T) {
	var s skeleton.Skeleton[fractals.TreeProps]
	_, err := SynthesizeMesh(&s, nil, -1, 3, nil, nil, DefaultOptions())
	assert.ErrorIs(t, err, fractals.ErrInvalidParams)
	_, err = SynthesizeMesh(&s, nil, 1, 0, nil, nil, DefaultOptions())
	assert.ErrorIs(t, err, fractals.ErrInvalidParams)

	opts := DefaultOptions()
	opts.LeafMaxScale = 0.1
	_, err = SynthesizeMesh(&s, nil, 1, 1, nil, nil, opts)
	assert.ErrorIs(t, err, fractals.ErrInvalidParams)
}

func TestSingleBranchMesh(t *testing.T) {
	tt := straight(1, 1, 1)
	branches := skeleton.ExtractBranches(&tt.Skeleton)
	r, err := SynthesizeMesh(&tt.Skeleton, branches, 1, 1, nil, midRandom{}, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, r.Branches.Validate())

	// three rings of 16 plus a seam vertex, and the tip
	assert.Equal(t, 3*17+1, r.Branches.VertexCount())
	assert.Equal(t, 2*2*16+16, r.Branches.TriangleCount())
	assert.Equal(t, 1, r.BranchCount)
	assert.Equal(t, 6, r.Skeleton.Len())

	// the seam vertex repeats the first vertex of its ring
	assert.Equal(t, r.Branches.Positions[0], r.Branches.Positions[16])
	assert.Equal(t, float32(1), r.Branches.TexCoords[16].Y)
	vecNear(t, math32.Vec3(0, 3, 0), r.Branches.Positions[r.Branches.VertexCount()-1])

	// rings sit at the thickness of their bone
	sh := newShape(1, 1)
	first := r.Branches.Positions[0]
	assert.InDelta(t, sh.thickness(1, 1), first.Length(), 1e-4)
	finite(t, &r.Branches)
}

func TestZeroLengthBonesAreSkipped(t *testing.T) {
	tt := straight(1, 0, 1)
	branches := skeleton.ExtractBranches(&tt.Skeleton)
	r, err := SynthesizeMesh(&tt.Skeleton, branches, 1, 1, nil, midRandom{}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2*17+1, r.Branches.VertexCount())
	require.NoError(t, r.Branches.Validate())
	finite(t, &r.Branches)
}

func TestForkedBranchMesh(t *testing.T) {
	tt := straight(1)
	tt.PushState()
	tt.Rotate(0, 90)
	tt.MoveForward(1)
	tt.MoveForward(1)
	require.NoError(t, tt.PopState())
	tt.MoveForward(1)
	branches := skeleton.ExtractBranches(&tt.Skeleton)
	require.Len(t, branches, 2)

	r, err := SynthesizeMesh(&tt.Skeleton, branches, 1, 3, nil, midRandom{}, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, r.Branches.Validate())
	finite(t, &r.Branches)
}

func TestPlaceLeaf(t *testing.T) {
	leaf := &mesh.Mesh{}
	white := math32.Vec4(1, 1, 1, 1)
	leaf.AddVertex(math32.Vec3(0, 0, 1), math32.Vec3(0, 1, 0), white, math32.Vec4(0, 0, 0, 0))
	leaf.AddVertex(math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0), white, math32.Vec4(0, 0, 0, 0))
	leaf.AddVertex(math32.Vec3(0, 1, 0), math32.Vec3(0, 1, 0), white, math32.Vec4(0, 0, 0, 0))
	leaf.DefineTriangle(0, 1, 2)

	opts := DefaultOptions()
	opts.LeafMinScale, opts.LeafMaxScale = 1, 1
	var out mesh.Mesh
	lp := leafPlacer{leaf: leaf, rnd: midRandom{}, opts: opts, out: &out}

	require.True(t, lp.place(math32.Vec3(1, 2, 3), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1)))
	// the tip points along dir
	vecNear(t, math32.Vec3(1, 3, 3), out.Positions[0])
	vecNear(t, math32.Vec3(2, 2, 3), out.Positions[1])
	vecNear(t, math32.Vec3(1, 2, 2), out.Positions[2])
	assert.InDelta(t, 1, out.Normals[0].Length(), 1e-4)
	assert.NotEqual(t, white, out.Colors[0])

	assert.False(t, lp.place(math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 2, 0)))
	assert.Equal(t, 3, out.VertexCount())
}

func TestGenerateLeaf(t *testing.T) {
	c := raster.New(LeafTextureSize, LeafTextureSize)
	leaf, err := GenerateLeaf(c, LeafTextureSize, DefaultOptions().LeafColor)
	require.NoError(t, err)
	require.NoError(t, leaf.Validate())
	assert.Equal(t, leaf.VertexCount()-2, leaf.TriangleCount())
	for i, p := range leaf.Positions {
		assert.Equal(t, float32(0), p.Y)
		assert.LessOrEqual(t, math32.Abs(p.X), float32(0.25))
		assert.GreaterOrEqual(t, p.Z, float32(0))
		assert.LessOrEqual(t, p.Z, float32(0.5))
		vecNear(t, math32.Vec3(0, 1, 0), leaf.Normals[i])
		tex := leaf.TexCoords[i]
		assert.True(t, tex.X >= 0 && tex.X <= 1 && tex.Y >= 0 && tex.Y <= 1)
	}

	_, err = GenerateLeaf(c, 0, DefaultOptions().LeafColor)
	assert.ErrorIs(t, err, fractals.ErrInvalidParams)
}

func TestGenerate(t *testing.T) {
	leaf, err := GenerateLeaf(raster.New(LeafTextureSize, LeafTextureSize), LeafTextureSize, DefaultOptions().LeafColor)
	require.NoError(t, err)

	p := fractals.DefaultTreeParams()
	p.Iterations = 3
	r, err := Generate(context.Background(), p, leaf, rng.New(11), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, r.Branches.Validate())
	require.NoError(t, r.Leaves.Validate())
	finite(t, &r.Branches)
	finite(t, &r.Leaves)

	assert.Greater(t, r.BranchCount, 1)
	assert.Greater(t, r.LeafCount, 0)
	assert.Equal(t, r.LeafCount*leaf.TriangleCount(), r.Leaves.TriangleCount())
	assert.True(t, strings.HasPrefix(r.Summary(), "16 branches"), r.Summary())
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, fractals.DefaultTreeParams(), nil, rng.New(1), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = GeneratePlant(ctx, 3, 0.1, rng.New(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratePlant(t *testing.T) {
	r, err := GeneratePlant(context.Background(), 3, 0.1, rng.New(2))
	require.NoError(t, err)
	assert.Greater(t, r.Skeleton.Len(), 0)
	assert.True(t, r.Branches.IsEmpty())
	assert.Greater(t, r.BranchCount, 0)
}
