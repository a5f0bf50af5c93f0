package tree

import (
	"math"

	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/skeleton"
)

// leafDensity returns how many leaf slots each bone offers and the chance
// that a slot stays empty. Older trees get fewer, sparser leaves per bone.
func leafDensity(iterations int) (perBone int, pruning float32) {
	growth := float32(iterations) / (1 + float32(iterations))
	pruning = 2*growth - 1
	perBone = 25 - int(20*pruning)
	return max(perBone, 1), pruning
}

// leafStartDepth is the first branch generation that carries leaves.
func leafStartDepth(branches []skeleton.Branch) int {
	return max(skeleton.MaxDepth(branches)-2, 2)
}

// leafPlacer stamps copies of one leaf mesh into out.
type leafPlacer struct {
	leaf *mesh.Mesh
	rnd  fractals.Random
	opts Options
	out  *mesh.Mesh
}

// place puts a leaf at pos with its tip along dir and its face along
// normal, scaled uniformly at random. It reports false if dir and normal
// are parallel and no frame exists.
func (lp *leafPlacer) place(pos, dir, normal math32.Vector3) bool {
	if _, ok := unit(dir.Cross(normal)); !ok {
		return false
	}
	k := lp.rnd.Float32Range(lp.opts.LeafMinScale, lp.opts.LeafMaxScale)

	var look math32.Quat
	look.SetFromRotationMatrix(math32.NewLookAt(pos, pos.Sub(dir), normal.MulScalar(-1)))
	var mat math32.Matrix4
	mat.SetTransform(pos, look, math32.Vec3(k, k, k))

	first := lp.out.VertexCount()
	lp.out.AppendMeshTransformed(lp.leaf, &mat)
	tint := vec4(lp.opts.LeafColor.BlendHcl(lp.opts.LeafAltColor, float64(lp.rnd.Float32())))
	for i := first; i < lp.out.VertexCount(); i++ {
		lp.out.Colors[i] = tint
	}
	return true
}

// scatterLeaves spreads leaves over the outer branch generations, from a
// quarter of the way along each branch to its tip, plus one leaf on every
// branch tip. It returns the number of leaves placed.
func scatterLeaves[P any](sh shape, out *mesh.Mesh, s *skeleton.Skeleton[P], branches []skeleton.Branch, iterations int, leaf *mesh.Mesh, rnd fractals.Random, opts Options) int {
	perBone, pruning := leafDensity(iterations)
	startDepth := leafStartDepth(branches)
	lp := leafPlacer{leaf: leaf, rnd: rnd, opts: opts, out: out}

	count := 0
	for bi := range branches {
		b := &branches[bi]
		if b.Depth < startDepth {
			continue
		}
		last := len(b.Nodes) - 1
		for i := int(math.Round(0.25 * float64(last))); i <= last; i++ {
			bone := s.Bone(b.Nodes[i])
			begin := bone.Transform.Position
			dir := bone.Transform.Forward
			up := bone.Transform.Up
			thickness := sh.thickness(b.Depth, bone.NodeDepth)
			step := bone.Length / float32(perBone)

			for slot := perBone - 1; slot >= 0; slot-- {
				if rnd.Float32() < pruning {
					continue
				}
				along := step*float32(slot) + rnd.Float32Range(0, step/2)
				pos := begin.Add(dir.MulScalar(along))

				// start on the bark, not inside the branch
				side := rotate(up, dir, rnd.Float32Range(0, 2*math32.Pi))
				pos = pos.Add(side.MulScalar(thickness))

				// lean towards the branch direction, then twist
				leafDir, ok := unit(side.Lerp(dir, rnd.Float32Range(0.3, 0.8)))
				if !ok {
					continue
				}
				normal := rotate(dir, leafDir, rnd.Float32Range(0, 2*math32.Pi))
				if lp.place(pos, leafDir, normal) {
					count++
				}
			}

			if i == last && lp.place(bone.TipPosition(), dir, up) {
				count++
			}
		}
	}
	return count
}
