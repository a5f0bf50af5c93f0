package tree

import (
	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/skeleton"
)

// branchMesh emits one ring per bone, each closed by a duplicate of its
// first vertex carrying texture v=1, and caps the branch with a fan to the
// tip. Zero-length bones add nothing.
func branchMesh[P any](sh shape, m *mesh.Mesh, s *skeleton.Skeleton[P], b *skeleton.Branch, col math32.Vector4) {
	nodes := make([]skeleton.BoneID, 0, len(b.Nodes))
	for _, id := range b.Nodes {
		if s.Bone(id).Length > epsilon {
			nodes = append(nodes, id)
		}
	}
	if len(nodes) == 0 {
		return
	}

	divisions := cylinderDivisions(b.Depth)
	parent := s.Bone(b.Nodes[0]).Parent
	var texU float32
	for depth, id := range nodes {
		bone := s.Bone(id)
		thickness := sh.thickness(b.Depth, bone.NodeDepth)
		texU += bone.Length / (2 * math32.Pi * thickness)

		t := &bone.Transform
		localX := t.Up
		localY := t.Forward
		position := t.Position

		// Blend the first rings into the parent so forks do not kink.
		if depth < sh.subdivisions-1 && parent != skeleton.NoBone {
			p := &s.Bone(parent).Transform
			alpha := float32(depth) / float32(sh.subdivisions)

			projection := p.Position
			if v, ok := unit(t.Position.Sub(p.Position)); ok {
				length := t.Position.Sub(p.Position).Length()
				projection = p.Position.Add(p.Forward.MulScalar(p.Forward.Dot(v) * length * alpha))
			}
			position = projection.Lerp(t.Position, 0.5+0.5*alpha)
			thickness = math32.Lerp(thickness/branchScalar, thickness, 0.4+0.6*alpha)

			if blended, ok := unit(p.Forward.Lerp(t.Forward, alpha)); ok {
				localY = blended
				fwd, _ := unit(t.Forward)
				angle := math32.Acos(math32.Clamp(fwd.Dot(localY), -1, 1))
				localX = rotate(localX, fwd.Cross(localY), angle)
			}
		}
		axis, ok := unit(localY)
		if !ok {
			axis = math32.Vec3(0, 1, 0)
		}

		step := 2 * math32.Pi / float32(divisions)
		for i := 0; i < divisions; i++ {
			normal := rotate(localX, axis, step*float32(i))
			m.AddVertex(position.Add(normal.MulScalar(thickness)), normal, col,
				math32.Vec4(texU, float32(i)/float32(divisions), 1, 1))
		}
		m.AddVertex(position.Add(localX.MulScalar(thickness)), localX, col, math32.Vec4(texU, 1, 1, 1))
	}

	last := s.Bone(nodes[len(nodes)-1])
	tip := m.AddVertex(last.TipPosition(), last.Transform.Forward, col, math32.Vec4(texU+last.Length, 0.5, 1, 1))

	ringStep := uint32(divisions + 1)
	for depth := 1; depth < len(nodes); depth++ {
		upper := uint32(depth) * ringStep
		lower := upper - ringStep
		for i := uint32(0); i < uint32(divisions); i++ {
			u, l := upper+i, lower+i
			m.DefineTriangle(l, l+1, u+1)
			m.DefineTriangle(u+1, u, l)
		}
	}
	lastRing := ringStep * uint32(len(nodes)-1)
	for i := uint32(1); i < ringStep; i++ {
		m.DefineTriangle(lastRing+i-1, lastRing+i, tip)
	}
}
