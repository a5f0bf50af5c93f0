// Package mesh holds CPU-side geometry: an indexed triangle soup and a
// coloured line list. Nothing here knows about GPUs; uploading is up to
// the caller.
package mesh

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
)

// ErrIndexOutOfRange is returned by Validate for a dangling index.
var ErrIndexOutOfRange = errors.New("mesh: index out of range")

// Mesh stores parallel vertex arrays and a flat triangle index list.
type Mesh struct {
	Positions []math32.Vector3
	Normals   []math32.Vector3
	Colors    []math32.Vector4
	TexCoords []math32.Vector4
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Clear drops all geometry.
func (m *Mesh) Clear() {
	*m = Mesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos, normal math32.Vector3, col, tex math32.Vector4) uint32 {
	m.Positions = append(m.Positions, pos)
	m.Normals = append(m.Normals, normal)
	m.Colors = append(m.Colors, col)
	m.TexCoords = append(m.TexCoords, tex)
	return uint32(len(m.Positions) - 1)
}

// DefineTriangle appends one triangle.
func (m *Mesh) DefineTriangle(i0, i1, i2 uint32) {
	m.Indices = append(m.Indices, i0, i1, i2)
}

// AppendMesh copies other onto the end of m, offsetting its indices by the
// vertex count m had before the call.
func (m *Mesh) AppendMesh(other *Mesh) {
	offset := uint32(len(m.Positions))
	start := len(m.Indices)

	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	m.Colors = append(m.Colors, other.Colors...)
	m.TexCoords = append(m.TexCoords, other.TexCoords...)
	m.Indices = append(m.Indices, other.Indices...)

	for i := start; i < len(m.Indices); i++ {
		m.Indices[i] += offset
	}
}

// AppendMeshTransformed appends other and applies mat to the new vertices only.
func (m *Mesh) AppendMeshTransformed(other *Mesh, mat *math32.Matrix4) {
	first := len(m.Positions)
	m.AppendMesh(other)
	m.ApplyMatrixRange(mat, first, len(m.Positions)-1)
}

// ApplyMatrix transforms every vertex.
func (m *Mesh) ApplyMatrix(mat *math32.Matrix4) {
	m.ApplyMatrixRange(mat, 0, len(m.Positions)-1)
}

// ApplyMatrixRange transforms vertices first..last inclusive, clamped to
// the mesh. Positions get the full affine transform, normals only the
// linear part and are renormalised, so scaling keeps them unit length.
func (m *Mesh) ApplyMatrixRange(mat *math32.Matrix4, first, last int) {
	if first < 0 {
		first = 0
	}
	if last >= len(m.Positions) {
		last = len(m.Positions) - 1
	}
	for i := first; i <= last; i++ {
		m.Positions[i] = m.Positions[i].MulMatrix4AsVector4(mat, 1)
		n := m.Normals[i].MulMatrix4AsVector4(mat, 0)
		if l := n.Length(); l > 0 {
			n = n.DivScalar(l)
		}
		m.Normals[i] = n
	}
}

// Validate checks that the arrays line up and every index points at a vertex.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.Colors) != n || len(m.TexCoords) != n {
		return fmt.Errorf("mesh: attribute arrays differ in length (%d positions, %d normals, %d colors, %d texcoords)",
			n, len(m.Normals), len(m.Colors), len(m.TexCoords))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh: %d indices is not a whole number of triangles", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// Segment is one line of a Lines list.
type Segment struct {
	Start, End math32.Vector3
}

// Lines is a coloured line list, used for the skeleton overlay.
type Lines struct {
	Segments []Segment
	// Colors has one entry per end point, two per segment.
	Colors []math32.Vector4
}

// AddLine appends a segment drawn in col.
func (l *Lines) AddLine(start, end math32.Vector3, col math32.Vector4) {
	l.Segments = append(l.Segments, Segment{start, end})
	l.Colors = append(l.Colors, col, col)
}

// Len returns the number of segments.
func (l *Lines) Len() int {
	return len(l.Segments)
}

// Clear drops all segments.
func (l *Lines) Clear() {
	*l = Lines{}
}
