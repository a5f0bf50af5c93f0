package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes m as a Wavefront OBJ object called name.
func (m *Mesh) WriteOBJ(w io.Writer, name string) error {
	return WriteOBJGroup(w, []string{name}, []*Mesh{m})
}

// WriteOBJGroup writes several meshes as objects of one OBJ stream. OBJ
// indices are 1-based and global, so each object's faces are shifted past
// the vertices already written. A face uses the same slot for v, vt and vn.
func WriteOBJGroup(w io.Writer, names []string, meshes []*Mesh) error {
	if len(names) != len(meshes) {
		return fmt.Errorf("mesh: %d names for %d meshes", len(names), len(meshes))
	}
	bw := bufio.NewWriter(w)
	offset := uint32(1)
	for i, m := range meshes {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		fmt.Fprintf(bw, "o %s\n", names[i])
		for _, p := range m.Positions {
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, t := range m.TexCoords {
			fmt.Fprintf(bw, "vt %g %g\n", t.X, t.Y)
		}
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
		for j := 0; j+2 < len(m.Indices); j += 3 {
			a, b, c := m.Indices[j]+offset, m.Indices[j+1]+offset, m.Indices[j+2]+offset
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		offset += uint32(m.VertexCount())
	}
	return bw.Flush()
}
