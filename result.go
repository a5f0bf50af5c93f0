package arbor

import (
	"fmt"
	"image/color"
	"os"

	"github.com/scottkirkwood/arbor/mesh"
	"github.com/scottkirkwood/arbor/tree"
)

// ResultExporter saves a generation: ".obj" writes the branch and leaf
// meshes, ".png" a PreviewSize preview of the skeleton.
type ResultExporter struct {
	Result      *tree.Result
	PreviewSize int
}

func (e ResultExporter) Export(fname, ext string) error {
	switch ext {
	case ".obj":
		f, err := os.Create(fname)
		if err != nil {
			return err
		}
		err = mesh.WriteOBJGroup(f, []string{"branches", "leaves"},
			[]*mesh.Mesh{&e.Result.Branches, &e.Result.Leaves})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	case ".png":
		return PreviewLines(&e.Result.Skeleton, e.PreviewSize, color.White).WritePNG(fname)
	}
	return fmt.Errorf("unsupported file format %s", ext)
}
