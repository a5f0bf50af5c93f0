package arbor

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exporter writes itself to fname in the format named by ext.
type Exporter interface {
	Export(fname, ext string) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(fname, ext string) error

func (f ExporterFunc) Export(fname, ext string) error { return f(fname, ext) }

// SafeWrite noisily saves to a seeded filename through a temp file. It
// returns the final name.
func (s Seed) SafeWrite(e Exporter, prefix, ext string) (string, error) {
	fname := s.GetFilename(prefix, ext)
	if err := SafeWrite(e, fname); err != nil {
		fmt.Printf("Problem saving %s: %v\n", fname, err)
		return "", err
	}
	fmt.Printf("Saved to %s\n", fname)
	return fname, nil
}

// SafeWrite writes to a temp file next to fname then renames it, so
// readers never see a half written file.
func SafeWrite(e Exporter, fname string) error {
	dir := filepath.Dir(fname)
	if err := MaybeCreateDir(dir); err != nil {
		return err
	}

	ext := filepath.Ext(fname)
	tmpfile, err := os.CreateTemp(dir, "arbor.*"+ext)
	if err != nil {
		return err
	}
	tmpName := tmpfile.Name()
	if err := tmpfile.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := e.Export(tmpName, ext); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fname); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Chmod(fname, 0664)
}
