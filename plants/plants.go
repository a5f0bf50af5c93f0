// This program draws the 2D L-system recipes side by side on one sheet
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/scottkirkwood/arbor"
	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/raster"
	"github.com/scottkirkwood/arbor/turtle"
)

var (
	seedFlag     = flag.String("seed", "", "Hex seed to use, empty picks one")
	settingsFlag = flag.String("settings", "", "TOML settings file")
	formatFlag   = flag.String("format", "png", "png, svg, pdf or all")
	verboseFlag  = flag.Bool("v", false, "Verbose logging")
)

const (
	width  = 1000
	height = 1000
)

var background = color.Gray{245}

func main() {
	flag.Parse()
	log := arbor.NewLogger(os.Stderr, *verboseFlag)
	slog.SetDefault(log)

	settings, err := arbor.SettingsOrDefault(*settingsFlag)
	if err != nil {
		log.Error("Unable to read settings", "err", err)
		os.Exit(1)
	}
	g, err := settings.InitSeed(*seedFlag)
	if err != nil {
		fmt.Printf("Unable to set the seed: %v\n", err)
		os.Exit(1)
	}

	formats := []string{*formatFlag}
	if *formatFlag == "all" {
		formats = []string{"png", "svg", "pdf"}
	}
	prefix := filepath.Join(settings.OutputDir, "plants-")
	failed := false
	for _, format := range formats {
		if err := write(g, settings, prefix, "."+format); errors.Log(err) != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// write draws the gallery into a canvas suited to ext and saves it. Every
// format gets the same seed so the stochastic recipes match across files.
func write(g arbor.Seed, settings arbor.Settings, prefix, ext string) error {
	var (
		c   turtle.Canvas
		out arbor.Exporter
	)
	switch ext {
	case ".png":
		r := raster.New(width, height)
		c, out = r, r
	case ".svg", ".pdf":
		v := arbor.NewContext(width, height)
		v.SetStrokeWidth(0.5)
		c, out = v, v
	default:
		return fmt.Errorf("unknown format %q", ext)
	}
	if err := drawGallery(c, settings.Gallery, g); err != nil {
		return err
	}
	_, err := g.SafeWrite(out, prefix, ext)
	return err
}

func drawGallery(c turtle.Canvas, names []string, g arbor.Seed) error {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	rnd := g.RNG()
	c.Fill(background)
	for _, p := range fractals.Gallery(width, height) {
		if !want[p.Name] {
			continue
		}
		slog.Debug("drawing", "recipe", p.Name, "iterations", p.Params.Iterations)
		if err := fractals.Draw(c, p.Name, p.Params, rnd); err != nil {
			return err
		}
	}
	return nil
}
