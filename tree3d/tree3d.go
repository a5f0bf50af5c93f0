// This program grows one 3D tree and saves it as an OBJ model, the leaf
// texture and a skeleton preview
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/scottkirkwood/arbor"
	"github.com/scottkirkwood/arbor/raster"
	"github.com/scottkirkwood/arbor/session"
	"github.com/scottkirkwood/arbor/tree"
)

var (
	seedFlag       = flag.String("seed", "", "Hex seed to use, empty picks one")
	settingsFlag   = flag.String("settings", "", "TOML settings file")
	recipeFlag     = flag.String("recipe", "", "tree-3d or plant-3d, overrides the settings")
	styleFlag      = flag.String("style", "", "default or slim, overrides the settings")
	iterationsFlag = flag.Int("iterations", -1, "Grammar iterations, overrides the settings")
	basicFlag      = flag.Bool("basic", false, "Grow without randomness")
	previewFlag    = flag.Int("preview", 512, "Size of the skeleton preview in pixels")
	verboseFlag    = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()
	log := arbor.NewLogger(os.Stderr, *verboseFlag)

	settings, err := loadSettings()
	if err != nil {
		log.Error("Bad settings", "err", err)
		os.Exit(1)
	}
	g, err := settings.InitSeed(*seedFlag)
	if err != nil {
		fmt.Printf("Unable to set the seed: %v\n", err)
		os.Exit(1)
	}
	prefix := filepath.Join(settings.OutputDir, settings.Recipe+"-")

	opts, err := settings.TreeOptions()
	if errors.Log(err) != nil {
		os.Exit(1)
	}
	texture := raster.New(tree.LeafTextureSize, tree.LeafTextureSize)
	leaf, err := tree.GenerateLeaf(texture, tree.LeafTextureSize, opts.LeafColor)
	if errors.Log(err) != nil {
		os.Exit(1)
	}
	if _, err := g.SafeWrite(texture, prefix+"leaf-", ".png"); err != nil {
		os.Exit(1)
	}

	req, err := settings.Request()
	if errors.Log(err) != nil {
		os.Exit(1)
	}
	s := session.New(uint64(g.GetSeed()), leaf, log)
	res, err := s.Generate(context.Background(), req)
	if err != nil {
		os.Exit(1)
	}
	log.Info(res.Summary(), "seed", fmt.Sprintf("%x", g.GetSeed()))

	out := arbor.ResultExporter{Result: res, PreviewSize: *previewFlag}
	if !res.Branches.IsEmpty() {
		if _, err := g.SafeWrite(out, prefix, ".obj"); err != nil {
			os.Exit(1)
		}
	}
	if _, err := g.SafeWrite(out, prefix+"skeleton-", ".png"); err != nil {
		os.Exit(1)
	}
}

// loadSettings applies the command line over the settings file.
func loadSettings() (arbor.Settings, error) {
	s, err := arbor.SettingsOrDefault(*settingsFlag)
	if err != nil {
		return s, err
	}
	if *recipeFlag != "" {
		s.Recipe = *recipeFlag
	}
	if *styleFlag != "" {
		s.Tree.Style = *styleFlag
	}
	if *iterationsFlag >= 0 {
		s.Tree.Iterations = *iterationsFlag
		s.Plant.Iterations = *iterationsFlag
	}
	if *basicFlag {
		s.Tree.Stochastic = false
	}
	return s, s.Validate()
}
