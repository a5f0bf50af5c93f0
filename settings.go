package arbor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/scottkirkwood/arbor/fractals"
	"github.com/scottkirkwood/arbor/session"
	"github.com/scottkirkwood/arbor/tree"
)

// ErrSettings is returned for a settings file that parses but makes no
// sense.
var ErrSettings = errors.New("invalid settings")

// Settings are what a TOML settings file may override. Missing keys keep
// their DefaultSettings value; unknown keys are an error.
type Settings struct {
	// Seed is a hex seed; empty picks one from the clock.
	Seed      string `toml:"seed"`
	OutputDir string `toml:"output_dir"`
	// Recipe is fractals.Tree3D or fractals.Plant3D.
	Recipe  string        `toml:"recipe"`
	Tree    TreeSettings  `toml:"tree"`
	Plant   PlantSettings `toml:"plant"`
	Leaves  LeafSettings  `toml:"leaves"`
	Gallery []string      `toml:"gallery"`
}

type TreeSettings struct {
	Style        string          `toml:"style"`
	Iterations   int             `toml:"iterations"`
	Subdivisions int             `toml:"subdivisions"`
	Stochastic   bool            `toml:"stochastic"`
	Tuning       fractals.Tuning `toml:"tuning"`
}

type PlantSettings struct {
	Iterations int     `toml:"iterations"`
	Scale      float32 `toml:"scale"`
}

// LeafSettings colours are "#rrggbb" hex strings.
type LeafSettings struct {
	MinScale  float32 `toml:"min_scale"`
	MaxScale  float32 `toml:"max_scale"`
	BarkColor string  `toml:"bark_color"`
	Color     string  `toml:"color"`
	AltColor  string  `toml:"alt_color"`
}

// DefaultSettings matches the defaults of fractals and tree.
func DefaultSettings() Settings {
	p := fractals.DefaultTreeParams()
	o := tree.DefaultOptions()
	return Settings{
		OutputDir: "out",
		Recipe:    fractals.Tree3D,
		Tree: TreeSettings{
			Style:        p.Style.String(),
			Iterations:   p.Iterations,
			Subdivisions: p.Subdivisions,
			Stochastic:   p.Stochastic,
			Tuning:       p.Tuning,
		},
		Plant: PlantSettings{Iterations: 6, Scale: 0.1},
		Leaves: LeafSettings{
			MinScale:  o.LeafMinScale,
			MaxScale:  o.LeafMaxScale,
			BarkColor: o.BarkColor.Hex(),
			Color:     o.LeafColor.Hex(),
			AltColor:  o.LeafAltColor.Hex(),
		},
		Gallery: fractals.Names(),
	}
}

// LoadSettings reads path over the defaults and validates the result.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()
	s, err := ReadSettings(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SettingsOrDefault loads path, or returns the defaults when path is empty.
func SettingsOrDefault(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	return LoadSettings(path)
}

// InitSeed picks the seed: flagSeed wins over the settings file, and with
// neither the clock decides.
func (s Settings) InitSeed(flagSeed string) (Seed, error) {
	if flagSeed == "" {
		flagSeed = s.Seed
	}
	return Init(flagSeed)
}

// ReadSettings is LoadSettings for an open reader.
func ReadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks everything a generation would reject, so that a bad
// file is caught before any work starts.
func (s Settings) Validate() error {
	if s.Seed != "" {
		var seed Seed
		if err := seed.SetSeed(s.Seed); err != nil {
			return fmt.Errorf("%w: %v", ErrSettings, err)
		}
	}
	switch s.Recipe {
	case fractals.Tree3D:
		p, err := s.TreeParams()
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
	case fractals.Plant3D:
		if s.Plant.Iterations < 0 || !(s.Plant.Scale > 0) {
			return fmt.Errorf("%w: plant iterations %d, scale %v", ErrSettings, s.Plant.Iterations, s.Plant.Scale)
		}
	default:
		return fmt.Errorf("%w: recipe %q", ErrSettings, s.Recipe)
	}
	o, err := s.TreeOptions()
	if err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	for _, name := range s.Gallery {
		if _, err := fractals.Lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// TreeParams converts the [tree] table.
func (s Settings) TreeParams() (fractals.TreeParams, error) {
	style, err := fractals.ParseTreeStyle(s.Tree.Style)
	if err != nil {
		return fractals.TreeParams{}, err
	}
	return fractals.TreeParams{
		Style:        style,
		Iterations:   s.Tree.Iterations,
		Subdivisions: s.Tree.Subdivisions,
		Stochastic:   s.Tree.Stochastic,
		Tuning:       s.Tree.Tuning,
	}, nil
}

// TreeOptions converts the [leaves] table.
func (s Settings) TreeOptions() (tree.Options, error) {
	o := tree.Options{
		LeafMinScale: s.Leaves.MinScale,
		LeafMaxScale: s.Leaves.MaxScale,
	}
	for _, c := range []struct {
		hex string
		dst *colorful.Color
	}{
		{s.Leaves.BarkColor, &o.BarkColor},
		{s.Leaves.Color, &o.LeafColor},
		{s.Leaves.AltColor, &o.LeafAltColor},
	} {
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return tree.Options{}, fmt.Errorf("%w: colour %q: %v", ErrSettings, c.hex, err)
		}
		*c.dst = col
	}
	return o, nil
}

// Request builds the generation request the settings describe.
func (s Settings) Request() (session.Request, error) {
	p, err := s.TreeParams()
	if err != nil {
		return session.Request{}, err
	}
	o, err := s.TreeOptions()
	if err != nil {
		return session.Request{}, err
	}
	return session.Request{
		Recipe:          s.Recipe,
		Tree:            p,
		Options:         o,
		PlantIterations: s.Plant.Iterations,
		PlantScale:      s.Plant.Scale,
	}, nil
}
