// Package fractals is a catalogue of L-system recipes. Each recipe is a
// grammar plus a turtle action table, built fresh for every call so that no
// state survives between drawings.
package fractals

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/scottkirkwood/arbor/lsystem"
	"github.com/scottkirkwood/arbor/turtle"
)

var (
	// ErrInvalidParams is returned for negative iterations, a non-positive
	// scale or subdivision count, or a missing random source.
	ErrInvalidParams = errors.New("fractals: invalid parameters")
	// ErrUnknownRecipe is returned by Lookup for a name not in the catalogue.
	ErrUnknownRecipe = errors.New("fractals: unknown recipe")
)

// Random is the slice of a generator the recipes draw from.
// *rng.Xorshift satisfies it.
type Random interface {
	Float32() float32
	Float32Range(min, max float32) float32
}

// Params place and size a 2D drawing.
type Params struct {
	Iterations int
	// Scale is the length of one forward step in canvas units.
	Scale      float64
	Origin     turtle.Point
	StartAngle float64
	// Color of the lines, black when nil.
	Color color.Color
}

// Validate rejects parameters no recipe can draw with.
func (p Params) Validate() error {
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d < 0", ErrInvalidParams, p.Iterations)
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidParams, p.Scale)
	}
	return nil
}

func (p Params) lineColor() color.Color {
	if p.Color == nil {
		return color.Black
	}
	return p.Color
}

// Props is the per-cursor state shared by the 2D recipes.
type Props struct {
	LengthFactor float64
}

// Recipe is one named 2D drawing.
type Recipe struct {
	Name string
	// Defaults are the parameters the gallery uses.
	Defaults Params
	// Stochastic recipes need a Random.
	Stochastic bool

	grammar func(rnd Random) lsystem.Producer
	actions func(p Params, rnd Random) map[rune]turtle.Action[Props]
}

// Symbols runs the recipe's grammar.
func (r Recipe) Symbols(iterations int, rnd Random) (string, error) {
	return r.grammar(rnd).RunProduction(iterations)
}

// Draw renders the recipe into c.
func (r Recipe) Draw(c turtle.Canvas, p Params, rnd Random) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", r.Name, err)
	}
	if r.Stochastic && rnd == nil {
		return fmt.Errorf("%s: %w: no random source", r.Name, ErrInvalidParams)
	}
	symbols, err := r.Symbols(p.Iterations, rnd)
	if err != nil {
		return fmt.Errorf("%s: %w", r.Name, err)
	}
	t := turtle.New[Props]()
	t.Actions = r.actions(p, rnd)
	t.State.Props = Props{LengthFactor: 1}
	if err := t.Draw(c, symbols, p.Origin, p.StartAngle); err != nil {
		return fmt.Errorf("%s: %w", r.Name, err)
	}
	return nil
}

// Lookup finds a recipe by name.
func Lookup(name string) (Recipe, error) {
	for _, r := range catalogue {
		if r.Name == name {
			return r, nil
		}
	}
	return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
}

// Names lists every recipe in catalogue order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, r := range catalogue {
		names[i] = r.Name
	}
	return names
}

// Draw looks up name and renders it with p.
func Draw(c turtle.Canvas, name string, p Params, rnd Random) error {
	r, err := Lookup(name)
	if err != nil {
		return err
	}
	return r.Draw(c, p, rnd)
}

// Placement is one entry of a gallery layout.
type Placement struct {
	Name   string
	Params Params
}

// Gallery lays out the 2D recipes on a w x h canvas, all on one sheet.
func Gallery(w, h float64) []Placement {
	at := func(name string, iterations int, scale, x, y, angle float64) Placement {
		return Placement{name, Params{Iterations: iterations, Scale: scale, Origin: turtle.Point{X: x, Y: y}, StartAngle: angle}}
	}
	return []Placement{
		at(FractalTree, 6, 3, w*0.3, h, 90),
		at(KochCurve, 4, 2, 0, h, 0),
		at(SierpinskiTriangle, 5, 8, w, 0, -90),
		at(DragonCurve, 11, 3.5, w*0.92, h*0.8, -90),
		at(FractalPlant, 6, 1.75, 0, h*0.3, 0),
		at(NezumiV2, 6, 25, w*0.55, h, 90),
		at(NezumiV3, 6, 25, w*0.55, h*0.35, 90),
		at(FractalLeaf, 6, 1, w*0.55, h*0.65, 90),
	}
}
