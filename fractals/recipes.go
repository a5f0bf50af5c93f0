package fractals

import (
	"fmt"

	"github.com/scottkirkwood/arbor/lsystem"
	"github.com/scottkirkwood/arbor/turtle"
)

// Recipe names.
const (
	FractalTree        = "fractal-tree"
	KochCurve          = "koch-curve"
	SierpinskiTriangle = "sierpinski-triangle"
	DragonCurve        = "dragon-curve"
	FractalPlant       = "fractal-plant"
	NezumiV1           = "nezumi-v1"
	NezumiV2           = "nezumi-v2"
	NezumiV3           = "nezumi-v3"
	FractalLeaf        = "fractal-leaf"
)

type actionTable = map[rune]turtle.Action[Props]

func fixed(axiom string, rules map[rune]string) func(Random) lsystem.Producer {
	return func(Random) lsystem.Producer {
		return lsystem.Grammar{Axiom: axiom, Rules: rules}
	}
}

var catalogue = []Recipe{
	{
		Name:     FractalTree,
		Defaults: Params{Iterations: 6, Scale: 3, StartAngle: 90},
		grammar:  fixed("0", map[rune]string{'0': "1[0]0", '1': "11"}),
		actions: func(p Params, _ Random) actionTable {
			fwd := turtle.ForwardAction[Props](p.Scale, p.lineColor())
			return actionTable{
				'0': fwd,
				'1': fwd,
				'[': turtle.PushAction[Props](45),
				']': turtle.PopAction[Props](-45),
			}
		},
	},
	{
		Name:     KochCurve,
		Defaults: Params{Iterations: 4, Scale: 2},
		grammar:  fixed("F", map[rune]string{'F': "F+F-F-F+F"}),
		actions: func(p Params, _ Random) actionTable {
			return actionTable{
				'F': turtle.ForwardAction[Props](p.Scale, p.lineColor()),
				'+': turtle.RotateAction[Props](90),
				'-': turtle.RotateAction[Props](-90),
			}
		},
	},
	{
		Name:     SierpinskiTriangle,
		Defaults: Params{Iterations: 5, Scale: 8, StartAngle: -90},
		grammar:  fixed("F-G-G", map[rune]string{'F': "F-G+F+G-F", 'G': "GG"}),
		actions: func(p Params, _ Random) actionTable {
			fwd := turtle.ForwardAction[Props](p.Scale, p.lineColor())
			return actionTable{
				'F': fwd,
				'G': fwd,
				'+': turtle.RotateAction[Props](120),
				'-': turtle.RotateAction[Props](-120),
			}
		},
	},
	{
		Name:     DragonCurve,
		Defaults: Params{Iterations: 11, Scale: 3.5, StartAngle: -90},
		grammar:  fixed("FX", map[rune]string{'X': "X+YF+", 'Y': "-FX-Y"}),
		actions: func(p Params, _ Random) actionTable {
			return actionTable{
				'F': turtle.ForwardAction[Props](p.Scale, p.lineColor()),
				'+': turtle.RotateAction[Props](-90),
				'-': turtle.RotateAction[Props](90),
			}
		},
	},
	{
		Name:     FractalPlant,
		Defaults: Params{Iterations: 6, Scale: 1.75},
		grammar:  fixed("X", map[rune]string{'X': "F+[[X]-X]-F[-FX]+X", 'F': "FF"}),
		actions: func(p Params, _ Random) actionTable {
			return actionTable{
				'F': turtle.ForwardAction[Props](p.Scale, p.lineColor()),
				'+': turtle.RotateAction[Props](-25),
				'-': turtle.RotateAction[Props](25),
				'[': turtle.PushAction[Props](0),
				']': turtle.PopAction[Props](0),
			}
		},
	},
	{
		Name:     NezumiV1,
		Defaults: Params{Iterations: 6, Scale: 25, StartAngle: 90},
		grammar:  fixed("[B]", map[rune]string{'B': "A[-B][+B]"}),
		actions: func(p Params, _ Random) actionTable {
			return actionTable{
				'A': turtle.ForwardAction[Props](p.Scale, p.lineColor()),
				'-': turtle.RotateAction[Props](-20),
				'+': turtle.RotateAction[Props](20),
				'[': turtle.PushAction[Props](0),
				']': turtle.PopAction[Props](0),
			}
		},
	},
	{
		Name:     NezumiV2,
		Defaults: Params{Iterations: 6, Scale: 25, StartAngle: 90},
		grammar:  fixed("[B]", map[rune]string{'B': "A[!%-B][!%+B]!%AB"}),
		actions: func(p Params, _ Random) actionTable {
			col := p.lineColor()
			return actionTable{
				'A': func(t *turtle.Turtle[Props], c turtle.Canvas) error {
					t.Forward(c, p.Scale*t.State.Props.LengthFactor, col)
					return nil
				},
				'%': func(t *turtle.Turtle[Props], _ turtle.Canvas) error {
					t.State.Props.LengthFactor /= 1.3
					return nil
				},
				'-': turtle.RotateAction[Props](-20),
				'+': turtle.RotateAction[Props](20),
				'[': turtle.PushAction[Props](0),
				']': turtle.PopAction[Props](0),
			}
		},
	},
	{
		Name:       NezumiV3,
		Defaults:   Params{Iterations: 6, Scale: 25, StartAngle: 90},
		Stochastic: true,
		grammar:    fixed("[B]", map[rune]string{'B': "A[!%-B][!%+B]!%AB"}),
		actions:    nezumiV3Actions,
	},
	{
		Name:     FractalLeaf,
		Defaults: Params{Iterations: 6, Scale: 1, StartAngle: 90},
		grammar:  leafGrammar,
		actions: func(p Params, _ Random) actionTable {
			var tips []turtle.Point
			return leafActions(p, &tips)
		},
	},
}

// nezumiV3Actions jitters lengths and angles, and drops a fifth of the
// branches: a skipped branch ignores everything up to its closing bracket.
func nezumiV3Actions(p Params, rnd Random) actionTable {
	col := p.lineColor()
	skip := false
	turn := func(degrees float64) turtle.Action[Props] {
		return func(t *turtle.Turtle[Props], _ turtle.Canvas) error {
			if !skip {
				t.Rotate(degrees + float64(rnd.Float32Range(-5, 5)))
			}
			return nil
		}
	}
	return actionTable{
		'A': func(t *turtle.Turtle[Props], c turtle.Canvas) error {
			if skip {
				return nil
			}
			jitter := 1 + float64(rnd.Float32Range(0, 0.15))
			t.Forward(c, p.Scale*t.State.Props.LengthFactor*jitter, col)
			return nil
		},
		'%': func(t *turtle.Turtle[Props], _ turtle.Canvas) error {
			if !skip {
				t.State.Props.LengthFactor /= 1.6
			}
			return nil
		},
		'-': turn(-20),
		'+': turn(20),
		'[': func(t *turtle.Turtle[Props], _ turtle.Canvas) error {
			skip = rnd.Float32() > 0.8
			t.PushState()
			return nil
		},
		']': func(t *turtle.Turtle[Props], _ turtle.Canvas) error {
			skip = false
			return t.PopState()
		},
	}
}

func leafGrammar(Random) lsystem.Producer {
	return lsystem.Grammar{
		Axiom: "0",
		Rules: map[rune]string{
			'0': "1[-0][+0]1e",
			'1': "11",
			'e': "1[-0][+0]1e",
		},
	}
}

// leafActions records the cursor at every 'e' into tips, which starts out
// holding the origin.
func leafActions(p Params, tips *[]turtle.Point) actionTable {
	fwd := turtle.ForwardAction[Props](p.Scale, p.lineColor())
	*tips = append(*tips, p.Origin)
	return actionTable{
		'0': fwd,
		'1': fwd,
		'e': func(t *turtle.Turtle[Props], _ turtle.Canvas) error {
			*tips = append(*tips, t.State.Position)
			return nil
		},
		'[': turtle.PushAction[Props](0),
		']': turtle.PopAction[Props](0),
		'+': turtle.RotateAction[Props](45),
		'-': turtle.RotateAction[Props](-45),
	}
}

// DrawFractalLeaf draws the leaf skeleton and returns the convex hull of
// its origin and branch ends, in canvas coordinates.
func DrawFractalLeaf(c turtle.Canvas, p Params) ([]turtle.Point, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", FractalLeaf, err)
	}
	symbols, err := leafGrammar(nil).RunProduction(p.Iterations)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FractalLeaf, err)
	}
	var tips []turtle.Point
	t := turtle.New[Props]()
	t.Actions = leafActions(p, &tips)
	if err := t.Draw(c, symbols, p.Origin, p.StartAngle); err != nil {
		return nil, fmt.Errorf("%s: %w", FractalLeaf, err)
	}
	return turtle.ConvexHull(tips), nil
}
