package fractals

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/lsystem"
	"github.com/scottkirkwood/arbor/skeleton"
)

// Names of the 3D recipes.
const (
	Tree3D  = "tree-3d"
	Plant3D = "plant-3d"
)

// TreeStyle picks the branching grammar of the 3D tree.
type TreeStyle int

const (
	// StyleDefault puts one segment between forks.
	StyleDefault TreeStyle = iota
	// StyleSlim puts two, giving a taller, sparser crown.
	StyleSlim
)

func (s TreeStyle) String() string {
	switch s {
	case StyleDefault:
		return "default"
	case StyleSlim:
		return "slim"
	}
	return fmt.Sprintf("TreeStyle(%d)", int(s))
}

// ParseTreeStyle is the inverse of String.
func ParseTreeStyle(s string) (TreeStyle, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return StyleDefault, nil
	case "slim":
		return StyleSlim, nil
	}
	return 0, fmt.Errorf("%w: tree style %q", ErrInvalidParams, s)
}

// TreeProps rides along with the 3D turtle transform.
type TreeProps struct {
	// LengthFactor scales every forward move; '%' shrinks it.
	LengthFactor float32
}

// Range is a closed interval for uniform draws.
type Range struct {
	Min float32 `toml:"min"`
	Max float32 `toml:"max"`
}

func (r Range) draw(rnd Random) float32 {
	return rnd.Float32Range(r.Min, r.Max)
}

// Tuning holds the hand-tuned constants of the tree grammar's actions.
type Tuning struct {
	// LengthDecay multiplies LengthFactor on every '%'.
	LengthDecay float32 `toml:"length_decay"`
	// BranchRoll is the roll per '+' in a run, in degrees.
	BranchRoll float32 `toml:"branch_roll"`
	// RollOffset is added to the roll once per node depth.
	RollOffset float32 `toml:"roll_offset"`
	Pitch      float32 `toml:"pitch"`
	// Droop bends new branches towards the ground by
	// Droop*iterations/depth degrees.
	Droop float32 `toml:"droop"`

	// Stochastic mode only.
	RollJitter  Range `toml:"roll_jitter"`
	PitchJitter Range `toml:"pitch_jitter"`
	MoveLength  Range `toml:"move_length"`
	MoveRoll    Range `toml:"move_roll"`
	MovePitch   Range `toml:"move_pitch"`
}

// DefaultTuning returns the stock values. RollJitter is the zero-width
// range [-30, -30], a constant -30 degree offset.
func DefaultTuning() Tuning {
	return Tuning{
		LengthDecay: 0.87,
		BranchRoll:  120,
		RollOffset:  45,
		Pitch:       25,
		Droop:       3,
		RollJitter:  Range{-30, -30},
		PitchJitter: Range{-5, 10},
		MoveLength:  Range{1, 1.5},
		MoveRoll:    Range{0, 45},
		MovePitch:   Range{-15, 15},
	}
}

// TreeParams configure GenerateTree3D.
type TreeParams struct {
	Style        TreeStyle
	Iterations   int
	Subdivisions int
	Stochastic   bool
	Tuning       Tuning
}

// DefaultTreeParams is a five iteration stochastic tree with three bones
// per segment.
func DefaultTreeParams() TreeParams {
	return TreeParams{
		Iterations:   5,
		Subdivisions: 3,
		Stochastic:   true,
		Tuning:       DefaultTuning(),
	}
}

// Validate rejects negative iterations and fewer than one subdivision.
func (p TreeParams) Validate() error {
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d < 0", ErrInvalidParams, p.Iterations)
	}
	if p.Subdivisions < 1 {
		return fmt.Errorf("%w: subdivisions %d < 1", ErrInvalidParams, p.Subdivisions)
	}
	if p.Style != StyleDefault && p.Style != StyleSlim {
		return fmt.Errorf("%w: %v", ErrInvalidParams, p.Style)
	}
	return nil
}

// Grown is a skeleton split into branches.
type Grown struct {
	Skeleton *skeleton.Skeleton[TreeProps]
	Branches []skeleton.Branch
}

// TreeGrammar is the branching grammar for style.
func TreeGrammar(style TreeStyle) lsystem.Grammar {
	fork := "A[%+B][%++B][%+++B]%B"
	if style == StyleSlim {
		fork = "A" + fork
	}
	return lsystem.Grammar{
		Axiom: "B",
		Rules: map[rune]string{'B': "AAC", 'C': fork},
	}
}

// GenerateTree3D grows a tree. The grammar runs for twice p.Iterations.
// rnd may be nil unless p.Stochastic is set.
func GenerateTree3D(p TreeParams, rnd Random) (Grown, error) {
	if err := p.Validate(); err != nil {
		return Grown{}, err
	}
	if p.Stochastic && rnd == nil {
		return Grown{}, fmt.Errorf("%w: stochastic tree without a random source", ErrInvalidParams)
	}
	iterations := p.Iterations * 2
	symbols, err := TreeGrammar(p.Style).RunProduction(iterations)
	if err != nil {
		return Grown{}, err
	}

	t := skeleton.NewTurtle[TreeProps]()
	tu := p.Tuning
	subdivisions := p.Subdivisions
	step := 1 / float32(subdivisions)

	move := func(t *skeleton.Turtle[TreeProps], reps int) error {
		length := step * float32(reps) * t.Transform.Props.LengthFactor
		for d := 0; d < subdivisions; d++ {
			t.MoveForward(length)
		}
		return nil
	}
	if p.Stochastic {
		move = func(t *skeleton.Turtle[TreeProps], reps int) error {
			length := step * float32(reps) * tu.MoveLength.draw(rnd) * t.Transform.Props.LengthFactor
			roll := step * tu.MoveRoll.draw(rnd)
			pitch := step * tu.MovePitch.draw(rnd)
			for d := 0; d < subdivisions; d++ {
				t.Rotate(roll, pitch)
				t.MoveForward(length)
			}
			return nil
		}
	}

	t.Actions['A'] = move
	t.Actions['C'] = move
	t.Actions['%'] = func(t *skeleton.Turtle[TreeProps], reps int) error {
		for i := 0; i < reps; i++ {
			t.Transform.Props.LengthFactor *= tu.LengthDecay
		}
		return nil
	}
	t.Actions['['] = pushAction[TreeProps]
	t.Actions[']'] = popAction[TreeProps]
	t.Actions['+'] = func(t *skeleton.Turtle[TreeProps], reps int) error {
		depth := float32(t.ActiveDepth())
		roll := tu.BranchRoll*float32(reps) + tu.RollOffset*depth
		pitch := tu.Pitch
		if p.Stochastic {
			roll += tu.RollJitter.draw(rnd)
			pitch += tu.PitchJitter.draw(rnd)
		}
		t.Rotate(roll, pitch)

		// weigh the branch down, more for long trees and less far out
		axis := math32.Vec3(0, 1, 0).Cross(t.Transform.Forward)
		t.RotateAround(tu.Droop*float32(iterations)/depth, axis)
		return nil
	}

	if err := t.GenerateSkeleton(symbols, skeleton.NewTransform(TreeProps{LengthFactor: 1.1})); err != nil {
		return Grown{}, err
	}
	return Grown{Skeleton: &t.Skeleton, Branches: skeleton.ExtractBranches(&t.Skeleton)}, nil
}

// GeneratePlant3D grows a bushy plant where every '0' forks into two or
// three shoots with even odds. scale is the mean bone length; 0.1 suits a
// unit-sized scene.
func GeneratePlant3D(iterations int, scale float32, rnd Random) (Grown, error) {
	if iterations < 0 {
		return Grown{}, fmt.Errorf("%w: iterations %d < 0", ErrInvalidParams, iterations)
	}
	if !(scale > 0) {
		return Grown{}, fmt.Errorf("%w: scale %v must be positive", ErrInvalidParams, scale)
	}
	if rnd == nil {
		return Grown{}, fmt.Errorf("%w: plant without a random source", ErrInvalidParams)
	}
	grammar := lsystem.FuncGrammar{
		Axiom: "0",
		Rules: map[rune]lsystem.Rule{
			'0': func() string {
				if rnd.Float32() < 0.5 {
					return "1[0][0]0"
				}
				return "1[0]0"
			},
			'1': lsystem.Fixed("11"),
		},
	}
	symbols, err := grammar.RunProduction(iterations)
	if err != nil {
		return Grown{}, err
	}

	t := skeleton.NewTurtle[TreeProps]()
	grow := func(t *skeleton.Turtle[TreeProps], reps int) error {
		var growth float32
		for i := 0; i < reps; i++ {
			growth += rnd.Float32()
		}
		t.MoveForward(growth * scale)
		return nil
	}
	t.Actions['0'] = grow
	t.Actions['1'] = grow
	t.Actions['['] = func(t *skeleton.Turtle[TreeProps], reps int) error {
		for i := 0; i < reps; i++ {
			t.PushState()
			t.Rotate(180*rnd.Float32Range(0.1, 1), 45*rnd.Float32Range(0.2, 1))
		}
		return nil
	}
	t.Actions[']'] = func(t *skeleton.Turtle[TreeProps], reps int) error {
		for i := 0; i < reps; i++ {
			if err := t.PopState(); err != nil {
				return err
			}
			t.Rotate(-180*rnd.Float32Range(0.1, 1), 45*rnd.Float32Range(0.2, 1))
		}
		return nil
	}

	if err := t.GenerateSkeleton(symbols, skeleton.NewTransform(TreeProps{LengthFactor: 1})); err != nil {
		return Grown{}, err
	}
	return Grown{Skeleton: &t.Skeleton, Branches: skeleton.ExtractBranches(&t.Skeleton)}, nil
}

func pushAction[P any](t *skeleton.Turtle[P], reps int) error {
	for i := 0; i < reps; i++ {
		t.PushState()
	}
	return nil
}

func popAction[P any](t *skeleton.Turtle[P], reps int) error {
	for i := 0; i < reps; i++ {
		if err := t.PopState(); err != nil {
			return err
		}
	}
	return nil
}
