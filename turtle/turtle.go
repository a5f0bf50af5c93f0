// Package turtle interprets a symbol stream as 2D drawing commands.
package turtle

import (
	"fmt"
	"image/color"
	"math"

	"github.com/scottkirkwood/arbor/internal/stack"
)

// ErrStackUnderflow is returned when a pop has no matching push.
var ErrStackUnderflow = stack.ErrUnderflow

// Point is a 2D position in canvas units, y pointing down.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Scale returns p*s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Canvas is the raster sink the turtle draws into. The core never reads
// pixels back.
type Canvas interface {
	Fill(col color.Color)
	DrawLine(p0, p1 Point, col color.Color)
}

// State is the cursor: position, heading in degrees and a free slot for
// recipe-specific data such as a length decay factor.
type State[P any] struct {
	Position Point
	Angle    float64
	Props    P
}

// Action is invoked for every occurrence of its symbol.
type Action[P any] func(t *Turtle[P], c Canvas) error

// Turtle walks a symbol string and calls the registered actions.
type Turtle[P any] struct {
	State   State[P]
	Actions map[rune]Action[P]

	stack stack.Stack[State[P]]
}

// New returns a turtle with an empty action table.
func New[P any]() *Turtle[P] {
	return &Turtle[P]{Actions: make(map[rune]Action[P])}
}

// Draw resets the cursor to start/angle and interprets symbols left to
// right. Symbols with no action are skipped. The first action error aborts
// the walk and is returned with the offending position.
func (t *Turtle[P]) Draw(c Canvas, symbols string, start Point, angle float64) error {
	t.stack.Clear()
	t.State.Position = start
	t.State.Angle = angle

	for i, sym := range symbols {
		action, ok := t.Actions[sym]
		if !ok || action == nil {
			continue
		}
		if err := action(t, c); err != nil {
			return fmt.Errorf("turtle: symbol %q at %d: %w", sym, i, err)
		}
	}
	return nil
}

// Depth returns the number of saved states.
func (t *Turtle[P]) Depth() int {
	return t.stack.Len()
}

// PushState saves the cursor.
func (t *Turtle[P]) PushState() {
	t.stack.Push(t.State)
}

// PopState restores the last saved cursor.
func (t *Turtle[P]) PopState() error {
	s, err := t.stack.Pop()
	if err != nil {
		return err
	}
	t.State = s
	return nil
}

// Direction is the unit heading vector. The angle is negated so that
// positive turns go counter-clockwise on a y-down canvas.
func (t *Turtle[P]) Direction() Point {
	rad := -t.State.Angle * math.Pi / 180
	return Point{math.Cos(rad), math.Sin(rad)}
}

// Rotate turns the heading by degrees.
func (t *Turtle[P]) Rotate(degrees float64) {
	t.State.Angle += degrees
}

// Forward moves dist along the heading and draws the segment.
func (t *Turtle[P]) Forward(c Canvas, dist float64, col color.Color) {
	next := t.State.Position.Add(t.Direction().Scale(dist))
	c.DrawLine(t.State.Position, next, col)
	t.State.Position = next
}

// ForwardAction draws a line of length dist.
func ForwardAction[P any](dist float64, col color.Color) Action[P] {
	return func(t *Turtle[P], c Canvas) error {
		t.Forward(c, dist, col)
		return nil
	}
}

// RotateAction turns by degrees.
func RotateAction[P any](degrees float64) Action[P] {
	return func(t *Turtle[P], _ Canvas) error {
		t.Rotate(degrees)
		return nil
	}
}

// PushAction saves the cursor, then turns by degrees (0 for a plain push).
func PushAction[P any](degrees float64) Action[P] {
	return func(t *Turtle[P], _ Canvas) error {
		t.PushState()
		t.Rotate(degrees)
		return nil
	}
}

// PopAction restores the cursor, then turns by degrees.
func PopAction[P any](degrees float64) Action[P] {
	return func(t *Turtle[P], _ Canvas) error {
		if err := t.PopState(); err != nil {
			return err
		}
		t.Rotate(degrees)
		return nil
	}
}
