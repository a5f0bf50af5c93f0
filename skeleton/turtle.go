package skeleton

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/internal/stack"
)

// ErrStackUnderflow is returned by PopState without a matching PushState.
var ErrStackUnderflow = stack.ErrUnderflow

// Action handles one run of identical symbols. repetitions is the run length.
type Action[P any] func(t *Turtle[P], repetitions int) error

// Turtle interprets a symbol string in 3D, laying down a bone for every
// forward move.
type Turtle[P any] struct {
	Transform Transform[P]
	Actions   map[rune]Action[P]
	Skeleton  Skeleton[P]

	transforms stack.Stack[Transform[P]]
	branches   stack.Stack[BoneID]
	active     BoneID
}

// NewTurtle returns a turtle with an empty action table.
func NewTurtle[P any]() *Turtle[P] {
	return &Turtle[P]{
		Actions: make(map[rune]Action[P]),
		active:  NoBone,
	}
}

// Clear drops the skeleton and both stacks.
func (t *Turtle[P]) Clear() {
	t.Skeleton.Reset()
	t.transforms.Clear()
	t.branches.Clear()
	t.active = NoBone
}

// GenerateSkeleton clears any previous skeleton and interprets symbols from
// start. Runs of the same symbol are dispatched once with their length, so
// "AAA" calls the 'A' action a single time with repetitions 3.
func (t *Turtle[P]) GenerateSkeleton(symbols string, start Transform[P]) error {
	t.Clear()
	t.Transform = start

	runes := []rune(symbols)
	for i := 0; i < len(runes); i++ {
		sym := runes[i]
		reps := 1
		for i+1 < len(runes) && runes[i+1] == sym {
			reps++
			i++
		}
		action, ok := t.Actions[sym]
		if !ok || action == nil {
			continue
		}
		if err := action(t, reps); err != nil {
			return fmt.Errorf("skeleton: run of %d %q ending at %d: %w", reps, sym, i, err)
		}
	}
	return nil
}

// ActiveBone is the bone new children attach to, or NoBone before the first move.
func (t *Turtle[P]) ActiveBone() BoneID {
	return t.active
}

// ActiveDepth is the NodeDepth of the active bone, 1 before the first move.
func (t *Turtle[P]) ActiveDepth() int {
	if t.active == NoBone {
		return 1
	}
	return t.Skeleton.Bone(t.active).NodeDepth
}

// BoneCount returns the number of bones laid so far.
func (t *Turtle[P]) BoneCount() int {
	return t.Skeleton.Len()
}

// PushState saves the transform and the active bone together.
func (t *Turtle[P]) PushState() {
	t.branches.Push(t.active)
	t.transforms.Push(t.Transform)
}

// PopState restores the last saved transform and active bone.
func (t *Turtle[P]) PopState() error {
	tr, err := t.transforms.Pop()
	if err != nil {
		return err
	}
	active, err := t.branches.Pop()
	if err != nil {
		return err
	}
	t.Transform = tr
	t.active = active
	return nil
}

// Rotate rolls Up around Forward, then pitches Forward and Up around
// Forward x Up. Both angles are in degrees; the roll goes first because
// the pitch axis depends on the rolled Up.
func (t *Turtle[P]) Rotate(rollDegrees, pitchDegrees float32) {
	if q, ok := axisAngle(t.Transform.Forward, rollDegrees); ok {
		t.Transform.Up = t.Transform.Up.MulQuat(q)
	}
	t.RotateAround(pitchDegrees, t.Transform.Forward.Cross(t.Transform.Up))
}

// RotateAround turns Forward and Up by degrees around axis. A zero axis
// leaves the frame alone.
func (t *Turtle[P]) RotateAround(degrees float32, axis math32.Vector3) {
	q, ok := axisAngle(axis, degrees)
	if !ok {
		return
	}
	t.Transform.Forward = t.Transform.Forward.MulQuat(q)
	t.Transform.Up = t.Transform.Up.MulQuat(q)
}

func axisAngle(axis math32.Vector3, degrees float32) (math32.Quat, bool) {
	l := axis.Length()
	if l < 1e-8 || math32.IsNaN(l) {
		return math32.Quat{}, false
	}
	return math32.NewQuatAxisAngle(axis.DivScalar(l), math32.DegToRad(degrees)), true
}

// MoveForward lays a bone of the given length from the current transform
// and advances the position along Forward.
func (t *Turtle[P]) MoveForward(distance float32) {
	t.pushBone(distance)
	t.Transform.Position = t.Transform.Position.Add(t.Transform.Forward.MulScalar(distance))
}

func (t *Turtle[P]) pushBone(length float32) {
	if t.active == NoBone {
		if t.Skeleton.Len() == 0 {
			t.active, _ = t.Skeleton.NewRoot()
		} else {
			// popped back above the root: hang the bone off the root
			t.active = t.Skeleton.NewChild(t.Skeleton.Root())
		}
	} else {
		t.active = t.Skeleton.NewChild(t.active)
	}
	b := t.Skeleton.Bone(t.active)
	b.Transform = t.Transform
	b.Length = length
}
