// Package skeleton builds bone hierarchies with a 3D turtle and groups
// them into unbranching chains.
//
// Bones live in an arena owned by a Skeleton and refer to each other by
// BoneID, so a whole tree is dropped in one Reset.
package skeleton

import (
	"fmt"
	"io"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/scottkirkwood/arbor/mesh"
)

// BoneID indexes a bone in its Skeleton. NoBone marks a missing link.
type BoneID int32

// NoBone is the nil BoneID.
const NoBone BoneID = -1

// Transform is the turtle's oriented frame. Forward and Up are expected to
// stay roughly orthonormal; nothing re-orthonormalises them.
type Transform[P any] struct {
	Position math32.Vector3
	Forward  math32.Vector3
	Up       math32.Vector3
	Props    P
}

// NewTransform returns a frame at the origin heading +Y with +Z up.
func NewTransform[P any](props P) Transform[P] {
	return Transform[P]{
		Forward: math32.Vec3(0, 1, 0),
		Up:      math32.Vec3(0, 0, 1),
		Props:   props,
	}
}

// Bone is one segment. Parent and sibling links are plain indices.
type Bone[P any] struct {
	Transform Transform[P]
	Length    float32
	// NodeDepth is the distance from the root; the root is 1.
	NodeDepth int

	Parent      BoneID
	FirstChild  BoneID
	LastChild   BoneID
	PrevSibling BoneID
	NextSibling BoneID
}

// TipPosition is where the bone ends.
func (b *Bone[P]) TipPosition() math32.Vector3 {
	return b.Transform.Position.Add(b.Transform.Forward.MulScalar(b.Length))
}

// Skeleton owns every bone of one generated tree.
type Skeleton[P any] struct {
	bones []Bone[P]
}

// Len returns the bone count.
func (s *Skeleton[P]) Len() int {
	return len(s.bones)
}

// Root returns the first bone, or NoBone for an empty skeleton.
func (s *Skeleton[P]) Root() BoneID {
	if len(s.bones) == 0 {
		return NoBone
	}
	return 0
}

// Bone returns the bone for id. The pointer is invalidated by the next
// NewRoot or NewChild.
func (s *Skeleton[P]) Bone(id BoneID) *Bone[P] {
	return &s.bones[id]
}

// Reset drops every bone.
func (s *Skeleton[P]) Reset() {
	s.bones = s.bones[:0]
}

func (s *Skeleton[P]) alloc(b Bone[P]) BoneID {
	s.bones = append(s.bones, b)
	return BoneID(len(s.bones) - 1)
}

// NewRoot starts the tree. It fails if a root already exists.
func (s *Skeleton[P]) NewRoot() (BoneID, error) {
	if len(s.bones) != 0 {
		return NoBone, fmt.Errorf("skeleton: root already set")
	}
	return s.alloc(Bone[P]{
		NodeDepth:   1,
		Parent:      NoBone,
		FirstChild:  NoBone,
		LastChild:   NoBone,
		PrevSibling: NoBone,
		NextSibling: NoBone,
	}), nil
}

// NewChild appends a child to parent. The child starts at the parent's tip
// one level deeper, and becomes the parent's LastChild.
func (s *Skeleton[P]) NewChild(parent BoneID) BoneID {
	p := s.bones[parent]
	child := s.alloc(Bone[P]{
		Transform:   Transform[P]{Position: p.TipPosition()},
		NodeDepth:   p.NodeDepth + 1,
		Parent:      parent,
		FirstChild:  NoBone,
		LastChild:   NoBone,
		PrevSibling: p.LastChild,
		NextSibling: NoBone,
	})
	pp := &s.bones[parent]
	if pp.FirstChild == NoBone {
		pp.FirstChild = child
	} else {
		s.bones[pp.LastChild].NextSibling = child
	}
	pp.LastChild = child
	return child
}

// ForEach visits bones depth first: a bone, then its children in order.
func (s *Skeleton[P]) ForEach(fn func(id BoneID, b *Bone[P])) {
	if len(s.bones) == 0 {
		return
	}
	todo := []BoneID{s.Root()}
	for len(todo) > 0 {
		id := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		b := &s.bones[id]
		fn(id, b)
		if b.NextSibling != NoBone {
			todo = append(todo, b.NextSibling)
		}
		if b.FirstChild != NoBone {
			todo = append(todo, b.FirstChild)
		}
	}
}

// Dump writes one line per bone, indented by depth, showing its NodeDepth.
func (s *Skeleton[P]) Dump(w io.Writer) error {
	var err error
	s.ForEach(func(_ BoneID, b *Bone[P]) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%s%d\n", strings.Repeat("  ", b.NodeDepth-1), b.NodeDepth)
	})
	return err
}

// BoneLines adds every bone to lines: start to tip in boneColor and a short
// Up marker in normalColor.
func (s *Skeleton[P]) BoneLines(lines *mesh.Lines, boneColor, normalColor math32.Vector4) {
	s.ForEach(func(_ BoneID, b *Bone[P]) {
		lines.AddLine(b.Transform.Position, b.TipPosition(), boneColor)
		lines.AddLine(b.Transform.Position, b.Transform.Position.Add(b.Transform.Up.MulScalar(0.2)), normalColor)
	})
}
