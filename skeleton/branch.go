package skeleton

// Branch is an unbranching chain of bones: a start bone followed by its
// LastChild, that bone's LastChild, and so on. Depth counts fork
// generations; the trunk is 1.
type Branch struct {
	Depth int
	Nodes []BoneID
}

// IsLeaf reports whether the branch is a single-bone twig.
func (b *Branch) IsLeaf() bool {
	return len(b.Nodes) == 1
}

// ExtractBranches splits the skeleton into branches. The trunk starts at
// the root; every earlier sibling of a bone on a branch starts a new branch
// one level deeper. Branches come out in discovery order, which says
// nothing about where they are in space.
func ExtractBranches[P any](s *Skeleton[P]) []Branch {
	root := s.Root()
	if root == NoBone {
		return nil
	}
	branches := []Branch{{Depth: 1, Nodes: []BoneID{root}}}

	for active := 0; active < len(branches); active++ {
		first := branches[active].Nodes[0]
		depth := branches[active].Depth

		var forks []BoneID
		for c := s.Bone(first).LastChild; c != NoBone; c = s.Bone(c).LastChild {
			branches[active].Nodes = append(branches[active].Nodes, c)
			forks = append(forks, c)
		}

		for _, p := range forks {
			for sib := s.Bone(p).PrevSibling; sib != NoBone; sib = s.Bone(sib).PrevSibling {
				branches = append(branches, Branch{Depth: depth + 1, Nodes: []BoneID{sib}})
			}
		}
	}
	return branches
}

// MaxDepth returns the deepest branch Depth, 0 for no branches.
func MaxDepth(branches []Branch) int {
	max := 0
	for i := range branches {
		if branches[i].Depth > max {
			max = branches[i].Depth
		}
	}
	return max
}
