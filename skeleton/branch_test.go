package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeTotal(branches []Branch) int {
	n := 0
	for _, b := range branches {
		n += len(b.Nodes)
	}
	return n
}

func TestExtractBranchesEmpty(t *testing.T) {
	var s Skeleton[props]
	assert.Nil(t, ExtractBranches(&s))
	assert.Equal(t, 0, MaxDepth(nil))
}

func TestExtractBranchesSingleBone(t *testing.T) {
	tt, _ := basicTurtle()
	require.NoError(t, tt.GenerateSkeleton("A", NewTransform(props{})))
	branches := ExtractBranches(&tt.Skeleton)
	require.Len(t, branches, 1)
	assert.Equal(t, 1, branches[0].Depth)
	assert.True(t, branches[0].IsLeaf())
}

func TestExtractBranchesRootWithTwoChildren(t *testing.T) {
	var s Skeleton[props]
	root, err := s.NewRoot()
	require.NoError(t, err)
	first := s.NewChild(root)
	second := s.NewChild(root)

	branches := ExtractBranches(&s)
	require.Len(t, branches, 2)
	// the last child continues the trunk, the earlier one forks off
	assert.Equal(t, Branch{Depth: 1, Nodes: []BoneID{root, second}}, branches[0])
	assert.Equal(t, Branch{Depth: 2, Nodes: []BoneID{first}}, branches[1])
	assert.Equal(t, 2, MaxDepth(branches))
}

func TestExtractBranchesCoversEveryBone(t *testing.T) {
	tests := []struct {
		symbols  string
		branches int
		depth    int
	}{
		{"A+A+A", 1, 1},
		{"A[+A]A", 2, 2},
		{"A[+A][+A]A", 3, 2},
		{"A[+A[+A]A]A", 3, 3},
		{"A[+A[+A][+A]A]A[+A]A", 5, 3},
	}
	for _, test := range tests {
		tt, _ := basicTurtle()
		require.NoError(t, tt.GenerateSkeleton(test.symbols, NewTransform(props{})))
		branches := ExtractBranches(&tt.Skeleton)
		assert.Len(t, branches, test.branches, test.symbols)
		assert.Equal(t, test.depth, MaxDepth(branches), test.symbols)
		assert.Equal(t, tt.BoneCount(), nodeTotal(branches), test.symbols)

		seen := map[BoneID]bool{}
		for _, b := range branches {
			for _, id := range b.Nodes {
				assert.False(t, seen[id], "bone %d in two branches", id)
				seen[id] = true
			}
		}
	}
}

func TestBranchNodesAreChained(t *testing.T) {
	tt, _ := basicTurtle()
	require.NoError(t, tt.GenerateSkeleton("A[+A[+A]A]A[+A]A", NewTransform(props{})))
	for _, b := range ExtractBranches(&tt.Skeleton) {
		for i := 1; i < len(b.Nodes); i++ {
			assert.Equal(t, b.Nodes[i-1], tt.Skeleton.Bone(b.Nodes[i]).Parent)
		}
	}
}
