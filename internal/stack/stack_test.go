package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	require.Equal(t, 2, s.Len())

	top, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, top)

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	v, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestUnderflow(t *testing.T) {
	var s Stack[string]
	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrUnderflow)
	_, err = s.Peek()
	assert.ErrorIs(t, err, ErrUnderflow)
}

func TestClear(t *testing.T) {
	var s Stack[int]
	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrUnderflow)
}
