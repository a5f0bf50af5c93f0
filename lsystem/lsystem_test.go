package lsystem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeGrammar() Grammar {
	return Grammar{
		Axiom: "0",
		Rules: map[rune]string{'0': "1[0]0", '1': "11"},
	}
}

func TestRunProduction(t *testing.T) {
	tests := []struct {
		iterations int
		want       string
	}{
		{0, "0"},
		{1, "1[0]0"},
		{2, "11[1[0]0]1[0]0"},
	}
	g := treeGrammar()
	for _, tt := range tests {
		got, err := g.RunProduction(tt.iterations)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "iterations=%d", tt.iterations)
	}
}

func TestNegativeIterations(t *testing.T) {
	_, err := treeGrammar().RunProduction(-1)
	assert.ErrorIs(t, err, ErrNegativeIterations)

	_, err = FuncGrammar{Axiom: "x"}.RunProduction(-3)
	assert.ErrorIs(t, err, ErrNegativeIterations)
}

func TestIdentitySymbolsPassThrough(t *testing.T) {
	g := Grammar{Axiom: "+-[]", Rules: map[rune]string{'F': "FF"}}
	for i := 0; i < 5; i++ {
		got, err := g.RunProduction(i)
		require.NoError(t, err)
		assert.Equal(t, "+-[]", got)
	}
}

func TestLengthNonDecreasing(t *testing.T) {
	g := Grammar{
		Axiom: "FX",
		Rules: map[rune]string{'X': "X+YF+", 'Y': "-FX-Y"},
	}
	prev := 0
	for i := 0; i < 8; i++ {
		got, err := g.RunProduction(i)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(got), prev)
		prev = len(got)
	}
}

func TestFuncGrammarCallsRulePerOccurrence(t *testing.T) {
	calls := 0
	g := FuncGrammar{
		Axiom: "aaa",
		Rules: map[rune]Rule{
			'a': func() string {
				calls++
				if calls%2 == 0 {
					return "b"
				}
				return "c"
			},
		},
	}
	got, err := g.RunProduction(1)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "cbc", got)
}

func TestFuncGrammarMatchesFixed(t *testing.T) {
	fixed := treeGrammar()
	fn := FuncGrammar{
		Axiom: "0",
		Rules: map[rune]Rule{'0': Fixed("1[0]0"), '1': Fixed("11"), 'z': nil},
	}
	for i := 0; i < 4; i++ {
		a, err := fixed.RunProduction(i)
		require.NoError(t, err)
		b, err := fn.RunProduction(i)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestEmptyProduction(t *testing.T) {
	g := Grammar{Axiom: "ab", Rules: map[rune]string{'a': "", 'b': ""}}
	got, err := g.RunProduction(1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{
		"f→ ff",
		"x→ x[-x]f+[[x]-x]-f[-fx]+x",
		"e=",
	})
	require.NoError(t, err)
	assert.Equal(t, "ff", rules['f'])
	assert.True(t, strings.HasPrefix(rules['x'], "x[-x]"))
	v, ok := rules['e']
	assert.True(t, ok)
	assert.Empty(t, v)

	for _, bad := range []string{"ff", "ab→c", "→c"} {
		_, err := ParseRules([]string{bad})
		assert.ErrorIs(t, err, ErrBadRule, bad)
	}
}
