// Package lsystem rewrites a symbol string with per-symbol production rules.
//
// Symbols without a rule are copied through unchanged. Grammar uses fixed
// replacement strings; FuncGrammar calls a generator for every occurrence so
// repeated symbols in one pass can expand differently.
package lsystem

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNegativeIterations is returned by RunProduction for iterations < 0.
var ErrNegativeIterations = errors.New("lsystem: negative iteration count")

// ErrBadRule is returned by ParseRules for a malformed rule string.
var ErrBadRule = errors.New("lsystem: malformed rule")

// Producer is anything that can run a production.
type Producer interface {
	RunProduction(iterations int) (string, error)
}

// Grammar is an axiom plus fixed replacement rules.
type Grammar struct {
	Axiom string
	Rules map[rune]string
}

// RunProduction applies the rules iterations times, starting from the axiom.
func (g Grammar) RunProduction(iterations int) (string, error) {
	return run(g.Axiom, iterations, func(sb *strings.Builder, c rune) {
		if r, ok := g.Rules[c]; ok {
			sb.WriteString(r)
			return
		}
		sb.WriteRune(c)
	})
}

// Rule produces the replacement for one occurrence of a symbol.
type Rule func() string

// Fixed returns a Rule that always yields s.
func Fixed(s string) Rule {
	return func() string { return s }
}

// FuncGrammar is an axiom plus generated replacement rules.
type FuncGrammar struct {
	Axiom string
	Rules map[rune]Rule
}

// RunProduction applies the rules iterations times. Each rule is invoked
// anew for every occurrence of its symbol; a nil Rule acts as identity.
func (g FuncGrammar) RunProduction(iterations int) (string, error) {
	return run(g.Axiom, iterations, func(sb *strings.Builder, c rune) {
		if r := g.Rules[c]; r != nil {
			sb.WriteString(r())
			return
		}
		sb.WriteRune(c)
	})
}

func run(axiom string, iterations int, expand func(*strings.Builder, rune)) (string, error) {
	if iterations < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeIterations, iterations)
	}
	production := axiom
	for d := 0; d < iterations; d++ {
		var sb strings.Builder
		sb.Grow(len(production) * 2)
		for _, c := range production {
			expand(&sb, c)
		}
		production = sb.String()
	}
	return production, nil
}

// ParseRules turns strings like "f→ ff" or "x=x[-x]f" into a rule map.
// The left side must be a single symbol; the replacement may be empty.
func ParseRules(rules []string) (map[rune]string, error) {
	out := make(map[rune]string, len(rules))
	for _, rule := range rules {
		sym, repl, ok := strings.Cut(rule, "→")
		if !ok {
			sym, repl, ok = strings.Cut(rule, "=")
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q has no separator", ErrBadRule, rule)
		}
		chars := []rune(strings.TrimSpace(sym))
		if len(chars) != 1 {
			return nil, fmt.Errorf("%w: %q must name exactly one symbol", ErrBadRule, rule)
		}
		out[chars[0]] = strings.TrimSpace(repl)
	}
	return out, nil
}
