// Package match reconciles a catalog game's name against pricing search
// candidates. It is pure and stateless: the caller supplies the candidate
// list, match reports which candidate (if any) refers to the same game.
package match

import (
	"github.com/gamescout/gamescout/internal/cheapshark"
)

// Kind classifies how a match was made.
type Kind int

const (
	// KindNone means the candidate list was empty.
	KindNone Kind = iota
	// KindExact means a candidate's normalized name equals the normalized
	// catalog name.
	KindExact
	// KindFallback means no exact match existed and the first candidate in
	// the provider's original order was chosen. The pricing provider's
	// result ordering approximates relevance, so this is a deliberate
	// low-cost stand-in for fuzzy matching.
	KindFallback
)

// Outcome is the result of matching a catalog name against pricing
// candidates. Game is meaningful only when Kind is KindExact or
// KindFallback.
type Outcome struct {
	Kind Kind
	Game cheapshark.Game
}

// Found reports whether the outcome carries a candidate.
func (o Outcome) Found() bool {
	return o.Kind != KindNone
}

// Normalize lowercases name and strips every character outside [a-z0-9],
// so "The Witcher 3: Wild Hunt" and "the witcher 3 - wild hunt" compare
// equal.
func Normalize(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		}
	}
	return string(out)
}

// Match selects the pricing candidate that corresponds to catalogName.
// An exact normalized-name match always wins over list order.
func Match(catalogName string, candidates []cheapshark.Game) Outcome {
	if len(candidates) == 0 {
		return Outcome{Kind: KindNone}
	}

	want := Normalize(catalogName)
	for _, c := range candidates {
		if Normalize(c.External) == want {
			return Outcome{Kind: KindExact, Game: c}
		}
	}

	return Outcome{Kind: KindFallback, Game: candidates[0]}
}
