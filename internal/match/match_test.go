package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamescout/gamescout/internal/cheapshark"
	"github.com/gamescout/gamescout/internal/match"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase kept", "witcher", "witcher"},
		{"uppercase folded", "The Witcher 3", "thewitcher3"},
		{"punctuation stripped", "The Witcher 3: Wild Hunt", "thewitcher3wildhunt"},
		{"digits kept", "Baldur's Gate 3", "baldursgate3"},
		{"symbols and spaces stripped", "NieR:Automata™ - Game of the YoRHa", "nierautomatagameoftheyorha"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, match.Normalize(tt.in))
		})
	}
}

func TestMatch_ExactBeatsListOrder(t *testing.T) {
	t.Parallel()

	candidates := []cheapshark.Game{
		{GameID: "1", External: "The Witcher 3: Wild Hunt"},
		{GameID: "2", External: "The Witcher 3"},
	}

	got := match.Match("The Witcher 3", candidates)

	assert.Equal(t, match.KindExact, got.Kind)
	assert.Equal(t, "2", got.Game.GameID)
}

func TestMatch_FallbackTakesFirstCandidate(t *testing.T) {
	t.Parallel()

	candidates := []cheapshark.Game{
		{GameID: "10", External: "Witcher 3 GOTY Edition"},
		{GameID: "11", External: "The Witcher 2"},
	}

	got := match.Match("The Witcher 3", candidates)

	assert.Equal(t, match.KindFallback, got.Kind)
	assert.Equal(t, "10", got.Game.GameID)
	assert.True(t, got.Found())
}

func TestMatch_NoneOnEmptyCandidates(t *testing.T) {
	t.Parallel()

	got := match.Match("The Witcher 3", nil)

	assert.Equal(t, match.KindNone, got.Kind)
	assert.False(t, got.Found())
}

func TestMatch_NormalizationBridgesPunctuation(t *testing.T) {
	t.Parallel()

	candidates := []cheapshark.Game{
		{GameID: "5", External: "NieR: Automata"},
	}

	got := match.Match("NieR:Automata", candidates)

	assert.Equal(t, match.KindExact, got.Kind)
	assert.Equal(t, "5", got.Game.GameID)
}
