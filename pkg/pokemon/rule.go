package pokemon

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/stats"
)

// EvolutionRule decides what an evolution does to an instance's stats.
type EvolutionRule int

const (
	// LegacyDelta replaces the stats with the difference between the successor's
	// base stats and the current stats. This matches the historical Pokédex behaviour.
	LegacyDelta EvolutionRule = iota
	// Rebase adds that difference to the current stats, landing on the successor's base stats.
	Rebase
)

func (r EvolutionRule) String() string {
	switch r {
	case Rebase:
		return "rebase"
	default:
		return "legacy"
	}
}

// ParseEvolutionRule accepts "legacy" and "rebase".
func ParseEvolutionRule(s string) (EvolutionRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "legacy_delta":
		return LegacyDelta, nil
	case "rebase":
		return Rebase, nil
	}
	return LegacyDelta, fmt.Errorf("unknown evolution stat rule %q (want legacy or rebase)", s)
}

func (r EvolutionRule) apply(current, delta stats.BaseStats) stats.BaseStats {
	if r == Rebase {
		current.AdjustAll(delta)
		return current
	}
	return delta
}
