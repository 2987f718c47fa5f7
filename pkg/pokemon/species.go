package pokemon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// Dex number bounds.
const (
	MinDex = 1
	MaxDex = 1010
	// NoEvolution marks a species without a predecessor or successor.
	NoEvolution = 0
)

var (
	ErrInvalidDex  = fmt.Errorf("dex number must be between %d and %d", MinDex, MaxDex)
	ErrEmptyName   = errors.New("species name cannot be empty")
	ErrNoTyping    = errors.New("species must have a primary type")
	ErrNegativeLvl = errors.New("levels cannot be negative")
)

// Species is the immutable catalog definition of a Pokémon, keyed by dex number.
// Instances reference a Species and swap the reference when they evolve.
type Species struct {
	Dex            int             `json:"dex"`
	Name           string          `json:"name"`
	Typing         typing.Typing   `json:"typing"`
	BaseLevel      int             `json:"base_level"`
	EvolvesFrom    int             `json:"evolves_from,omitempty"`
	EvolvesTo      int             `json:"evolves_to,omitempty"`
	EvolutionLevel int             `json:"evolution_level,omitempty"`
	Stats          stats.BaseStats `json:"stats"`
}

// Validate checks the species invariants.
func (s Species) Validate() error {
	if err := ValidateDex(s.Dex); err != nil {
		return err
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Typing.IsZero() {
		return ErrNoTyping
	}
	if s.BaseLevel < 0 || s.EvolutionLevel < 0 {
		return fmt.Errorf("%w: base %d, evolution %d", ErrNegativeLvl, s.BaseLevel, s.EvolutionLevel)
	}
	for _, linked := range []int{s.EvolvesFrom, s.EvolvesTo} {
		if linked != NoEvolution {
			if err := ValidateDex(linked); err != nil {
				return fmt.Errorf("evolution link: %w", err)
			}
		}
	}
	return s.Stats.Validate()
}

// HasSuccessor reports whether the species evolves into another.
func (s Species) HasSuccessor() bool {
	return s.EvolvesTo != NoEvolution
}

// EvolvesByLevel reports whether reaching EvolutionLevel triggers an evolution.
// Species with a successor but no evolution level evolve by stone only.
func (s Species) EvolvesByLevel() bool {
	return s.HasSuccessor() && s.EvolutionLevel > 0
}

// ValidateDex checks the 1..1010 range.
func ValidateDex(dex int) error {
	if dex < MinDex || dex > MaxDex {
		return fmt.Errorf("%w: got %d", ErrInvalidDex, dex)
	}
	return nil
}

// Resolver looks up species by dex number. The species catalog is the production resolver.
type Resolver interface {
	GetByDex(dex int) (Species, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(dex int) (Species, bool)

func (f ResolverFunc) GetByDex(dex int) (Species, bool) {
	return f(dex)
}
