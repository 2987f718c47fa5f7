package pokemon

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// MaxMoves is the size of a Pokémon's move set.
const MaxMoves = 4

var (
	ErrIncompatibleMove = rules.NewViolation("move type does not match any of the Pokémon's types")
	ErrMoveKnown        = rules.NewViolation("move is already known")
	ErrMoveSetFull      = rules.NewViolation("move set already holds 4 moves")
	ErrMoveUnknown      = rules.NewViolation("move is not known")
	ErrHMMove           = rules.NewViolation("HM moves cannot be forgotten")
	ErrNoEvolution      = rules.NewViolation("species does not evolve")
	ErrSpeciesNotFound  = rules.NewViolation("evolution target is not in the catalog")
	ErrInvalidStone     = rules.NewViolation("stone is not a recognised type")
	ErrStoneMismatch    = rules.NewViolation("evolution target does not have the stone's type")
	ErrItemHasNoEffect  = rules.NewViolation("item has no effect on Pokémon")
	ErrAlreadyHolding   = rules.NewViolation("Pokémon is already holding an item")
	ErrNothingToHold    = rules.NewViolation("no item to hold")
)

// Evolution records one evolution of an instance and the stat delta it applied.
type Evolution struct {
	FromDex  int             `json:"from_dex"`
	FromName string          `json:"from_name"`
	ToDex    int             `json:"to_dex"`
	ToName   string          `json:"to_name"`
	Delta    stats.BaseStats `json:"delta"`
	Stone    string          `json:"stone,omitempty"`
}

// Pokemon is a mutable individual. Identity (name, dex, typing, evolution links)
// comes from the referenced Species; level, stats, moves and held item belong to the instance.
type Pokemon struct {
	id          uuid.UUID
	species     Species
	level       int
	evolvedFrom int
	stats       stats.BaseStats
	moves       []move.Move
	held        *item.Item
	candies     int
	history     []Evolution
	rule        EvolutionRule
}

// Option configures a new Pokemon.
type Option func(*Pokemon)

// WithEvolutionRule selects how stats change on evolution.
func WithEvolutionRule(r EvolutionRule) Option {
	return func(p *Pokemon) { p.rule = r }
}

// New creates an instance of species at the species' base level with a copy of its stats.
func New(species Species, opts ...Option) (*Pokemon, error) {
	if err := species.Validate(); err != nil {
		return nil, fmt.Errorf("invalid species: %w", err)
	}
	p := &Pokemon{
		id:          uuid.New(),
		species:     species,
		level:       species.BaseLevel,
		evolvedFrom: species.EvolvesFrom,
		stats:       species.Stats,
		moves:       make([]move.Move, 0, MaxMoves),
		rule:        LegacyDelta,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Pokemon) ID() uuid.UUID                { return p.id }
func (p *Pokemon) Species() Species             { return p.species }
func (p *Pokemon) Name() string                 { return p.species.Name }
func (p *Pokemon) Dex() int                     { return p.species.Dex }
func (p *Pokemon) Typing() typing.Typing        { return p.species.Typing }
func (p *Pokemon) Level() int                   { return p.level }
func (p *Pokemon) EvolvedFrom() int             { return p.evolvedFrom }
func (p *Pokemon) EvolvesTo() int               { return p.species.EvolvesTo }
func (p *Pokemon) EvolutionLevel() int          { return p.species.EvolutionLevel }
func (p *Pokemon) Stats() stats.BaseStats       { return p.stats }
func (p *Pokemon) HeldItem() *item.Item         { return p.held }
func (p *Pokemon) CandiesEaten() int            { return p.candies }
func (p *Pokemon) EvolutionRule() EvolutionRule { return p.rule }

// Moves returns a copy of the move set.
func (p *Pokemon) Moves() []move.Move {
	out := make([]move.Move, len(p.moves))
	copy(out, p.moves)
	return out
}

// History returns the recorded evolutions, oldest first.
func (p *Pokemon) History() []Evolution {
	out := make([]Evolution, len(p.history))
	copy(out, p.history)
	return out
}

// Knows reports whether m is in the move set.
func (p *Pokemon) Knows(m move.Move) bool {
	return p.moveIndex(m) >= 0
}

// LearnMove adds m to the move set. It fails without changing anything when the move shares
// no type with the Pokémon, is already known, or the move set is full.
func (p *Pokemon) LearnMove(m move.Move) error {
	if !m.Typing().SharesAny(p.Typing()) {
		return fmt.Errorf("%s (%s) cannot learn %s (%s): %w", p.Name(), p.Typing(), m.Name(), m.Typing(), ErrIncompatibleMove)
	}
	if p.Knows(m) {
		return fmt.Errorf("%s already knows %s: %w", p.Name(), m.Name(), ErrMoveKnown)
	}
	if len(p.moves) >= MaxMoves {
		return fmt.Errorf("%s cannot learn %s: %w", p.Name(), m.Name(), ErrMoveSetFull)
	}
	p.moves = append(p.moves, m)
	return nil
}

// ForgetMove removes m from the move set. Unknown moves and HM moves are refused.
func (p *Pokemon) ForgetMove(m move.Move) error {
	idx := p.moveIndex(m)
	if idx < 0 {
		return fmt.Errorf("%s does not know %s: %w", p.Name(), m.Name(), ErrMoveUnknown)
	}
	// The stored copy carries the classification the Pokémon learned.
	if !p.moves[idx].Forgettable() {
		return fmt.Errorf("%s cannot forget %s: %w", p.Name(), m.Name(), ErrHMMove)
	}
	p.moves = append(p.moves[:idx], p.moves[idx+1:]...)
	return nil
}

// LevelUp raises the level by one and grows every stat by 10% of its current value.
// When the new level reaches the evolution level and the species has a successor, the
// Pokémon evolves and LevelUp returns true. An evolution level of zero means the species
// only evolves by stone. If the evolution fails the level-up stays applied and the
// evolution error is returned.
func (p *Pokemon) LevelUp(byCandy bool, r Resolver) (bool, error) {
	p.level++
	p.stats.Grow()
	if byCandy {
		p.candies++
	}

	if !p.species.EvolvesByLevel() || p.level < p.species.EvolutionLevel {
		return false, nil
	}
	if err := p.Evolve(r); err != nil {
		return false, fmt.Errorf("%s reached level %d but could not evolve: %w", p.Name(), p.level, err)
	}
	return true, nil
}

// Evolve turns the Pokémon into its successor species.
// Nothing changes when the species has no successor or the resolver cannot find it.
func (p *Pokemon) Evolve(r Resolver) error {
	target, err := p.successor(r)
	if err != nil {
		return err
	}
	p.evolveInto(target, "")
	return nil
}

// EvolveUsingStone evolves the Pokémon when stone names a valid type ("Water" or
// "Water Stone") that the successor species has as its primary or secondary type.
func (p *Pokemon) EvolveUsingStone(stone string, r Resolver) error {
	element, err := typing.Parse(stoneElement(stone))
	if err != nil {
		return fmt.Errorf("%q: %w", stone, ErrInvalidStone)
	}
	target, err := p.successor(r)
	if err != nil {
		return err
	}
	if !target.Typing.Contains(element) {
		return fmt.Errorf("%s is %s, not %s: %w", target.Name, target.Typing, element.Title(), ErrStoneMismatch)
	}
	p.evolveInto(target, element.Title())
	return nil
}

// UseItem applies an item's usage: stat boosts adjust one stat, leveling items call
// LevelUp and evolution stones call EvolveUsingStone. The bool reports an evolution.
// Consuming the unit is up to the caller.
func (p *Pokemon) UseItem(it *item.Item, r Resolver) (bool, error) {
	if it == nil {
		return false, ErrItemHasNoEffect
	}
	u := it.Usage()
	switch u.Kind {
	case item.UsageStatBoost:
		if err := p.stats.Adjust(u.Stat, u.Amount); err != nil {
			return false, fmt.Errorf("%s: %w", it.Name(), err)
		}
		return false, nil
	case item.UsageLevelUp:
		return p.LevelUp(true, r)
	case item.UsageStone:
		if err := p.EvolveUsingStone(u.StoneType, r); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("%s: %w", it.Name(), ErrItemHasNoEffect)
}

// Hold gives the Pokémon one unit of an item to hold.
func (p *Pokemon) Hold(it *item.Item) error {
	if it == nil {
		return ErrNothingToHold
	}
	if p.held != nil {
		return fmt.Errorf("%s holds %s: %w", p.Name(), p.held.Name(), ErrAlreadyHolding)
	}
	p.held = it
	return nil
}

// TakeHeldItem removes and returns the held item.
func (p *Pokemon) TakeHeldItem() (*item.Item, bool) {
	it := p.held
	p.held = nil
	return it, it != nil
}

func (p *Pokemon) successor(r Resolver) (Species, error) {
	if !p.species.HasSuccessor() {
		return Species{}, fmt.Errorf("%s: %w", p.Name(), ErrNoEvolution)
	}
	if r == nil {
		return Species{}, fmt.Errorf("dex #%04d: %w", p.species.EvolvesTo, ErrSpeciesNotFound)
	}
	target, ok := r.GetByDex(p.species.EvolvesTo)
	if !ok {
		return Species{}, fmt.Errorf("dex #%04d: %w", p.species.EvolvesTo, ErrSpeciesNotFound)
	}
	return target, nil
}

func (p *Pokemon) evolveInto(target Species, stone string) {
	delta := p.stats.Delta(target.Stats)
	p.stats = p.rule.apply(p.stats, delta)
	p.history = append(p.history, Evolution{
		FromDex:  p.species.Dex,
		FromName: p.species.Name,
		ToDex:    target.Dex,
		ToName:   target.Name,
		Delta:    delta,
		Stone:    stone,
	})
	p.evolvedFrom = p.species.Dex
	p.species = target
}

func (p *Pokemon) moveIndex(m move.Move) int {
	for i, known := range p.moves {
		if known.Is(m) {
			return i
		}
	}
	return -1
}

func stoneElement(stone string) string {
	s := strings.TrimSpace(stone)
	if len(s) > len(" stone") && strings.EqualFold(s[len(s)-len(" stone"):], " stone") {
		s = s[:len(s)-len(" stone")]
	}
	return s
}
