package catalog

import (
	"fmt"
	"strconv"

	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// PokemonManager is the species catalog, keyed by dex number.
// It is the pokemon.Resolver used for evolutions.
type PokemonManager struct {
	species *collection[pokemon.Species]
	opts    []pokemon.Option
}

// NewPokemonManager creates an empty species catalog. opts are applied to every instance Spawn creates.
func NewPokemonManager(opts ...pokemon.Option) *PokemonManager {
	return &PokemonManager{
		species: newCollection(
			func(s pokemon.Species) string { return dexKey(s.Dex) },
			func(s pokemon.Species) []string {
				fields := []string{s.Name}
				for _, t := range s.Typing.Types() {
					fields = append(fields, string(t))
				}
				return fields
			},
		),
		opts: opts,
	}
}

func dexKey(dex int) string {
	return strconv.Itoa(dex)
}

// Add validates and registers a species. Dex numbers are unique.
func (m *PokemonManager) Add(s pokemon.Species) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("species %q: %w", s.Name, err)
	}
	if err := m.species.add(s); err != nil {
		return fmt.Errorf("dex #%04d: %w", s.Dex, err)
	}
	return nil
}

// GetByDex implements pokemon.Resolver.
func (m *PokemonManager) GetByDex(dex int) (pokemon.Species, bool) {
	return m.species.get(dexKey(dex))
}

func (m *PokemonManager) Find(dex int) (pokemon.Species, error) {
	s, ok := m.GetByDex(dex)
	if !ok {
		return pokemon.Species{}, fmt.Errorf("dex #%04d: %w", dex, ErrNotFound)
	}
	return s, nil
}

// FindByName is an exact, case-insensitive name lookup.
func (m *PokemonManager) FindByName(name string) (pokemon.Species, error) {
	key := normalizeKey(name)
	found := m.species.filter(func(s pokemon.Species) bool { return normalizeKey(s.Name) == key })
	if len(found) == 0 {
		return pokemon.Species{}, fmt.Errorf("species %q: %w", name, ErrNotFound)
	}
	return found[0], nil
}

func (m *PokemonManager) All() []pokemon.Species { return m.species.all() }
func (m *PokemonManager) Len() int               { return m.species.len() }

// Search matches keyword against name and type names.
func (m *PokemonManager) Search(keyword string) []pokemon.Species {
	return m.species.search(keyword)
}

// ByType lists species whose typing contains t.
func (m *PokemonManager) ByType(t typing.Type) []pokemon.Species {
	return m.species.filter(func(s pokemon.Species) bool { return s.Typing.Contains(t) })
}

// Spawn creates a new instance of the species at dex.
func (m *PokemonManager) Spawn(dex int) (*pokemon.Pokemon, error) {
	s, err := m.Find(dex)
	if err != nil {
		return nil, err
	}
	return pokemon.New(s, m.opts...)
}
