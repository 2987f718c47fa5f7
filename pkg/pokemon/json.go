package pokemon

import (
	"encoding/json"

	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

type pokemonJSON struct {
	ID             string          `json:"id"`
	Dex            int             `json:"dex"`
	Name           string          `json:"name"`
	Typing         typing.Typing   `json:"typing"`
	Level          int             `json:"level"`
	EvolvedFrom    int             `json:"evolved_from,omitempty"`
	EvolvesTo      int             `json:"evolves_to,omitempty"`
	EvolutionLevel int             `json:"evolution_level,omitempty"`
	Stats          stats.BaseStats `json:"stats"`
	Total          int             `json:"total"`
	Moves          []move.Move     `json:"moves"`
	HeldItem       string          `json:"held_item,omitempty"`
	CandiesEaten   int             `json:"candies_eaten,omitempty"`
	History        []Evolution     `json:"history,omitempty"`
}

// MarshalJSON renders the read-only view used by the API.
func (p *Pokemon) MarshalJSON() ([]byte, error) {
	view := pokemonJSON{
		ID:             p.id.String(),
		Dex:            p.Dex(),
		Name:           p.Name(),
		Typing:         p.Typing(),
		Level:          p.level,
		EvolvedFrom:    p.evolvedFrom,
		EvolvesTo:      p.EvolvesTo(),
		EvolutionLevel: p.EvolutionLevel(),
		Stats:          p.stats,
		Total:          p.stats.Total(),
		Moves:          p.Moves(),
		CandiesEaten:   p.candies,
		History:        p.history,
	}
	if p.held != nil {
		view.HeldItem = p.held.Name()
	}
	return json.Marshal(view)
}
