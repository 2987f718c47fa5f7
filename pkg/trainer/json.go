package trainer

import (
	"encoding/json"

	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
)

type trainerJSON struct {
	Profile
	Money   int                `json:"money"`
	Lineup  []*pokemon.Pokemon `json:"lineup"`
	Storage []*pokemon.Pokemon `json:"storage"`
	Bag     []BagEntry         `json:"bag"`
	BagSize int                `json:"bag_size"`
}

func (t *Trainer) MarshalJSON() ([]byte, error) {
	view := trainerJSON{
		Profile: t.Profile,
		Money:   t.money,
		Lineup:  t.Lineup(),
		Storage: t.Storage(),
		Bag:     t.BagSummary(),
		BagSize: len(t.bag),
	}
	if view.Lineup == nil {
		view.Lineup = []*pokemon.Pokemon{}
	}
	if view.Storage == nil {
		view.Storage = []*pokemon.Pokemon{}
	}
	if view.Bag == nil {
		view.Bag = []BagEntry{}
	}
	return json.Marshal(view)
}
