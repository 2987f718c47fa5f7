// Package seed loads catalog data from YAML. The default data set is embedded in the binary.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jwebster45206/pokedex-engine/pkg/catalog"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// File is the YAML layout of a seed file.
type File struct {
	Species  []SpeciesSpec `yaml:"species"`
	Moves    []move.Spec   `yaml:"moves"`
	Items    []item.Spec   `yaml:"items"`
	Trainers []TrainerSpec `yaml:"trainers"`
}

// SpeciesSpec is the YAML and request-body form of a pokemon.Species.
type SpeciesSpec struct {
	Dex            int             `json:"dex" yaml:"dex"`
	Name           string          `json:"name" yaml:"name"`
	PrimaryType    string          `json:"primary_type" yaml:"primary_type"`
	SecondaryType  string          `json:"secondary_type,omitempty" yaml:"secondary_type,omitempty"`
	BaseLevel      int             `json:"base_level" yaml:"base_level"`
	EvolvesFrom    int             `json:"evolves_from,omitempty" yaml:"evolves_from,omitempty"`
	EvolvesTo      int             `json:"evolves_to,omitempty" yaml:"evolves_to,omitempty"`
	EvolutionLevel int             `json:"evolution_level,omitempty" yaml:"evolution_level,omitempty"`
	Stats          stats.BaseStats `json:"stats" yaml:"stats"`
}

// Build validates the fields and returns the Species.
func (s SpeciesSpec) Build() (pokemon.Species, error) {
	t, err := typing.New(s.PrimaryType, s.SecondaryType)
	if err != nil {
		return pokemon.Species{}, fmt.Errorf("species %q: %w", s.Name, err)
	}
	sp := pokemon.Species{
		Dex:            s.Dex,
		Name:           s.Name,
		Typing:         t,
		BaseLevel:      s.BaseLevel,
		EvolvesFrom:    s.EvolvesFrom,
		EvolvesTo:      s.EvolvesTo,
		EvolutionLevel: s.EvolutionLevel,
		Stats:          s.Stats,
	}
	if err := sp.Validate(); err != nil {
		return pokemon.Species{}, fmt.Errorf("species %q: %w", s.Name, err)
	}
	return sp, nil
}

// TrainerSpec is the YAML form of a trainer. Money defaults to trainer.DefaultMoney.
type TrainerSpec struct {
	trainer.Profile `yaml:",inline"`
	Money           *int `json:"money,omitempty" yaml:"money,omitempty"`
}

// Build validates the fields and returns a trainer with empty collections.
func (s TrainerSpec) Build() (*trainer.Trainer, error) {
	money := trainer.DefaultMoney
	if s.Money != nil {
		money = *s.Money
	}
	t, err := trainer.New(s.Profile, money)
	if err != nil {
		return nil, fmt.Errorf("trainer %d: %w", s.ID, err)
	}
	return t, nil
}

// Default returns the embedded data set.
func Default() (*File, error) {
	return Parse(bytes.NewReader(defaultData))
}

// Load reads path, or the embedded data set when path is empty.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a seed file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &file, nil
}

// Catalogs is the set of managers a seed file populates.
type Catalogs struct {
	Pokemon  *catalog.PokemonManager
	Moves    *catalog.MoveManager
	Items    *catalog.ItemManager
	Trainers *catalog.TrainerManager
}

// Apply builds every record and adds it to the catalogs. It stops at the first error.
func (f *File) Apply(c Catalogs) error {
	for _, s := range f.Species {
		sp, err := s.Build()
		if err != nil {
			return err
		}
		if err := c.Pokemon.Add(sp); err != nil {
			return err
		}
	}
	for _, s := range f.Moves {
		m, err := s.Build()
		if err != nil {
			return err
		}
		if err := c.Moves.Add(m); err != nil {
			return err
		}
	}
	for _, s := range f.Items {
		it, err := s.Build()
		if err != nil {
			return fmt.Errorf("item %q: %w", s.Name, err)
		}
		if err := c.Items.Add(it); err != nil {
			return err
		}
	}
	for _, s := range f.Trainers {
		t, err := s.Build()
		if err != nil {
			return err
		}
		if err := c.Trainers.Add(t); err != nil {
			return err
		}
	}
	return nil
}
