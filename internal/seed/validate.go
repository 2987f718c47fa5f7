package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// Validator collects every problem in a seed file instead of stopping at the first.
type Validator struct {
	errors   []string
	warnings []string
}

// Validate checks each record and the links between them. It returns nil when the file is clean.
func (v *Validator) Validate(f *File) error {
	v.errors = nil
	v.warnings = nil

	species := make(map[int]pokemon.Species, len(f.Species))
	var ordered []pokemon.Species
	for i, s := range f.Species {
		built, err := s.Build()
		if err != nil {
			v.addError("species[%d]: %v", i, err)
			continue
		}
		if _, dup := species[built.Dex]; dup {
			v.addError("species[%d]: duplicate dex #%04d", i, built.Dex)
			continue
		}
		species[built.Dex] = built
		ordered = append(ordered, built)
	}
	for _, s := range ordered {
		v.validateEvolution(s, species)
	}

	moveNames := make(map[string]bool, len(f.Moves))
	for i, s := range f.Moves {
		m, err := s.Build()
		if err != nil {
			v.addError("moves[%d]: %v", i, err)
			continue
		}
		v.checkUnique(moveNames, "moves", i, m.Name())
	}

	itemNames := make(map[string]bool, len(f.Items))
	for i, s := range f.Items {
		it, err := s.Build()
		if err != nil {
			v.addError("items[%d] %q: %v", i, s.Name, err)
			continue
		}
		v.checkUnique(itemNames, "items", i, it.Name())
		if u := it.Usage(); u.StoneType != "" && !typing.IsValidType(u.StoneType) {
			// Allowed, but such a stone can never evolve anything.
			v.addWarning("items[%d] %q: stone type %q is not a type", i, it.Name(), u.StoneType)
		}
	}

	trainerIDs := make(map[string]bool, len(f.Trainers))
	for i, s := range f.Trainers {
		t, err := s.Build()
		if err != nil {
			v.addError("trainers[%d]: %v", i, err)
			continue
		}
		v.checkUnique(trainerIDs, "trainers", i, strconv.Itoa(t.ID))
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("%d problem(s):\n%s", len(v.errors), strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *Validator) validateEvolution(s pokemon.Species, all map[int]pokemon.Species) {
	if s.HasSuccessor() {
		next, ok := all[s.EvolvesTo]
		switch {
		case !ok:
			v.addError("%s (#%04d): evolves to #%04d which is not in the file", s.Name, s.Dex, s.EvolvesTo)
		case next.EvolvesFrom != s.Dex:
			v.addError("%s (#%04d): successor %s evolves from #%04d", s.Name, s.Dex, next.Name, next.EvolvesFrom)
		}
	} else if s.EvolutionLevel > 0 {
		v.addError("%s (#%04d): has an evolution level but no successor", s.Name, s.Dex)
	}
	if s.EvolvesFrom != pokemon.NoEvolution {
		if _, ok := all[s.EvolvesFrom]; !ok {
			v.addError("%s (#%04d): evolves from #%04d which is not in the file", s.Name, s.Dex, s.EvolvesFrom)
		}
	}
}

func (v *Validator) checkUnique(seen map[string]bool, section string, i int, name string) {
	key := strings.ToLower(name)
	if seen[key] {
		v.addError("%s[%d]: duplicate %q", section, i, name)
		return
	}
	seen[key] = true
}

func (v *Validator) addError(format string, args ...any) {
	v.errors = append(v.errors, "  - "+fmt.Sprintf(format, args...))
}

// Warnings lists non-fatal findings from the last Validate call.
func (v *Validator) Warnings() []string {
	return v.warnings
}

func (v *Validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}
