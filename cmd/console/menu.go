package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/seed"
	"github.com/jwebster45206/pokedex-engine/pkg/display"
	"github.com/jwebster45206/pokedex-engine/pkg/input"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// prompt asks for one answer. check validates the raw line and returns the parsed value.
type prompt struct {
	label string
	check func(string) (any, error)
}

type answers []any

func (a answers) num(i int) int         { return a[i].(int) }
func (a answers) str(i int) string      { return a[i].(string) }
func (a answers) yes(i int) bool        { return a[i].(bool) }
func (a answers) typ(i int) typing.Type { return a[i].(typing.Type) }

type action struct {
	label   string
	prompts []prompt
	run     func(ctx context.Context, a answers) (string, error)
}

// Menu walks the user through numbered actions, one line of input at a time.
type Menu struct {
	engine  *engine.Engine
	actions []action

	current *action
	answers answers
}

func check[T any](parse func(string) (T, error)) func(string) (any, error) {
	return func(s string) (any, error) { return parse(s) }
}

func text(field string) func(string) (any, error) {
	return func(s string) (any, error) { return input.Text(field, s) }
}

func atLeast(field string, minimum int) func(string) (any, error) {
	return func(s string) (any, error) { return input.Int(field, s, minimum) }
}

func optional(parse func(string) (any, error), none any) func(string) (any, error) {
	return func(s string) (any, error) {
		if strings.TrimSpace(s) == "" {
			return none, nil
		}
		return parse(s)
	}
}

var (
	trainerPrompt = prompt{"Trainer id", atLeast("trainer id", 1)}
	pokemonPrompt = prompt{"Pokémon # (lineup first, then storage)", atLeast("Pokémon number", 1)}
)

// NewMenu builds the console menu over an engine.
func NewMenu(e *engine.Engine) *Menu {
	m := &Menu{engine: e}
	m.actions = []action{
		{label: "View all Pokémon species", run: m.listSpecies},
		{label: "Search Pokémon species", prompts: []prompt{{"Keyword", text("keyword")}}, run: m.searchSpecies},
		{label: "View Pokémon species of a type", prompts: []prompt{{"Type", check(input.Type)}}, run: m.speciesByType},
		{label: "Add a Pokémon species", prompts: m.speciesPrompts(), run: m.addSpecies},
		{label: "View all moves", run: m.listMoves},
		{label: "Search moves", prompts: []prompt{{"Keyword", text("keyword")}}, run: m.searchMoves},
		{label: "Add a move", prompts: m.movePrompts(), run: m.addMove},
		{label: "View all items", run: m.listItems},
		{label: "Search items", prompts: []prompt{{"Keyword", text("keyword")}}, run: m.searchItems},
		{label: "View all trainers", run: m.listTrainers},
		{label: "Search trainers", prompts: []prompt{{"Keyword", text("keyword")}}, run: m.searchTrainers},
		{label: "Add a trainer", prompts: trainerPrompts(), run: m.addTrainer},
		{label: "View a trainer", prompts: []prompt{trainerPrompt}, run: m.viewTrainer},
		{label: "View a trainer's Pokémon", prompts: []prompt{trainerPrompt, pokemonPrompt}, run: m.viewPokemon},
		{label: "Catch a Pokémon", prompts: []prompt{trainerPrompt, {"Dex number", check(input.Dex)}}, run: m.catch},
		{label: "Teach a move", prompts: []prompt{trainerPrompt, pokemonPrompt, {"Move", text("move")}}, run: m.pokemonItemOp(m.engine.TeachMove)},
		{label: "Forget a move", prompts: []prompt{trainerPrompt, pokemonPrompt, {"Move", text("move")}}, run: m.pokemonItemOp(m.engine.ForgetMove)},
		{label: "Level up a Pokémon", prompts: []prompt{trainerPrompt, pokemonPrompt}, run: m.pokemonOp(m.engine.LevelUp)},
		{label: "Evolve a Pokémon", prompts: []prompt{trainerPrompt, pokemonPrompt}, run: m.pokemonOp(m.engine.Evolve)},
		{label: "Evolve a Pokémon with a stone", prompts: []prompt{trainerPrompt, pokemonPrompt, {"Stone", text("stone")}}, run: m.pokemonItemOp(m.engine.EvolveWithStone)},
		{label: "Use an item on a Pokémon", prompts: []prompt{trainerPrompt, pokemonPrompt, {"Item", text("item")}}, run: m.pokemonItemOp(m.engine.UseItem)},
		{label: "Give a Pokémon an item to hold", prompts: []prompt{trainerPrompt, pokemonPrompt, {"Item", text("item")}}, run: m.pokemonItemOp(m.engine.HoldItem)},
		{label: "Take a Pokémon's held item", prompts: []prompt{trainerPrompt, pokemonPrompt}, run: m.pokemonOp(m.engine.TakeHeldItem)},
		{label: "Move a Pokémon to the lineup", prompts: []prompt{trainerPrompt, pokemonPrompt}, run: m.pokemonOp(m.engine.SwitchToLineup)},
		{label: "Move a Pokémon to storage", prompts: []prompt{trainerPrompt, pokemonPrompt}, run: m.pokemonOp(m.engine.SwitchToStorage)},
		{label: "Release a Pokémon", prompts: []prompt{trainerPrompt, pokemonPrompt, {"Are you sure? (Y/N)", check(input.Confirm)}}, run: m.release},
		{label: "Buy an item", prompts: []prompt{trainerPrompt, {"Item", text("item")}}, run: m.buy},
		{label: "Sell an item", prompts: []prompt{trainerPrompt, {"Item", text("item")}}, run: m.sell},
		{label: "Discard an item from the bag", prompts: []prompt{trainerPrompt, {"Bag entry # (as listed on the trainer card)", atLeast("bag entry", 1)}}, run: m.discard},
		{label: "View recent journal entries", run: m.recentJournal},
		{label: "Exit"},
	}
	return m
}

// MainMenu renders the numbered list of actions.
func (m *Menu) MainMenu() string {
	var b strings.Builder
	b.WriteString("Main menu:\n")
	for i, a := range m.actions {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, a.label)
	}
	b.WriteString("\nEnter a number:")
	return b.String()
}

// Prompt returns what the menu is currently waiting for.
func (m *Menu) Prompt() string {
	if m.current == nil {
		return "Choice"
	}
	return m.current.prompts[len(m.answers)].label
}

// Cancel abandons the action in progress.
func (m *Menu) Cancel() {
	m.current = nil
	m.answers = nil
}

// Submit feeds one line of input to the menu. It returns the text to show and whether the user chose Exit.
func (m *Menu) Submit(ctx context.Context, line string) (string, bool) {
	if m.current == nil {
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > len(m.actions) {
			return fmt.Sprintf("Please choose a number between 1 and %d.", len(m.actions)), false
		}
		a := &m.actions[n-1]
		if a.run == nil {
			return "Goodbye!", true
		}
		m.current = a
		m.answers = nil
		if len(a.prompts) == 0 {
			return m.complete(ctx), false
		}
		return a.label, false
	}

	p := m.current.prompts[len(m.answers)]
	v, err := p.check(line)
	if err != nil {
		return fmt.Sprintf("%v. Try again.", err), false
	}
	m.answers = append(m.answers, v)
	if len(m.answers) < len(m.current.prompts) {
		return "", false
	}
	return m.complete(ctx), false
}

func (m *Menu) complete(ctx context.Context) string {
	a, got := m.current, m.answers
	m.Cancel()
	out, err := a.run(ctx, got)
	if err != nil {
		return "Error: " + err.Error()
	}
	return out
}

// pokemonAt resolves a 1-based position across the lineup and then storage.
func (m *Menu) pokemonAt(trainerID, n int) (uuid.UUID, error) {
	var id uuid.UUID
	err := m.engine.ViewTrainer(trainerID, func(t *trainer.Trainer) error {
		all := append(t.Lineup(), t.Storage()...)
		if n > len(all) {
			return fmt.Errorf("%w: %s only has %d Pokémon", input.ErrInvalid, t.Name, len(all))
		}
		id = all[n-1].ID()
		return nil
	})
	return id, err
}

func (m *Menu) speciesPrompts() []prompt {
	dexTaken := func(s string) (any, error) {
		dex, err := input.Dex(s)
		if err != nil {
			return nil, err
		}
		if _, ok := m.engine.Species().GetByDex(dex); ok {
			return nil, fmt.Errorf("%w: dex #%04d is already taken", input.ErrInvalid, dex)
		}
		return dex, nil
	}
	ps := []prompt{
		{"Dex number", dexTaken},
		{"Name", check(input.Name)},
		{"Primary type", check(input.Type)},
		{"Secondary type (blank for none)", optional(check(input.Type), typing.Type(""))},
		{"Base level", atLeast("base level", 0)},
		{"Evolves from dex (blank for none)", check(input.OptionalDex)},
		{"Evolves to dex (blank for none)", check(input.OptionalDex)},
		{"Evolution level (0 for stone only)", atLeast("evolution level", 0)},
	}
	for _, st := range stats.All {
		if st == stats.SpecialAttack || st == stats.SpecialDefense {
			ps = append(ps, prompt{st.Label() + " (blank for the four-stat form)", optional(check(input.Stat), 0)})
			continue
		}
		ps = append(ps, prompt{st.Label(), check(input.Stat)})
	}
	return ps
}

func (m *Menu) movePrompts() []prompt {
	nameFree := func(s string) (any, error) {
		name, err := input.MoveName(s)
		if err != nil {
			return nil, err
		}
		if m.engine.Moves().Exists(name) {
			return nil, fmt.Errorf("%w: move name %q is already taken", input.ErrInvalid, name)
		}
		return name, nil
	}
	return []prompt{
		{"Move name", nameFree},
		{"Description (end with a period)", check(input.MoveDescription)},
		{"Classification (HM or TM)", check(input.Classification)},
		{"Primary type", check(input.Type)},
		{"Secondary type (blank for none)", optional(check(input.Type), typing.Type(""))},
	}
}

func trainerPrompts() []prompt {
	return []prompt{
		{"Trainer id", atLeast("trainer id", 1)},
		{"Name", check(input.Name)},
		{"Birthdate (YYYY-MM-DD)", check(input.Birthdate)},
		{"Sex (Male/Female)", check(input.Sex)},
		{"Hometown", check(input.Name)},
		{"Description", text("description")},
	}
}

// speciesStats builds the six-stat form, or the four-stat form when both specials were left blank.
func speciesStats(a answers) (stats.BaseStats, error) {
	hp, atk, def, spAtk, spDef, speed := a.num(8), a.num(9), a.num(10), a.num(11), a.num(12), a.num(13)
	switch {
	case spAtk == 0 && spDef == 0:
		return stats.FromFour(hp, atk, def, speed)
	case spAtk == 0 || spDef == 0:
		return stats.BaseStats{}, fmt.Errorf("%w: answer both special stats or leave both blank", input.ErrInvalid)
	}
	return stats.New(hp, atk, def, spAtk, spDef, speed)
}

func (m *Menu) addSpecies(ctx context.Context, a answers) (string, error) {
	bs, err := speciesStats(a)
	if err != nil {
		return "", err
	}
	s, err := seed.SpeciesSpec{
		Dex:            a.num(0),
		Name:           a.str(1),
		PrimaryType:    string(a.typ(2)),
		SecondaryType:  string(a.typ(3)),
		BaseLevel:      a.num(4),
		EvolvesFrom:    a.num(5),
		EvolvesTo:      a.num(6),
		EvolutionLevel: a.num(7),
		Stats:          bs,
	}.Build()
	if err != nil {
		return "", err
	}
	if err := m.engine.AddSpecies(ctx, s); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added #%04d %s.", s.Dex, s.Name), nil
}

func (m *Menu) addMove(ctx context.Context, a answers) (string, error) {
	mv, err := move.Spec{
		Name:           a.str(0),
		Description:    a.str(1),
		Classification: a[2].(move.Classification),
		PrimaryType:    string(a.typ(3)),
		SecondaryType:  string(a.typ(4)),
	}.Build()
	if err != nil {
		return "", err
	}
	if err := m.engine.AddMove(ctx, mv); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added move %s.", mv.Name()), nil
}

func (m *Menu) addTrainer(ctx context.Context, a answers) (string, error) {
	profile := trainer.Profile{
		ID:          a.num(0),
		Name:        a.str(1),
		Birthdate:   a.str(2),
		Sex:         a.str(3),
		Hometown:    a.str(4),
		Description: a.str(5),
	}
	if err := m.engine.AddTrainer(ctx, profile, trainer.DefaultMoney); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added trainer %s (#%d).", profile.Name, profile.ID), nil
}

func (m *Menu) viewTrainer(_ context.Context, a answers) (string, error) {
	var out string
	err := m.engine.ViewTrainer(a.num(0), func(t *trainer.Trainer) error {
		out = display.TrainerCard(t)
		return nil
	})
	return out, err
}

func (m *Menu) viewPokemon(_ context.Context, a answers) (string, error) {
	pid, err := m.pokemonAt(a.num(0), a.num(1))
	if err != nil {
		return "", err
	}
	var out string
	err = m.engine.ViewPokemon(a.num(0), pid, func(p *pokemon.Pokemon) error {
		out = display.PokemonCard(p)
		return nil
	})
	return out, err
}

func (m *Menu) catch(ctx context.Context, a answers) (string, error) {
	out, err := m.engine.CatchPokemon(ctx, a.num(0), a.num(1))
	return out.Message, err
}

type pokemonFunc func(ctx context.Context, trainerID int, pid uuid.UUID) (engine.Outcome, error)

type pokemonNamedFunc func(ctx context.Context, trainerID int, pid uuid.UUID, name string) (engine.Outcome, error)

func (m *Menu) pokemonOp(op pokemonFunc) func(context.Context, answers) (string, error) {
	return func(ctx context.Context, a answers) (string, error) {
		pid, err := m.pokemonAt(a.num(0), a.num(1))
		if err != nil {
			return "", err
		}
		out, err := op(ctx, a.num(0), pid)
		return out.Message, err
	}
}

// pokemonItemOp adapts operations that take a Pokémon plus a move, stone or item name.
func (m *Menu) pokemonItemOp(op pokemonNamedFunc) func(context.Context, answers) (string, error) {
	return func(ctx context.Context, a answers) (string, error) {
		pid, err := m.pokemonAt(a.num(0), a.num(1))
		if err != nil {
			return "", err
		}
		out, err := op(ctx, a.num(0), pid, a.str(2))
		return out.Message, err
	}
}

func (m *Menu) release(ctx context.Context, a answers) (string, error) {
	if !a.yes(2) {
		return "Release cancelled.", nil
	}
	return m.pokemonOp(m.engine.Release)(ctx, a)
}

func (m *Menu) buy(ctx context.Context, a answers) (string, error) {
	out, err := m.engine.BuyItem(ctx, a.num(0), a.str(1), nil)
	return out.Message, err
}

func (m *Menu) sell(ctx context.Context, a answers) (string, error) {
	out, err := m.engine.SellItem(ctx, a.num(0), a.str(1))
	return out.Message, err
}

// discard drops one unit of the n-th grouped bag entry.
func (m *Menu) discard(ctx context.Context, a answers) (string, error) {
	index := -1
	err := m.engine.ViewTrainer(a.num(0), func(t *trainer.Trainer) error {
		entries := t.BagSummary()
		if a.num(1) > len(entries) {
			return fmt.Errorf("%w: the bag only has %d entries", input.ErrInvalid, len(entries))
		}
		name := entries[a.num(1)-1].Name
		for i, it := range t.Bag() {
			if strings.EqualFold(it.Name(), name) {
				index = i
				break
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	out, err := m.engine.DiscardItem(ctx, a.num(0), index)
	return out.Message, err
}
