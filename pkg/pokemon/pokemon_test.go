package pokemon

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

var (
	squirtle = Species{
		Dex: 7, Name: "Squirtle", Typing: typing.Single(typing.Water), BaseLevel: 5,
		EvolvesTo: 8, EvolutionLevel: 16,
		Stats: stats.BaseStats{HP: 44, Attack: 48, Defense: 65, SpecialAttack: 50, SpecialDefense: 64, Speed: 43},
	}
	wartortle = Species{
		Dex: 8, Name: "Wartortle", Typing: typing.Single(typing.Water), BaseLevel: 16,
		EvolvesFrom: 7, EvolvesTo: 9, EvolutionLevel: 36,
		Stats: stats.BaseStats{HP: 59, Attack: 63, Defense: 80, SpecialAttack: 65, SpecialDefense: 80, Speed: 58},
	}
	eevee = Species{
		Dex: 133, Name: "Eevee", Typing: typing.Single(typing.Normal), BaseLevel: 5,
		EvolvesTo: 134, // stone only
		Stats:     stats.BaseStats{HP: 55, Attack: 55, Defense: 50, SpecialAttack: 45, SpecialDefense: 65, Speed: 55},
	}
	vaporeon = Species{
		Dex: 134, Name: "Vaporeon", Typing: typing.Single(typing.Water), BaseLevel: 25, EvolvesFrom: 133,
		Stats: stats.BaseStats{HP: 130, Attack: 65, Defense: 60, SpecialAttack: 110, SpecialDefense: 95, Speed: 65},
	}
	pidgey = Species{
		Dex: 16, Name: "Pidgey", Typing: typing.MustNew("normal", "flying"), BaseLevel: 3,
		Stats: stats.BaseStats{HP: 40, Attack: 45, Defense: 40, SpecialAttack: 35, SpecialDefense: 35, Speed: 56},
	}
)

func testResolver(species ...Species) Resolver {
	byDex := make(map[int]Species, len(species))
	for _, s := range species {
		byDex[s.Dex] = s
	}
	return ResolverFunc(func(dex int) (Species, bool) {
		s, ok := byDex[dex]
		return s, ok
	})
}

func mustMove(t *testing.T, name string, class move.Classification, primary, secondary string) move.Move {
	t.Helper()
	m, err := move.New(name, name+" move.", class, typing.MustNew(primary, secondary))
	if err != nil {
		t.Fatalf("move.New(%q) error = %v", name, err)
	}
	return m
}

func mustPokemon(t *testing.T, s Species, opts ...Option) *Pokemon {
	t.Helper()
	p, err := New(s, opts...)
	if err != nil {
		t.Fatalf("New(%s) error = %v", s.Name, err)
	}
	return p
}

func TestNew(t *testing.T) {
	p := mustPokemon(t, wartortle)
	if p.Level() != 16 {
		t.Errorf("Level() = %d, want 16", p.Level())
	}
	if p.EvolvedFrom() != 7 {
		t.Errorf("EvolvedFrom() = %d, want 7", p.EvolvedFrom())
	}
	if p.Stats() != wartortle.Stats {
		t.Errorf("Stats() = %+v, want species stats", p.Stats())
	}
	if len(p.Moves()) != 0 {
		t.Errorf("new Pokémon knows %d moves", len(p.Moves()))
	}
	other := mustPokemon(t, wartortle)
	if p.ID() == other.ID() {
		t.Error("two instances share an id")
	}

	if _, err := New(Species{Dex: 2000, Name: "Nope", Typing: typing.Single(typing.Fire)}); !errors.Is(err, ErrInvalidDex) {
		t.Errorf("New() with dex 2000 error = %v, want ErrInvalidDex", err)
	}
}

func TestLearnMove(t *testing.T) {
	tackle := mustMove(t, "Tackle", move.TM, "normal", "")
	gust := mustMove(t, "Gust", move.TM, "flying", "")
	ember := mustMove(t, "Ember", move.TM, "fire", "")

	t.Run("matching primary type", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		if err := p.LearnMove(tackle); err != nil {
			t.Fatalf("LearnMove(Tackle) error = %v", err)
		}
		if !p.Knows(tackle) {
			t.Error("Tackle not in move set")
		}
	})

	t.Run("matching secondary type", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		if err := p.LearnMove(gust); err != nil {
			t.Fatalf("LearnMove(Gust) error = %v", err)
		}
	})

	t.Run("no shared type", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		err := p.LearnMove(ember)
		if !errors.Is(err, ErrIncompatibleMove) {
			t.Fatalf("LearnMove(Ember) error = %v, want ErrIncompatibleMove", err)
		}
		if !rules.IsViolation(err) {
			t.Error("expected a rule violation")
		}
		if len(p.Moves()) != 0 {
			t.Error("move set changed after a refused move")
		}
	})

	t.Run("already known ignoring case", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		_ = p.LearnMove(tackle)
		lower := mustMove(t, "tackle", move.TM, "normal", "")
		if err := p.LearnMove(lower); !errors.Is(err, ErrMoveKnown) {
			t.Fatalf("LearnMove(tackle) error = %v, want ErrMoveKnown", err)
		}
		if len(p.Moves()) != 1 {
			t.Errorf("move count = %d, want 1", len(p.Moves()))
		}
	})

	t.Run("move set full", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		for _, name := range []string{"Tackle", "Growl", "Quick Attack", "Sand Attack"} {
			if err := p.LearnMove(mustMove(t, name, move.TM, "normal", "")); err != nil {
				t.Fatalf("LearnMove(%s) error = %v", name, err)
			}
		}
		if err := p.LearnMove(gust); !errors.Is(err, ErrMoveSetFull) {
			t.Fatalf("fifth LearnMove error = %v, want ErrMoveSetFull", err)
		}
		if len(p.Moves()) != MaxMoves {
			t.Errorf("move count = %d, want %d", len(p.Moves()), MaxMoves)
		}
	})
}

func TestForgetMove(t *testing.T) {
	tackle := mustMove(t, "Tackle", move.TM, "normal", "")
	fly := mustMove(t, "Fly", move.HM, "flying", "")

	p := mustPokemon(t, pidgey)
	if err := p.LearnMove(tackle); err != nil {
		t.Fatal(err)
	}
	if err := p.LearnMove(fly); err != nil {
		t.Fatal(err)
	}

	if err := p.ForgetMove(fly); !errors.Is(err, ErrHMMove) {
		t.Errorf("ForgetMove(Fly) error = %v, want ErrHMMove", err)
	}
	if !p.Knows(fly) {
		t.Error("HM move was removed")
	}

	unknown := mustMove(t, "Growl", move.TM, "normal", "")
	if err := p.ForgetMove(unknown); !errors.Is(err, ErrMoveUnknown) {
		t.Errorf("ForgetMove(Growl) error = %v, want ErrMoveUnknown", err)
	}

	if err := p.ForgetMove(tackle); err != nil {
		t.Fatalf("ForgetMove(Tackle) error = %v", err)
	}
	if p.Knows(tackle) || len(p.Moves()) != 1 {
		t.Errorf("moves after forgetting Tackle = %v", p.Moves())
	}
}

func TestLevelUp(t *testing.T) {
	t.Run("grows stats without evolving", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		evolved, err := p.LevelUp(false, nil)
		if err != nil || evolved {
			t.Fatalf("LevelUp() = %v, %v", evolved, err)
		}
		want := stats.BaseStats{HP: 44, Attack: 49, Defense: 44, SpecialAttack: 38, SpecialDefense: 38, Speed: 61}
		if p.Level() != 4 || p.Stats() != want {
			t.Errorf("after LevelUp level=%d stats=%+v, want 4 %+v", p.Level(), p.Stats(), want)
		}
		if p.CandiesEaten() != 0 {
			t.Error("candy counted for a plain level-up")
		}
	})

	t.Run("evolves at evolution level", func(t *testing.T) {
		s := squirtle
		s.BaseLevel = 15
		p := mustPokemon(t, s)
		evolved, err := p.LevelUp(true, testResolver(squirtle, wartortle))
		if err != nil {
			t.Fatalf("LevelUp() error = %v", err)
		}
		if !evolved || p.Name() != "Wartortle" || p.Dex() != 8 {
			t.Fatalf("evolved=%v name=%s dex=%d, want Wartortle #8", evolved, p.Name(), p.Dex())
		}
		if p.Level() != 16 || p.EvolvedFrom() != 7 || p.EvolvesTo() != 9 {
			t.Errorf("level=%d from=%d to=%d", p.Level(), p.EvolvedFrom(), p.EvolvesTo())
		}
		// 44,48,65,50,64,43 grow to 48,52,71,55,70,47; legacy stats are Wartortle minus that.
		want := stats.BaseStats{HP: 11, Attack: 11, Defense: 9, SpecialAttack: 10, SpecialDefense: 10, Speed: 11}
		if p.Stats() != want {
			t.Errorf("Stats() = %+v, want %+v", p.Stats(), want)
		}
		if p.CandiesEaten() != 1 {
			t.Errorf("CandiesEaten() = %d, want 1", p.CandiesEaten())
		}
	})

	t.Run("stone-only line never evolves by level", func(t *testing.T) {
		p := mustPokemon(t, eevee)
		for range 50 {
			evolved, err := p.LevelUp(false, testResolver(eevee, vaporeon))
			if err != nil || evolved {
				t.Fatalf("LevelUp() at level %d = %v, %v", p.Level(), evolved, err)
			}
		}
		if p.Name() != "Eevee" || p.Level() != 55 {
			t.Errorf("name=%s level=%d, want Eevee at 55", p.Name(), p.Level())
		}
	})

	t.Run("failed evolution keeps the level", func(t *testing.T) {
		s := squirtle
		s.BaseLevel = 15
		p := mustPokemon(t, s)
		evolved, err := p.LevelUp(false, testResolver(squirtle))
		if !errors.Is(err, ErrSpeciesNotFound) || evolved {
			t.Fatalf("LevelUp() = %v, %v, want ErrSpeciesNotFound", evolved, err)
		}
		if p.Level() != 16 || p.Name() != "Squirtle" {
			t.Errorf("level=%d name=%s, want 16 Squirtle", p.Level(), p.Name())
		}
	})
}

func TestEvolve(t *testing.T) {
	t.Run("no successor", func(t *testing.T) {
		p := mustPokemon(t, pidgey)
		before := p.Stats()
		if err := p.Evolve(testResolver(pidgey)); !errors.Is(err, ErrNoEvolution) {
			t.Fatalf("Evolve() error = %v, want ErrNoEvolution", err)
		}
		if p.Name() != "Pidgey" || p.Stats() != before || len(p.History()) != 0 {
			t.Error("Pokémon changed after a refused evolution")
		}
	})

	t.Run("successor missing from catalog", func(t *testing.T) {
		p := mustPokemon(t, squirtle)
		before := p.Stats()
		if err := p.Evolve(testResolver(squirtle)); !errors.Is(err, ErrSpeciesNotFound) {
			t.Fatalf("Evolve() error = %v, want ErrSpeciesNotFound", err)
		}
		if p.Dex() != 7 || p.Stats() != before {
			t.Error("Pokémon changed after a refused evolution")
		}
	})

	tests := []struct {
		name string
		rule EvolutionRule
		want stats.BaseStats
	}{
		{"legacy delta", LegacyDelta, stats.BaseStats{HP: 15, Attack: 15, Defense: 15, SpecialAttack: 15, SpecialDefense: 16, Speed: 15}},
		{"rebase", Rebase, wartortle.Stats},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPokemon(t, squirtle, WithEvolutionRule(tt.rule))
			if err := p.Evolve(testResolver(squirtle, wartortle)); err != nil {
				t.Fatalf("Evolve() error = %v", err)
			}
			if p.Stats() != tt.want {
				t.Errorf("Stats() = %+v, want %+v", p.Stats(), tt.want)
			}
			hist := p.History()
			if len(hist) != 1 || hist[0].FromDex != 7 || hist[0].ToDex != 8 {
				t.Fatalf("History() = %+v", hist)
			}
			if hist[0].Delta.SpecialDefense != 16 {
				t.Errorf("recorded delta = %+v", hist[0].Delta)
			}
		})
	}
}

func TestEvolveUsingStone(t *testing.T) {
	// The stone type only matches the successor's secondary type.
	marill := Species{
		Dex: 183, Name: "Marill", Typing: typing.Single(typing.Water), BaseLevel: 5, EvolvesTo: 184,
		Stats: stats.BaseStats{HP: 70, Attack: 20, Defense: 50, SpecialAttack: 20, SpecialDefense: 50, Speed: 40},
	}
	azumarill := Species{
		Dex: 184, Name: "Azumarill", Typing: typing.MustNew("water", "fairy"), BaseLevel: 18, EvolvesFrom: 183,
		Stats: stats.BaseStats{HP: 100, Attack: 50, Defense: 80, SpecialAttack: 60, SpecialDefense: 80, Speed: 50},
	}
	r := testResolver(eevee, vaporeon, marill, azumarill)
	tests := []struct {
		name    string
		from    Species
		stone   string
		want    string
		wantErr error
	}{
		{"water", eevee, "Water", "Vaporeon", nil},
		{"water stone spelling", eevee, "water stone", "Vaporeon", nil},
		{"secondary type of successor", marill, "Fairy", "Azumarill", nil},
		{"fire stone mismatch", eevee, "Fire", "", ErrStoneMismatch},
		{"moon is not a type", eevee, "Moon", "", ErrInvalidStone},
		{"empty", eevee, "", "", ErrInvalidStone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPokemon(t, tt.from)
			err := p.EvolveUsingStone(tt.stone, r)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EvolveUsingStone(%q) error = %v, want %v", tt.stone, err, tt.wantErr)
				}
				if p.Name() != tt.from.Name {
					t.Error("Pokémon evolved despite the error")
				}
				return
			}
			if err != nil {
				t.Fatalf("EvolveUsingStone(%q) error = %v", tt.stone, err)
			}
			if p.Name() != tt.want {
				t.Errorf("evolved into %s (%s), want %s", p.Name(), p.Typing(), tt.want)
			}
			if p.EvolvedFrom() != tt.from.Dex {
				t.Errorf("EvolvedFrom() = %d, want %d", p.EvolvedFrom(), tt.from.Dex)
			}
			if len(p.History()) != 1 || p.History()[0].Stone == "" {
				t.Errorf("history = %+v", p.History())
			}
		})
	}

	p := mustPokemon(t, pidgey)
	if err := p.EvolveUsingStone("Water", r); !errors.Is(err, ErrNoEvolution) {
		t.Errorf("stone on a final form error = %v, want ErrNoEvolution", err)
	}
}

func TestUseItem(t *testing.T) {
	calcium, err := item.NewVitamin("Calcium", "A nutritious drink for Pokémon.", "Raises Special Attack.", 10000, 5000, 10, stats.SpecialAttack)
	if err != nil {
		t.Fatal(err)
	}
	candy, err := item.NewRareCandy("Rare Candy", "A candy packed with energy.", "Raises level by one.", item.NotTransactable, 2400, 10)
	if err != nil {
		t.Fatal(err)
	}
	waterStone, err := item.NewEvolutionStone("Water Stone", "A peculiar stone.", "Evolves certain species.", 3000, 1500, 10, "Water")
	if err != nil {
		t.Fatal(err)
	}
	moonStone, err := item.NewEvolutionStone("Moon Stone", "A peculiar stone.", "Evolves certain species.", item.NotTransactable, 1500, 10, "Moon")
	if err != nil {
		t.Fatal(err)
	}
	r := testResolver(eevee, vaporeon)

	p := mustPokemon(t, eevee)
	if evolved, err := p.UseItem(calcium, r); err != nil || evolved {
		t.Fatalf("UseItem(Calcium) = %v, %v", evolved, err)
	}
	if got := p.Stats().SpecialAttack; got != 55 {
		t.Errorf("SpecialAttack = %d, want 55", got)
	}

	if evolved, err := p.UseItem(candy, r); err != nil || evolved {
		t.Fatalf("UseItem(Rare Candy) = %v, %v", evolved, err)
	}
	if p.Level() != 6 || p.CandiesEaten() != 1 {
		t.Errorf("level=%d candies=%d", p.Level(), p.CandiesEaten())
	}

	if _, err := p.UseItem(moonStone, r); !errors.Is(err, ErrInvalidStone) {
		t.Errorf("UseItem(Moon Stone) error = %v, want ErrInvalidStone", err)
	}
	if evolved, err := p.UseItem(waterStone, r); err != nil || !evolved {
		t.Fatalf("UseItem(Water Stone) = %v, %v", evolved, err)
	}
	if p.Name() != "Vaporeon" {
		t.Errorf("Name() = %s, want Vaporeon", p.Name())
	}

	plain, err := item.New("Nugget", "Valuable", "A nugget of pure gold.", "", 10000, 5000, 1, item.Usage{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.UseItem(plain, r); !errors.Is(err, ErrItemHasNoEffect) {
		t.Errorf("UseItem(Nugget) error = %v, want ErrItemHasNoEffect", err)
	}
}

func TestHoldItem(t *testing.T) {
	candy, err := item.NewRareCandy("Rare Candy", "A candy.", "Raises level by one.", item.NotTransactable, 2400, 10)
	if err != nil {
		t.Fatal(err)
	}
	p := mustPokemon(t, pidgey)
	if _, ok := p.TakeHeldItem(); ok {
		t.Error("new Pokémon holds an item")
	}
	if err := p.Hold(candy); err != nil {
		t.Fatalf("Hold() error = %v", err)
	}
	if err := p.Hold(candy); !errors.Is(err, ErrAlreadyHolding) {
		t.Errorf("second Hold() error = %v, want ErrAlreadyHolding", err)
	}
	got, ok := p.TakeHeldItem()
	if !ok || !got.Is(candy) {
		t.Errorf("TakeHeldItem() = %v, %v", got, ok)
	}
	if p.HeldItem() != nil {
		t.Error("item still held after TakeHeldItem")
	}
}

func TestMarshalJSON(t *testing.T) {
	p := mustPokemon(t, pidgey)
	_ = p.LearnMove(mustMove(t, "Tackle", move.TM, "normal", ""))

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["name"] != "Pidgey" || got["total"] != float64(pidgey.Stats.Total()) {
		t.Errorf("unexpected JSON: %s", data)
	}
	if !strings.Contains(string(data), `"Tackle"`) {
		t.Errorf("moves missing from JSON: %s", data)
	}
}

func TestParseEvolutionRule(t *testing.T) {
	for in, want := range map[string]EvolutionRule{"": LegacyDelta, "legacy": LegacyDelta, "REBASE": Rebase} {
		got, err := ParseEvolutionRule(in)
		if err != nil || got != want {
			t.Errorf("ParseEvolutionRule(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseEvolutionRule("average"); err == nil {
		t.Error("expected error for unknown rule")
	}
}
