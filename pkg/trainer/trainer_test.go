package trainer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

func newTrainer(t *testing.T, money int) *Trainer {
	t.Helper()
	tr, err := New(Profile{ID: 1001, Name: "Kyle", Sex: "Female", Hometown: "Cabanatuan City, Nueva Ecija"}, money)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func newItem(t *testing.T, name string, buy, sell int) *item.Item {
	t.Helper()
	it, err := item.New(name, item.Vitamin, "A test item.", "", buy, sell, 100, item.Usage{})
	if err != nil {
		t.Fatalf("item.New(%q) error = %v", name, err)
	}
	return it
}

func newPokemon(t *testing.T) *pokemon.Pokemon {
	t.Helper()
	p, err := pokemon.New(pokemon.Species{
		Dex: 25, Name: "Pikachu", Typing: typing.Single(typing.Electric), BaseLevel: 5,
		Stats: stats.BaseStats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
	})
	if err != nil {
		t.Fatalf("pokemon.New() error = %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	if _, err := New(Profile{ID: 0, Name: "Nobody"}, DefaultMoney); !errors.Is(err, ErrInvalidID) {
		t.Errorf("id 0 error = %v, want ErrInvalidID", err)
	}
	if _, err := New(Profile{ID: 5, Name: "  "}, DefaultMoney); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name error = %v, want ErrEmptyName", err)
	}
	if _, err := New(Profile{ID: 5, Name: "Ella"}, -1); !errors.Is(err, ErrNegativeCash) {
		t.Errorf("negative money error = %v, want ErrNegativeCash", err)
	}
}

func TestBuyItem(t *testing.T) {
	t.Run("deducts price", func(t *testing.T) {
		tr := newTrainer(t, DefaultMoney)
		if err := tr.BuyItem(newItem(t, "Calcium", 10000, 5000), nil); err != nil {
			t.Fatalf("BuyItem() error = %v", err)
		}
		if tr.Money() != DefaultMoney-10000 || tr.CountOf("calcium") != 1 {
			t.Errorf("money=%d count=%d", tr.Money(), tr.CountOf("calcium"))
		}
	})

	t.Run("insufficient funds leaves money unchanged", func(t *testing.T) {
		tr := newTrainer(t, 1000)
		err := tr.BuyItem(newItem(t, "Protein", 1200, 600), nil)
		if !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("BuyItem() error = %v, want ErrInsufficientFunds", err)
		}
		if !rules.IsViolation(err) {
			t.Error("expected a rule violation")
		}
		if tr.Money() != 1000 || len(tr.Bag()) != 0 {
			t.Errorf("money=%d bag=%d after refused purchase", tr.Money(), len(tr.Bag()))
		}
	})

	t.Run("not purchasable", func(t *testing.T) {
		tr := newTrainer(t, DefaultMoney)
		err := tr.BuyItem(newItem(t, "Rare Candy", item.NotTransactable, 2400), nil)
		if !errors.Is(err, ErrNotPurchasable) {
			t.Fatalf("BuyItem() error = %v, want ErrNotPurchasable", err)
		}
		if tr.Money() != DefaultMoney {
			t.Error("money changed")
		}
	})

	t.Run("eleventh distinct name refused", func(t *testing.T) {
		tr := newTrainer(t, DefaultMoney)
		for i := range MaxDistinctItems {
			if err := tr.BuyItem(newItem(t, fmt.Sprintf("Item %d", i), 10, 5), nil); err != nil {
				t.Fatalf("BuyItem(%d) error = %v", i, err)
			}
		}
		before := tr.Money()
		if err := tr.BuyItem(newItem(t, "Extra", 10, 5), nil); !errors.Is(err, ErrTooManyDistinct) {
			t.Fatalf("11th name error = %v, want ErrTooManyDistinct", err)
		}
		if tr.Money() != before {
			t.Error("money changed on refused purchase")
		}
		// More units of a known name are fine.
		if err := tr.BuyItem(newItem(t, "item 3", 10, 5), nil); err != nil {
			t.Errorf("buying a known name error = %v", err)
		}
	})

	t.Run("full bag", func(t *testing.T) {
		tr := newTrainer(t, DefaultMoney)
		zinc := newItem(t, "Zinc", 10, 5)
		iron := newItem(t, "Iron", 10, 5)
		for range BagCapacity {
			if err := tr.BuyItem(zinc, nil); err != nil {
				t.Fatal(err)
			}
		}

		if err := tr.BuyItem(iron, nil); !errors.Is(err, ErrBagFull) {
			t.Fatalf("nil chooser error = %v, want ErrBagFull", err)
		}
		if err := tr.BuyItem(iron, DiscardAt(BagCapacity)); !errors.Is(err, ErrBagFull) {
			t.Fatalf("out of range chooser error = %v, want ErrBagFull", err)
		}
		if tr.CountOf("Iron") != 0 || len(tr.Bag()) != BagCapacity {
			t.Fatal("bag changed on refused purchase")
		}

		money := tr.Money()
		if err := tr.BuyItem(iron, DiscardAt(0)); err != nil {
			t.Fatalf("BuyItem with discard error = %v", err)
		}
		if len(tr.Bag()) != BagCapacity || tr.CountOf("Zinc") != BagCapacity-1 || tr.CountOf("Iron") != 1 {
			t.Errorf("bag = %v", tr.BagSummary())
		}
		if tr.Money() != money-10 {
			t.Errorf("money = %d, want %d", tr.Money(), money-10)
		}
	})
}

func TestSellItem(t *testing.T) {
	tr := newTrainer(t, 1000)
	hpUp := newItem(t, "HP Up", 100, 50)
	moon := newItem(t, "Moon Stone", item.NotTransactable, item.NotTransactable)

	if err := tr.SellItem(hpUp); !errors.Is(err, ErrItemNotInBag) {
		t.Errorf("sell absent item error = %v, want ErrItemNotInBag", err)
	}

	if err := tr.BuyItem(hpUp, nil); err != nil {
		t.Fatal(err)
	}
	if err := tr.SellItem(hpUp); err != nil {
		t.Fatalf("SellItem() error = %v", err)
	}
	if tr.Money() != 950 || tr.CountOf("HP Up") != 0 {
		t.Errorf("money=%d count=%d", tr.Money(), tr.CountOf("HP Up"))
	}

	if err := tr.StoreItem(moon); err != nil {
		t.Fatal(err)
	}
	if err := tr.SellItem(moon); !errors.Is(err, ErrNotSellable) {
		t.Errorf("sell unsellable error = %v, want ErrNotSellable", err)
	}
	if tr.CountOf("Moon Stone") != 1 {
		t.Error("unsellable item left the bag")
	}
}

func TestTakeAndDiscard(t *testing.T) {
	tr := newTrainer(t, DefaultMoney)
	carbos := newItem(t, "Carbos", 10, 5)
	_ = tr.BuyItem(carbos, nil)
	_ = tr.BuyItem(carbos, nil)

	got, err := tr.TakeItem("CARBOS")
	if err != nil || !got.Is(carbos) {
		t.Fatalf("TakeItem() = %v, %v", got, err)
	}
	if _, err := tr.DiscardItem(3); !errors.Is(err, ErrBagIndex) {
		t.Errorf("DiscardItem(3) error = %v, want ErrBagIndex", err)
	}
	if _, err := tr.DiscardItem(0); err != nil {
		t.Fatalf("DiscardItem(0) error = %v", err)
	}
	if _, err := tr.TakeItem("Carbos"); !errors.Is(err, ErrItemNotInBag) {
		t.Errorf("TakeItem from empty bag error = %v", err)
	}
}

func TestLineup(t *testing.T) {
	tr := newTrainer(t, DefaultMoney)
	var caught []*pokemon.Pokemon
	for i := range LineupCapacity + 1 {
		p := newPokemon(t)
		caught = append(caught, p)
		inLineup := tr.AddPokemonToLineup(p)
		if want := i < LineupCapacity; inLineup != want {
			t.Errorf("AddPokemonToLineup #%d = %v, want %v", i+1, inLineup, want)
		}
	}
	if len(tr.Lineup()) != LineupCapacity || len(tr.Storage()) != 1 {
		t.Fatalf("lineup=%d storage=%d", len(tr.Lineup()), len(tr.Storage()))
	}

	seventh := caught[LineupCapacity]
	if err := tr.SwitchToLineup(seventh.ID()); !errors.Is(err, ErrLineupFull) {
		t.Errorf("SwitchToLineup with full lineup error = %v", err)
	}
	if err := tr.SwitchToStorage(seventh.ID()); !errors.Is(err, ErrNotInLineup) {
		t.Errorf("SwitchToStorage of stored Pokémon error = %v", err)
	}
	if err := tr.SwitchToStorage(caught[0].ID()); err != nil {
		t.Fatalf("SwitchToStorage() error = %v", err)
	}
	if err := tr.SwitchToLineup(seventh.ID()); err != nil {
		t.Fatalf("SwitchToLineup() error = %v", err)
	}
	if !tr.InLineup(seventh.ID()) || tr.InLineup(caught[0].ID()) {
		t.Error("switch did not move the Pokémon")
	}

	if p, ok := tr.FindPokemon(caught[0].ID()); !ok || p != caught[0] {
		t.Error("FindPokemon missed a stored Pokémon")
	}
	if !tr.ReleasePokemon(caught[0].ID()) {
		t.Error("ReleasePokemon() = false for an owned Pokémon")
	}
	if tr.ReleasePokemon(caught[0].ID()) {
		t.Error("ReleasePokemon() = true for a released Pokémon")
	}
	if len(tr.Lineup())+len(tr.Storage()) != LineupCapacity {
		t.Errorf("owned = %d, want %d", len(tr.Lineup())+len(tr.Storage()), LineupCapacity)
	}
}
