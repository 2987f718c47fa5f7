package trainer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
)

// Inventory limits.
const (
	LineupCapacity   = 6
	BagCapacity      = 50
	MaxDistinctItems = 10
	DefaultMoney     = 1_000_000
)

var (
	ErrNotPurchasable    = rules.NewViolation("item cannot be bought")
	ErrNotSellable       = rules.NewViolation("item cannot be sold")
	ErrInsufficientFunds = rules.NewViolation("not enough money")
	ErrTooManyDistinct   = rules.NewViolation("bag already holds 10 different items")
	ErrBagFull           = rules.NewViolation("bag is full")
	ErrItemNotInBag      = rules.NewViolation("item is not in the bag")
	ErrBagIndex          = rules.NewViolation("no item at that bag position")
	ErrLineupFull        = rules.NewViolation("lineup already has 6 Pokémon")
	ErrNotInLineup       = rules.NewViolation("Pokémon is not in the lineup")
	ErrNotInStorage      = rules.NewViolation("Pokémon is not in storage")
	ErrUnknownPokemon    = rules.NewViolation("trainer does not own that Pokémon")

	ErrInvalidID    = errors.New("trainer id must be positive")
	ErrEmptyName    = errors.New("trainer name cannot be empty")
	ErrNegativeCash = errors.New("money cannot be negative")
)

// Profile is the descriptive part of a trainer.
type Profile struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Birthdate   string `json:"birthdate" yaml:"birthdate"`
	Sex         string `json:"sex" yaml:"sex"`
	Hometown    string `json:"hometown" yaml:"hometown"`
	Description string `json:"description" yaml:"description"`
}

// Validate checks the fields every trainer needs.
func (p Profile) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidID, p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Trainer owns Pokémon and a bag of item units. Bag entries reference catalog items;
// each entry is one unit.
type Trainer struct {
	Profile
	money   int
	lineup  []*pokemon.Pokemon
	storage []*pokemon.Pokemon
	bag     []*item.Item
}

// New creates a trainer with the given starting money.
func New(profile Profile, money int) (*Trainer, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if money < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCash, money)
	}
	return &Trainer{Profile: profile, money: money}, nil
}

func (t *Trainer) Money() int { return t.money }

// Lineup returns a copy of the active party.
func (t *Trainer) Lineup() []*pokemon.Pokemon {
	return append([]*pokemon.Pokemon(nil), t.lineup...)
}

// Storage returns a copy of the stored Pokémon.
func (t *Trainer) Storage() []*pokemon.Pokemon {
	return append([]*pokemon.Pokemon(nil), t.storage...)
}

// Bag returns a copy of the bag, one entry per unit.
func (t *Trainer) Bag() []*item.Item {
	return append([]*item.Item(nil), t.bag...)
}

// BagEntry groups the units of one item.
type BagEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BagSummary lists each distinct item with its unit count, in order of first appearance.
func (t *Trainer) BagSummary() []BagEntry {
	var out []BagEntry
	idx := make(map[string]int)
	for _, it := range t.bag {
		key := strings.ToLower(it.Name())
		if i, ok := idx[key]; ok {
			out[i].Count++
			continue
		}
		idx[key] = len(out)
		out = append(out, BagEntry{Name: it.Name(), Count: 1})
	}
	return out
}

// DistinctItems counts the different item names in the bag.
func (t *Trainer) DistinctItems() int {
	return len(t.BagSummary())
}

// CountOf returns how many units of the named item the bag holds.
func (t *Trainer) CountOf(name string) int {
	n := 0
	for _, it := range t.bag {
		if strings.EqualFold(it.Name(), name) {
			n++
		}
	}
	return n
}

// DiscardChooser picks the bag position to drop when the bag is full.
// Returning an index outside the bag cancels the purchase.
type DiscardChooser func(bag []*item.Item) int

// DiscardAt returns a chooser that always picks index.
func DiscardAt(index int) DiscardChooser {
	return func([]*item.Item) int { return index }
}

// BuyItem pays for one unit of it and puts it in the bag. Checks run in order:
// purchasable, affordable, distinct-name limit, then bag capacity. When the bag is full
// choose selects a unit to discard; a nil chooser or invalid index refuses the purchase.
// Nothing changes on failure.
func (t *Trainer) BuyItem(it *item.Item, choose DiscardChooser) error {
	if !it.Purchasable() {
		return fmt.Errorf("%s: %w", it.Name(), ErrNotPurchasable)
	}
	price := it.BuyingPrice()
	if t.money < price {
		return fmt.Errorf("%s costs %d, %s has %d: %w", it.Name(), price, t.Name, t.money, ErrInsufficientFunds)
	}
	if err := t.checkDistinct(it); err != nil {
		return err
	}

	discard := -1
	if len(t.bag) >= BagCapacity {
		if choose == nil {
			return fmt.Errorf("cannot fit %s: %w", it.Name(), ErrBagFull)
		}
		discard = choose(t.Bag())
		if discard < 0 || discard >= len(t.bag) {
			return fmt.Errorf("cannot fit %s without discarding: %w", it.Name(), ErrBagFull)
		}
	}

	if discard >= 0 {
		t.removeBagAt(discard)
	}
	t.bag = append(t.bag, it)
	t.money -= price
	return nil
}

// SellItem removes one unit of it from the bag and credits its selling price.
func (t *Trainer) SellItem(it *item.Item) error {
	idx := t.bagIndex(it.Name())
	if idx < 0 {
		return fmt.Errorf("%s: %w", it.Name(), ErrItemNotInBag)
	}
	if !it.Sellable() {
		return fmt.Errorf("%s: %w", it.Name(), ErrNotSellable)
	}
	t.removeBagAt(idx)
	t.money += it.SellingPrice()
	return nil
}

// DiscardItem drops the unit at index and returns it.
func (t *Trainer) DiscardItem(index int) (*item.Item, error) {
	if index < 0 || index >= len(t.bag) {
		return nil, fmt.Errorf("index %d of %d: %w", index, len(t.bag), ErrBagIndex)
	}
	return t.removeBagAt(index), nil
}

// TakeItem removes one unit of the named item, for using or holding it.
func (t *Trainer) TakeItem(name string) (*item.Item, error) {
	idx := t.bagIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrItemNotInBag)
	}
	return t.removeBagAt(idx), nil
}

// StoreItem puts a unit back in the bag under the capacity and distinct-name rules.
func (t *Trainer) StoreItem(it *item.Item) error {
	if err := t.checkDistinct(it); err != nil {
		return err
	}
	if len(t.bag) >= BagCapacity {
		return fmt.Errorf("cannot store %s: %w", it.Name(), ErrBagFull)
	}
	t.bag = append(t.bag, it)
	return nil
}

// AddPokemonToLineup puts p in the lineup if there is room and reports true.
// Otherwise p goes to storage and it reports false.
func (t *Trainer) AddPokemonToLineup(p *pokemon.Pokemon) bool {
	if len(t.lineup) < LineupCapacity {
		t.lineup = append(t.lineup, p)
		return true
	}
	t.storage = append(t.storage, p)
	return false
}

// SwitchToLineup moves a stored Pokémon into the lineup.
func (t *Trainer) SwitchToLineup(id uuid.UUID) error {
	idx := indexOf(t.storage, id)
	if idx < 0 {
		return fmt.Errorf("%s: %w", id, ErrNotInStorage)
	}
	if len(t.lineup) >= LineupCapacity {
		return ErrLineupFull
	}
	p := t.storage[idx]
	t.storage = append(t.storage[:idx], t.storage[idx+1:]...)
	t.lineup = append(t.lineup, p)
	return nil
}

// SwitchToStorage moves a lineup Pokémon into storage.
func (t *Trainer) SwitchToStorage(id uuid.UUID) error {
	idx := indexOf(t.lineup, id)
	if idx < 0 {
		return fmt.Errorf("%s: %w", id, ErrNotInLineup)
	}
	p := t.lineup[idx]
	t.lineup = append(t.lineup[:idx], t.lineup[idx+1:]...)
	t.storage = append(t.storage, p)
	return nil
}

// ReleasePokemon removes the Pokémon from the lineup or storage.
// It reports false and changes nothing when the trainer does not own it.
func (t *Trainer) ReleasePokemon(id uuid.UUID) bool {
	if idx := indexOf(t.lineup, id); idx >= 0 {
		t.lineup = append(t.lineup[:idx], t.lineup[idx+1:]...)
		return true
	}
	if idx := indexOf(t.storage, id); idx >= 0 {
		t.storage = append(t.storage[:idx], t.storage[idx+1:]...)
		return true
	}
	return false
}

// FindPokemon looks the instance up in the lineup, then storage.
func (t *Trainer) FindPokemon(id uuid.UUID) (*pokemon.Pokemon, bool) {
	if idx := indexOf(t.lineup, id); idx >= 0 {
		return t.lineup[idx], true
	}
	if idx := indexOf(t.storage, id); idx >= 0 {
		return t.storage[idx], true
	}
	return nil, false
}

// InLineup reports whether the Pokémon is in the active party.
func (t *Trainer) InLineup(id uuid.UUID) bool {
	return indexOf(t.lineup, id) >= 0
}

func (t *Trainer) checkDistinct(it *item.Item) error {
	if t.bagIndex(it.Name()) >= 0 {
		return nil
	}
	if t.DistinctItems() >= MaxDistinctItems {
		return fmt.Errorf("cannot add %s: %w", it.Name(), ErrTooManyDistinct)
	}
	return nil
}

func (t *Trainer) bagIndex(name string) int {
	for i, it := range t.bag {
		if strings.EqualFold(it.Name(), name) {
			return i
		}
	}
	return -1
}

func (t *Trainer) removeBagAt(i int) *item.Item {
	it := t.bag[i]
	t.bag = append(t.bag[:i], t.bag[i+1:]...)
	return it
}

func indexOf(list []*pokemon.Pokemon, id uuid.UUID) int {
	for i, p := range list {
		if p.ID() == id {
			return i
		}
	}
	return -1
}
