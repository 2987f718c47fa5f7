package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/rules"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
)

// NotTransactable marks a buying or selling price that cannot be used.
const NotTransactable = -1

// Category groups items for display and search.
type Category string

const (
	Vitamin        Category = "Vitamin"
	Feather        Category = "Feather"
	LevelingItem   Category = "Leveling Item"
	EvolutionStone Category = "Evolution Stone"
)

// Stat gains of the boosting categories.
const (
	VitaminBoost = 10
	FeatherBoost = 1
)

// UsageKind describes what happens when an item is used on a Pokémon.
type UsageKind string

const (
	UsageNone      UsageKind = ""
	UsageStatBoost UsageKind = "stat_boost"
	UsageLevelUp   UsageKind = "level_up"
	UsageStone     UsageKind = "evolution_stone"
)

// Usage is the machine-readable effect of an item.
type Usage struct {
	Kind      UsageKind  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Stat      stats.Stat `json:"stat,omitempty" yaml:"stat,omitempty"`
	Amount    int        `json:"amount,omitempty" yaml:"amount,omitempty"`
	StoneType string     `json:"stone_type,omitempty" yaml:"stone_type,omitempty"`
}

var (
	ErrEmptyName         = errors.New("item name cannot be empty")
	ErrInvalidPrice      = errors.New("price must be non-negative or -1")
	ErrNegativeStock     = errors.New("stock cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidUsage      = errors.New("invalid item usage")
	ErrInsufficientStock = rules.NewViolation("not enough stock")
)

// Item is a catalog item. Everything except the stock count is fixed at construction.
// The catalog owns items; trainers and Pokémon hold references to units of them.
type Item struct {
	name         string
	category     Category
	description  string
	effect       string
	buyingPrice  int
	sellingPrice int
	stock        int
	usage        Usage
}

// New validates and builds an Item.
func New(name string, category Category, description, effect string, buyingPrice, sellingPrice, stock int, usage Usage) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if buyingPrice < NotTransactable {
		return nil, fmt.Errorf("%w: buying price %d", ErrInvalidPrice, buyingPrice)
	}
	if sellingPrice < NotTransactable {
		return nil, fmt.Errorf("%w: selling price %d", ErrInvalidPrice, sellingPrice)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeStock, stock)
	}
	usage, err := usage.normalize()
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", name, err)
	}
	return &Item{
		name:         name,
		category:     category,
		description:  description,
		effect:       effect,
		buyingPrice:  buyingPrice,
		sellingPrice: sellingPrice,
		stock:        stock,
		usage:        usage,
	}, nil
}

// NewVitamin builds a Vitamin that raises stat by VitaminBoost.
func NewVitamin(name, description, effect string, buyingPrice, sellingPrice, stock int, stat stats.Stat) (*Item, error) {
	return New(name, Vitamin, description, effect, buyingPrice, sellingPrice, stock,
		Usage{Kind: UsageStatBoost, Stat: stat, Amount: VitaminBoost})
}

// NewFeather builds a Feather that raises stat by FeatherBoost.
func NewFeather(name, description, effect string, buyingPrice, sellingPrice, stock int, stat stats.Stat) (*Item, error) {
	return New(name, Feather, description, effect, buyingPrice, sellingPrice, stock,
		Usage{Kind: UsageStatBoost, Stat: stat, Amount: FeatherBoost})
}

// NewRareCandy builds a leveling item that raises the level by one.
func NewRareCandy(name, description, effect string, buyingPrice, sellingPrice, stock int) (*Item, error) {
	return New(name, LevelingItem, description, effect, buyingPrice, sellingPrice, stock,
		Usage{Kind: UsageLevelUp})
}

// NewEvolutionStone builds a stone. stoneType is kept verbatim; stones such as "Moon"
// are not element types and never trigger an evolution.
func NewEvolutionStone(name, description, effect string, buyingPrice, sellingPrice, stock int, stoneType string) (*Item, error) {
	return New(name, EvolutionStone, description, effect, buyingPrice, sellingPrice, stock,
		Usage{Kind: UsageStone, StoneType: stoneType})
}

func (it *Item) Name() string        { return it.name }
func (it *Item) Category() Category  { return it.category }
func (it *Item) Description() string { return it.description }
func (it *Item) Effect() string      { return it.effect }
func (it *Item) BuyingPrice() int    { return it.buyingPrice }
func (it *Item) SellingPrice() int   { return it.sellingPrice }
func (it *Item) Stock() int          { return it.stock }
func (it *Item) Usage() Usage        { return it.usage }

// Purchasable is false when the buying price is NotTransactable.
func (it *Item) Purchasable() bool {
	return it.buyingPrice != NotTransactable
}

// Sellable is false when the selling price is NotTransactable.
func (it *Item) Sellable() bool {
	return it.sellingPrice != NotTransactable
}

// Is reports whether other names the same item, ignoring case.
func (it *Item) Is(other *Item) bool {
	return it != nil && other != nil && strings.EqualFold(it.name, other.name)
}

// Withdraw removes qty units from stock.
func (it *Item) Withdraw(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if it.stock < qty {
		return fmt.Errorf("%w: %s has %d, wanted %d", ErrInsufficientStock, it.name, it.stock, qty)
	}
	it.stock -= qty
	return nil
}

// Restock adds qty units to stock.
func (it *Item) Restock(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	it.stock += qty
	return nil
}

// normalize validates the usage and canonicalises the stat name.
func (u Usage) normalize() (Usage, error) {
	switch u.Kind {
	case UsageNone, UsageLevelUp:
		return u, nil
	case UsageStatBoost:
		st, err := stats.ParseStat(string(u.Stat))
		if err != nil {
			return Usage{}, fmt.Errorf("%w: %v", ErrInvalidUsage, err)
		}
		if u.Amount == 0 {
			return Usage{}, fmt.Errorf("%w: stat boost needs a non-zero amount", ErrInvalidUsage)
		}
		u.Stat = st
		return u, nil
	case UsageStone:
		u.StoneType = strings.TrimSpace(u.StoneType)
		if u.StoneType == "" {
			return Usage{}, fmt.Errorf("%w: evolution stone needs a stone type", ErrInvalidUsage)
		}
		return u, nil
	}
	return Usage{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidUsage, u.Kind)
}
