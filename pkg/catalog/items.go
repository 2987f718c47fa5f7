package catalog

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
)

var (
	ErrNotSoldHere   = rules.NewViolation("the shop does not sell this item")
	ErrNotBoughtHere = rules.NewViolation("the shop does not buy this item")
)

// ItemManager is the item catalog and the shop's stock.
type ItemManager struct {
	items *collection[*item.Item]
}

func NewItemManager() *ItemManager {
	return &ItemManager{
		items: newCollection(
			func(it *item.Item) string { return normalizeKey(it.Name()) },
			func(it *item.Item) []string { return []string{it.Name(), it.Effect(), it.Description()} },
		),
	}
}

// Add registers an item. Names are unique ignoring case.
func (m *ItemManager) Add(it *item.Item) error {
	if err := m.items.add(it); err != nil {
		return fmt.Errorf("item %q: %w", it.Name(), err)
	}
	return nil
}

// Find is an exact, case-insensitive name lookup.
func (m *ItemManager) Find(name string) (*item.Item, error) {
	it, ok := m.items.get(normalizeKey(name))
	if !ok {
		return nil, fmt.Errorf("item %q: %w", name, ErrNotFound)
	}
	return it, nil
}

// Exists reports whether an item with that name is registered.
func (m *ItemManager) Exists(name string) bool {
	_, ok := m.items.get(normalizeKey(name))
	return ok
}

func (m *ItemManager) All() []*item.Item { return m.items.all() }
func (m *ItemManager) Len() int          { return m.items.len() }

// Search matches keyword against name, effect and description.
func (m *ItemManager) Search(keyword string) []*item.Item {
	return m.items.search(keyword)
}

// ByCategory lists items of one category, ignoring case.
func (m *ItemManager) ByCategory(category string) []*item.Item {
	category = strings.TrimSpace(category)
	return m.items.filter(func(it *item.Item) bool {
		return strings.EqualFold(string(it.Category()), category)
	})
}

// Withdraw takes qty units out of the shop's stock and returns what they cost.
func (m *ItemManager) Withdraw(name string, qty int) (int, error) {
	m.items.mu.Lock()
	defer m.items.mu.Unlock()

	it, err := m.lookupLocked(name)
	if err != nil {
		return 0, err
	}
	if !it.Purchasable() {
		return 0, fmt.Errorf("%s: %w", it.Name(), ErrNotSoldHere)
	}
	if err := it.Withdraw(qty); err != nil {
		return 0, err
	}
	return it.BuyingPrice() * qty, nil
}

// Restock buys qty units back into the shop's stock and returns what the shop pays.
func (m *ItemManager) Restock(name string, qty int) (int, error) {
	m.items.mu.Lock()
	defer m.items.mu.Unlock()

	it, err := m.lookupLocked(name)
	if err != nil {
		return 0, err
	}
	if !it.Sellable() {
		return 0, fmt.Errorf("%s: %w", it.Name(), ErrNotBoughtHere)
	}
	if err := it.Restock(qty); err != nil {
		return 0, err
	}
	return it.SellingPrice() * qty, nil
}

// PutBack returns withdrawn units to stock without any price rules, undoing a Withdraw.
func (m *ItemManager) PutBack(name string, qty int) error {
	m.items.mu.Lock()
	defer m.items.mu.Unlock()

	it, err := m.lookupLocked(name)
	if err != nil {
		return err
	}
	return it.Restock(qty)
}

// Snapshot copies items into their serializable form under the read lock, so stock
// counts are consistent with concurrent Withdraw and Restock calls.
func (m *ItemManager) Snapshot(items []*item.Item) []item.Spec {
	m.items.mu.RLock()
	defer m.items.mu.RUnlock()
	out := make([]item.Spec, 0, len(items))
	for _, it := range items {
		out = append(out, it.ToSpec())
	}
	return out
}

func (m *ItemManager) lookupLocked(name string) (*item.Item, error) {
	i, ok := m.items.index[normalizeKey(name)]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", name, ErrNotFound)
	}
	return m.items.order[i], nil
}
