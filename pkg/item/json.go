package item

import "encoding/json"

// Spec is the serializable form of an Item
type Spec struct {
	Name         string   `json:"name" yaml:"name"`
	Category     Category `json:"category" yaml:"category"`
	Description  string   `json:"description" yaml:"description"`
	Effect       string   `json:"effect" yaml:"effect"`
	BuyingPrice  int      `json:"buying_price" yaml:"buying_price"`
	SellingPrice int      `json:"selling_price" yaml:"selling_price"`
	Stock        int      `json:"stock" yaml:"stock"`
	Usage        Usage    `json:"usage,omitzero" yaml:"usage,omitempty"`
}

// Build validates the spec and returns the Item.
// Stat names in the usage block may use any spelling stats.ParseStat accepts.
func (s Spec) Build() (*Item, error) {
	return New(s.Name, s.Category, s.Description, s.Effect, s.BuyingPrice, s.SellingPrice, s.Stock, s.Usage)
}

// ToSpec converts the item back to its serializable form.
func (it *Item) ToSpec() Spec {
	return Spec{
		Name:         it.name,
		Category:     it.category,
		Description:  it.description,
		Effect:       it.effect,
		BuyingPrice:  it.buyingPrice,
		SellingPrice: it.sellingPrice,
		Stock:        it.stock,
		Usage:        it.usage,
	}
}

func (it *Item) MarshalJSON() ([]byte, error) {
	if it == nil {
		return []byte("null"), nil
	}
	return json.Marshal(it.ToSpec())
}
