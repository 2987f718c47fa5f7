// Package display renders catalog records as terminal tables and cards.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
	"github.com/muesli/reflow/wordwrap"
)

// DescriptionWidth is the wrap width of move descriptions.
const DescriptionWidth = 55

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Price renders a price, or N/A for the untransactable sentinel.
func Price(p int) string {
	if p == item.NotTransactable {
		return "N/A"
	}
	return strconv.Itoa(p)
}

// Dex renders a zero-padded dex number, or "-" for none.
func Dex(dex int) string {
	if dex == pokemon.NoEvolution {
		return "-"
	}
	return fmt.Sprintf("%04d", dex)
}

// Species renders the species catalog.
func Species(list []pokemon.Species) string {
	if len(list) == 0 {
		return "No Pokémon found."
	}
	t := newTable("Dex", "Name", "Type", "Lvl", "From", "To", "Evo Lvl", "HP", "Atk", "Def", "SpA", "SpD", "Spe", "Total")
	for _, s := range list {
		evo := "-"
		if s.HasSuccessor() {
			evo = strconv.Itoa(s.EvolutionLevel)
		}
		row := []string{Dex(s.Dex), s.Name, s.Typing.String(), strconv.Itoa(s.BaseLevel), Dex(s.EvolvesFrom), Dex(s.EvolvesTo), evo}
		t.Row(append(row, statCells(s.Stats)...)...)
	}
	return t.String()
}

func statCells(bs stats.BaseStats) []string {
	cells := make([]string, 0, len(stats.All)+1)
	for _, st := range stats.All {
		cells = append(cells, strconv.Itoa(bs.Get(st)))
	}
	return append(cells, strconv.Itoa(bs.Total()))
}

// Moves renders the move catalog with descriptions wrapped to DescriptionWidth.
func Moves(list []move.Move) string {
	if len(list) == 0 {
		return "No moves found."
	}
	t := newTable("Name", "Class", "Type", "Description")
	for _, m := range list {
		t.Row(m.Name(), string(m.Classification()), m.Typing().String(), WrapDescription(m.Description()))
	}
	return t.String()
}

// WrapDescription wraps text at DescriptionWidth columns.
func WrapDescription(s string) string {
	return wordwrap.String(s, DescriptionWidth)
}

// Items renders item specs, normally taken from catalog.ItemManager.Snapshot.
func Items(list []item.Spec) string {
	if len(list) == 0 {
		return "No items found."
	}
	t := newTable("Name", "Category", "Effect", "Buy", "Sell", "Stock")
	for _, it := range list {
		t.Row(it.Name, string(it.Category), wordwrap.String(it.Effect, 40), Price(it.BuyingPrice), Price(it.SellingPrice), strconv.Itoa(it.Stock))
	}
	return t.String()
}

// Trainers renders trainer profiles.
func Trainers(list []trainer.Profile) string {
	if len(list) == 0 {
		return "No trainers found."
	}
	t := newTable("ID", "Name", "Birthdate", "Sex", "Hometown", "Description")
	for _, p := range list {
		t.Row(strconv.Itoa(p.ID), p.Name, p.Birthdate, p.Sex, p.Hometown, wordwrap.String(p.Description, 40))
	}
	return t.String()
}

// PokemonCard renders one Pokémon instance.
func PokemonCard(p *pokemon.Pokemon) string {
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(fmt.Sprintf("#%s %s", Dex(p.Dex()), p.Name())))
	b.WriteString("\n")
	field(&b, "ID", p.ID().String())
	field(&b, "Type", p.Typing().String())
	field(&b, "Level", strconv.Itoa(p.Level()))
	field(&b, "Evolves", fmt.Sprintf("from %s to %s at level %d", Dex(p.EvolvedFrom()), Dex(p.EvolvesTo()), p.EvolutionLevel()))

	bs := p.Stats()
	parts := make([]string, 0, len(stats.All))
	for _, st := range stats.All {
		parts = append(parts, fmt.Sprintf("%s %d", st.Label(), bs.Get(st)))
	}
	field(&b, "Stats", strings.Join(parts, ", "))
	field(&b, "Total", strconv.Itoa(bs.Total()))

	names := make([]string, 0, pokemon.MaxMoves)
	for _, m := range p.Moves() {
		names = append(names, m.Name())
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	field(&b, "Moves", strings.Join(names, ", "))

	held := "nothing"
	if it := p.HeldItem(); it != nil {
		held = it.Name()
	}
	field(&b, "Holding", held)

	for _, e := range p.History() {
		how := "level"
		if e.Stone != "" {
			how = e.Stone + " Stone"
		}
		field(&b, "Evolved", fmt.Sprintf("%s → %s by %s", e.FromName, e.ToName, how))
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// TrainerCard renders a trainer with money, lineup, storage and bag.
func TrainerCard(t *trainer.Trainer) string {
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(fmt.Sprintf("%s (#%d)", t.Name, t.ID)))
	b.WriteString("\n")
	field(&b, "Born", t.Birthdate)
	field(&b, "Sex", t.Sex)
	field(&b, "Hometown", t.Hometown)
	field(&b, "About", t.Description)
	field(&b, "Money", fmt.Sprintf("₽%d", t.Money()))
	field(&b, "Lineup", pokemonList(t.Lineup()))
	field(&b, "Storage", pokemonList(t.Storage()))

	bag := t.BagSummary()
	entries := make([]string, 0, len(bag))
	for i, e := range bag {
		entries = append(entries, fmt.Sprintf("%d. %s x%d", i+1, e.Name, e.Count))
	}
	if len(entries) == 0 {
		entries = append(entries, "empty")
	}
	field(&b, "Bag", fmt.Sprintf("%d/%d units, %d/%d kinds: %s", len(t.Bag()), trainer.BagCapacity,
		len(bag), trainer.MaxDistinctItems, strings.Join(entries, ", ")))
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func pokemonList(list []*pokemon.Pokemon) string {
	if len(list) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(list))
	for _, p := range list {
		parts = append(parts, fmt.Sprintf("%s Lv%d [%s]", p.Name(), p.Level(), p.ID().String()[:8]))
	}
	return strings.Join(parts, ", ")
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label + ":"))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
